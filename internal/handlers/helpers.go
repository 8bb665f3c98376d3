package handlers

import (
	"errors"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/middleware"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func paramUUID(c *fiber.Ctx, name, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperrors.Validation("Invalid "+what+" ID", map[string]string{name: "must be a valid id"})
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.Validation("Invalid request body", nil)
	}
	return services.ValidateStruct(out)
}

func parseQuery(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return apperrors.Validation("Invalid query parameters", nil)
	}
	return services.ValidateStruct(out)
}

// authorizeBoard resolves the :id board and checks the caller holds perm.
func authorizeBoard(c *fiber.Ctx, perm services.Permission) (*models.Board, error) {
	boardID, err := paramUUID(c, "id", "board")
	if err != nil {
		return nil, err
	}
	return services.Authorize(database.DB, boardID, middleware.GetUserID(c), perm)
}

// findList loads the :listId list, which must belong to board.
func findList(c *fiber.Ctx, board *models.Board) (*models.List, error) {
	listID, err := paramUUID(c, "listId", "list")
	if err != nil {
		return nil, err
	}
	var list models.List
	if err := database.DB.Where("id = ? AND board_id = ?", listID, board.ID).Take(&list).Error; err != nil {
		return nil, notFoundOr(err, "List")
	}
	return &list, nil
}

// findCard loads the :cardId card, which must sit in a list of board.
func findCard(c *fiber.Ctx, board *models.Board) (*models.Card, error) {
	cardID, err := paramUUID(c, "cardId", "card")
	if err != nil {
		return nil, err
	}
	var card models.Card
	if err := database.DB.
		Where("id = ? AND list_id IN (?)", cardID, boardListIDs(board.ID)).
		Take(&card).Error; err != nil {
		return nil, notFoundOr(err, "Card")
	}
	return &card, nil
}

func boardListIDs(boardID uuid.UUID) *gorm.DB {
	return database.DB.Model(&models.List{}).Select("id").Where("board_id = ?", boardID)
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(what)
	}
	return err
}

// logActivity records an audit entry for the current caller on board.
func logActivity(c *fiber.Ctx, board *models.Board, entry services.ActivityEntry) {
	entry.UserID = middleware.GetUserID(c)
	entry.BoardID = board.ID
	services.LogActivity(database.DB, entry)
}
