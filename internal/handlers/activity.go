package handlers

import (
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetCardActivities returns the activity feed of one card, newest first.
func GetCardActivities(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionView)
	if err != nil {
		return err
	}
	card, err := findCard(c, board)
	if err != nil {
		return err
	}

	return activityFeed(c, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("board_id = ?", board.ID).
			Where("card_id = ? OR (entity_type = ? AND entity_id = ?)", card.ID, models.EntityCard, card.ID.String())
	})
}

// GetBoardActivity returns the activity feed of a whole board, newest first.
func GetBoardActivity(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionView)
	if err != nil {
		return err
	}

	return activityFeed(c, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("board_id = ?", board.ID)
	})
}

func activityFeed(c *fiber.Ctx, scope func(*gorm.DB) *gorm.DB) error {
	query := models.CursorQuery{Limit: services.DefaultFeedLimit}
	if err := parseQuery(c, &query); err != nil {
		return err
	}

	page, err := services.Paginate[models.Activity](database.DB, scope, query.Cursor, query.Limit, "User")
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"activities": page.Items,
		"nextCursor": page.NextCursor,
		"hasMore":    page.HasMore,
	})
}
