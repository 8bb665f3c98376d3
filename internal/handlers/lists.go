package handlers

import (
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func orderedCards(tx *gorm.DB) *gorm.DB {
	return tx.Order("position ASC")
}

// GetLists returns a page of the board's lists, each with its cards.
func GetLists(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionView)
	if err != nil {
		return err
	}

	query := models.PageQuery{Page: 1, Limit: 5}
	if err := parseQuery(c, &query); err != nil {
		return err
	}

	var total int64
	if err := database.DB.Model(&models.List{}).Where("board_id = ?", board.ID).Count(&total).Error; err != nil {
		return err
	}

	var lists []models.List
	if err := database.DB.Where("board_id = ?", board.ID).
		Preload("Cards", orderedCards).
		Preload("Cards.Labels").
		Preload("Cards.Assignee").
		Order("position ASC").
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&lists).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"lists":      lists,
		"pagination": models.NewPageInfo(query.Page, query.Limit, total),
	})
}

// CreateList appends a list after the board's last list.
func CreateList(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionEdit)
	if err != nil {
		return err
	}

	var req models.CreateListRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	list := models.List{Title: req.Title, BoardID: board.ID}
	if err := services.AppendList(database.DB, &list); err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityCreateList,
		EntityType: models.EntityList,
		EntityID:   list.ID.String(),
		Data:       map[string]interface{}{"title": list.Title},
	})

	return c.Status(fiber.StatusCreated).JSON(list)
}

func GetList(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionView)
	if err != nil {
		return err
	}
	list, err := findList(c, board)
	if err != nil {
		return err
	}

	if err := database.DB.Where("list_id = ?", list.ID).
		Preload("Labels").
		Preload("Assignee").
		Order("position ASC").
		Find(&list.Cards).Error; err != nil {
		return err
	}

	return c.JSON(list)
}

func UpdateList(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionEdit)
	if err != nil {
		return err
	}
	list, err := findList(c, board)
	if err != nil {
		return err
	}

	var req models.UpdateListRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	previous := list.Title
	if err := database.DB.Model(list).Update("title", req.Title).Error; err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityUpdateList,
		EntityType: models.EntityList,
		EntityID:   list.ID.String(),
		Data:       map[string]interface{}{"title": list.Title, "previousTitle": previous},
	})

	return c.JSON(list)
}

// DeleteList removes the list together with its cards.
func DeleteList(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionEdit)
	if err != nil {
		return err
	}
	list, err := findList(c, board)
	if err != nil {
		return err
	}

	if err := services.DeleteList(database.DB, list.ID); err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityDeleteList,
		EntityType: models.EntityList,
		EntityID:   list.ID.String(),
		Data:       map[string]interface{}{"title": list.Title},
	})

	return c.SendStatus(fiber.StatusNoContent)
}

// ReorderLists assigns the board's lists the order given in the body.
func ReorderLists(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionEdit)
	if err != nil {
		return err
	}

	var req models.ReorderListsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := services.ReorderLists(database.DB, board.ID, req.ListIDs); err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityReorderLists,
		EntityType: models.EntityBoard,
		EntityID:   board.ID.String(),
		Data:       map[string]interface{}{"listIds": idStrings(req.ListIDs)},
	})

	var lists []models.List
	if err := database.DB.Where("board_id = ?", board.ID).Order("position ASC").Find(&lists).Error; err != nil {
		return err
	}
	return c.JSON(lists)
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
