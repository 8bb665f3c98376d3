package handlers

import (
	"time"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/middleware"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func GetListCards(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionView)
	if err != nil {
		return err
	}
	list, err := findList(c, board)
	if err != nil {
		return err
	}

	var cards []models.Card
	if err := database.DB.Where("list_id = ?", list.ID).
		Preload("Labels").
		Preload("Assignee").
		Order("position ASC").
		Find(&cards).Error; err != nil {
		return err
	}

	return c.JSON(cards)
}

// CreateCard appends a card after the list's last card.
func CreateCard(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionEdit)
	if err != nil {
		return err
	}
	list, err := findList(c, board)
	if err != nil {
		return err
	}

	var req models.CreateCardRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.AssigneeID != nil {
		if err := checkAssignee(board, *req.AssigneeID); err != nil {
			return err
		}
	}

	card := models.Card{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     utcPtr(req.DueDate),
		ListID:      list.ID,
		AssigneeID:  req.AssigneeID,
		UserID:      middleware.GetUserID(c),
	}
	if err := services.AppendCard(database.DB, &card); err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityCreateCard,
		EntityType: models.EntityCard,
		EntityID:   card.ID.String(),
		CardID:     &card.ID,
		Data:       map[string]interface{}{"title": card.Title, "listTitle": list.Title},
	})

	return c.Status(fiber.StatusCreated).JSON(card)
}

// ReorderCards assigns the list's cards the order given in the body.
func ReorderCards(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionEdit)
	if err != nil {
		return err
	}
	list, err := findList(c, board)
	if err != nil {
		return err
	}

	var req models.ReorderCardsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := services.ReorderCards(database.DB, list.ID, req.CardIDs); err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityReorderCards,
		EntityType: models.EntityList,
		EntityID:   list.ID.String(),
		Data:       map[string]interface{}{"cardIds": idStrings(req.CardIDs)},
	})

	var cards []models.Card
	if err := database.DB.Where("list_id = ?", list.ID).Order("position ASC").Find(&cards).Error; err != nil {
		return err
	}
	return c.JSON(cards)
}

func GetCard(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionView)
	if err != nil {
		return err
	}
	card, err := findCard(c, board)
	if err != nil {
		return err
	}

	if err := loadCardRelations(card); err != nil {
		return err
	}
	return c.JSON(card)
}

// UpdateCard edits card fields and moves the card when listId is given.
func UpdateCard(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionEdit)
	if err != nil {
		return err
	}
	card, err := findCard(c, board)
	if err != nil {
		return err
	}

	var req models.UpdateCardRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	// Echoing the card's own list is not a move.
	var target *models.List
	if req.ListID != nil && *req.ListID != card.ListID {
		var list models.List
		if err := database.DB.Where("id = ? AND board_id = ?", *req.ListID, board.ID).Take(&list).Error; err != nil {
			if apperrors.Is(notFoundOr(err, "List"), apperrors.KindNotFound) {
				return apperrors.Validation("Validation failed", map[string]string{"listId": "list must belong to this board"})
			}
			return err
		}
		target = &list
	}

	if req.AssigneeID.Set && req.AssigneeID.Valid {
		if err := checkAssignee(board, req.AssigneeID.Value); err != nil {
			return err
		}
	}

	var labels []models.Label
	if req.LabelIDs != nil && len(*req.LabelIDs) > 0 {
		if err := database.DB.Where("id IN ? AND board_id = ?", *req.LabelIDs, board.ID).Find(&labels).Error; err != nil {
			return err
		}
		if len(labels) != len(uniqueIDs(*req.LabelIDs)) {
			return apperrors.Validation("Validation failed", map[string]string{"labelIds": "labels must belong to this board"})
		}
	}

	previousListID := card.ListID
	changes := map[string]interface{}{}

	if req.Title != nil {
		card.Title = *req.Title
		changes["title"] = card.Title
	}
	if req.Description.Set {
		card.Description = req.Description.Ptr()
		changes["description"] = card.Description
	}
	if req.Completed != nil && *req.Completed != card.Completed {
		card.Completed = *req.Completed
		changes["completed"] = card.Completed
	}
	if req.DueDate.Set {
		card.DueDate = utcPtr(req.DueDate.Ptr())
		changes["dueDate"] = card.DueDate
	}
	if req.AssigneeID.Set {
		card.AssigneeID = req.AssigneeID.Ptr()
		changes["assigneeId"] = card.AssigneeID
	}
	if req.LabelIDs != nil {
		changes["labelIds"] = idStrings(*req.LabelIDs)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		switch {
		case target != nil:
			if err := services.MoveCard(tx, card, target.ID, req.Order); err != nil {
				return err
			}
			changes["order"] = card.Order
		case req.Order != nil:
			card.Order = *req.Order
			changes["order"] = card.Order
		}

		if err := tx.Omit(clause.Associations).Save(card).Error; err != nil {
			return err
		}
		if req.LabelIDs != nil {
			return tx.Model(card).Association("Labels").Replace(labels)
		}
		return nil
	})
	if err != nil {
		return err
	}

	entry := services.ActivityEntry{
		Type:       models.ActivityUpdateCard,
		EntityType: models.EntityCard,
		EntityID:   card.ID.String(),
		CardID:     &card.ID,
		Data:       changes,
	}
	switch {
	case card.ListID != previousListID:
		entry.Type = models.ActivityMoveCard
		entry.Data = map[string]interface{}{
			"title":      card.Title,
			"fromListId": previousListID.String(),
			"toListId":   card.ListID.String(),
			"toList":     target.Title,
			"order":      card.Order,
		}
	case len(changes) == 1 && changes["completed"] != nil:
		entry.Type = models.ActivityUncompleteCard
		if card.Completed {
			entry.Type = models.ActivityCompleteCard
		}
		entry.Data = map[string]interface{}{"title": card.Title}
	}
	if len(changes) > 0 {
		logActivity(c, board, entry)
	}

	if err := loadCardRelations(card); err != nil {
		return err
	}
	return c.JSON(card)
}

func DeleteCard(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionEdit)
	if err != nil {
		return err
	}
	card, err := findCard(c, board)
	if err != nil {
		return err
	}

	if err := services.DeleteCard(database.DB, card.ID); err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityDeleteCard,
		EntityType: models.EntityCard,
		EntityID:   card.ID.String(),
		CardID:     &card.ID,
		Data:       map[string]interface{}{"title": card.Title},
	})

	return c.SendStatus(fiber.StatusNoContent)
}

// checkAssignee accepts the board owner or any member as assignee.
func checkAssignee(board *models.Board, userID string) error {
	if userID == board.UserID {
		return nil
	}
	var count int64
	if err := database.DB.Model(&models.BoardMember{}).
		Where("board_id = ? AND user_id = ?", board.ID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.Validation("Validation failed", map[string]string{"assigneeId": "assignee must have access to this board"})
	}
	return nil
}

func loadCardRelations(card *models.Card) error {
	return database.DB.
		Preload("Labels").
		Preload("Assignee").
		Preload("List").
		Take(card, "id = ?", card.ID).Error
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
