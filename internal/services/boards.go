package services

import (
	"errors"
	"strings"
	"unicode"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateBoard inserts a board owned by userID together with its default lists.
func CreateBoard(db *gorm.DB, userID string, req models.CreateBoardRequest) (*models.Board, error) {
	board := models.Board{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Color:       models.DefaultBoardColor,
		Category:    models.DefaultBoardCategory,
		UserID:      userID,
	}
	if req.Color != nil {
		board.Color = *req.Color
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		board.Category = strings.TrimSpace(*req.Category)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&board).Error; err != nil {
			return err
		}
		for i, title := range models.DefaultListTitles {
			list := models.List{Title: title, Order: i, BoardID: board.ID}
			if err := tx.Create(&list).Error; err != nil {
				return err
			}
			board.Lists = append(board.Lists, list)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// DuplicateBoard copies source with its lists, cards and card labels into a
// new board owned by userID. Comments, activity, members and shares stay behind.
func DuplicateBoard(db *gorm.DB, source *models.Board, userID string) (*models.Board, error) {
	var lists []models.List
	if err := db.Where("board_id = ?", source.ID).
		Preload("Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Cards.Labels").
		Order("position ASC").
		Find(&lists).Error; err != nil {
		return nil, err
	}

	var labels []models.Label
	if err := db.Where("board_id = ?", source.ID).Find(&labels).Error; err != nil {
		return nil, err
	}

	copied := models.Board{
		Title:       source.Title + " (Copy)",
		Description: source.Description,
		ImageURL:    source.ImageURL,
		Color:       source.Color,
		Category:    source.Category,
		UserID:      userID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&copied).Error; err != nil {
			return err
		}

		labelMap := make(map[uuid.UUID]models.Label, len(labels))
		for _, label := range labels {
			clone := models.Label{Name: label.Name, Color: label.Color, BoardID: copied.ID}
			if err := tx.Create(&clone).Error; err != nil {
				return err
			}
			labelMap[label.ID] = clone
		}

		for _, list := range lists {
			newList := models.List{Title: list.Title, Order: list.Order, BoardID: copied.ID}
			if err := tx.Create(&newList).Error; err != nil {
				return err
			}
			for _, card := range list.Cards {
				newCard := models.Card{
					Title:       card.Title,
					Description: card.Description,
					Order:       card.Order,
					Completed:   card.Completed,
					DueDate:     card.DueDate,
					ListID:      newList.ID,
					UserID:      userID,
				}
				// The copy has no members, so only its owner can stay assigned.
				if card.AssigneeID != nil && *card.AssigneeID == userID {
					newCard.AssigneeID = card.AssigneeID
				}
				for _, label := range card.Labels {
					if clone, ok := labelMap[label.ID]; ok {
						newCard.Labels = append(newCard.Labels, clone)
					}
				}
				if err := tx.Omit("Labels.*").Create(&newCard).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &copied, nil
}

// DeleteBoard removes a board and everything hanging off it in one transaction.
func DeleteBoard(db *gorm.DB, boardID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var listIDs []uuid.UUID
		if err := tx.Model(&models.List{}).Where("board_id = ?", boardID).Pluck("id", &listIDs).Error; err != nil {
			return err
		}

		var cardIDs []uuid.UUID
		if len(listIDs) > 0 {
			if err := tx.Model(&models.Card{}).Where("list_id IN ?", listIDs).Pluck("id", &cardIDs).Error; err != nil {
				return err
			}
		}

		if err := deleteCards(tx, cardIDs); err != nil {
			return err
		}

		steps := []struct {
			model interface{}
			where string
		}{
			{&models.Activity{}, "board_id = ?"},
			{&models.List{}, "board_id = ?"},
			{&models.BoardMember{}, "board_id = ?"},
			{&models.BoardShare{}, "board_id = ?"},
			{&models.Label{}, "board_id = ?"},
			{&models.Board{}, "id = ?"},
		}
		for _, step := range steps {
			if err := tx.Where(step.where, boardID).Delete(step.model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteList removes a list and its cards.
func DeleteList(db *gorm.DB, listID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var cardIDs []uuid.UUID
		if err := tx.Model(&models.Card{}).Where("list_id = ?", listID).Pluck("id", &cardIDs).Error; err != nil {
			return err
		}
		if err := deleteCards(tx, cardIDs); err != nil {
			return err
		}
		return tx.Where("id = ?", listID).Delete(&models.List{}).Error
	})
}

// DeleteCard removes a card with its comments and label links.
func DeleteCard(db *gorm.DB, cardID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return deleteCards(tx, []uuid.UUID{cardID})
	})
}

func deleteCards(tx *gorm.DB, cardIDs []uuid.UUID) error {
	if len(cardIDs) == 0 {
		return nil
	}
	if err := tx.Exec("DELETE FROM card_labels WHERE card_id IN ?", cardIDs).Error; err != nil {
		return err
	}
	if err := tx.Where("card_id IN ?", cardIDs).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", cardIDs).Delete(&models.Card{}).Error
}

// LoadBoardDetail returns the board with lists and cards in display order.
func LoadBoardDetail(db *gorm.DB, boardID uuid.UUID) (*models.Board, error) {
	var board models.Board
	err := db.
		Preload("User").
		Preload("Lists", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Lists.Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Lists.Cards.Labels").
		Preload("Lists.Cards.Assignee").
		Take(&board, "id = ?", boardID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Board")
		}
		return nil, err
	}
	return &board, nil
}

// ApplyBoardUpdate copies the fields present in req onto board and returns
// the changed values keyed by their wire names.
func ApplyBoardUpdate(board *models.Board, req models.UpdateBoardRequest) map[string]interface{} {
	changes := map[string]interface{}{}

	if req.Title != nil {
		board.Title = strings.TrimSpace(*req.Title)
		changes["title"] = board.Title
	}
	if req.Description.Set {
		board.Description = req.Description.Ptr()
		changes["description"] = board.Description
	}
	if req.ImageURL.Set {
		board.ImageURL = req.ImageURL.Ptr()
		changes["imageUrl"] = board.ImageURL
	}
	if req.Color != nil {
		board.Color = *req.Color
		changes["color"] = board.Color
	}
	if req.Category != nil {
		board.Category = strings.TrimSpace(*req.Category)
		changes["category"] = board.Category
	}
	if req.Archived != nil {
		board.Archived = *req.Archived
		changes["archived"] = board.Archived
	}
	if req.IsFavorite != nil {
		board.IsFavorite = *req.IsFavorite
		changes["isFavorite"] = board.IsFavorite
	}
	return changes
}

// FormatCategory capitalizes the first letter and lowercases the rest.
func FormatCategory(category string) string {
	if category == "" {
		category = models.DefaultBoardCategory
	}
	runes := []rune(strings.ToLower(category))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
