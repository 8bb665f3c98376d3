package services

import (
	"fmt"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AppendList creates list at the end of its board. The read of the current
// maximum and the insert share a transaction holding the board row lock, so
// concurrent appends on postgres cannot tie.
func AppendList(db *gorm.DB, list *models.List) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &models.Board{}, list.BoardID); err != nil {
			return err
		}
		next, err := nextOrder(tx, &models.List{}, "board_id", list.BoardID)
		if err != nil {
			return err
		}
		list.Order = next
		return tx.Create(list).Error
	})
}

// AppendCard creates card at the end of its list.
func AppendCard(db *gorm.DB, card *models.Card) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &models.List{}, card.ListID); err != nil {
			return err
		}
		next, err := nextOrder(tx, &models.Card{}, "list_id", card.ListID)
		if err != nil {
			return err
		}
		card.Order = next
		return tx.Create(card).Error
	})
}

// ReorderLists assigns each list its index in listIDs as the new order.
func ReorderLists(db *gorm.DB, boardID uuid.UUID, listIDs []uuid.UUID) error {
	return reorder(db, &models.List{}, "board_id", boardID, listIDs, "listIds")
}

// ReorderCards assigns each card its index in cardIDs as the new order.
func ReorderCards(db *gorm.DB, listID uuid.UUID, cardIDs []uuid.UUID) error {
	return reorder(db, &models.Card{}, "list_id", listID, cardIDs, "cardIds")
}

// MoveCard puts card into targetListID at order. A nil order appends the
// card after the target list's last card. Other cards are not renumbered.
func MoveCard(tx *gorm.DB, card *models.Card, targetListID uuid.UUID, order *int) error {
	if order != nil {
		card.ListID = targetListID
		card.Order = *order
		return nil
	}

	if err := lockRow(tx, &models.List{}, targetListID); err != nil {
		return err
	}
	next, err := nextOrder(tx, &models.Card{}, "list_id", targetListID)
	if err != nil {
		return err
	}
	card.ListID = targetListID
	card.Order = next
	return nil
}

// The submitted ids are checked up front: duplicates or ids outside the
// parent reject the whole request before any row is written.
func reorder(db *gorm.DB, model interface{}, parentColumn string, parentID uuid.UUID, ids []uuid.UUID, field string) error {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return apperrors.Validation("Validation failed", map[string]string{
				field: fmt.Sprintf("%s appears more than once", id),
			})
		}
		seen[id] = struct{}{}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(model).
			Where(parentColumn+" = ? AND id IN ?", parentID, ids).
			Count(&count).Error; err != nil {
			return err
		}
		if int(count) != len(ids) {
			return apperrors.Validation("Validation failed", map[string]string{
				field: "every id must belong to the same parent",
			})
		}

		for i, id := range ids {
			if err := tx.Model(model).Where("id = ?", id).Update("position", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func nextOrder(tx *gorm.DB, model interface{}, parentColumn string, parentID uuid.UUID) (int, error) {
	var next int
	err := tx.Model(model).
		Where(parentColumn+" = ?", parentID).
		Select("COALESCE(MAX(position), -1) + 1").
		Scan(&next).Error
	return next, err
}

// lockRow takes a row lock on postgres. SQLite serializes writers already
// and does not support FOR UPDATE.
func lockRow(tx *gorm.DB, model interface{}, id uuid.UUID) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Take(model, "id = ?", id).Error
}
