package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Label is a board-scoped tag attached to cards through card_labels.
type Label struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Color     string    `json:"color" gorm:"not null"`
	BoardID   uuid.UUID `json:"boardId" gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (l *Label) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type CreateLabelRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color" validate:"required,hexcolor"`
}
