package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// List is a column on a board. Order is stored in the "position" column.
type List struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Order     int       `json:"order" gorm:"column:position;not null;index"`
	BoardID   uuid.UUID `json:"boardId" gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Cards []Card `json:"cards,omitempty" gorm:"foreignKey:ListID"`
}

func (l *List) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type CreateListRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

type UpdateListRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

type ReorderListsRequest struct {
	ListIDs []uuid.UUID `json:"listIds" validate:"required,min=1"`
}

type PageQuery struct {
	Page  int `query:"page" validate:"min=1"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}
