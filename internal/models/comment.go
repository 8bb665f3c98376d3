package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UserID    string    `json:"userId" gorm:"not null"`
	CardID    uuid.UUID `json:"cardId" gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

type CursorQuery struct {
	Cursor string `query:"cursor" validate:"omitempty,uuid"`
	Limit  int    `query:"limit" validate:"min=1,max=100"`
}

func (c Comment) CursorID() string {
	return c.ID.String()
}
