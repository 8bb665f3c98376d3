package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultBoardCategory = "Other"
	DefaultBoardColor    = "#4f46e5"
)

// DefaultListTitles are created, in order, with every new board.
var DefaultListTitles = []string{"To Do", "In Progress", "Done"}

type Board struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	Color       string    `json:"color" gorm:"not null;default:'#4f46e5'"`
	Category    string    `json:"category" gorm:"not null;default:'Other'"`
	Archived    bool      `json:"archived" gorm:"not null;default:false"`
	IsFavorite  bool      `json:"isFavorite" gorm:"not null;default:false"`
	UserID      string    `json:"userId" gorm:"index;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	User    *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Lists   []List        `json:"lists,omitempty" gorm:"foreignKey:BoardID"`
	Members []BoardMember `json:"members,omitempty" gorm:"foreignKey:BoardID"`
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Board DTOs
type CreateBoardRequest struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,max=2048"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
	Category    *string `json:"category" validate:"omitempty,max=50"`
}

type UpdateBoardRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=100"`
	Description Nullable[string] `json:"description"`
	ImageURL    Nullable[string] `json:"imageUrl"`
	Color       *string          `json:"color" validate:"omitempty,hexcolor"`
	Category    *string          `json:"category" validate:"omitempty,min=1,max=50"`
	Archived    *bool            `json:"archived"`
	IsFavorite  *bool            `json:"isFavorite"`
}

// BoardActionRequest is the body of POST /boards/:id.
type BoardActionRequest struct {
	Action   string `json:"action" validate:"required,oneof=duplicate archive"`
	Archived *bool  `json:"archived"`
}

type BoardListQuery struct {
	Page      int    `query:"page" validate:"min=1"`
	Limit     int    `query:"limit" validate:"min=1,max=100"`
	Search    string `query:"search" validate:"max=100"`
	Category  string `query:"category" validate:"max=50"`
	Favorites string `query:"favorites" validate:"omitempty,oneof=true false"`
}

type BoardSummary struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	Description         *string   `json:"description"`
	ImageURL            *string   `json:"imageUrl"`
	Color               string    `json:"color"`
	Category            string    `json:"category"`
	Archived            bool      `json:"archived"`
	IsFavorite          bool      `json:"isFavorite"`
	UserID              string    `json:"userId"`
	Role                string    `json:"role"`
	TasksCount          int       `json:"tasksCount"`
	CompletedTasksCount int       `json:"completedTasksCount"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

func NewPageInfo(page, limit int, total int64) PageInfo {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PageInfo{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// BoardDetail is a board with the caller's role on it.
type BoardDetail struct {
	Board
	Role string `json:"role"`
}
