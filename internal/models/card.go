package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Card struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description *string    `json:"description"`
	Order       int        `json:"order" gorm:"column:position;not null;index"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	DueDate     *time.Time `json:"dueDate" gorm:"index"`
	ListID      uuid.UUID  `json:"listId" gorm:"type:uuid;index;not null"`
	AssigneeID  *string    `json:"assigneeId" gorm:"index"`
	UserID      string     `json:"userId" gorm:"not null"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	List     *List   `json:"list,omitempty" gorm:"foreignKey:ListID"`
	Assignee *User   `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
	Labels   []Label `json:"labels" gorm:"many2many:card_labels;"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CreateCardRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	DueDate     *time.Time `json:"dueDate"`
	AssigneeID  *string    `json:"assigneeId"`
}

// UpdateCardRequest distinguishes absent fields from explicit nulls.
// A ListID other than the current list moves the card; Order then positions it in the target list.
type UpdateCardRequest struct {
	Title       *string             `json:"title" validate:"omitempty,min=1,max=200"`
	Description Nullable[string]    `json:"description"`
	Completed   *bool               `json:"completed"`
	DueDate     Nullable[time.Time] `json:"dueDate"`
	AssigneeID  Nullable[string]    `json:"assigneeId"`
	LabelIDs    *[]uuid.UUID        `json:"labelIds"`
	ListID      *uuid.UUID          `json:"listId"`
	Order       *int                `json:"order" validate:"omitempty,min=0"`
}

type ReorderCardsRequest struct {
	CardIDs []uuid.UUID `json:"cardIds" validate:"required,min=1"`
}

// CalendarCard is the flattened projection served by the calendar feed.
type CalendarCard struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	DueDate       time.Time `json:"dueDate"`
	Completed     bool      `json:"completed"`
	BoardID       uuid.UUID `json:"boardId"`
	BoardTitle    string    `json:"boardTitle"`
	BoardColor    string    `json:"boardColor"`
	ListID        uuid.UUID `json:"listId"`
	ListTitle     string    `json:"listTitle"`
	AssigneeID    *string   `json:"assigneeId"`
	AssigneeName  *string   `json:"assigneeName"`
	AssigneeImage *string   `json:"assigneeImage"`
}

type CalendarQuery struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type DashboardStats struct {
	Boards         int64 `json:"boards"`
	TotalCards     int64 `json:"totalCards"`
	CompletedCards int64 `json:"completedCards"`
	OverdueCards   int64 `json:"overdueCards"`
	DueSoonCards   int64 `json:"dueSoonCards"`
}
