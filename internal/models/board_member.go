package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleOwner  = "OWNER"
	RoleEditor = "EDITOR"
	RoleViewer = "VIEWER"
)

// BoardMember is a non-owner collaborator on a board.
type BoardMember struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	BoardID   uuid.UUID `json:"boardId" gorm:"type:uuid;not null;uniqueIndex:idx_board_members_board_user"`
	UserID    string    `json:"userId" gorm:"not null;uniqueIndex:idx_board_members_board_user;index"`
	Role      string    `json:"role" gorm:"not null;default:'EDITOR'"` // EDITOR, VIEWER
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (bm *BoardMember) BeforeCreate(tx *gorm.DB) error {
	if bm.ID == uuid.Nil {
		bm.ID = uuid.New()
	}
	if bm.Role == "" {
		bm.Role = RoleEditor
	}
	return nil
}

type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=EDITOR VIEWER"`
}

type UpdateMemberRequest struct {
	Role string `json:"role" validate:"required,oneof=EDITOR VIEWER"`
}

type MembersResponse struct {
	Owner   UserSummary   `json:"owner"`
	Members []BoardMember `json:"members"`
}
