package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity types
const (
	ActivityCreateBoard      = "create_board"
	ActivityDuplicateBoard   = "duplicate_board"
	ActivityUpdateBoard      = "update_board"
	ActivityArchiveBoard     = "archive_board"
	ActivityUnarchiveBoard   = "unarchive_board"
	ActivityCreateList       = "create_list"
	ActivityUpdateList       = "update_list"
	ActivityDeleteList       = "delete_list"
	ActivityReorderLists     = "reorder_lists"
	ActivityCreateCard       = "create_card"
	ActivityUpdateCard       = "update_card"
	ActivityMoveCard         = "move_card"
	ActivityCompleteCard     = "complete_card"
	ActivityUncompleteCard   = "uncomplete_card"
	ActivityDeleteCard       = "delete_card"
	ActivityReorderCards     = "reorder_cards"
	ActivityAddComment       = "add_comment"
	ActivityDeleteComment    = "delete_comment"
	ActivityAddMember        = "add_member"
	ActivityUpdateMemberRole = "update_member_role"
	ActivityRemoveMember     = "remove_member"
	ActivityCreateShareLink  = "create_share_link"
	ActivityRevokeShareLink  = "revoke_share_link"
	ActivityCreateLabel      = "create_label"
	ActivityDeleteLabel      = "delete_label"
)

// Entity types
const (
	EntityBoard   = "board"
	EntityList    = "list"
	EntityCard    = "card"
	EntityComment = "comment"
	EntityLabel   = "label"
)

// Activity is an append-only audit record. It is never updated.
type Activity struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Type       string         `json:"type" gorm:"not null"`
	EntityType string         `json:"entityType" gorm:"not null;index:idx_activities_entity"`
	EntityID   string         `json:"entityId" gorm:"not null;index:idx_activities_entity"`
	UserID     string         `json:"userId" gorm:"not null"`
	BoardID    uuid.UUID      `json:"boardId" gorm:"type:uuid;index;not null"`
	CardID     *uuid.UUID     `json:"cardId" gorm:"type:uuid;index"`
	Data       datatypes.JSON `json:"data"`
	CreatedAt  time.Time      `json:"createdAt" gorm:"index"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a Activity) CursorID() string {
	return a.ID.String()
}
