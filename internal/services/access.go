package services

import (
	"errors"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Permission levels, ascending. Edit and Manage are the same tier.
type Permission int

const (
	PermissionView Permission = iota
	PermissionEdit
	PermissionManage
	PermissionOwner
)

func (p Permission) String() string {
	switch p {
	case PermissionView:
		return "VIEW"
	case PermissionEdit:
		return "EDIT"
	case PermissionManage:
		return "MANAGE"
	default:
		return "OWNER"
	}
}

// Decide applies the board access rules to an already loaded board and the
// caller's membership row (nil when the caller is not a member).
//
// Callers with no relationship to the board get NotFound so a board's
// existence is not disclosed. Members whose role is too weak get Forbidden.
func Decide(board *models.Board, member *models.BoardMember, userID string, perm Permission) error {
	if board.UserID == userID {
		return nil
	}
	if member == nil {
		return apperrors.NotFound("Board")
	}

	switch perm {
	case PermissionView:
		return nil
	case PermissionEdit, PermissionManage:
		if member.Role == models.RoleEditor {
			return nil
		}
		return apperrors.Forbidden("You do not have permission to modify this board")
	default:
		return apperrors.Forbidden("Only the board owner can perform this action")
	}
}

// Authorize loads the board and checks that userID holds perm on it.
func Authorize(db *gorm.DB, boardID uuid.UUID, userID string, perm Permission) (*models.Board, error) {
	var board models.Board
	if err := db.Take(&board, "id = ?", boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Board")
		}
		return nil, apperrors.Internal(err)
	}

	member, err := findMember(db, boardID, userID)
	if err != nil {
		return nil, err
	}
	if err := Decide(&board, member, userID, perm); err != nil {
		return nil, err
	}
	return &board, nil
}

// RoleOf reports the caller's role on a board they can access.
func RoleOf(db *gorm.DB, board *models.Board, userID string) (string, error) {
	if board.UserID == userID {
		return models.RoleOwner, nil
	}
	member, err := findMember(db, board.ID, userID)
	if err != nil {
		return "", err
	}
	if member == nil {
		return "", apperrors.NotFound("Board")
	}
	return member.Role, nil
}

// AccessibleBoardIDs is a subquery selecting ids of boards userID owns or
// is a member of.
func AccessibleBoardIDs(db *gorm.DB, userID string) *gorm.DB {
	memberOf := db.Model(&models.BoardMember{}).Select("board_id").Where("user_id = ?", userID)
	return db.Model(&models.Board{}).Select("id").Where("user_id = ? OR id IN (?)", userID, memberOf)
}

func findMember(db *gorm.DB, boardID uuid.UUID, userID string) (*models.BoardMember, error) {
	var member models.BoardMember
	err := db.Where("board_id = ? AND user_id = ?", boardID, userID).Take(&member).Error
	switch {
	case err == nil:
		return &member, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, apperrors.Internal(err)
	}
}
