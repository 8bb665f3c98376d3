package handlers

import (
	"errors"
	"strings"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/middleware"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetMembers returns the board owner and its collaborators.
func GetMembers(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionView)
	if err != nil {
		return err
	}

	var owner models.User
	if err := database.DB.Take(&owner, "id = ?", board.UserID).Error; err != nil {
		return err
	}

	var members []models.BoardMember
	if err := database.DB.Where("board_id = ?", board.ID).
		Preload("User").
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return err
	}

	return c.JSON(models.MembersResponse{Owner: owner.Summary(), Members: members})
}

// AddMember adds a collaborator by email (owner only).
func AddMember(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionOwner)
	if err != nil {
		return err
	}

	var req models.AddMemberRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Role == "" {
		req.Role = models.RoleEditor
	}

	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).Take(&user).Error; err != nil {
		return notFoundOr(err, "User")
	}
	if user.ID == board.UserID {
		return apperrors.Validation("Validation failed", map[string]string{"email": "the board owner cannot be added as a member"})
	}

	// Check if already a member
	var existing models.BoardMember
	err = database.DB.Where("board_id = ? AND user_id = ?", board.ID, user.ID).Take(&existing).Error
	if err == nil {
		return apperrors.Conflict("User is already a member of this board")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	member := models.BoardMember{
		BoardID: board.ID,
		UserID:  user.ID,
		Role:    req.Role,
	}
	if err := database.DB.Create(&member).Error; err != nil {
		return err
	}
	member.User = &user

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityAddMember,
		EntityType: models.EntityBoard,
		EntityID:   board.ID.String(),
		Data: map[string]interface{}{
			"memberEmail": user.Email,
			"memberRole":  member.Role,
		},
	})

	return c.Status(fiber.StatusCreated).JSON(member)
}

// UpdateMember changes a collaborator's role (owner only).
func UpdateMember(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionOwner)
	if err != nil {
		return err
	}
	member, err := findMember(c, board)
	if err != nil {
		return err
	}

	var req models.UpdateMemberRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := database.DB.Model(member).Update("role", req.Role).Error; err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityUpdateMemberRole,
		EntityType: models.EntityBoard,
		EntityID:   board.ID.String(),
		Data: map[string]interface{}{
			"memberEmail": member.User.Email,
			"memberRole":  member.Role,
		},
	})

	return c.JSON(member)
}

// RemoveMember removes a collaborator. Members may remove themselves; only
// the owner may remove others.
func RemoveMember(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	board, err := authorizeBoard(c, services.PermissionView)
	if err != nil {
		return err
	}
	member, err := findMember(c, board)
	if err != nil {
		return err
	}

	if member.UserID != userID && board.UserID != userID {
		return apperrors.Forbidden("Only board owners can remove other members")
	}

	if err := database.DB.Delete(member).Error; err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityRemoveMember,
		EntityType: models.EntityBoard,
		EntityID:   board.ID.String(),
		Data:       map[string]interface{}{"memberEmail": member.User.Email},
	})

	return c.SendStatus(fiber.StatusNoContent)
}

func findMember(c *fiber.Ctx, board *models.Board) (*models.BoardMember, error) {
	memberID, err := paramUUID(c, "memberId", "member")
	if err != nil {
		return nil, err
	}
	var member models.BoardMember
	if err := database.DB.Where("id = ? AND board_id = ?", memberID, board.ID).
		Preload("User").
		Take(&member).Error; err != nil {
		return nil, notFoundOr(err, "Member")
	}
	return &member, nil
}
