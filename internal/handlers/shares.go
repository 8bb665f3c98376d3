package handlers

import (
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/middleware"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// GetShareLinks lists the board's share links, newest first.
func GetShareLinks(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionView)
	if err != nil {
		return err
	}

	links, err := services.ListShares(database.DB, board.ID)
	if err != nil {
		return err
	}
	return c.JSON(links)
}

// CreateShareLink issues a time-limited read-only link for the board.
func CreateShareLink(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionManage)
	if err != nil {
		return err
	}

	var req models.CreateShareRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}

	share, err := services.CreateShare(database.DB, board.ID, middleware.GetUserID(c), req.ExpiresInDays)
	if err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityCreateShareLink,
		EntityType: models.EntityBoard,
		EntityID:   board.ID.String(),
		Data:       map[string]interface{}{"expiresAt": share.ExpiresAt},
	})

	return c.Status(fiber.StatusCreated).JSON(share)
}

// RevokeShareLink deletes a share link; the token stops working at once.
func RevokeShareLink(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionManage)
	if err != nil {
		return err
	}
	shareID, err := paramUUID(c, "shareId", "share link")
	if err != nil {
		return err
	}

	share, err := services.RevokeShare(database.DB, board.ID, shareID)
	if err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityRevokeShareLink,
		EntityType: models.EntityBoard,
		EntityID:   board.ID.String(),
		Data:       map[string]interface{}{"shareId": share.ID.String()},
	})

	return c.SendStatus(fiber.StatusNoContent)
}

// GetSharedBoard serves a read-only board to anyone holding a live token.
func GetSharedBoard(c *fiber.Ctx) error {
	share, err := services.ResolveShare(database.DB, c.Params("token"))
	if err != nil {
		return err
	}

	board, err := services.LoadBoardDetail(database.DB, share.BoardID)
	if err != nil {
		return err
	}

	// Shared views never expose email addresses.
	if board.User != nil {
		board.User.Email = nil
	}
	for i := range board.Lists {
		for j := range board.Lists[i].Cards {
			if assignee := board.Lists[i].Cards[j].Assignee; assignee != nil {
				assignee.Email = nil
			}
		}
	}

	return c.JSON(models.SharedBoardResponse{
		Board:        *board,
		IsSharedView: true,
		ShareLink:    *share,
	})
}
