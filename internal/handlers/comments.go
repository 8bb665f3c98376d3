package handlers

import (
	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/middleware"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetCardComments returns a cursor-paginated page of a card's comments, newest first.
func GetCardComments(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionView)
	if err != nil {
		return err
	}
	card, err := findCard(c, board)
	if err != nil {
		return err
	}

	query := models.CursorQuery{Limit: services.DefaultFeedLimit}
	if err := parseQuery(c, &query); err != nil {
		return err
	}

	page, err := services.Paginate[models.Comment](database.DB, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("card_id = ?", card.ID)
	}, query.Cursor, query.Limit, "User")
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"comments":   page.Items,
		"nextCursor": page.NextCursor,
		"hasMore":    page.HasMore,
	})
}

// AddComment adds a comment to a card
func AddComment(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionEdit)
	if err != nil {
		return err
	}
	card, err := findCard(c, board)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	comment := models.Comment{
		Content: req.Content,
		UserID:  middleware.GetUserID(c),
		CardID:  card.ID,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		return err
	}

	// Preload user for response
	comment.User = middleware.GetUser(c)

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityAddComment,
		EntityType: models.EntityComment,
		EntityID:   comment.ID.String(),
		CardID:     &card.ID,
		Data: map[string]interface{}{
			"cardTitle": card.Title,
			"content":   services.Truncate(comment.Content, 50),
		},
	})

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment deletes a comment (only by the comment author or the board owner)
func DeleteComment(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	board, err := authorizeBoard(c, services.PermissionView)
	if err != nil {
		return err
	}
	card, err := findCard(c, board)
	if err != nil {
		return err
	}
	commentID, err := paramUUID(c, "commentId", "comment")
	if err != nil {
		return err
	}

	var comment models.Comment
	if err := database.DB.Where("id = ? AND card_id = ?", commentID, card.ID).Take(&comment).Error; err != nil {
		return notFoundOr(err, "Comment")
	}

	if comment.UserID != userID && board.UserID != userID {
		return apperrors.Forbidden("You can only delete your own comments")
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityDeleteComment,
		EntityType: models.EntityComment,
		EntityID:   comment.ID.String(),
		CardID:     &card.ID,
		Data:       map[string]interface{}{"cardTitle": card.Title},
	})

	return c.SendStatus(fiber.StatusNoContent)
}
