package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxImageSize = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// UploadBoardImage stores a cover image under uploadsDir and points the
// board's imageUrl at it.
func UploadBoardImage(uploadsDir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		board, err := authorizeBoard(c, services.PermissionManage)
		if err != nil {
			return err
		}

		file, err := c.FormFile("image")
		if err != nil {
			return apperrors.Validation("No image file provided", map[string]string{"image": "image is required"})
		}

		// Validate file type
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExts[ext] {
			return apperrors.Validation("Only jpg, png, and webp images are allowed", map[string]string{"image": "unsupported file type"})
		}

		// Limit to 5MB
		if file.Size > maxImageSize {
			return apperrors.Validation("Image must be under 5MB", map[string]string{"image": "file too large"})
		}

		if err := os.MkdirAll(uploadsDir, 0755); err != nil {
			return err
		}

		filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
		if err := c.SaveFile(file, filepath.Join(uploadsDir, filename)); err != nil {
			return err
		}

		imageURL := "/uploads/" + filename
		board.ImageURL = &imageURL
		if err := database.DB.Model(board).Update("image_url", imageURL).Error; err != nil {
			return err
		}

		logActivity(c, board, services.ActivityEntry{
			Type:       models.ActivityUpdateBoard,
			EntityType: models.EntityBoard,
			EntityID:   board.ID.String(),
			Data:       map[string]interface{}{"imageUrl": imageURL},
		})

		return c.JSON(fiber.Map{
			"url":   imageURL,
			"board": board,
		})
	}
}
