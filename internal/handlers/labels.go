package handlers

import (
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetLabels(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionView)
	if err != nil {
		return err
	}

	var labels []models.Label
	if err := database.DB.Where("board_id = ?", board.ID).Order("name ASC").Find(&labels).Error; err != nil {
		return err
	}
	return c.JSON(labels)
}

func CreateLabel(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionEdit)
	if err != nil {
		return err
	}

	var req models.CreateLabelRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	label := models.Label{Name: req.Name, Color: req.Color, BoardID: board.ID}
	if err := database.DB.Create(&label).Error; err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityCreateLabel,
		EntityType: models.EntityLabel,
		EntityID:   label.ID.String(),
		Data:       map[string]interface{}{"name": label.Name, "color": label.Color},
	})

	return c.Status(fiber.StatusCreated).JSON(label)
}

// DeleteLabel removes the label and detaches it from every card.
func DeleteLabel(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionEdit)
	if err != nil {
		return err
	}
	labelID, err := paramUUID(c, "labelId", "label")
	if err != nil {
		return err
	}

	var label models.Label
	if err := database.DB.Where("id = ? AND board_id = ?", labelID, board.ID).Take(&label).Error; err != nil {
		return notFoundOr(err, "Label")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM card_labels WHERE label_id = ?", label.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&label).Error
	})
	if err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityDeleteLabel,
		EntityType: models.EntityLabel,
		EntityID:   label.ID.String(),
		Data:       map[string]interface{}{"name": label.Name},
	})

	return c.SendStatus(fiber.StatusNoContent)
}
