package handlers

import (
	"github.com/arnold/boardly-api/internal/database"
	"github.com/gofiber/fiber/v2"
)

func Health(c *fiber.Ctx) error {
	if err := database.Ping(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
