package handlers

import (
	"github.com/arnold/boardly-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// GetMe returns the authenticated user.
func GetMe(c *fiber.Ctx) error {
	return c.JSON(middleware.GetUser(c))
}
