package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arnold/boardly-api/internal/config"
	"github.com/arnold/boardly-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestSharedBoardLimiter(t *testing.T) {
	cfg := &config.Config{SharedRateLimit: 2}
	require.Nil(t, middleware.NewRateLimitStorage(cfg))

	app := fiber.New()
	app.Get("/shared/:token", middleware.SharedBoardLimiter(cfg, nil), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/shared/abc", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/shared/abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
