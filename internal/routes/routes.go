package routes

import (
	"github.com/arnold/boardly-api/internal/config"
	"github.com/arnold/boardly-api/internal/handlers"
	"github.com/arnold/boardly-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, cfg *config.Config, auth middleware.AuthConfig, limiterStorage fiber.Storage) {
	app.Get("/health", handlers.Health)

	api := app.Group("/api")

	// Public
	api.Post("/webhooks/clerk", handlers.ClerkWebhook(cfg.ClerkWebhookSecret))
	api.Get("/shared/boards/:token", middleware.SharedBoardLimiter(cfg, limiterStorage), handlers.GetSharedBoard)

	protected := middleware.Protected(auth)

	api.Get("/me", protected, handlers.GetMe)
	api.Get("/calendar/cards", protected, handlers.GetCalendarCards)
	api.Get("/dashboard/stats", protected, handlers.GetDashboardStats)

	boards := api.Group("/boards", protected)
	boards.Get("/", handlers.GetBoards)
	boards.Post("/", handlers.CreateBoard)
	boards.Get("/categories", handlers.GetCategories)
	boards.Get("/:id", handlers.GetBoard)
	boards.Patch("/:id", handlers.UpdateBoard)
	boards.Post("/:id", handlers.BoardAction)
	boards.Delete("/:id", handlers.DeleteBoard)
	boards.Post("/:id/image", handlers.UploadBoardImage(cfg.UploadsDir))

	// Lists
	boards.Get("/:id/lists", handlers.GetLists)
	boards.Post("/:id/lists", handlers.CreateList)
	boards.Put("/:id/lists/order", handlers.ReorderLists)
	boards.Get("/:id/lists/:listId", handlers.GetList)
	boards.Patch("/:id/lists/:listId", handlers.UpdateList)
	boards.Delete("/:id/lists/:listId", handlers.DeleteList)

	// Cards
	boards.Get("/:id/lists/:listId/cards", handlers.GetListCards)
	boards.Post("/:id/lists/:listId/cards", handlers.CreateCard)
	boards.Put("/:id/lists/:listId/cards/order", handlers.ReorderCards)
	boards.Get("/:id/cards/:cardId", handlers.GetCard)
	boards.Patch("/:id/cards/:cardId", handlers.UpdateCard)
	boards.Delete("/:id/cards/:cardId", handlers.DeleteCard)

	// Comments & activity
	boards.Get("/:id/cards/:cardId/comments", handlers.GetCardComments)
	boards.Post("/:id/cards/:cardId/comments", handlers.AddComment)
	boards.Delete("/:id/cards/:cardId/comments/:commentId", handlers.DeleteComment)
	boards.Get("/:id/cards/:cardId/activities", handlers.GetCardActivities)
	boards.Get("/:id/activities", handlers.GetBoardActivity)

	// Members & sharing
	boards.Get("/:id/members", handlers.GetMembers)
	boards.Post("/:id/members", handlers.AddMember)
	boards.Patch("/:id/members/:memberId", handlers.UpdateMember)
	boards.Delete("/:id/members/:memberId", handlers.RemoveMember)
	boards.Get("/:id/share", handlers.GetShareLinks)
	boards.Post("/:id/share", handlers.CreateShareLink)
	boards.Delete("/:id/share/:shareId", handlers.RevokeShareLink)

	// Labels
	boards.Get("/:id/labels", handlers.GetLabels)
	boards.Post("/:id/labels", handlers.CreateLabel)
	boards.Delete("/:id/labels/:labelId", handlers.DeleteLabel)
}

// NewApp builds the Fiber app with the shared error handler.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "boardly-api",
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    6 * 1024 * 1024,
	})
}
