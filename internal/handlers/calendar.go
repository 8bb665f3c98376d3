package handlers

import (
	"time"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/middleware"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultCalendarColor = "#3b82f6"

// accessibleCards scopes cards to lists of boards the user can see.
func accessibleCards(userID string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		db := database.DB
		lists := db.Model(&models.List{}).Select("id").
			Where("board_id IN (?)", services.AccessibleBoardIDs(db, userID))
		return tx.Where("list_id IN (?)", lists)
	}
}

// parseTimeParam reads an RFC 3339 query value as UTC.
func parseTimeParam(name, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperrors.Validation("Validation failed", map[string]string{
			name: name + " must be an RFC 3339 timestamp",
		})
	}
	return t.UTC(), nil
}

// GetCalendarCards returns every card with a due date across the caller's
// boards, soonest first.
func GetCalendarCards(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var query models.CalendarQuery
	if err := parseQuery(c, &query); err != nil {
		return err
	}

	tx := database.DB.Scopes(accessibleCards(userID)).Where("due_date IS NOT NULL")
	if query.From != "" {
		from, err := parseTimeParam("from", query.From)
		if err != nil {
			return err
		}
		tx = tx.Where("due_date >= ?", from)
	}
	if query.To != "" {
		to, err := parseTimeParam("to", query.To)
		if err != nil {
			return err
		}
		tx = tx.Where("due_date <= ?", to)
	}

	var cards []models.Card
	if err := tx.Preload("List").Preload("Assignee").Order("due_date ASC").Find(&cards).Error; err != nil {
		return err
	}

	boardIDs := make([]uuid.UUID, 0, len(cards))
	for _, card := range cards {
		boardIDs = append(boardIDs, card.List.BoardID)
	}
	var boards []models.Board
	if len(boardIDs) > 0 {
		if err := database.DB.Where("id IN ?", boardIDs).Find(&boards).Error; err != nil {
			return err
		}
	}
	byID := make(map[uuid.UUID]models.Board, len(boards))
	for _, b := range boards {
		byID[b.ID] = b
	}

	out := make([]models.CalendarCard, 0, len(cards))
	for _, card := range cards {
		board := byID[card.List.BoardID]
		color := board.Color
		if color == "" {
			color = defaultCalendarColor
		}

		item := models.CalendarCard{
			ID:          card.ID,
			Title:       card.Title,
			Description: card.Description,
			DueDate:     *card.DueDate,
			Completed:   card.Completed,
			BoardID:     board.ID,
			BoardTitle:  board.Title,
			BoardColor:  color,
			ListID:      card.List.ID,
			ListTitle:   card.List.Title,
		}
		if card.Assignee != nil {
			item.AssigneeID = &card.Assignee.ID
			item.AssigneeName = &card.Assignee.Name
			item.AssigneeImage = &card.Assignee.ImageURL
		}
		out = append(out, item)
	}

	return c.JSON(out)
}

// GetDashboardStats summarizes the caller's boards and cards.
func GetDashboardStats(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	db := database.DB
	now := services.Now()

	var stats models.DashboardStats
	if err := db.Model(&models.Board{}).
		Where("id IN (?)", services.AccessibleBoardIDs(db, userID)).
		Count(&stats.Boards).Error; err != nil {
		return err
	}

	counts := []struct {
		dest  *int64
		where func(*gorm.DB) *gorm.DB
	}{
		{&stats.TotalCards, func(tx *gorm.DB) *gorm.DB { return tx }},
		{&stats.CompletedCards, func(tx *gorm.DB) *gorm.DB { return tx.Where("completed = ?", true) }},
		{&stats.OverdueCards, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("completed = ? AND due_date < ?", false, now)
		}},
		{&stats.DueSoonCards, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("completed = ? AND due_date >= ? AND due_date <= ?", false, now, now.Add(7*24*time.Hour))
		}},
	}
	for _, count := range counts {
		if err := db.Model(&models.Card{}).
			Scopes(accessibleCards(userID), count.where).
			Count(count.dest).Error; err != nil {
			return err
		}
	}

	return c.JSON(stats)
}
