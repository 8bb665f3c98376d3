package handlers

import (
	"strings"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/logging"
	"github.com/arnold/boardly-api/internal/middleware"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBoards returns a page of boards the caller owns or is a member of.
func GetBoards(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	query := models.BoardListQuery{Page: 1, Limit: 9}
	if err := parseQuery(c, &query); err != nil {
		return err
	}

	db := database.DB
	scope := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("id IN (?)", services.AccessibleBoardIDs(db, userID))
		if query.Search != "" {
			like := "%" + strings.ToLower(query.Search) + "%"
			tx = tx.Where("LOWER(title) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", like, like)
		}
		if query.Category != "" {
			tx = tx.Where("LOWER(category) = ?", strings.ToLower(query.Category))
		}
		if query.Favorites == "true" {
			tx = tx.Where("is_favorite = ?", true)
		}
		return tx
	}

	var total int64
	if err := db.Model(&models.Board{}).Scopes(scope).Count(&total).Error; err != nil {
		return err
	}

	var boards []models.Board
	if err := db.Scopes(scope).
		Preload("Lists", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "board_id")
		}).
		Preload("Lists.Cards", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "list_id", "completed")
		}).
		Order("updated_at DESC").
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&boards).Error; err != nil {
		return err
	}

	roles, err := memberRoles(userID, boards)
	if err != nil {
		return err
	}

	summaries := make([]models.BoardSummary, len(boards))
	for i, board := range boards {
		tasks, completed := 0, 0
		for _, list := range board.Lists {
			tasks += len(list.Cards)
			for _, card := range list.Cards {
				if card.Completed {
					completed++
				}
			}
		}

		role := models.RoleOwner
		if board.UserID != userID {
			role = roles[board.ID]
		}

		summaries[i] = models.BoardSummary{
			ID:                  board.ID,
			Title:               board.Title,
			Description:         board.Description,
			ImageURL:            board.ImageURL,
			Color:               board.Color,
			Category:            services.FormatCategory(board.Category),
			Archived:            board.Archived,
			IsFavorite:          board.IsFavorite,
			UserID:              board.UserID,
			Role:                role,
			TasksCount:          tasks,
			CompletedTasksCount: completed,
			CreatedAt:           board.CreatedAt,
			UpdatedAt:           board.UpdatedAt,
		}
	}

	return c.JSON(fiber.Map{
		"boards":     summaries,
		"pagination": models.NewPageInfo(query.Page, query.Limit, total),
	})
}

func memberRoles(userID string, boards []models.Board) (map[uuid.UUID]string, error) {
	roles := make(map[uuid.UUID]string)
	var shared []uuid.UUID
	for _, board := range boards {
		if board.UserID != userID {
			shared = append(shared, board.ID)
		}
	}
	if len(shared) == 0 {
		return roles, nil
	}

	var members []models.BoardMember
	if err := database.DB.Where("user_id = ? AND board_id IN ?", userID, shared).Find(&members).Error; err != nil {
		return nil, err
	}
	for _, m := range members {
		roles[m.BoardID] = m.Role
	}
	return roles, nil
}

func CreateBoard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateBoardRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	board, err := services.CreateBoard(database.DB, userID, req)
	if err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityCreateBoard,
		EntityType: models.EntityBoard,
		EntityID:   board.ID.String(),
		Data:       map[string]interface{}{"title": board.Title},
	})

	return c.Status(fiber.StatusCreated).JSON(board)
}

// GetBoard returns the board with its lists and cards in display order.
func GetBoard(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionView)
	if err != nil {
		return err
	}

	detail, err := services.LoadBoardDetail(database.DB, board.ID)
	if err != nil {
		return err
	}
	role, err := services.RoleOf(database.DB, board, middleware.GetUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(models.BoardDetail{Board: *detail, Role: role})
}

func UpdateBoard(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionManage)
	if err != nil {
		return err
	}

	var req models.UpdateBoardRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	changes := services.ApplyBoardUpdate(board, req)
	if len(changes) == 0 {
		return apperrors.Validation("No fields to update", nil)
	}

	if err := database.DB.Save(board).Error; err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityUpdateBoard,
		EntityType: models.EntityBoard,
		EntityID:   board.ID.String(),
		Data:       changes,
	})

	return c.JSON(board)
}

// BoardAction handles POST /boards/:id, which duplicates or archives a board
// depending on the action in the body.
func BoardAction(c *fiber.Ctx) error {
	var req models.BoardActionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	switch req.Action {
	case "duplicate":
		return duplicateBoard(c)
	default:
		if req.Archived == nil {
			return apperrors.Validation("Validation failed", map[string]string{"archived": "archived is required"})
		}
		return archiveBoard(c, *req.Archived)
	}
}

func duplicateBoard(c *fiber.Ctx) error {
	source, err := authorizeBoard(c, services.PermissionView)
	if err != nil {
		return err
	}

	board, err := services.DuplicateBoard(database.DB, source, middleware.GetUserID(c))
	if err != nil {
		return err
	}

	logActivity(c, board, services.ActivityEntry{
		Type:       models.ActivityDuplicateBoard,
		EntityType: models.EntityBoard,
		EntityID:   board.ID.String(),
		Data: map[string]interface{}{
			"title":          board.Title,
			"duplicatedFrom": source.ID.String(),
		},
	})

	detail, err := services.LoadBoardDetail(database.DB, board.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(detail)
}

func archiveBoard(c *fiber.Ctx, archived bool) error {
	board, err := authorizeBoard(c, services.PermissionManage)
	if err != nil {
		return err
	}

	board.Archived = archived
	if err := database.DB.Model(board).Update("archived", archived).Error; err != nil {
		return err
	}

	activityType := models.ActivityArchiveBoard
	if !archived {
		activityType = models.ActivityUnarchiveBoard
	}
	logActivity(c, board, services.ActivityEntry{
		Type:       activityType,
		EntityType: models.EntityBoard,
		EntityID:   board.ID.String(),
		Data:       map[string]interface{}{"archived": archived},
	})

	return c.JSON(board)
}

// DeleteBoard removes the board and everything on it. Owner only.
func DeleteBoard(c *fiber.Ctx) error {
	board, err := authorizeBoard(c, services.PermissionOwner)
	if err != nil {
		return err
	}

	if err := services.DeleteBoard(database.DB, board.ID); err != nil {
		return err
	}

	logging.LogEvent("board_deleted", map[string]interface{}{
		"board_id": board.ID.String(),
		"user_id":  board.UserID,
	})

	return c.SendStatus(fiber.StatusNoContent)
}

// GetCategories returns the categories used across the caller's boards.
func GetCategories(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var rows []models.CategoryCount
	if err := database.DB.Model(&models.Board{}).
		Select("category, COUNT(*) AS count").
		Where("id IN (?)", services.AccessibleBoardIDs(database.DB, userID)).
		Group("category").
		Order("category ASC").
		Scan(&rows).Error; err != nil {
		return err
	}

	// Categories differing only in case are merged.
	merged := make([]models.CategoryCount, 0, len(rows))
	index := make(map[string]int)
	for _, row := range rows {
		name := services.FormatCategory(row.Category)
		if i, ok := index[name]; ok {
			merged[i].Count += row.Count
			continue
		}
		index[name] = len(merged)
		merged = append(merged, models.CategoryCount{Category: name, Count: row.Count})
	}

	return c.JSON(merged)
}
