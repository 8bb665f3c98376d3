package handlers_test

import (
	"net/http"
	"testing"

	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetBoard(t *testing.T) {
	api := newTestAPI(t)
	testutil.CreateUser(t, "owner")

	board := api.createBoard("owner", "Roadmap")
	require.Equal(t, "owner", board.UserID)
	require.Equal(t, models.DefaultBoardColor, board.Color)
	require.Len(t, board.Lists, 3)

	var detail models.BoardDetail
	api.expect(fiber.StatusOK, http.MethodGet, boardPath(board, ""), "owner", nil, &detail)
	require.Equal(t, models.RoleOwner, detail.Role)
	require.Equal(t, []string{"To Do", "In Progress", "Done"},
		[]string{detail.Lists[0].Title, detail.Lists[1].Title, detail.Lists[2].Title})

	var activities int64
	require.NoError(t, database.DB.Model(&models.Activity{}).
		Where("board_id = ? AND type = ?", board.ID, models.ActivityCreateBoard).
		Count(&activities).Error)
	require.Equal(t, int64(1), activities)
}

func TestCreateBoardValidation(t *testing.T) {
	api := newTestAPI(t)
	testutil.CreateUser(t, "owner")

	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	api.expect(fiber.StatusBadRequest, http.MethodPost, "/api/boards", "owner", fiber.Map{"color": "teal"}, &body)
	require.Equal(t, "Validation failed", body.Error)
	require.Contains(t, body.Details, "title")
	require.Contains(t, body.Details, "color")
}

func TestBoardsRequireAuth(t *testing.T) {
	api := newTestAPI(t)
	api.expect(fiber.StatusUnauthorized, http.MethodGet, "/api/boards", "", nil, nil)
}

func TestGetBoardsListsOwnedAndSharedBoards(t *testing.T) {
	api := newTestAPI(t)
	testutil.CreateUser(t, "owner")
	testutil.CreateUser(t, "other")

	mine := api.createBoard("owner", "Mine")
	theirs := api.createBoard("other", "Theirs")
	api.createBoard("other", "Private")
	api.addMember("other", theirs, "owner", models.RoleEditor)

	var page struct {
		Boards     []models.BoardSummary `json:"boards"`
		Pagination models.PageInfo       `json:"pagination"`
	}
	api.expect(fiber.StatusOK, http.MethodGet, "/api/boards", "owner", nil, &page)
	require.Len(t, page.Boards, 2)
	require.Equal(t, int64(2), page.Pagination.TotalItems)

	roles := map[string]string{}
	for _, b := range page.Boards {
		roles[b.ID.String()] = b.Role
		require.Zero(t, b.TasksCount)
	}
	require.Equal(t, models.RoleOwner, roles[mine.ID.String()])
	require.Equal(t, models.RoleEditor, roles[theirs.ID.String()])

	api.expect(fiber.StatusOK, http.MethodGet, "/api/boards?search=mine", "owner", nil, &page)
	require.Len(t, page.Boards, 1)
	require.Equal(t, mine.ID, page.Boards[0].ID)
}

func TestBoardAccessRules(t *testing.T) {
	api := newTestAPI(t)
	testutil.CreateUser(t, "owner")
	testutil.CreateUser(t, "stranger")
	board := api.createBoard("owner", "Roadmap")
	api.addMember("owner", board, "viewer", models.RoleViewer)
	api.addMember("owner", board, "editor", models.RoleEditor)

	rename := map[string]string{"title": "Renamed"}

	// Non-members cannot tell the board exists.
	api.expect(fiber.StatusNotFound, http.MethodGet, boardPath(board, ""), "stranger", nil, nil)
	api.expect(fiber.StatusNotFound, http.MethodPatch, boardPath(board, ""), "stranger", rename, nil)

	var detail models.BoardDetail
	api.expect(fiber.StatusOK, http.MethodGet, boardPath(board, ""), "viewer", nil, &detail)
	require.Equal(t, models.RoleViewer, detail.Role)

	api.expect(fiber.StatusForbidden, http.MethodPatch, boardPath(board, ""), "viewer", rename, nil)
	api.expect(fiber.StatusForbidden, http.MethodPost, boardPath(board, "/lists"), "viewer", map[string]string{"title": "New"}, nil)
	api.expect(fiber.StatusForbidden, http.MethodPost, boardPath(board, "/share"), "viewer", nil, nil)

	api.expect(fiber.StatusOK, http.MethodPatch, boardPath(board, ""), "editor", rename, nil)
	api.expect(fiber.StatusForbidden, http.MethodDelete, boardPath(board, ""), "editor", nil, nil)

	api.expect(fiber.StatusNoContent, http.MethodDelete, boardPath(board, ""), "owner", nil, nil)
	api.expect(fiber.StatusNotFound, http.MethodGet, boardPath(board, ""), "owner", nil, nil)

	api.expect(fiber.StatusBadRequest, http.MethodGet, "/api/boards/not-a-uuid", "owner", nil, nil)
}

func TestUpdateBoardClearsNullableFields(t *testing.T) {
	api := newTestAPI(t)
	testutil.CreateUser(t, "owner")
	board := api.createBoard("owner", "Roadmap")

	var updated models.Board
	api.expect(fiber.StatusOK, http.MethodPatch, boardPath(board, ""), "owner",
		map[string]string{"description": "Plans"}, &updated)
	require.Equal(t, "Plans", *updated.Description)

	api.expect(fiber.StatusOK, http.MethodPatch, boardPath(board, ""), "owner",
		map[string]interface{}{"description": nil}, &updated)
	require.Nil(t, updated.Description)

	api.expect(fiber.StatusBadRequest, http.MethodPatch, boardPath(board, ""), "owner", map[string]string{}, nil)
}

func TestBoardActions(t *testing.T) {
	api := newTestAPI(t)
	testutil.CreateUser(t, "owner")
	board := api.createBoard("owner", "Roadmap")
	api.createCard("owner", board, board.Lists[0], "Ship it")
	api.addMember("owner", board, "viewer", models.RoleViewer)

	var copied models.Board
	api.expect(fiber.StatusCreated, http.MethodPost, boardPath(board, ""), "viewer",
		map[string]string{"action": "duplicate"}, &copied)
	require.Equal(t, "Roadmap (Copy)", copied.Title)
	require.Equal(t, "viewer", copied.UserID)
	require.Len(t, copied.Lists, 3)
	require.Len(t, copied.Lists[0].Cards, 1)

	var duplicated int64
	require.NoError(t, database.DB.Model(&models.Activity{}).
		Where("board_id = ? AND type = ?", copied.ID, models.ActivityDuplicateBoard).
		Count(&duplicated).Error)
	require.Equal(t, int64(1), duplicated)

	api.expect(fiber.StatusForbidden, http.MethodPost, boardPath(board, ""), "viewer",
		map[string]interface{}{"action": "archive", "archived": true}, nil)

	var archived models.Board
	api.expect(fiber.StatusOK, http.MethodPost, boardPath(board, ""), "owner",
		map[string]interface{}{"action": "archive", "archived": true}, &archived)
	require.True(t, archived.Archived)

	api.expect(fiber.StatusBadRequest, http.MethodPost, boardPath(board, ""), "owner",
		map[string]string{"action": "explode"}, nil)
}

func TestGetCategoriesMergesCase(t *testing.T) {
	api := newTestAPI(t)
	testutil.CreateUser(t, "owner")
	for _, category := range []string{"work", "WORK", "Personal"} {
		api.expect(fiber.StatusCreated, http.MethodPost, "/api/boards", "owner",
			map[string]string{"title": "Board", "category": category}, nil)
	}

	var categories []models.CategoryCount
	api.expect(fiber.StatusOK, http.MethodGet, "/api/boards/categories", "owner", nil, &categories)
	counts := map[string]int64{}
	for _, c := range categories {
		counts[c.Category] = c.Count
	}
	require.Equal(t, map[string]int64{"Work": 2, "Personal": 1}, counts)
}
