package services_test

import (
	"testing"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/arnold/boardly-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// populate hangs one of every dependent row off board.
func populate(t *testing.T, board *models.Board) models.Card {
	t.Helper()
	db := database.DB

	label := models.Label{Name: "bug", Color: "#ff0000", BoardID: board.ID}
	require.NoError(t, db.Create(&label).Error)

	card := newCard(t, board.Lists[0], "Fix login")
	require.NoError(t, db.Model(&card).Association("Labels").Append(&label))

	require.NoError(t, db.Create(&models.Comment{Content: "on it", UserID: "owner", CardID: card.ID}).Error)
	services.LogActivity(db, services.ActivityEntry{
		Type:       models.ActivityCreateCard,
		EntityType: models.EntityCard,
		EntityID:   card.ID.String(),
		UserID:     "owner",
		BoardID:    board.ID,
		CardID:     &card.ID,
	})
	_, err := services.CreateShare(db, board.ID, "owner", nil)
	require.NoError(t, err)
	return card
}

func countWhere(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, database.DB.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestDeleteBoardCascades(t *testing.T) {
	testutil.NewTestDB(t)
	testutil.CreateUser(t, "owner")
	doomed := newBoard(t, "owner")
	kept := newBoard(t, "owner")
	addMember(t, doomed, "editor", models.RoleEditor)
	doomedCard := populate(t, doomed)
	keptCard := populate(t, kept)

	require.NoError(t, services.DeleteBoard(database.DB, doomed.ID))

	require.Zero(t, countWhere(t, &models.Board{}, "id = ?", doomed.ID))
	require.Zero(t, countWhere(t, &models.List{}, "board_id = ?", doomed.ID))
	require.Zero(t, countWhere(t, &models.Card{}, "id = ?", doomedCard.ID))
	require.Zero(t, countWhere(t, &models.Comment{}, "card_id = ?", doomedCard.ID))
	require.Zero(t, countWhere(t, &models.Activity{}, "board_id = ?", doomed.ID))
	require.Zero(t, countWhere(t, &models.BoardMember{}, "board_id = ?", doomed.ID))
	require.Zero(t, countWhere(t, &models.BoardShare{}, "board_id = ?", doomed.ID))
	require.Zero(t, countWhere(t, &models.Label{}, "board_id = ?", doomed.ID))

	var links int64
	require.NoError(t, database.DB.Table("card_labels").Where("card_id = ?", doomedCard.ID).Count(&links).Error)
	require.Zero(t, links)

	require.Equal(t, int64(1), countWhere(t, &models.Board{}, "id = ?", kept.ID))
	require.Equal(t, int64(3), countWhere(t, &models.List{}, "board_id = ?", kept.ID))
	require.Equal(t, int64(1), countWhere(t, &models.Comment{}, "card_id = ?", keptCard.ID))
	require.Equal(t, int64(1), countWhere(t, &models.Label{}, "board_id = ?", kept.ID))

	_, err := services.Authorize(database.DB, doomed.ID, "owner", services.PermissionView)
	require.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestDeleteListRemovesItsCards(t *testing.T) {
	testutil.NewTestDB(t)
	testutil.CreateUser(t, "owner")
	board := newBoard(t, "owner")
	card := populate(t, board)
	survivor := newCard(t, board.Lists[1], "elsewhere")

	require.NoError(t, services.DeleteList(database.DB, board.Lists[0].ID))

	require.Zero(t, countWhere(t, &models.Card{}, "id = ?", card.ID))
	require.Zero(t, countWhere(t, &models.Comment{}, "card_id = ?", card.ID))
	require.Equal(t, int64(1), countWhere(t, &models.Card{}, "id = ?", survivor.ID))
	require.Equal(t, int64(1), countWhere(t, &models.Label{}, "board_id = ?", board.ID))
}

func TestDuplicateBoard(t *testing.T) {
	testutil.NewTestDB(t)
	testutil.CreateUser(t, "owner")
	testutil.CreateUser(t, "viewer")
	source := newBoard(t, "owner")
	populate(t, source)
	newCard(t, source.Lists[0], "Second")

	copied, err := services.DuplicateBoard(database.DB, source, "viewer")
	require.NoError(t, err)
	require.NotEqual(t, source.ID, copied.ID)
	require.Equal(t, "Roadmap (Copy)", copied.Title)
	require.Equal(t, "viewer", copied.UserID)

	detail, err := services.LoadBoardDetail(database.DB, copied.ID)
	require.NoError(t, err)
	require.Len(t, detail.Lists, 3)
	require.Equal(t, "To Do", detail.Lists[0].Title)

	cards := detail.Lists[0].Cards
	require.Len(t, cards, 2)
	require.Equal(t, "Fix login", cards[0].Title)
	require.Equal(t, 0, cards[0].Order)
	require.Equal(t, "Second", cards[1].Title)
	require.Equal(t, 1, cards[1].Order)

	require.Len(t, cards[0].Labels, 1)
	require.Equal(t, copied.ID, cards[0].Labels[0].BoardID, "labels point at the copy's own labels")

	require.Zero(t, countWhere(t, &models.Comment{}, "card_id = ?", cards[0].ID))
	require.Zero(t, countWhere(t, &models.BoardShare{}, "board_id = ?", copied.ID))
	require.Equal(t, int64(1), countWhere(t, &models.Label{}, "board_id = ?", source.ID))
}

func TestDuplicateBoardDropsForeignAssignees(t *testing.T) {
	testutil.NewTestDB(t)
	testutil.CreateUser(t, "owner")
	source := newBoard(t, "owner")
	addMember(t, source, "viewer", models.RoleViewer)

	card := newCard(t, source.Lists[0], "Assigned to owner")
	owner := "owner"
	require.NoError(t, database.DB.Model(&card).Update("assignee_id", owner).Error)

	copied, err := services.DuplicateBoard(database.DB, source, "viewer")
	require.NoError(t, err)
	detail, err := services.LoadBoardDetail(database.DB, copied.ID)
	require.NoError(t, err)
	require.Nil(t, detail.Lists[0].Cards[0].AssigneeID, "owner of the source has no access to the copy")

	own, err := services.DuplicateBoard(database.DB, source, "owner")
	require.NoError(t, err)
	detail, err = services.LoadBoardDetail(database.DB, own.ID)
	require.NoError(t, err)
	require.Equal(t, "owner", *detail.Lists[0].Cards[0].AssigneeID)
}

func TestLoadBoardDetailMissing(t *testing.T) {
	testutil.NewTestDB(t)
	_, err := services.LoadBoardDetail(database.DB, uuid.New())
	require.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestApplyBoardUpdate(t *testing.T) {
	desc := "old"
	board := &models.Board{Title: "Roadmap", Description: &desc}
	title := "  Q3 Roadmap "

	changes := services.ApplyBoardUpdate(board, models.UpdateBoardRequest{
		Title:       &title,
		Description: models.Nullable[string]{Set: true},
	})

	require.Equal(t, "Q3 Roadmap", board.Title)
	require.Nil(t, board.Description)
	require.Contains(t, changes, "description")
	require.NotContains(t, changes, "imageUrl")
}

func TestFormatCategory(t *testing.T) {
	require.Equal(t, "Work", services.FormatCategory("wORK"))
	require.Equal(t, "Other", services.FormatCategory(""))
	require.Equal(t, "Équipe", services.FormatCategory("éQUIPE"))
}
