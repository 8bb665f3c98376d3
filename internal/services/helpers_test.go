package services_test

import (
	"testing"
	"time"

	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/arnold/boardly-api/internal/testutil"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, ownerID string) *models.Board {
	t.Helper()
	board, err := services.CreateBoard(database.DB, ownerID, models.CreateBoardRequest{Title: "Roadmap"})
	require.NoError(t, err)
	return board
}

func newCard(t *testing.T, list models.List, title string) models.Card {
	t.Helper()
	card := models.Card{Title: title, ListID: list.ID, UserID: "owner"}
	require.NoError(t, services.AppendCard(database.DB, &card))
	return card
}

func addMember(t *testing.T, board *models.Board, userID, role string) {
	t.Helper()
	testutil.CreateUser(t, userID)
	require.NoError(t, database.DB.Create(&models.BoardMember{BoardID: board.ID, UserID: userID, Role: role}).Error)
}

// setClock pins services.Now for the rest of the test.
func setClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := services.Now
	services.Now = func() time.Time { return now }
	t.Cleanup(func() { services.Now = prev })
}
