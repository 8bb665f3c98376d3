package services_test

import (
	"encoding/json"
	"testing"

	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/arnold/boardly-api/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestLogActivityStoresData(t *testing.T) {
	testutil.NewTestDB(t)
	testutil.CreateUser(t, "owner")
	board := newBoard(t, "owner")

	services.LogActivity(database.DB, services.ActivityEntry{
		Type:       models.ActivityUpdateBoard,
		EntityType: models.EntityBoard,
		EntityID:   board.ID.String(),
		UserID:     "owner",
		BoardID:    board.ID,
		Data:       map[string]interface{}{"title": "Q3"},
	})

	var stored models.Activity
	require.NoError(t, database.DB.Where("board_id = ?", board.ID).Take(&stored).Error)
	require.Equal(t, models.ActivityUpdateBoard, stored.Type)
	require.Nil(t, stored.CardID)

	var data map[string]string
	require.NoError(t, json.Unmarshal(stored.Data, &data))
	require.Equal(t, "Q3", data["title"])
}

func TestLogActivitySwallowsFailures(t *testing.T) {
	testutil.NewTestDB(t)
	testutil.CreateUser(t, "owner")
	board := newBoard(t, "owner")
	require.NoError(t, database.DB.Migrator().DropTable(&models.Activity{}))

	require.NotPanics(t, func() {
		services.LogActivity(database.DB, services.ActivityEntry{
			Type:       models.ActivityDeleteList,
			EntityType: models.EntityList,
			EntityID:   board.Lists[0].ID.String(),
			UserID:     "owner",
			BoardID:    board.ID,
		})
	})
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", services.Truncate("short", 50))
	require.Equal(t, "abc...", services.Truncate("abcdef", 3))
	require.Equal(t, "héé...", services.Truncate("hééllo", 3))
}
