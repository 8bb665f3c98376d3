package testutil

import (
	"fmt"
	"testing"

	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/middleware"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestJWTSecret signs tokens minted by Token.
const TestJWTSecret = "test-secret"

// NewTestDB opens an isolated in-memory sqlite database, migrates it and
// installs it as database.DB for the duration of the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.NewConfig(logger.Silent))
	require.NoError(t, err)

	prev := database.DB
	database.DB = db
	require.NoError(t, database.Migrate())

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		database.DB = prev
	})
	return db
}

// CreateUser inserts a user whose email is derived from id.
func CreateUser(t *testing.T, id string) models.User {
	t.Helper()
	email := id + "@example.com"
	user := models.User{ID: id, Email: &email, Name: "User " + id}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

// Token mints a session token for userID signed with TestJWTSecret.
func Token(t *testing.T, userID string) string {
	t.Helper()
	token, err := middleware.GenerateToken(TestJWTSecret, userID, "")
	require.NoError(t, err)
	return token
}
