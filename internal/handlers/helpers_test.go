package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arnold/boardly-api/internal/config"
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/middleware"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/routes"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/arnold/boardly-api/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

type testAPI struct {
	t   *testing.T
	app *fiber.App
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	testutil.NewTestDB(t)

	cfg := &config.Config{
		ClerkWebhookSecret: testWebhookSecret,
		SharedRateLimit:    1000,
		UploadsDir:         t.TempDir(),
	}
	app := routes.NewApp()
	routes.Setup(app, cfg, middleware.AuthConfig{Secret: testutil.TestJWTSecret}, nil)
	return &testAPI{t: t, app: app}
}

// do sends a JSON request as userID; an empty userID sends no credentials.
func (a *testAPI) do(method, path, userID string, body interface{}) *http.Response {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if userID != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+testutil.Token(a.t, userID))
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	return resp
}

// expect sends the request, checks the status and decodes the body into out.
func (a *testAPI) expect(status int, method, path, userID string, body, out interface{}) {
	a.t.Helper()
	resp := a.do(method, path, userID, body)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	require.Equal(a.t, status, resp.StatusCode, "%s %s: %s", method, path, data)
	if out != nil {
		require.NoError(a.t, json.Unmarshal(data, out))
	}
}

func (a *testAPI) createBoard(userID, title string) models.Board {
	a.t.Helper()
	var board models.Board
	a.expect(fiber.StatusCreated, http.MethodPost, "/api/boards", userID, fiber.Map{"title": title}, &board)
	return board
}

func (a *testAPI) createCard(userID string, board models.Board, list models.List, title string) models.Card {
	a.t.Helper()
	var card models.Card
	a.expect(fiber.StatusCreated, http.MethodPost,
		"/api/boards/"+board.ID.String()+"/lists/"+list.ID.String()+"/cards",
		userID, fiber.Map{"title": title}, &card)
	return card
}

func (a *testAPI) addMember(ownerID string, board models.Board, userID, role string) models.BoardMember {
	a.t.Helper()
	var existing int64
	require.NoError(a.t, database.DB.Model(&models.User{}).Where("id = ?", userID).Count(&existing).Error)
	if existing == 0 {
		testutil.CreateUser(a.t, userID)
	}
	var member models.BoardMember
	a.expect(fiber.StatusCreated, http.MethodPost, "/api/boards/"+board.ID.String()+"/members",
		ownerID, fiber.Map{"email": userID + "@example.com", "role": role}, &member)
	return member
}

func boardPath(board models.Board, rest string) string {
	return "/api/boards/" + board.ID.String() + rest
}

func setClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := services.Now
	services.Now = func() time.Time { return now }
	t.Cleanup(func() { services.Now = prev })
}
