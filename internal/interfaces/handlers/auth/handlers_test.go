package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	authsvc "minutebook-backend/internal/application/auth"
	"minutebook-backend/internal/domain"
	"minutebook-backend/internal/middleware"
	"minutebook-backend/internal/pkg/response"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFinder struct {
	user *domain.User
	err  error
}

func (f *fakeFinder) FindByEmailAndPassword(email, password string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func setupAuthApp(t *testing.T, finder authsvc.UserFinder) (*fiber.App, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	cfg := middleware.SessionConfig{
		Secret:   "test-secret",
		RedisURL: "redis://" + mr.Addr(),
	}

	sessionHandler, rdb, err := middleware.Session(cfg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(sessionHandler)

	h := &Handlers{UserFinder: finder, Rdb: rdb, Config: cfg}
	app.Post("/api/v1/auth/login", h.Login)
	app.Get("/api/v1/auth/me", h.Me)
	app.Delete("/api/v1/auth/logout", h.Logout)

	return app, mr
}

func doLogin(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	b, _ := json.Marshal(LoginRequest{Email: "ada@example.com", Password: "hunter22A"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.SessionCookieName {
			return ck
		}
	}
	return nil
}

func TestLogin_SetsCookieAndStoresSession(t *testing.T) {
	user := &domain.User{UserID: uuid.New(), Fullname: "Ada Lovelace", Email: "ada@example.com", Role: "member"}
	app, mr := setupAuthApp(t, &fakeFinder{user: user})

	resp := doLogin(t, app)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ck := sessionCookie(resp)
	require.NotNil(t, ck)
	assert.True(t, ck.HttpOnly)
	require.True(t, len(ck.Value) > 2 && ck.Value[:2] == "s:")

	sessionID := ck.Value[2:]
	stored, err := mr.Get(middleware.SessionRedisPrefix + sessionID)
	require.NoError(t, err)
	assert.Contains(t, stored, user.UserID.String())

	// Session ids are tracked per user
	members, err := mr.SMembers(userSessionsPrefix + user.UserID.String())
	require.NoError(t, err)
	assert.Contains(t, members, sessionID)
}

func TestLogin_WrongPassword(t *testing.T) {
	app, _ := setupAuthApp(t, &fakeFinder{err: authsvc.ErrIncorrectPassword})

	resp := doLogin(t, app)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_MissingFields(t *testing.T) {
	app, _ := setupAuthApp(t, &fakeFinder{})

	b, _ := json.Marshal(LoginRequest{Email: "ada@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMe_WithSessionCookie(t *testing.T) {
	user := &domain.User{UserID: uuid.New(), Fullname: "Ada Lovelace", Email: "ada@example.com", Role: "member"}
	app, _ := setupAuthApp(t, &fakeFinder{user: user})

	loginResp := doLogin(t, app)
	ck := sessionCookie(loginResp)
	require.NotNil(t, ck)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(ck)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body response.SuccessBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body.Data.(map[string]interface{})
	me := data["user"].(map[string]interface{})
	assert.Equal(t, user.UserID.String(), me["user_id"])
	assert.Equal(t, "Ada Lovelace", me["fullname"])
}

func TestMe_Anonymous(t *testing.T) {
	app, _ := setupAuthApp(t, &fakeFinder{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogout_DeletesRedisSession(t *testing.T) {
	user := &domain.User{UserID: uuid.New(), Fullname: "Ada Lovelace", Email: "ada@example.com", Role: "member"}
	app, mr := setupAuthApp(t, &fakeFinder{user: user})

	loginResp := doLogin(t, app)
	ck := sessionCookie(loginResp)
	require.NotNil(t, ck)
	sessionID := ck.Value[2:]

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/auth/logout", nil)
	req.AddCookie(ck)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The session middleware re-saves an empty session for the old id, but
	// the user payload must be gone.
	stored, err := mr.Get(middleware.SessionRedisPrefix + sessionID)
	if err == nil {
		assert.NotContains(t, stored, user.UserID.String())
	}
}
