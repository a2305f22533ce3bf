package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/animes2u/catalog-server/internal/auth"
	"github.com/animes2u/catalog-server/internal/domain"
	"github.com/animes2u/catalog-server/internal/service"
	"github.com/animes2u/catalog-server/internal/store"
	"github.com/animes2u/catalog-server/internal/validation"
)

const (
	testAdminUsername = "admin"
	testAdminPassword = "admin123"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
	Error   string `json:"error"`
}

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api     humatest.TestAPI
	cleanup func()
}

// setupTestServer creates a server backed by a fresh in-memory store with the
// default admin account seeded.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := store.New(nil)
	require.NoError(t, err)

	_, err = st.EnsureAdminUser(context.Background(), testAdminUsername, testAdminPassword)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	v := validation.New()

	sessionService := service.NewSessionService(st, 24*time.Hour, logger)
	services := &Services{
		Auth:    service.NewAuthService(st, sessionService, v, logger),
		Session: sessionService,
		Catalog: service.NewCatalogService(st, logger),
		Admin:   service.NewAdminService(st, v, logger),
	}

	s := NewServer(st, services, []string{"http://localhost:3000"}, logger)

	cleanup := func() {
		s.Stop()
		_ = st.Close()
	}

	return &testServer{
		Server:  s,
		api:     humatest.Wrap(t, s.api),
		cleanup: cleanup,
	}
}

// login authenticates as the given user and returns the session cookie value.
func (ts *testServer) login(t *testing.T, username, password string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())

	return sessionCookieValue(t, resp)
}

// loginAdmin authenticates as the seeded admin.
func (ts *testServer) loginAdmin(t *testing.T) string {
	t.Helper()
	return ts.login(t, testAdminUsername, testAdminPassword)
}

// createUser inserts a user directly into the store, bypassing the API.
func (ts *testServer) createUser(t *testing.T, username, password string, isAdmin bool) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	err = ts.store.CreateUser(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	})
	require.NoError(t, err)
}

// createAnime creates a catalog entry through the admin API and returns it.
func (ts *testServer) createAnime(t *testing.T, sessionID string, body map[string]any) AnimeResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/admin/anime", sessionHeader(sessionID), body)
	require.Equal(t, http.StatusCreated, resp.Code, "create failed: %s", resp.Body.String())

	var envelope testEnvelope[AnimeResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}

// validAnimeBody returns a request body that passes draft validation.
func validAnimeBody(title string) map[string]any {
	return map[string]any{
		"title":        title,
		"description":  "A long enough synopsis for the catalog entry.",
		"poster_url":   "https://example.com/poster.jpg",
		"genres":       []string{"Action"},
		"episodes":     12,
		"language":     "sub",
		"status":       "ongoing",
		"telegram_url": "https://t.me/example",
	}
}

// sessionHeader formats the session cookie header for humatest requests.
func sessionHeader(sessionID string) string {
	return "Cookie: " + sessionCookieName + "=" + sessionID
}

// sessionCookieValue extracts the session cookie from a login response.
func sessionCookieValue(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()

	parsed := http.Response{Header: resp.Header()}
	for _, c := range parsed.Cookies() {
		if c.Name == sessionCookieName {
			return c.Value
		}
	}
	t.Fatalf("no %s cookie in response", sessionCookieName)
	return ""
}

func TestServer_UnknownRoute(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/nope")
	require.Equal(t, http.StatusNotFound, resp.Code)
}
