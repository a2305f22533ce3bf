package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"username": testAdminUsername,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[UserResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, testAdminUsername, envelope.Data.Username)
	assert.True(t, envelope.Data.IsAdmin)

	sessionID := sessionCookieValue(t, resp)
	assert.NotEmpty(t, sessionID)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"username": testAdminUsername,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"username": "nobody",
		"password": "irrelevant",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Code)
}

func TestLogin_ShortCredentials(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"username": "ab",
		"password": "12345",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestWhoami(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	sessionID := ts.loginAdmin(t)

	resp := ts.api.Get("/api/v1/auth/me", sessionHeader(sessionID))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[UserResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, testAdminUsername, envelope.Data.Username)
}

func TestWhoami_NoCookie(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/auth/me")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "UNAUTHORIZED", envelope.Code)
}

func TestWhoami_BogusSession(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/auth/me", sessionHeader("session_doesnotexist"))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogout_InvalidatesSession(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	sessionID := ts.loginAdmin(t)

	resp := ts.api.Post("/api/v1/auth/logout", sessionHeader(sessionID))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// Cookie is cleared.
	cleared := http.Response{Header: resp.Header()}
	var found bool
	for _, c := range cleared.Cookies() {
		if c.Name == sessionCookieName {
			found = true
			assert.Empty(t, c.Value)
			assert.Equal(t, -1, c.MaxAge)
		}
	}
	assert.True(t, found, "logout must clear the session cookie")

	// Session no longer resolves.
	resp = ts.api.Get("/api/v1/auth/me", sessionHeader(sessionID))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogout_WithoutSession(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/auth/logout")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[MessageResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "Logged out successfully", envelope.Data.Message)
}

func TestLogin_RateLimited(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	// Exhaust the per-IP burst with bad attempts from one address.
	var last int
	for n := 0; n < loginBurst+5; n++ {
		resp := ts.api.Post("/api/v1/auth/login",
			"X-Forwarded-For: 203.0.113.9",
			map[string]any{"username": testAdminUsername, "password": "wrong-password"},
		)
		last = resp.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)

	// Other addresses are unaffected.
	resp := ts.api.Post("/api/v1/auth/login",
		"X-Forwarded-For: 203.0.113.10",
		map[string]any{"username": testAdminUsername, "password": testAdminPassword},
	)
	assert.Equal(t, http.StatusOK, resp.Code)
}
