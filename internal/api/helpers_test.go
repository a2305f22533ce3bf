package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name         string
		forwardedFor string
		realIP       string
		want         string
	}{
		{"forwarded single", "203.0.113.7", "", "203.0.113.7"},
		{"forwarded chain takes first", "203.0.113.7, 10.0.0.1, 10.0.0.2", "10.0.0.9", "203.0.113.7"},
		{"real ip fallback", "", "198.51.100.4", "198.51.100.4"},
		{"nothing", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractIP(tt.forwardedFor, tt.realIP))
		})
	}
}

func TestSessionCookie(t *testing.T) {
	c := sessionCookie("session_abc", time.Hour)
	assert.Equal(t, sessionCookieName, c.Name)
	assert.Equal(t, "session_abc", c.Value)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.HttpOnly)

	cleared := clearSessionCookie()
	assert.Equal(t, -1, cleared.MaxAge)
	assert.Empty(t, cleared.Value)
}
