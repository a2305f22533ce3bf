package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/animes2u/catalog-server/internal/domain"
	domainerrors "github.com/animes2u/catalog-server/internal/errors"
)

// authenticateSession resolves the session cookie and returns the user.
func (s *Server) authenticateSession(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, domainerrors.Unauthorized("not authenticated")
	}

	_, user, err := s.services.Session.ResolveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// authenticateAdmin resolves the session cookie and requires an admin user.
func (s *Server) authenticateAdmin(ctx context.Context, sessionID string) (*domain.User, error) {
	user, err := s.authenticateSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin {
		return nil, domainerrors.Forbidden("admin access required")
	}

	return user, nil
}

// extractIP picks the client IP from proxy headers.
// X-Forwarded-For may contain a chain, the first entry is the client.
func extractIP(forwardedFor, realIP string) string {
	if forwardedFor != "" {
		if i := strings.IndexByte(forwardedFor, ','); i >= 0 {
			return strings.TrimSpace(forwardedFor[:i])
		}
		return strings.TrimSpace(forwardedFor)
	}
	return realIP
}

// sessionCookie builds the session cookie set on login.
func sessionCookie(sessionID string, ttl time.Duration) http.Cookie {
	return http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// clearSessionCookie builds the expired cookie set on logout.
func clearSessionCookie() http.Cookie {
	return http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
