// Package service holds the application services between the HTTP surface and
// the store. Services own validation and the domain error taxonomy; handlers
// only translate to and from the wire.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/animes2u/catalog-server/internal/domain"
	domainerrors "github.com/animes2u/catalog-server/internal/errors"
	"github.com/animes2u/catalog-server/internal/id"
	"github.com/animes2u/catalog-server/internal/store"
)

// SessionService handles login session lifecycle. Sessions are opaque
// server-side records referenced by a browser cookie.
type SessionService struct {
	store  *store.Store
	ttl    time.Duration
	logger *slog.Logger
}

// NewSessionService creates a new session management service.
func NewSessionService(store *store.Store, ttl time.Duration, logger *slog.Logger) *SessionService {
	return &SessionService{
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// TTL returns the configured session lifetime. Handlers use it to set the
// cookie max-age to match the server-side expiry.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// CreateSession creates a new session for a user and returns it.
func (s *SessionService) CreateSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	sessionID, err := id.Generate("session")
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		ID:         sessionID,
		UserID:     user.ID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
		LastSeenAt: now,
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return session, nil
}

// ResolveSession looks up a session by ID and returns it together with its
// user. Expired or unknown sessions yield an unauthorized error; a session
// whose user has vanished is cleaned up and also reported unauthorized.
func (s *SessionService) ResolveSession(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) || errors.Is(err, store.ErrSessionExpired) {
			return nil, nil, domainerrors.Unauthorized("not authenticated").WithCause(err)
		}
		return nil, nil, fmt.Errorf("get session: %w", err)
	}

	user, err := s.store.GetUser(ctx, session.UserID)
	if err != nil {
		_ = s.store.DeleteSession(ctx, session.ID)
		return nil, nil, domainerrors.Unauthorized("not authenticated").WithCause(err)
	}

	session.LastSeenAt = time.Now()
	if err := s.store.TouchSession(ctx, session); err != nil && s.logger != nil {
		s.logger.Warn("failed to touch session", "session_id", session.ID, "error", err)
	}

	return session, user, nil
}

// DestroySession removes a session. Destroying an unknown session succeeds,
// keeping logout idempotent.
func (s *SessionService) DestroySession(ctx context.Context, sessionID string) error {
	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return domainerrors.Session("failed to destroy session").WithCause(err)
	}
	return nil
}

// PruneExpired removes expired sessions. Called by the cleanup job.
func (s *SessionService) PruneExpired(ctx context.Context) (int, error) {
	return s.store.DeleteExpiredSessions(ctx)
}
