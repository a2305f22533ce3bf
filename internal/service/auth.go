package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/animes2u/catalog-server/internal/auth"
	"github.com/animes2u/catalog-server/internal/domain"
	domainerrors "github.com/animes2u/catalog-server/internal/errors"
	"github.com/animes2u/catalog-server/internal/store"
	"github.com/animes2u/catalog-server/internal/validation"
)

// AuthService handles credential checks. Session lifecycle is delegated to
// SessionService.
type AuthService struct {
	store          *store.Store
	sessionService *SessionService
	validator      *validation.Validator
	logger         *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store *store.Store,
	sessionService *SessionService,
	validator *validation.Validator,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:          store,
		sessionService: sessionService,
		validator:      validator,
		logger:         logger,
	}
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

// Login verifies credentials and opens a new session. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*domain.User, *domain.Session, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, nil, err
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil, domainerrors.InvalidCredentials("invalid credentials")
		}
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, nil, domainerrors.InvalidCredentials("invalid credentials")
	}

	session, err := s.sessionService.CreateSession(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)
	}

	return user, session, nil
}

// Logout destroys the given session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionService.DestroySession(ctx, sessionID); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("user logged out", "session_id", sessionID)
	}

	return nil
}

// Whoami resolves the current session into its user.
func (s *AuthService) Whoami(ctx context.Context, sessionID string) (*domain.User, error) {
	_, user, err := s.sessionService.ResolveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
