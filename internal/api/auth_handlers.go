package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/animes2u/catalog-server/internal/domain"
	domainerrors "github.com/animes2u/catalog-server/internal/errors"
	"github.com/animes2u/catalog-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in",
		Description: "Verifies credentials and starts a cookie session",
		Tags:        []string{"Auth"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Log out",
		Description: "Ends the current session and clears the cookie",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "whoami",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Current user",
		Description: "Returns the user behind the session cookie",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleWhoami)
}

// === DTOs ===

// UserResponse contains user data in API responses. The password hash never
// leaves the server.
type UserResponse struct {
	ID       int64  `json:"id" doc:"User ID"`
	Username string `json:"username" doc:"Login name"`
	IsAdmin  bool   `json:"is_admin" doc:"Whether the user may manage the catalog"`
}

func mapUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Username string `json:"username" doc:"Login name"`
	Password string `json:"password" doc:"Password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
	Body          LoginRequest
}

// LoginOutput wraps the login response for Huma and sets the session cookie.
type LoginOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      UserResponse
}

// LogoutInput carries the session cookie for logout.
type LogoutInput struct {
	SessionID string `cookie:"animes2u_session"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message" doc:"Confirmation message"`
}

// LogoutOutput wraps the logout response and clears the session cookie.
type LogoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      MessageResponse
}

// WhoamiInput carries the session cookie.
type WhoamiInput struct {
	SessionID string `cookie:"animes2u_session"`
}

// WhoamiOutput wraps the current-user response for Huma.
type WhoamiOutput struct {
	Body UserResponse
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	ip := extractIP(input.XForwardedFor, input.XRealIP)
	if !s.loginRateLimiter.Allow(ip) {
		s.logger.Warn("login rate limit exceeded", "ip", ip)
		return nil, domainerrors.RateLimited("too many login attempts, try again later")
	}

	user, session, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		SetCookie: sessionCookie(session.ID, s.services.Session.TTL()),
		Body:      mapUserResponse(user),
	}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *LogoutInput) (*LogoutOutput, error) {
	// Logout is idempotent: a missing or stale cookie still clears cleanly.
	if input.SessionID != "" {
		if err := s.services.Auth.Logout(ctx, input.SessionID); err != nil {
			return nil, err
		}
	}

	return &LogoutOutput{
		SetCookie: clearSessionCookie(),
		Body:      MessageResponse{Message: "Logged out successfully"},
	}, nil
}

func (s *Server) handleWhoami(ctx context.Context, input *WhoamiInput) (*WhoamiOutput, error) {
	user, err := s.authenticateSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &WhoamiOutput{Body: mapUserResponse(user)}, nil
}
