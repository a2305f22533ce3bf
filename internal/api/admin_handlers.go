package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/animes2u/catalog-server/internal/domain"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createAnime",
		Method:        http.MethodPost,
		Path:          "/api/v1/admin/anime",
		Summary:       "Create anime",
		Description:   "Adds a catalog entry",
		Tags:          []string{"Admin"},
		Security:      []map[string][]string{{"session": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateAnime)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateAnime",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/anime/{id}",
		Summary:     "Update anime",
		Description: "Merges supplied fields into an existing entry",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleUpdateAnime)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteAnime",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/anime/{id}",
		Summary:     "Delete anime",
		Description: "Removes an entry from the catalog",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleDeleteAnime)
}

// === DTOs ===

// CreateAnimeRequest is the request body for creating a catalog entry.
// Field validation happens in the admin service, not at the schema level.
type CreateAnimeRequest struct {
	Title         string   `json:"title" doc:"Display title"`
	Description   string   `json:"description" doc:"Synopsis"`
	PosterURL     string   `json:"poster_url" doc:"Poster image URL"`
	Genres        []string `json:"genres" doc:"Genre labels"`
	Episodes      int      `json:"episodes" doc:"Episode count"`
	Language      string   `json:"language" doc:"sub, dub, or both"`
	Status        string   `json:"status" doc:"ongoing or completed"`
	TelegramURL   string   `json:"telegram_url" doc:"Telegram channel URL"`
	IsRecommended bool     `json:"is_recommended,omitempty" doc:"Staff pick flag"`
}

func (r *CreateAnimeRequest) toDraft() *domain.AnimeDraft {
	return &domain.AnimeDraft{
		Title:         r.Title,
		Description:   r.Description,
		PosterURL:     r.PosterURL,
		Genres:        r.Genres,
		Episodes:      r.Episodes,
		Language:      domain.Language(r.Language),
		Status:        domain.Status(r.Status),
		TelegramURL:   r.TelegramURL,
		IsRecommended: r.IsRecommended,
	}
}

// CreateAnimeInput wraps the create request for Huma.
type CreateAnimeInput struct {
	SessionID string `cookie:"animes2u_session"`
	Body      CreateAnimeRequest
}

// UpdateAnimeRequest is the request body for a partial update. Omitted
// fields keep their stored value.
type UpdateAnimeRequest struct {
	Title         *string   `json:"title,omitempty" doc:"Display title"`
	Description   *string   `json:"description,omitempty" doc:"Synopsis"`
	PosterURL     *string   `json:"poster_url,omitempty" doc:"Poster image URL"`
	Genres        *[]string `json:"genres,omitempty" doc:"Genre labels"`
	Episodes      *int      `json:"episodes,omitempty" doc:"Episode count"`
	Language      *string   `json:"language,omitempty" doc:"sub, dub, or both"`
	Status        *string   `json:"status,omitempty" doc:"ongoing or completed"`
	TelegramURL   *string   `json:"telegram_url,omitempty" doc:"Telegram channel URL"`
	IsRecommended *bool     `json:"is_recommended,omitempty" doc:"Staff pick flag"`
}

func (r *UpdateAnimeRequest) toPatch() *domain.AnimePatch {
	patch := &domain.AnimePatch{
		Title:         r.Title,
		Description:   r.Description,
		PosterURL:     r.PosterURL,
		Genres:        r.Genres,
		Episodes:      r.Episodes,
		TelegramURL:   r.TelegramURL,
		IsRecommended: r.IsRecommended,
	}
	if r.Language != nil {
		lang := domain.Language(*r.Language)
		patch.Language = &lang
	}
	if r.Status != nil {
		status := domain.Status(*r.Status)
		patch.Status = &status
	}
	return patch
}

// UpdateAnimeInput wraps the update request for Huma.
type UpdateAnimeInput struct {
	SessionID string `cookie:"animes2u_session"`
	ID        int64  `path:"id" doc:"Entry ID"`
	Body      UpdateAnimeRequest
}

// DeleteAnimeInput carries the entry ID and session cookie for deletion.
type DeleteAnimeInput struct {
	SessionID string `cookie:"animes2u_session"`
	ID        int64  `path:"id" doc:"Entry ID"`
}

// === Handlers ===

func (s *Server) handleCreateAnime(ctx context.Context, input *CreateAnimeInput) (*AnimeOutput, error) {
	if _, err := s.authenticateAdmin(ctx, input.SessionID); err != nil {
		return nil, err
	}

	anime, err := s.services.Admin.CreateAnime(ctx, input.Body.toDraft())
	if err != nil {
		return nil, err
	}

	return &AnimeOutput{Body: mapAnimeResponse(anime)}, nil
}

func (s *Server) handleUpdateAnime(ctx context.Context, input *UpdateAnimeInput) (*AnimeOutput, error) {
	if _, err := s.authenticateAdmin(ctx, input.SessionID); err != nil {
		return nil, err
	}

	anime, err := s.services.Admin.UpdateAnime(ctx, input.ID, input.Body.toPatch())
	if err != nil {
		return nil, err
	}

	return &AnimeOutput{Body: mapAnimeResponse(anime)}, nil
}

func (s *Server) handleDeleteAnime(ctx context.Context, input *DeleteAnimeInput) (*SuccessOutput, error) {
	if _, err := s.authenticateAdmin(ctx, input.SessionID); err != nil {
		return nil, err
	}

	if err := s.services.Admin.DeleteAnime(ctx, input.ID); err != nil {
		return nil, err
	}

	return &SuccessOutput{Body: SuccessResponse{Success: true}}, nil
}
