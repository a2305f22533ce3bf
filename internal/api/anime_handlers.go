package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/animes2u/catalog-server/internal/domain"
	"github.com/animes2u/catalog-server/internal/service"
)

func (s *Server) registerAnimeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listAnime",
		Method:      http.MethodGet,
		Path:        "/api/v1/anime",
		Summary:     "List anime",
		Description: "Returns catalog entries, optionally searched or filtered",
		Tags:        []string{"Anime"},
	}, s.handleListAnime)

	huma.Register(s.api, huma.Operation{
		OperationID: "recommendedAnime",
		Method:      http.MethodGet,
		Path:        "/api/v1/anime/recommended",
		Summary:     "Recommended anime",
		Description: "Returns staff-picked entries",
		Tags:        []string{"Anime"},
	}, s.handleRecommendedAnime)

	huma.Register(s.api, huma.Operation{
		OperationID: "trendingAnime",
		Method:      http.MethodGet,
		Path:        "/api/v1/anime/trending",
		Summary:     "Trending anime",
		Description: "Returns the most viewed entries",
		Tags:        []string{"Anime"},
	}, s.handleTrendingAnime)

	huma.Register(s.api, huma.Operation{
		OperationID: "recentAnime",
		Method:      http.MethodGet,
		Path:        "/api/v1/anime/recent",
		Summary:     "Recent anime",
		Description: "Returns the most recently added entries",
		Tags:        []string{"Anime"},
	}, s.handleRecentAnime)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAnime",
		Method:      http.MethodGet,
		Path:        "/api/v1/anime/{id}",
		Summary:     "Get anime",
		Description: "Returns a catalog entry by ID",
		Tags:        []string{"Anime"},
	}, s.handleGetAnime)

	huma.Register(s.api, huma.Operation{
		OperationID: "recordAnimeView",
		Method:      http.MethodPost,
		Path:        "/api/v1/anime/{id}/view",
		Summary:     "Record view",
		Description: "Increments the view counter for an entry",
		Tags:        []string{"Anime"},
	}, s.handleRecordView)
}

// === DTOs ===

// AnimeResponse contains catalog entry data in API responses.
type AnimeResponse struct {
	ID            int64     `json:"id" doc:"Entry ID"`
	Title         string    `json:"title" doc:"Display title"`
	Description   string    `json:"description" doc:"Synopsis"`
	PosterURL     string    `json:"poster_url" doc:"Poster image URL"`
	Genres        []string  `json:"genres" doc:"Genre labels"`
	Episodes      int       `json:"episodes" doc:"Episode count"`
	Language      string    `json:"language" doc:"Audio availability: sub, dub, or both"`
	Status        string    `json:"status" doc:"Airing state: ongoing or completed"`
	TelegramURL   string    `json:"telegram_url" doc:"Telegram channel URL"`
	IsRecommended bool      `json:"is_recommended" doc:"Staff pick flag"`
	Views         int64     `json:"views" doc:"View count"`
	CreatedAt     time.Time `json:"created_at" doc:"Creation time"`
}

func mapAnimeResponse(anime *domain.Anime) AnimeResponse {
	return AnimeResponse{
		ID:            anime.ID,
		Title:         anime.Title,
		Description:   anime.Description,
		PosterURL:     anime.PosterURL,
		Genres:        anime.Genres,
		Episodes:      anime.Episodes,
		Language:      string(anime.Language),
		Status:        string(anime.Status),
		TelegramURL:   anime.TelegramURL,
		IsRecommended: anime.IsRecommended,
		Views:         anime.Views,
		CreatedAt:     anime.CreatedAt,
	}
}

func mapAnimeList(entries []*domain.Anime) []AnimeResponse {
	out := make([]AnimeResponse, 0, len(entries))
	for _, anime := range entries {
		out = append(out, mapAnimeResponse(anime))
	}
	return out
}

// AnimeListResponse contains a list of catalog entries.
type AnimeListResponse struct {
	Anime []AnimeResponse `json:"anime" doc:"Catalog entries"`
}

// ListAnimeInput contains search and filter parameters for listing anime.
// A non-empty search wins over the filters.
type ListAnimeInput struct {
	Search   string `query:"search" doc:"Case-insensitive title substring"`
	Genre    string `query:"genre" doc:"Exact genre label"`
	Language string `query:"language" doc:"sub, dub, or both (both matches everything)"`
	Status   string `query:"status" doc:"ongoing or completed"`
}

// AnimeListOutput wraps a list response for Huma.
type AnimeListOutput struct {
	Body AnimeListResponse
}

// LimitedListInput carries the optional result cap for ranked listings.
type LimitedListInput struct {
	Limit int `query:"limit" doc:"Maximum number of entries to return"`
}

// AnimeIDInput carries an entry ID path parameter.
type AnimeIDInput struct {
	ID int64 `path:"id" doc:"Entry ID"`
}

// AnimeOutput wraps a single entry response for Huma.
type AnimeOutput struct {
	Body AnimeResponse
}

// SuccessResponse acknowledges a write with no payload.
type SuccessResponse struct {
	Success bool `json:"success" doc:"Always true"`
}

// SuccessOutput wraps an acknowledgement for Huma.
type SuccessOutput struct {
	Body SuccessResponse
}

// === Handlers ===

func (s *Server) handleListAnime(ctx context.Context, input *ListAnimeInput) (*AnimeListOutput, error) {
	entries, err := s.services.Catalog.List(ctx, service.ListParams{
		Search:   input.Search,
		Genre:    input.Genre,
		Language: input.Language,
		Status:   input.Status,
	})
	if err != nil {
		return nil, err
	}

	return &AnimeListOutput{Body: AnimeListResponse{Anime: mapAnimeList(entries)}}, nil
}

func (s *Server) handleRecommendedAnime(ctx context.Context, _ *struct{}) (*AnimeListOutput, error) {
	entries, err := s.services.Catalog.Recommended(ctx)
	if err != nil {
		return nil, err
	}

	return &AnimeListOutput{Body: AnimeListResponse{Anime: mapAnimeList(entries)}}, nil
}

func (s *Server) handleTrendingAnime(ctx context.Context, input *LimitedListInput) (*AnimeListOutput, error) {
	entries, err := s.services.Catalog.Trending(ctx, input.Limit)
	if err != nil {
		return nil, err
	}

	return &AnimeListOutput{Body: AnimeListResponse{Anime: mapAnimeList(entries)}}, nil
}

func (s *Server) handleRecentAnime(ctx context.Context, input *LimitedListInput) (*AnimeListOutput, error) {
	entries, err := s.services.Catalog.Recent(ctx, input.Limit)
	if err != nil {
		return nil, err
	}

	return &AnimeListOutput{Body: AnimeListResponse{Anime: mapAnimeList(entries)}}, nil
}

func (s *Server) handleGetAnime(ctx context.Context, input *AnimeIDInput) (*AnimeOutput, error) {
	anime, err := s.services.Catalog.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &AnimeOutput{Body: mapAnimeResponse(anime)}, nil
}

func (s *Server) handleRecordView(ctx context.Context, input *AnimeIDInput) (*SuccessOutput, error) {
	if err := s.services.Catalog.RecordView(ctx, input.ID); err != nil {
		return nil, err
	}

	return &SuccessOutput{Body: SuccessResponse{Success: true}}, nil
}
