package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/animes2u/catalog-server/internal/domain"
	domainerrors "github.com/animes2u/catalog-server/internal/errors"
	"github.com/animes2u/catalog-server/internal/store"
	"github.com/animes2u/catalog-server/internal/validation"
)

// AdminService handles the admin-only catalog mutations. Authorization is
// enforced at the HTTP layer; these methods assume an admin caller.
type AdminService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAdminService creates a new admin catalog service.
func NewAdminService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *AdminService {
	return &AdminService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateAnime validates a draft and inserts it into the catalog.
func (s *AdminService) CreateAnime(ctx context.Context, draft *domain.AnimeDraft) (*domain.Anime, error) {
	if err := s.validator.Validate(draft); err != nil {
		return nil, err
	}

	anime, err := s.store.CreateAnime(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("create anime: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("anime created", "anime_id", anime.ID, "title", anime.Title)
	}

	return anime, nil
}

// UpdateAnime applies a partial update. The patch is not re-validated against
// the creation rules; any supplied subset of fields is accepted as-is.
func (s *AdminService) UpdateAnime(ctx context.Context, id int64, patch *domain.AnimePatch) (*domain.Anime, error) {
	anime, err := s.store.UpdateAnime(ctx, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrAnimeNotFound) {
			return nil, domainerrors.NotFound("anime not found")
		}
		return nil, fmt.Errorf("update anime: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("anime updated", "anime_id", anime.ID)
	}

	return anime, nil
}

// DeleteAnime removes an entry. Deleting an unknown ID is reported as not
// found.
func (s *AdminService) DeleteAnime(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteAnime(ctx, id)
	if err != nil {
		return fmt.Errorf("delete anime: %w", err)
	}
	if !deleted {
		return domainerrors.NotFound("anime not found")
	}

	if s.logger != nil {
		s.logger.Info("anime deleted", "anime_id", id)
	}

	return nil
}
