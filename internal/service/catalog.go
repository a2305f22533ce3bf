package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/animes2u/catalog-server/internal/domain"
	domainerrors "github.com/animes2u/catalog-server/internal/errors"
	"github.com/animes2u/catalog-server/internal/store"
)

// Default rail sizes for the browse page.
const (
	DefaultTrendingLimit = 4
	DefaultRecentLimit   = 5
)

// CatalogService derives read views over the anime collection: search,
// filtering and the trending/recent/recommended rails. All views are computed
// from a fresh store snapshot, so mutations are immediately visible.
type CatalogService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewCatalogService creates a new catalog query service.
func NewCatalogService(store *store.Store, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger,
	}
}

// ListParams narrows the catalog listing. A non-empty Search takes precedence
// over all filters; filters combine conjunctively.
type ListParams struct {
	Search   string
	Genre    string
	Language string
	Status   string
}

// List returns catalog entries matching the params, in store iteration order.
//
// Search is a case-insensitive substring match on the title. The genre filter
// is an exact, case-sensitive membership test. Language "both" acts as a
// wildcard and matches every record regardless of its own language value;
// this mirrors the long-standing site behavior and clients rely on it.
func (s *CatalogService) List(ctx context.Context, params ListParams) ([]*domain.Anime, error) {
	all, err := s.store.ListAnime(ctx)
	if err != nil {
		return nil, fmt.Errorf("list anime: %w", err)
	}

	if params.Search != "" {
		return s.search(all, params.Search), nil
	}

	return s.filter(all, params), nil
}

func (s *CatalogService) search(all []*domain.Anime, query string) []*domain.Anime {
	lowered := strings.ToLower(query)
	results := make([]*domain.Anime, 0, len(all))
	for _, anime := range all {
		if strings.Contains(strings.ToLower(anime.Title), lowered) {
			results = append(results, anime)
		}
	}
	return results
}

func (s *CatalogService) filter(all []*domain.Anime, params ListParams) []*domain.Anime {
	results := make([]*domain.Anime, 0, len(all))
	for _, anime := range all {
		if params.Genre != "" && !anime.HasGenre(params.Genre) {
			continue
		}
		if params.Language != "" && params.Language != string(domain.LanguageBoth) &&
			string(anime.Language) != params.Language {
			continue
		}
		if params.Status != "" && string(anime.Status) != params.Status {
			continue
		}
		results = append(results, anime)
	}
	return results
}

// Recommended returns the editorially flagged entries in store order.
func (s *CatalogService) Recommended(ctx context.Context) ([]*domain.Anime, error) {
	all, err := s.store.ListAnime(ctx)
	if err != nil {
		return nil, fmt.Errorf("list anime: %w", err)
	}

	results := make([]*domain.Anime, 0, len(all))
	for _, anime := range all {
		if anime.IsRecommended {
			results = append(results, anime)
		}
	}
	return results, nil
}

// Trending returns the most viewed entries, views descending. Ties keep store
// order. A non-positive limit falls back to the default rail size.
func (s *CatalogService) Trending(ctx context.Context, limit int) ([]*domain.Anime, error) {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}

	all, err := s.store.ListAnime(ctx)
	if err != nil {
		return nil, fmt.Errorf("list anime: %w", err)
	}

	slices.SortStableFunc(all, func(a, b *domain.Anime) int {
		switch {
		case b.Views > a.Views:
			return 1
		case b.Views < a.Views:
			return -1
		default:
			return 0
		}
	})

	return truncate(all, limit), nil
}

// Recent returns the newest entries, creation time descending. A non-positive
// limit falls back to the default rail size.
func (s *CatalogService) Recent(ctx context.Context, limit int) ([]*domain.Anime, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	all, err := s.store.ListAnime(ctx)
	if err != nil {
		return nil, fmt.Errorf("list anime: %w", err)
	}

	slices.SortStableFunc(all, func(a, b *domain.Anime) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return truncate(all, limit), nil
}

// Get returns a single entry by ID.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Anime, error) {
	anime, err := s.store.GetAnime(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrAnimeNotFound) {
			return nil, domainerrors.NotFound("anime not found")
		}
		return nil, fmt.Errorf("get anime: %w", err)
	}
	return anime, nil
}

// RecordView bumps the view counter of an entry.
func (s *CatalogService) RecordView(ctx context.Context, id int64) error {
	if _, err := s.store.IncrementViews(ctx, id); err != nil {
		if errors.Is(err, store.ErrAnimeNotFound) {
			return domainerrors.NotFound("anime not found")
		}
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

func truncate(items []*domain.Anime, limit int) []*domain.Anime {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
