package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/animes2u/catalog-server/internal/domain"
	"github.com/dgraph-io/badger/v4"
)

// maxIncrementRetries bounds the optimistic-conflict retry loop for view
// increments. Conflicts only arise when increments race on the same record,
// and each retry makes progress for some writer, so the bound is generous.
const maxIncrementRetries = 100

// CreateAnime inserts a new catalog entry from a validated draft. The store
// assigns the ID and CreatedAt and starts the view counter at zero.
func (s *Store) CreateAnime(_ context.Context, draft *domain.AnimeDraft) (*domain.Anime, error) {
	anime := &domain.Anime{
		Title:         draft.Title,
		Description:   draft.Description,
		PosterURL:     draft.PosterURL,
		Genres:        draft.Genres,
		Episodes:      draft.Episodes,
		Language:      draft.Language,
		Status:        draft.Status,
		TelegramURL:   draft.TelegramURL,
		IsRecommended: draft.IsRecommended,
		Views:         0,
		CreatedAt:     time.Now().UTC(),
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		id, err := nextID(txn, animeSeqKey)
		if err != nil {
			return err
		}
		anime.ID = id

		data, err := json.Marshal(anime)
		if err != nil {
			return fmt.Errorf("marshal anime: %w", err)
		}

		return txn.Set(animeKey(id), data)
	})
	if err != nil {
		return nil, fmt.Errorf("create anime: %w", err)
	}

	return anime, nil
}

// GetAnime retrieves a catalog entry by ID.
func (s *Store) GetAnime(_ context.Context, id int64) (*domain.Anime, error) {
	var anime domain.Anime
	if err := s.get(animeKey(id), &anime); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrAnimeNotFound
		}
		return nil, fmt.Errorf("get anime: %w", err)
	}

	return &anime, nil
}

// UpdateAnime applies a partial update to an existing entry and returns the
// merged record. Omitted fields keep their prior value; ID, Views and
// CreatedAt are never touched by a patch.
func (s *Store) UpdateAnime(_ context.Context, id int64, patch *domain.AnimePatch) (*domain.Anime, error) {
	var updated *domain.Anime

	err := s.db.Update(func(txn *badger.Txn) error {
		key := animeKey(id)

		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrAnimeNotFound
			}
			return err
		}

		var anime domain.Anime
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &anime)
		}); err != nil {
			return fmt.Errorf("unmarshal anime: %w", err)
		}

		patch.Apply(&anime)

		data, err := json.Marshal(&anime)
		if err != nil {
			return fmt.Errorf("marshal anime: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		updated = &anime
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAnimeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update anime: %w", err)
	}

	return updated, nil
}

// DeleteAnime removes an entry. It reports whether a record was actually
// deleted so callers can distinguish a no-op. The ID is never reassigned.
func (s *Store) DeleteAnime(_ context.Context, id int64) (bool, error) {
	key := animeKey(id)

	existed, err := s.exists(key)
	if err != nil {
		return false, fmt.Errorf("check anime exists: %w", err)
	}
	if !existed {
		return false, nil
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		return false, fmt.Errorf("delete anime: %w", err)
	}

	return true, nil
}

// IncrementViews bumps the view counter of an entry by one and returns the
// updated record. Concurrent increments on the same record are serialized by
// retrying on transaction conflict, so no increment is lost.
func (s *Store) IncrementViews(_ context.Context, id int64) (*domain.Anime, error) {
	key := animeKey(id)

	for attempt := 0; attempt < maxIncrementRetries; attempt++ {
		var anime domain.Anime

		err := s.db.Update(func(txn *badger.Txn) error {
			item, err := txn.Get(key)
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return ErrAnimeNotFound
				}
				return err
			}

			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &anime)
			}); err != nil {
				return fmt.Errorf("unmarshal anime: %w", err)
			}

			anime.Views++

			data, err := json.Marshal(&anime)
			if err != nil {
				return fmt.Errorf("marshal anime: %w", err)
			}

			return txn.Set(key, data)
		})

		switch {
		case err == nil:
			return &anime, nil
		case errors.Is(err, badger.ErrConflict):
			continue
		case errors.Is(err, ErrAnimeNotFound):
			return nil, err
		default:
			return nil, fmt.Errorf("increment views: %w", err)
		}
	}

	return nil, fmt.Errorf("increment views for anime %d: %w", id, badger.ErrConflict)
}

// ListAnime returns every catalog entry in creation order.
func (s *Store) ListAnime(_ context.Context) ([]*domain.Anime, error) {
	prefix := []byte(animePrefix)
	var items []*domain.Anime

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var anime domain.Anime
				if unmarshalErr := json.Unmarshal(val, &anime); unmarshalErr != nil {
					// Skip malformed entries
					return nil //nolint:nilerr // intentionally skip malformed entries
				}

				items = append(items, &anime)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("list anime: %w", err)
	}

	return items, nil
}
