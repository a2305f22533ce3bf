package service

import (
	"context"
	"testing"

	"github.com/animes2u/catalog-server/internal/domain"
	domainerrors "github.com/animes2u/catalog-server/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAnime_Valid(t *testing.T) {
	catalog, admin, cleanup := setupCatalog(t)
	defer cleanup()

	ctx := context.Background()

	anime := seedEntry(t, admin, nil)
	assert.Equal(t, int64(1), anime.ID)
	assert.Zero(t, anime.Views)
	assert.False(t, anime.CreatedAt.IsZero())

	// Immediately searchable.
	results, err := catalog.List(ctx, ListParams{Search: "demon"})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestCreateAnime_RejectsInvalidDraft(t *testing.T) {
	_, admin, cleanup := setupCatalog(t)
	defer cleanup()

	draft := &domain.AnimeDraft{
		Title:       "X",
		Description: "short",
		PosterURL:   "nope",
		Episodes:    0,
		Language:    "german",
		Status:      "paused",
		TelegramURL: "nope",
	}

	_, err := admin.CreateAnime(context.Background(), draft)
	require.Error(t, err)

	var appErr *domainerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeValidation, appErr.Code)
}

func TestUpdateAnime_PartialAndUnvalidated(t *testing.T) {
	catalog, admin, cleanup := setupCatalog(t)
	defer cleanup()

	ctx := context.Background()

	created := seedEntry(t, admin, nil)

	// A one-character title would fail creation validation; the update path
	// accepts it.
	shortTitle := "X"
	updated, err := admin.UpdateAnime(ctx, created.ID, &domain.AnimePatch{Title: &shortTitle})
	require.NoError(t, err)
	assert.Equal(t, "X", updated.Title)
	assert.Equal(t, created.Description, updated.Description)

	got, err := catalog.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", got.Title)
}

func TestUpdateAnime_NotFound(t *testing.T) {
	_, admin, cleanup := setupCatalog(t)
	defer cleanup()

	title := "Ghost"
	_, err := admin.UpdateAnime(context.Background(), 404, &domain.AnimePatch{Title: &title})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDeleteAnime(t *testing.T) {
	catalog, admin, cleanup := setupCatalog(t)
	defer cleanup()

	ctx := context.Background()

	created := seedEntry(t, admin, nil)

	require.NoError(t, admin.DeleteAnime(ctx, created.ID))

	_, err := catalog.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	// Double delete reports not found.
	err = admin.DeleteAnime(ctx, created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
