package store

import (
	"context"
	"testing"

	"github.com/animes2u/catalog-server/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAdminUser(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	created, err := store.EnsureAdminUser(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := store.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	// Password is stored hashed, never plaintext.
	assert.NotEqual(t, "admin123", admin.PasswordHash)
	ok, err := auth.VerifyPassword("admin123", admin.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second call is a no-op.
	created, err = store.EnsureAdminUser(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestSeedDemoCatalog(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	seeded, err := store.SeedDemoCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, seeded)

	listed, err := store.ListAnime(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 15)

	assert.Equal(t, "Demon Slayer", listed[0].Title)
	assert.Equal(t, "Naruto Shippuden", listed[14].Title)

	for _, anime := range listed {
		assert.GreaterOrEqual(t, anime.Views, int64(0))
		assert.Less(t, anime.Views, int64(1000))
		assert.False(t, anime.CreatedAt.IsZero())
	}

	// Seeding a non-empty catalog is a no-op.
	seeded, err = store.SeedDemoCatalog(ctx)
	require.NoError(t, err)
	assert.Zero(t, seeded)

	listed, err = store.ListAnime(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 15)
}
