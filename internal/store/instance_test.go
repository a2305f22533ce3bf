package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestStore creates a fresh in-memory store for a test.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	store, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		_ = store.Close()
	}

	return store, cleanup
}

func TestNewStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	require.NotNil(t, store.db)
}

func TestStore_CloseIsIdempotentEnough(t *testing.T) {
	store, err := New(nil)
	require.NoError(t, err)

	require.NoError(t, store.Close())
}
