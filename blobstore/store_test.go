package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("open missing", func(t *testing.T) {
		_, err := store.Open(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "snapshots/a.bin", []byte("hello")))

		data, err := ReadAll(ctx, store, "snapshots/a.bin")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "snapshots/a.bin", []byte("world")))

		data, err := ReadAll(ctx, store, "snapshots/a.bin")
		require.NoError(t, err)
		assert.Equal(t, []byte("world"), data)
	})

	t.Run("ranged read", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "snapshots/b.bin", []byte("0123456789")))

		b, err := store.Open(ctx, "snapshots/b.bin")
		require.NoError(t, err)
		defer b.Close()

		assert.Equal(t, int64(10), b.Size())

		p := make([]byte, 4)
		n, err := b.ReadAt(p, 3)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, []byte("3456"), p)
	})

	t.Run("list", func(t *testing.T) {
		names, err := store.List(ctx, "snapshots/")
		require.NoError(t, err)
		assert.Equal(t, []string{"snapshots/a.bin", "snapshots/b.bin"}, names)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "snapshots/a.bin"))
		_, err := store.Open(ctx, "snapshots/a.bin")
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting a missing blob is not an error.
		assert.NoError(t, store.Delete(ctx, "snapshots/a.bin"))
	})
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	testStore(t, store)
}
