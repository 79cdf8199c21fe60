package adapters

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeraphielSpark/contentcreator/internal/feature/assets/usecase"
)

func TestDiskStore(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the directory on construction", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "assets")

		_, err := NewDiskStore(dir)

		require.NoError(t, err)
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("save and open roundtrip", func(t *testing.T) {
		store, err := NewDiskStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, "a.png", []byte("png-data")))

		data, err := store.Open(ctx, "a.png")
		require.NoError(t, err)
		assert.Equal(t, []byte("png-data"), data)
	})

	t.Run("missing asset maps to ErrAssetNotFound", func(t *testing.T) {
		store, err := NewDiskStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.Open(ctx, "missing.png")

		assert.ErrorIs(t, err, usecase.ErrAssetNotFound)
	})

	t.Run("traversal names never reach the filesystem", func(t *testing.T) {
		dir := t.TempDir()
		secret := filepath.Join(dir, "secret")
		require.NoError(t, os.WriteFile(secret, []byte("keep out"), 0o600))

		store, err := NewDiskStore(filepath.Join(dir, "assets"))
		require.NoError(t, err)

		_, err = store.Open(ctx, "../secret")
		assert.ErrorIs(t, err, usecase.ErrInvalidFilename)

		assert.ErrorIs(t, store.Save(ctx, "../evil", []byte("x")), usecase.ErrInvalidFilename)
		assert.ErrorIs(t, store.Remove(ctx, "../secret"), usecase.ErrInvalidFilename)

		// The file outside the store is untouched.
		data, err := os.ReadFile(secret)
		require.NoError(t, err)
		assert.Equal(t, []byte("keep out"), data)
	})

	t.Run("remove deletes and tolerates absence", func(t *testing.T) {
		store, err := NewDiskStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, "a.png", []byte("png-data")))
		require.NoError(t, store.Remove(ctx, "a.png"))

		_, err = store.Open(ctx, "a.png")
		assert.ErrorIs(t, err, usecase.ErrAssetNotFound)

		assert.NoError(t, store.Remove(ctx, "a.png"))
	})
}
