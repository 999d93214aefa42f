package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/menurag"
	"github.com/fwojciec/menurag/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func artifacts(id string, items ...string) *menurag.Artifacts {
	a := &menurag.Artifacts{BuildID: id, Index: []byte{1, 2, 3, 4}}
	for _, item := range items {
		a.Metadata = append(a.Metadata, menurag.Metadata{ItemName: item, Tags: []string{"veg"}})
	}
	return a
}

func TestArtifactStore_Load(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND before the first build", func(t *testing.T) {
		t.Parallel()

		store := fs.NewArtifactStore(t.TempDir())

		_, err := store.Load(context.Background())

		assert.Equal(t, menurag.ENOTFOUND, menurag.ErrorCode(err))
	})

	t.Run("round trips a build", func(t *testing.T) {
		t.Parallel()

		store := fs.NewArtifactStore(t.TempDir())
		require.NoError(t, store.Save(context.Background(), artifacts("b1", "Curry", "Naan")))

		got, err := store.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "b1", got.BuildID)
		assert.Equal(t, []byte{1, 2, 3, 4}, got.Index)
		require.Len(t, got.Metadata, 2)
		assert.Equal(t, "Naan", got.Metadata[1].ItemName)
	})

	t.Run("returns the latest build", func(t *testing.T) {
		t.Parallel()

		store := fs.NewArtifactStore(t.TempDir())
		require.NoError(t, store.Save(context.Background(), artifacts("b1", "Curry")))
		require.NoError(t, store.Save(context.Background(), artifacts("b2", "Brownie")))

		got, err := store.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "b2", got.BuildID)
		assert.Equal(t, "Brownie", got.Metadata[0].ItemName)
	})

	t.Run("detects a corrupted index", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewArtifactStore(dir)
		require.NoError(t, store.Save(context.Background(), artifacts("b1", "Curry")))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "builds", "b1", fs.IndexFile), []byte{9, 9}, 0644))

		_, err := store.Load(context.Background())

		assert.Equal(t, menurag.EMALFORMED, menurag.ErrorCode(err))
	})

	t.Run("detects a missing metadata file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewArtifactStore(dir)
		require.NoError(t, store.Save(context.Background(), artifacts("b1", "Curry")))
		require.NoError(t, os.Remove(filepath.Join(dir, "builds", "b1", fs.MetadataFile)))

		_, err := store.Load(context.Background())

		assert.Equal(t, menurag.EMALFORMED, menurag.ErrorCode(err))
	})

	t.Run("detects a missing manifest", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewArtifactStore(dir)
		require.NoError(t, store.Save(context.Background(), artifacts("b1", "Curry")))
		require.NoError(t, os.Remove(filepath.Join(dir, "builds", "b1", fs.ManifestFile)))

		_, err := store.Load(context.Background())

		assert.Equal(t, menurag.EMALFORMED, menurag.ErrorCode(err))
	})
}

func TestArtifactStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid artifacts", func(t *testing.T) {
		t.Parallel()

		store := fs.NewArtifactStore(t.TempDir())

		err := store.Save(context.Background(), &menurag.Artifacts{})

		assert.Equal(t, menurag.EINVALID, menurag.ErrorCode(err))
	})

	t.Run("rejects a duplicate build ID", func(t *testing.T) {
		t.Parallel()

		store := fs.NewArtifactStore(t.TempDir())
		require.NoError(t, store.Save(context.Background(), artifacts("b1", "Curry")))

		err := store.Save(context.Background(), artifacts("b1", "Curry"))

		assert.Equal(t, menurag.ECONFLICT, menurag.ErrorCode(err))
	})

	t.Run("keeps a bounded number of builds", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewArtifactStore(dir)
		for _, id := range []string{"b1", "b2", "b3"} {
			require.NoError(t, store.Save(context.Background(), artifacts(id, "Curry")))
		}

		entries, err := os.ReadDir(filepath.Join(dir, "builds"))
		require.NoError(t, err)
		assert.Len(t, entries, 2)
		_, err = os.Stat(filepath.Join(dir, "builds", "b3"))
		assert.NoError(t, err)
	})

	t.Run("stops on a cancelled context", func(t *testing.T) {
		t.Parallel()

		store := fs.NewArtifactStore(t.TempDir())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := store.Save(ctx, artifacts("b1", "Curry"))

		assert.ErrorIs(t, err, context.Canceled)
	})
}
