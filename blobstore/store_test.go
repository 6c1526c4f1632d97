package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	// 1. Put a blob
	data := []byte("hello world, this is a test blob for imgeval")
	require.NoError(t, store.Put(ctx, "real/a.png", data))

	_, err := os.Stat(filepath.Join(tmpDir, "real", "a.png"))
	require.NoError(t, err)

	// 2. Open and ReadAt
	blob, err := store.Open(ctx, "real/a.png")
	require.NoError(t, err)

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	all, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	require.Equal(t, data, all)
	require.NoError(t, blob.Close())

	// 3. List
	require.NoError(t, store.Put(ctx, "real/nested/b.jpg", []byte("b")))
	require.NoError(t, store.Put(ctx, "gen/c.png", []byte("c")))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"gen/c.png", "real/a.png", "real/nested/b.jpg"}, names)

	names, err = store.List(ctx, "real")
	require.NoError(t, err)
	require.Equal(t, []string{"real/a.png", "real/nested/b.jpg"}, names)

	names, err = store.List(ctx, "real/a")
	require.NoError(t, err)
	require.Equal(t, []string{"real/a.png"}, names)

	names, err = store.List(ctx, "missing/")
	require.NoError(t, err)
	require.Empty(t, names)

	// 4. Delete
	require.NoError(t, store.Delete(ctx, "gen/c.png"))
	require.NoError(t, store.Delete(ctx, "gen/c.png"))

	_, err = store.Open(ctx, "gen/c.png")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalBlobStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "nope"))
	_, err := store.List(context.Background(), "")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "b/2", []byte("two")))
	require.NoError(t, store.Put(ctx, "a/1", []byte("one")))
	require.NoError(t, store.Put(ctx, "a/sub/3", []byte("three")))

	names, err := store.List(ctx, "a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1", "a/sub/3"}, names)

	data, err := Get(ctx, store, "a/sub/3")
	require.NoError(t, err)
	assert.Equal(t, "three", string(data))

	blob, err := store.Open(ctx, "b/2")
	require.NoError(t, err)
	n, err := blob.ReadAt(ctx, make([]byte, 10), 1)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, store.Delete(ctx, "b/2"))
	_, err = store.Open(ctx, "b/2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_LocalCopiesMappedBytes(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "x.bin", []byte{1, 2, 3}))
	data, err := Get(ctx, store, "x.bin")
	require.NoError(t, err)
	// Still readable after the mapping was closed.
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestReadAll_Empty(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "empty", nil))

	data, err := Get(ctx, store, "empty")
	require.NoError(t, err)
	assert.Empty(t, data)
}
