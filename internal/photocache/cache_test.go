package photocache

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePutAndGet(t *testing.T) {
	cache, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	imageData := []byte("fake webp data")

	require.NoError(t, cache.Put(ctx, 42, "image/webp", bytes.NewReader(imageData)))

	reader, mimeType, ok, err := cache.Get(ctx, 42)
	require.NoError(t, err)
	require.True(t, ok)
	defer reader.Close()

	assert.Equal(t, "image/webp", mimeType)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, imageData, data)
}

func TestCacheMissIsNotAnError(t *testing.T) {
	cache, err := New(t.TempDir())
	require.NoError(t, err)

	reader, _, ok, err := cache.Get(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, reader)
}

func TestCachePutReplacesOtherExtension(t *testing.T) {
	cache, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, 7, "image/jpeg", bytes.NewReader([]byte("old"))))
	require.NoError(t, cache.Put(ctx, 7, "image/png", bytes.NewReader([]byte("new"))))

	reader, mimeType, ok, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)
	defer reader.Close()

	assert.Equal(t, "image/png", mimeType)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestCacheEvict(t *testing.T) {
	cache, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, 5, "image/jpeg", bytes.NewReader([]byte("x"))))
	require.NoError(t, cache.Evict(ctx, 5))

	_, _, ok, err := cache.Get(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	// Evicting again is a no-op.
	assert.NoError(t, cache.Evict(ctx, 5))
}
