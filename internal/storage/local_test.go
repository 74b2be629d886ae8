package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalProviderSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewLocalProvider(dir)
	require.NoError(t, err)

	uri, err := store.Save(context.Background(), "Cloud_Gateway_Fiber_20260830T151204.png", []byte("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, "file://"+filepath.Join(dir, "Cloud_Gateway_Fiber_20260830T151204.png"), uri)

	data, err := os.ReadFile(filepath.Join(dir, "Cloud_Gateway_Fiber_20260830T151204.png"))
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), data)
}

func TestLocalProviderCreatesBaseDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "screenshots")
	_, err := NewLocalProvider(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestLocalProviderRejectsTraversal(t *testing.T) {
	t.Parallel()

	store, err := NewLocalProvider(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "../escape.png", []byte("x"))
	require.Error(t, err)
}

func TestLocalProviderRejectsEmptyName(t *testing.T) {
	t.Parallel()

	store, err := NewLocalProvider(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "  ", []byte("x"))
	require.Error(t, err)
}

func TestNoOpProviderSave(t *testing.T) {
	t.Parallel()

	uri, err := NoOpProvider{}.Save(context.Background(), "whatever.png", []byte("x"))
	require.NoError(t, err)
	require.Empty(t, uri)
}
