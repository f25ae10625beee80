package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkowalik/docgram"
	"github.com/mkowalik/docgram/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHost_Store(t *testing.T) {
	t.Parallel()

	t.Run("writes asset and returns public URL", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		host := fs.NewHost(dir, "https://assets.example.com/docs/")

		url, err := host.Store(context.Background(), "abc123.jpg", []byte("jpeg bytes"))
		require.NoError(t, err)
		assert.Equal(t, "https://assets.example.com/docs/abc123.jpg", url)

		data, err := os.ReadFile(filepath.Join(dir, "abc123.jpg"))
		require.NoError(t, err)
		assert.Equal(t, []byte("jpeg bytes"), data)
	})

	t.Run("creates directory if missing", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "assets")
		host := fs.NewHost(dir, "https://assets.example.com")

		_, err := host.Store(context.Background(), "abc123.jpg", []byte("x"))
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "abc123.jpg"))
	})

	t.Run("same name overwrites stably", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		host := fs.NewHost(dir, "https://assets.example.com")

		first, err := host.Store(context.Background(), "abc123.jpg", []byte("one"))
		require.NoError(t, err)
		second, err := host.Store(context.Background(), "abc123.jpg", []byte("two"))
		require.NoError(t, err)
		assert.Equal(t, first, second, "URL must be stable across runs")

		data, err := os.ReadFile(filepath.Join(dir, "abc123.jpg"))
		require.NoError(t, err)
		assert.Equal(t, []byte("two"), data)
	})

	t.Run("empty name is EINVALID", func(t *testing.T) {
		t.Parallel()

		host := fs.NewHost(t.TempDir(), "https://assets.example.com")
		_, err := host.Store(context.Background(), "", []byte("x"))
		require.Error(t, err)
		assert.Equal(t, docgram.EINVALID, docgram.ErrorCode(err))
	})

	t.Run("no leftover temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		host := fs.NewHost(dir, "https://assets.example.com")
		_, err := host.Store(context.Background(), "abc123.jpg", []byte("x"))
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
