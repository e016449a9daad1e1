package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDirectoryImageFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "notes.txt", "c.bmp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	images, err := LoadDirectoryImageFiles(dir)
	require.NoError(t, err)
	require.Len(t, images, 3, "non-image files and directories are skipped")

	// Sorted by path.
	assert.Equal(t, filepath.Join(dir, "a.jpg"), images[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.png"), images[1].Path)
	assert.Equal(t, filepath.Join(dir, "c.bmp"), images[2].Path)
	assert.Equal(t, []byte("a.jpg"), images[0].Data)
}

func TestLoadDirectoryImageFilesMissingDir(t *testing.T) {
	_, err := LoadDirectoryImageFiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
