package storage_test

import (
	"bytes"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recipebook/internal/storage"

	"github.com/stretchr/testify/assert"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestMediaStore_SaveImage(t *testing.T) {
	root := t.TempDir()
	store := storage.NewMediaStore(root)

	path, err := store.SaveImage(bytes.NewReader(pngBytes(t, 10, 10)), "photo.PNG")
	assert.NoError(t, err)

	// The stored name is generated, but the original extension survives.
	assert.True(t, strings.HasPrefix(path, "recipes/"))
	assert.True(t, strings.HasSuffix(path, ".png"))
	assert.NotContains(t, path, "photo")

	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(path)))
	assert.NoError(t, err)

	// A JPEG thumbnail is written alongside.
	base := strings.TrimSuffix(filepath.Base(path), ".png")
	_, err = os.Stat(filepath.Join(root, "recipes", "thumbs", base+".jpg"))
	assert.NoError(t, err)
}

func TestMediaStore_SaveImage_MissingExtension(t *testing.T) {
	store := storage.NewMediaStore(t.TempDir())

	path, err := store.SaveImage(bytes.NewReader(pngBytes(t, 4, 4)), "upload")
	assert.NoError(t, err)
	// Extension is derived from the decoded format.
	assert.True(t, strings.HasSuffix(path, ".png"))
}

func TestMediaStore_SaveImage_NotAnImage(t *testing.T) {
	root := t.TempDir()
	store := storage.NewMediaStore(root)

	_, err := store.SaveImage(strings.NewReader("definitely not an image"), "fake.jpg")
	assert.ErrorIs(t, err, storage.ErrNotImage)

	// Nothing may be written for a rejected payload.
	entries, readErr := os.ReadDir(root)
	assert.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestMediaStore_SaveImage_DownscalesLargeThumbnail(t *testing.T) {
	root := t.TempDir()
	store := storage.NewMediaStore(root)

	path, err := store.SaveImage(bytes.NewReader(pngBytes(t, 1000, 500)), "wide.png")
	assert.NoError(t, err)

	base := strings.TrimSuffix(filepath.Base(path), ".png")
	thumb, err := os.Open(filepath.Join(root, "recipes", "thumbs", base+".jpg"))
	assert.NoError(t, err)
	defer thumb.Close()

	cfg, _, err := image.DecodeConfig(thumb)
	assert.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 160, cfg.Height)
}

func TestMediaStore_Remove(t *testing.T) {
	root := t.TempDir()
	store := storage.NewMediaStore(root)

	path, err := store.SaveImage(bytes.NewReader(pngBytes(t, 8, 8)), "gone.png")
	assert.NoError(t, err)

	assert.NoError(t, store.Remove(path))

	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(path)))
	assert.True(t, os.IsNotExist(err))

	// Removing a missing file is not an error.
	assert.NoError(t, store.Remove(path))
}
