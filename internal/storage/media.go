package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// ErrNotImage is returned when an uploaded payload cannot be decoded as
// a raster image.
var ErrNotImage = errors.New("payload is not a decodable image")

const thumbnailMaxWidth = 320

// MediaStore saves uploaded recipe images under a root directory. Files
// are stored with a generated random name preserving the original
// extension, plus a JPEG thumbnail.
type MediaStore struct {
	root string
}

// NewMediaStore creates a MediaStore rooted at the given directory.
func NewMediaStore(root string) *MediaStore {
	return &MediaStore{root: root}
}

// SaveImage validates and stores an uploaded image, returning the
// media-relative path of the stored file.
func (s *MediaStore) SaveImage(file io.Reader, originalName string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrNotImage
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = "." + format
	}
	name := uuid.New().String()

	dir := filepath.Join(s.root, "recipes")
	if err := os.MkdirAll(filepath.Join(dir, "thumbs"), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, name+ext), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	if err := writeThumbnail(filepath.Join(dir, "thumbs", name+".jpg"), img); err != nil {
		// The original is already stored; a missing thumbnail is not fatal.
		return filepath.ToSlash(filepath.Join("recipes", name+ext)), nil
	}

	return filepath.ToSlash(filepath.Join("recipes", name+ext)), nil
}

// Remove deletes a previously stored image and its thumbnail, if any.
func (s *MediaStore) Remove(mediaPath string) error {
	full := filepath.Join(s.root, filepath.FromSlash(mediaPath))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(full), filepath.Ext(full))
	thumb := filepath.Join(filepath.Dir(full), "thumbs", base+".jpg")
	if err := os.Remove(thumb); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove thumbnail: %w", err)
	}
	return nil
}

// Root returns the media root directory for static serving.
func (s *MediaStore) Root() string {
	return s.root
}

// writeThumbnail scales the image down to thumbnailMaxWidth and encodes
// it as JPEG.
func writeThumbnail(path string, img image.Image) error {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > thumbnailMaxWidth {
		ratio := float64(thumbnailMaxWidth) / float64(width)
		width = thumbnailMaxWidth
		height = int(float64(height) * ratio)
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return jpeg.Encode(out, dst, &jpeg.Options{Quality: 75})
}
