package local

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.uber.org/multierr"
	"golang.org/x/image/draw"
)

const thumbnailQuality = 85

// Storage writes uploaded photos and their thumbnails to the local
// public directory tree, keyed by branch/date/barcode-prefix.
type Storage struct {
	rootDir        string
	thumbnailBound int
}

// New builds a Storage rooted at rootDir. The root is created on demand.
func New(rootDir string, thumbnailBound int) (*Storage, error) {
	if strings.TrimSpace(rootDir) == "" {
		return nil, fmt.Errorf("storage root dir is required")
	}
	if thumbnailBound <= 0 {
		thumbnailBound = 300
	}
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Storage{rootDir: rootDir, thumbnailBound: thumbnailBound}, nil
}

// SavedPhoto reports where the original and thumbnail landed, relative
// to the storage root.
type SavedPhoto struct {
	FilePath      string
	ThumbnailPath string
}

// ObjectKey builds the relative path for an upload:
// {branch}/{year}/{month}/{day}/{barcode_prefix}/{filename}.
func ObjectKey(branchCode, barcodePrefix, filename string, now time.Time) string {
	now = now.UTC()
	return path.Join(
		sanitizeSegment(branchCode),
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", int(now.Month())),
		fmt.Sprintf("%02d", now.Day()),
		sanitizeSegment(barcodePrefix),
		SanitizeFilename(filename),
	)
}

// Save streams the upload to disk and writes a bounded JPEG thumbnail
// next to it under a thumbs/ sibling directory.
func (s *Storage) Save(key string, r io.Reader) (*SavedPhoto, error) {
	fullPath := filepath.Join(s.rootDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, fmt.Errorf("create photo dir: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("create photo file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return nil, fmt.Errorf("write photo file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close photo file: %w", err)
	}

	thumbKey, err := s.writeThumbnail(key, fullPath)
	if err != nil {
		return nil, err
	}

	return &SavedPhoto{FilePath: key, ThumbnailPath: thumbKey}, nil
}

// Remove deletes the original and its thumbnail. Both removals are
// attempted even when the first fails.
func (s *Storage) Remove(key, thumbKey string) error {
	var errs error
	if err := os.Remove(filepath.Join(s.rootDir, filepath.FromSlash(key))); err != nil && !os.IsNotExist(err) {
		errs = multierr.Append(errs, fmt.Errorf("remove photo: %w", err))
	}
	if thumbKey != "" {
		if err := os.Remove(filepath.Join(s.rootDir, filepath.FromSlash(thumbKey))); err != nil && !os.IsNotExist(err) {
			errs = multierr.Append(errs, fmt.Errorf("remove thumbnail: %w", err))
		}
	}
	return errs
}

// Open returns a reader over a stored object.
func (s *Storage) Open(key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.rootDir, filepath.FromSlash(key)))
}

func (s *Storage) writeThumbnail(key, fullPath string) (string, error) {
	src, err := os.Open(fullPath)
	if err != nil {
		return "", fmt.Errorf("reopen photo for thumbnail: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}

	bounded := boundedSize(img.Bounds().Dx(), img.Bounds().Dy(), s.thumbnailBound)
	thumb := image.NewRGBA(image.Rect(0, 0, bounded.X, bounded.Y))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), img, img.Bounds(), draw.Over, nil)

	thumbKey := ThumbnailKey(key)
	thumbPath := filepath.Join(s.rootDir, filepath.FromSlash(thumbKey))
	if err := os.MkdirAll(filepath.Dir(thumbPath), 0o755); err != nil {
		return "", fmt.Errorf("create thumbnail dir: %w", err)
	}

	out, err := os.Create(thumbPath)
	if err != nil {
		return "", fmt.Errorf("create thumbnail file: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, thumb, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}
	return thumbKey, nil
}

// ThumbnailKey maps an object key to its thumbnail sibling, always jpg.
func ThumbnailKey(key string) string {
	dir, file := path.Split(key)
	ext := path.Ext(file)
	base := strings.TrimSuffix(file, ext)
	return path.Join(dir, "thumbs", base+".jpg")
}

func boundedSize(w, h, bound int) image.Point {
	if w <= bound && h <= bound {
		return image.Point{X: w, Y: h}
	}
	if w >= h {
		scaled := h * bound / w
		if scaled < 1 {
			scaled = 1
		}
		return image.Point{X: bound, Y: scaled}
	}
	scaled := w * bound / h
	if scaled < 1 {
		scaled = 1
	}
	return image.Point{X: scaled, Y: bound}
}

// SanitizeFilename strips path separators and control characters so a
// client-supplied name cannot escape the object tree.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" || out == "." || out == ".." {
		return "upload"
	}
	return out
}

func sanitizeSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "unknown"
	}
	return SanitizeFilename(segment)
}
