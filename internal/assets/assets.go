// Package assets stores uploaded catalog images on local disk.
package assets

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	// MaxImageBytes is the per-file upload limit.
	MaxImageBytes = 5 << 20

	// PublicPrefix is the URL path the upload directory is served under.
	PublicPrefix = "/uploads"

	imageSubdir = "products"
	maxSlugLen  = 40
)

var (
	ErrTooLarge        = errors.New("file exceeds the 5MB limit")
	ErrUnsupportedType = errors.New("only image files are allowed")
)

var allowedImages = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// Store writes images under Root()/products and hands back their public path.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root is the directory to serve under PublicPrefix.
func (s *Store) Root() string { return s.root }

// SaveImage checks the extension and the sniffed content type, then stores the
// file under a unique name such as /uploads/products/summer-dress-<uuid>.jpg.
func (s *Store) SaveImage(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxImageBytes {
		return "", ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	wantMIME, ok := allowedImages[ext]
	if !ok {
		return "", ErrUnsupportedType
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("assets: open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("assets: detect type: %w", err)
	}
	if !mtype.Is(wantMIME) {
		return "", ErrUnsupportedType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("assets: rewind upload: %w", err)
	}

	dir := filepath.Join(s.root, imageSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("assets: create dir: %w", err)
	}

	name := fileName(fh.Filename, ext)
	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("assets: create file: %w", err)
	}
	// Copy at most one byte past the limit so a lying Size header is caught.
	n, err := io.Copy(dst, io.LimitReader(src, MaxImageBytes+1))
	closeErr := dst.Close()
	if err == nil && n > MaxImageBytes {
		err = ErrTooLarge
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filepath.Join(dir, name))
		if errors.Is(err, ErrTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("assets: write file: %w", err)
	}

	return path.Join(PublicPrefix, imageSubdir, name), nil
}

// Remove deletes a file previously returned by SaveImage. Paths outside the
// store are ignored.
func (s *Store) Remove(publicPath string) error {
	prefix := path.Join(PublicPrefix, imageSubdir) + "/"
	if !strings.HasPrefix(publicPath, prefix) {
		return nil
	}
	name := path.Base(publicPath)
	err := os.Remove(filepath.Join(s.root, imageSubdir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func fileName(original, ext string) string {
	base := slug.Make(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if len(base) > maxSlugLen {
		base = strings.Trim(base[:maxSlugLen], "-")
	}
	id := uuid.New().String()
	if base == "" {
		return id + ext
	}
	return base + "-" + id + ext
}
