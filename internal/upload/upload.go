// Package upload stores product images and the store logo on the shared
// filesystem. Filenames mix a timestamp with a random component so two
// concurrent uploads cannot collide.
package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// MaxImageSize caps uploads at 2MB.
	MaxImageSize = 2 * 1024 * 1024

	productsSubdir = "products"
	publicPrefix   = "/uploads"
)

var (
	ErrFileTooLarge = errors.New("file too large, max size is 2MB")
	ErrNotImage     = errors.New("only image files allowed")
)

type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, productsSubdir), 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

// PublicPrefix is the URL path the upload root is served under.
func (s *Store) PublicPrefix() string { return publicPrefix }

// Root is the filesystem directory backing PublicPrefix.
func (s *Store) Root() string { return s.root }

// SaveProductImage persists an optional product image from the multipart
// field. Returns the served path, or "" when no file was attached.
func (s *Store) SaveProductImage(c *fiber.Ctx, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		// The image is optional on product forms.
		return "", nil
	}

	if file.Size > MaxImageSize {
		return "", ErrFileTooLarge
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", ErrNotImage
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(s.root, productsSubdir, name)); err != nil {
		return "", err
	}
	return publicPrefix + "/" + productsSubdir + "/" + name, nil
}

// SaveLogo persists an optional store logo under the upload root itself,
// prefixed so operators can spot it among product images.
func (s *Store) SaveLogo(c *fiber.Ctx, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}

	if file.Size > MaxImageSize {
		return "", ErrFileTooLarge
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", ErrNotImage
	}

	name := fmt.Sprintf("logo_%d%s", time.Now().UnixMilli(), filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(s.root, name)); err != nil {
		return "", err
	}
	return publicPrefix + "/" + name, nil
}

// Remove deletes the file behind a served path.
func (s *Store) Remove(publicPath string) error {
	rel := strings.TrimPrefix(publicPath, publicPrefix+"/")
	if rel == publicPath || strings.Contains(rel, "..") {
		return fmt.Errorf("refusing to remove %q", publicPath)
	}
	return os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
}
