package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/blogifyhq/blogify/internal/config"
)

// MaxUploadBytes caps a single image upload.
const MaxUploadBytes = 5 << 20

// ErrNotAnImage rejects uploads whose content type is not image/*.
var ErrNotAnImage = errors.New("only image files are allowed")

// Upload is one incoming file.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Validate enforces the image-only policy and the size cap.
func (u Upload) Validate() error {
	if !strings.HasPrefix(u.ContentType, "image/") {
		return ErrNotAnImage
	}
	if u.Size > MaxUploadBytes {
		return fmt.Errorf("file exceeds %d byte limit", MaxUploadBytes)
	}
	return nil
}

// Storage is the object-store capability: put a blob under a key, get back a
// public URL; delete by that URL later.
type Storage interface {
	Put(ctx context.Context, key string, upload Upload) (string, error)
	Delete(ctx context.Context, url string) error
}

// New selects the configured backend.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case config.StorageLocal:
		return NewLocalStorage(cfg.UploadDir)
	case config.StorageS3:
		return NewS3Storage(ctx, cfg.S3Bucket, cfg.S3Region)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// ObjectKey builds a collision-free key under prefix, keeping the original
// extension so content sniffing stays honest.
func ObjectKey(prefix, filename string) string {
	return fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), filepath.Ext(filename))
}
