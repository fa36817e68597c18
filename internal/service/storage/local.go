package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes uploads under a directory served at /uploads/.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Dir returns the backing directory, for the router's static file handler.
func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) Put(_ context.Context, key string, upload Upload) (string, error) {
	if err := upload.Validate(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create key dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(upload.Body, MaxUploadBytes)); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return "/uploads/" + key, nil
}

func (s *LocalStorage) Delete(_ context.Context, url string) error {
	key, ok := strings.CutPrefix(url, "/uploads/")
	if !ok {
		// Not one of ours (default cover, external URL); nothing to do.
		return nil
	}

	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
