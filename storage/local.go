package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps uploads in a directory on disk
type LocalStore struct {
	dir       string
	writeFile func(name string, data []byte, perm fs.FileMode) error
}

// NewLocalStore creates the upload directory if needed
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload folder %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, writeFile: os.WriteFile}, nil
}

// Save writes the document to the upload folder. A failed write leaves nothing behind
func (s *LocalStore) Save(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := objectKey("", filename)
	p := filepath.Join(s.dir, key)
	if err := s.writeFile(p, data, 0o600); err != nil {
		if rmErr := os.Remove(p); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			err = errors.Join(err, rmErr)
		}
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return key, nil
}

// Open reads a stored document
func (s *LocalStore) Open(ctx context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

// Delete removes a stored document; deleting a missing one is not an error
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}

func (s *LocalStore) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid document key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}
