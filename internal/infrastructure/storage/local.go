// Package storage provides the local-disk binary store for uploaded
// attachments. All operations are rooted at one configured directory; callers
// pass bare filenames only.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/devboard/devboard-api/internal/core/domain"
)

// LocalStore writes uploaded files under a single root directory.
type LocalStore struct {
	root string
}

// NewLocalStore creates the root directory if needed and returns the store.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Root returns the configured root directory, for static file serving.
func (s *LocalStore) Root() string { return s.root }

// Save streams content to the named file and returns the byte count.
func (s *LocalStore) Save(_ context.Context, filename string, content io.Reader) (int64, error) {
	dst, err := os.Create(filepath.Join(s.root, filename))
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, content)
	if err != nil {
		// Best effort: don't leave a truncated file behind.
		_ = os.Remove(dst.Name())
		return 0, fmt.Errorf("write file: %w", err)
	}
	return n, nil
}

// Exists reports whether the named file is present under the root.
func (s *LocalStore) Exists(_ context.Context, filename string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.root, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat file: %w", err)
	}
	return true, nil
}

// Delete removes the named file; a missing file is domain.ErrFileNotFound.
func (s *LocalStore) Delete(_ context.Context, filename string) error {
	err := os.Remove(filepath.Join(s.root, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ErrFileNotFound
		}
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
