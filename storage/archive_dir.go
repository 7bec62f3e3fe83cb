package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirArchive keeps run logs in a directory tree on the local filesystem.
type DirArchive struct {
	root string
}

// NewDirArchive opens a directory-backed archive rooted at dir, creating it
// if needed.
func NewDirArchive(dir string) (*DirArchive, error) {
	if dir == "" {
		return nil, fmt.Errorf("archive directory cannot be empty")
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve archive directory: %w", err)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &DirArchive{root: root}, nil
}

// Put stores the content at key, creating parent directories as needed.
func (a *DirArchive) Put(ctx context.Context, key string, content io.Reader) error {
	cleaned, err := cleanKey(key)
	if err != nil {
		return err
	}

	full := filepath.Join(a.root, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	file, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return fmt.Errorf("failed to write archive file: %w", err)
	}
	return nil
}

// Location returns the filesystem path of an archived object.
func (a *DirArchive) Location(ctx context.Context, key string) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	full := filepath.Join(a.root, filepath.FromSlash(cleaned))
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to stat archive file: %w", err)
	}
	return full, nil
}
