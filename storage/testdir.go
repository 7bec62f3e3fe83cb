package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// TestDir is the flat directory rendered test definitions are written to and
// the external runner executes from. Writes are atomic (temp file + rename)
// so a runner scanning the directory never observes a half-written test.
type TestDir struct {
	root string
}

// OpenTestDir opens the rendered-test directory, creating it if needed. The
// returned root is absolute so paths handed to the runner do not depend on
// the server's working directory.
func OpenTestDir(dir string) (*TestDir, error) {
	if dir == "" {
		return nil, fmt.Errorf("test directory cannot be empty")
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve test directory: %w", err)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create test directory: %w", err)
	}
	return &TestDir{root: root}, nil
}

// Root returns the absolute directory path.
func (d *TestDir) Root() string {
	return d.root
}

// Write stores a rendered test under name, replacing any previous version.
// The content lands under a temporary name first and is renamed into place.
func (d *TestDir) Write(ctx context.Context, name string, content io.Reader) error {
	if err := checkName(name); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.root, ".pending-*")
	if err != nil {
		return fmt.Errorf("failed to stage test file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write test file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write test file: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(d.root, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to place test file: %w", err)
	}
	return nil
}

// Path returns the absolute path of an existing rendered test, for handing to
// the runner. Missing files report ErrNotFound.
func (d *TestDir) Path(ctx context.Context, name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	full := filepath.Join(d.root, name)
	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to stat test file: %w", err)
	}
	return full, nil
}

// checkName enforces that name is a single plain file name. The directory is
// flat, so any separator or dot-segment is an attempt to leave it.
func checkName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: name cannot contain separators", ErrInvalidName)
	}
	return nil
}
