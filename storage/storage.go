// Package storage persists the two kinds of files this server produces:
// rendered test definitions (always on the local filesystem, because the
// external runner reads them off disk) and run-log archives (local directory
// or S3).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

var (
	// ErrNotFound is returned when a requested file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrInvalidName is returned for test file names that are empty or not a
	// plain file name. Rendered tests are a flat directory; names never
	// contain separators.
	ErrInvalidName = errors.New("invalid test file name")

	// ErrInvalidKey is returned for archive keys that are empty, absolute, or
	// escape the archive root.
	ErrInvalidKey = errors.New("invalid archive key")
)

// Archive stores run logs after a test execution finishes. Keys are
// slash-separated relative paths such as "runs/<id>/<file>.log".
type Archive interface {
	// Put stores the content at the given key, creating intermediate
	// levels as needed.
	Put(ctx context.Context, key string, content io.Reader) error

	// Location returns where the archived object can be retrieved from: a
	// filesystem path for the directory backend, a presigned URL for S3.
	Location(ctx context.Context, key string) (string, error)
}

// NewArchive builds an Archive from configuration.
func NewArchive(kind, dir, bucket, region string) (Archive, error) {
	switch strings.ToLower(kind) {
	case "local":
		return NewDirArchive(dir)
	case "s3":
		return NewS3Archive(bucket, region)
	default:
		return nil, fmt.Errorf("unsupported archive kind: %s", kind)
	}
}

// cleanKey normalizes an archive key and rejects anything that would resolve
// outside the archive root. Keys use slash separators on every backend.
func cleanKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("%w: key cannot be absolute", ErrInvalidKey)
	}
	cleaned := path.Clean(key)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: key escapes the archive root", ErrInvalidKey)
	}
	return cleaned, nil
}
