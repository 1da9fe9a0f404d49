// Package filestore stores uploaded profile images as flat, name-addressed blobs.
package filestore

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotExist is returned by Open when no file is stored under the name.
var ErrNotExist = errors.New("file does not exist")

// ErrInvalidName is returned for names that are not a single path element.
var ErrInvalidName = errors.New("invalid file name")

// Store is a flat key/value blob store keyed by generated filename.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Remove deletes the named file. Removing a missing file is not an error.
	Remove(ctx context.Context, name string) error
}

// NewName generates a collision-resistant stored name that keeps the
// extension of the submitted filename.
func NewName(original string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(filepath.Base(original)))
}

// cleanName rejects anything that could escape the store directory.
func cleanName(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidName
	}
	return name, nil
}
