// Package storage holds uploaded documents for the duration of one analysis
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a stored document does not exist
var ErrNotFound = errors.New("document not found")

// DocumentStore persists an upload until the pipeline is done with it
type DocumentStore interface {
	// Save stores data and returns the key it can be reopened with
	Save(ctx context.Context, filename, contentType string, data []byte) (string, error)
	Open(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// objectKey gives every upload a unique key while keeping its name readable
func objectKey(prefix, filename string) string {
	name := fmt.Sprintf("%s_%s", uuid.NewString(), path.Base(filename))
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
