package ports

import (
	"context"
	"io"
)

// ObjectStorage stores invoice files under deterministic keys.
type ObjectStorage interface {
	// Put uploads body to key, overwriting any existing object.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error

	// List returns the keys stored under prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// PublicURL returns the URL clients download key from.
	PublicURL(key string) string
}
