package backup

import "context"

// Storage holds archive documents by key. Implementations exist for the
// local filesystem and S3-compatible object stores.
type Storage interface {
	// Put stores the document under the key, overwriting any previous one.
	Put(ctx context.Context, key string, data []byte) error

	// Get returns the document stored under the key, or ErrArchiveNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the document. Deleting an unknown key returns
	// ErrArchiveNotFound.
	Delete(ctx context.Context, key string) error
}
