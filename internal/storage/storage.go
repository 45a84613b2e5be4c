package storage

import "context"

// BlobStore is the opaque media store. Store returns a key; URLFor turns a
// key into a public URL. Format validation happens before Store is called.
type BlobStore interface {
	Store(ctx context.Context, data []byte, contentType string) (string, error)
	URLFor(key string) string
}
