package ports

import "context"

// BlobStore uploads binary payloads and returns a retrievable URL.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
