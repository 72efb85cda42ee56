package storage

import (
	"context"
	"time"
)

// Default expiry for presigned URLs.
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage is the object-store abstraction the diet and template
// services use for image assets. Clients upload and download directly via
// presigned URLs; the server never proxies image bytes.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL accepting a PUT of
	// the object. The uploader must send the same Content-Type.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL allowing a GET
	// of the object.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the store.
	DeleteObject(ctx context.Context, objectKey string) error
}
