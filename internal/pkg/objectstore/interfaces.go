package objectstore

import (
	"context"
	"time"
)

// Store is an opaque blob store keyed by bucket and path. The application
// writes uploaded PDF forms and rubric files through this interface and
// hands out URLs for download; it never reads blob content back.
type Store interface {
	// Upload writes data to bucket/path, overwriting any existing object.
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error

	// PublicURL returns the unauthenticated download URL for an object.
	// The URL only works when the bucket is public.
	PublicURL(bucket, path string) string

	// SignedURL returns a time-limited download URL, or an error when the
	// store cannot sign (the caller may fall back to PublicURL).
	SignedURL(ctx context.Context, bucket, path string, expiry time.Duration) (string, error)

	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, bucket, path string) error
}
