package ports

import "context"

// MediaStore is the hosted object storage the school photo feature uploads
// to. The auth core has no dependency on it.
type MediaStore interface {
	// Upload stores content under path and returns its public URL.
	Upload(ctx context.Context, path, contentType string, content []byte) (string, error)

	// Delete removes the object at path. Deleting a missing object is not
	// an error.
	Delete(ctx context.Context, path string) error
}
