package storage

import "context"

// ObjectStore is the photo-attachment collaborator: a bucketed blob store
// the workflow only needs success/failure from per call.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
}
