package storage

import (
	"context"
	"os"
	"path/filepath"
)

// LocalStore writes objects under a base directory, one subdirectory per
// bucket. It stands in for a hosted object store in development and small
// single-node deployments.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	if baseDir == "" {
		baseDir = "./storage"
	}
	return &LocalStore{baseDir: baseDir}
}

func (s *LocalStore) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full := filepath.Join(s.baseDir, bucket, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}
