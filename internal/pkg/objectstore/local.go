package objectstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fems12/WBL-Management-Sytem/internal/pkg/logger"
)

// LocalStorage implements Store on the local filesystem. It is the
// development fallback when no hosted storage is configured.
type LocalStorage struct {
	basePath string // root directory for all buckets
	baseURL  string // prepended to returned URLs, e.g. http://localhost:8080/uploads
}

// NewLocalStorage creates a filesystem-backed store rooted at basePath.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes data under basePath/bucket/path, creating directories
// as needed. Existing objects are overwritten.
func (ls *LocalStorage) Upload(_ context.Context, bucket, path string, data []byte, _ string) error {
	dstPath := filepath.Join(ls.basePath, bucket, filepath.FromSlash(path))

	if err := os.MkdirAll(filepath.Dir(dstPath), os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create object directory")
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write object")
		return fmt.Errorf("failed to write object: %w", err)
	}

	logger.Info().Str("bucket", bucket).Str("path", path).Int("bytes", len(data)).Msg("Object saved")
	return nil
}

// PublicURL returns baseURL/bucket/path.
func (ls *LocalStorage) PublicURL(bucket, path string) string {
	return ls.baseURL + "/" + bucket + "/" + path
}

// SignedURL returns the public URL; local storage has no signing, so
// the expiry is ignored.
func (ls *LocalStorage) SignedURL(_ context.Context, bucket, path string, _ time.Duration) (string, error) {
	return ls.PublicURL(bucket, path), nil
}

// Delete removes an object. Deleting a missing object is not an error.
func (ls *LocalStorage) Delete(_ context.Context, bucket, path string) error {
	physicalPath := filepath.Join(ls.basePath, bucket, filepath.FromSlash(path))

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("Object to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete object")
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}
