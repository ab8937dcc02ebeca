package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/logger"
)

// SupabaseStorage talks to the hosted storage service's REST API
// (/storage/v1) with a service-role bearer key.
type SupabaseStorage struct {
	projectURL string
	serviceKey string
	client     *http.Client
}

// NewSupabaseStorage creates a storage client. projectURL is the project
// base URL without a trailing slash, serviceKey the service-role key.
func NewSupabaseStorage(projectURL, serviceKey string) (*SupabaseStorage, error) {
	if projectURL == "" || serviceKey == "" {
		return nil, fmt.Errorf("supabase storage requires project URL and service key")
	}
	return &SupabaseStorage{
		projectURL: strings.TrimRight(projectURL, "/"),
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Upload writes data to bucket/path with upsert semantics.
func (s *SupabaseStorage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.projectURL, bucket, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("bucket", bucket).Str("path", path).Msg("Storage upload request failed")
		return fmt.Errorf("%w: %v", apperrors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Error().Int("status", resp.StatusCode).Str("bucket", bucket).Str("path", path).Str("body", string(body)).Msg("Storage upload rejected")
		return fmt.Errorf("storage upload failed with status %d", resp.StatusCode)
	}

	logger.Info().Str("bucket", bucket).Str("path", path).Int("bytes", len(data)).Msg("Object uploaded")
	return nil
}

// PublicURL returns the unauthenticated object URL.
func (s *SupabaseStorage) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.projectURL, bucket, path)
}

// SignedURL asks the storage service to sign a time-limited download URL.
func (s *SupabaseStorage) SignedURL(ctx context.Context, bucket, path string, expiry time.Duration) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", s.projectURL, bucket, path)

	payload, err := json.Marshal(map[string]int{"expiresIn": int(expiry.Seconds())})
	if err != nil {
		return "", fmt.Errorf("failed to marshal sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build sign request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("storage sign failed with status %d", resp.StatusCode)
	}

	var signed struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&signed); err != nil {
		return "", fmt.Errorf("failed to decode sign response: %w", err)
	}
	if signed.SignedURL == "" {
		return "", fmt.Errorf("storage sign response missing URL")
	}

	return s.projectURL + "/storage/v1" + signed.SignedURL, nil
}

// Delete removes an object; 404 from the store is treated as success.
func (s *SupabaseStorage) Delete(ctx context.Context, bucket, path string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.projectURL, bucket, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("storage delete failed with status %d", resp.StatusCode)
	}

	return nil
}
