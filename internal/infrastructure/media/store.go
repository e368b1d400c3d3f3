// Package media adapts the hosted object storage used for school photos.
// Objects live under generated paths; the storage service returns a public
// URL on upload.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/skyward/flightschool-api/internal/core/domain"
)

const requestTimeout = 30 * time.Second

// HTTPStore talks to the storage endpoint of the hosted backend: PUT to
// upload, DELETE to remove, authenticated with the public API key.
type HTTPStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPStore creates an HTTPStore for the given storage endpoint.
func NewHTTPStore(baseURL, apiKey string) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// SchoolPhotoPath generates the canonical object path for a school photo.
func SchoolPhotoPath(schoolID string, now time.Time) string {
	return fmt.Sprintf("schools/school_%s_%d.jpg", schoolID, now.Unix())
}

func (s *HTTPStore) Upload(ctx context.Context, path, contentType string, content []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.objectURL(path), bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: upload %s: %w", domain.ErrNetwork, path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: upload %s: status %d", domain.ErrDatabase, path, resp.StatusCode)
	}

	return s.objectURL(path), nil
}

func (s *HTTPStore) Delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(path), nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: delete %s: %w", domain.ErrNetwork, path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	// Deleting a missing object is not an error.
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: delete %s: status %d", domain.ErrDatabase, path, resp.StatusCode)
	}
	return nil
}

func (s *HTTPStore) objectURL(path string) string {
	return s.baseURL + "/storage/v1/object/" + path
}
