package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lumafab/agpattern/pkg/errors"
	"github.com/lumafab/agpattern/pkg/httputil"
	"github.com/lumafab/agpattern/pkg/observability"
)

// BucketStore uploads artifacts to an HTTP object store with PUT requests.
// It speaks the lowest common denominator of S3-compatible stores, GCS's
// XML API, and plain upload servers: PUT {uploadURL}/{name}, read back at
// {publicURL}/{name}.
type BucketStore struct {
	uploadURL string
	publicURL string
	token     string
	client    *http.Client
}

// BucketConfig configures the HTTP bucket backend.
type BucketConfig struct {
	// UploadURL is the base URL PUT requests go to.
	UploadURL string

	// PublicURL is the base URL artifacts are served from. Defaults to
	// UploadURL.
	PublicURL string

	// Token, when set, is sent as a bearer token.
	Token string

	// Timeout bounds each upload attempt. Defaults to 30s.
	Timeout time.Duration
}

// NewBucketStore creates the HTTP bucket backend.
func NewBucketStore(cfg BucketConfig) (*BucketStore, error) {
	if cfg.UploadURL == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "bucket upload URL is required")
	}
	if cfg.PublicURL == "" {
		cfg.PublicURL = cfg.UploadURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &BucketStore{
		uploadURL: strings.TrimRight(cfg.UploadURL, "/"),
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		token:     cfg.Token,
		client:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Upload PUTs the artifact, retrying transient failures with backoff.
func (s *BucketStore) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	observability.Storage().OnUpload(ctx, name, len(data))
	start := time.Now()

	target := s.uploadURL + "/" + name
	err := httputil.RetryWithBackoff(ctx, func() error {
		return s.put(ctx, target, data, contentType)
	})

	observability.Storage().OnUploadComplete(ctx, name, time.Since(start), err)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStorage, err, "upload artifact %s", name)
	}
	return s.publicURL + "/" + name, nil
}

func (s *BucketStore) put(ctx context.Context, target string, data []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(data))
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		// Network errors are worth retrying.
		return &httputil.RetryableError{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return &httputil.RetryableError{Err: fmt.Errorf("upstream returned %s", resp.Status)}
	default:
		return fmt.Errorf("upstream returned %s", resp.Status)
	}
}

// Close is a no-op; the HTTP client has no persistent resources.
func (s *BucketStore) Close() error { return nil }

var _ Store = (*BucketStore)(nil)
