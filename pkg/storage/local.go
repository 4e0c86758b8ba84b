package storage

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lumafab/agpattern/pkg/errors"
	"github.com/lumafab/agpattern/pkg/observability"
)

// LocalStore writes artifacts into a directory tree. The returned URLs are
// baseURL joined with the object name, so a static file server pointed at
// the directory serves them directly. With an empty baseURL the URLs are
// file:// paths, which is enough for development.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates the directory if needed.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create storage directory %s", dir)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload writes the artifact to disk.
func (s *LocalStore) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	observability.Storage().OnUpload(ctx, name, len(data))
	start := time.Now()

	path := filepath.Join(s.dir, filepath.FromSlash(name))
	err := writeFileAtomic(path, data)

	observability.Storage().OnUploadComplete(ctx, name, time.Since(start), err)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStorage, err, "write artifact %s", name)
	}
	return s.publicURL(name, path), nil
}

// Close is a no-op for the local backend.
func (s *LocalStore) Close() error { return nil }

func (s *LocalStore) publicURL(name, path string) string {
	if s.baseURL == "" {
		return (&url.URL{Scheme: "file", Path: path}).String()
	}
	return s.baseURL + "/" + name
}

// writeFileAtomic writes via a temp file and rename so a concurrent reader
// never sees a half-written artifact.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

var _ Store = (*LocalStore)(nil)
