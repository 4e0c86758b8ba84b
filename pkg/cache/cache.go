// Package cache provides artifact caching for the generation pipeline.
//
// Generated drawings are pure functions of their configuration, so a
// content-hashed cache key makes repeat runs (common in batch sweeps that
// revisit parameter combinations) free. Backends:
//   - FileCache: directory-backed, for the CLI
//   - RedisCache: shared cache for multi-instance API deployments
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// TTLArtifact bounds how long rendered drawings stay cached. Artifacts
// are cheap to regenerate, so a stale eviction only costs one pipeline run.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the non-config inputs that shape an artifact.
type ArtifactKeyOpts struct {
	Formats []string `json:"formats"`
}

// Keyer generates cache keys for pipeline artifacts.
type Keyer interface {
	// ArtifactKey generates a key for a rendered drawing, combining the
	// configuration content hash with the render options.
	ArtifactKey(configHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates hash-based cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for a rendered drawing.
func (k *DefaultKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", configHash, opts)
}
