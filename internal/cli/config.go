package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lumafab/agpattern/pkg/cache"
	"github.com/lumafab/agpattern/pkg/jobs"
	"github.com/lumafab/agpattern/pkg/storage"
)

// ServerConfig is the TOML configuration for the serve command.
//
// Example:
//
//	addr = ":8080"
//
//	[cache]
//	backend = "redis"
//	key_prefix = "prod:"
//	  [cache.redis]
//	  addr = "localhost:6379"
//
//	[storage]
//	backend = "bucket"
//	upload_url = "https://bucket.internal/agpattern"
//	public_url = "https://cdn.example.com/agpattern"
//
//	[jobs]
//	backend = "mongo"
//	uri = "mongodb://localhost:27017"
//	database = "agpattern"
type ServerConfig struct {
	Addr    string        `toml:"addr"`
	Cache   CacheConfig   `toml:"cache"`
	Storage StorageConfig `toml:"storage"`
	Jobs    JobsConfig    `toml:"jobs"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"` // none, file (default), redis
	Dir       string `toml:"dir"`     // file backend; defaults to the XDG cache dir
	KeyPrefix string `toml:"key_prefix"`
	Redis     struct {
		Addr     string `toml:"addr"`
		Password string `toml:"password"`
		DB       int    `toml:"db"`
	} `toml:"redis"`
}

// StorageConfig selects the artifact store backend.
type StorageConfig struct {
	Backend   string `toml:"backend"`    // local (default), bucket
	Dir       string `toml:"dir"`        // local backend
	BaseURL   string `toml:"base_url"`   // local backend public URL prefix
	UploadURL string `toml:"upload_url"` // bucket backend
	PublicURL string `toml:"public_url"` // bucket backend
	Token     string `toml:"token"`      // bucket backend bearer token
}

// JobsConfig selects the job store backend.
type JobsConfig struct {
	Backend  string `toml:"backend"` // memory (default), mongo
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// defaultServerConfig is the configuration used when no file is given.
func defaultServerConfig() ServerConfig {
	cfg := ServerConfig{Addr: ":8080"}
	cfg.Cache.Backend = "file"
	cfg.Storage.Backend = "local"
	cfg.Storage.Dir = "artifacts"
	cfg.Jobs.Backend = "memory"
	cfg.Jobs.Database = appName
	return cfg
}

// loadServerConfig reads a TOML config file on top of the defaults.
func loadServerConfig(path string) (ServerConfig, error) {
	cfg := defaultServerConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// buildCache constructs the configured cache backend.
func (c *CacheConfig) buildCache(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "", "file":
		dir := c.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
	}
	return nil, fmt.Errorf("unknown cache backend %q", c.Backend)
}

// buildKeyer constructs the cache keyer, applying the optional prefix.
func (c *CacheConfig) buildKeyer() cache.Keyer {
	keyer := cache.NewDefaultKeyer()
	if c.KeyPrefix != "" {
		keyer = cache.NewScopedKeyer(keyer, c.KeyPrefix)
	}
	return keyer
}

// buildStore constructs the configured artifact store backend.
func (c *StorageConfig) buildStore() (storage.Store, error) {
	switch c.Backend {
	case "", "local":
		return storage.NewLocalStore(c.Dir, c.BaseURL)
	case "bucket":
		return storage.NewBucketStore(storage.BucketConfig{
			UploadURL: c.UploadURL,
			PublicURL: c.PublicURL,
			Token:     c.Token,
		})
	}
	return nil, fmt.Errorf("unknown storage backend %q", c.Backend)
}

// buildJobs constructs the configured job store backend.
func (c *JobsConfig) buildJobs(ctx context.Context) (jobs.Store, error) {
	switch c.Backend {
	case "", "memory":
		return jobs.NewMemoryStore(), nil
	case "mongo":
		return jobs.NewMongoStore(ctx, jobs.MongoConfig{
			URI:      c.URI,
			Database: c.Database,
		})
	}
	return nil, fmt.Errorf("unknown jobs backend %q", c.Backend)
}
