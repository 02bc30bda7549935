package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage is a minimal object store for generated reports
type Storage interface {
	// Put stores the reader's content under key, replacing any existing object.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Exists reports whether key is stored.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the public URL for key.
	GetURL(key string) string
}

// Backends accepted by Config.Backend
const (
	BackendLocal = "local"
	BackendR2    = "r2"
)

// Config selects and configures a storage backend
type Config struct {
	Backend   string
	LocalPath string
	BaseURL   string
	R2        R2Config
}

// New creates the configured backend
func New(cfg Config) (Storage, error) {
	switch cfg.Backend {
	case BackendR2:
		s, err := NewR2Storage(cfg.R2)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendLocal, "":
		s, err := NewLocalStorage(cfg.LocalPath, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
