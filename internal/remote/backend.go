package remote

import (
	"context"

	"framelab/internal/config"
	"framelab/internal/faults"
)

// Backend moves persisted dataset trees to and from shared object storage.
// Callers must check Available before use; an unavailable backend is a valid
// value, not an import-time failure.
type Backend interface {
	Available() bool
	// Push uploads every file beneath localRoot under the given key prefix.
	Push(ctx context.Context, localRoot, prefix string) error
	// Pull downloads every object under the key prefix into localRoot.
	Pull(ctx context.Context, prefix, localRoot string) error
}

// FromConfig builds the configured backend. Remote storage disabled in the
// config yields an unavailable backend rather than an error.
func FromConfig(cfg *config.Config) (Backend, error) {
	if cfg == nil || !cfg.Remote.Enabled {
		return Unavailable{}, nil
	}
	return NewMinio(MinioConfig{
		Endpoint:  cfg.Remote.Endpoint,
		AccessKey: cfg.Remote.AccessKey,
		SecretKey: cfg.Remote.SecretKey,
		Bucket:    cfg.Remote.Bucket,
		UseSSL:    cfg.Remote.UseSSL,
	})
}

// Unavailable is the backend used when no remote storage is configured.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) Push(ctx context.Context, localRoot, prefix string) error {
	return faults.Wrap(faults.ErrConfiguration, "remote", "push", "no remote storage configured", nil)
}

func (Unavailable) Pull(ctx context.Context, prefix, localRoot string) error {
	return faults.Wrap(faults.ErrConfiguration, "remote", "pull", "no remote storage configured", nil)
}
