package remote_test

import (
	"context"
	"errors"
	"testing"

	"framelab/internal/config"
	"framelab/internal/faults"
	"framelab/internal/remote"
)

func TestFromConfigDisabledYieldsUnavailable(t *testing.T) {
	cfg := config.Default()
	backend, err := remote.FromConfig(&cfg)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if backend.Available() {
		t.Fatal("disabled remote should be unavailable")
	}
	if err := backend.Push(context.Background(), t.TempDir(), "ds"); !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("push on unavailable backend: got %v", err)
	}
	if err := backend.Pull(context.Background(), "ds", t.TempDir()); !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("pull on unavailable backend: got %v", err)
	}
}

func TestFromConfigNilYieldsUnavailable(t *testing.T) {
	backend, err := remote.FromConfig(nil)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if backend.Available() {
		t.Fatal("nil config should yield unavailable backend")
	}
}

func TestNewMinioRequiresEndpointAndBucket(t *testing.T) {
	_, err := remote.NewMinio(remote.MinioConfig{Bucket: "datasets"})
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	_, err = remote.NewMinio(remote.MinioConfig{Endpoint: "minio.local:9000"})
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestFromConfigEnabledBuildsMinio(t *testing.T) {
	cfg := config.Default()
	cfg.Remote.Enabled = true
	cfg.Remote.Endpoint = "minio.local:9000"
	cfg.Remote.Bucket = "datasets"

	backend, err := remote.FromConfig(&cfg)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if !backend.Available() {
		t.Fatal("configured backend should report available")
	}
}
