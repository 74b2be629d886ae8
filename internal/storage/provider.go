// Package storage defines the blob storage providers used to persist
// screenshot evidence artifacts. The abstraction keeps the pipeline
// independent of where the artifact lands (local disk, Google Cloud
// Storage, or nowhere at all).
package storage

import "context"

// Provider saves an artifact under objectName and returns its URI.
type Provider interface {
	Save(ctx context.Context, objectName string, data []byte) (string, error)
}

// NoOpProvider discards artifacts. Useful for dry runs and for tests
// that do not care about the evidence trail.
type NoOpProvider struct{}

// Save for NoOpProvider does nothing and returns an empty URI.
func (NoOpProvider) Save(_ context.Context, _ string, _ []byte) (string, error) {
	return "", nil
}
