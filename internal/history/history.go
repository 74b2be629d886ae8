// Package history persists one record per check run for auditing.
// The interface decouples the pipeline from the backing database; a
// NoOp implementation keeps the monitor usable without one.
package history

import (
	"context"

	"github.com/unifiwatch/stockwatch/internal/checker"
)

// Provider records check outcomes and owns its connection lifecycle.
type Provider interface {
	RecordCheck(ctx context.Context, rec checker.CheckRecord) error
	Close()
}

// NoOpProvider discards records. Default for cron installs that only
// need the status file and notifications.
type NoOpProvider struct{}

// RecordCheck for NoOpProvider does nothing.
func (NoOpProvider) RecordCheck(_ context.Context, _ checker.CheckRecord) error {
	return nil
}

// Close for NoOpProvider does nothing.
func (NoOpProvider) Close() {}
