// Package events publishes verdict events for downstream consumers.
// The LED controller reads the status file directly; this channel is
// for anything else that wants to react to availability changes.
package events

import (
	"context"

	"github.com/unifiwatch/stockwatch/internal/checker"
)

// Provider publishes verdict events and owns its client lifecycle.
type Provider interface {
	PublishVerdict(ctx context.Context, ev checker.VerdictEvent) error
	Close() error
}

// NoOpProvider drops events. Default.
type NoOpProvider struct{}

// PublishVerdict for NoOpProvider does nothing.
func (NoOpProvider) PublishVerdict(_ context.Context, _ checker.VerdictEvent) error {
	return nil
}

// Close for NoOpProvider does nothing.
func (NoOpProvider) Close() error { return nil }
