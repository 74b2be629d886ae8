package checker

import (
	"context"
	"time"
)

// Fetcher drives the page renderer and returns a snapshot, or a
// *FetchError when the renderer fails in any way.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Snapshot, error)
	Close(ctx context.Context) error
}

// StatusSink persists the verdict token for the external reader. The
// write must fully replace prior content; partial or interleaved
// content must never be observable.
type StatusSink interface {
	Write(ctx context.Context, verdict Verdict) error
}

// Notifier dispatches a single human-facing message.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// JitterPolicy yields the randomized pre-fetch delay. Injectable so
// tests can assert the bound instead of sleeping.
type JitterPolicy interface {
	Delay() time.Duration
}

// ScreenshotStore persists the "might be in stock" evidence artifact
// and returns its URI.
type ScreenshotStore interface {
	Save(ctx context.Context, objectName string, data []byte) (string, error)
}

// Classifier yields the availability verdict for a snapshot.
type Classifier interface {
	Classify(snap Snapshot) Verdict
}

// CheckRecord is the per-run row persisted by the history store.
type CheckRecord struct {
	RunID         string
	URL           string
	Product       string
	Verdict       Verdict
	Token         string
	ScreenshotURI string
	Notified      bool
	ErrorText     string
	CheckedAt     time.Time
	DurationMs    int64
}

// HistoryStore persists one record per run for auditing. A history
// failure degrades the run to partial, never fatal.
type HistoryStore interface {
	RecordCheck(ctx context.Context, rec CheckRecord) error
}

// VerdictEvent is published downstream after each completed run.
type VerdictEvent struct {
	RunID     string    `json:"run_id"`
	URL       string    `json:"url"`
	Product   string    `json:"product"`
	Verdict   Verdict   `json:"verdict"`
	CheckedAt time.Time `json:"checked_at"`
}

// EventPublisher pushes verdict events to a topic (or similar).
type EventPublisher interface {
	PublishVerdict(ctx context.Context, ev VerdictEvent) error
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces run IDs.
type IDGenerator interface {
	NewID() (string, error)
}
