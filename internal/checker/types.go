// Package checker defines the core types shared across the pipeline.
package checker

import (
	"fmt"
	"time"
)

// Verdict is the tri-state availability classification of a product page.
type Verdict string

// Verdict values. VerdictUnknown is only ever produced by the engine
// when the fetch fails; the classifier itself is total over snapshots.
const (
	VerdictAvailable Verdict = "available"
	VerdictSoldOut   Verdict = "sold_out"
	VerdictUnknown   Verdict = "unknown"
)

// SinkToken maps the verdict to the stable token vocabulary written to
// the status sink. These strings are the wire contract with the
// external LED controller and must not change between releases.
func (v Verdict) SinkToken() string {
	switch v {
	case VerdictAvailable:
		return "AVAILABLE"
	case VerdictSoldOut:
		return "SOLD_OUT"
	default:
		return "UNKNOWN"
	}
}

// Snapshot is the rendered page content captured by one fetch attempt.
// It is owned by the run that created it and discarded at run end;
// only the screenshot artifact survives, via the storage provider.
type Snapshot struct {
	RunID      string
	URL        string
	HTML       string
	Text       string
	Screenshot []byte

	// ScreenshotURI is set by the engine after the artifact has been
	// persisted. Informational only, nothing downstream consumes it.
	ScreenshotURI string

	FetchedAt time.Time
	Duration  time.Duration
}

// Priority for outbound notifications, on the Pushover scale.
type Priority int

// Verdict notifications go out at normal priority; failure
// notifications are elevated so operators can tell "in stock" apart
// from "the monitor is broken" at a glance.
const (
	PriorityNormal   Priority = 0
	PriorityElevated Priority = 1
)

// Notification is a verdict- or error-derived message. Dispatched at
// most once per run; never retried within the run.
type Notification struct {
	Title    string
	Body     string
	Priority Priority
}

// FetchError wraps any renderer or navigation failure. Nothing raised
// by the underlying browser driver escapes the fetcher boundary.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError indicates the status sink could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write status %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// TransportError indicates the notification transport rejected or
// failed to deliver a message.
type TransportError struct {
	Service string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("notify via %s: %v", e.Service, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Note: a ClassificationError type is deliberately absent. Classify is
// total over snapshots, so there is nothing for it to carry.

// Exit codes returned by a run. Stable; documented in doc.go.
const (
	ExitOK      = 0
	ExitPartial = 1
	ExitFatal   = 2
)

// Outcome summarizes one run for the caller.
type Outcome struct {
	RunID    string
	Verdict  Verdict
	FetchErr error

	// StepErrs collects isolated sub-step failures (status write,
	// notification, screenshot persist, history, event publish) that
	// did not stop the run.
	StepErrs []error
}

// Fatal reports whether the run failed to produce a verdict at all.
func (o Outcome) Fatal() bool { return o.FetchErr != nil }

// ExitCode maps the outcome onto the documented process exit codes.
func (o Outcome) ExitCode() int {
	switch {
	case o.Fatal():
		return ExitFatal
	case len(o.StepErrs) > 0:
		return ExitPartial
	default:
		return ExitOK
	}
}
