// Package checker implements the stock-check pipeline: fetch the
// product page, classify it against the sold-out marker, persist the
// status token for the LED controller, and dispatch notifications.
//
// A run is strictly linear and never retries; the external scheduler
// (cron) owns the cadence. The process exit code reflects the worst
// outcome of a run:
//
//	0: full success
//	1: partial failure, a verdict was produced but a sub-step
//	   (status write, notification, history, event publish) failed
//	2: fatal failure, the fetch failed and no verdict exists
package checker
