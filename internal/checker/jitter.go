package checker

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"
)

// RandomJitter produces a delay uniformly distributed in
// [min, max]. The remote storefront's bot detection is adversarial, so
// fixed-interval polling from cron is deliberately smeared with a
// random pre-fetch wait.
type RandomJitter struct {
	min time.Duration
	max time.Duration
}

// NewRandomJitter builds a policy over the configured bounds.
func NewRandomJitter(min, max time.Duration) *RandomJitter {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	return &RandomJitter{min: min, max: max}
}

// Delay returns the next randomized wait within the bounds.
func (j *RandomJitter) Delay() time.Duration {
	span := j.max - j.min
	if span <= 0 {
		return j.min
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(span)+1))
	if err != nil {
		return j.min + span/2
	}
	return j.min + time.Duration(n.Int64())
}

// pause sleeps for delay, returning early when ctx is done.
func pause(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
