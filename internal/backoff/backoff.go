// Package backoff implements the shared retry/reconnect delay policy used by
// the periodic update checker and by long-lived streaming connections.
//
// The policy is linear: delay(attempt) = BaseDelay * attempt, with an
// optional additive jitter. A Retrier tracks the attempt counter for one
// consumer; the counter resets to zero after any success.
package backoff

import (
	"errors"
	"math/rand"
	"time"
)

// ErrAttemptsExhausted is returned by Retrier.Next once the configured
// maximum attempt count has been reached.
var ErrAttemptsExhausted = errors.New("backoff attempts exhausted")

const (
	defaultBaseDelay   = 2 * time.Second
	defaultMaxAttempts = 10
)

// Policy is a pure description of the delay sequence. The zero value is not
// usable; construct policies with NewPolicy.
type Policy struct {
	// BaseDelay is the delay of the first retry; attempt n waits n*BaseDelay.
	BaseDelay time.Duration
	// MaxAttempts bounds how many retries a Retrier hands out before
	// reporting ErrAttemptsExhausted. Zero or negative means the default.
	MaxAttempts int
	// Jitter, when positive, adds a random duration in [0, Jitter) to every
	// delay. Jitter never reduces a delay, so the expected delay stays
	// monotonically non-decreasing in the attempt number.
	Jitter time.Duration
}

// NewPolicy returns a Policy with defaults applied for unset values.
func NewPolicy(base time.Duration, maxAttempts int) Policy {
	if base <= 0 {
		base = defaultBaseDelay
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return Policy{BaseDelay: base, MaxAttempts: maxAttempts}
}

// Delay computes the wait before the given retry attempt (1-based). Attempts
// below 1 are treated as 1.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := p.BaseDelay * time.Duration(attempt)
	if p.Jitter > 0 {
		d += time.Duration(rand.Int63n(int64(p.Jitter)))
	}
	return d
}

// Retrier tracks the attempt counter of one consumer of a Policy. It is not
// safe for concurrent use; each consumer owns its own Retrier.
type Retrier struct {
	policy  Policy
	attempt int
}

// NewRetrier returns a Retrier at attempt zero.
func (p Policy) NewRetrier() *Retrier {
	return &Retrier{policy: p}
}

// Next advances the attempt counter and returns the delay to wait before the
// next try. Returns ErrAttemptsExhausted once MaxAttempts delays have been
// handed out.
func (r *Retrier) Next() (time.Duration, error) {
	if r.attempt >= r.policy.MaxAttempts {
		return 0, ErrAttemptsExhausted
	}
	r.attempt++
	return r.policy.Delay(r.attempt), nil
}

// Attempt returns the number of delays handed out since the last reset.
func (r *Retrier) Attempt() int {
	return r.attempt
}

// Reset returns the counter to zero. Call after any successful operation.
func (r *Retrier) Reset() {
	r.attempt = 0
}
