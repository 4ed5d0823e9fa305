// Package retry wraps backend calls with exponential backoff. Only errors
// that look transient are retried: categorized provider errors (rate
// limits, overload) and network timeouts. A server-suggested Retry-After
// delay takes precedence over the computed backoff.
package retry

import (
	"math"
	"math/rand"
	"time"
)

// Config controls the backoff schedule for one call site.
type Config struct {
	// MaxAttempts bounds the total number of tries, counting the first.
	MaxAttempts int

	// InitialDelay seeds the schedule: the wait before retry n is
	// InitialDelay * Multiplier^n, capped at MaxDelay.
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64

	// Jitter spreads each delay by a random factor in
	// [1-Jitter, 1+Jitter] so concurrent agents do not retry in lockstep.
	Jitter float64
}

// DefaultConfig is tuned for chat completions: rate-limit windows are
// usually seconds, so back off from 1s toward a 60s ceiling across up to
// ten attempts.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  10,
		InitialDelay: time.Second,
		MaxDelay:     60 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.1,
	}
}

// Disabled makes every call single-shot. Tests use it to keep failure
// paths deterministic.
func Disabled() Config {
	return Config{MaxAttempts: 1}
}

// Delay returns the backoff before retry number attempt (0-indexed).
func (c Config) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	backoff := float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt))
	if ceiling := float64(c.MaxDelay); backoff > ceiling {
		backoff = ceiling
	}
	if c.Jitter > 0 {
		backoff *= 1 + c.Jitter*(2*rand.Float64()-1)
	}
	return time.Duration(backoff)
}
