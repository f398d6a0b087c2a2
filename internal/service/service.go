// Package service wires the pure scheduling and lifecycle cores to the
// persistence layer. Writes run under optimistic version checks; a version
// conflict reloads fresh state and recomputes, everything else fails fast.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go"

	"github.com/lexigarden/lexigarden/internal/store"
)

// DefaultRetryAttempts bounds how often a write is recomputed after losing
// an optimistic concurrency race.
const DefaultRetryAttempts = 3

var ErrTreeNotFound = errors.New("service: tree not found")

func conflictRetryOptions(ctx context.Context, attempts uint) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(attempts + 1),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, store.ErrVersionConflict)
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	}
}

func nowOrDefault(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
