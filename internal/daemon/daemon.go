// Package daemon runs the recurring garden upkeep in the background.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/lexigarden/lexigarden/internal/service"
)

// DecayRunner is the part of the garden service the daemon drives.
type DecayRunner interface {
	RunDailyDecay(ctx context.Context, asOf time.Time) (service.DecayResult, error)
}

// Daemon schedules the daily decay pass.
type Daemon struct {
	scheduler *gocron.Scheduler
	gardens   DecayRunner
	at        string
	now       func() time.Time
}

// New builds a daemon that runs the decay pass once a day at the given
// UTC wall-clock time, formatted "HH:MM".
func New(gardens DecayRunner, at string) *Daemon {
	return &Daemon{
		scheduler: gocron.NewScheduler(time.UTC),
		gardens:   gardens,
		at:        at,
		now:       time.Now,
	}
}

// Start schedules the daily job and begins running it in the background.
// One pass also runs immediately so a restart catches up on missed days.
func (d *Daemon) Start(ctx context.Context) error {
	if _, err := d.scheduler.Every(1).Day().At(d.at).Do(func() {
		d.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("scheduler.Every(1).Day().At(%s) > %w", d.at, err)
	}
	d.scheduler.StartAsync()
	d.RunOnce(ctx)
	return nil
}

// Stop terminates the scheduled jobs.
func (d *Daemon) Stop() {
	d.scheduler.Stop()
}

// RunOnce runs a single decay pass and logs the outcome. The decay math is
// idempotent per UTC day, so overlapping passes are harmless.
func (d *Daemon) RunOnce(ctx context.Context) {
	asOf := d.now()
	result, err := d.gardens.RunDailyDecay(ctx, asOf)
	logger := slog.Default().With(
		slog.Time("asOf", asOf),
		slog.Int("refreshed", result.Refreshed),
		slog.Int("died", result.Died),
	)
	if err != nil {
		logger.Error("daily decay pass finished with failures", slog.Any("error", err))
		return
	}
	logger.Info("daily decay pass finished")
}
