// Package garden implements the tree lifecycle engine: sun drop rewards,
// growth stages, daily health decay, death and revival. The engine is pure
// and leaves persistence and scheduling to its callers.
package garden

import (
	"fmt"
	"time"
)

// MaxHealth is the upper bound of a tree's health.
const MaxHealth = 100

const (
	defaultDecayPerDay        = 10
	defaultLowHealthThreshold = 25
	defaultGraceDays          = 7
)

// Config carries the engine tunables. The zero value selects the defaults,
// so Config{} is a valid configuration.
type Config struct {
	// DecayPerDay is the health lost for each day without a refresh.
	// Default 10.
	DecayPerDay int

	// LowHealthThreshold is the health at or below which a tree counts as
	// dying. Default 25.
	LowHealthThreshold int

	// GraceDays is how long after death a tree can still be revived.
	// Default 7.
	GraceDays int
}

func (c Config) withDefaults() Config {
	if c.DecayPerDay == 0 {
		c.DecayPerDay = defaultDecayPerDay
	}
	if c.LowHealthThreshold == 0 {
		c.LowHealthThreshold = defaultLowHealthThreshold
	}
	if c.GraceDays == 0 {
		c.GraceDays = defaultGraceDays
	}
	return c
}

// Engine computes successor tree states from rewards and the passage of
// time.
type Engine struct {
	config Config
}

// NewEngine creates an engine with the given tunables. Zero fields in
// config fall back to the defaults.
func NewEngine(config Config) *Engine {
	return &Engine{config: config.withDefaults()}
}

// ApplyReward adds sun drops and health to a tree and returns the successor
// state. Negative deltas are rejected before anything is applied. Dead trees
// accrue the sun drop counters, but their health and growth stage stay
// frozen until an explicit Revive.
func (e *Engine) ApplyReward(state TreeState, reward Reward) (TreeState, error) {
	if reward.SunDrops < 0 || reward.Health < 0 {
		return state, fmt.Errorf("reward sun_drops=%d health=%d: %w",
			reward.SunDrops, reward.Health, ErrNegativeDelta)
	}
	if err := state.validate(); err != nil {
		return state, err
	}

	next := state.normalized()
	next.SunDropsEarned += reward.SunDrops
	next.SunDropsTotal += reward.SunDrops
	if next.IsDead {
		return next, nil
	}

	stage, err := StageForSunDrops(next.SunDropsEarned)
	if err != nil {
		return state, err
	}
	next.GrowthStage = stage
	next.Health = clampHealth(next.Health + reward.Health)
	next.Status = e.statusFor(next)
	return next, nil
}

// ApplyDailyDecay applies the health decay for the whole days elapsed since
// the last refresh and returns the successor state. Calling it twice for
// the same day is a no-op the second time, which makes the daily tick safe
// to repeat. The refresh date advances for dead trees too, so a revived
// tree does not face a decay backlog.
func (e *Engine) ApplyDailyDecay(state TreeState, today time.Time) (TreeState, error) {
	if err := state.validate(); err != nil {
		return state, err
	}

	next := state.normalized()
	today = truncateToDay(today)

	if next.LastRefresh.IsZero() {
		// States imported from elsewhere may miss the refresh date; start
		// counting from today instead of decaying the backlog since time
		// zero.
		next.LastRefresh = today
		return next, nil
	}

	last := truncateToDay(next.LastRefresh)
	if today.Before(last) {
		return state, fmt.Errorf("today %s before last refresh %s: %w",
			today.Format(time.DateOnly), last.Format(time.DateOnly), ErrTimeReversed)
	}

	days := int(today.Sub(last).Hours() / 24)
	if days == 0 {
		return next, nil
	}
	next.LastRefresh = today
	if next.IsDead {
		return next, nil
	}

	next.Health = clampHealth(next.Health - days*e.config.DecayPerDay)
	next.Status = e.statusFor(next)
	if next.Status == StatusDead {
		next.IsDead = true
		diedAt := today
		next.DiedAt = &diedAt
	}
	return next, nil
}

// Revive brings a dead tree back to life with the given health, as long as
// the grace window since its death is still open. The growth stage unfreezes
// and is recomputed from the sun drops accrued so far.
func (e *Engine) Revive(state TreeState, health int, today time.Time) (TreeState, error) {
	if err := state.validate(); err != nil {
		return state, err
	}
	next := state.normalized()
	if !next.IsDead {
		return state, ErrNotDead
	}
	if health <= 0 {
		return state, fmt.Errorf("revival health %d must be positive: %w", health, ErrNegativeDelta)
	}

	today = truncateToDay(today)
	if next.DiedAt != nil {
		deadline := truncateToDay(*next.DiedAt).AddDate(0, 0, e.config.GraceDays)
		if today.After(deadline) {
			return state, fmt.Errorf("died %s, revivable until %s: %w",
				next.DiedAt.Format(time.DateOnly), deadline.Format(time.DateOnly), ErrGraceExpired)
		}
	}

	stage, err := StageForSunDrops(next.SunDropsEarned)
	if err != nil {
		return state, err
	}
	next.Health = clampHealth(health)
	next.IsDead = false
	next.DiedAt = nil
	next.LastRefresh = today
	next.GrowthStage = stage
	next.Status = e.statusFor(next)
	return next, nil
}

// Replant starts a fresh seed in the same grid slot. Unlike Revive it works
// at any time, at the cost of all accumulated growth.
func (e *Engine) Replant(state TreeState, today time.Time) TreeState {
	return NewTreeState(state.Position, today)
}

// statusFor derives the visible status from health and growth stage.
func (e *Engine) statusFor(state TreeState) TreeStatus {
	switch {
	case state.Health <= 0:
		return StatusDead
	case state.Health <= e.config.LowHealthThreshold:
		return StatusDying
	case state.GrowthStage >= MaxGrowthStage:
		return StatusBloomed
	case state.GrowthStage == 0:
		return StatusSeed
	}
	return StatusGrowing
}
