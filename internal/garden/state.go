package garden

import (
	"fmt"
	"log/slog"
	"time"
)

// TreeStatus represents the visible lifecycle state of a tree.
type TreeStatus string

const (
	// StatusSeed marks a tree at growth stage 0.
	StatusSeed TreeStatus = "seed"
	// StatusGrowing marks a tree between seed and bloom.
	StatusGrowing TreeStatus = "growing"
	// StatusBloomed marks a tree at the final growth stage.
	StatusBloomed TreeStatus = "bloomed"
	// StatusDying marks a tree whose health dropped to the low threshold.
	StatusDying TreeStatus = "dying"
	// StatusDead marks a tree whose health reached zero.
	StatusDead TreeStatus = "dead"
)

// IsValid reports whether the status is one of the known values.
func (s TreeStatus) IsValid() bool {
	switch s {
	case StatusSeed, StatusGrowing, StatusBloomed, StatusDying, StatusDead:
		return true
	}
	return false
}

// Position is a grid slot in the garden.
type Position struct {
	Row int
	Col int
}

// Reward is a positive delta applied to a tree. Lesson completions and
// gifts arrive through the same shape; the engine does not distinguish the
// source.
type Reward struct {
	SunDrops int
	Health   int
}

// TreeState is the per-user, per-skill-path state of one tree. The engine
// treats it as an immutable value: every operation returns the successor
// state and never mutates its input.
type TreeState struct {
	Status TreeStatus
	IsDead bool

	// Health is kept in [0, MaxHealth].
	Health int

	// SunDropsEarned drives growth. SunDropsTotal is the lifetime income,
	// which keeps accruing even while the tree is dead. Both only ever
	// increase.
	SunDropsEarned int
	SunDropsTotal  int

	// GrowthStage is derived from SunDropsEarned and stored for the read
	// model. It freezes while the tree is dead.
	GrowthStage int

	// LastRefresh is the date daily decay was last applied.
	LastRefresh time.Time

	// DiedAt is the date health reached zero, nil for living trees.
	DiedAt *time.Time

	Position Position
}

// NewTreeState returns a freshly planted seed at the given grid slot.
func NewTreeState(position Position, today time.Time) TreeState {
	return TreeState{
		Status:      StatusSeed,
		Health:      MaxHealth,
		LastRefresh: truncateToDay(today),
		Position:    position,
	}
}

func (s TreeState) validate() error {
	if s.Status != "" && !s.Status.IsValid() {
		return fmt.Errorf("unknown tree status %q: %w", s.Status, ErrInvalidState)
	}
	if s.SunDropsEarned < 0 || s.SunDropsTotal < 0 {
		return fmt.Errorf("negative sun drop counter: %w", ErrInvalidState)
	}
	if s.GrowthStage < 0 || s.GrowthStage > MaxGrowthStage {
		return fmt.Errorf("growth stage %d out of range: %w", s.GrowthStage, ErrInvalidState)
	}
	return nil
}

// normalized clamps stored numeric drift back into the documented bounds
// and keeps the dead flag consistent with the status.
func (s TreeState) normalized() TreeState {
	if s.Status == "" {
		s.Status = StatusSeed
	}
	if s.Health < 0 || s.Health > MaxHealth {
		clamped := clampHealth(s.Health)
		slog.Default().Warn("clamping tree health outside bounds",
			slog.Int("health", s.Health),
			slog.Int("clamped", clamped),
		)
		s.Health = clamped
	}
	s.IsDead = s.Status == StatusDead
	return s
}

func clampHealth(health int) int {
	if health < 0 {
		return 0
	}
	if health > MaxHealth {
		return MaxHealth
	}
	return health
}

// truncateToDay drops the time-of-day component of t in UTC. The lifecycle
// works at date precision.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
