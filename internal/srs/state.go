package srs

import (
	"fmt"
	"log/slog"
	"time"
)

// ChunkStatus represents how far a learner has progressed with a chunk.
type ChunkStatus string

const (
	// StatusNew marks a chunk the learner has never been asked to recall.
	StatusNew ChunkStatus = "new"
	// StatusLearning marks a chunk under active acquisition.
	StatusLearning ChunkStatus = "learning"
	// StatusAcquired marks a chunk recalled reliably enough to space out.
	StatusAcquired ChunkStatus = "acquired"
	// StatusFragile marks a previously acquired chunk that was failed since.
	StatusFragile ChunkStatus = "fragile"
)

// IsValid reports whether the status is one of the known values.
func (s ChunkStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusLearning, StatusAcquired, StatusFragile:
		return true
	}
	return false
}

// ChunkState is the per-user spaced repetition state of a single chunk.
// The scheduler treats it as an immutable value: RecordReview returns the
// successor state and never mutates its input.
type ChunkState struct {
	Status       ChunkStatus
	EaseFactor   float64
	IntervalDays int
	NextReview   time.Time
	Repetitions  int

	TotalEncounters int
	CorrectFirstTry int
	WrongAttempts   int
	HelpUsedCount   int

	// Confidence blends historical first-try accuracy with recent
	// performance, kept in [0, 1].
	Confidence float64

	FirstEncounteredIn string
	LastEncounteredIn  string
	FirstEncounteredAt time.Time
	LastReviewedAt     time.Time
}

// NewChunkState returns the state of a chunk the learner has never seen.
func NewChunkState() ChunkState {
	return ChunkState{
		Status:     StatusNew,
		EaseFactor: DefaultEaseFactor,
	}
}

// Due reports whether the chunk should be offered for review at the given
// time. Chunks that have never been reviewed are always due.
func (s ChunkState) Due(now time.Time) bool {
	if s.TotalEncounters == 0 {
		return true
	}
	return !truncateToDay(s.NextReview).After(truncateToDay(now))
}

// ComparePriority orders two states for the review queue: never-reviewed
// chunks first, then lower ease factors, then earlier due dates. It returns
// a negative number when a should be reviewed before b, a positive number
// when after, and 0 when the order does not matter.
func ComparePriority(a, b ChunkState) int {
	aNew := a.TotalEncounters == 0
	bNew := b.TotalEncounters == 0
	if aNew != bNew {
		if aNew {
			return -1
		}
		return 1
	}
	if a.EaseFactor != b.EaseFactor {
		if a.EaseFactor < b.EaseFactor {
			return -1
		}
		return 1
	}
	return a.NextReview.Compare(b.NextReview)
}

func (s ChunkState) validate() error {
	if s.Status != "" && !s.Status.IsValid() {
		return fmt.Errorf("unknown chunk status %q: %w", s.Status, ErrInvalidState)
	}
	if s.IntervalDays < 0 {
		return fmt.Errorf("interval %d days must not be negative: %w", s.IntervalDays, ErrInvalidState)
	}
	if s.Repetitions < 0 || s.TotalEncounters < 0 || s.CorrectFirstTry < 0 ||
		s.WrongAttempts < 0 || s.HelpUsedCount < 0 {
		return fmt.Errorf("negative counter: %w", ErrInvalidState)
	}
	if s.CorrectFirstTry > s.TotalEncounters {
		return fmt.Errorf("correct first try %d exceeds %d encounters: %w",
			s.CorrectFirstTry, s.TotalEncounters, ErrInvalidState)
	}
	return nil
}

// normalized clamps stored numeric drift back into the documented bounds.
// Adjustments are logged since they indicate corruption upstream, not a
// caller mistake.
func (s ChunkState) normalized() ChunkState {
	if s.Status == "" {
		s.Status = StatusNew
	}
	if s.EaseFactor == 0 {
		s.EaseFactor = DefaultEaseFactor
	}
	if s.EaseFactor < MinEaseFactor || s.EaseFactor > MaxEaseFactor {
		clamped := clampEase(s.EaseFactor)
		slog.Default().Warn("clamping ease factor outside bounds",
			slog.Float64("ease_factor", s.EaseFactor),
			slog.Float64("clamped", clamped),
		)
		s.EaseFactor = clamped
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		clamped := clamp01(s.Confidence)
		slog.Default().Warn("clamping confidence outside bounds",
			slog.Float64("confidence", s.Confidence),
			slog.Float64("clamped", clamped),
		)
		s.Confidence = clamped
	}
	return s
}

// truncateToDay drops the time-of-day component of t in UTC. All scheduling
// happens at date precision.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
