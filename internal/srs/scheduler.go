// Package srs implements the SM-2 style spaced repetition scheduler for
// vocabulary chunks. The scheduler is pure: it computes successor states
// from review outcomes and leaves persistence to its callers.
package srs

import (
	"math"
	"time"
)

const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	MaxEaseFactor     = 2.5
)

const (
	defaultFailurePenalty          = 0.2
	defaultAcquisitionRepetitions  = 3
	defaultAcquisitionEase         = 2.0
	defaultMaxIntervalDays         = 365
	defaultConfidenceSmoothing     = 0.3
	defaultConfidenceRecencyWeight = 0.6
)

// Config carries the scheduler tunables. The zero value selects the
// defaults, so Config{} is a valid configuration.
type Config struct {
	// FailurePenalty is subtracted from the ease factor on a failed review
	// instead of the SM-2 delta. Default 0.2.
	FailurePenalty float64

	// AcquisitionRepetitions and AcquisitionEase set the promotion bar from
	// learning (or fragile) to acquired. Defaults 3 and 2.0.
	AcquisitionRepetitions int
	AcquisitionEase        float64

	// MaxIntervalDays caps the review interval. Default 365.
	MaxIntervalDays int

	// ConfidenceSmoothing is the weight of the newest encounter in the
	// confidence update. Default 0.3.
	ConfidenceSmoothing float64

	// ConfidenceRecencyWeight balances the encounter score against the
	// historical first-try accuracy. Default 0.6.
	ConfidenceRecencyWeight float64
}

func (c Config) withDefaults() Config {
	if c.FailurePenalty == 0 {
		c.FailurePenalty = defaultFailurePenalty
	}
	if c.AcquisitionRepetitions == 0 {
		c.AcquisitionRepetitions = defaultAcquisitionRepetitions
	}
	if c.AcquisitionEase == 0 {
		c.AcquisitionEase = defaultAcquisitionEase
	}
	if c.MaxIntervalDays == 0 {
		c.MaxIntervalDays = defaultMaxIntervalDays
	}
	if c.ConfidenceSmoothing == 0 {
		c.ConfidenceSmoothing = defaultConfidenceSmoothing
	}
	if c.ConfidenceRecencyWeight == 0 {
		c.ConfidenceRecencyWeight = defaultConfidenceRecencyWeight
	}
	return c
}

// Scheduler computes successor chunk states from review outcomes.
type Scheduler struct {
	config Config
}

// NewScheduler creates a scheduler with the given tunables. Zero fields in
// config fall back to the defaults.
func NewScheduler(config Config) *Scheduler {
	return &Scheduler{config: config.withDefaults()}
}

// RecordReview applies one review outcome to a chunk state and returns the
// successor state.
//
// Malformed outcomes and impossible stored counters are rejected before
// anything is computed; numeric drift in the bounded fields (ease factor,
// confidence) is clamped back into range instead. The returned state is
// complete, so the whole transition is atomic: on error the input state is
// returned unchanged.
func (s *Scheduler) RecordReview(state ChunkState, outcome Outcome, today time.Time) (ChunkState, error) {
	if err := outcome.validate(); err != nil {
		return state, err
	}
	if err := state.validate(); err != nil {
		return state, err
	}

	next := state.normalized()
	today = truncateToDay(today)
	grade := outcome.EffectiveGrade()

	if grade.Passing() {
		next.EaseFactor = clampEase(next.EaseFactor + easeDelta(grade))
		next.Repetitions++
		next.IntervalDays = s.nextInterval(next.IntervalDays, next.EaseFactor, next.Repetitions)
		next.Status = s.promoted(next.Status, next.Repetitions, next.EaseFactor)
	} else {
		next.EaseFactor = clampEase(next.EaseFactor - s.config.FailurePenalty)
		next.Repetitions = 0
		next.IntervalDays = 1
		next.Status = regressed(next.Status)
	}
	next.NextReview = today.AddDate(0, 0, next.IntervalDays)

	next.TotalEncounters++
	if outcome.cleanFirstTry() {
		next.CorrectFirstTry++
	}
	next.WrongAttempts += outcome.WrongAttempts
	if outcome.UsedHelp {
		next.HelpUsedCount++
	}
	next.Confidence = s.nextConfidence(next, grade, outcome)

	if next.FirstEncounteredAt.IsZero() {
		next.FirstEncounteredAt = today
		next.FirstEncounteredIn = outcome.LessonID
	}
	if outcome.LessonID != "" {
		next.LastEncounteredIn = outcome.LessonID
	}
	next.LastReviewedAt = today

	return next, nil
}

// easeDelta is the standard SM-2 ease adjustment for a passing grade.
func easeDelta(grade Grade) float64 {
	q := float64(grade.Quality())
	return 0.1 - (5-q)*(0.08+(5-q)*0.02)
}

// nextInterval follows the SM-2 ladder: 1 day after the first success,
// 6 days after the second, then the previous interval scaled by the ease
// factor, capped at MaxIntervalDays.
func (s *Scheduler) nextInterval(lastInterval int, ease float64, repetitions int) int {
	var interval int
	switch repetitions {
	case 1:
		interval = 1
	case 2:
		interval = 6
	default:
		if lastInterval == 0 {
			// States imported from elsewhere may carry repetitions without
			// an interval.
			lastInterval = 6
		}
		interval = int(math.Round(float64(lastInterval) * ease))
	}
	if interval > s.config.MaxIntervalDays {
		interval = s.config.MaxIntervalDays
	}
	if interval < 1 {
		interval = 1
	}
	return interval
}

// promoted returns the status after a successful review. New chunks enter
// learning; learning and fragile chunks become acquired once both the
// repetition and ease bars are met; acquired chunks stay acquired.
func (s *Scheduler) promoted(status ChunkStatus, repetitions int, ease float64) ChunkStatus {
	if status == StatusAcquired {
		return StatusAcquired
	}
	if status == StatusNew {
		status = StatusLearning
	}
	if repetitions >= s.config.AcquisitionRepetitions && ease >= s.config.AcquisitionEase {
		return StatusAcquired
	}
	return status
}

// regressed returns the status after a failed review. Acquired chunks become
// fragile, fragile chunks stay fragile, and everything else lands in
// learning. A chunk never returns to new once attempted.
func regressed(status ChunkStatus) ChunkStatus {
	switch status {
	case StatusAcquired, StatusFragile:
		return StatusFragile
	}
	return StatusLearning
}

// nextConfidence nudges the stored confidence toward a blend of the newest
// encounter score and the historical first-try accuracy, then enforces the
// direction guarantees: a clean success never lowers confidence, a failure
// or helped answer never raises it. Counters on state must already include
// the current encounter.
func (s *Scheduler) nextConfidence(state ChunkState, grade Grade, outcome Outcome) float64 {
	accuracy := float64(state.CorrectFirstTry) / float64(state.TotalEncounters)
	target := s.config.ConfidenceRecencyWeight*encounterScore(grade) +
		(1-s.config.ConfidenceRecencyWeight)*accuracy

	next := state.Confidence + s.config.ConfidenceSmoothing*(target-state.Confidence)
	switch {
	case outcome.cleanFirstTry():
		next = math.Max(next, state.Confidence)
	case !grade.Passing() || outcome.UsedHelp:
		next = math.Min(next, state.Confidence)
	}
	return clamp01(next)
}

// encounterScore maps a grade to the recency score used by the confidence
// blend.
func encounterScore(grade Grade) float64 {
	switch grade {
	case GradePerfect:
		return 1.0
	case GradeCorrectHesitant:
		return 0.7
	case GradeCorrectDifficult:
		return 0.5
	}
	return 0
}

func clampEase(ease float64) float64 {
	return math.Min(math.Max(ease, MinEaseFactor), MaxEaseFactor)
}

func clamp01(value float64) float64 {
	return math.Min(math.Max(value, 0), 1)
}
