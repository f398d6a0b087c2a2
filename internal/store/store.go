// Package store defines the persistence ports for learner state: user chunk
// states, user trees and the append-only review history. Every update runs
// under an optimistic version check so concurrent writers never silently
// overwrite each other.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lexigarden/lexigarden/internal/garden"
	"github.com/lexigarden/lexigarden/internal/srs"
)

//go:generate mockgen -source=store.go -destination=../mocks/store/mock_store.go -package=mock_store

// ErrVersionConflict reports that a record changed between read and write.
// Callers should reload the record and retry.
var ErrVersionConflict = errors.New("store: version conflict")

// UserChunk is the stored spaced repetition state of one chunk for one user.
type UserChunk struct {
	ID      string `db:"id"`
	UserID  string `db:"user_id"`
	ChunkID string `db:"chunk_id"`

	Status          string    `db:"status"`
	EaseFactor      float64   `db:"ease_factor"`
	IntervalDays    int       `db:"interval_days"`
	NextReviewDate  time.Time `db:"next_review_date"`
	Repetitions     int       `db:"repetitions"`
	TotalEncounters int       `db:"total_encounters"`
	CorrectFirstTry int       `db:"correct_first_try"`
	WrongAttempts   int       `db:"wrong_attempts"`
	HelpUsedCount   int       `db:"help_used_count"`
	ConfidenceScore float64   `db:"confidence_score"`

	FirstEncounteredIn string     `db:"first_encountered_in"`
	LastEncounteredIn  string     `db:"last_encountered_in"`
	FirstEncounteredAt time.Time  `db:"first_encountered_at"`
	LastReviewedAt     *time.Time `db:"last_reviewed_at"`

	Version   int64     `db:"version"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewUserChunk builds the record for a chunk the user meets for the first
// time. The caller mints the ID so retries stay idempotent.
func NewUserChunk(userID, chunkID string) *UserChunk {
	record := &UserChunk{
		ID:      uuid.NewString(),
		UserID:  userID,
		ChunkID: chunkID,
		Version: 1,
	}
	record.SetState(srs.NewChunkState())
	return record
}

// State converts the record into the scheduler's value type. A NULL
// last_reviewed_at becomes the zero time, meaning never reviewed.
func (uc *UserChunk) State() srs.ChunkState {
	var lastReviewed time.Time
	if uc.LastReviewedAt != nil {
		lastReviewed = *uc.LastReviewedAt
	}
	return srs.ChunkState{
		Status:             srs.ChunkStatus(uc.Status),
		EaseFactor:         uc.EaseFactor,
		IntervalDays:       uc.IntervalDays,
		NextReview:         uc.NextReviewDate,
		Repetitions:        uc.Repetitions,
		TotalEncounters:    uc.TotalEncounters,
		CorrectFirstTry:    uc.CorrectFirstTry,
		WrongAttempts:      uc.WrongAttempts,
		HelpUsedCount:      uc.HelpUsedCount,
		Confidence:         uc.ConfidenceScore,
		FirstEncounteredIn: uc.FirstEncounteredIn,
		LastEncounteredIn:  uc.LastEncounteredIn,
		FirstEncounteredAt: uc.FirstEncounteredAt,
		LastReviewedAt:     lastReviewed,
	}
}

// SetState copies a scheduler state back into the record.
func (uc *UserChunk) SetState(state srs.ChunkState) {
	uc.Status = string(state.Status)
	uc.EaseFactor = state.EaseFactor
	uc.IntervalDays = state.IntervalDays
	uc.NextReviewDate = state.NextReview
	uc.Repetitions = state.Repetitions
	uc.TotalEncounters = state.TotalEncounters
	uc.CorrectFirstTry = state.CorrectFirstTry
	uc.WrongAttempts = state.WrongAttempts
	uc.HelpUsedCount = state.HelpUsedCount
	uc.ConfidenceScore = state.Confidence
	uc.FirstEncounteredIn = state.FirstEncounteredIn
	uc.LastEncounteredIn = state.LastEncounteredIn
	uc.FirstEncounteredAt = state.FirstEncounteredAt
	if state.LastReviewedAt.IsZero() {
		uc.LastReviewedAt = nil
	} else {
		lastReviewed := state.LastReviewedAt
		uc.LastReviewedAt = &lastReviewed
	}
}

// UserTree is the stored lifecycle state of one tree for one user and skill
// path.
type UserTree struct {
	ID          string `db:"id"`
	UserID      string `db:"user_id"`
	SkillPathID string `db:"skill_path_id"`

	Status          string     `db:"status"`
	IsDead          bool       `db:"is_dead"`
	Health          int        `db:"health"`
	SunDropsEarned  int        `db:"sun_drops_earned"`
	SunDropsTotal   int        `db:"sun_drops_total"`
	GrowthStage     int        `db:"growth_stage"`
	LastRefreshDate time.Time  `db:"last_refresh_date"`
	DiedAt          *time.Time `db:"died_at"`
	PositionRow     int        `db:"position_row"`
	PositionCol     int        `db:"position_col"`

	Version   int64     `db:"version"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewUserTree builds the record for a freshly planted tree.
func NewUserTree(userID, skillPathID string, state garden.TreeState) *UserTree {
	record := &UserTree{
		ID:          uuid.NewString(),
		UserID:      userID,
		SkillPathID: skillPathID,
		Version:     1,
	}
	record.SetState(state)
	return record
}

// State converts the record into the engine's value type.
func (ut *UserTree) State() garden.TreeState {
	return garden.TreeState{
		Status:         garden.TreeStatus(ut.Status),
		IsDead:         ut.IsDead,
		Health:         ut.Health,
		SunDropsEarned: ut.SunDropsEarned,
		SunDropsTotal:  ut.SunDropsTotal,
		GrowthStage:    ut.GrowthStage,
		LastRefresh:    ut.LastRefreshDate,
		DiedAt:         ut.DiedAt,
		Position:       garden.Position{Row: ut.PositionRow, Col: ut.PositionCol},
	}
}

// SetState copies an engine state back into the record.
func (ut *UserTree) SetState(state garden.TreeState) {
	ut.Status = string(state.Status)
	ut.IsDead = state.IsDead
	ut.Health = state.Health
	ut.SunDropsEarned = state.SunDropsEarned
	ut.SunDropsTotal = state.SunDropsTotal
	ut.GrowthStage = state.GrowthStage
	ut.LastRefreshDate = state.LastRefresh
	ut.DiedAt = state.DiedAt
	ut.PositionRow = state.Position.Row
	ut.PositionCol = state.Position.Col
}

// ReviewLog is one append-only review history entry.
type ReviewLog struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	ChunkID       string    `db:"chunk_id"`
	LessonID      string    `db:"lesson_id"`
	Grade         int       `db:"grade"`
	Correct       bool      `db:"correct"`
	UsedHelp      bool      `db:"used_help"`
	WrongAttempts int       `db:"wrong_attempts"`
	IntervalDays  int       `db:"interval_days"`
	EaseFactor    float64   `db:"ease_factor"`
	Status        string    `db:"status"`
	ReviewedAt    time.Time `db:"reviewed_at"`
	CreatedAt     time.Time `db:"created_at"`
}

// UserChunkStore persists per-user chunk states. Find methods return
// (nil, nil) when no record exists.
type UserChunkStore interface {
	Find(ctx context.Context, userID, chunkID string) (*UserChunk, error)
	FindByUser(ctx context.Context, userID string) ([]UserChunk, error)
	FindDue(ctx context.Context, userID string, asOf time.Time, limit int) ([]UserChunk, error)
	Create(ctx context.Context, record *UserChunk) error
	// Update writes the record under its version check and bumps the version
	// on success. A stale version returns ErrVersionConflict.
	Update(ctx context.Context, record *UserChunk) error
}

// UserTreeStore persists per-user tree states. Find methods return
// (nil, nil) when no record exists.
type UserTreeStore interface {
	Find(ctx context.Context, userID, skillPathID string) (*UserTree, error)
	FindByUser(ctx context.Context, userID string) ([]UserTree, error)
	// FindStale returns trees whose last refresh is before the given date.
	FindStale(ctx context.Context, before time.Time) ([]UserTree, error)
	Create(ctx context.Context, record *UserTree) error
	// Update writes the record under its version check and bumps the version
	// on success. A stale version returns ErrVersionConflict.
	Update(ctx context.Context, record *UserTree) error
}

// ReviewLogStore persists the append-only review history.
type ReviewLogStore interface {
	Create(ctx context.Context, log *ReviewLog) error
	FindByUser(ctx context.Context, userID string) ([]ReviewLog, error)
	FindByUserSince(ctx context.Context, userID string, since time.Time) ([]ReviewLog, error)
}
