package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// DBUserChunkRepository implements UserChunkStore using MySQL.
type DBUserChunkRepository struct {
	db *sqlx.DB
}

// NewDBUserChunkRepository creates a new DBUserChunkRepository.
func NewDBUserChunkRepository(db *sqlx.DB) *DBUserChunkRepository {
	return &DBUserChunkRepository{db: db}
}

// Find returns the chunk state for a user, or nil if not found.
func (r *DBUserChunkRepository) Find(ctx context.Context, userID, chunkID string) (*UserChunk, error) {
	var record UserChunk
	err := r.db.GetContext(ctx, &record,
		"SELECT * FROM user_chunks WHERE user_id = ? AND chunk_id = ?",
		userID, chunkID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(user_chunk) > %w", err)
	}
	return &record, nil
}

// FindByUser returns all chunk states of a user.
func (r *DBUserChunkRepository) FindByUser(ctx context.Context, userID string) ([]UserChunk, error) {
	var records []UserChunk
	if err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM user_chunks WHERE user_id = ? ORDER BY chunk_id",
		userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(user_chunks) > %w", err)
	}
	return records, nil
}

// FindDue returns the chunk states due for review: chunks never reviewed and
// chunks whose next review date has arrived. A limit of 0 means no limit.
func (r *DBUserChunkRepository) FindDue(ctx context.Context, userID string, asOf time.Time, limit int) ([]UserChunk, error) {
	query := `SELECT * FROM user_chunks
		WHERE user_id = ? AND (total_encounters = 0 OR next_review_date <= ?)
		ORDER BY total_encounters = 0 DESC, ease_factor, next_review_date`
	args := []any{userID, asOf}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var records []UserChunk
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due user_chunks) > %w", err)
	}
	return records, nil
}

// Create inserts a new chunk state.
func (r *DBUserChunkRepository) Create(ctx context.Context, record *UserChunk) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO user_chunks (id, user_id, chunk_id, status, ease_factor, interval_days,
			next_review_date, repetitions, total_encounters, correct_first_try, wrong_attempts,
			help_used_count, confidence_score, first_encountered_in, last_encountered_in,
			first_encountered_at, last_reviewed_at, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.UserID, record.ChunkID, record.Status, record.EaseFactor,
		record.IntervalDays, record.NextReviewDate, record.Repetitions, record.TotalEncounters,
		record.CorrectFirstTry, record.WrongAttempts, record.HelpUsedCount, record.ConfidenceScore,
		record.FirstEncounteredIn, record.LastEncounteredIn, record.FirstEncounteredAt,
		record.LastReviewedAt, record.Version); err != nil {
		return fmt.Errorf("db.ExecContext(insert user_chunk) > %w", err)
	}
	return nil
}

// Update writes the chunk state under its version check.
func (r *DBUserChunkRepository) Update(ctx context.Context, record *UserChunk) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE user_chunks SET status = ?, ease_factor = ?, interval_days = ?,
			next_review_date = ?, repetitions = ?, total_encounters = ?, correct_first_try = ?,
			wrong_attempts = ?, help_used_count = ?, confidence_score = ?,
			first_encountered_in = ?, last_encountered_in = ?, first_encountered_at = ?,
			last_reviewed_at = ?, version = version + 1
		WHERE id = ? AND version = ?`,
		record.Status, record.EaseFactor, record.IntervalDays, record.NextReviewDate,
		record.Repetitions, record.TotalEncounters, record.CorrectFirstTry, record.WrongAttempts,
		record.HelpUsedCount, record.ConfidenceScore, record.FirstEncounteredIn,
		record.LastEncounteredIn, record.FirstEncounteredAt, record.LastReviewedAt,
		record.ID, record.Version)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update user_chunk) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user_chunk %s version %d: %w", record.ID, record.Version, ErrVersionConflict)
	}
	record.Version++
	return nil
}

// DBUserTreeRepository implements UserTreeStore using MySQL.
type DBUserTreeRepository struct {
	db *sqlx.DB
}

// NewDBUserTreeRepository creates a new DBUserTreeRepository.
func NewDBUserTreeRepository(db *sqlx.DB) *DBUserTreeRepository {
	return &DBUserTreeRepository{db: db}
}

// Find returns the tree for a user and skill path, or nil if not found.
func (r *DBUserTreeRepository) Find(ctx context.Context, userID, skillPathID string) (*UserTree, error) {
	var record UserTree
	err := r.db.GetContext(ctx, &record,
		"SELECT * FROM user_trees WHERE user_id = ? AND skill_path_id = ?",
		userID, skillPathID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(user_tree) > %w", err)
	}
	return &record, nil
}

// FindByUser returns all trees of a user in garden grid order.
func (r *DBUserTreeRepository) FindByUser(ctx context.Context, userID string) ([]UserTree, error) {
	var records []UserTree
	if err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM user_trees WHERE user_id = ? ORDER BY position_row, position_col",
		userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(user_trees) > %w", err)
	}
	return records, nil
}

// FindStale returns trees whose last refresh is before the given date.
func (r *DBUserTreeRepository) FindStale(ctx context.Context, before time.Time) ([]UserTree, error) {
	var records []UserTree
	if err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM user_trees WHERE last_refresh_date < ? ORDER BY last_refresh_date",
		before); err != nil {
		return nil, fmt.Errorf("db.SelectContext(stale user_trees) > %w", err)
	}
	return records, nil
}

// Create inserts a new tree.
func (r *DBUserTreeRepository) Create(ctx context.Context, record *UserTree) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO user_trees (id, user_id, skill_path_id, status, is_dead, health,
			sun_drops_earned, sun_drops_total, growth_stage, last_refresh_date, died_at,
			position_row, position_col, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.UserID, record.SkillPathID, record.Status, record.IsDead,
		record.Health, record.SunDropsEarned, record.SunDropsTotal, record.GrowthStage,
		record.LastRefreshDate, record.DiedAt, record.PositionRow, record.PositionCol,
		record.Version); err != nil {
		return fmt.Errorf("db.ExecContext(insert user_tree) > %w", err)
	}
	return nil
}

// Update writes the tree under its version check.
func (r *DBUserTreeRepository) Update(ctx context.Context, record *UserTree) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE user_trees SET status = ?, is_dead = ?, health = ?, sun_drops_earned = ?,
			sun_drops_total = ?, growth_stage = ?, last_refresh_date = ?, died_at = ?,
			position_row = ?, position_col = ?, version = version + 1
		WHERE id = ? AND version = ?`,
		record.Status, record.IsDead, record.Health, record.SunDropsEarned,
		record.SunDropsTotal, record.GrowthStage, record.LastRefreshDate, record.DiedAt,
		record.PositionRow, record.PositionCol,
		record.ID, record.Version)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update user_tree) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user_tree %s version %d: %w", record.ID, record.Version, ErrVersionConflict)
	}
	record.Version++
	return nil
}

// DBReviewLogRepository implements ReviewLogStore using MySQL.
type DBReviewLogRepository struct {
	db *sqlx.DB
}

// NewDBReviewLogRepository creates a new DBReviewLogRepository.
func NewDBReviewLogRepository(db *sqlx.DB) *DBReviewLogRepository {
	return &DBReviewLogRepository{db: db}
}

// Create inserts a new review log entry, minting its ID when empty.
func (r *DBReviewLogRepository) Create(ctx context.Context, log *ReviewLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO review_logs (id, user_id, chunk_id, lesson_id, grade, correct, used_help,
			wrong_attempts, interval_days, ease_factor, status, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID, log.UserID, log.ChunkID, log.LessonID, log.Grade, log.Correct, log.UsedHelp,
		log.WrongAttempts, log.IntervalDays, log.EaseFactor, log.Status, log.ReviewedAt); err != nil {
		return fmt.Errorf("db.ExecContext(insert review_log) > %w", err)
	}
	return nil
}

// FindByUser returns the full review history of a user, oldest first.
func (r *DBReviewLogRepository) FindByUser(ctx context.Context, userID string) ([]ReviewLog, error) {
	var logs []ReviewLog
	if err := r.db.SelectContext(ctx, &logs,
		"SELECT * FROM review_logs WHERE user_id = ? ORDER BY reviewed_at",
		userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_logs) > %w", err)
	}
	return logs, nil
}

// FindByUserSince returns the review history of a user from a date on,
// oldest first.
func (r *DBReviewLogRepository) FindByUserSince(ctx context.Context, userID string, since time.Time) ([]ReviewLog, error) {
	var logs []ReviewLog
	if err := r.db.SelectContext(ctx, &logs,
		"SELECT * FROM review_logs WHERE user_id = ? AND reviewed_at >= ? ORDER BY reviewed_at",
		userID, since); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_logs since) > %w", err)
	}
	return logs, nil
}
