package pocketbase

import (
	"context"
	"fmt"
	"time"

	"github.com/lexigarden/lexigarden/internal/store"
)

const collectionReviewLogs = "review_logs"

type logRecord struct {
	ID            string     `json:"id,omitempty"`
	UserID        string     `json:"user_id"`
	ChunkID       string     `json:"chunk_id"`
	LessonID      string     `json:"lesson_id"`
	Grade         int        `json:"grade"`
	Correct       bool       `json:"correct"`
	UsedHelp      bool       `json:"used_help"`
	WrongAttempts int        `json:"wrong_attempts"`
	IntervalDays  int        `json:"interval_days"`
	EaseFactor    float64    `json:"ease_factor"`
	Status        string     `json:"status"`
	ReviewedAt    recordTime `json:"reviewed_at"`
}

func newLogRecord(log *store.ReviewLog) logRecord {
	return logRecord{
		UserID:        log.UserID,
		ChunkID:       log.ChunkID,
		LessonID:      log.LessonID,
		Grade:         log.Grade,
		Correct:       log.Correct,
		UsedHelp:      log.UsedHelp,
		WrongAttempts: log.WrongAttempts,
		IntervalDays:  log.IntervalDays,
		EaseFactor:    log.EaseFactor,
		Status:        log.Status,
		ReviewedAt:    newRecordTime(log.ReviewedAt),
	}
}

func (r logRecord) toStore() store.ReviewLog {
	return store.ReviewLog{
		ID:            r.ID,
		UserID:        r.UserID,
		ChunkID:       r.ChunkID,
		LessonID:      r.LessonID,
		Grade:         r.Grade,
		Correct:       r.Correct,
		UsedHelp:      r.UsedHelp,
		WrongAttempts: r.WrongAttempts,
		IntervalDays:  r.IntervalDays,
		EaseFactor:    r.EaseFactor,
		Status:        r.Status,
		ReviewedAt:    r.ReviewedAt.Time,
	}
}

// ReviewLogRepository implements store.ReviewLogStore against PocketBase.
type ReviewLogRepository struct {
	client *Client
}

func NewReviewLogRepository(client *Client) *ReviewLogRepository {
	return &ReviewLogRepository{client: client}
}

// Create inserts a new review log entry. PocketBase mints its own record
// IDs, so the ID of the given log is replaced with the assigned one.
func (r *ReviewLogRepository) Create(ctx context.Context, log *store.ReviewLog) error {
	return r.client.do(ctx, func() error {
		created, err := createRecord(ctx, r.client, collectionReviewLogs, newLogRecord(log))
		if err != nil {
			return fmt.Errorf("createRecord(%s) > %w", collectionReviewLogs, err)
		}
		log.ID = created.ID
		return nil
	})
}

// FindByUser returns the full review history of a user, oldest first.
func (r *ReviewLogRepository) FindByUser(ctx context.Context, userID string) ([]store.ReviewLog, error) {
	filter := fmt.Sprintf("user_id=%s", quoteFilterValue(userID))
	return r.list(ctx, filter)
}

// FindByUserSince returns the review history of a user from a date on,
// oldest first.
func (r *ReviewLogRepository) FindByUserSince(ctx context.Context, userID string, since time.Time) ([]store.ReviewLog, error) {
	filter := fmt.Sprintf("user_id=%s && reviewed_at>=%s",
		quoteFilterValue(userID), filterTime(since))
	return r.list(ctx, filter)
}

func (r *ReviewLogRepository) list(ctx context.Context, filter string) ([]store.ReviewLog, error) {
	var result []store.ReviewLog
	if err := r.client.do(ctx, func() error {
		records, err := listRecords[logRecord](ctx, r.client, collectionReviewLogs, filter, "reviewed_at")
		if err != nil {
			return fmt.Errorf("listRecords(%s) > %w", collectionReviewLogs, err)
		}
		result = make([]store.ReviewLog, 0, len(records))
		for _, record := range records {
			result = append(result, record.toStore())
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}
