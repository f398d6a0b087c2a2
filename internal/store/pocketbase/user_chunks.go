package pocketbase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lexigarden/lexigarden/internal/store"
)

const collectionUserChunks = "user_chunks"

type chunkRecord struct {
	ID                 string     `json:"id,omitempty"`
	UserID             string     `json:"user_id"`
	ChunkID            string     `json:"chunk_id"`
	Status             string     `json:"status"`
	EaseFactor         float64    `json:"ease_factor"`
	IntervalDays       int        `json:"interval_days"`
	NextReviewDate     recordTime `json:"next_review_date"`
	Repetitions        int        `json:"repetitions"`
	TotalEncounters    int        `json:"total_encounters"`
	CorrectFirstTry    int        `json:"correct_first_try"`
	WrongAttempts      int        `json:"wrong_attempts"`
	HelpUsedCount      int        `json:"help_used_count"`
	ConfidenceScore    float64    `json:"confidence_score"`
	FirstEncounteredIn string     `json:"first_encountered_in"`
	LastEncounteredIn  string     `json:"last_encountered_in"`
	FirstEncounteredAt recordTime `json:"first_encountered_at"`
	LastReviewedAt     recordTime `json:"last_reviewed_at"`
	Version            int64      `json:"version"`
}

func newChunkRecord(record *store.UserChunk) chunkRecord {
	return chunkRecord{
		UserID:             record.UserID,
		ChunkID:            record.ChunkID,
		Status:             record.Status,
		EaseFactor:         record.EaseFactor,
		IntervalDays:       record.IntervalDays,
		NextReviewDate:     newRecordTime(record.NextReviewDate),
		Repetitions:        record.Repetitions,
		TotalEncounters:    record.TotalEncounters,
		CorrectFirstTry:    record.CorrectFirstTry,
		WrongAttempts:      record.WrongAttempts,
		HelpUsedCount:      record.HelpUsedCount,
		ConfidenceScore:    record.ConfidenceScore,
		FirstEncounteredIn: record.FirstEncounteredIn,
		LastEncounteredIn:  record.LastEncounteredIn,
		FirstEncounteredAt: newRecordTime(record.FirstEncounteredAt),
		LastReviewedAt:     newRecordTimePtr(record.LastReviewedAt),
		Version:            record.Version,
	}
}

func (r chunkRecord) toStore() store.UserChunk {
	return store.UserChunk{
		ID:                 r.ID,
		UserID:             r.UserID,
		ChunkID:            r.ChunkID,
		Status:             r.Status,
		EaseFactor:         r.EaseFactor,
		IntervalDays:       r.IntervalDays,
		NextReviewDate:     r.NextReviewDate.Time,
		Repetitions:        r.Repetitions,
		TotalEncounters:    r.TotalEncounters,
		CorrectFirstTry:    r.CorrectFirstTry,
		WrongAttempts:      r.WrongAttempts,
		HelpUsedCount:      r.HelpUsedCount,
		ConfidenceScore:    r.ConfidenceScore,
		FirstEncounteredIn: r.FirstEncounteredIn,
		LastEncounteredIn:  r.LastEncounteredIn,
		FirstEncounteredAt: r.FirstEncounteredAt.Time,
		LastReviewedAt:     r.LastReviewedAt.timePtr(),
		Version:            r.Version,
	}
}

// UserChunkRepository implements store.UserChunkStore against PocketBase.
type UserChunkRepository struct {
	client *Client
}

func NewUserChunkRepository(client *Client) *UserChunkRepository {
	return &UserChunkRepository{client: client}
}

// Find returns the chunk state for a user, or nil if not found.
func (r *UserChunkRepository) Find(ctx context.Context, userID, chunkID string) (*store.UserChunk, error) {
	filter := fmt.Sprintf("user_id=%s && chunk_id=%s",
		quoteFilterValue(userID), quoteFilterValue(chunkID))

	var result *store.UserChunk
	if err := r.client.do(ctx, func() error {
		record, err := firstRecord[chunkRecord](ctx, r.client, collectionUserChunks, filter)
		if err != nil {
			return fmt.Errorf("firstRecord(%s) > %w", collectionUserChunks, err)
		}
		if record == nil {
			return nil
		}
		converted := record.toStore()
		result = &converted
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// FindByUser returns all chunk states of a user.
func (r *UserChunkRepository) FindByUser(ctx context.Context, userID string) ([]store.UserChunk, error) {
	filter := fmt.Sprintf("user_id=%s", quoteFilterValue(userID))

	var result []store.UserChunk
	if err := r.client.do(ctx, func() error {
		records, err := listRecords[chunkRecord](ctx, r.client, collectionUserChunks, filter, "chunk_id")
		if err != nil {
			return fmt.Errorf("listRecords(%s) > %w", collectionUserChunks, err)
		}
		result = make([]store.UserChunk, 0, len(records))
		for _, record := range records {
			result = append(result, record.toStore())
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// FindDue returns the chunk states due for review, never reviewed chunks
// first. A limit of 0 means no limit.
func (r *UserChunkRepository) FindDue(ctx context.Context, userID string, asOf time.Time, limit int) ([]store.UserChunk, error) {
	filter := fmt.Sprintf("user_id=%s && (total_encounters=0 || next_review_date<=%s)",
		quoteFilterValue(userID), filterTime(asOf))

	var result []store.UserChunk
	if err := r.client.do(ctx, func() error {
		records, err := listRecords[chunkRecord](ctx, r.client, collectionUserChunks, filter, "ease_factor,next_review_date")
		if err != nil {
			return fmt.Errorf("listRecords(%s) > %w", collectionUserChunks, err)
		}

		// The API cannot order by "never reviewed" directly, so partition
		// after the sorted fetch.
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].TotalEncounters == 0 && records[j].TotalEncounters > 0
		})
		if limit > 0 && len(records) > limit {
			records = records[:limit]
		}

		result = make([]store.UserChunk, 0, len(records))
		for _, record := range records {
			result = append(result, record.toStore())
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts a new chunk state. PocketBase mints its own record IDs, so
// the ID of the given record is replaced with the assigned one.
func (r *UserChunkRepository) Create(ctx context.Context, record *store.UserChunk) error {
	return r.client.do(ctx, func() error {
		created, err := createRecord(ctx, r.client, collectionUserChunks, newChunkRecord(record))
		if err != nil {
			return fmt.Errorf("createRecord(%s) > %w", collectionUserChunks, err)
		}
		record.ID = created.ID
		return nil
	})
}

// Update writes the chunk state under its version check.
func (r *UserChunkRepository) Update(ctx context.Context, record *store.UserChunk) error {
	return r.client.do(ctx, func() error {
		current, err := getRecord[chunkRecord](ctx, r.client, collectionUserChunks, record.ID)
		if err != nil {
			return fmt.Errorf("getRecord(%s) > %w", collectionUserChunks, err)
		}
		if current == nil || current.Version != record.Version {
			return fmt.Errorf("user_chunk %s version %d: %w", record.ID, record.Version, store.ErrVersionConflict)
		}

		body := newChunkRecord(record)
		body.Version = record.Version + 1
		if _, err := patchRecord(ctx, r.client, collectionUserChunks, record.ID, body); err != nil {
			return fmt.Errorf("patchRecord(%s) > %w", collectionUserChunks, err)
		}
		record.Version++
		return nil
	})
}
