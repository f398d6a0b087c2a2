package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/avast/retry-go"

	"github.com/lexigarden/lexigarden/internal/srs"
	"github.com/lexigarden/lexigarden/internal/store"
)

// ReviewService submits review outcomes to the scheduler and keeps the
// per-user chunk states and review history in the store.
type ReviewService struct {
	chunks           store.UserChunkStore
	logs             store.ReviewLogStore
	scheduler        *srs.Scheduler
	now              func() time.Time
	maxRetryAttempts uint
}

func NewReviewService(
	chunks store.UserChunkStore,
	logs store.ReviewLogStore,
	scheduler *srs.Scheduler,
	now func() time.Time,
) *ReviewService {
	return &ReviewService{
		chunks:           chunks,
		logs:             logs,
		scheduler:        scheduler,
		now:              nowOrDefault(now),
		maxRetryAttempts: DefaultRetryAttempts,
	}
}

// ReviewResult reports the state transition of one submitted review.
type ReviewResult struct {
	Previous srs.ChunkState
	State    srs.ChunkState
}

// Promoted reports whether this review lifted the chunk into acquired.
func (r ReviewResult) Promoted() bool {
	return r.State.Status == srs.StatusAcquired && r.Previous.Status != srs.StatusAcquired
}

// Regressed reports whether this review dropped the chunk out of acquired.
func (r ReviewResult) Regressed() bool {
	return r.Previous.Status == srs.StatusAcquired && r.State.Status == srs.StatusFragile
}

// SubmitReview records one review encounter: it loads or creates the chunk
// state, runs the scheduler, saves under the version check and appends a
// review log entry. A lost concurrency race recomputes from fresh state.
func (s *ReviewService) SubmitReview(ctx context.Context, userID, chunkID string, outcome srs.Outcome) (ReviewResult, error) {
	today := s.now()

	var result ReviewResult
	if err := retry.Do(
		func() error {
			record, err := s.chunks.Find(ctx, userID, chunkID)
			if err != nil {
				return fmt.Errorf("chunks.Find(%s, %s) > %w", userID, chunkID, err)
			}
			created := false
			if record == nil {
				record = store.NewUserChunk(userID, chunkID)
				created = true
			}

			previous := record.State()
			next, err := s.scheduler.RecordReview(previous, outcome, today)
			if err != nil {
				return fmt.Errorf("scheduler.RecordReview > %w", err)
			}
			record.SetState(next)

			if created {
				err = s.chunks.Create(ctx, record)
			} else {
				err = s.chunks.Update(ctx, record)
			}
			if err != nil {
				return fmt.Errorf("save user chunk > %w", err)
			}

			result = ReviewResult{Previous: previous, State: next}
			return nil
		},
		conflictRetryOptions(ctx, s.maxRetryAttempts)...,
	); err != nil {
		return ReviewResult{}, err
	}

	// The review history feeds statistics; the state above is already saved.
	if err := s.logs.Create(ctx, newReviewLog(userID, chunkID, outcome, result.State, today)); err != nil {
		return result, fmt.Errorf("logs.Create > %w", err)
	}
	return result, nil
}

// DueChunk is one entry of the review queue.
type DueChunk struct {
	ChunkID string
	State   srs.ChunkState
}

// DueQueue returns the chunks due for review in priority order: chunks never
// reviewed first, then the hardest (lowest ease factor), then the most
// overdue. A limit of 0 means no limit.
func (s *ReviewService) DueQueue(ctx context.Context, userID string, limit int) ([]DueChunk, error) {
	records, err := s.chunks.FindDue(ctx, userID, s.now(), 0)
	if err != nil {
		return nil, fmt.Errorf("chunks.FindDue(%s) > %w", userID, err)
	}

	queue := make([]DueChunk, 0, len(records))
	for _, record := range records {
		queue = append(queue, DueChunk{ChunkID: record.ChunkID, State: record.State()})
	}
	sort.SliceStable(queue, func(i, j int) bool {
		return srs.ComparePriority(queue[i].State, queue[j].State) < 0
	})
	if limit > 0 && len(queue) > limit {
		queue = queue[:limit]
	}
	return queue, nil
}

// IntroduceChunks records the first encounter of a lesson's chunks so they
// enter the review queue. Chunks the user already met are left untouched.
// It returns how many records were created.
func (s *ReviewService) IntroduceChunks(ctx context.Context, userID, lessonID string, chunkIDs []string) (int, error) {
	now := s.now()
	today := now.UTC().Truncate(24 * time.Hour)

	introduced := 0
	for _, chunkID := range chunkIDs {
		record, err := s.chunks.Find(ctx, userID, chunkID)
		if err != nil {
			return introduced, fmt.Errorf("chunks.Find(%s, %s) > %w", userID, chunkID, err)
		}
		if record != nil {
			continue
		}

		record = store.NewUserChunk(userID, chunkID)
		state := record.State()
		state.FirstEncounteredIn = lessonID
		state.LastEncounteredIn = lessonID
		state.FirstEncounteredAt = now
		// Due right away so the lesson's material shows up in the next
		// session.
		state.NextReview = today
		record.SetState(state)

		if err := s.chunks.Create(ctx, record); err != nil {
			return introduced, fmt.Errorf("chunks.Create(%s, %s) > %w", userID, chunkID, err)
		}
		introduced++
	}
	return introduced, nil
}

// History returns the review log entries of a user since the given time,
// oldest first. A zero since returns the whole history.
func (s *ReviewService) History(ctx context.Context, userID string, since time.Time) ([]store.ReviewLog, error) {
	if since.IsZero() {
		logs, err := s.logs.FindByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("logs.FindByUser(%s) > %w", userID, err)
		}
		return logs, nil
	}
	logs, err := s.logs.FindByUserSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("logs.FindByUserSince(%s) > %w", userID, err)
	}
	return logs, nil
}

// ChunkStates returns every chunk state of a user.
func (s *ReviewService) ChunkStates(ctx context.Context, userID string) ([]store.UserChunk, error) {
	records, err := s.chunks.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("chunks.FindByUser(%s) > %w", userID, err)
	}
	return records, nil
}

func newReviewLog(userID, chunkID string, outcome srs.Outcome, state srs.ChunkState, reviewedAt time.Time) *store.ReviewLog {
	return &store.ReviewLog{
		UserID:        userID,
		ChunkID:       chunkID,
		LessonID:      outcome.LessonID,
		Grade:         outcome.EffectiveGrade().Quality(),
		Correct:       outcome.Correct,
		UsedHelp:      outcome.UsedHelp,
		WrongAttempts: outcome.WrongAttempts,
		IntervalDays:  state.IntervalDays,
		EaseFactor:    state.EaseFactor,
		Status:        string(state.Status),
		ReviewedAt:    reviewedAt,
	}
}
