// Package statistics aggregates the review history and current chunk states
// into the per-period and per-type figures behind the stats and report
// commands.
package statistics

import (
	"fmt"
	"sort"
	"time"

	"github.com/lexigarden/lexigarden/internal/chunk"
	"github.com/lexigarden/lexigarden/internal/srs"
	"github.com/lexigarden/lexigarden/internal/store"
)

// Granularity selects how the review history is bucketed.
type Granularity string

const (
	// Monthly buckets by calendar month, period keys like "2025-03".
	Monthly Granularity = "monthly"
	// Weekly buckets by ISO week, period keys like "2025-W12".
	Weekly Granularity = "weekly"
)

// typeUnknown buckets chunks whose ID no loaded pack resolves.
const typeUnknown = chunk.ChunkType("unknown")

// PeriodStatistics holds the review figures of one time period.
type PeriodStatistics struct {
	Period          string // "2025-03" for monthly, "2025-W12" for weekly
	Reviews         int    // review encounters in the period
	CorrectReviews  int    // encounters answered correctly
	CleanFirstTries int    // correct without help on the first attempt
	HelpUsed        int    // encounters that needed a hint
	NewChunks       int    // chunks reviewed for the first time
	AcquiredChunks  int    // promotions into acquired
}

// FirstTryAccuracy returns the share of clean first tries, 0 when the period
// has no reviews.
func (s PeriodStatistics) FirstTryAccuracy() float64 {
	if s.Reviews == 0 {
		return 0
	}
	return float64(s.CleanFirstTries) / float64(s.Reviews)
}

// AggregateStatistics holds totals across all periods with unique chunk
// counts deduplicated across periods.
type AggregateStatistics struct {
	Reviews              int
	CorrectReviews       int
	CleanFirstTries      int
	HelpUsed             int
	NewChunksUnique      int
	AcquiredChunksUnique int
}

// FirstTryAccuracy returns the overall share of clean first tries.
func (s AggregateStatistics) FirstTryAccuracy() float64 {
	if s.Reviews == 0 {
		return 0
	}
	return float64(s.CleanFirstTries) / float64(s.Reviews)
}

// Standing is the current state of the collection, independent of the
// period filter.
type Standing struct {
	TrackedChunks     int
	ByStatus          map[srs.ChunkStatus]int
	AverageEase       float64
	AverageConfidence float64
}

// TypeStatistics breaks the tracked chunks down by chunk type. Reviews
// counts the encounters inside the period filter.
type TypeStatistics struct {
	Type     chunk.ChunkType
	Tracked  int
	Acquired int
	Reviews  int
}

// Result holds the per-period rows, the overall totals, the current
// standing and the per-type breakdown.
type Result struct {
	Periods   []PeriodStatistics
	Aggregate AggregateStatistics
	Standing  Standing
	Types     []TypeStatistics
}

// periodData tracks counts per period.
type periodData struct {
	reviews         int
	correct         int
	cleanFirstTries int
	helpUsed        int
	newChunks       int
	acquired        int
}

// CalculateStatistics aggregates review logs and current chunk states.
// It accepts optional year and month filters (0 means no filter). chunkType
// resolves a chunk ID to its type and may be nil when no catalog is loaded;
// unresolved chunks land in the "unknown" bucket.
//
// A "new chunk" is counted on a chunk's first review ever; an "acquired
// chunk" is counted whenever a review lifts it into acquired. Both are
// tracked across the whole history so the filter never miscounts a chunk
// first seen before the window.
func CalculateStatistics(
	logs []store.ReviewLog,
	states []store.UserChunk,
	chunkType func(id string) (chunk.ChunkType, bool),
	granularity Granularity,
	year, month int,
) Result {
	ordered := make([]store.ReviewLog, len(logs))
	copy(ordered, logs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ReviewedAt.Before(ordered[j].ReviewedAt)
	})

	stats := make(map[string]*periodData)
	seen := make(map[string]struct{})
	lastStatus := make(map[string]string)
	newUnique := make(map[string]struct{})
	acquiredUnique := make(map[string]struct{})
	typeReviews := make(map[chunk.ChunkType]int)

	for _, log := range ordered {
		// Skip zero dates
		if log.ReviewedAt.IsZero() {
			continue
		}

		first := false
		if _, ok := seen[log.ChunkID]; !ok {
			seen[log.ChunkID] = struct{}{}
			first = true
		}
		promoted := log.Status == string(srs.StatusAcquired) &&
			lastStatus[log.ChunkID] != string(srs.StatusAcquired)
		lastStatus[log.ChunkID] = log.Status

		if !matchesFilter(log.ReviewedAt.Year(), int(log.ReviewedAt.Month()), year, month) {
			continue
		}

		period := periodKey(granularity, log.ReviewedAt)
		ensurePeriodExists(stats, period)
		data := stats[period]
		data.reviews++
		if log.Correct {
			data.correct++
		}
		if isCleanFirstTry(log) {
			data.cleanFirstTries++
		}
		if log.UsedHelp {
			data.helpUsed++
		}
		if first {
			data.newChunks++
			newUnique[log.ChunkID] = struct{}{}
		}
		if promoted {
			data.acquired++
			acquiredUnique[log.ChunkID] = struct{}{}
		}
		typeReviews[resolveType(chunkType, log.ChunkID)]++
	}

	return Result{
		Periods:   buildPeriods(stats),
		Aggregate: buildAggregate(stats, newUnique, acquiredUnique),
		Standing:  buildStanding(states),
		Types:     buildTypes(states, typeReviews, chunkType),
	}
}

func isCleanFirstTry(log store.ReviewLog) bool {
	return log.Correct && !log.UsedHelp && log.WrongAttempts == 0
}

func periodKey(granularity Granularity, t time.Time) string {
	if granularity == Weekly {
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
	return fmt.Sprintf("%d-%02d", t.Year(), int(t.Month()))
}

func matchesFilter(logYear, logMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if logYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return logMonth == filterMonth
}

func ensurePeriodExists(stats map[string]*periodData, period string) {
	if stats[period] == nil {
		stats[period] = &periodData{}
	}
}

func resolveType(chunkType func(id string) (chunk.ChunkType, bool), id string) chunk.ChunkType {
	if chunkType == nil {
		return typeUnknown
	}
	if found, ok := chunkType(id); ok {
		return found
	}
	return typeUnknown
}

func buildPeriods(stats map[string]*periodData) []PeriodStatistics {
	periods := make([]PeriodStatistics, 0, len(stats))
	for period, data := range stats {
		periods = append(periods, PeriodStatistics{
			Period:          period,
			Reviews:         data.reviews,
			CorrectReviews:  data.correct,
			CleanFirstTries: data.cleanFirstTries,
			HelpUsed:        data.helpUsed,
			NewChunks:       data.newChunks,
			AcquiredChunks:  data.acquired,
		})
	}

	// Sort by period descending (newest first)
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})
	return periods
}

func buildAggregate(stats map[string]*periodData, newUnique, acquiredUnique map[string]struct{}) AggregateStatistics {
	aggregate := AggregateStatistics{
		NewChunksUnique:      len(newUnique),
		AcquiredChunksUnique: len(acquiredUnique),
	}
	for _, data := range stats {
		aggregate.Reviews += data.reviews
		aggregate.CorrectReviews += data.correct
		aggregate.CleanFirstTries += data.cleanFirstTries
		aggregate.HelpUsed += data.helpUsed
	}
	return aggregate
}

func buildStanding(states []store.UserChunk) Standing {
	standing := Standing{
		TrackedChunks: len(states),
		ByStatus:      make(map[srs.ChunkStatus]int),
	}
	var easeSum, confidenceSum float64
	for _, state := range states {
		standing.ByStatus[srs.ChunkStatus(state.Status)]++
		easeSum += state.EaseFactor
		confidenceSum += state.ConfidenceScore
	}
	if len(states) > 0 {
		standing.AverageEase = easeSum / float64(len(states))
		standing.AverageConfidence = confidenceSum / float64(len(states))
	}
	return standing
}

func buildTypes(
	states []store.UserChunk,
	reviews map[chunk.ChunkType]int,
	chunkType func(id string) (chunk.ChunkType, bool),
) []TypeStatistics {
	byType := make(map[chunk.ChunkType]*TypeStatistics)
	ensure := func(t chunk.ChunkType) *TypeStatistics {
		if byType[t] == nil {
			byType[t] = &TypeStatistics{Type: t}
		}
		return byType[t]
	}

	for _, state := range states {
		data := ensure(resolveType(chunkType, state.ChunkID))
		data.Tracked++
		if state.Status == string(srs.StatusAcquired) {
			data.Acquired++
		}
	}
	for typ, count := range reviews {
		ensure(typ).Reviews = count
	}

	result := make([]TypeStatistics, 0, len(byType))
	for _, data := range byType {
		result = append(result, *data)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Tracked != result[j].Tracked {
			return result[i].Tracked > result[j].Tracked
		}
		return result[i].Type < result[j].Type
	})
	return result
}
