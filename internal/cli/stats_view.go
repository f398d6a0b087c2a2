package cli

import (
	"fmt"
	"io"

	"github.com/lexigarden/lexigarden/internal/srs"
	"github.com/lexigarden/lexigarden/internal/statistics"
)

// RenderStatistics prints fixed-width tables of the review history and the
// current collection standing.
func RenderStatistics(output io.Writer, result statistics.Result) {
	if len(result.Periods) == 0 {
		fmt.Fprintln(output, "No reviews recorded for the specified period.")
		return
	}

	fmt.Fprintln(output, "Review Statistics Report")
	fmt.Fprintln(output, "========================")
	fmt.Fprintln(output)
	fmt.Fprintf(output, "%-10s  %8s  %8s  %10s  %6s  %5s  %9s  %9s\n",
		"Period", "Reviews", "Correct", "First try", "Hints", "New", "Acquired", "Accuracy")
	fmt.Fprintf(output, "%-10s  %8s  %8s  %10s  %6s  %5s  %9s  %9s\n",
		"------", "-------", "-------", "---------", "-----", "---", "--------", "--------")

	for _, s := range result.Periods {
		fmt.Fprintf(output, "%-10s  %8d  %8d  %10d  %6d  %5d  %9d  %8.1f%%\n",
			s.Period, s.Reviews, s.CorrectReviews, s.CleanFirstTries, s.HelpUsed,
			s.NewChunks, s.AcquiredChunks, s.FirstTryAccuracy()*100)
	}

	// Totals carry the globally deduplicated new and acquired counts.
	fmt.Fprintln(output)
	aggregate := result.Aggregate
	fmt.Fprintf(output, "%-10s  %8d  %8d  %10d  %6d  %5d  %9d  %8.1f%%\n",
		"Totals:", aggregate.Reviews, aggregate.CorrectReviews, aggregate.CleanFirstTries,
		aggregate.HelpUsed, aggregate.NewChunksUnique, aggregate.AcquiredChunksUnique,
		aggregate.FirstTryAccuracy()*100)

	fmt.Fprintln(output)
	standing := result.Standing
	fmt.Fprintf(output, "Tracking %d chunks: %d new, %d learning, %d acquired, %d fragile.\n",
		standing.TrackedChunks,
		standing.ByStatus[srs.StatusNew],
		standing.ByStatus[srs.StatusLearning],
		standing.ByStatus[srs.StatusAcquired],
		standing.ByStatus[srs.StatusFragile])
	fmt.Fprintf(output, "Average ease %.2f, average confidence %.2f.\n",
		standing.AverageEase, standing.AverageConfidence)

	if len(result.Types) == 0 {
		return
	}
	fmt.Fprintln(output)
	fmt.Fprintf(output, "%-14s  %8s  %9s  %8s\n", "Type", "Tracked", "Acquired", "Reviews")
	fmt.Fprintf(output, "%-14s  %8s  %9s  %8s\n", "----", "-------", "--------", "-------")
	for _, typeStats := range result.Types {
		fmt.Fprintf(output, "%-14s  %8d  %9d  %8d\n",
			typeStats.Type, typeStats.Tracked, typeStats.Acquired, typeStats.Reviews)
	}
}
