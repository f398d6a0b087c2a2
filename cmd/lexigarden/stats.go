package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lexigarden/lexigarden/internal/chunk"
	"github.com/lexigarden/lexigarden/internal/cli"
	"github.com/lexigarden/lexigarden/internal/statistics"
)

type GranularityFlag string

// Set implements pflag.Value.
func (g *GranularityFlag) Set(v string) error {
	switch v {
	case string(statistics.Monthly):
		*g = GranularityFlag(statistics.Monthly)
	case string(statistics.Weekly):
		*g = GranularityFlag(statistics.Weekly)
	default:
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, statistics.Monthly, statistics.Weekly)
	}
	return nil
}

// String implements pflag.Value.
func (g *GranularityFlag) String() string {
	if g == nil {
		return ""
	}
	return string(*g)
}

// Type implements pflag.Value.
func (g *GranularityFlag) Type() string {
	return "GranularityFlag"
}

var (
	_ pflag.Value = (*GranularityFlag)(nil)
)

func newStatsCommand() *cobra.Command {
	var year, month int
	granularity := GranularityFlag(statistics.Monthly)

	command := &cobra.Command{
		Use:   "stats",
		Short: "Show review statistics and the collection standing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return fmt.Errorf("--month requires --year to be specified")
			}
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			st, err := openStores(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = st.close()
			}()

			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			reviews, _ := buildServices(cfg, st)

			ctx := context.Background()
			logs, err := reviews.History(ctx, cfg.User, time.Time{})
			if err != nil {
				return fmt.Errorf("reviews.History(%s) > %w", cfg.User, err)
			}
			states, err := reviews.ChunkStates(ctx, cfg.User)
			if err != nil {
				return fmt.Errorf("reviews.ChunkStates(%s) > %w", cfg.User, err)
			}

			chunkType := func(id string) (chunk.ChunkType, bool) {
				found, ok := catalog.Chunk(id)
				return found.Type, ok
			}
			result := statistics.CalculateStatistics(logs, states, chunkType, statistics.Granularity(granularity), year, month)
			cli.RenderStatistics(os.Stdout, result)
			return nil
		},
	}
	command.Flags().Var(&granularity, "granularity", "Bucket size for the period rows. Options: monthly, weekly")
	command.Flags().IntVar(&year, "year", 0, "Filter by year (e.g., 2025)")
	command.Flags().IntVar(&month, "month", 0, "Filter by month (1-12), requires --year")

	return command
}
