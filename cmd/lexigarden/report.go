package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexigarden/lexigarden/internal/chunk"
	"github.com/lexigarden/lexigarden/internal/report"
	"github.com/lexigarden/lexigarden/internal/statistics"
)

func newReportCommand() *cobra.Command {
	var generatePDF bool

	command := &cobra.Command{
		Use:   "report",
		Short: "Write a progress report for the family",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			reviews, gardens := buildServices(cfg, st)

			ctx := context.Background()
			logs, err := reviews.History(ctx, cfg.User, time.Time{})
			if err != nil {
				return fmt.Errorf("reviews.History(%s) > %w", cfg.User, err)
			}
			states, err := reviews.ChunkStates(ctx, cfg.User)
			if err != nil {
				return fmt.Errorf("reviews.ChunkStates(%s) > %w", cfg.User, err)
			}
			trees, err := gardens.Garden(ctx, cfg.User)
			if err != nil {
				return fmt.Errorf("gardens.Garden(%s) > %w", cfg.User, err)
			}

			chunkType := func(id string) (chunk.ChunkType, bool) {
				found, ok := catalog.Chunk(id)
				return found.Type, ok
			}
			result := statistics.CalculateStatistics(logs, states, chunkType, statistics.Monthly, 0, 0)
			data := report.BuildTemplateData(cfg.User, time.Now(), result, trees)

			writer := report.NewWriter(cfg.Templates.ProgressReportTemplate)
			markdownPath, pdfPath, err := writer.OutputProgressReport(cfg.Outputs.ReportDirectory, cfg.User, data, generatePDF)
			if err != nil {
				return fmt.Errorf("report.OutputProgressReport() > %w", err)
			}

			fmt.Printf("Progress report written to %s\n", markdownPath)
			if pdfPath != "" {
				fmt.Printf("PDF written to %s\n", pdfPath)
			}
			return nil
		},
	}
	command.Flags().BoolVar(&generatePDF, "pdf", false, "Also convert the report to PDF")

	return command
}
