// Package report renders the markdown progress report behind the report
// command and optionally converts it to PDF.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lexigarden/lexigarden/internal/assets"
	"github.com/lexigarden/lexigarden/internal/garden"
	"github.com/lexigarden/lexigarden/internal/srs"
	"github.com/lexigarden/lexigarden/internal/statistics"
	"github.com/lexigarden/lexigarden/internal/store"
)

// Writer renders progress reports to files.
type Writer struct {
	templatePath string
}

// NewWriter creates a report writer. templatePath optionally overrides the
// embedded markdown template.
func NewWriter(templatePath string) *Writer {
	return &Writer{templatePath: templatePath}
}

// BuildTemplateData flattens the aggregated statistics and the garden into
// the template's shape.
func BuildTemplateData(userID string, generatedAt time.Time, result statistics.Result, trees []store.UserTree) assets.ReportTemplate {
	data := assets.ReportTemplate{
		Title:       fmt.Sprintf("Garden progress for %s", userID),
		GeneratedOn: generatedAt.Format(time.DateOnly),
		Summary: assets.ReportSummary{
			TrackedChunks:     result.Standing.TrackedChunks,
			NewChunks:         result.Standing.ByStatus[srs.StatusNew],
			LearningChunks:    result.Standing.ByStatus[srs.StatusLearning],
			AcquiredChunks:    result.Standing.ByStatus[srs.StatusAcquired],
			FragileChunks:     result.Standing.ByStatus[srs.StatusFragile],
			Reviews:           result.Aggregate.Reviews,
			FirstTryAccuracy:  formatPercent(result.Aggregate.FirstTryAccuracy()),
			AverageEase:       fmt.Sprintf("%.2f", result.Standing.AverageEase),
			AverageConfidence: fmt.Sprintf("%.2f", result.Standing.AverageConfidence),
		},
	}
	for _, period := range result.Periods {
		data.Periods = append(data.Periods, assets.ReportPeriod{
			Period:    period.Period,
			Reviews:   period.Reviews,
			Accuracy:  formatPercent(period.FirstTryAccuracy()),
			NewChunks: period.NewChunks,
			Acquired:  period.AcquiredChunks,
		})
	}
	for _, row := range result.Types {
		data.Types = append(data.Types, assets.ReportTypeRow{
			Type:     string(row.Type),
			Tracked:  row.Tracked,
			Acquired: row.Acquired,
			Reviews:  row.Reviews,
		})
	}
	for _, tree := range trees {
		data.Garden = append(data.Garden, assets.ReportTree{
			SkillPath: tree.SkillPathID,
			Status:    tree.Status,
			Stage:     fmt.Sprintf("%d/%d", tree.GrowthStage, garden.MaxGrowthStage),
			Health:    fmt.Sprintf("%d/%d", tree.Health, garden.MaxHealth),
			SunDrops:  tree.SunDropsTotal,
		})
	}
	return data
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value*100)
}

// WriteMarkdown renders the report to output.
func (w Writer) WriteMarkdown(output io.Writer, data assets.ReportTemplate) error {
	if err := assets.WriteProgressReport(output, w.templatePath, data); err != nil {
		return fmt.Errorf("assets.WriteProgressReport() > %w", err)
	}
	return nil
}

// OutputProgressReport writes the report as <userID>-progress.md under
// outputDirectory and optionally converts it to PDF. It returns the
// markdown path and, when requested, the PDF path.
func (w Writer) OutputProgressReport(outputDirectory, userID string, data assets.ReportTemplate, generatePDF bool) (string, string, error) {
	// Create output directory if it doesn't exist
	if err := os.MkdirAll(outputDirectory, 0755); err != nil {
		return "", "", fmt.Errorf("os.MkdirAll(%s) > %w", outputDirectory, err)
	}

	outputFilename := filepath.Join(outputDirectory, userID+"-progress.md")
	output, err := os.Create(outputFilename)
	if err != nil {
		return "", "", fmt.Errorf("os.Create(%s) > %w", outputFilename, err)
	}
	defer func() {
		_ = output.Close()
	}()

	if err := w.WriteMarkdown(output, data); err != nil {
		return "", "", fmt.Errorf("WriteMarkdown(%s) > %w", outputFilename, err)
	}
	if !generatePDF {
		return outputFilename, "", nil
	}

	pdfPath, err := ConvertMarkdownToPDF(outputFilename)
	if err != nil {
		return outputFilename, "", fmt.Errorf("ConvertMarkdownToPDF(%s) > %w", outputFilename, err)
	}
	return outputFilename, pdfPath, nil
}
