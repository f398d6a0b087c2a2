package assets

import (
	_ "embed"
	"fmt"
	"io"
)

//go:embed templates/progress-report.md.go.tmpl
var fallbackProgressReportTemplate string

const progressReportTemplateName = "progress-report.md.go.tmpl"

// ReportTemplate is the top-level data structure for progress report
// templates.
type ReportTemplate struct {
	Title       string
	GeneratedOn string
	Summary     ReportSummary
	Periods     []ReportPeriod
	Types       []ReportTypeRow
	Garden      []ReportTree
}

// ReportSummary holds the overall figures of the summary table. Formatted
// values are prepared by the caller so templates stay layout only.
type ReportSummary struct {
	TrackedChunks     int
	NewChunks         int
	LearningChunks    int
	AcquiredChunks    int
	FragileChunks     int
	Reviews           int
	FirstTryAccuracy  string
	AverageEase       string
	AverageConfidence string
}

// ReportPeriod is one row of the per-period review table.
type ReportPeriod struct {
	Period    string
	Reviews   int
	Accuracy  string
	NewChunks int
	Acquired  int
}

// ReportTypeRow is one row of the chunk type breakdown.
type ReportTypeRow struct {
	Type     string
	Tracked  int
	Acquired int
	Reviews  int
}

// ReportTree is one row of the garden snapshot.
type ReportTree struct {
	SkillPath string
	Status    string
	Stage     string
	Health    string
	SunDrops  int
}

// WriteProgressReport renders the progress report template to output.
// templatePath optionally overrides the embedded template.
func WriteProgressReport(output io.Writer, templatePath string, templateData ReportTemplate) error {
	tmpl, err := parseTemplateWithFallback(templatePath, progressReportTemplateName, fallbackProgressReportTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
