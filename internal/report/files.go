// Package report renders analysis results as Markdown and CSV and
// writes them to the output directory.
package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ralt/pluginstats/internal/models"
	"github.com/ralt/pluginstats/internal/utils"
)

// LatestReport is the file name of the copy of the most recent report
const LatestReport = "latest_ecosystem_report.md"

// FileName returns the timestamped report file name
func FileName(generated time.Time) string {
	return fmt.Sprintf("ecosystem_report_%s.md", generated.Format("20060102_150405"))
}

// Write stores the report under outputDir, plus a copy at LatestReport.
// It returns the path of the timestamped report.
func Write(outputDir, text string, generated time.Time) (string, error) {
	path := filepath.Join(outputDir, FileName(generated))
	if err := utils.WriteFile(path, []byte(text), 0644); err != nil {
		return "", models.NewError(models.ErrFileOp, path, fmt.Errorf("failed to write report: %w", err))
	}
	latest := filepath.Join(outputDir, LatestReport)
	if err := utils.CopyFile(path, latest); err != nil {
		return "", models.NewError(models.ErrFileOp, latest, fmt.Errorf("failed to copy report: %w", err))
	}
	return path, nil
}
