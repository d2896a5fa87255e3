package repository

import (
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
)

// ExportRepository grava os artefatos dos scripts no disco.
type ExportRepository interface {
	// Results
	WriteResults(results *entity.Results, outputDir string) ([]string, error)

	// Hand-off files
	WriteText(filename, outputDir string, lines []string) (string, error)
	ReadJSON(path string, v interface{}) error
	WriteJSON(path string, v interface{}) error
	WriteFile(path string, data []byte) error

	// Reports
	ResetDir(path string) error
	RemoveIfEmpty(path string) (bool, error)
	WriteCSV(path string, header []string, rows [][]string) error
	ExportCostSummaryToPDF(summaries []*entity.CostSummary, filename, outputDir string) (string, error)
}
