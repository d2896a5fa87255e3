package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/dustin/go-humanize"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Resultados dos scripts ---

// WriteResults grava um JSON indentado por serviço registrado e devolve os caminhos gravados.
func (r *ExportRepositoryImpl) WriteResults(results *entity.Results, outputDir string) ([]string, error) {
	dir, err := ensureDir(outputDir)
	if err != nil {
		return nil, err
	}

	var (
		paths []string
		errs  []error
	)
	for _, service := range results.Services() {
		path := filepath.Join(dir, results.FileName(service))
		if err := writeIndentedJSON(path, results.Operations(service)); err != nil {
			errs = append(errs, fmt.Errorf("error writing results for %s: %w", service, err))
			continue
		}
		paths = append(paths, path)
	}
	return paths, errors.Join(errs...)
}

// --- Arquivos de passagem entre scripts ---

// WriteText grava uma linha por elemento em outputDir/filename.
func (r *ExportRepositoryImpl) WriteText(filename, outputDir string, lines []string) (string, error) {
	dir, err := ensureDir(outputDir)
	if err != nil {
		return "", err
	}

	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("error writing text file: %w", err)
	}
	return filepath.Abs(path)
}

// ReadJSON decodifica path em v. Um arquivo inexistente devolve um erro que satisfaz os.ErrNotExist.
func (r *ExportRepositoryImpl) ReadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("error parsing JSON file '%s': %w", path, err)
	}
	return nil
}

// WriteJSON grava v indentado com 2 espaços, criando o diretório pai.
func (r *ExportRepositoryImpl) WriteJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating output directory '%s': %w", filepath.Dir(path), err)
	}
	return writeIndentedJSON(path, v)
}

// --- Relatórios ---

// WriteFile grava bytes brutos em path, criando os diretórios pai.
func (r *ExportRepositoryImpl) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating output directory '%s': %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing file '%s': %w", path, err)
	}
	return nil
}

// ResetDir remove path se existir e o recria vazio.
func (r *ExportRepositoryImpl) ResetDir(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("error removing directory '%s': %w", path, err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("error creating directory '%s': %w", path, err)
	}
	return nil
}

// RemoveIfEmpty apaga o diretório quando não há nada dentro e informa se apagou.
func (r *ExportRepositoryImpl) RemoveIfEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}
	if len(entries) > 0 {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		return false, err
	}
	return true, nil
}

// WriteCSV writes header plus rows to path, creating parent directories.
func (r *ExportRepositoryImpl) WriteCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating output directory '%s': %w", filepath.Dir(path), err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if len(header) > 0 {
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("error writing CSV header: %w", err)
		}
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("error writing CSV rows: %w", err)
	}
	return nil
}

// ExportCostSummaryToPDF gera uma página por conta/mês com a matriz projeto x ambiente.
func (r *ExportRepositoryImpl) ExportCostSummaryToPDF(summaries []*entity.CostSummary, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}
	pageWidth := 277.0

	for i, s := range summaries {
		pdf.AddPage()

		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 12, tr("  "+s.Account.Label()), "", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Period: %s to %s", s.Start, s.End)), "", 1, "L", true, 0, "")
		pdf.Ln(6)

		header := s.Header()
		firstCol := 70.0
		colWidth := (pageWidth - firstCol) / float64(max(len(header)-1, 1))

		pdf.SetFont("Arial", "B", 9)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		for j, h := range header {
			w := colWidth
			if j == 0 {
				w = firstCol
			}
			pdf.CellFormat(w, 7, tr(h), "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, p := range s.Projects {
			pdf.CellFormat(firstCol, 6, tr(p), "", 0, "L", false, 0, "")
			for _, e := range s.EnvTypes {
				pdf.CellFormat(colWidth, 6, tr(formatAmount(s.Amounts[p][e])), "", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}

		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, tr("Total: "+formatAmount(s.Total())), "T", 1, "L", false, 0, "")

		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by aws-ops cost-explorer | %s", time.Now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", i+1)), "", 0, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

func formatAmount(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func ensureDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	return dir, nil
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	dir, err := ensureDir(dir)
	if err != nil {
		return "", err
	}
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", base, timestamp, ext)), nil
}

func writeIndentedJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing JSON file: %w", err)
	}
	return nil
}
