// Package export writes monthly finance reports to disk and reads
// transaction files back in.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/finburn/internal/log"
	"github.com/theirongolddev/finburn/internal/model"
)

// Format is an output file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
)

// Formats lists every supported format.
var Formats = []Format{FormatCSV, FormatJSON, FormatYAML, FormatPDF, FormatPNG}

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown export format %q", model.ErrInvalidInput, s)
}

// Report bundles everything a monthly export contains.
type Report struct {
	Month        time.Time            `json:"month"`
	Currency     string               `json:"currency"`
	Dashboard    model.Dashboard      `json:"dashboard"`
	Budgets      model.BudgetOverview `json:"budgets"`
	Goals        model.GoalOverview   `json:"goals"`
	Bills        model.BillOverview   `json:"bills"`
	Transactions []model.Transaction  `json:"transactions"`
}

// Exporter writes reports into a directory.
type Exporter struct {
	dir string
	log *log.Logger
}

// New returns an Exporter writing into dir. An empty dir means the
// working directory.
func New(dir string, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.Nop()
	}
	if dir == "" {
		dir = "."
	}
	return &Exporter{dir: dir, log: logger.WithComponent(log.ComponentExport)}
}

// Write renders r in format f and returns the absolute output path.
// name defaults to finburn-YYYY-MM.
func (e *Exporter) Write(r Report, f Format, name string) (string, error) {
	if name == "" {
		name = "finburn-" + r.Month.Format("2006-01")
	}
	path, err := e.filename(name, f)
	if err != nil {
		return "", err
	}

	switch f {
	case FormatCSV:
		err = writeCSV(path, r)
	case FormatJSON:
		err = writeJSON(path, r)
	case FormatYAML:
		err = writeYAML(path, r)
	case FormatPDF:
		err = writePDF(path, r)
	case FormatPNG:
		err = writePNG(path, r)
	default:
		err = fmt.Errorf("%w: unknown export format %q", model.ErrInvalidInput, f)
	}
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	e.log.Info("report exported", log.FieldPath, abs, log.FieldKind, string(f))
	return abs, nil
}

func (e *Exporter) filename(name string, f Format) (string, error) {
	if err := os.MkdirAll(e.dir, 0o750); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return filepath.Join(e.dir, base+"."+string(f)), nil
}
