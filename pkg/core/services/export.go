package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/arielreyes/crewsight/pkg/core/classify"
	"github.com/arielreyes/crewsight/pkg/core/dataset"
	"github.com/arielreyes/crewsight/pkg/core/engine"
	"github.com/arielreyes/crewsight/pkg/core/identity"
)

// Exported files use a UTF-8 BOM and semicolon separators so Excel with a
// Spanish locale opens them correctly without an import wizard.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const exportSeparator = ';'

const exportDateLayout = "2006-01-02"

func newExportWriter(w io.Writer) (*csv.Writer, error) {
	if _, err := w.Write(utf8BOM); err != nil {
		return nil, err
	}
	cw := csv.NewWriter(w)
	cw.Comma = exportSeparator
	return cw, nil
}

// WriteSummaryCSV writes the per-person summary table.
func WriteSummaryCSV(w io.Writer, summary []engine.Summary) error {
	cw, err := newExportWriter(w)
	if err != nil {
		return err
	}

	header := []string{"ID", "Collaborator", "Department", "Residence City",
		"Window Days", "Available Days", "Available %", "Max Streak", "Criticality"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range summary {
		row := []string{
			identity.FormatForDisplay(s.ID),
			s.Collaborator,
			s.Department,
			s.ResidenceCity,
			strconv.Itoa(s.WindowDays),
			strconv.Itoa(s.AvailableDays),
			strconv.FormatFloat(s.AvailablePct, 'f', 1, 64),
			strconv.Itoa(s.MaxStreak),
			string(s.Criticality),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDetailCSV writes every classified in-window row.
func WriteDetailCSV(w io.Writer, detail []classify.Classified) error {
	cw, err := newExportWriter(w)
	if err != nil {
		return err
	}

	header := []string{"ID", "Collaborator", "Department", "Date", "Activity", "Available"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, d := range detail {
		row := []string{
			d.ID,
			d.Collaborator,
			d.Department,
			d.Date.Format(exportDateLayout),
			d.Activity,
			strconv.Itoa(d.Flag),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRecordsCSV writes plain records, used for the unassigned and
// roster-excluded tables.
func WriteRecordsCSV(w io.Writer, records []dataset.Record) error {
	cw, err := newExportWriter(w)
	if err != nil {
		return err
	}

	header := []string{"ID", "Collaborator", "Department", "Residence City", "Date", "Activity"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.Collaborator,
			r.Department,
			r.ResidenceCity,
			r.Date.Format(exportDateLayout),
			r.Activity,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportAll writes the run's tables into dir as summary.csv, detail.csv,
// unassigned.csv and, when the roster excluded anything, excluded.csv.
func ExportAll(dir string, result *AnalyzeResult, logger *zap.Logger) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
		skip  bool
	}{
		{"summary.csv", func(w io.Writer) error { return WriteSummaryCSV(w, result.Summary) }, false},
		{"detail.csv", func(w io.Writer) error { return WriteDetailCSV(w, result.Detail) }, false},
		{"unassigned.csv", func(w io.Writer) error { return WriteRecordsCSV(w, result.Unassigned) }, false},
		{"excluded.csv", func(w io.Writer) error { return WriteRecordsCSV(w, result.Excluded) }, len(result.Excluded) == 0},
	}

	for _, f := range files {
		if f.skip {
			continue
		}
		path := filepath.Join(dir, f.name)
		if err := writeFile(path, f.write); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		logger.Info("Exported table", zap.String("path", path))
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
