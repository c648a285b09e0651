package pricefix

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ukaji3/pricefix-go/pkg/pricefix/models"
	"github.com/ukaji3/pricefix-go/pkg/pricefix/workbook"
)

// Document is the in-memory workbook the pipeline mutates.
// Rows and columns are 1-based.
type Document interface {
	SheetNames() []string
	ActiveSheet() string
	LastRow(sheet string) (int, error)
	Cell(sheet string, row, col int) (models.Value, error)
	SetNumber(sheet string, row, col int, v float64) error
	Charts(sheet string) ([]models.Chart, error)
	AddChart(sheet string, chart models.Chart) error
	DeleteChart(sheet, cell string) error
	Save() error
	Close() error
}

// Report summarises a run.
type Report struct {
	// Filename is the processed workbook.
	Filename string
	// SheetName is the sheet that was processed.
	SheetName string
	// BackupPath is the backup written before any change, empty if none.
	BackupPath string
	// AdjustedRows lists the rows whose destination cell was written.
	AdjustedRows []int
	// SkippedRows lists the rows whose source cell was not numeric.
	SkippedRows []int
	// ChartRange is the data reference of the added chart, empty if none.
	ChartRange string
	// ChartsBefore is the number of charts the sheet had in the source file.
	ChartsBefore int
	// ChartsReplaced is the number of earlier price charts removed from the anchor.
	ChartsReplaced int
}

// ChartAdded reports whether the run attached a chart.
func (r *Report) ChartAdded() bool { return r != nil && r.ChartRange != "" }

type openFunc func(path string) (Document, error)

func openWorkbook(path string) (Document, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	return wb, nil
}

// Process runs the pipeline on opts.Filename: load, resolve the sheet, back
// the file up, adjust the prices, add the chart and save in place.
//
// Any failure stops the run before the remaining steps; the file on disk is
// only replaced by the final save.
func Process(opts Options, log Logger) (*Report, error) {
	return process(opts, log, openWorkbook)
}

func process(opts Options, log Logger, open openFunc) (*Report, error) {
	if log == nil {
		log = nopLogger{}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	report := &Report{Filename: opts.Filename}

	doc, err := open(opts.Filename)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return report, err
		}
		return report, NewProcessingError("", "load", err)
	}
	defer doc.Close()

	sheet, err := resolveSheet(doc, opts.SheetName, log)
	if err != nil {
		return report, err
	}
	report.SheetName = sheet

	if opts.CreateBackup {
		if err := writeBackup(opts.Filename, opts.BackupPath()); err != nil {
			return report, err
		}
		report.BackupPath = opts.BackupPath()
		log.Info("backup created", "path", report.BackupPath)
	}

	if err := transformRows(doc, sheet, opts.AdjustmentFactor, log, report); err != nil {
		return report, NewProcessingError(sheet, "transform", err)
	}

	existing, err := doc.Charts(sheet)
	if err != nil {
		log.Warn("could not read existing charts", "sheet", sheet, "error", err)
	}
	report.ChartsBefore = len(existing)
	if len(existing) > 0 && !opts.ReplaceChart {
		log.Info("sheet already has charts, adding another", "sheet", sheet, "existing", len(existing))
	}
	if err := buildChart(doc, sheet, existing, opts.ReplaceChart, log, report); err != nil && !errors.Is(err, ErrNoDataForChart) {
		return report, NewProcessingError(sheet, "chart", err)
	}

	if err := doc.Save(); err != nil {
		return report, NewProcessingError(sheet, "save", err)
	}
	log.Info("workbook saved", "file", opts.Filename)

	return report, nil
}

// resolveSheet returns name if the document has a sheet called exactly that,
// or the active sheet when name is empty.
func resolveSheet(doc Document, name string, log Logger) (string, error) {
	if name == "" {
		active := doc.ActiveSheet()
		if active == "" {
			return "", fmt.Errorf("%w: workbook has no active sheet", ErrSheetNotFound)
		}
		log.Info("no sheet name given, using active sheet", "sheet", active)
		return active, nil
	}
	if !slices.Contains(doc.SheetNames(), name) {
		return "", fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return name, nil
}

// Run is the entry point of a batch invocation: it processes opts.Filename
// and logs the outcome. The error is returned for callers that want to turn
// it into an exit status.
func Run(opts Options, log Logger) error {
	if log == nil {
		log = nopLogger{}
	}
	report, err := Process(opts, log)
	switch {
	case err == nil:
		log.Info("workbook processed successfully and saved",
			"file", opts.Filename, "sheet", report.SheetName,
			"adjusted", len(report.AdjustedRows), "skipped", len(report.SkippedRows),
			"chart", report.ChartAdded())
	case errors.Is(err, ErrFileNotFound):
		log.Error("file not found", "file", opts.Filename, "error", err)
	case errors.Is(err, ErrSheetNotFound):
		log.Error("sheet not found", "file", opts.Filename, "sheet", opts.SheetName, "error", err)
	case errors.Is(err, ErrBackupWrite):
		log.Error("backup failed, workbook left untouched", "file", opts.Filename, "error", err)
	default:
		log.Error("an error occurred", "file", opts.Filename, "error", err)
	}
	return err
}
