package pricefix

import (
	"errors"
	"fmt"

	"github.com/ukaji3/pricefix-go/pkg/pricefix/models"
	"github.com/ukaji3/pricefix-go/pkg/pricefix/workbook"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = workbook.ErrFileNotFound

// ErrDocumentCorrupt indicates the input file is not a loadable xlsx workbook.
var ErrDocumentCorrupt = workbook.ErrDocumentCorrupt

// ErrSheetNotFound indicates the requested sheet is not in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrBackupWrite indicates the backup copy could not be written.
var ErrBackupWrite = errors.New("backup write failed")

// ErrNoDataForChart indicates the sheet has no data rows to chart.
var ErrNoDataForChart = errors.New("no data to chart")

// ErrInvalidOptions indicates the run configuration is unusable.
var ErrInvalidOptions = errors.New("invalid options")

// NonNumericCellError reports a source cell that does not hold a number.
// It is logged and the row is skipped; it never aborts a run.
type NonNumericCellError struct {
	Row, Col int
	Value    models.Value
}

func (e *NonNumericCellError) Error() string {
	return fmt.Sprintf("non-numeric value %s in row %d, column %d", e.Value, e.Row, e.Col)
}

// ProcessingError represents a failure in one pipeline step.
type ProcessingError struct {
	SheetName string
	Step      string // "load", "resolve", "backup", "transform", "chart", "save"
	Err       error
}

func (e *ProcessingError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("%s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("%s sheet %q: %v", e.Step, e.SheetName, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewProcessingError creates a new ProcessingError.
func NewProcessingError(sheetName, step string, err error) *ProcessingError {
	return &ProcessingError{
		SheetName: sheetName,
		Step:      step,
		Err:       err,
	}
}
