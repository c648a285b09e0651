// Package workbook adapts an excelize workbook to the operations the
// pricefix pipeline performs: cell access, chart attachment and saving.
package workbook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ukaji3/pricefix-go/pkg/pricefix/models"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrFileNotFound indicates the input file does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrDocumentCorrupt indicates the input file could not be loaded as a workbook.
	ErrDocumentCorrupt = errors.New("document corrupt")
)

// chartTypes maps chart type names to the excelize chart kinds used to draw them.
// Bar is drawn with vertical columns.
var chartTypes = map[string]excelize.ChartType{
	"Bar":  excelize.Col,
	"Line": excelize.Line,
	"Area": excelize.Area,
	"Pie":  excelize.Pie,
}

// Workbook is an xlsx document loaded in memory.
type Workbook struct {
	path string
	f    *excelize.File
}

// Open loads the workbook at path.
func Open(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrDocumentCorrupt, path, err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDocumentCorrupt, path, err)
	}
	return &Workbook{path: path, f: f}, nil
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string { return w.f.GetSheetList() }

// ActiveSheet returns the name of the sheet selected when the file was saved.
func (w *Workbook) ActiveSheet() string {
	return w.f.GetSheetName(w.f.GetActiveSheetIndex())
}

// LastRow returns the 1-based index of the last populated row, 0 for an empty sheet.
func (w *Workbook) LastRow(sheet string) (int, error) {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return 0, err
	}
	return lastPopulatedRow(rows), nil
}

// Cell returns the value stored at (row, col), both 1-based.
func (w *Workbook) Cell(sheet string, row, col int) (models.Value, error) {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.Value{}, err
	}
	c, err := w.storedCell(sheet, axis)
	if err != nil {
		return models.Value{}, fmt.Errorf("%s[%s]: %w", sheet, axis, err)
	}
	return classifyCell(c), nil
}

func (w *Workbook) storedCell(sheet, axis string) (storedCell, error) {
	var c storedCell
	var err error
	if c.formula, err = w.f.GetCellFormula(sheet, axis); err != nil {
		return c, err
	}
	if c.cellType, err = w.f.GetCellType(sheet, axis); err != nil {
		return c, err
	}
	if c.raw, err = w.f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true}); err != nil {
		return c, err
	}
	if c.formula != "" || c.raw == "" {
		return c, nil
	}
	if c.cellType != excelize.CellTypeUnset && c.cellType != excelize.CellTypeNumber {
		return c, nil
	}

	// Only numbers need their format: dates are numbers shown as dates.
	if c.shown, err = w.f.GetCellValue(sheet, axis); err != nil {
		return c, err
	}
	styleID, err := w.f.GetCellStyle(sheet, axis)
	if err != nil {
		return c, err
	}
	// A style the workbook cannot resolve leaves the General format.
	if style, err := w.f.GetStyle(styleID); err == nil {
		c.numFmt = style.NumFmt
		if style.CustomNumFmt != nil {
			c.customFmt = *style.CustomNumFmt
		}
	}
	return c, nil
}

// SetNumber writes v at (row, col) using the shortest representation that
// reads back as the same float64.
func (w *Workbook) SetNumber(sheet string, row, col int, v float64) error {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellFloat(sheet, axis, v, -1, 64); err != nil {
		return fmt.Errorf("%s[%s]: %w", sheet, axis, err)
	}
	return nil
}

// AddChart attaches chart to sheet at chart.Anchor.
func (w *Workbook) AddChart(sheet string, chart models.Chart) error {
	chartType, ok := chartTypes[chart.ChartType]
	if !ok {
		return fmt.Errorf("unsupported chart type %q", chart.ChartType)
	}
	series := make([]excelize.ChartSeries, 0, len(chart.Series))
	for _, s := range chart.Series {
		series = append(series, excelize.ChartSeries{Values: s.Values})
	}
	xc := excelize.Chart{
		Type:   chartType,
		Series: series,
		XAxis:  excelize.ChartAxis{Title: richText(chart.XAxisTitle)},
		YAxis:  excelize.ChartAxis{Title: richText(chart.YAxisTitle)},
		Title:  richText(chart.Title),
	}
	if err := w.f.AddChart(sheet, chart.Anchor, &xc); err != nil {
		return fmt.Errorf("%s[%s]: add chart: %w", sheet, chart.Anchor, err)
	}
	return nil
}

// Charts returns the charts of sheet as stored in the file the workbook was
// loaded from.
func (w *Workbook) Charts(sheet string) ([]models.Chart, error) {
	charts, err := ExtractCharts(w.path)
	if err != nil {
		return nil, err
	}
	return charts[sheet], nil
}

// DeleteChart removes the charts anchored at cell.
func (w *Workbook) DeleteChart(sheet, cell string) error {
	if err := w.f.DeleteChart(sheet, cell); err != nil {
		return fmt.Errorf("%s[%s]: delete chart: %w", sheet, cell, err)
	}
	return nil
}

// Save replaces the file at Path with the in-memory workbook.
//
// The workbook is written to a temporary file in the same directory which is
// then renamed over the original, so readers see either the old or the new
// file. The original permission bits are kept. A symlinked path is resolved
// first so the link keeps pointing at the updated file.
func (w *Workbook) Save() error {
	target := w.path
	if resolved, err := filepath.EvalSymlinks(w.path); err == nil {
		target = resolved
	}
	dir, base := filepath.Split(target)
	if dir == "" {
		dir = "."
	}
	tmpName := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")
	perm := fs.FileMode(0o644)
	if fi, err := os.Stat(target); err == nil {
		perm = fi.Mode().Perm()
	}

	fh, err := os.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err = w.f.WriteTo(fh); err == nil {
		err = fh.Sync()
	}
	if closeErr := fh.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, target)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", w.path, err)
	}
	return nil
}

// Close releases the resources held by the workbook.
func (w *Workbook) Close() error {
	if w == nil || w.f == nil {
		return nil
	}
	f := w.f
	w.f = nil
	return f.Close()
}

func richText(s string) []excelize.RichTextRun {
	if s == "" {
		return nil
	}
	return []excelize.RichTextRun{{Text: s}}
}
