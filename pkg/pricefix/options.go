// Package pricefix adjusts the prices of a spreadsheet in place and charts the result.
package pricefix

import (
	"fmt"
	"math"
)

const (
	// SourceColumn holds the prices to adjust.
	SourceColumn = 3
	// DestinationColumn receives the adjusted prices.
	DestinationColumn = 4
	// FirstDataRow is the first row after the header.
	FirstDataRow = 2
	// ChartAnchor is the cell the chart's top-left corner is attached to.
	ChartAnchor = "G2"

	// DefaultAdjustmentFactor is the multiplier applied when none is configured.
	DefaultAdjustmentFactor = 0.9
)

// Options configures a run.
type Options struct {
	// Filename is the workbook to transform in place. Required.
	Filename string `toml:"filename"`
	// SheetName selects the sheet to process. Empty means the active sheet.
	SheetName string `toml:"sheet_name"`
	// AdjustmentFactor multiplies every numeric source value.
	AdjustmentFactor float64 `toml:"adjustment_factor"`
	// CreateBackup copies the file to Filename+".backup" before any change.
	CreateBackup bool `toml:"create_backup"`
	// ReplaceChart removes charts already anchored at ChartAnchor before
	// adding the new one. By default repeated runs accumulate charts.
	ReplaceChart bool `toml:"replace_chart"`
}

// DefaultOptions returns default run options.
func DefaultOptions() Options {
	return Options{
		AdjustmentFactor: DefaultAdjustmentFactor,
		CreateBackup:     true,
	}
}

// Validate reports whether the options can drive a run.
func (o Options) Validate() error {
	if o.Filename == "" {
		return fmt.Errorf("%w: filename is required", ErrInvalidOptions)
	}
	if math.IsNaN(o.AdjustmentFactor) || math.IsInf(o.AdjustmentFactor, 0) {
		return fmt.Errorf("%w: adjustment factor must be finite, got %v", ErrInvalidOptions, o.AdjustmentFactor)
	}
	return nil
}

// BackupPath returns where the backup copy of Filename is written.
func (o Options) BackupPath() string {
	return o.Filename + ".backup"
}
