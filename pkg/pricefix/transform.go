package pricefix

import (
	"errors"

	"github.com/ukaji3/pricefix-go/pkg/pricefix/models"
)

// transformRows writes source*factor into the destination column of every
// data row whose source cell is numeric. Other rows are logged and left as is.
func transformRows(doc Document, sheet string, factor float64, log Logger, report *Report) error {
	lastRow, err := doc.LastRow(sheet)
	if err != nil {
		return err
	}

	for row := FirstDataRow; row <= lastRow; row++ {
		v, err := doc.Cell(sheet, row, SourceColumn)
		if err != nil {
			return err
		}

		adjusted, err := adjust(v, factor, row)
		if err != nil {
			var nonNumeric *NonNumericCellError
			if !errors.As(err, &nonNumeric) {
				return err
			}
			log.Warn("non-numeric value, row skipped",
				"row", nonNumeric.Row, "column", nonNumeric.Col, "value", nonNumeric.Value.String())
			report.SkippedRows = append(report.SkippedRows, row)
			continue
		}

		if err := doc.SetNumber(sheet, row, DestinationColumn, adjusted); err != nil {
			return err
		}
		log.Debug("price adjusted", "row", row, "from", v.Number, "to", adjusted)
		report.AdjustedRows = append(report.AdjustedRows, row)
	}

	return nil
}

// adjust returns v*factor for numeric values.
func adjust(v models.Value, factor float64, row int) (float64, error) {
	switch v.Kind {
	case models.KindNumeric:
		return v.Number * factor, nil
	case models.KindText, models.KindEmpty:
	}
	return 0, &NonNumericCellError{Row: row, Col: SourceColumn, Value: v}
}
