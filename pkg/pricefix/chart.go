package pricefix

import (
	"github.com/ukaji3/pricefix-go/pkg/pricefix/models"
	"github.com/ukaji3/pricefix-go/pkg/pricefix/workbook"
)

// Labels of the price chart.
const (
	ChartTitle      = "Corrected Prices Chart"
	ChartXAxisTitle = "Product"
	ChartYAxisTitle = "Corrected Price"
)

// buildChart attaches a bar chart of the destination column to sheet and
// records its range in report. It returns ErrNoDataForChart when the sheet
// has no data rows.
//
// With replace set, earlier price charts at the anchor are removed first,
// unless another chart shares the anchor: removal works per anchor cell and
// would take that chart along.
func buildChart(doc Document, sheet string, existing []models.Chart, replace bool, log Logger, report *Report) error {
	lastRow, err := doc.LastRow(sheet)
	if err != nil {
		return err
	}
	if lastRow < FirstDataRow {
		log.Warn("no data to chart, chart skipped", "sheet", sheet)
		return ErrNoDataForChart
	}

	ref, err := workbook.FormatRange(sheet, models.CellRange{
		R1: FirstDataRow, C1: DestinationColumn,
		R2: lastRow, C2: DestinationColumn,
	})
	if err != nil {
		return err
	}

	if replace {
		ours, others := chartsAt(existing, ChartAnchor)
		switch {
		case len(others) > 0:
			log.Warn("another chart shares the anchor, keeping earlier charts",
				"sheet", sheet, "anchor", ChartAnchor, "title", others[0].Title, "price_charts", ours)
		case ours > 0:
			if err := doc.DeleteChart(sheet, ChartAnchor); err != nil {
				return err
			}
			report.ChartsReplaced = ours
			log.Info("replacing chart", "sheet", sheet, "anchor", ChartAnchor, "replaced", ours)
		}
	}
	if err := doc.AddChart(sheet, priceChart(ref)); err != nil {
		return err
	}
	report.ChartRange = ref
	log.Info("chart added", "sheet", sheet, "anchor", ChartAnchor, "range", ref)
	return nil
}

// priceChart describes a single-series bar chart over ref. The series has no
// title: no cell of ref is used as a label.
func priceChart(ref string) models.Chart {
	return models.Chart{
		ChartType:  "Bar",
		Title:      ChartTitle,
		XAxisTitle: ChartXAxisTitle,
		YAxisTitle: ChartYAxisTitle,
		Anchor:     ChartAnchor,
		Series:     []models.ChartSeries{{Values: ref}},
	}
}

// chartsAt counts the price charts anchored at cell and returns the other
// charts found there.
func chartsAt(charts []models.Chart, cell string) (ours int, others []models.Chart) {
	for _, c := range charts {
		if c.Anchor != cell {
			continue
		}
		if c.Title == ChartTitle {
			ours++
		} else {
			others = append(others, c)
		}
	}
	return ours, others
}
