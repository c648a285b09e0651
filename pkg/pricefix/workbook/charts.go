package workbook

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/ukaji3/pricefix-go/pkg/pricefix/models"
	"github.com/xuri/excelize/v2"
)

const workbookPart = "xl/workbook.xml"

// chartKinds names the plot elements of the chart kinds AddChart can draw.
var chartKinds = map[string]string{
	"barChart":  "Bar",
	"lineChart": "Line",
	"areaChart": "Area",
	"pieChart":  "Pie",
}

type xlsxWorkbookSheets struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
		RID  string `xml:"id,attr"`
	} `xml:"sheets>sheet"`
}

// xdrDrawing keeps the anchors of a drawing part in document order.
type xdrDrawing struct {
	Anchors []xdrAnchor `xml:",any"`
}

type xdrAnchor struct {
	From  *xdrMarker `xml:"from"`
	Frame *struct {
		Chart *struct {
			RID string `xml:"id,attr"`
		} `xml:"graphic>graphicData>chart"`
	} `xml:"graphicFrame"`
}

// xdrMarker is a zero-based cell position.
type xdrMarker struct {
	Col int `xml:"col"`
	Row int `xml:"row"`
}

type chartSpace struct {
	Chart struct {
		Title    *chartTitle `xml:"title"`
		PlotArea struct {
			Elements []plotElement `xml:",any"`
		} `xml:"plotArea"`
	} `xml:"chart"`
}

// plotElement is either a chart kind holding series or an axis.
type plotElement struct {
	XMLName xml.Name
	Title   *chartTitle `xml:"title"`
	Series  []struct {
		Values string `xml:"val>numRef>f"`
	} `xml:"ser"`
}

type chartTitle struct {
	Runs []string `xml:"tx>rich>p>r>t"`
}

func (t *chartTitle) text() string {
	if t == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(t.Runs, ""))
}

// ExtractCharts reads the charts attached to each sheet of a saved xlsx file.
// The result maps sheet names to their charts in drawing order.
func ExtractCharts(xlsxPath string) (map[string][]models.Chart, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	pkg := ooxmlPackage{fsys: &r.Reader}
	var wb xlsxWorkbookSheets
	if err := pkg.decode(workbookPart, &wb); err != nil {
		return nil, fmt.Errorf("%s: %w", workbookPart, err)
	}
	rels, err := pkg.rels(workbookPart)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]models.Chart)
	for _, sheet := range wb.Sheets {
		target, ok := rels.target(sheet.RID, relWorksheet)
		if !ok {
			continue
		}
		charts, err := pkg.sheetCharts(resolveTarget(workbookPart, target))
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
		if len(charts) > 0 {
			result[sheet.Name] = charts
		}
	}
	return result, nil
}

// sheetCharts returns the charts of the drawing attached to sheetPart.
func (p ooxmlPackage) sheetCharts(sheetPart string) ([]models.Chart, error) {
	sheetRels, err := p.rels(sheetPart)
	if err != nil {
		return nil, err
	}
	target, ok := sheetRels.first(relDrawing)
	if !ok {
		return nil, nil
	}
	drawingPart := resolveTarget(sheetPart, target)

	var drawing xdrDrawing
	if err := p.decode(drawingPart, &drawing); err != nil {
		return nil, fmt.Errorf("%s: %w", drawingPart, err)
	}
	drawingRels, err := p.rels(drawingPart)
	if err != nil {
		return nil, err
	}

	var charts []models.Chart
	for _, anchor := range drawing.Anchors {
		if anchor.Frame == nil || anchor.Frame.Chart == nil {
			continue
		}
		target, ok := drawingRels.target(anchor.Frame.Chart.RID, relChart)
		if !ok {
			continue
		}
		chartPart := resolveTarget(drawingPart, target)
		var space chartSpace
		if err := p.decode(chartPart, &space); err != nil {
			return nil, fmt.Errorf("%s: %w", chartPart, err)
		}
		chart := space.chart()
		chart.Anchor = anchor.cell()
		charts = append(charts, chart)
	}
	return charts, nil
}

// cell returns the name of the top-left cell of the anchor, empty for
// absolute anchors.
func (a xdrAnchor) cell() string {
	if a.From == nil {
		return ""
	}
	cell, err := excelize.CoordinatesToCellName(a.From.Col+1, a.From.Row+1)
	if err != nil {
		return ""
	}
	return cell
}

func (s chartSpace) chart() models.Chart {
	chart := models.Chart{Title: s.Chart.Title.text()}
	for _, el := range s.Chart.PlotArea.Elements {
		if kind, ok := chartKinds[el.XMLName.Local]; ok || len(el.Series) > 0 {
			if chart.ChartType == "" {
				chart.ChartType = kind
			}
			for _, ser := range el.Series {
				chart.Series = append(chart.Series, models.ChartSeries{Values: strings.TrimSpace(ser.Values)})
			}
			continue
		}
		switch el.XMLName.Local {
		case "catAx", "dateAx":
			chart.XAxisTitle = el.Title.text()
		case "valAx":
			chart.YAxisTitle = el.Title.text()
		}
	}
	if chart.ChartType == "" {
		chart.ChartType = "unknown"
	}
	return chart
}
