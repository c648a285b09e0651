package models

// ChartSeries is one data series of a chart.
type ChartSeries struct {
	// Values is the range reference of the plotted values.
	Values string `json:"values"`
}

// Chart describes a chart attached to a sheet.
type Chart struct {
	// ChartType is the chart kind (e.g., Bar, Line).
	ChartType string `json:"chart_type"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// XAxisTitle is the category axis title.
	XAxisTitle string `json:"x_axis_title,omitempty"`
	// YAxisTitle is the value axis title.
	YAxisTitle string `json:"y_axis_title,omitempty"`
	// Anchor is the top-left cell the chart is attached to (e.g., G2).
	Anchor string `json:"anchor,omitempty"`
	// Series is the list of series included in the chart.
	Series []ChartSeries `json:"series"`
}
