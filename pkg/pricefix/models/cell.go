// Package models defines data structures shared by the workbook reader and the pipeline.
package models

import "strconv"

// Kind is the kind of value held by a cell.
type Kind int

const (
	// KindEmpty is an unset cell or one holding an empty string.
	KindEmpty Kind = iota
	// KindNumeric is an integer or floating-point number.
	KindNumeric
	// KindText is anything else: strings, booleans, errors, dates and formulas.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is the content of a single cell.
type Value struct {
	// Kind selects which of Number or Text is meaningful.
	Kind Kind `json:"kind"`
	// Number is set for KindNumeric.
	Number float64 `json:"number,omitempty"`
	// Text is set for KindText.
	Text string `json:"text,omitempty"`
}

// Empty returns an empty cell value.
func Empty() Value { return Value{Kind: KindEmpty} }

// Numeric returns a numeric cell value.
func Numeric(f float64) Value { return Value{Kind: KindNumeric, Number: f} }

// Text returns a text cell value.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

func (v Value) String() string {
	switch v.Kind {
	case KindNumeric:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindText:
		return strconv.Quote(v.Text)
	}
	return "<empty>"
}
