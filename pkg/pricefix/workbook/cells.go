package workbook

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/pricefix-go/pkg/pricefix/models"
	"github.com/xuri/excelize/v2"
)

// storedCell is what a worksheet holds for one cell.
type storedCell struct {
	raw       string // stored value
	shown     string // value rendered with the cell's number format
	cellType  excelize.CellType
	formula   string
	numFmt    int    // built-in number format id
	customFmt string // custom number format code, if any
}

// classifyCell turns a stored cell into a models.Value.
//
// Number cells are stored either with t="n" or without a type attribute, so
// both are parsed as numbers unless their number format displays them as a
// date or time. Strings, booleans, errors and ISO dates keep their text. A
// cell with a formula is text regardless of its cached result.
func classifyCell(c storedCell) models.Value {
	if c.formula != "" {
		return models.Text("=" + c.formula)
	}
	if c.raw == "" {
		return models.Empty()
	}
	switch c.cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		f, ok := parseNumber(c.raw)
		if !ok {
			break
		}
		if isDateFormat(c.numFmt, c.customFmt) {
			if c.shown != "" {
				return models.Text(c.shown)
			}
			break
		}
		return models.Numeric(f)
	}
	return models.Text(c.raw)
}

// parseNumber attempts to parse a stored value as a number.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isDateFormat reports whether a number format renders serials as dates,
// times or durations.
func isDateFormat(numFmt int, customFmt string) bool {
	if customFmt != "" {
		return hasDateTokens(customFmt)
	}
	return (numFmt >= 14 && numFmt <= 22) || (numFmt >= 45 && numFmt <= 47)
}

// hasDateTokens looks for d, m, y, h or s outside quoted literals, escaped
// characters and bracketed sections. Elapsed-time brackets like [h] count.
func hasDateTokens(code string) bool {
	var inQuote, inBracket bool
	var bracket strings.Builder
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			inQuote = ch != '"'
		case inBracket:
			if ch != ']' {
				bracket.WriteByte(ch)
				continue
			}
			inBracket = false
			if s := strings.ToLower(bracket.String()); s != "" && strings.Trim(s, "hms") == "" {
				return true
			}
			bracket.Reset()
		case ch == '"':
			inQuote = true
		case ch == '[':
			inBracket = true
		case ch == '\\', ch == '_', ch == '*':
			i++
		default:
			switch ch | 0x20 {
			case 'd', 'm', 'y', 'h', 's':
				return true
			}
		}
	}
	return false
}
