package pricefix

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type logEntry struct {
	level string
	msg   string
	args  []any
}

// attr returns the value logged under key, or nil.
func (e logEntry) attr(key string) any {
	for i := 0; i+1 < len(e.args); i += 2 {
		if k, ok := e.args[i].(string); ok && k == key {
			return e.args[i+1]
		}
	}
	return nil
}

func (e logEntry) String() string {
	return fmt.Sprintf("%s %s %v", e.level, e.msg, e.args)
}

// recorder is a Logger that keeps every message.
type recorder struct {
	entries []logEntry
}

func (r *recorder) add(level, msg string, args []any) {
	r.entries = append(r.entries, logEntry{level: level, msg: msg, args: args})
}

func (r *recorder) Debug(msg string, args ...any) { r.add("DEBUG", msg, args) }
func (r *recorder) Info(msg string, args ...any) { r.add("INFO", msg, args) }
func (r *recorder) Warn(msg string, args ...any) { r.add("WARN", msg, args) }
func (r *recorder) Error(msg string, args ...any) { r.add("ERROR", msg, args) }

func (r *recorder) level(level string) []logEntry {
	var out []logEntry
	for _, e := range r.entries {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) contains(level, substr string) bool {
	for _, e := range r.level(level) {
		if strings.Contains(e.String(), substr) {
			return true
		}
	}
	return false
}

// createWorkbook writes rows starting at A1 of sheet into a new xlsx file.
// A nil value leaves its cell unset.
func createWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	path := filepath.Join(t.TempDir(), "transactions.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// scenarioRows is the header plus three products, the second with an
// unusable price.
func scenarioRows() [][]any {
	return [][]any{
		{"transaction_id", "product_id", "price", "corrected_price"},
		{1001, "P1", 100},
		{1002, "P2", "n/a"},
		{1003, "P3", 50},
	}
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}

func cellValue(t *testing.T, path, sheet, cell string) string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	return v
}
