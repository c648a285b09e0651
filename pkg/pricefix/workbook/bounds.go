package workbook

// lastPopulatedRow returns the 1-based index of the last row holding a
// non-empty cell, or 0 when every row is blank.
//
// GetRows may return trailing rows whose cells are all empty strings (styled
// but valueless cells), so the slice length alone is not enough.
func lastPopulatedRow(rows [][]string) int {
	for rowIdx := len(rows) - 1; rowIdx >= 0; rowIdx-- {
		for _, cell := range rows[rowIdx] {
			if cell != "" {
				return rowIdx + 1
			}
		}
	}
	return 0
}
