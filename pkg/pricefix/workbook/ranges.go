package workbook

import (
	"fmt"
	"strings"

	"github.com/ukaji3/pricefix-go/pkg/pricefix/models"
	"github.com/xuri/excelize/v2"
)

// FormatRange renders an absolute range reference such as 'Sheet1'!$D$2:$D$9.
func FormatRange(sheetName string, r models.CellRange) (string, error) {
	start, err := excelize.CoordinatesToCellName(r.C1, r.R1, true)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(r.C2, r.R2, true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s!%s:%s", quoteSheetName(sheetName), start, end), nil
}

func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
