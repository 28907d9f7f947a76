package sheet

import (
	"fmt"
	"io"

	"github.com/extrame/xls"
)

// readXLS parses a legacy binary workbook and returns the cell rows of
// the first sheet. Rows absent from the file come back as empty slices
// so the caller sees the same shape as the xlsx path.
func readXLS(rs io.ReadSeeker) ([][]string, error) {
	wb, err := xls.OpenReader(rs, "utf-8")
	if err != nil {
		return nil, err
	}
	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows := make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		last := row.LastCol()
		if last < 0 {
			last = 0
		}
		cells := make([]string, 0, last+1)
		for j := 0; j <= last; j++ {
			cells = append(cells, row.Col(j))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
