package importer

import (
	"fmt"

	"github.com/extrame/xls"
)

type xlsReader struct{}

func (xlsReader) CanRead(path string) bool { return hasExt(path, ".xls") }

// Units reads every sheet of a legacy BIFF workbook.
func (xlsReader) Units(path string) ([]Unit, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	var units []Unit
	for i := 0; i < wb.NumSheets(); i++ {
		sh := wb.GetSheet(i)
		if sh == nil {
			continue
		}
		rows := make([][]string, 0, int(sh.MaxRow)+1)
		for r := 0; r <= int(sh.MaxRow); r++ {
			row := sh.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, row.LastCol())
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				cells[c] = row.Col(c)
			}
			rows = append(rows, cells)
		}
		units = append(units, Unit{
			Name:       sheetUnitName(sh.Name, path),
			Sheet:      sh.Name,
			Rows:       padRows(rows),
			SourcePath: path,
		})
	}
	return units, nil
}
