package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(path string) bool { return hasExt(path, ".xlsx", ".xlsm") }

// Units reads every sheet of the workbook using the cells' formatted values.
func (xlsxReader) Units(path string) ([]Unit, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	var units []Unit
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		units = append(units, Unit{
			Name:       sheetUnitName(sheet, path),
			Sheet:      sheet,
			Rows:       padRows(rows),
			SourcePath: path,
		})
	}
	return units, nil
}
