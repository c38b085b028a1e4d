package importer

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnsupported indicates a source format no reader accepts.
var ErrUnsupported = errors.New("unsupported source format")

// Unit is one dataset produced by an import: a CSV file or a workbook sheet.
type Unit struct {
	// Name is the dataset name the unit is registered under.
	Name string
	// Sheet is the workbook sheet the unit came from; empty for CSV sources.
	Sheet string
	// Rows holds stringified sheet values. Nil means SourcePath is copied verbatim.
	Rows       [][]string
	SourcePath string
}

// Reader turns a source file into import units.
type Reader interface {
	CanRead(path string) bool
	Units(path string) ([]Unit, error)
}

var readers []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	readers = append(readers, r)
}

// ReadUnits selects a reader based on the file extension.
func ReadUnits(path string) ([]Unit, error) {
	for _, r := range readers {
		if r.CanRead(path) {
			return r.Units(path)
		}
	}
	return nil, ErrUnsupported
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
	Register(xlsReader{})
}

// baseName is the file name without directory or extension.
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func hasExt(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// sheetUnitName derives a dataset name for a workbook sheet.
func sheetUnitName(sheet, path string) string {
	return sheet + "_" + baseName(path)
}

// padRows right-pads every row to the widest row so each sheet is written as a
// rectangle.
func padRows(rows [][]string) [][]string {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		if len(r) == width {
			out[i] = r
			continue
		}
		row := make([]string, width)
		copy(row, r)
		out[i] = row
	}
	return out
}
