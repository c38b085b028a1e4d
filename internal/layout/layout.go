// Package layout turns dataset rows into positioned cells for display.
package layout

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultThreshold is how far above its column average a field must run to span.
	DefaultThreshold = 8
	// DefaultSpan is the number of display columns a spanning cell covers.
	DefaultSpan = 4
)

// Policy decides when a cell spans several display columns.
type Policy struct {
	Threshold int
	Span      int
}

// DefaultPolicy returns the stock span policy.
func DefaultPolicy() Policy {
	return Policy{Threshold: DefaultThreshold, Span: DefaultSpan}
}

func (p Policy) span() int {
	if p.Span < 1 {
		return 1
	}
	return p.Span
}

// Cell is one non-empty field placed at its source row and column.
type Cell struct {
	Row  int
	Col  int
	Span int
	Text string
}

// Result is a full rendering of a dataset. Rows and Cols describe the extent of
// the source grid, not the number of rows that produced cells.
type Result struct {
	Cells []Cell
	Rows  int
	Cols  int
}

// Grid is column-major: Grid[col][row].
type Grid [][]string

// Transpose converts rows into columns, padding short rows with "".
func Transpose(rows [][]string) Grid {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	g := make(Grid, width)
	for c := range g {
		col := make([]string, len(rows))
		for r, row := range rows {
			if c < len(row) {
				col[r] = row[c]
			}
		}
		g[c] = col
	}
	return g
}

// Averages returns the mean length of the non-empty fields of every column.
// ok[c] is false when column c holds no non-empty field.
func (g Grid) Averages() (avg []float64, ok []bool) {
	avg = make([]float64, len(g))
	ok = make([]bool, len(g))
	for c, col := range g {
		total, n := 0, 0
		for _, f := range col {
			if f == "" {
				continue
			}
			total += fieldLen(f)
			n++
		}
		if n > 0 {
			avg[c] = float64(total) / float64(n)
			ok[c] = true
		}
	}
	return avg, ok
}

// Compute lays out every non-empty cell of rows, marking fields that run at
// least p.Threshold characters past their column average as spanning.
func Compute(rows [][]string, p Policy) Result {
	g := Transpose(rows)
	avg, ok := g.Averages()
	res := Result{Rows: len(rows), Cols: len(g)}
	for r := 0; r < len(rows); r++ {
		for c, col := range g {
			f := col[r]
			if f == "" {
				continue
			}
			span := 1
			if ok[c] && float64(fieldLen(f)) >= avg[c]+float64(p.Threshold) {
				span = p.span()
			}
			res.Cells = append(res.Cells, Cell{Row: r, Col: c, Span: span, Text: f})
		}
	}
	return res
}

// Filter keeps the rows whose space-joined text contains query, ignoring case.
// An empty query is the same as Compute. Matching rows keep their source index
// and are laid out one field per column without spanning.
func Filter(rows [][]string, query string, p Policy) Result {
	if query == "" {
		return Compute(rows, p)
	}
	q := strings.ToLower(query)
	res := Result{Rows: len(rows)}
	for r, row := range rows {
		if !strings.Contains(strings.ToLower(strings.Join(row, " ")), q) {
			continue
		}
		if len(row) > res.Cols {
			res.Cols = len(row)
		}
		for c, f := range row {
			if f == "" {
				continue
			}
			res.Cells = append(res.Cells, Cell{Row: r, Col: c, Span: 1, Text: f})
		}
	}
	return res
}

// MatchedRows returns the distinct row indices present in res, in order.
func (res Result) MatchedRows() []int {
	var out []int
	last := -1
	for _, c := range res.Cells {
		if c.Row != last {
			out = append(out, c.Row)
			last = c.Row
		}
	}
	return out
}

// Table rebuilds res as a dense matrix with one line per row that produced
// cells. Positions without a cell are "".
func (res Result) Table() [][]string {
	var out [][]string
	idx := map[int]int{}
	for _, c := range res.Cells {
		i, seen := idx[c.Row]
		if !seen {
			i = len(out)
			idx[c.Row] = i
			out = append(out, make([]string, res.Cols))
		}
		out[i][c.Col] = c.Text
	}
	return out
}

func fieldLen(s string) int { return utf8.RuneCountInString(s) }
