package importer

import (
	"bufio"
	"io"
	"strings"
)

// WriteQuoted writes rows as CSV with every field quoted, comma separated and
// CRLF terminated.
func WriteQuoted(w io.Writer, rows [][]string) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for i, f := range row {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(f, `"`, `""`))
			bw.WriteByte('"')
		}
		bw.WriteString("\r\n")
	}
	return bw.Flush()
}
