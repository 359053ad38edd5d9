package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteTable writes t to w as an aligned text table with an upper-case
// header row.
func WriteTable(w io.Writer, t *Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = strings.ToUpper(c)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}

	for _, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			v, ok := row[col]
			if !ok {
				cells[i] = ""
				continue
			}
			cells[i] = FormatCell(v)
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}
