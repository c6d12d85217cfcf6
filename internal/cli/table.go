package cli

import "strings"

// Table is a simple column-aligned text table used for verbose palette
// listings.
type Table struct {
	headers []string
	rows    [][]string
	padding int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		padding: 2,
	}
}

// AddRow adds a row to the table. Short rows are padded to the header count,
// long rows truncated.
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// Render formats the table as a string with a header separator line.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var b strings.Builder

	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = padRight(cell, widths[i])
		}
		b.WriteString(strings.Join(parts, gap))
		b.WriteString("\n")
	}

	writeRow(t.headers)
	sep := make([]string, len(t.headers))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range t.rows {
		writeRow(row)
	}

	return b.String()
}

// padRight pads a string with spaces on the right to reach the desired
// width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
