// Package block implements the blocks that can be attached to a step:
// data tables and free text.
package block

import (
	"iter"
	"strings"

	messages "github.com/cucumber/messages/go/v21"
)

// Row represents a single row in a Table.
type Row struct {
	cells   []string
	headers []string // reference to the table's header row (first row values)
}

// Get returns the cell value by column header name (case-insensitive).
// Returns an empty string if the column is not found or the row has fewer cells.
func (r Row) Get(col string) string {
	for i, h := range r.headers {
		if strings.EqualFold(h, col) {
			if i < len(r.cells) {
				return r.cells[i]
			}
			return ""
		}
	}
	return ""
}

// Cell returns the cell value by column index (0-based).
// Returns an empty string if the index is out of range.
func (r Row) Cell(index int) string {
	if index < 0 || index >= len(r.cells) {
		return ""
	}
	return r.cells[index]
}

// Values returns all cell values in order.
func (r Row) Values() []string {
	cp := make([]string, len(r.cells))
	copy(cp, r.cells)
	return cp
}

// Len returns the number of cells in the row.
func (r Row) Len() int {
	return len(r.cells)
}

// Table is a data table attached to a step. The first row holds the
// column headers.
type Table struct {
	headers []string
	rows    []Row
}

// NewTable creates a Table from raw string data.
// The first row is used as column headers for Get() lookups.
func NewTable(data [][]string) Table {
	if len(data) == 0 {
		return Table{}
	}

	headers := make([]string, len(data[0]))
	copy(headers, data[0])

	rows := make([]Row, len(data))
	for i, cells := range data {
		cellsCopy := make([]string, len(cells))
		copy(cellsCopy, cells)
		rows[i] = Row{
			cells:   cellsCopy,
			headers: headers,
		}
	}

	return Table{
		headers: headers,
		rows:    rows,
	}
}

// NewTableFromDataTable creates a Table from a Gherkin DataTable message.
func NewTableFromDataTable(dt *messages.DataTable) Table {
	if dt == nil || len(dt.Rows) == 0 {
		return Table{}
	}

	data := make([][]string, len(dt.Rows))
	for i, row := range dt.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.Value
		}
		data[i] = cells
	}

	return NewTable(data)
}

// IsRow reports whether a trimmed line is a table row ("| a | b |").
func IsRow(line string) bool {
	return strings.HasPrefix(line, "|")
}

// ParseRow splits a "| a | b |" line into trimmed cells.
func ParseRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// Headers returns the column headers (values from the first row).
func (t Table) Headers() []string {
	cp := make([]string, len(t.headers))
	copy(cp, t.headers)
	return cp
}

// Len returns the total number of rows (including the header row).
func (t Table) Len() int {
	return len(t.rows)
}

// All returns an iterator over all rows (including the header row).
// The index is 0-based.
func (t Table) All() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i, row := range t.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

// SkipHeader returns an iterator over data rows only (skips the first row).
// The index is 0-based starting from the first data row.
// Row.Get(col) uses the skipped header row for column name lookups.
//
// Usage:
//
//	for i, row := range table.SkipHeader() {
//	    name := row.Get("name")
//	    fmt.Println(i, name)
//	}
func (t Table) SkipHeader() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i := 1; i < len(t.rows); i++ {
			if !yield(i-1, t.rows[i]) {
				return
			}
		}
	}
}

// Format renders the table with aligned columns, one indented row per line.
func (t Table) Format() string {
	if len(t.rows) == 0 {
		return ""
	}

	widths := make([]int, 0)
	for _, row := range t.rows {
		for i, cell := range row.cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], len(cell))
		}
	}

	var b strings.Builder
	for _, row := range t.rows {
		b.WriteString(Indent)
		b.WriteString("|")
		for i, cell := range row.cells {
			b.WriteString(" ")
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// SuggestedParameterType is the type a step definition declares to receive the table.
func (t Table) SuggestedParameterType() string {
	return "block.Table"
}

// SuggestedParameterName is the parameter name used in generated stubs.
func (t Table) SuggestedParameterName() string {
	return "table"
}

// Value returns the table itself; it is what step definitions receive.
func (t Table) Value() any {
	return t
}
