package domain

import (
	"fmt"
	"strings"
)

// Row is one sheet row as raw text
type Row []string

// IsBlank reports whether every cell is empty
func (r Row) IsBlank() bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Fit pads or truncates the row to width cells
func (r Row) Fit(width int) Row {
	out := make(Row, width)
	copy(out, r)
	return out
}

// Table is the raw content of a sheet: a header and its data rows
type Table struct {
	Header []string
	Rows   []Row
}

// NewTable builds a table from the raw rows of a sheet.
//
// Row 0 is reserved for the header. When it is missing or blank the schema's
// field names are used instead. Blank data rows are dropped. Rows longer than
// the header widen it (see widenHeader), so no non-empty cell is cut off;
// shorter rows are padded.
func NewTable(raw []Row, schema Schema) Table {
	header := schema.Header()
	var data []Row
	if len(raw) > 0 {
		if !raw[0].IsBlank() {
			header = trimTrailingEmpty(raw[0])
		}
		data = raw[1:]
	}

	width := len(header)
	for _, r := range data {
		if n := len(trimTrailingEmpty(r)); n > width {
			width = n
		}
	}
	header = widenHeader(header, width, schema)

	t := Table{Header: header, Rows: make([]Row, 0, len(data))}
	for _, r := range data {
		if r.IsBlank() {
			continue
		}
		t.Rows = append(t.Rows, r.Fit(len(header)))
	}
	return t
}

// DataRows returns the non-blank rows below the header exactly as stored
func DataRows(raw []Row) []Row {
	if len(raw) == 0 {
		return nil
	}
	out := make([]Row, 0, len(raw)-1)
	for _, r := range raw[1:] {
		if !r.IsBlank() {
			out = append(out, r)
		}
	}
	return out
}

// widenHeader names the columns between the end of header and width. A
// position takes the schema field name at the same index when that name is
// not already a column, otherwise "column N".
func widenHeader(header []string, width int, schema Schema) []string {
	if width <= len(header) {
		return header
	}
	out := make([]string, len(header), width)
	copy(out, header)
	used := make(map[string]bool, width)
	for _, h := range header {
		used[h] = true
	}
	for i := len(header); i < width; i++ {
		name := fmt.Sprintf("column %d", i+1)
		if i < len(schema.Fields) && !used[schema.Fields[i].Name] {
			name = schema.Fields[i].Name
		}
		used[name] = true
		out = append(out, name)
	}
	return out
}

// Column returns the index of the named column, or -1
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Empty reports whether the table has no data rows
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

func trimTrailingEmpty(r Row) []string {
	end := len(r)
	for end > 0 && strings.TrimSpace(r[end-1]) == "" {
		end--
	}
	out := make([]string, end)
	copy(out, r[:end])
	return out
}
