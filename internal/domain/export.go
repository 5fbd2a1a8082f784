package domain

import (
	"bytes"
	"encoding/csv"
)

// ExportFileName is the default name of the exported file
const ExportFileName = "diary.csv"

// ExportColumns returns the export header: the schema's fields in order,
// followed by any columns of the record set the schema does not declare.
func ExportColumns(set RecordSet, schema Schema) []string {
	cols := schema.Header()
	declared := NewFieldSet(cols...)
	for _, c := range set.Columns {
		if !declared.Has(c) {
			cols = append(cols, c)
			declared[c] = struct{}{}
		}
	}
	return cols
}

// ExportCSV serializes the record set as UTF-8 comma-separated text, header
// first. Columns absent from the sheet are written as empty cells.
func ExportCSV(set RecordSet, schema Schema) []byte {
	cols := ExportColumns(set, schema)
	idx := make([]int, len(cols))
	for i, c := range cols {
		idx[i] = set.Column(c)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	// Writes to a bytes.Buffer cannot fail.
	_ = w.Write(cols)
	row := make([]string, len(cols))
	for _, rec := range set.Records {
		for i, j := range idx {
			row[i] = ""
			if j >= 0 && j < len(rec) {
				row[i] = rec[j].String()
			}
		}
		_ = w.Write(row)
	}
	w.Flush()
	return buf.Bytes()
}

// WriteRowsCSV serializes raw rows, used to save rows a failed rewrite did not store
func WriteRowsCSV(header []string, rows []Row) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if len(header) > 0 {
		_ = w.Write(header)
	}
	for _, r := range rows {
		_ = w.Write(r)
	}
	w.Flush()
	return buf.Bytes()
}
