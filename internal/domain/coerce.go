package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is one typed diary entry, aligned with RecordSet.Columns
type Record []Value

// RecordSet is a coerced table
type RecordSet struct {
	Columns []string
	Records []Record
}

// Column returns the index of the named column, or -1
func (s RecordSet) Column(name string) int {
	for i, c := range s.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Len returns the number of records
func (s RecordSet) Len() int {
	return len(s.Records)
}

// Strings renders each record as cell text
func (s RecordSet) Strings() [][]string {
	out := make([][]string, len(s.Records))
	for i, r := range s.Records {
		row := make([]string, len(r))
		for j, v := range r {
			row[j] = v.String()
		}
		out[i] = row
	}
	return out
}

// CoercionWarning describes a cell that could not be typed.
// It is informational only; the cell has already been replaced.
type CoercionWarning struct {
	Row    int
	Column string
	Raw    string
	Want   string
}

func (w CoercionWarning) String() string {
	return fmt.Sprintf("row %d, column %q: %q is not a valid %s", w.Row, w.Column, w.Raw, w.Want)
}

// Coerce types every cell of t. Columns in numeric become Number (or Missing
// when the text does not parse), columns in flags become Int with empty cells
// defaulting to 0, everything else stays Text. Coerce never fails: malformed
// cells are reported as warnings and never affect sibling cells.
func Coerce(t Table, numeric, flags FieldSet) (RecordSet, []CoercionWarning) {
	set := RecordSet{
		Columns: append([]string(nil), t.Header...),
		Records: make([]Record, 0, len(t.Rows)),
	}
	var warnings []CoercionWarning

	for ri, row := range t.Rows {
		rec := make(Record, len(t.Header))
		for ci, col := range t.Header {
			var raw string
			if ci < len(row) {
				raw = row[ci]
			}

			switch {
			case numeric.Has(col):
				v, ok := parseNumber(raw)
				if !ok && strings.TrimSpace(raw) != "" {
					warnings = append(warnings, CoercionWarning{Row: ri, Column: col, Raw: raw, Want: "number"})
				}
				rec[ci] = v
			case flags.Has(col):
				v, ok := parseFlag(raw)
				if !ok {
					warnings = append(warnings, CoercionWarning{Row: ri, Column: col, Raw: raw, Want: "flag"})
				}
				rec[ci] = v
			default:
				rec[ci] = Text(raw)
			}
		}
		set.Records = append(set.Records, rec)
	}
	return set, warnings
}

func parseNumber(raw string) (Value, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Missing(), false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing(), false
	}
	return Number(f), true
}

// parseFlag returns ok=false only for non-empty text it could not read
func parseFlag(raw string) (Value, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Int(0), true
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Int(int64(f)), true
	}
	if b, err := strconv.ParseBool(s); err == nil {
		if b {
			return Int(1), true
		}
		return Int(0), true
	}
	return Int(0), false
}
