package domain

import (
	"fmt"
	"strings"
)

// FieldType is the semantic type of a diary column
type FieldType string

const (
	FieldDate       FieldType = "date"
	FieldInt        FieldType = "int"
	FieldBoundedInt FieldType = "bounded_int"
	FieldEnum       FieldType = "enum"
	FieldText       FieldType = "text"
	FieldMinutes    FieldType = "minutes"
	FieldTime       FieldType = "time"
	FieldFloat      FieldType = "float"
	FieldFlag       FieldType = "flag"
)

// Valid reports whether t is a known field type
func (t FieldType) Valid() bool {
	switch t {
	case FieldDate, FieldInt, FieldBoundedInt, FieldEnum, FieldText,
		FieldMinutes, FieldTime, FieldFloat, FieldFlag:
		return true
	}
	return false
}

// Numeric reports whether cells of this type are coerced to numbers
func (t FieldType) Numeric() bool {
	switch t {
	case FieldInt, FieldBoundedInt, FieldMinutes, FieldFloat:
		return true
	}
	return false
}

// Field is one named, typed column of the diary
type Field struct {
	Name    string
	Type    FieldType
	Min     int
	Max     int
	Options []string
	Default string
}

// Schema is an ordered, versioned list of fields.
// The first field is the record key used by delete.
type Schema struct {
	Version int
	Fields  []Field
}

// Header returns the field names in order
func (s Schema) Header() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Key returns the key field. Callers must have validated the schema.
func (s Schema) Key() Field {
	return s.Fields[0]
}

// Field looks up a field by name
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// NumericFields returns the names of fields coerced to numbers
func (s Schema) NumericFields() FieldSet {
	set := FieldSet{}
	for _, f := range s.Fields {
		if f.Type.Numeric() {
			set[f.Name] = struct{}{}
		}
	}
	return set
}

// FlagFields returns the names of boolean-as-integer fields
func (s Schema) FlagFields() FieldSet {
	set := FieldSet{}
	for _, f := range s.Fields {
		if f.Type == FieldFlag {
			set[f.Name] = struct{}{}
		}
	}
	return set
}

// Coerce types a table using the sets derived from the schema's field types
func (s Schema) Coerce(t Table) (RecordSet, []CoercionWarning) {
	return Coerce(t, s.NumericFields(), s.FlagFields())
}

// Validate checks the schema is usable
func (s Schema) Validate() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema v%d has no fields", s.Version)
	}
	if s.Fields[0].Type != FieldDate {
		return fmt.Errorf("schema v%d: first field %q must be a date", s.Version, s.Fields[0].Name)
	}

	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return fmt.Errorf("schema v%d: field with empty name", s.Version)
		}
		if seen[name] {
			return fmt.Errorf("schema v%d: duplicate field %q", s.Version, name)
		}
		seen[name] = true

		if !f.Type.Valid() {
			return fmt.Errorf("schema v%d: field %q has unknown type %q", s.Version, name, f.Type)
		}
		if f.Type == FieldEnum && len(f.Options) == 0 {
			return fmt.Errorf("schema v%d: enum field %q has no options", s.Version, name)
		}
		if f.Type == FieldBoundedInt && f.Min > f.Max {
			return fmt.Errorf("schema v%d: field %q has min %d > max %d", s.Version, name, f.Min, f.Max)
		}
	}
	return nil
}

// FieldSet is a set of column names
type FieldSet map[string]struct{}

// NewFieldSet builds a set from names
func NewFieldSet(names ...string) FieldSet {
	set := make(FieldSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Has reports whether name is in the set
func (s FieldSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}
