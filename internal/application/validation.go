package application

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"nikki/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", fieldName),
		}
	}
	return nil
}

// ValidateValue checks one form value against its field, applying the same
// constraints the entry form widgets enforce. Empty values are accepted for
// every field but the key.
func ValidateValue(f domain.Field, value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		if f.Type == domain.FieldDate {
			return ValidateRequired(f.Name, v)
		}
		return nil
	}

	invalid := func(format string, args ...any) error {
		return &ValidationError{Field: f.Name, Message: fmt.Sprintf(format, args...)}
	}

	switch f.Type {
	case domain.FieldDate:
		if _, ok := domain.ParseDate(v); !ok {
			return invalid("expected a date (YYYY-MM-DD), got: %s", v)
		}
	case domain.FieldInt:
		if _, err := strconv.Atoi(v); err != nil {
			return invalid("expected a whole number, got: %s", v)
		}
	case domain.FieldBoundedInt:
		n, err := strconv.Atoi(v)
		if err != nil {
			return invalid("expected a whole number, got: %s", v)
		}
		if n < f.Min || n > f.Max {
			return invalid("must be between %d and %d", f.Min, f.Max)
		}
	case domain.FieldMinutes:
		n, err := strconv.Atoi(v)
		if err != nil {
			return invalid("expected minutes, got: %s", v)
		}
		if n < 0 {
			return invalid("minutes cannot be negative")
		}
	case domain.FieldFloat:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return invalid("expected a number, got: %s", v)
		}
	case domain.FieldTime:
		if _, err := time.Parse(domain.TimeLayout, v); err != nil {
			return invalid("expected a time (HH:MM), got: %s", v)
		}
	case domain.FieldFlag:
		if v != "0" && v != "1" {
			return invalid("expected 0 or 1, got: %s", v)
		}
	case domain.FieldEnum:
		if !slices.Contains(f.Options, v) {
			return invalid("unknown option: %s", v)
		}
	}
	return nil
}

// NormalizeEntry validates values against schema and returns the row to
// append: dates canonicalized, whitespace trimmed, and the row padded to the
// schema width. Extra values are rejected.
func NormalizeEntry(schema domain.Schema, values []string) (domain.Row, error) {
	if len(values) > len(schema.Fields) {
		return nil, &ValidationError{
			Field:   "values",
			Message: fmt.Sprintf("got %d values for %d fields", len(values), len(schema.Fields)),
		}
	}

	row := make(domain.Row, len(schema.Fields))
	for i, f := range schema.Fields {
		v := ""
		if i < len(values) {
			v = strings.TrimSpace(values[i])
		}
		if v == "" {
			v = f.Default
		}
		if err := ValidateValue(f, v); err != nil {
			return nil, err
		}
		if f.Type == domain.FieldDate {
			v = domain.CanonicalDate(v)
		}
		row[i] = v
	}
	return row, nil
}
