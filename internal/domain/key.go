package domain

import (
	"strings"
	"time"
)

// DateLayout is the canonical on-sheet date representation
const DateLayout = "2006-01-02"

// TimeLayout is the clock-time representation
const TimeLayout = "15:04"

var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	"2006.01.02",
	"20060102",
	time.RFC3339,
}

// CanonicalDate normalizes a date to YYYY-MM-DD. Text that is not a
// recognizable date is returned trimmed but otherwise unchanged.
func CanonicalDate(s string) string {
	s = strings.TrimSpace(s)
	if t, ok := ParseDate(s); ok {
		return t.Format(DateLayout)
	}
	return s
}

// ParseDate reads a date in any accepted layout
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SameKey reports whether two key cells name the same day
func SameKey(a, b string) bool {
	return CanonicalDate(a) == CanonicalDate(b)
}

// Today returns the current date in the canonical layout
func Today() string {
	return time.Now().Format(DateLayout)
}
