package domain

import "strconv"

// Kind discriminates the cases of Value
type Kind int

const (
	KindMissing Kind = iota
	KindNumber
	KindInt
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNumber:
		return "number"
	case KindInt:
		return "int"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is a coerced cell. The zero Value is Missing.
type Value struct {
	kind Kind
	num  float64
	i    int64
	text string
}

// Missing returns the missing-value case
func Missing() Value { return Value{} }

// Number returns a numeric value
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int returns an integer value
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Text returns an opaque text value
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Kind returns which case v holds
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v is the missing case
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric payload; ok is false unless v is a Number or Int
func (v Value) Float() (f float64, ok bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// Integer returns the integer payload; ok is false unless v is an Int
func (v Value) Integer() (i int64, ok bool) {
	if v.kind == KindInt {
		return v.i, true
	}
	return 0, false
}

// String renders v as cell text. Missing renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindText:
		return v.text
	default:
		return ""
	}
}
