package interpreter

import (
	"math"
	"strconv"
)

// Kind is the runtime type of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	}
	return "unknown"
}

// Value is a GamerScript runtime value. Only the field matching Kind is
// meaningful. The zero Value is null.
type Value struct {
	Kind Kind
	Bool bool
	Num  float64
	Str  string
}

// Null is the null value.
var Null = Value{}

func BoolValue(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func NumberValue(f float64) Value { return Value{Kind: KindNumber, Num: f} }
func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Truthy applies truthiness coercion: null is false, booleans are
// themselves, numbers are true when non-zero and strings when non-empty.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Num != 0
	case KindString:
		return v.Str != ""
	}
	return false
}

// String returns the default textual representation used by print,
// to-string and concatenation. Null renders as the empty string.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case KindNumber:
		return formatNumber(v.Num)
	case KindString:
		return v.Str
	}
	return ""
}

// Equal reports whether v and o have the same kind and the same value.
// NaN is equal to NaN so that equality stays reflexive.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.Bool == o.Bool
	case KindNumber:
		return v.Num == o.Num || (math.IsNaN(v.Num) && math.IsNaN(o.Num))
	case KindString:
		return v.Str == o.Str
	}
	return true
}

// formatNumber prints integral values without a fractional part and
// switches to exponent form outside [1e-7, 1e21).
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs < 1e-7 || abs >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
