// Package value implements the runtime value domain: the tagged union
// Nil | Boolean | Number | String that every expression evaluates to.
package value

import (
	"math"
	"strconv"
)

// Kind tags which alternative of Value is populated.
type Kind int

const (
	KindNil Kind = iota
	KindBoolean
	KindNumber
	KindString
)

// Value is the dynamically-typed runtime value domain. Exactly the field
// matching Kind is meaningful.
type Value struct {
	Kind Kind
	Bool bool
	Num  float64
	Str  string
}

// Nil is the single nil value.
var Nil = Value{Kind: KindNil}

// Bool wraps a boolean into a Value.
func Bool(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// Number wraps a float64 into a Value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// String wraps a string into a Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Truthy implements the language's truthiness rule: Nil is false,
// Boolean(b) is b, every other value is true (including 0 and "").
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBoolean:
		return v.Bool
	default:
		return true
	}
}

// Equal implements value-equality: same-variant structural equality;
// cross-variant comparisons are never equal (except Nil == Nil). Numbers
// compare by IEEE-754 equality, so NaN != NaN.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNil:
		return true
	case KindBoolean:
		return v.Bool == other.Bool
	case KindNumber:
		return v.Num == other.Num
	case KindString:
		return v.Str == other.Str
	default:
		return false
	}
}

// String returns the canonical printable form of v: the representation
// the print statement writes and the one callers see when a Value is
// interpolated into a diagnostic.
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.Num)
	case KindString:
		return v.Str
	default:
		return "<invalid value>"
	}
}

// TypeName returns the name of v's runtime type, used in runtime error
// messages ("invalid expression: String + Number").
func (v Value) TypeName() string {
	switch v.Kind {
	case KindNil:
		return "Nil"
	case KindBoolean:
		return "Boolean"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	default:
		return "?"
	}
}

// formatNumber renders a float64 in its shortest round-trip decimal form,
// printing integer-valued numbers without a trailing ".0".
func formatNumber(n float64) string {
	if math.IsInf(n, 1) {
		return "inf"
	}
	if math.IsInf(n, -1) {
		return "-inf"
	}
	if math.IsNaN(n) {
		return "nan"
	}
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
