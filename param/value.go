package param

import (
	"fmt"
	"strconv"

	"golang.org/x/exp/constraints"
)

//////
// Const, vars, types.
//////

// Kind discriminates the dynamic type carried by a Value.
type Kind uint8

const (
	// KindString marks a Value holding a label (categorical or substance).
	KindString Kind = iota

	// KindFloat marks a Value holding a numeric level.
	KindFloat
)

// Value is one cell of the experimental representation: the raw domain value
// of a single parameter within a single configuration. It is a closed
// two-variant type (string or float64) so that rows can be compared, hashed
// and ordered deterministically without reflection.
//
// Values are comparable and therefore usable as map keys, which is what the
// per-parameter encoding caches rely on.
//
// Usage example:
//
//	v := param.String("water")
//	w := param.Float(1.3)
//
//	if v.Kind() == param.KindString {
//	    fmt.Println(v.Str())
//	}
type Value struct {
	kind Kind
	str  string
	num  float64
}

//////
// Factories.
//////

// String returns a Value carrying a label.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Float returns a Value carrying a numeric level.
func Float(f float64) Value {
	return Value{kind: KindFloat, num: f}
}

// Number converts any integer or float into a numeric Value. Integers
// convert exactly, so the same input always produces the same Value.
func Number[T constraints.Integer | constraints.Float](n T) Value {
	return Float(float64(n))
}

// Numbers converts a slice of any integer or float type into numeric Values,
// preserving order. It is the usual way to declare a numeric-discrete domain:
//
//	concentration, err := param.NewNumericDiscrete(
//	    "Concentration",
//	    []float64{1, 2, 5, 10},
//	    0.4,
//	)
//
// or, through a search-space row, to express measured raw values.
func Numbers[T constraints.Integer | constraints.Float](ns ...T) []Value {
	vs := make([]Value, len(ns))
	for i, n := range ns {
		vs[i] = Float(float64(n))
	}

	return vs
}

// Strings converts a slice of labels into string Values, preserving order.
func Strings(ss ...string) []Value {
	vs := make([]Value, len(ss))
	for i, s := range ss {
		vs[i] = String(s)
	}

	return vs
}

// FromInterface converts a plain document primitive (string, numeric, as
// produced by JSON/YAML decoding) into a Value. Any other dynamic type is
// rejected with an error naming the offending type.
func FromInterface(x any) (Value, error) {
	switch t := x.(type) {
	case string:
		return String(t), nil
	case float64:
		return Float(t), nil
	case float32:
		return Float(float64(t)), nil
	case int:
		return Float(float64(t)), nil
	case int32:
		return Float(float64(t)), nil
	case int64:
		return Float(float64(t)), nil
	case uint64:
		return Float(float64(t)), nil
	case Value:
		return t, nil
	default:
		return Value{}, fmt.Errorf("param: unsupported value type %T", x)
	}
}

//////
// Methods.
//////

// Kind reports which variant the Value carries.
func (v Value) Kind() Kind { return v.kind }

// Str returns the label of a KindString Value. For numeric Values it returns
// the empty string.
func (v Value) Str() string { return v.str }

// Float returns the numeric level of a KindFloat Value. For string Values it
// returns 0.
func (v Value) Float() float64 { return v.num }

// Interface returns the plain primitive (string or float64) for document
// encoding.
func (v Value) Interface() any {
	if v.kind == KindString {
		return v.str
	}

	return v.num
}

// Canonical returns the canonical text form used for row hashing and
// deduplication. The form is stable across runs: strings are prefixed with
// "s:", numbers with "f:" followed by the shortest round-tripping decimal
// representation.
func (v Value) Canonical() string {
	if v.kind == KindString {
		return "s:" + v.str
	}

	return "f:" + strconv.FormatFloat(v.num, 'g', -1, 64)
}

// String implements fmt.Stringer with a human-readable rendering.
func (v Value) String() string {
	if v.kind == KindString {
		return v.str
	}

	return strconv.FormatFloat(v.num, 'g', -1, 64)
}

// Less imposes a deterministic total order on Values: numeric Values sort
// before string Values, numbers sort numerically, strings lexicographically.
func Less(a, b Value) bool {
	if a.kind != b.kind {
		return a.kind == KindFloat
	}

	if a.kind == KindFloat {
		return a.num < b.num
	}

	return a.str < b.str
}
