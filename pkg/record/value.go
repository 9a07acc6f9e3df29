// Package record defines the dynamically-typed scalar value and the
// record (field name -> value) data model shared by every operator.
package record

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies the dynamic type carried by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
)

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a dynamically-typed scalar drawn from
// {null, boolean, integer, floating-point, string}.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a floating-point number.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Of converts a plain Go value (as produced by encoding/json decoding, or
// handed to a mapper/folder/reducer callback) into a Value. Supported inputs
// are nil, an existing Value, bool, string, int, int64, float32, float64 and
// json.Number; json.Number and float64 are both accepted since encoding/json
// decodes JSON numbers as float64 by default. Any other type, including
// other integer widths, is an error.
func Of(v interface{}) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("record: invalid number %q: %w", x, err)
		}
		return Float(f), nil
	default:
		return Value{}, fmt.Errorf("record: unsupported value type %T", v)
	}
}

// Kind reports the dynamic type of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload and whether the value was a boolean.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Int returns the integer payload and whether the value was an integer.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Float returns the value as a float64, converting integers. The second
// return reports whether the value is numeric at all.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// String returns the string payload and whether the value was a string.
func (v Value) String() (string, bool) { return v.s, v.kind == KindString }

// Raw returns the value as a plain Go interface{}, suitable for handing to
// a JSON encoder or a user callback.
func (v Value) Raw() interface{} {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	default:
		return nil
	}
}

// kindRank implements the inter-kind ordering: null < boolean < number < string.
func kindRank(k Kind) int {
	switch k {
	case KindNull:
		return 0
	case KindBool:
		return 1
	case KindInt, KindFloat:
		return 2
	case KindString:
		return 3
	default:
		return 4
	}
}

// Compare orders two values using the inter-kind ordering
// (null < boolean < number < string) and natural order within a kind.
// Integers and floats compare numerically regardless of their exact kind.
func Compare(a, b Value) int {
	ra, rb := kindRank(a.kind), kindRank(b.kind)
	if ra != rb {
		return ra - rb
	}

	switch ra {
	case 0: // both null
		return 0
	case 1: // both bool
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case 2: // both numeric
		af, _ := a.Float()
		bf, _ := b.Float()
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	default: // both string
		return strings.Compare(a.s, b.s)
	}
}

// Equal reports whether two values are equal under Compare.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }
