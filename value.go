package fulltext

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════════
// DOCUMENTS
// ═══════════════════════════════════════════════════════════════════════════════
// A document is either a primitive (string, number, boolean) or a composite
// (object or array) holding further documents. Value is a closed variant over
// those kinds so that indexing, traversal and verification can switch on
// Kind exhaustively instead of probing Go types at runtime.
//
//	Object(
//	    Field{"user", Object(
//	        Field{"name", String("Alice")},
//	        Field{"age",  Number(30)},
//	    )},
//	)
//
// Objects keep their fields in insertion order. That order decides the order
// leaves are visited in, nothing else.
// ═══════════════════════════════════════════════════════════════════════════════

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is an immutable document or document fragment.
// The zero Value is null.
type Value struct {
	kind   Kind
	str    string
	num    float64
	b      bool
	fields []Field
	items  []Value
}

// Field is one key/value entry of an object.
type Field struct {
	Key   string
	Value Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Object returns an object value with fields in the given order.
func Object(fields ...Field) Value {
	return Value{kind: KindObject, fields: fields}
}

// Array returns an array value.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: items}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsPrimitive reports whether v is a string, number or boolean.
func (v Value) IsPrimitive() bool {
	switch v.kind {
	case KindString, KindNumber, KindBool:
		return true
	default:
		return false
	}
}

// IsComposite reports whether v is an object or an array.
func (v Value) IsComposite() bool {
	return v.kind == KindObject || v.kind == KindArray
}

// Str returns the string payload, or "" when v is not a string.
func (v Value) Str() string { return v.str }

// Num returns the numeric payload, or 0 when v is not a number.
func (v Value) Num() float64 { return v.num }

// Truth returns the boolean payload, or false when v is not a boolean.
func (v Value) Truth() bool { return v.b }

// Fields returns the fields of an object in order.
func (v Value) Fields() []Field { return v.fields }

// Items returns the elements of an array.
func (v Value) Items() []Value { return v.items }

// Lookup returns the value stored under key in an object.
func (v Value) Lookup(key string) (Value, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Text returns the textual form of a primitive that gets shingled.
// Numbers use the shortest decimal representation ("30", "1.5", "-2e-07"),
// booleans are "true" or "false". Composites and null yield "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if f == 0 {
		// Covers negative zero.
		return "0"
	}
	abs := math.Abs(f)
	if abs < 1e-6 || abs >= 1e21 {
		// strconv pads the exponent to two digits: 1e-07 becomes 1e-7.
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Interface converts v back into plain Go values: string, float64, bool,
// nil, map[string]any and []any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindObject:
		m := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			m[f.Key] = f.Value.Interface()
		}
		return m
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes objects with their fields in insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindObject:
		buf := []byte{'{'}
		for i, f := range v.fields {
			if i > 0 {
				buf = append(buf, ',')
			}
			key, err := json.Marshal(f.Key)
			if err != nil {
				return nil, err
			}
			val, err := f.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(buf, key...)
			buf = append(buf, ':')
			buf = append(buf, val...)
		}
		return append(buf, '}'), nil
	case KindArray:
		buf := []byte{'['}
		for i, item := range v.items {
			if i > 0 {
				buf = append(buf, ',')
			}
			val, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(buf, val...)
		}
		return append(buf, ']'), nil
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return json.Marshal(formatNumber(v.num))
		}
		return json.Marshal(v.num)
	default:
		return json.Marshal(v.Interface())
	}
}

// FromAny converts a plain Go value into a Value. Map keys are sorted so the
// result does not depend on map iteration order.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: number %q: %v", ErrUnsupportedValue, t.String(), err)
		}
		return Number(f), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, 0, len(keys))
		for _, k := range keys {
			fv, err := FromAny(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("field %q: %w", k, err)
			}
			fields = append(fields, Field{Key: k, Value: fv})
		}
		return Object(fields...), nil
	case []any:
		items := make([]Value, 0, len(t))
		for i, e := range t {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			items = append(items, ev)
		}
		return Array(items...), nil
	case []string:
		items := make([]Value, len(t))
		for i, s := range t {
			items[i] = String(s)
		}
		return Array(items...), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, x)
	}
}

// MustFromAny is like FromAny but panics on unsupported input.
func MustFromAny(x any) Value {
	v, err := FromAny(x)
	if err != nil {
		panic(err)
	}
	return v
}
