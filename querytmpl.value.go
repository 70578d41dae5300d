package querytmpl

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueKind identifies which member of the Value union a value is.
type ValueKind int

// Value kinds
const (
	ValueKindText ValueKind = iota
	ValueKindNumber
	ValueKindList
)

// String returns the name of the value kind
func (k ValueKind) String() string {
	switch k {
	case ValueKindNumber:
		return ValueKindNameNumber
	case ValueKindList:
		return ValueKindNameList
	default:
		return ValueKindNameText
	}
}

// Value is a placeholder value: Text, Number or List. A nil Value means the
// value is absent.
type Value interface {
	// Kind reports which union member this is.
	Kind() ValueKind
	// String returns the display form of the value (lists are comma-joined).
	String() string

	isValue()
}

// Text is a free-text value.
type Text string

// Number is a numeric value.
type Number float64

// List is a multi-value (tags) value.
type List []string

// Kind implements Value
func (Text) Kind() ValueKind { return ValueKindText }

// String implements Value
func (t Text) String() string { return string(t) }

func (Text) isValue() {}

// Kind implements Value
func (Number) Kind() ValueKind { return ValueKindNumber }

// String formats the number as its shortest literal (25, 2.5, -0.125, 1e+21).
func (n Number) String() string { return formatNumber(float64(n)) }

func (Number) isValue() {}

// Kind implements Value
func (List) Kind() ValueKind { return ValueKindList }

// String implements Value
func (l List) String() string { return strings.Join(l, ListSeparator) }

func (List) isValue() {}

// ValueOf converts a decoded Go value (as produced by encoding/json or yaml.v3)
// into a Value. nil maps to a nil Value.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case Value:
		return x, nil
	case string:
		return Text(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(x), nil
	case int:
		return Number(x), nil
	case int64:
		return Number(x), nil
	case int32:
		return Number(x), nil
	case uint:
		return Number(x), nil
	case uint64:
		return Number(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, NewValueConversionError(v)
		}
		return Number(f), nil
	case []string:
		return append(List{}, x...), nil
	case []any:
		list := make(List, 0, len(x))
		for i, elem := range x {
			s, ok := elem.(string)
			if !ok {
				return nil, NewValueListElementError(i, elem)
			}
			list = append(list, s)
		}
		return list, nil
	default:
		return nil, NewValueConversionError(v)
	}
}

// IsBlank reports whether v should be replaced by a default: absent or empty text.
func IsBlank(v Value) bool {
	if v == nil {
		return true
	}
	t, ok := v.(Text)
	return ok && t == ""
}

// Values is a positional value list. It decodes from JSON or YAML arrays whose
// elements are strings, numbers, string arrays or null.
type Values []Value

// UnmarshalJSON implements json.Unmarshaler
func (vs *Values) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return vs.fromRaw(raw)
}

// UnmarshalYAML implements yaml.Unmarshaler
func (vs *Values) UnmarshalYAML(node *yaml.Node) error {
	var raw []any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return vs.fromRaw(raw)
}

func (vs *Values) fromRaw(raw []any) error {
	if raw == nil {
		*vs = nil
		return nil
	}
	out := make(Values, len(raw))
	for i, elem := range raw {
		v, err := ValueOf(elem)
		if err != nil {
			return err
		}
		out[i] = v
	}
	*vs = out
	return nil
}

// Clone returns a deep copy of the value list.
func (vs Values) Clone() Values {
	if vs == nil {
		return nil
	}
	out := make(Values, len(vs))
	for i, v := range vs {
		if l, ok := v.(List); ok {
			out[i] = append(List{}, l...)
			continue
		}
		out[i] = v
	}
	return out
}

// formatNumber renders f as its shortest round-tripping literal. Magnitudes
// from 1e21 up or below 1e-6 use exponent form (1e+21, 1.5e-7).
func formatNumber(f float64) string {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return NumberZero
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent drops the zero padding strconv puts in exponents ("1e-07").
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	digits := strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return s[:i+2] + digits
}
