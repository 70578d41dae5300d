package querytmpl

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValueKind_String(t *testing.T) {
	assert.Equal(t, ValueKindNameText, ValueKindText.String())
	assert.Equal(t, ValueKindNameNumber, ValueKindNumber.String())
	assert.Equal(t, ValueKindNameList, ValueKindList.String())
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"text", Text("8-K"), "8-K"},
		{"integer number", Number(25), "25"},
		{"fractional number", Number(2.5), "2.5"},
		{"negative number", Number(-0.125), "-0.125"},
		{"below exponent threshold", Number(1e20), "100000000000000000000"},
		{"large number", Number(1e21), "1e+21"},
		{"large fractional mantissa", Number(-1.5e300), "-1.5e+300"},
		{"small number", Number(0.000001), "0.000001"},
		{"tiny number", Number(1e-7), "1e-7"},
		{"zero", Number(0), "0"},
		{"list", List{"A", "B"}, "A,B"},
		{"empty list", List{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.String())
		})
	}
}

func TestValueOf(t *testing.T) {
	t.Run("converts decoded values", func(t *testing.T) {
		tests := []struct {
			name     string
			input    any
			expected Value
		}{
			{"nil", nil, nil},
			{"string", "abc", Text("abc")},
			{"float64", 2.5, Number(2.5)},
			{"int", 3, Number(3)},
			{"int64", int64(7), Number(7)},
			{"json number", json.Number("12"), Number(12)},
			{"string slice", []string{"a", "b"}, List{"a", "b"}},
			{"any slice", []any{"x", "y"}, List{"x", "y"}},
			{"value passthrough", Text("t"), Text("t")},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				v, err := ValueOf(tt.input)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, v)
			})
		}
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		_, err := ValueOf(true)
		require.Error(t, err)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		valueType, ok := customErr.GetMetadata(MetaKeyValueType)
		assert.True(t, ok)
		assert.Equal(t, "bool", valueType)
	})

	t.Run("rejects non-string list element", func(t *testing.T) {
		_, err := ValueOf([]any{"a", 1.0})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgValueListElement)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		index, ok := customErr.GetMetadata(MetaKeyIndex)
		assert.True(t, ok)
		assert.Equal(t, "1", index)
	})
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank(Text("")))
	assert.False(t, IsBlank(Text(" ")))
	assert.False(t, IsBlank(Number(0)))
	assert.False(t, IsBlank(List{}))
}

func TestValues_JSON(t *testing.T) {
	t.Run("decodes mixed array", func(t *testing.T) {
		var vs Values
		require.NoError(t, json.Unmarshal([]byte(`["a", 2, ["x","y"], null]`), &vs))
		assert.Equal(t, Values{Text("a"), Number(2), List{"x", "y"}, nil}, vs)
	})

	t.Run("encodes back to the same shape", func(t *testing.T) {
		data, err := json.Marshal(Values{Text("a"), Number(2.5), List{"x"}, nil})
		require.NoError(t, err)
		assert.JSONEq(t, `["a", 2.5, ["x"], null]`, string(data))
	})

	t.Run("rejects objects", func(t *testing.T) {
		var vs Values
		require.Error(t, json.Unmarshal([]byte(`[{"a":1}]`), &vs))
	})

	t.Run("rejects non-array", func(t *testing.T) {
		var vs Values
		require.Error(t, json.Unmarshal([]byte(`"a"`), &vs))
	})
}

func TestValues_YAML(t *testing.T) {
	var doc struct {
		Values Values `yaml:"values"`
	}
	input := "values:\n  - 8-K\n  - 50\n  - [Presentation, Earnings]\n  - null\n"
	require.NoError(t, yaml.Unmarshal([]byte(input), &doc))
	assert.Equal(t, Values{Text("8-K"), Number(50), List{"Presentation", "Earnings"}, nil}, doc.Values)
}

func TestValues_Clone(t *testing.T) {
	original := Values{Text("a"), List{"x", "y"}}
	clone := original.Clone()
	require.Equal(t, original, clone)

	clone[1].(List)[0] = "changed"
	assert.Equal(t, List{"x", "y"}, original[1])

	assert.Nil(t, Values(nil).Clone())
}
