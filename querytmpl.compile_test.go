package querytmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCompiler() *Compiler {
	r := NewRegistry(nil)
	return NewCompiler(NewParser(r, nil), r, nil)
}

func TestCompiler_Compile(t *testing.T) {
	c := newTestCompiler()

	tests := []struct {
		name     string
		template string
		values   []Value
		expected string
	}{
		{
			name:     "no placeholders returns template",
			template: "form_type = '10-K' limit 25",
			values:   nil,
			expected: "form_type = '10-K' limit 25",
		},
		{
			name:     "no placeholders unescapes literals",
			template: `data = \{"a": 1\}`,
			expected: `data = {"a": 1}`,
		},
		{
			name:     "positional substitution",
			template: "{A} {B}",
			values:   []Value{Text("x"), Text("y")},
			expected: "'x' 'y'",
		},
		{
			name:     "same labels are independent",
			template: "{A} {A}",
			values:   []Value{Text("x"), Text("y")},
			expected: "'x' 'y'",
		},
		{
			name:     "quote doubling",
			template: "name = {Name}",
			values:   []Value{Text("O'Brien")},
			expected: "name = 'O''Brien'",
		},
		{
			name:     "empty tags",
			template: "tags && {Tags:Tags:}",
			values:   []Value{List{}},
			expected: "tags && ''",
		},
		{
			name:     "tags list",
			template: "array[{Tags:Tags}] && tags",
			values:   []Value{List{"Presentation", "Earnings"}},
			expected: "array['Presentation','Earnings'] && tags",
		},
		{
			name:     "tags comma string default",
			template: "array[{Tags:Tags:A, B}] && tags",
			expected: "array['A','B'] && tags",
		},
		{
			name:     "number value",
			template: "limit {Limit:NumberInput:50}",
			values:   []Value{Number(25)},
			expected: "limit 25",
		},
		{
			name:     "numeric text value",
			template: "limit {Limit:NumberInput:50}",
			values:   []Value{Text("12abc")},
			expected: "limit 12",
		},
		{
			name:     "placeholder default used when values missing",
			template: "form_type = {Form Type:FormTypes:8-K} limit {Limit:NumberInput:50}",
			expected: "form_type = '8-K' limit 50",
		},
		{
			name:     "type default used when placeholder has none",
			template: "limit {Limit:NumberInput} {Name}",
			expected: "limit 0 ''",
		},
		{
			name:     "extra values are ignored",
			template: "{A}",
			values:   []Value{Text("x"), Text("y"), Number(3)},
			expected: "'x'",
		},
		{
			name:     "escapes around placeholders",
			template: `\{x\} {A}`,
			values:   []Value{Text("v")},
			expected: `{x} 'v'`,
		},
		{
			name:     "substitution lengths differ from placeholder lengths",
			template: "{LongLabelName} and {B}",
			values:   []Value{Text("s"), Text("a much longer replacement value")},
			expected: "'s' and 'a much longer replacement value'",
		},
		{
			name:     "multibyte text",
			template: "größe = {A} und {B}",
			values:   []Value{Text("ä"), Text("ö")},
			expected: "größe = 'ä' und 'ö'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Compile(tt.template, tt.values)

			require.True(t, result.Success, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
			assert.Equal(t, tt.expected, result.CompiledText)
		})
	}
}

func TestCompiler_DefaultFallback(t *testing.T) {
	c := newTestCompiler()
	template := "{Col::fallback}"

	expected := c.Compile(template, []Value{Text("fallback")}).CompiledText
	require.Equal(t, "'fallback'", expected)

	for name, values := range map[string][]Value{
		"empty text": {Text("")},
		"nil value":  {nil},
		"no values":  nil,
	} {
		t.Run(name, func(t *testing.T) {
			result := c.Compile(template, values)
			assert.True(t, result.Success)
			assert.Equal(t, expected, result.CompiledText)
		})
	}

	t.Run("whitespace is not blank", func(t *testing.T) {
		result := c.Compile(template, []Value{Text(" ")})
		assert.Equal(t, "' '", result.CompiledText)
	})
}

func TestCompiler_ValidationFailure(t *testing.T) {
	c := newTestCompiler()

	t.Run("non-numeric value leaves placeholder in place", func(t *testing.T) {
		result := c.Compile("limit {Limit:NumberInput:50}", []Value{Text("abc")})

		assert.False(t, result.Success)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "number")
		assert.Equal(t, `Parameter "Limit" expects a number, got: abc`, result.Errors[0])
		assert.Equal(t, "limit {Limit:NumberInput:50}", result.CompiledText)
	})

	t.Run("other placeholders still substitute", func(t *testing.T) {
		result := c.Compile("form_type = {Type:FormTypes:8-K} limit {Limit:NumberInput:50} and {Name}",
			[]Value{nil, Text("many"), Text("x")})

		assert.False(t, result.Success)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "form_type = '8-K' limit {Limit:NumberInput:50} and 'x'", result.CompiledText)
	})

	t.Run("errors follow right-to-left processing order", func(t *testing.T) {
		result := c.Compile("{A:NumberInput} {B:NumberInput}", []Value{Text("x"), Text("y")})

		assert.Equal(t, []string{
			`Parameter "B" expects a number, got: y`,
			`Parameter "A" expects a number, got: x`,
		}, result.Errors)
	})

	t.Run("overflowing numbers are rejected", func(t *testing.T) {
		result := c.Compile("{N:NumberInput}", []Value{Text("1e400")})

		assert.False(t, result.Success)
		assert.Equal(t, []string{`Parameter "N" expects a number, got: 1e400`}, result.Errors)
		assert.Equal(t, "{N:NumberInput}", result.CompiledText)
	})

	t.Run("tags reject numbers", func(t *testing.T) {
		result := c.Compile("{T:Tags}", []Value{Number(5)})

		require.Len(t, result.Errors, 1)
		assert.Equal(t, `Parameter "T" expects a list of tags or a comma-separated string, got: 5`, result.Errors[0])
		assert.Equal(t, "{T:Tags}", result.CompiledText)
	})

	t.Run("escapes are still removed", func(t *testing.T) {
		result := c.Compile(`\{ {N:NumberInput}`, []Value{Text("x")})

		assert.False(t, result.Success)
		assert.Equal(t, "{ {N:NumberInput}", result.CompiledText)
	})
}

func TestCompiler_SyntaxErrorReturnsTemplate(t *testing.T) {
	c := newTestCompiler()

	tests := []struct {
		name     string
		template string
		errors   []string
	}{
		{"unclosed", "test { unclosed", []string{ErrMsgUnmatchedOpening}},
		{"stray close", `{A} } \{`, []string{ErrMsgUnmatchedClosing}},
		{"empty definition", "{A} {}", []string{ErrMsgEmptyDefinition}},
		{"invalid type", "{A:Bogus}", []string{"Invalid component type: Bogus. Valid types are: FormTypes, NumberInput, StringInput, Tags"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Compile(tt.template, []Value{Text("x")})

			assert.False(t, result.Success)
			assert.Equal(t, tt.template, result.CompiledText)
			assert.Equal(t, tt.errors, result.Errors)
		})
	}
}

func TestCompiler_CustomType(t *testing.T) {
	r := NewRegistry(nil)
	c := NewCompiler(NewParser(r, nil), r, nil)

	r.MustRegister(&DescriptorFuncs{
		Name:           "Cik",
		ConstraintText: "a ten digit CIK",
		DefaultFunc:    func() Value { return Text("0000789019") },
		SerializeFunc:  func(v Value) string { return v.String() },
		ValidateFunc: func(v Value) error {
			if len(v.String()) != 10 {
				return NewValueValidationError("Cik", "CIK must have ten digits")
			}
			return nil
		},
	})

	result := c.Compile("cik = {Company:Cik}", nil)
	require.True(t, result.Success)
	assert.Equal(t, "cik = 0000789019", result.CompiledText)

	result = c.Compile("cik = {Company:Cik}", []Value{Text("42")})
	assert.Equal(t, []string{`Parameter "Company" expects a ten digit CIK, got: 42`}, result.Errors)
}

func TestCompiler_DefaultValues(t *testing.T) {
	c := newTestCompiler()

	parsed := c.parser.Parse("{Type:FormTypes:8-K} {Limit:NumberInput:42} {N:NumberInput} {T:Tags} {S}")
	defaults := c.DefaultValues(parsed)

	assert.Equal(t, []Value{Text("8-K"), Text("42"), Number(0), List{}, Text("")}, defaults)
	assert.Empty(t, c.DefaultValues(nil))
}
