package querytmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeValues(t *testing.T) {
	t.Run("grows with nil", func(t *testing.T) {
		assert.Equal(t, []Value{Text("a"), nil, nil}, ResizeValues([]Value{Text("a")}, 3))
	})

	t.Run("shrinks preserving prefix", func(t *testing.T) {
		assert.Equal(t, []Value{Text("a")}, ResizeValues([]Value{Text("a"), Number(2)}, 1))
	})

	t.Run("returns a new slice", func(t *testing.T) {
		in := []Value{Text("a")}
		out := ResizeValues(in, 1)
		out[0] = Text("b")
		assert.Equal(t, Text("a"), in[0])
	})

	t.Run("negative length", func(t *testing.T) {
		assert.Empty(t, ResizeValues([]Value{Text("a")}, -1))
	})
}

func TestSyncValues(t *testing.T) {
	p := NewParser(NewRegistry(nil), nil)
	parsed := p.Parse("{A} {B:NumberInput:5} {C:Tags}")
	require.True(t, parsed.IsValid)
	defaults := []Value{Text(""), Text("5"), List{}}

	t.Run("seeds appended positions from defaults", func(t *testing.T) {
		got := SyncValues(parsed, []Value{Text("kept")}, defaults)
		assert.Equal(t, []Value{Text("kept"), Text("5"), List{}}, got)
	})

	t.Run("keeps existing blank entries", func(t *testing.T) {
		got := SyncValues(parsed, []Value{nil, nil}, defaults)
		assert.Equal(t, []Value{nil, nil, List{}}, got)
	})

	t.Run("truncates extra values", func(t *testing.T) {
		got := SyncValues(parsed, []Value{Text("1"), Text("2"), Text("3"), Text("4")}, defaults)
		assert.Len(t, got, 3)
	})

	t.Run("nil result", func(t *testing.T) {
		assert.Empty(t, SyncValues(nil, []Value{Text("a")}, nil))
	})
}

func TestValueCoercions(t *testing.T) {
	t.Run("as string", func(t *testing.T) {
		assert.Equal(t, "", ValueAsString(nil))
		assert.Equal(t, "x", ValueAsString(Text("x")))
		assert.Equal(t, "2.5", ValueAsString(Number(2.5)))
		assert.Equal(t, "a,b", ValueAsString(List{"a", "b"}))
	})

	t.Run("as number", func(t *testing.T) {
		assert.Equal(t, 0.0, ValueAsNumber(nil))
		assert.Equal(t, 0.0, ValueAsNumber(Text("abc")))
		assert.Equal(t, 12.0, ValueAsNumber(Text("12")))
		assert.Equal(t, 3.5, ValueAsNumber(Number(3.5)))
	})

	t.Run("as strings", func(t *testing.T) {
		assert.Equal(t, []string{}, ValueAsStrings(nil))
		assert.Equal(t, []string{}, ValueAsStrings(Number(1)))
		assert.Equal(t, []string{"a", "b"}, ValueAsStrings(Text("a, b")))
		assert.Equal(t, []string{"a"}, ValueAsStrings(List{"a"}))
	})
}

func TestToggleTag(t *testing.T) {
	assert.Equal(t, List{"a"}, ToggleTag(nil, "a"))
	assert.Equal(t, List{"a", "b"}, ToggleTag(List{"a"}, "b"))
	assert.Equal(t, List{"b"}, ToggleTag(List{"a", "b"}, "a"))
	assert.Equal(t, List{"x", "y"}, ToggleTag(Text("x"), "y"))
}
