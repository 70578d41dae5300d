package querytmpl

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// TypeDescriptor describes a value-kind a placeholder can declare: how to seed
// its default, and how to serialize a value into query-string syntax.
// Implementations should be stateless or safe for concurrent use.
type TypeDescriptor interface {
	// TypeName returns the name used in placeholder syntax ({Label:TypeName:Default}).
	TypeName() string
	// DisplayName returns a human-readable name for input widgets.
	DisplayName() string
	// DefaultValue returns the value used when neither the caller nor the
	// placeholder supplies one.
	DefaultValue() Value
	// Serialize renders a value into query-string syntax. It must not fail.
	Serialize(v Value) string
}

// Validator is implemented by descriptors that constrain their values.
// Descriptors without it accept every value.
type Validator interface {
	// Validate returns a non-nil error when v is not acceptable.
	Validate(v Value) error
	// Constraint describes acceptable values, e.g. "a number".
	Constraint() string
}

// Enumerated is implemented by descriptors that offer a fixed set of choices.
// The engine never enforces membership; choices are a hint for input widgets.
type Enumerated interface {
	Options() []string
}

// DescriptorFuncs adapts plain functions into a TypeDescriptor. Nil funcs fall
// back to free-text behavior; a nil ValidateFunc accepts every value.
type DescriptorFuncs struct {
	Name           string
	Display        string
	ConstraintText string
	DefaultFunc    func() Value
	SerializeFunc  func(Value) string
	ValidateFunc   func(Value) error
}

// TypeName implements TypeDescriptor
func (d *DescriptorFuncs) TypeName() string { return d.Name }

// DisplayName implements TypeDescriptor
func (d *DescriptorFuncs) DisplayName() string {
	if d.Display == "" {
		return d.Name
	}
	return d.Display
}

// DefaultValue implements TypeDescriptor
func (d *DescriptorFuncs) DefaultValue() Value {
	if d.DefaultFunc == nil {
		return Text("")
	}
	return d.DefaultFunc()
}

// Serialize implements TypeDescriptor
func (d *DescriptorFuncs) Serialize(v Value) string {
	if d.SerializeFunc == nil {
		return SerializeText(v)
	}
	return d.SerializeFunc(v)
}

// Validate implements Validator
func (d *DescriptorFuncs) Validate(v Value) error {
	if d.ValidateFunc == nil {
		return nil
	}
	return d.ValidateFunc(v)
}

// Constraint implements Validator
func (d *DescriptorFuncs) Constraint() string {
	if d.ConstraintText == "" {
		return fmt.Sprintf(ErrFmtFallbackConstrain, d.Name)
	}
	return d.ConstraintText
}

// SerializeText wraps the value's text in single quotes, doubling embedded
// single quotes. A nil value serializes to ''.
func SerializeText(v Value) string {
	if v == nil {
		return EmptyQuoted
	}
	return quote(v.String())
}

func quote(s string) string {
	return QuoteChar + strings.ReplaceAll(s, QuoteChar, QuoteEscaped) + QuoteChar
}

// stringInputType is free text.
type stringInputType struct{}

func (stringInputType) TypeName() string         { return TypeStringInput }
func (stringInputType) DisplayName() string      { return DisplayNameStringInput }
func (stringInputType) DefaultValue() Value      { return Text("") }
func (stringInputType) Serialize(v Value) string { return SerializeText(v) }

// numberInputType is a bare numeric literal.
type numberInputType struct{}

func (numberInputType) TypeName() string    { return TypeNumberInput }
func (numberInputType) DisplayName() string { return DisplayNameNumberInput }
func (numberInputType) DefaultValue() Value { return Number(0) }
func (numberInputType) Constraint() string  { return ConstraintNumber }

// Serialize never fails: anything non-numeric becomes 0.
func (numberInputType) Serialize(v Value) string {
	f, ok := NumericValue(v)
	if !ok {
		return NumberZero
	}
	return formatNumber(f)
}

func (numberInputType) Validate(v Value) error {
	if _, ok := NumericValue(v); !ok {
		return NewValueValidationError(TypeNumberInput, ErrMsgValueNotNumber)
	}
	return nil
}

// formTypesType is a single choice among SEC form types, serialized as text.
type formTypesType struct {
	catalog *FormTypeCatalog
}

func (formTypesType) TypeName() string         { return TypeFormTypes }
func (formTypesType) DisplayName() string      { return DisplayNameFormTypes }
func (formTypesType) DefaultValue() Value      { return Text("") }
func (formTypesType) Serialize(v Value) string { return SerializeText(v) }

func (t formTypesType) Options() []string {
	if t.catalog == nil {
		return nil
	}
	return t.catalog.Codes()
}

// tagsType is a multi-value list: 'A','B'.
type tagsType struct{}

func (tagsType) TypeName() string    { return TypeTags }
func (tagsType) DisplayName() string { return DisplayNameTags }
func (tagsType) DefaultValue() Value { return List{} }
func (tagsType) Constraint() string  { return ConstraintTags }

func (tagsType) Serialize(v Value) string {
	tags := TagsOf(v)
	if len(tags) == 0 {
		return EmptyQuoted
	}
	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = quote(tag)
	}
	return strings.Join(quoted, ListSeparator)
}

func (tagsType) Validate(v Value) error {
	if _, ok := v.(Number); ok {
		return NewValueValidationError(TypeTags, ErrMsgValueNotTags)
	}
	return nil
}

// TagsOf returns the tag list for v. Lists are returned as-is; text is split on
// commas with each element trimmed and empty elements dropped.
func TagsOf(v Value) []string {
	switch x := v.(type) {
	case List:
		return x
	case Text:
		return splitTags(string(x))
	default:
		return nil
	}
}

func splitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ListSeparator) {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// leadingNumber matches the longest decimal literal at the start of a string.
var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// NumericValue reports the numeric reading of v. Numbers are numeric unless NaN
// or infinite; text is numeric when, after leading whitespace, it begins with a
// decimal literal ("12abc" reads as 12). Literals that overflow to infinity
// ("1e400") and the word "Infinity" are rejected, since SQL has no literal for
// them. Lists and nil are never numeric.
func NumericValue(v Value) (float64, bool) {
	switch x := v.(type) {
	case Number:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case Text:
		lit := leadingNumber.FindString(strings.TrimLeft(string(x), " \t\n\r\f\v"))
		if lit == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// builtinTypes returns the four built-in descriptors.
func builtinTypes(catalog *FormTypeCatalog) []TypeDescriptor {
	return []TypeDescriptor{
		stringInputType{},
		numberInputType{},
		formTypesType{catalog: catalog},
		tagsType{},
	}
}
