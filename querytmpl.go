// Package querytmpl provides typed placeholders for free-form search query strings.
//
// A template is query text with placeholders in braces:
//
//	form_type = {Form Type:FormTypes:8-K} and tags && {Tags:Tags:} limit {Limit:NumberInput:50}
//
// Each placeholder is {Label}, {Label:TypeName} or {Label:TypeName:Default}.
// The type defaults to StringInput. Everything after the second colon is the
// default, so defaults may contain colons (URLs, times). A backslash escapes a
// literal brace: \{ and \}.
//
// # Basic Usage
//
// Create an engine, parse to discover placeholders, then compile with values
// matched to placeholders by position:
//
//	engine := querytmpl.MustNew()
//	parsed := engine.Parse("name = {Name}")
//	values := engine.DefaultValues(parsed)
//	values[0] = querytmpl.Text("O'Brien")
//	result := engine.Compile("name = {Name}", values)
//	// result.CompiledText: "name = 'O''Brien'"
//
// # Built-in Types
//
// StringInput - free text, single quoted with embedded quotes doubled.
//
// NumberInput - a bare numeric literal. Non-numeric values fail validation.
//
// FormTypes - an SEC form type code, serialized like free text.
//
// Tags - a list or comma-separated string, each element quoted: 'A','B'.
//
// # Custom Types
//
// Register a TypeDescriptor to add a value kind. DescriptorFuncs adapts plain
// functions:
//
//	engine.MustRegister(&querytmpl.DescriptorFuncs{
//	    Name: "Ticker",
//	    SerializeFunc: func(v querytmpl.Value) string {
//	        return querytmpl.SerializeText(querytmpl.Text(strings.ToUpper(v.String())))
//	    },
//	})
//
// # Error Handling
//
// Syntax and validation problems are reported in result values, never as
// returned errors. A template with syntax errors compiles to itself with
// Success false. A value rejected by its type leaves that placeholder in place
// while the others are still substituted.
//
// # Saved Queries
//
// Templates and their values can be persisted through QueryStorage, with
// memory, filesystem and PostgreSQL drivers, and seeded from blueprints.
package querytmpl
