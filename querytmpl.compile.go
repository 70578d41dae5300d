package querytmpl

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// CompileResult is the outcome of compiling a template. Success is true exactly
// when Errors is empty.
type CompileResult struct {
	CompiledText string   `json:"compiled_text"`
	Success      bool     `json:"success"`
	Errors       []string `json:"errors"`
}

// Compiler substitutes positional values into templates.
type Compiler struct {
	parser   *Parser
	registry *Registry
	logger   *zap.Logger
}

// NewCompiler creates a compiler that parses with parser and serializes through
// registry. Both should share the same registry.
func NewCompiler(parser *Parser, registry *Registry, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = NewRegistry(logger)
	}
	if parser == nil {
		parser = NewParser(registry, logger)
	}
	return &Compiler{
		parser:   parser,
		registry: registry,
		logger:   logger,
	}
}

// Compile parses template and substitutes values by placeholder ordinal.
//
// A template with syntax errors is returned unchanged along with the parse
// error messages. Blank values (nil or empty text) fall back to the
// placeholder's default, then to the type default. A value that fails its
// type's validator leaves that placeholder's span untouched and adds an error;
// the remaining placeholders are still substituted. Placeholders are processed
// right to left and errors are listed in that order. Escaped braces are
// unescaped in the final text.
func (c *Compiler) Compile(template string, values []Value) *CompileResult {
	c.logger.Debug(LogMsgCompileStart, zap.Int(LogFieldSource, len(template)))

	parsed := c.parser.Parse(template)
	if !parsed.IsValid {
		c.logger.Debug(LogMsgCompileSyntax, zap.Int(LogFieldErrors, len(parsed.Errors)))
		return &CompileResult{
			CompiledText: template,
			Success:      false,
			Errors:       parsed.Messages(),
		}
	}

	if len(parsed.Placeholders) == 0 {
		return &CompileResult{
			CompiledText: UnescapeLiterals(template),
			Success:      true,
			Errors:       []string{},
		}
	}

	// Splice right to left so earlier offsets stay valid.
	ordered := append([]Placeholder(nil), parsed.Placeholders...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].StartOffset > ordered[j].StartOffset
	})

	text := template
	failures := []string{}
	for _, ph := range ordered {
		value := c.effectiveValue(ph, values)

		if err := c.registry.Validate(ph.TypeName, value); err != nil {
			c.logger.Debug(LogMsgValidationFailed,
				zap.String(LogFieldLabel, ph.Label),
				zap.Int(LogFieldOrdinal, ph.Ordinal),
				zap.Error(err))
			failures = append(failures, fmt.Sprintf(ErrFmtParameterExpects,
				ph.Label, c.registry.Constraint(ph.TypeName), displayText(value)))
			continue
		}

		text = text[:ph.StartOffset] + c.registry.Serialize(ph.TypeName, value) + text[ph.EndOffset:]
	}

	c.logger.Debug(LogMsgCompileEnd,
		zap.Int(LogFieldPlaceholders, len(parsed.Placeholders)),
		zap.Int(LogFieldErrors, len(failures)))

	return &CompileResult{
		CompiledText: UnescapeLiterals(text),
		Success:      len(failures) == 0,
		Errors:       failures,
	}
}

// DefaultValues returns the starting value for each placeholder in order of
// appearance: its own default as text when present, otherwise the type default.
func (c *Compiler) DefaultValues(result *ParseResult) []Value {
	if result == nil {
		return []Value{}
	}
	defaults := make([]Value, len(result.Placeholders))
	for i, ph := range result.Placeholders {
		defaults[i] = c.placeholderDefault(ph)
	}
	return defaults
}

func (c *Compiler) effectiveValue(ph Placeholder, values []Value) Value {
	var value Value
	if ph.Ordinal < len(values) {
		value = values[ph.Ordinal]
	}
	if !IsBlank(value) {
		return value
	}
	return c.placeholderDefault(ph)
}

func (c *Compiler) placeholderDefault(ph Placeholder) Value {
	if ph.DefaultValue != "" {
		return Text(ph.DefaultValue)
	}
	return c.registry.DefaultValue(ph.TypeName)
}

// displayText renders a value for error messages; nil shows as empty.
func displayText(v Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}
