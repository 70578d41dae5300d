package querytmpl

import (
	"fmt"
	"strings"

	"github.com/itsatony/go-querytmpl/internal"
	"go.uber.org/zap"
)

// Placeholder is one well-formed {Label:TypeName:Default} occurrence.
// Offsets are byte offsets into the template; EndOffset is exclusive.
type Placeholder struct {
	Label        string `json:"label"`
	TypeName     string `json:"type_name"`
	DefaultValue string `json:"default_value"`
	Ordinal      int    `json:"ordinal"`
	RawText      string `json:"raw_text"`
	StartOffset  int    `json:"start_offset"`
	EndOffset    int    `json:"end_offset"`
}

// ParseError is a syntax error with the span of template text it concerns.
type ParseError struct {
	Message     string `json:"message"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
}

// Error implements the error interface
func (e ParseError) Error() string {
	return fmt.Sprintf("%s [%d:%d]", e.Message, e.StartOffset, e.EndOffset)
}

// ParseResult is the outcome of parsing a template. IsValid is true exactly
// when Errors is empty. Placeholders holds only well-formed occurrences, in
// order of appearance, with Ordinal equal to their index.
type ParseResult struct {
	SourceText   string        `json:"source_text"`
	Placeholders []Placeholder `json:"placeholders"`
	IsValid      bool          `json:"is_valid"`
	Errors       []ParseError  `json:"errors"`
}

// Messages returns the error messages in order.
func (r *ParseResult) Messages() []string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return msgs
}

// Parser extracts placeholders from templates and reports syntax errors.
// Type segments are checked against the registry it was built with.
type Parser struct {
	registry *Registry
	scanner  *internal.Scanner
	logger   *zap.Logger
}

// NewParser creates a parser validating type names against registry.
func NewParser(registry *Registry, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = NewRegistry(logger)
	}
	return &Parser{
		registry: registry,
		scanner:  internal.NewScanner(logger),
		logger:   logger,
	}
}

// Parse scans template for placeholders. Every problem is collected: malformed
// occurrences first, in order of appearance, then brace imbalances. A fresh
// result is built on every call.
func (p *Parser) Parse(template string) *ParseResult {
	p.logger.Debug(LogMsgParseStart, zap.Int(LogFieldSource, len(template)))

	result := &ParseResult{
		SourceText:   template,
		Placeholders: []Placeholder{},
		Errors:       []ParseError{},
	}

	for _, occ := range p.scanner.Occurrences(template) {
		ph, perr := p.parseOccurrence(occ, len(result.Placeholders))
		if perr != nil {
			result.Errors = append(result.Errors, *perr)
			continue
		}
		result.Placeholders = append(result.Placeholders, ph)
	}

	for _, issue := range p.scanner.Balance(template) {
		msg := ErrMsgUnmatchedOpening
		if issue.Kind == internal.BraceIssueUnmatchedClose {
			msg = ErrMsgUnmatchedClosing
		}
		result.Errors = append(result.Errors, ParseError{
			Message:     msg,
			StartOffset: issue.Start,
			EndOffset:   issue.End,
		})
	}

	result.IsValid = len(result.Errors) == 0
	p.logger.Debug(LogMsgParseEnd,
		zap.Int(LogFieldPlaceholders, len(result.Placeholders)),
		zap.Int(LogFieldErrors, len(result.Errors)))
	return result
}

// HasPlaceholders reports whether template holds at least one well-formed
// placeholder. Brace imbalance elsewhere is ignored.
func (p *Parser) HasPlaceholders(template string) bool {
	for _, occ := range p.scanner.Occurrences(template) {
		if _, perr := p.parseOccurrence(occ, 0); perr == nil {
			return true
		}
	}
	return false
}

// parseOccurrence splits occurrence content into label, type and default.
// Everything after the second colon is the default, colons included.
func (p *Parser) parseOccurrence(occ internal.Occurrence, ordinal int) (Placeholder, *ParseError) {
	fail := func(msg string) (Placeholder, *ParseError) {
		return Placeholder{}, &ParseError{Message: msg, StartOffset: occ.Start, EndOffset: occ.End}
	}

	if strings.TrimSpace(occ.Content) == "" {
		return fail(ErrMsgEmptyDefinition)
	}

	parts := strings.Split(occ.Content, PlaceholderSeparator)

	label := strings.TrimSpace(parts[0])
	if label == "" {
		return fail(ErrMsgMissingLabel)
	}

	typeName := p.registry.FallbackType()
	if len(parts) > TypeNameSegment {
		if name := strings.TrimSpace(parts[TypeNameSegment]); name != "" {
			if !p.registry.IsRegistered(name) {
				return fail(fmt.Sprintf(ErrFmtInvalidType, name,
					strings.Join(p.registry.TypeNames(), TypeNameJoinSep)))
			}
			typeName = name
		}
	}

	defaultValue := ""
	if len(parts) > DefaultSegment {
		defaultValue = strings.TrimSpace(strings.Join(parts[DefaultSegment:], PlaceholderSeparator))
	}

	return Placeholder{
		Label:        label,
		TypeName:     typeName,
		DefaultValue: defaultValue,
		Ordinal:      ordinal,
		RawText:      occ.Raw,
		StartOffset:  occ.Start,
		EndOffset:    occ.End,
	}, nil
}

// UnescapeLiterals replaces every \{ with { and every \} with } in a single
// pass, so `\\{` becomes `\{`.
func UnescapeLiterals(text string) string {
	if !strings.Contains(text, EscapedOpen) && !strings.Contains(text, EscapedClose) {
		return text
	}
	return literalUnescaper.Replace(text)
}

var literalUnescaper = strings.NewReplacer(EscapedOpen, PlaceholderOpen, EscapedClose, PlaceholderClose)
