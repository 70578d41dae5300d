package internal

import (
	"go.uber.org/zap"
)

// Occurrence is a single unescaped {content} span found in a template.
// Start and End are byte offsets; End is exclusive and includes the closing brace.
type Occurrence struct {
	Raw     string
	Content string
	Start   int
	End     int
}

// BraceIssue is a brace imbalance found by the balance pass.
type BraceIssue struct {
	Kind  BraceIssueKind
	Start int
	End   int
}

// Scanner finds placeholder occurrences and brace imbalances in template source.
// It holds no per-call state and is safe for concurrent use.
type Scanner struct {
	logger *zap.Logger
}

// NewScanner creates a new scanner
func NewScanner(logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgScannerCreated)
	return &Scanner{logger: logger}
}

// Occurrences scans source left to right and returns every {content} span whose
// opening brace is not escaped, whose content holds no brace at all, and whose
// closing brace is not escaped. Spans never overlap; scanning resumes after the
// closing brace of each match, or one byte after an abandoned opening brace.
func (s *Scanner) Occurrences(source string) []Occurrence {
	var occurrences []Occurrence

	for i := 0; i < len(source); i++ {
		if source[i] != CharOpenBrace || isEscaped(source, i) {
			continue
		}

		end, reason := closingBrace(source, i)
		if end < 0 {
			s.logger.Debug(LogMsgCandidateDenied,
				zap.Int(LogFieldOffset, i),
				zap.String(LogFieldReason, reason))
			continue
		}

		occurrences = append(occurrences, Occurrence{
			Raw:     source[i : end+1],
			Content: source[i+1 : end],
			Start:   i,
			End:     end + 1,
		})
		i = end
	}

	s.logger.Debug(LogMsgOccurrenceScan,
		zap.Int(LogFieldSource, len(source)),
		zap.Int(LogFieldOccurrences, len(occurrences)))
	return occurrences
}

// Balance tracks brace depth over the whole source, ignoring any brace that is
// immediately preceded by a backslash. A closing brace at depth zero is reported
// and depth is reset so later imbalances are still found. If depth is positive
// at the end, the opening brace that last left depth zero is reported, spanning
// to the end of the source.
func (s *Scanner) Balance(source string) []BraceIssue {
	var issues []BraceIssue
	depth := 0
	lastOpen := -1

	for i := 0; i < len(source); i++ {
		if isEscaped(source, i) {
			continue
		}

		switch source[i] {
		case CharOpenBrace:
			if depth == 0 {
				lastOpen = i
			}
			depth++
		case CharCloseBrace:
			depth--
			if depth < 0 {
				issues = append(issues, BraceIssue{
					Kind:  BraceIssueUnmatchedClose,
					Start: i,
					End:   i + 1,
				})
				depth = 0
			}
		}
	}

	if depth > 0 && lastOpen >= 0 {
		issues = append(issues, BraceIssue{
			Kind:  BraceIssueUnmatchedOpen,
			Start: lastOpen,
			End:   len(source),
		})
	}

	s.logger.Debug(LogMsgBalanceScan, zap.Int(LogFieldIssues, len(issues)))
	return issues
}

// closingBrace returns the index of the brace closing the occurrence opened at
// open, or -1 with the reason the candidate was abandoned.
func closingBrace(source string, open int) (int, string) {
	for j := open + 1; j < len(source); j++ {
		switch source[j] {
		case CharOpenBrace:
			return -1, ReasonNestedOpen
		case CharCloseBrace:
			if isEscaped(source, j) {
				return -1, ReasonEscapedClose
			}
			return j, ""
		}
	}
	return -1, ReasonUnterminated
}

// isEscaped reports whether the byte at i is immediately preceded by a backslash
func isEscaped(source string, i int) bool {
	return i > 0 && source[i-1] == CharBackslash
}
