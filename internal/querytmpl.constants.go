package internal

// Character constants
const (
	CharOpenBrace  = '{'
	CharCloseBrace = '}'
	CharBackslash  = '\\'
)

// BraceIssueKind classifies a brace imbalance found by the balance pass
type BraceIssueKind int

// Brace issue kinds
const (
	BraceIssueUnmatchedOpen BraceIssueKind = iota
	BraceIssueUnmatchedClose
)

// Brace issue kind names for debugging
const (
	BraceIssueNameUnmatchedOpen  = "UNMATCHED_OPEN"
	BraceIssueNameUnmatchedClose = "UNMATCHED_CLOSE"
)

// String returns the string representation of the issue kind
func (k BraceIssueKind) String() string {
	switch k {
	case BraceIssueUnmatchedClose:
		return BraceIssueNameUnmatchedClose
	default:
		return BraceIssueNameUnmatchedOpen
	}
}

// Log message constants
const (
	LogMsgScannerCreated  = "scanner created"
	LogMsgOccurrenceScan  = "occurrence scan complete"
	LogMsgBalanceScan     = "brace balance scan complete"
	LogMsgCandidateDenied = "candidate occurrence abandoned"
)

// Log field names
const (
	LogFieldSource      = "source_length"
	LogFieldOccurrences = "occurrence_count"
	LogFieldIssues      = "issue_count"
	LogFieldOffset      = "offset"
	LogFieldReason      = "reason"
)

// Reasons a candidate occurrence is abandoned
const (
	ReasonNestedOpen   = "nested opening brace"
	ReasonEscapedClose = "escaped closing brace"
	ReasonUnterminated = "no closing brace"
)
