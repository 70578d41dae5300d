package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_NewScanner(t *testing.T) {
	t.Run("with nil logger", func(t *testing.T) {
		s := NewScanner(nil)
		require.NotNil(t, s)
		occurrences := s.Occurrences("{a}")
		require.Len(t, occurrences, 1)
		assert.Equal(t, "a", occurrences[0].Content)
	})
}

func TestScanner_Occurrences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Occurrence
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "plain text",
			input:    "form_type = '8-K' limit 50",
			expected: nil,
		},
		{
			name:  "single occurrence",
			input: "limit {Limit:NumberInput:50}",
			expected: []Occurrence{
				{Raw: "{Limit:NumberInput:50}", Content: "Limit:NumberInput:50", Start: 6, End: 28},
			},
		},
		{
			name:  "adjacent occurrences",
			input: "{A}{B}",
			expected: []Occurrence{
				{Raw: "{A}", Content: "A", Start: 0, End: 3},
				{Raw: "{B}", Content: "B", Start: 3, End: 6},
			},
		},
		{
			name:  "empty braces",
			input: "test {}",
			expected: []Occurrence{
				{Raw: "{}", Content: "", Start: 5, End: 7},
			},
		},
		{
			name:     "escaped braces",
			input:    `\{not a param\}`,
			expected: nil,
		},
		{
			name:     "escaped closing brace abandons candidate",
			input:    `{abc\}`,
			expected: nil,
		},
		{
			name:  "nested opening restarts at inner brace",
			input: "{outer {inner}",
			expected: []Occurrence{
				{Raw: "{inner}", Content: "inner", Start: 7, End: 14},
			},
		},
		{
			name:     "unterminated",
			input:    "test { unclosed",
			expected: nil,
		},
		{
			name:  "multibyte text keeps byte offsets",
			input: "größe {A}",
			expected: []Occurrence{
				{Raw: "{A}", Content: "A", Start: 8, End: 11},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner(nil)
			got := s.Occurrences(tt.input)
			assert.Equal(t, tt.expected, got)
			for _, occ := range got {
				assert.Equal(t, occ.Raw, tt.input[occ.Start:occ.End])
			}
		})
	}
}

func TestScanner_Balance(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []BraceIssue
	}{
		{
			name:     "balanced",
			input:    "{A} and {B}",
			expected: nil,
		},
		{
			name:  "unmatched opening",
			input: "test { unclosed",
			expected: []BraceIssue{
				{Kind: BraceIssueUnmatchedOpen, Start: 5, End: 15},
			},
		},
		{
			name:  "unmatched closing",
			input: "test } extra",
			expected: []BraceIssue{
				{Kind: BraceIssueUnmatchedClose, Start: 5, End: 6},
			},
		},
		{
			name:  "closing reset lets later issues surface",
			input: "} {A} } {",
			expected: []BraceIssue{
				{Kind: BraceIssueUnmatchedClose, Start: 0, End: 1},
				{Kind: BraceIssueUnmatchedClose, Start: 6, End: 7},
				{Kind: BraceIssueUnmatchedOpen, Start: 8, End: 9},
			},
		},
		{
			name:  "nested open reports outermost",
			input: "{a {b}",
			expected: []BraceIssue{
				{Kind: BraceIssueUnmatchedOpen, Start: 0, End: 6},
			},
		},
		{
			name:     "escaped braces ignored",
			input:    `\{ and \}`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner(nil)
			assert.Equal(t, tt.expected, s.Balance(tt.input))
		})
	}
}

func TestBraceIssueKind_String(t *testing.T) {
	assert.Equal(t, BraceIssueNameUnmatchedOpen, BraceIssueUnmatchedOpen.String())
	assert.Equal(t, BraceIssueNameUnmatchedClose, BraceIssueUnmatchedClose.String())
}
