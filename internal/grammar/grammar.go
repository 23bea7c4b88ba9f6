// Package grammar checks text against a LanguageTool-compatible rule
// server and reports rule violations. The classifier only cares whether a
// non-spelling violation exists, so the package also knows how to tell
// spelling rules apart from grammar rules.
package grammar

import (
	"context"
	"strings"
)

// Violation is a single rule match reported by the checker.
type Violation struct {
	RuleID     string // e.g. "UPPERCASE_SENTENCE_START"
	CategoryID string // e.g. "GRAMMAR", "TYPOS"
	IssueType  string // e.g. "grammar", "misspelling"
	Message    string
}

// IsSpelling reports whether the violation comes from a spelling rule
// rather than a grammar rule. LanguageTool marks these three ways depending
// on the language module, so all three are checked.
func (v Violation) IsSpelling() bool {
	if strings.EqualFold(v.IssueType, "misspelling") {
		return true
	}
	if strings.EqualFold(v.CategoryID, "TYPOS") {
		return true
	}
	id := strings.ToUpper(v.RuleID)
	return strings.Contains(id, "MORFOLOGIK") || strings.Contains(id, "HUNSPELL")
}

// ExcludeSpelling filters out spelling violations, keeping grammar ones.
func ExcludeSpelling(violations []Violation) []Violation {
	var out []Violation
	for _, v := range violations {
		if !v.IsSpelling() {
			out = append(out, v)
		}
	}
	return out
}

// Checker is the rule-engine seam the classification pipeline depends on.
// Implementations must be safe for concurrent use.
type Checker interface {
	Check(ctx context.Context, text string) ([]Violation, error)
}
