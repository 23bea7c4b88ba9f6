// Package classify assigns a semantic category to each edit between two
// versions of a document.
//
// The package implements an ordered chain of heuristic rules. Each rule
// tests one hypothesis about an edit (citation update, formatting tweak,
// spelling fix, word substitution, rephrasing, grammar correction, topic
// shift) and the first rule that matches decides the category. Edits no
// rule claims are a valid outcome and stay Undefined.
package classify

import "github.com/redlinehq/redline/internal/diff"

// Category is the classification assigned to an edit.
type Category int

// Categories, in chain priority order. Undefined means no rule matched.
const (
	Undefined Category = iota
	Citation
	Formatting
	Spelling
	Substitution
	Rephrasing
	Grammar
	TopicShift
)

// String returns the category name used in reports.
func (c Category) String() string {
	switch c {
	case Citation:
		return "citation"
	case Formatting:
		return "formatting"
	case Spelling:
		return "spelling"
	case Substitution:
		return "substitution"
	case Rephrasing:
		return "rephrasing"
	case Grammar:
		return "grammar"
	case TopicShift:
		return "topic-shift"
	default:
		return "undefined"
	}
}

// Record pairs an edit with its category. Index is the edit's position in
// the detected edit sequence; classification runs in parallel, and the
// index lets output order follow input order regardless of completion
// order.
type Record struct {
	Edit     diff.Edit
	Category Category
	Index    int
}

// SpellingResult is the spelling rule's verdict.
type SpellingResult int

// Spelling verdicts. Indeterminate means both words are unknown to the
// dictionary, so neither this rule nor any later one can judge the edit.
const (
	SpellingIndeterminate SpellingResult = iota - 1
	SpellingNoMatch
	SpellingMatch
)

// SubstitutionResult is the substitution rule's verdict.
type SubstitutionResult int

// Substitution verdicts. NotApplicable marks shape mismatches (multi-word
// sides, incompatible word classes); Indeterminate marks missing dictionary
// or sense data.
const (
	SubstitutionNotApplicable SubstitutionResult = iota - 2
	SubstitutionIndeterminate
	SubstitutionUnrelated
	SubstitutionRelated
	SubstitutionSynonym
)

// TopicResult is the topic rule's verdict.
type TopicResult int

// Topic verdicts. Indeterminate means the document pair yielded no usable
// feature distribution.
const (
	TopicIndeterminate TopicResult = iota - 1
	TopicDiverged
	TopicPreserved
)
