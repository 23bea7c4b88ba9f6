package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/redlinehq/redline/internal/diff"
	"github.com/redlinehq/redline/internal/grammar"
	"github.com/redlinehq/redline/internal/lexicon"
	"github.com/redlinehq/redline/internal/text"
)

// fakeDict answers membership from a fixed word set.
type fakeDict struct {
	words map[string]bool
}

func (d fakeDict) Contains(word string) bool {
	return d.words[strings.ToLower(word)]
}

// fakeTagger tags from a fixed map, defaulting to NN, and counts calls so
// tests can assert which rules ran.
type fakeTagger struct {
	tags  map[string]string
	calls int
}

func (t *fakeTagger) Tag(tokens []string) []string {
	t.calls++
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if tag, ok := t.tags[tok]; ok {
			out[i] = tag
		} else {
			out[i] = "NN"
		}
	}
	return out
}

// fakeThesaurus scores relatedness from a fixed pair table; synonyms and
// identical words score the maximum.
type fakeThesaurus struct {
	syns map[string][]string
	rel  map[[2]string]float64
}

func (th fakeThesaurus) Synonyms(word string, sense text.Sense) []string {
	return th.syns[lexicon.WordSense{Word: word, Sense: sense}.Key()]
}

func (th fakeThesaurus) Relatedness(a, b lexicon.WordSense, _ lexicon.Options) float64 {
	if a == b {
		return lexicon.MaxRelatedness
	}
	for _, syn := range th.syns[a.Key()] {
		if syn == b.Word {
			return lexicon.MaxRelatedness
		}
	}
	if v, ok := th.rel[[2]string{a.Key(), b.Key()}]; ok {
		return v
	}
	if v, ok := th.rel[[2]string{b.Key(), a.Key()}]; ok {
		return v
	}
	return 0
}

func (th fakeThesaurus) Matrix(vocab []lexicon.WordSense, opts lexicon.Options) *mat.SymDense {
	if len(vocab) == 0 {
		return &mat.SymDense{}
	}
	m := mat.NewSymDense(len(vocab), nil)
	for i := range vocab {
		m.SetSym(i, i, 1)
		for j := i + 1; j < len(vocab); j++ {
			m.SetSym(i, j, th.Relatedness(vocab[i], vocab[j], opts)/lexicon.MaxRelatedness)
		}
	}
	return m
}

// fakeChecker returns canned violations per input text and counts calls.
type fakeChecker struct {
	violations map[string][]grammar.Violation
	err        error
	calls      int
}

func (c *fakeChecker) Check(_ context.Context, text string) ([]grammar.Violation, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.violations[text], nil
}

func testDict() fakeDict {
	words := map[string]bool{}
	for _, w := range []string{
		"i", "saw", "the", "a", "cat", "dog", "car", "mat", "sat", "rested",
		"it", "was", "big", "large", "north", "can", "run", "on", "he",
		"go", "goes", "to", "school", "we", "sold", "units", "food", "meat",
		"ate",
	} {
		words[w] = true
	}
	return fakeDict{words: words}
}

func testTagger() *fakeTagger {
	return &fakeTagger{tags: map[string]string{
		"big":    "JJ",
		"large":  "JJ",
		"sat":    "VBD",
		"rested": "VBD",
		"can":    "MD",
		"run":    "VB",
	}}
}

func testThesaurus() fakeThesaurus {
	return fakeThesaurus{
		syns: map[string][]string{
			"big#a": {"larg", "great"},
		},
		rel: map[[2]string]float64{
			{"cat#n", "dog#n"}:  6,
			{"sat#v", "rest#v"}: 14,
		},
	}
}

func testPipeline() *Pipeline {
	return New(DefaultConfig(), testDict(), testTagger(), testThesaurus(), nil)
}

func TestCitationRule(t *testing.T) {
	p := testPipeline()

	tests := []struct {
		name string
		edit diff.Edit
		want bool
	}{
		{
			name: "quoted spans with different content",
			edit: diff.Edit{Before: `"to be or not to be"`, After: `"carpe diem"`},
			want: true,
		},
		{
			name: "guillemets against straight quotes",
			edit: diff.Edit{Before: `"alpha"`, After: "«beta»"},
			want: true,
		},
		{
			name: "identical quoted spans",
			edit: diff.Edit{Before: `"same"`, After: `"same"`},
			want: false,
		},
		{
			name: "only one side quoted",
			edit: diff.Edit{Before: `"quoted"`, After: "plain"},
			want: false,
		},
		{
			name: "plain words",
			edit: diff.Edit{Before: "big", After: "large"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.isCitation(tt.edit); got != tt.want {
				t.Errorf("isCitation(%v) = %v, want %v", tt.edit, got, tt.want)
			}
		})
	}
}

func TestFormattingRule(t *testing.T) {
	p := testPipeline()

	tests := []struct {
		name     string
		edit     diff.Edit
		original string
		modified string
		want     bool
	}{
		{
			name:     "symbol replaced by symbol",
			edit:     diff.Edit{Before: ";", After: ",", Pos1: 5, Pos2: 5},
			original: "Hello; world",
			modified: "Hello, world",
			want:     true,
		},
		{
			name:     "comma inserted between words",
			edit:     diff.Edit{Before: "", After: ",", Pos1: 5, Pos2: 5},
			original: "Hello world",
			modified: "Hello, world",
			want:     true,
		},
		{
			name:     "hyphen inserted inside a word",
			edit:     diff.Edit{Before: "", After: "-", Pos1: 2, Pos2: 2},
			original: "cooperate",
			modified: "co-operate",
			want:     false,
		},
		{
			name:     "comma deleted between words",
			edit:     diff.Edit{Before: ",", After: "", Pos1: 5, Pos2: 5},
			original: "Hello, world",
			modified: "Hello world",
			want:     true,
		},
		{
			name:     "symbol inserted at document start",
			edit:     diff.Edit{Before: "", After: "*", Pos1: 0, Pos2: 0},
			original: "abc",
			modified: "*abc",
			want:     true,
		},
		{
			name:     "word replaced by word",
			edit:     diff.Edit{Before: "big", After: "large", Pos1: 4, Pos2: 4},
			original: "the big cat",
			modified: "the large cat",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.isFormatting(tt.edit, tt.original, tt.modified); got != tt.want {
				t.Errorf("isFormatting(%v) = %v, want %v", tt.edit, got, tt.want)
			}
		})
	}
}

func TestSpellingRule(t *testing.T) {
	p := testPipeline()

	tests := []struct {
		name string
		edit diff.Edit
		want SpellingResult
	}{
		{
			name: "transposition fixed",
			edit: diff.Edit{Before: "teh", After: "the"},
			want: SpellingMatch,
		},
		{
			name: "both words unknown",
			edit: diff.Edit{Before: "qzx", After: "qzy"},
			want: SpellingIndeterminate,
		},
		{
			name: "correction too far away",
			edit: diff.Edit{Before: "xxxxxx", After: "the"},
			want: SpellingNoMatch,
		},
		{
			name: "case normalization",
			edit: diff.Edit{Before: "north", After: "North"},
			want: SpellingMatch,
		},
		{
			name: "two valid words",
			edit: diff.Edit{Before: "big", After: "large"},
			want: SpellingNoMatch,
		},
		{
			name: "multi-word side",
			edit: diff.Edit{Before: "the cat", After: "dog"},
			want: SpellingNoMatch,
		},
		{
			name: "empty before",
			edit: diff.Edit{Before: "", After: "the"},
			want: SpellingNoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.spelling(tt.edit); got != tt.want {
				t.Errorf("spelling(%v) = %v, want %v", tt.edit, got, tt.want)
			}
		})
	}
}

func TestSubstitutionRule(t *testing.T) {
	p := testPipeline()

	tests := []struct {
		name string
		edit diff.Edit
		want SubstitutionResult
	}{
		{
			name: "synonym swap",
			edit: diff.Edit{Before: "big", After: "large"},
			want: SubstitutionSynonym,
		},
		{
			name: "related words",
			edit: diff.Edit{Before: "cat", After: "dog"},
			want: SubstitutionRelated,
		},
		{
			name: "unrelated words",
			edit: diff.Edit{Before: "cat", After: "car"},
			want: SubstitutionUnrelated,
		},
		{
			name: "incompatible word classes",
			edit: diff.Edit{Before: "big", After: "cat"},
			want: SubstitutionNotApplicable,
		},
		{
			name: "modal against verb",
			edit: diff.Edit{Before: "can", After: "run"},
			want: SubstitutionUnrelated,
		},
		{
			name: "word unknown to dictionary",
			edit: diff.Edit{Before: "cat", After: "qzxv"},
			want: SubstitutionIndeterminate,
		},
		{
			name: "multi-word side",
			edit: diff.Edit{Before: "the big cat", After: "dog"},
			want: SubstitutionNotApplicable,
		},
		{
			name: "empty side",
			edit: diff.Edit{Before: "", After: "cat"},
			want: SubstitutionNotApplicable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.substitution(tt.edit); got != tt.want {
				t.Errorf("substitution(%v) = %v, want %v", tt.edit, got, tt.want)
			}
		})
	}
}

func TestGrammarRule(t *testing.T) {
	grammarViolation := grammar.Violation{
		RuleID: "HE_VERB_AGR", CategoryID: "GRAMMAR", IssueType: "grammar",
	}
	spellingViolation := grammar.Violation{
		RuleID: "MORFOLOGIK_RULE_EN_US", CategoryID: "TYPOS", IssueType: "misspelling",
	}

	tests := []struct {
		name    string
		checker GrammarChecker
		edit    diff.Edit
		want    bool
	}{
		{
			name: "violation fixed",
			checker: &fakeChecker{violations: map[string][]grammar.Violation{
				"He go to school.": {grammarViolation},
			}},
			edit: diff.Edit{Before: "He go to school.", After: "He goes to school."},
			want: true,
		},
		{
			name:    "nothing wrong before",
			checker: &fakeChecker{violations: map[string][]grammar.Violation{}},
			edit:    diff.Edit{Before: "He goes to school.", After: "He walks to school."},
			want:    false,
		},
		{
			name: "still broken after",
			checker: &fakeChecker{violations: map[string][]grammar.Violation{
				"He go to school.":   {grammarViolation},
				"He gone to school.": {grammarViolation},
			}},
			edit: diff.Edit{Before: "He go to school.", After: "He gone to school."},
			want: false,
		},
		{
			name: "only spelling violations before",
			checker: &fakeChecker{violations: map[string][]grammar.Violation{
				"I saw teh cat.": {spellingViolation},
			}},
			edit: diff.Edit{Before: "I saw teh cat.", After: "I saw the cat."},
			want: false,
		},
		{
			name:    "checker failure fails closed",
			checker: &fakeChecker{err: errors.New("rule server down")},
			edit:    diff.Edit{Before: "He go to school.", After: "He goes to school."},
			want:    false,
		},
		{
			name:    "no checker configured",
			checker: nil,
			edit:    diff.Edit{Before: "He go to school.", After: "He goes to school."},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(DefaultConfig(), testDict(), testTagger(), testThesaurus(), tt.checker)
			if got := p.isGrammar(context.Background(), tt.edit); got != tt.want {
				t.Errorf("isGrammar(%v) = %v, want %v", tt.edit, got, tt.want)
			}
		})
	}
}

func TestTopicRule(t *testing.T) {
	p := testPipeline()

	t.Run("small change preserves topic", func(t *testing.T) {
		original := "The cat sat on the mat. The cat ate food."
		edit := diff.Edit{Before: "food", After: "meat", Pos1: strings.Index(original, "food")}
		if got := p.topic(edit, original); got != TopicPreserved {
			t.Errorf("topic() = %v, want TopicPreserved", got)
		}
	})

	t.Run("full replacement diverges", func(t *testing.T) {
		original := "Cats sleep all day."
		edit := diff.Edit{Before: original, After: "Stock markets fell sharply.", Pos1: 0}
		if got := p.topic(edit, original); got != TopicDiverged {
			t.Errorf("topic() = %v, want TopicDiverged", got)
		}
	})

	t.Run("no features is indeterminate", func(t *testing.T) {
		original := "of the and"
		edit := diff.Edit{Before: original, After: "with from into", Pos1: 0}
		if got := p.topic(edit, original); got != TopicIndeterminate {
			t.Errorf("topic() = %v, want TopicIndeterminate", got)
		}
	})

	t.Run("zero mass on one side is indeterminate", func(t *testing.T) {
		original := "the of and"
		edit := diff.Edit{Before: original, After: "cats sleep", Pos1: 0}
		if got := p.topic(edit, original); got != TopicIndeterminate {
			t.Errorf("topic() = %v, want TopicIndeterminate", got)
		}
	})
}

func TestRephrasingRule(t *testing.T) {
	p := testPipeline()

	sentenceEdit := func(before, after string) editContext {
		return editContext{
			raw:  diff.Edit{Before: before, After: after},
			word: diff.Edit{Before: before, After: after},
			sent: diff.Edit{Before: before, After: after},
		}
	}

	tests := []struct {
		name   string
		before string
		after  string
		want   bool
	}{
		{
			name:   "related verb swap scores high",
			before: "The cat sat on the mat.",
			after:  "The cat rested on the mat.",
			want:   true,
		},
		{
			name:   "unrelated sentences score low",
			before: "The cat sat on the mat.",
			after:  "Profits dropped again yesterday.",
			want:   false,
		},
		{
			name:   "number change disqualifies",
			before: "We sold 5 units.",
			after:  "We sold 7 units.",
			want:   false,
		},
		{
			name:   "stopword-only sentence",
			before: "Of the and.",
			after:  "The cat sat on the mat.",
			want:   false,
		},
		{
			name:   "too many sentences",
			before: "One point. Two point. Three point. Four point.",
			after:  "One point. Two point. Three point.",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.isRephrasing(sentenceEdit(tt.before, tt.after)); got != tt.want {
				t.Errorf("isRephrasing(%q, %q) = %v, want %v", tt.before, tt.after, got, tt.want)
			}
		})
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{Undefined, "undefined"},
		{Citation, "citation"},
		{Formatting, "formatting"},
		{Spelling, "spelling"},
		{Substitution, "substitution"},
		{Rephrasing, "rephrasing"},
		{Grammar, "grammar"},
		{TopicShift, "topic-shift"},
		{Category(99), "undefined"},
	}

	for _, tt := range tests {
		if got := tt.category.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", int(tt.category), got, tt.want)
		}
	}
}
