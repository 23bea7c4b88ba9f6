package classify

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/redlinehq/redline/internal/diff"
	"github.com/redlinehq/redline/internal/grammar"
	"github.com/redlinehq/redline/internal/lexicon"
	"github.com/redlinehq/redline/internal/text"
)

// Dictionary answers word-membership queries.
type Dictionary interface {
	Contains(word string) bool
}

// Tagger assigns a part-of-speech tag to each token; the returned slice has
// the same length as the input.
type Tagger interface {
	Tag(tokens []string) []string
}

// Thesaurus provides synonym sets, pairwise relatedness, and the normalized
// relatedness matrix over a vocabulary.
type Thesaurus interface {
	Synonyms(word string, sense text.Sense) []string
	Relatedness(a, b lexicon.WordSense, opts lexicon.Options) float64
	Matrix(vocab []lexicon.WordSense, opts lexicon.Options) *mat.SymDense
}

// GrammarChecker reports rule violations in a piece of text.
type GrammarChecker interface {
	Check(ctx context.Context, text string) ([]grammar.Violation, error)
}

// Config carries the rule thresholds and the worker bound.
type Config struct {
	// SpellingMaxDistance is the largest edit distance between a
	// misspelling and its correction.
	SpellingMaxDistance int
	// SubstitutionMin is the least relatedness score (0..16 scale) for a
	// word swap to count as a substitution.
	SubstitutionMin float64
	// RephrasingMin is the least sentence similarity for a rewrite to
	// count as rephrasing.
	RephrasingMin float64
	// DivergenceMax is the feature divergence (0..1 scale) above which an
	// edit shifts the document topic.
	DivergenceMax float64
	// Workers bounds the classification worker pool. Zero picks
	// min(NumCPU, number of edits).
	Workers int
}

// DefaultConfig returns the tuned rule thresholds.
func DefaultConfig() Config {
	return Config{
		SpellingMaxDistance: 2,
		SubstitutionMin:     5,
		RephrasingMin:       0.3,
		DivergenceMax:       0.5,
	}
}

// Pipeline classifies edits by running each through the rule chain. All
// collaborators are read-only after construction, so a single Pipeline
// classifies many edits concurrently.
type Pipeline struct {
	cfg       Config
	dict      Dictionary
	tagger    Tagger
	thesaurus Thesaurus
	checker   GrammarChecker
}

// New builds a Pipeline around its collaborators. checker may be nil, in
// which case the grammar rule never matches.
func New(cfg Config, dict Dictionary, tagger Tagger, thesaurus Thesaurus, checker GrammarChecker) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		dict:      dict,
		tagger:    tagger,
		thesaurus: thesaurus,
		checker:   checker,
	}
}

// editContext is one edit viewed at the three granularities the rules work
// at: the raw character span, the enclosing words, and the enclosing
// sentences.
type editContext struct {
	raw  diff.Edit
	word diff.Edit
	sent diff.Edit
}

// buildContext derives the word- and sentence-level views of an edit from
// the two document texts.
func buildContext(e diff.Edit, original, modified string) editContext {
	ws1, we1 := text.WordSpan(original, e.Pos1, len(e.Before))
	ws2, we2 := text.WordSpan(modified, e.Pos2, len(e.After))
	ss1, se1 := text.SentenceSpan(original, e.Pos1, len(e.Before))
	ss2, se2 := text.SentenceSpan(modified, e.Pos2, len(e.After))

	return editContext{
		raw:  e,
		word: diff.Edit{Before: original[ws1:we1], After: modified[ws2:we2], Pos1: ws1, Pos2: ws2},
		sent: diff.Edit{Before: original[ss1:se1], After: modified[ss2:se2], Pos1: ss1, Pos2: ss2},
	}
}

// classifyOne runs the rule chain in priority order: cheap, specific rules
// first, expensive semantic comparisons last. The first match is final;
// later rules never override it.
func (p *Pipeline) classifyOne(ctx context.Context, ec editContext, original, modified string) Category {
	if p.isCitation(ec.raw) {
		return Citation
	}
	if p.isFormatting(ec.raw, original, modified) {
		return Formatting
	}

	switch p.spelling(ec.word) {
	case SpellingMatch:
		return Spelling
	case SpellingIndeterminate:
		return Undefined
	}

	switch p.substitution(ec.word) {
	case SubstitutionSynonym, SubstitutionRelated:
		return Substitution
	}

	if p.isRephrasing(ec) {
		return Rephrasing
	}
	if p.isGrammar(ctx, ec.sent) {
		return Grammar
	}
	if p.topic(ec.raw, original) == TopicDiverged {
		return TopicShift
	}
	return Undefined
}

// ClassifyAll classifies every edit of a document pair. Edits are validated
// against the documents first; classification then fans out over a bounded
// worker pool, and results keep the input order. Rule-internal service
// failures degrade to non-matches inside the rules, so the only error
// sources here are malformed input and context cancellation.
func (p *Pipeline) ClassifyAll(ctx context.Context, edits []diff.Edit, original, modified string) ([]Record, error) {
	if err := diff.Validate(edits, original, modified); err != nil {
		return nil, fmt.Errorf("cannot classify edits: %w", err)
	}
	if len(edits) == 0 {
		return nil, nil
	}

	records := make([]Record, len(edits))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workerCount(len(edits)))

	for i, e := range edits {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ec := buildContext(e, original, modified)
			records[i] = Record{Edit: e, Category: p.classifyOne(gctx, ec, original, modified), Index: i}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("classification complete", "edits", len(edits), "workers", p.workerCount(len(edits)))
	return records, nil
}

// workerCount bounds parallelism by CPU count and work size, never below
// one.
func (p *Pipeline) workerCount(n int) int {
	if p.cfg.Workers > 0 {
		return p.cfg.Workers
	}
	return max(min(runtime.NumCPU(), n), 1)
}
