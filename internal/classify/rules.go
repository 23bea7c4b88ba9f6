package classify

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/redlinehq/redline/internal/diff"
	"github.com/redlinehq/redline/internal/grammar"
	"github.com/redlinehq/redline/internal/lexicon"
	"github.com/redlinehq/redline/internal/similarity"
	"github.com/redlinehq/redline/internal/text"
	"github.com/redlinehq/redline/internal/topics"
)

// isCitation matches edits that replace one quoted span with a different
// quoted span.
func (p *Pipeline) isCitation(e diff.Edit) bool {
	return text.IsQuote(e.Before) && text.IsQuote(e.After) && e.Before != e.After
}

// isFormatting matches punctuation and formatting-symbol changes. A pure
// insertion or deletion of a symbol only counts when a character flanking
// the edit position is a non-letter; a symbol dropped into the middle of a
// word fuses or splits it and is not formatting.
func (p *Pipeline) isFormatting(e diff.Edit, original, modified string) bool {
	beforeSym := text.IsFormattingSymbol(e.Before)
	afterSym := text.IsFormattingSymbol(e.After)

	if beforeSym && afterSym {
		return true
	}
	if afterSym && e.Before == "" {
		return nonLetterNeighbor(original, e.Pos1)
	}
	if beforeSym && e.After == "" {
		return nonLetterNeighbor(modified, e.Pos2)
	}
	return false
}

// nonLetterNeighbor reports whether either character flanking pos is not a
// letter. Positions at a document edge count as non-letters.
func nonLetterNeighbor(doc string, pos int) bool {
	if pos <= 0 || pos >= len(doc) {
		return true
	}
	left, _ := utf8.DecodeLastRuneInString(doc[:pos])
	right, _ := utf8.DecodeRuneInString(doc[pos:])
	return !unicode.IsLetter(left) || !unicode.IsLetter(right)
}

// spelling judges a single-word edit against the dictionary:
//
//	before out, after out  -> Indeterminate, nothing can judge the edit
//	before out, after in   -> Match when within SpellingMaxDistance
//	before in, after in    -> Match only for pure case normalization
//
// Anything else, including multi-word sides, is NoMatch.
func (p *Pipeline) spelling(e diff.Edit) SpellingResult {
	w1 := text.Tokenize(e.Before, false, false)
	w2 := text.Tokenize(e.After, false, false)
	if len(w1) != 1 || len(w2) != 1 {
		return SpellingNoMatch
	}
	before, after := w1[0], w2[0]

	misspelled := !p.dict.Contains(before)
	correct := p.dict.Contains(after)

	switch {
	case misspelled && !correct:
		return SpellingIndeterminate
	case misspelled && correct:
		if diff.Levenshtein(before, after) <= p.cfg.SpellingMaxDistance {
			return SpellingMatch
		}
	case !misspelled && correct:
		// tokens are lowercased, so equality means the raw edit only
		// changed letter case (e.g. north -> North)
		if before == after {
			return SpellingMatch
		}
	}
	return SpellingNoMatch
}

// substitution judges whether a single-word edit swaps a word for a
// synonym or a semantically related word. Both words must be known to the
// dictionary and belong to compatible word classes.
func (p *Pipeline) substitution(e diff.Edit) SubstitutionResult {
	w1 := text.Tokenize(e.Before, false, false)
	w2 := text.Tokenize(e.After, false, false)
	if len(w1) != 1 || len(w2) != 1 {
		return SubstitutionNotApplicable
	}
	before, after := w1[0], w2[0]

	if !p.dict.Contains(before) || !p.dict.Contains(after) {
		return SubstitutionIndeterminate
	}

	tag1 := p.tagger.Tag(w1)[0]
	tag2 := p.tagger.Tag(w2)[0]
	if !compatibleTags(tag1, tag2) {
		return SubstitutionNotApplicable
	}

	stem1, sense1 := text.StemSense(before, tag1)
	stem2, sense2 := text.StemSense(after, tag2)
	if sense1 == text.SenseNone || sense2 == text.SenseNone {
		return SubstitutionIndeterminate
	}

	for _, syn := range p.thesaurus.Synonyms(stem1, sense1) {
		if syn == stem2 {
			return SubstitutionSynonym
		}
	}

	score := p.thesaurus.Relatedness(
		lexicon.WordSense{Word: stem1, Sense: sense1},
		lexicon.WordSense{Word: stem2, Sense: sense2},
		lexicon.Options{AllSenses: true},
	)
	if score >= p.cfg.SubstitutionMin {
		return SubstitutionRelated
	}
	return SubstitutionUnrelated
}

// compatibleTags reports whether two Penn Treebank tags describe
// substitutable word classes: same coarse class, a modal/verb pair, or a
// numeral/noun pair.
func compatibleTags(tag1, tag2 string) bool {
	if coarseTag(tag1) == coarseTag(tag2) {
		return true
	}
	if (tag1 == "MD" && strings.HasPrefix(tag2, "VB")) || (strings.HasPrefix(tag1, "VB") && tag2 == "MD") {
		return true
	}
	if (tag1 == "CD" && strings.HasPrefix(tag2, "NN")) || (strings.HasPrefix(tag1, "NN") && tag2 == "CD") {
		return true
	}
	return false
}

func coarseTag(tag string) string {
	if len(tag) < 2 {
		return tag
	}
	return tag[:2]
}

// isRephrasing scores the semantic similarity of the sentence pair around
// an edit. Rephrasing must be the only explanation left: if any sub-edit
// within the sentence pair is itself a citation, formatting, or spelling
// change, or swaps one number/symbol for another, the rule does not apply.
func (p *Pipeline) isRephrasing(ec editContext) bool {
	sentBefore, sentAfter := ec.sent.Before, ec.sent.After

	for _, sub := range diff.Detect(sentBefore, sentAfter) {
		if p.isCitation(sub) {
			return false
		}
		if p.isFormatting(sub, sentBefore, sentAfter) {
			return false
		}
		if p.spelling(sub) != SpellingNoMatch {
			return false
		}
		if (text.IsNumber(sub.Before) || text.IsSymbol(sub.Before)) &&
			(text.IsNumber(sub.After) || text.IsSymbol(sub.After)) {
			return false
		}
	}

	n1 := text.SentenceCount(sentBefore)
	n2 := text.SentenceCount(sentAfter)
	if (n1 != 1 && n1 != 2) || (n2 != 1 && n2 != 2) {
		return false
	}

	words1 := text.Tokenize(sentBefore, true, false)
	words2 := text.Tokenize(sentAfter, true, false)
	if len(words1) == 0 || len(words2) == 0 {
		return false
	}

	set1 := senseKeys(words1, p.tagger.Tag(words1))
	set2 := senseKeys(words2, p.tagger.Tag(words2))

	vocab := make([]string, 0, len(set1)+len(set2))
	for k := range set1 {
		vocab = append(vocab, k)
	}
	for k := range set2 {
		if _, dup := set1[k]; !dup {
			vocab = append(vocab, k)
		}
	}
	sort.Strings(vocab)

	senses := make([]lexicon.WordSense, len(vocab))
	for i, k := range vocab {
		senses[i] = lexicon.ParseWordSense(k)
	}

	a, b := similarity.PresenceVectors(vocab, set1, set2)
	w := p.thesaurus.Matrix(senses, lexicon.Options{AllSenses: true})

	sim := similarity.Score(a, b, w)
	slog.Debug("sentence similarity", "score", sim, "vocab", len(vocab))
	return sim >= p.cfg.RephrasingMin
}

// senseKeys folds tokens and their tags into the distinct stem#sense keys
// that make up a sentence's semantic bag.
func senseKeys(tokens, tags []string) map[string]struct{} {
	keys := make(map[string]struct{}, len(tokens))
	for i, tok := range tokens {
		stem, sense := text.StemSense(tok, tags[i])
		keys[lexicon.WordSense{Word: stem, Sense: sense}.Key()] = struct{}{}
	}
	return keys
}

// isGrammar matches edits that fix a grammar problem: the original
// sentence has at least one non-spelling violation and the revised
// sentence has none. Checker failures never escape the rule; a rule engine
// that cannot answer means the rule does not match.
func (p *Pipeline) isGrammar(ctx context.Context, e diff.Edit) bool {
	if p.checker == nil {
		return false
	}

	vBefore, err := p.checker.Check(ctx, e.Before)
	if err != nil {
		slog.Debug("grammar check failed", "side", "before", "error", err)
		return false
	}
	vAfter, err := p.checker.Check(ctx, e.After)
	if err != nil {
		slog.Debug("grammar check failed", "side", "after", "error", err)
		return false
	}

	return len(grammar.ExcludeSpelling(vBefore)) > 0 && len(grammar.ExcludeSpelling(vAfter)) == 0
}

// topic measures whether applying the edit moves the document's feature
// distribution: the modified document is reconstructed by splicing the
// edit into the original, and the two versions are compared over their
// shared feature vocabulary.
func (p *Pipeline) topic(e diff.Edit, original string) TopicResult {
	modified := topics.Splice(original, e)

	features := topics.Features(original, modified)
	if len(features) == 0 {
		return TopicIndeterminate
	}

	before := topics.Distribution(features, original)
	after := topics.Distribution(features, modified)
	if topics.Mass(before) == 0 || topics.Mass(after) == 0 {
		return TopicIndeterminate
	}

	if topics.Divergence(before, after) > p.cfg.DivergenceMax {
		return TopicDiverged
	}
	return TopicPreserved
}
