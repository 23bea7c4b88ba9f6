// Package topics measures whether an edit drifts away from what a document
// talks about. It models each document version as a distribution over shared
// content-word features and scores the shift with Jensen-Shannon divergence.
package topics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/redlinehq/redline/internal/diff"
	"github.com/redlinehq/redline/internal/text"
)

// Splice applies a single edit to the original document, producing the
// document text as it reads after the change. Positions outside the
// document are clamped rather than panicking.
func Splice(original string, e diff.Edit) string {
	start := e.Pos1
	if start < 0 {
		start = 0
	}
	if start > len(original) {
		start = len(original)
	}
	end := start + len(e.Before)
	if end > len(original) {
		end = len(original)
	}
	return original[:start] + e.After + original[end:]
}

// Features extracts the shared feature vocabulary of two document versions:
// the sorted union of their stemmed content words. Stopwords carry no topic
// signal and are dropped.
func Features(before, after string) []string {
	seen := make(map[string]struct{})
	for _, tok := range text.Tokenize(before, true, true) {
		seen[tok] = struct{}{}
	}
	for _, tok := range text.Tokenize(after, true, true) {
		seen[tok] = struct{}{}
	}
	if len(seen) == 0 {
		return nil
	}

	features := make([]string, 0, len(seen))
	for f := range seen {
		features = append(features, f)
	}
	sort.Strings(features)
	return features
}

// Distribution maps a document onto the feature vocabulary: each entry is
// the relative frequency of that feature among all feature occurrences in
// the document. A document containing no features yields all zeros.
func Distribution(features []string, doc string) []float64 {
	index := make(map[string]int, len(features))
	for i, f := range features {
		index[f] = i
	}

	counts := make([]float64, len(features))
	var total float64
	for _, tok := range text.Tokenize(doc, true, true) {
		if i, ok := index[tok]; ok {
			counts[i]++
			total++
		}
	}
	if total == 0 {
		return counts
	}
	for i := range counts {
		counts[i] /= total
	}
	return counts
}

// Mass sums a distribution. A well-formed distribution sums to 1; zero mass
// means the document shares no features with the vocabulary.
func Mass(dist []float64) float64 {
	var sum float64
	for _, v := range dist {
		sum += v
	}
	return sum
}

// Divergence scores how far apart two feature distributions are, normalized
// to [0, 1]: 0 for identical distributions, 1 for disjoint ones.
// Jensen-Shannon divergence is bounded by ln 2, so dividing by ln 2 yields
// the normalized score.
func Divergence(p, q []float64) float64 {
	if len(p) != len(q) || len(p) == 0 {
		return 0
	}
	d := stat.JensenShannon(p, q) / math.Ln2
	if d < 0 {
		return 0
	}
	if d > 1 {
		return 1
	}
	return d
}
