// Package lexicon holds the lexical-semantic knowledge the classifiers
// consult: dictionary membership, synonym sets, and a bounded word-to-word
// relatedness measure over a curated relation graph.
//
// Both the dictionary and the relation graph ship as embedded data files
// parsed once at construction; instances are read-only afterwards and safe
// for concurrent use. They are plain values meant to be built at startup and
// injected into the classification pipeline, so tests can swap in doubles.
package lexicon

import (
	"strings"

	"github.com/redlinehq/redline/internal/text"
)

// MaxRelatedness is the upper bound of the relatedness scale. Identical
// words and synset members score exactly this; everything else scores lower.
const MaxRelatedness = 16.0

// WordSense is a sense-tagged word, the unit of every thesaurus lookup.
// Word is expected in stemmed, lowercase form.
type WordSense struct {
	Word  string
	Sense text.Sense
}

// Key renders the word#sense form used for vocabulary ordering.
func (ws WordSense) Key() string {
	return ws.Word + "#" + string(ws.Sense)
}

// ParseWordSense splits a word#sense key back into its parts. Keys without
// a separator map to a senseless word.
func ParseWordSense(key string) WordSense {
	if i := strings.LastIndex(key, "#"); i >= 0 {
		return WordSense{Word: key[:i], Sense: text.Sense(key[i+1:])}
	}
	return WordSense{Word: key}
}

// Options selects the scoring mode for relatedness lookups. It is threaded
// explicitly through every call rather than living in shared mutable state,
// so concurrent classifications cannot observe each other's settings.
type Options struct {
	// AllSenses scores across every sense the words are known under and
	// keeps the maximum, instead of trusting the caller-supplied sense
	// alone. Classifiers enable this: a part-of-speech tagger working on a
	// two-word context mis-tags often enough that pinning the sense would
	// miss real relations.
	AllSenses bool
}
