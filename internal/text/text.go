// Package text provides the lexical primitives shared by every classifier:
// tokenization with optional stopword removal and stemming, character-class
// predicates over edit spans, part-of-speech-aware sense mapping, sentence
// segmentation, and the word/sentence span expansion used to derive the
// context around an edit.
//
// Everything here is a pure function of its input plus static linguistic
// resources; shared resources (the sentence segmenter) are loaded exactly
// once and are read-only afterwards, so all functions are safe for
// concurrent use.
package text

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

// tokenRegex extracts word tokens: letter/digit runs with an optional
// apostrophe clitic ("don't", "cat's").
var tokenRegex = regexp.MustCompile(`[a-zA-Z0-9]+(?:'[a-zA-Z]+)?`)

// Sense is a WordNet-style part-of-speech sense letter used to qualify
// dictionary and relatedness lookups.
type Sense string

// Sense letters. SenseNone marks tokens (punctuation, symbols) that have no
// lexical sense and therefore no entry in the semantic knowledge base.
const (
	SenseNone Sense = ""
	SenseNoun Sense = "n"
	SenseVerb Sense = "v"
	SenseAdj  Sense = "a"
	SenseAdv  Sense = "r"
)

// Tokenize splits text into lowercase word tokens, optionally removing
// stopwords and stemming each token.
//
// The token set intentionally matches what the classifiers reason about:
// spelling and substitution require "exactly one word per side", and that
// judgement is made against this tokenization.
func Tokenize(text string, dropStopwords, stem bool) []string {
	raw := tokenRegex.FindAllString(strings.ToLower(text), -1)
	if len(raw) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if dropStopwords {
			if _, stop := stopwords[tok]; stop {
				continue
			}
		}
		if stem {
			tok = Stem(tok)
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Stem reduces a word to its snowball stem. If stemming fails the lowercase
// original is returned, matching how the rest of the pipeline degrades.
func Stem(word string) string {
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil {
		return strings.ToLower(word)
	}
	return stemmed
}

// StemSense stems a word and derives its sense letter from a Penn Treebank
// tag. Modals count as verbs and cardinal numbers as nouns, mirroring the
// part-of-speech compatibility classes of the substitution rule.
func StemSense(word, pennTag string) (string, Sense) {
	return Stem(word), SenseFromTag(pennTag)
}

// SenseFromTag maps a Penn Treebank tag onto a sense letter.
func SenseFromTag(pennTag string) Sense {
	switch {
	case strings.HasPrefix(pennTag, "NN") || pennTag == "CD":
		return SenseNoun
	case strings.HasPrefix(pennTag, "VB") || pennTag == "MD":
		return SenseVerb
	case strings.HasPrefix(pennTag, "JJ"):
		return SenseAdj
	case strings.HasPrefix(pennTag, "RB"):
		return SenseAdv
	default:
		return SenseNone
	}
}
