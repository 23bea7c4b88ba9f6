package text

import (
	"log/slog"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// ProseTagger assigns Penn Treebank part-of-speech tags using the prose
// perceptron model. Construct one at startup and share it; tagging is a pure
// function of the token slice and safe for concurrent use.
type ProseTagger struct{}

// NewTagger returns the production part-of-speech tagger.
func NewTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag returns one Penn Treebank tag per input token, same length as tokens.
//
// The tokens are joined and run through prose with segmentation and entity
// extraction disabled, then prose's token stream is aligned back onto the
// caller's tokens. prose may split clitics ("don't" into "do"/"n't"), so the
// alignment scans ahead a few positions; any token that cannot be matched
// keeps the default "NN" tag.
func (pt *ProseTagger) Tag(tokens []string) []string {
	tags := make([]string, len(tokens))
	for i := range tags {
		tags[i] = "NN"
	}
	if len(tokens) == 0 {
		return tags
	}

	doc, err := prose.NewDocument(strings.Join(tokens, " "),
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		slog.Debug("pos tagging unavailable", "error", err)
		return tags
	}

	stream := doc.Tokens()
	next := 0
	for i, tok := range tokens {
		for j := next; j < len(stream) && j < next+3; j++ {
			if strings.EqualFold(stream[j].Text, tok) {
				tags[i] = stream[j].Tag
				next = j + 1
				break
			}
		}
	}
	return tags
}
