package text

import (
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// The punkt sentence segmenter is shared, read-only linguistic state;
// initialization is guarded so concurrent classifiers never race a load.
var (
	segmenterOnce sync.Once
	segmenter     *sentences.DefaultSentenceTokenizer
	segmenterErr  error
)

// terminatorRegex backs the degraded sentence count when the segmenter
// cannot be built.
var terminatorRegex = regexp.MustCompile(`[.!?]+`)

func sentenceTokenizer() (*sentences.DefaultSentenceTokenizer, error) {
	segmenterOnce.Do(func() {
		segmenter, segmenterErr = english.NewSentenceTokenizer(nil)
		if segmenterErr != nil {
			slog.Debug("sentence segmenter unavailable", "error", segmenterErr)
		}
	})
	return segmenter, segmenterErr
}

// Span is a half-open [Start, End) byte range within a document.
type Span struct {
	Start int
	End   int
}

// SentenceCount returns the number of sentences the segmenter finds.
// Whitespace-only text counts zero; any other text counts at least one.
func SentenceCount(s string) int {
	if strings.TrimSpace(s) == "" {
		return 0
	}

	tok, err := sentenceTokenizer()
	if err != nil {
		// degrade to terminator counting rather than failing the caller
		if n := len(terminatorRegex.FindAllString(s, -1)); n > 0 {
			return n
		}
		return 1
	}

	n := 0
	for _, sent := range tok.Tokenize(s) {
		if strings.TrimSpace(sent.Text) != "" {
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	return n
}

// SentenceSpans segments a document into ordered, non-overlapping sentence
// byte ranges. Inter-sentence whitespace may fall between spans.
func SentenceSpans(doc string) []Span {
	if strings.TrimSpace(doc) == "" {
		return nil
	}

	tok, err := sentenceTokenizer()
	if err != nil {
		return []Span{{0, len(doc)}}
	}

	var spans []Span
	cursor := 0
	for _, sent := range tok.Tokenize(doc) {
		// trim the segmenter's padding so spans cover sentence content only
		t := strings.TrimSpace(sent.Text)
		if t == "" {
			continue
		}
		idx := strings.Index(doc[cursor:], t)
		if idx < 0 {
			continue
		}
		start := cursor + idx
		spans = append(spans, Span{start, start + len(t)})
		cursor = start + len(t)
	}

	if len(spans) == 0 {
		spans = []Span{{0, len(doc)}}
	}
	return spans
}

// SentenceSpan expands the byte range [pos, pos+length) to the enclosing
// sentence boundaries. Zero-width ranges (pure insertions) take the sentence
// containing the insertion point; positions in inter-sentence gaps or past
// the end snap to the nearest sentence.
func SentenceSpan(doc string, pos, length int) (int, int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(doc) {
		pos = len(doc)
	}
	hi := pos + length
	if hi > len(doc) {
		hi = len(doc)
	}
	if hi == pos {
		hi = pos + 1
	}

	spans := SentenceSpans(doc)
	if len(spans) == 0 {
		return 0, len(doc)
	}

	start, end := -1, -1
	for _, sp := range spans {
		if sp.End <= pos {
			continue
		}
		if sp.Start >= hi {
			break
		}
		if start < 0 {
			start = sp.Start
		}
		end = sp.End
	}

	if start < 0 {
		last := spans[len(spans)-1]
		if pos >= last.End {
			return last.Start, last.End
		}
		for _, sp := range spans {
			if sp.Start >= pos {
				return sp.Start, sp.End
			}
		}
		return last.Start, last.End
	}
	return start, end
}
