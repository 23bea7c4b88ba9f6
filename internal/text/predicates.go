package text

import (
	"regexp"
	"strings"
	"unicode"
)

// numberRegex accepts signed integers and decimals with optional grouping
// ("42", "-3.14", "3,000").
var numberRegex = regexp.MustCompile(`^[+-]?[0-9]+(?:[.,][0-9]+)*$`)

// quotePairs maps opening quote characters to their closing counterparts.
var quotePairs = map[rune]rune{
	'"': '"',
	'“': '”',
	'«': '»',
	'„': '“',
}

// IsQuote reports whether the span is a quotation: optionally padded by
// whitespace, delimited by a matching quote pair, with non-empty content.
func IsQuote(s string) bool {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) < 3 {
		return false
	}
	closing, ok := quotePairs[runes[0]]
	return ok && runes[len(runes)-1] == closing
}

// IsFormattingSymbol reports whether the span consists entirely of
// punctuation, symbols, or whitespace (no letters or digits). These are the
// spans the formatting rule treats as layout rather than content.
func IsFormattingSymbol(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsNumber reports whether the span is a plain numeric literal.
func IsNumber(s string) bool {
	return numberRegex.MatchString(strings.TrimSpace(s))
}

// IsSymbol reports whether the span is a run of punctuation or symbol
// characters with no letters, digits, or spaces ("%", "->", "§").
func IsSymbol(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
