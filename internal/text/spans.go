package text

import "unicode/utf8"

// isWordRune reports whether a rune can be part of a word token. Apostrophes
// count so that clitics ("don't") expand as one word.
func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '\'':
		return true
	}
	return false
}

// WordSpan expands the byte range [pos, pos+length) to word boundaries in
// doc. Zero-width ranges (pure insertions) expand around the insertion
// point. The returned range is clamped to the document, so callers may pass
// positions at either edge.
func WordSpan(doc string, pos, length int) (int, int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(doc) {
		pos = len(doc)
	}
	end := pos + length
	if end > len(doc) {
		end = len(doc)
	}
	if end < pos {
		end = pos
	}

	start := pos
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(doc[:start])
		if !isWordRune(r) {
			break
		}
		start -= size
	}
	for end < len(doc) {
		r, size := utf8.DecodeRuneInString(doc[end:])
		if !isWordRune(r) {
			break
		}
		end += size
	}
	return start, end
}
