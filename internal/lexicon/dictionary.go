package lexicon

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

//go:embed data/dictionary.txt
var dictionaryData string

// Dictionary answers membership queries against a word list. The embedded
// list covers common English vocabulary; an optional word-list file (one
// word per line, e.g. /usr/share/dict/words) is unioned in when given.
type Dictionary struct {
	words map[string]struct{}
}

// NewDictionary builds the dictionary from the embedded word list, unioned
// with the optional extra word-list file. An empty path means embedded data
// only.
func NewDictionary(extraPath string) (*Dictionary, error) {
	d := &Dictionary{words: make(map[string]struct{})}
	d.addWords(dictionaryData)

	if extraPath != "" {
		raw, err := os.ReadFile(extraPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read word list %q: %w", extraPath, err)
		}
		d.addWords(string(raw))
	}

	slog.Debug("dictionary loaded", "words", len(d.words), "extraFile", extraPath != "")
	return d, nil
}

func (d *Dictionary) addWords(data string) {
	for _, line := range strings.Split(data, "\n") {
		word := strings.ToLower(strings.TrimSpace(line))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		d.words[word] = struct{}{}
	}
}

// Contains reports whether the word is in the dictionary. Lookup is
// case-insensitive; "North" and "north" are the same entry.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of known words.
func (d *Dictionary) Len() int {
	return len(d.words)
}
