package lexicon

import (
	_ "embed"
	"log/slog"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/redlinehq/redline/internal/text"
)

//go:embed data/relations.tsv
var relationsData string

// Relation edge weights on the 0..16 scale. Synset membership scores
// MaxRelatedness and is handled separately; a two-hop path scores the weaker
// of its edges minus twoHopPenalty.
var relationWeights = map[string]float64{
	"form":     14, // inflectional variant (sat/sit, went/go)
	"hypernym": 10,
	"hyponym":  10,
	"holonym":  8,
	"meronym":  8,
	"related":  6,
	"antonym":  6, // antonyms are strongly associated, just not substitutable
}

const twoHopPenalty = 4.0

// Thesaurus provides synonym sets and a bounded relatedness measure over an
// embedded relation graph, in the spirit of path-based WordNet measures:
// synonyms score the maximum, direct relation edges carry curated weights,
// two-hop paths decay, unrelated pairs score zero.
type Thesaurus struct {
	synonyms map[WordSense]map[string]struct{}
	edges    map[WordSense]map[WordSense]float64
	senses   map[string][]text.Sense
}

// NewThesaurus parses the embedded relation graph. The data stores words in
// stemmed form, matching what StemSense produces, so lookups line up with
// classifier keys.
func NewThesaurus() *Thesaurus {
	t := &Thesaurus{
		synonyms: make(map[WordSense]map[string]struct{}),
		edges:    make(map[WordSense]map[WordSense]float64),
		senses:   make(map[string][]text.Sense),
	}

	for _, line := range strings.Split(relationsData, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "syn":
			// syn <sense> <member> <member>...
			if len(fields) < 4 {
				continue
			}
			t.addSynset(text.Sense(fields[1]), fields[2:])
		case "edge":
			// edge <kind> <word#sense> <word#sense>
			if len(fields) != 4 {
				continue
			}
			weight, ok := relationWeights[fields[1]]
			if !ok {
				continue
			}
			t.addEdge(ParseWordSense(fields[2]), ParseWordSense(fields[3]), weight)
		}
	}

	slog.Debug("thesaurus loaded", "synsetEntries", len(t.synonyms), "edgeNodes", len(t.edges))
	return t
}

func (t *Thesaurus) addSynset(sense text.Sense, members []string) {
	for _, m := range members {
		ws := WordSense{Word: m, Sense: sense}
		set := t.synonyms[ws]
		if set == nil {
			set = make(map[string]struct{})
			t.synonyms[ws] = set
		}
		for _, other := range members {
			if other != m {
				set[other] = struct{}{}
			}
		}
		t.addSense(ws)
	}
}

func (t *Thesaurus) addEdge(a, b WordSense, weight float64) {
	for _, pair := range [][2]WordSense{{a, b}, {b, a}} {
		m := t.edges[pair[0]]
		if m == nil {
			m = make(map[WordSense]float64)
			t.edges[pair[0]] = m
		}
		if weight > m[pair[1]] {
			m[pair[1]] = weight
		}
	}
	t.addSense(a)
	t.addSense(b)
}

func (t *Thesaurus) addSense(ws WordSense) {
	for _, s := range t.senses[ws.Word] {
		if s == ws.Sense {
			return
		}
	}
	t.senses[ws.Word] = append(t.senses[ws.Word], ws.Sense)
}

// Synonyms returns the members of the word's synonym set for the given
// sense, sorted, excluding the word itself. Unknown words return nil.
func (t *Thesaurus) Synonyms(word string, sense text.Sense) []string {
	set := t.synonyms[WordSense{Word: word, Sense: sense}]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Relatedness scores how close two sense-tagged words are, bounded to
// [0, MaxRelatedness]. With opts.AllSenses it scores every sense pair the
// graph knows for the two words and returns the maximum.
func (t *Thesaurus) Relatedness(a, b WordSense, opts Options) float64 {
	if !opts.AllSenses {
		return t.relatednessExact(a, b)
	}

	best := t.relatednessExact(a, b)
	for _, sa := range t.sensesOf(a) {
		for _, sb := range t.sensesOf(b) {
			score := t.relatednessExact(WordSense{Word: a.Word, Sense: sa}, WordSense{Word: b.Word, Sense: sb})
			if score > best {
				best = score
			}
		}
	}
	return best
}

// sensesOf lists the senses to try for a word: every sense the graph has
// seen it under, or just the supplied one for unknown words.
func (t *Thesaurus) sensesOf(ws WordSense) []text.Sense {
	if senses := t.senses[ws.Word]; len(senses) > 0 {
		return senses
	}
	return []text.Sense{ws.Sense}
}

func (t *Thesaurus) relatednessExact(a, b WordSense) float64 {
	if a.Word == b.Word && a.Sense == b.Sense {
		return MaxRelatedness
	}
	if a.Sense == b.Sense {
		if _, ok := t.synonyms[a][b.Word]; ok {
			return MaxRelatedness
		}
	}

	neighborsA := t.neighbors(a)
	if w, ok := neighborsA[b]; ok {
		return w
	}

	// best two-hop path: the weaker edge sets the ceiling, minus a decay
	best := 0.0
	neighborsB := t.neighbors(b)
	for mid, wa := range neighborsA {
		wb, ok := neighborsB[mid]
		if !ok {
			continue
		}
		score := wa
		if wb < wa {
			score = wb
		}
		score -= twoHopPenalty
		if score > best {
			best = score
		}
	}
	return best
}

// neighbors merges relation edges with synset members (treated as
// maximum-weight edges) so synonyms participate in path scoring.
func (t *Thesaurus) neighbors(ws WordSense) map[WordSense]float64 {
	out := make(map[WordSense]float64, len(t.edges[ws])+len(t.synonyms[ws]))
	for other, w := range t.edges[ws] {
		out[other] = w
	}
	for word := range t.synonyms[ws] {
		out[WordSense{Word: word, Sense: ws.Sense}] = MaxRelatedness
	}
	return out
}

// Matrix builds the normalized pairwise relatedness matrix over a
// vocabulary: symmetric, entries in [0, 1], diagonal exactly 1. Row and
// column order follow the given vocabulary order.
func (t *Thesaurus) Matrix(vocab []WordSense, opts Options) *mat.SymDense {
	n := len(vocab)
	if n == 0 {
		return &mat.SymDense{}
	}

	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		m.SetSym(i, i, 1.0)
		for j := i + 1; j < n; j++ {
			m.SetSym(i, j, t.Relatedness(vocab[i], vocab[j], opts)/MaxRelatedness)
		}
	}
	return m
}
