// Package similarity scores how close two bags of words are under a
// word-relatedness weighting, the soft cosine measure: plain cosine treats
// every vocabulary entry as orthogonal, while the weighted form lets related
// words ("big", "large") contribute to the score.
package similarity

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Score computes the weighted cosine of two vectors under the symmetric
// relation matrix w: inner(a, w, b) / sqrt(inner(a, w, a) * inner(b, w, b)).
// Vectors of different or zero length, a mismatched matrix, or a zero norm
// all score 0.
func Score(a, b []float64, w mat.Symmetric) float64 {
	n := len(a)
	if n == 0 || len(b) != n || w.Symmetric() != n {
		return 0
	}

	x := mat.NewVecDense(n, a)
	y := mat.NewVecDense(n, b)

	normA := mat.Inner(x, w, x)
	normB := mat.Inner(y, w, y)
	if normA <= 0 || normB <= 0 {
		return 0
	}

	return mat.Inner(x, w, y) / math.Sqrt(normA*normB)
}

// PresenceVectors renders two membership sets as parallel 0/1 vectors over
// the vocabulary order, ready for Score.
func PresenceVectors(vocab []string, a, b map[string]struct{}) ([]float64, []float64) {
	va := make([]float64, len(vocab))
	vb := make([]float64, len(vocab))
	for i, key := range vocab {
		if _, ok := a[key]; ok {
			va[i] = 1
		}
		if _, ok := b[key]; ok {
			vb[i] = 1
		}
	}
	return va, vb
}
