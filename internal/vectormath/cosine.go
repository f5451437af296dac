// Package vectormath holds the small amount of vector arithmetic needed to
// rank embedded candidates against an embedded query.
package vectormath

import "math"

// Cosine returns the cosine similarity of two vectors. Mismatched lengths
// or zero vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every candidate against the query vector and returns the
// argmax index with its score. An empty candidate list returns -1.
func Rank(query []float32, candidates [][]float32) (int, float64) {
	best := -1
	bestScore := math.Inf(-1)
	for i, c := range candidates {
		score := Cosine(query, c)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best == -1 {
		return -1, 0
	}
	return best, bestScore
}
