// Package search implements cross-collection cosine similarity search over
// the stored embedding rows: raw pgvector SQL on Postgres, in-memory ranking
// on SQLite.
package search

import (
	"math"
	"sort"
)

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns a value between -1 (opposite) and 1 (identical direction), or 0
// if either vector has zero magnitude or the dimensions differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// CosineDistance computes 1 - CosineSimilarity, range [0, 2], where 0 means
// identical direction.
func CosineDistance(a, b []float64) float64 {
	return 1 - CosineSimilarity(a, b)
}

// storedRow is one embedding row loaded for in-memory ranking.
type storedRow struct {
	id       int64
	document string
	customID string
	vector   []float64
}

// rankedRow pairs a stored row with its distance to the query.
type rankedRow struct {
	row      storedRow
	distance float64
}

// topKNearest ranks rows by ascending cosine distance to the query vector
// and returns the first k. Ties in distance are broken by ascending row id
// (insertion order) so results are deterministic.
func topKNearest(query []float64, rows []storedRow, k int) []rankedRow {
	if len(rows) == 0 || k <= 0 {
		return nil
	}

	ranked := make([]rankedRow, len(rows))
	for i, row := range rows {
		ranked[i] = rankedRow{row: row, distance: CosineDistance(query, row.vector)}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].distance != ranked[j].distance {
			return ranked[i].distance < ranked[j].distance
		}
		return ranked[i].row.id < ranked[j].row.id
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}
