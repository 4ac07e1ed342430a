package vectorstore

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/model"
)

// Cosine returns the cosine similarity of a and b. Zero-norm vectors and
// vectors of different lengths have similarity 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// rankTopK scores candidates against query and keeps the k best. Candidates
// must be in insertion order; equal scores keep that order.
func rankTopK(query []float32, candidates []model.DocumentChunk, k int) []model.SearchResult {
	if k <= 0 {
		return []model.SearchResult{}
	}
	results := make([]model.SearchResult, len(candidates))
	for i, c := range candidates {
		results[i] = model.SearchResult{Chunk: c, Score: Cosine(query, c.Vector)}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results
}

// withoutCorrupted drops every candidate belonging to a document with an
// unreadable vector. It fails when no other document is left to rank.
func withoutCorrupted(candidates []model.DocumentChunk, corrupted map[string]bool) ([]model.DocumentChunk, error) {
	if len(corrupted) == 0 {
		return candidates, nil
	}

	ids := make([]string, 0, len(corrupted))
	for id := range corrupted {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	slog.Error("Excluding documents with corrupted vectors from search; re-index them to recover", "document_ids", ids)

	kept := make([]model.DocumentChunk, 0, len(candidates))
	for _, c := range candidates {
		if !corrupted[c.DocumentID] {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: stored vectors of %s are unreadable", app_errors.ErrCorruptedIndex, strings.Join(ids, ", "))
	}
	return kept, nil
}
