// ABOUTME: Brute-force cosine similarity search over an embedding table.
// ABOUTME: Filters candidates by an exclusive threshold and tracks the single best match.
package embeddings

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/2389-research/wordsim/internal/models"
)

// DefaultThreshold is the minimum similarity (exclusive) a candidate must exceed.
const DefaultThreshold = 0.75

// CosineSimilarity computes the cosine similarity between two vectors.
// Mismatched lengths and zero-magnitude vectors yield 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	dotProduct := dot(a, b)
	normA := magnitude(a)
	normB := magnitude(b)
	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (normA * normB)
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func magnitude(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Search compares word against every other entry in t, in table order.
// Case is not normalized; callers lower-case input before searching.
func Search(word string, t *Table, threshold float64) *models.SimilarityResult {
	target, ok := t.Lookup(word)
	if !ok {
		return models.NewNotFoundResult(word, threshold)
	}

	result := &models.SimilarityResult{
		Query:     word,
		Threshold: threshold,
		Status:    models.StatusNoMatches,
	}

	t.Iterate(func(candidate string, vector []float64) bool {
		if candidate == word {
			return true
		}
		result.Compared++
		score := CosineSimilarity(target, vector)
		if !(score > threshold) {
			return true
		}
		m := models.Match{Word: candidate, Score: score}
		result.Matches = append(result.Matches, m)
		// strictly greater keeps the first-seen maximum on ties
		if result.Best == nil || score > result.Best.Score {
			best := m
			result.Best = &best
		}
		return true
	})

	if result.Best != nil {
		result.Status = models.StatusFound
	}
	return result
}

// SearchAll runs Search for each word concurrently and returns results in input order.
func SearchAll(ctx context.Context, words []string, t *Table, threshold float64) ([]*models.SimilarityResult, error) {
	results := make([]*models.SimilarityResult, len(words))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, w := range words {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Search(w, t, threshold)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
