// ABOUTME: Tests for cosine similarity, threshold filtering, and best-match tracking.
// ABOUTME: Uses small hand-built tables so expected scores can be checked directly.
package embeddings

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/2389-research/wordsim/internal/models"
)

func mustTable(t *testing.T, dim int, words []string, vectors [][]float64) *Table {
	t.Helper()
	table, err := NewTable(dim, words, vectors)
	if err != nil {
		t.Fatalf("NewTable error: %v", err)
	}
	return table
}

func animalTable(t *testing.T) *Table {
	return mustTable(t, 2,
		[]string{"cat", "dog", "car"},
		[][]float64{{1, 0}, {0.9, 0.436}, {0, 1}},
	)
}

func TestCosineSimilarityIdentical(t *testing.T) {
	vectors := [][]float64{
		{1, 2, 3},
		{-0.5, 0.25, 8},
		{1e-3, 1e-3},
	}
	for _, v := range vectors {
		score := CosineSimilarity(v, v)
		if math.Abs(score-1.0) > 1e-9 {
			t.Errorf("CosineSimilarity(%v, itself) = %f, want 1.0", v, score)
		}
	}
}

func TestCosineSimilarityOrthogonal(t *testing.T) {
	score := CosineSimilarity([]float64{1, 0, 0}, []float64{0, 1, 0})
	if math.Abs(score) > 0.0001 {
		t.Errorf("expected ~0.0 for orthogonal vectors, got %f", score)
	}
}

func TestCosineSimilarityOpposite(t *testing.T) {
	score := CosineSimilarity([]float64{1, 0, 0}, []float64{-1, 0, 0})
	if math.Abs(score+1.0) > 0.0001 {
		t.Errorf("expected ~-1.0 for opposite vectors, got %f", score)
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	pairs := [][2][]float64{
		{{1, 2, 3}, {4, 5, 6}},
		{{0.9, 0.436}, {1, 0}},
		{{-1, 3, 0.5}, {2, -2, 7}},
	}
	for _, p := range pairs {
		ab := CosineSimilarity(p[0], p[1])
		ba := CosineSimilarity(p[1], p[0])
		if ab != ba {
			t.Errorf("CosineSimilarity not symmetric for %v, %v: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestCosineSimilarityZeroMagnitude(t *testing.T) {
	score := CosineSimilarity([]float64{0, 0}, []float64{1, 1})
	if score != 0 {
		t.Errorf("expected 0.0 for zero vector, got %f", score)
	}
}

func TestCosineSimilarityDifferentLengths(t *testing.T) {
	score := CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3})
	if score != 0 {
		t.Errorf("expected 0.0 for different length vectors, got %f", score)
	}
}

func TestCosineSimilarityEmpty(t *testing.T) {
	if score := CosineSimilarity(nil, nil); score != 0 {
		t.Errorf("expected 0.0 for nil vectors, got %f", score)
	}
}

func TestSearchFindsSimilarWords(t *testing.T) {
	result := Search("cat", animalTable(t), DefaultThreshold)

	if result.Status != models.StatusFound {
		t.Fatalf("expected StatusFound, got %s", result.Status)
	}
	if len(result.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d: %+v", len(result.Matches), result.Matches)
	}
	if result.Matches[0].Word != "dog" {
		t.Errorf("expected match 'dog', got %q", result.Matches[0].Word)
	}
	want := 0.9 / math.Sqrt(0.9*0.9+0.436*0.436)
	if math.Abs(result.Best.Score-want) > 1e-12 {
		t.Errorf("best score = %v, want %v", result.Best.Score, want)
	}
	if result.Best.Word != "dog" {
		t.Errorf("best word = %q, want dog", result.Best.Word)
	}
	if result.Compared != 2 {
		t.Errorf("expected 2 comparisons, got %d", result.Compared)
	}
}

func TestSearchNotFound(t *testing.T) {
	result := Search("zebra", animalTable(t), DefaultThreshold)
	if result.Status != models.StatusNotFound {
		t.Errorf("expected StatusNotFound, got %s", result.Status)
	}
	if result.Compared != 0 {
		t.Errorf("expected no comparisons for missing word, got %d", result.Compared)
	}
	if result.HasBest() {
		t.Error("not-found result should not carry a best match")
	}
}

func TestSearchEmptyTable(t *testing.T) {
	result := Search("cat", mustTable(t, 50, nil, nil), DefaultThreshold)
	if result.Status != models.StatusNotFound {
		t.Errorf("expected StatusNotFound on empty table, got %s", result.Status)
	}
}

func TestSearchCaseSensitive(t *testing.T) {
	result := Search("Cat", animalTable(t), DefaultThreshold)
	if result.Status != models.StatusNotFound {
		t.Errorf("expected lookup to be case-sensitive, got %s", result.Status)
	}
}

func TestSearchNoMatches(t *testing.T) {
	result := Search("car", animalTable(t), 0.99)
	if result.Status != models.StatusNoMatches {
		t.Errorf("expected StatusNoMatches, got %s", result.Status)
	}
	if len(result.Matches) != 0 || result.Best != nil {
		t.Errorf("expected empty matches and nil best, got %+v / %+v", result.Matches, result.Best)
	}
}

func TestSearchExcludesQueryWord(t *testing.T) {
	table := mustTable(t, 2,
		[]string{"a", "b", "c"},
		[][]float64{{1, 1}, {1, 1}, {1, 1.01}},
	)
	result := Search("a", table, -1)
	for _, m := range result.Matches {
		if m.Word == "a" {
			t.Fatal("query word must not appear among its own matches")
		}
	}
	if len(result.Matches) != 2 {
		t.Errorf("expected 2 matches, got %d", len(result.Matches))
	}
}

func TestSearchTableOrderAndTies(t *testing.T) {
	table := mustTable(t, 2,
		[]string{"q", "low", "tieA", "tieB", "mid"},
		[][]float64{{1, 0}, {1, 0.6}, {1, 0.1}, {1, 0.1}, {1, 0.3}},
	)
	result := Search("q", table, 0.5)

	wantOrder := []string{"low", "tieA", "tieB", "mid"}
	if len(result.Matches) != len(wantOrder) {
		t.Fatalf("expected %d matches, got %d", len(wantOrder), len(result.Matches))
	}
	for i, w := range wantOrder {
		if result.Matches[i].Word != w {
			t.Errorf("match %d = %q, want %q", i, result.Matches[i].Word, w)
		}
	}
	if result.Best.Word != "tieA" {
		t.Errorf("expected first-seen maximum 'tieA', got %q", result.Best.Word)
	}
}

func TestSearchBestIsMaximum(t *testing.T) {
	table := mustTable(t, 3,
		[]string{"q", "a", "b", "c", "d"},
		[][]float64{{1, 2, 3}, {1, 2, 2.5}, {3, 2, 1}, {1, 2, 3.1}, {0.5, 2, 3}},
	)
	result := Search("q", table, 0)

	max := math.Inf(-1)
	for _, m := range result.Matches {
		if m.Score > max {
			max = m.Score
		}
	}
	if result.Best.Score != max {
		t.Errorf("best score %v is not the maximum %v", result.Best.Score, max)
	}
}

func TestSearchThresholdIsExclusive(t *testing.T) {
	table := mustTable(t, 2,
		[]string{"a", "b"},
		[][]float64{{1, 0}, {1, 0}},
	)
	if result := Search("a", table, 1.0); result.Status != models.StatusNoMatches {
		t.Errorf("score equal to threshold must not match, got %s", result.Status)
	}
}

func TestSearchZeroVectorNeverMatchesPositiveThreshold(t *testing.T) {
	table := mustTable(t, 2,
		[]string{"a", "zero"},
		[][]float64{{1, 0}, {0, 0}},
	)
	result := Search("a", table, DefaultThreshold)
	if result.Status != models.StatusNoMatches {
		t.Errorf("expected zero vector to score 0 and not match, got %s", result.Status)
	}
	result = Search("zero", table, DefaultThreshold)
	if result.Status != models.StatusNoMatches {
		t.Errorf("expected zero query vector to match nothing, got %s", result.Status)
	}
}

func TestSearchAllPreservesOrder(t *testing.T) {
	table := animalTable(t)
	words := []string{"car", "missing", "cat", "dog"}

	results, err := SearchAll(context.Background(), words, table, DefaultThreshold)
	if err != nil {
		t.Fatalf("SearchAll error: %v", err)
	}
	if len(results) != len(words) {
		t.Fatalf("expected %d results, got %d", len(words), len(results))
	}
	for i, w := range words {
		if results[i].Query != w {
			t.Errorf("result %d query = %q, want %q", i, results[i].Query, w)
		}
	}
	if results[1].Status != models.StatusNotFound {
		t.Errorf("expected missing word to be not found, got %s", results[1].Status)
	}
	if results[2].Status != models.StatusFound {
		t.Errorf("expected cat to have matches, got %s", results[2].Status)
	}
}

func TestSearchAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SearchAll(ctx, []string{"cat", "dog"}, animalTable(t), DefaultThreshold)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
