// ABOUTME: Formats decoded best scores for display.
// ABOUTME: Produces one "Word: w, Highest Similarity: s" line per word in sorted order.
package report

import (
	"fmt"
	"sort"
)

// NoScoresMessage is shown when a report holds no best-score lines.
const NoScoresMessage = "No similarity scores found in the output file."

// SummaryLines renders best scores sorted by word.
func SummaryLines(scores map[string]float64) []string {
	words := make([]string, 0, len(scores))
	for w := range scores {
		words = append(words, w)
	}
	sort.Strings(words)

	lines := make([]string, 0, len(words))
	for _, w := range words {
		lines = append(lines, fmt.Sprintf("Word: %s, Highest Similarity: %s", w, FormatScore(scores[w])))
	}
	return lines
}
