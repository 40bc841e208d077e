// ABOUTME: Text rendering of similarity results and the parser that reads best scores back.
// ABOUTME: The rendered report is the only persisted artifact, so both directions live here.
package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/2389-research/wordsim/internal/models"
)

const (
	headerPrefix   = "Similar words to"
	bestPrefix     = "The most similar word to"
	noMatchesLine  = "No similar words found"
	scoreQuoteChar = "'"
)

// ErrReportUnreadable is returned when a report file cannot be opened or read.
var ErrReportUnreadable = errors.New("report unreadable")

// FormatScore renders a score with the shortest decimal text that parses back to the same value.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Render produces the report block for a single result.
func Render(r *models.SimilarityResult) string {
	if r.Status == models.StatusNotFound {
		return fmt.Sprintf("Target word '%s' not found in embeddings.", r.Query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s '%s' with similarity score > %s:", headerPrefix, r.Query, FormatScore(r.Threshold))
	for _, m := range r.Matches {
		fmt.Fprintf(&b, "\n%s: %s", m.Word, FormatScore(m.Score))
	}

	if r.HasBest() {
		fmt.Fprintf(&b, "\n\n%s '%s' is '%s' with a similarity score of '%s'",
			bestPrefix, r.Query, r.Best.Word, FormatScore(r.Best.Score))
	} else {
		b.WriteString("\n\n" + noMatchesLine)
	}
	return b.String()
}

// RenderBatch renders each result followed by a newline, with a blank line between blocks.
func RenderBatch(results []*models.SimilarityResult) string {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Render(r))
		b.WriteString("\n")
	}
	return b.String()
}

// Decode scans report text and returns the last best score recorded for each query word.
//
// A "Similar words to" header sets the current word; a following
// "The most similar word to" line records a score for it. The current word
// persists until the next header, so a later block overwrites an earlier one.
func Decode(r io.Reader) (map[string]float64, error) {
	scores := make(map[string]float64)

	var (
		current    string
		hasContext bool
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()

		if strings.HasPrefix(line, headerPrefix) {
			current, hasContext = quotedWord(line)
		}

		if strings.HasPrefix(line, bestPrefix) && hasContext {
			if score, ok := trailingScore(line); ok {
				scores[current] = score
			}
		}
	}
	if err := sc.Err(); err != nil {
		return scores, fmt.Errorf("%w: %v", ErrReportUnreadable, err)
	}
	return scores, nil
}

// DecodeString is Decode over an in-memory report.
func DecodeString(text string) map[string]float64 {
	scores, _ := Decode(strings.NewReader(text))
	return scores
}

// DecodeFile decodes the report stored at path. An unreadable file yields an
// empty map together with an error wrapping ErrReportUnreadable.
func DecodeFile(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return map[string]float64{}, fmt.Errorf("%w: %v", ErrReportUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// quotedWord returns the text between the first pair of single quotes.
func quotedWord(line string) (string, bool) {
	parts := strings.Split(line, scoreQuoteChar)
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}

// trailingScore parses the last whitespace-delimited token with quotes removed.
func trailingScore(line string) (float64, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, false
	}
	token := strings.ReplaceAll(fields[len(fields)-1], scoreQuoteChar, "")
	score, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return score, true
}
