// ABOUTME: Core data models for similarity search results.
// ABOUTME: Provides result status, match pairs, and constructor helpers shared by search and report code.
package models

// Status describes the outcome of a single similarity search.
type Status int

const (
	// StatusNotFound means the query word is not in the embedding table.
	StatusNotFound Status = iota
	// StatusNoMatches means the query word exists but no candidate cleared the threshold.
	StatusNoMatches
	// StatusFound means at least one candidate cleared the threshold.
	StatusFound
)

// String returns a short name for the status.
func (s Status) String() string {
	switch s {
	case StatusNotFound:
		return "not_found"
	case StatusNoMatches:
		return "no_matches"
	case StatusFound:
		return "found"
	}
	return "unknown"
}

// Match pairs a candidate word with its cosine similarity to the query.
type Match struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// SimilarityResult is the outcome of comparing one query word against a table.
type SimilarityResult struct {
	Query     string
	Threshold float64
	Status    Status
	Matches   []Match // above threshold, in table order
	Best      *Match  // nil unless Status == StatusFound
	Compared  int     // number of cosine computations performed
}

// NewNotFoundResult creates the result for a query word absent from the table.
func NewNotFoundResult(query string, threshold float64) *SimilarityResult {
	return &SimilarityResult{
		Query:     query,
		Threshold: threshold,
		Status:    StatusNotFound,
	}
}

// HasBest returns true if the result carries a best match.
func (r *SimilarityResult) HasBest() bool {
	return r.Status == StatusFound && r.Best != nil
}
