// ABOUTME: Interface definition for report persistence.
// ABOUTME: Defines the contract for writing report text and reading best scores back.
package storage

// ReportStore persists rendered report text and recovers summaries from it.
type ReportStore interface {
	// Write replaces the stored report with content.
	Write(content string) error

	// Read returns the stored report text.
	Read() (string, error)

	// BestScores decodes the stored report into word -> highest similarity.
	// An unreadable report yields an empty map and an error.
	BestScores() (map[string]float64, error)

	// Path returns where the report lives.
	Path() string
}
