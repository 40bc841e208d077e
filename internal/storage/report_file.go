// ABOUTME: File-backed report storage for similarity search output.
// ABOUTME: Writes through a temp file and rename so readers never see a partial report.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/2389-research/wordsim/internal/report"
)

// ReportFileStore keeps the report as a plain text file, overwritten on each write.
type ReportFileStore struct {
	path string
}

// NewReportFileStore creates a store for the report file at path.
func NewReportFileStore(path string) (*ReportFileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("report path is required")
	}
	return &ReportFileStore{path: path}, nil
}

// Path returns the report file path.
func (s *ReportFileStore) Path() string {
	return s.path
}

// Write replaces the report file with content, creating parent directories as needed.
func (s *ReportFileStore) Write(content string) error {
	return AtomicWrite(s.path, []byte(content))
}

// Read returns the current report text.
func (s *ReportFileStore) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to read report: %w", err)
	}
	return string(data), nil
}

// BestScores decodes the report file.
func (s *ReportFileStore) BestScores() (map[string]float64, error) {
	return report.DecodeFile(s.path)
}

// AtomicWrite writes data to a temp file beside path and renames it into place.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
