// ABOUTME: Search session tying the embedding table, threshold, and report store together.
// ABOUTME: Shared by the CLI, interactive menu, and MCP server so they behave identically.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/2389-research/wordsim/internal/config"
	"github.com/2389-research/wordsim/internal/embeddings"
	"github.com/2389-research/wordsim/internal/logging"
	"github.com/2389-research/wordsim/internal/models"
	"github.com/2389-research/wordsim/internal/report"
	"github.com/2389-research/wordsim/internal/storage"
)

// ErrNoTable is returned when a search is attempted before any table has loaded.
var ErrNoTable = errors.New("no embedding table loaded")

// Options configures a Session.
type Options struct {
	EmbeddingsPath string
	OutputPath     string
	Dimension      int
	Threshold      float64
	Logger         *slog.Logger
}

// Session holds the loaded table and where results go. Safe for concurrent use.
type Session struct {
	mu             sync.RWMutex
	embeddingsPath string
	dimension      int
	threshold      float64
	table          *embeddings.Table
	store          storage.ReportStore
	logger         *slog.Logger
}

// Batch is the outcome of one multi-word search.
type Batch struct {
	RunID   uuid.UUID
	Words   []string
	Results []*models.SimilarityResult
	Text    string
	Elapsed time.Duration
}

// Info summarizes the session state.
type Info struct {
	EmbeddingsPath string  `json:"embeddings_path"`
	OutputPath     string  `json:"output_path"`
	Dimension      int     `json:"dimension"`
	Threshold      float64 `json:"threshold"`
	Loaded         bool    `json:"loaded"`
	Entries        int     `json:"entries"`
	Skipped        int     `json:"skipped_lines"`
}

// New creates a session. The embedding table is not loaded until LoadTable.
func New(opts Options) (*Session, error) {
	if opts.Dimension < 1 {
		return nil, fmt.Errorf("invalid dimension %d", opts.Dimension)
	}
	store, err := storage.NewReportFileStore(opts.OutputPath)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		embeddingsPath: opts.EmbeddingsPath,
		dimension:      opts.Dimension,
		threshold:      opts.Threshold,
		store:          store,
		logger:         logger,
	}, nil
}

// FromConfig creates a session from validated configuration.
func FromConfig(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	embPath, err := cfg.GetEmbeddingsPath()
	if err != nil {
		return nil, err
	}
	outPath, err := cfg.GetOutputPath()
	if err != nil {
		return nil, err
	}
	return New(Options{
		EmbeddingsPath: embPath,
		OutputPath:     outPath,
		Dimension:      cfg.Embeddings.Dimension,
		Threshold:      cfg.Search.Threshold,
		Logger:         logger,
	})
}

// LoadTable (re)loads the embedding table from the configured path.
func (s *Session) LoadTable() error {
	s.mu.RLock()
	path, dim := s.embeddingsPath, s.dimension
	s.mu.RUnlock()

	table, err := s.load(path, dim)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()
	return nil
}

func (s *Session) load(path string, dim int) (*embeddings.Table, error) {
	start := time.Now()
	table, err := embeddings.LoadFile(path, dim)
	if err != nil {
		s.logger.Error("failed to load embeddings", "path", path, "error", err)
		return nil, err
	}
	s.logger.Info("embeddings loaded",
		"path", path,
		"entries", table.Len(),
		"dimension", table.Dimension(),
		"skipped_lines", table.Skipped(),
		"elapsed", time.Since(start),
	)
	return table, nil
}

// SetEmbeddingsPath switches to a new embedding file and loads it. On failure
// the previous path and table stay in place.
func (s *Session) SetEmbeddingsPath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("embeddings path is required")
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return err
	}

	s.mu.RLock()
	dim := s.dimension
	s.mu.RUnlock()

	table, err := s.load(expanded, dim)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.embeddingsPath = expanded
	s.table = table
	s.mu.Unlock()
	return nil
}

// SetOutputPath changes where reports are written.
func (s *Session) SetOutputPath(path string) error {
	path = strings.TrimSpace(path)
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return err
	}
	store, err := storage.NewReportFileStore(expanded)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.store = store
	s.mu.Unlock()
	s.logger.Info("output path changed", "path", expanded)
	return nil
}

// Info returns a snapshot of the session state.
func (s *Session) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info := Info{
		EmbeddingsPath: s.embeddingsPath,
		OutputPath:     s.store.Path(),
		Dimension:      s.dimension,
		Threshold:      s.threshold,
	}
	if s.table != nil {
		info.Loaded = true
		info.Entries = s.table.Len()
		info.Skipped = s.table.Skipped()
	}
	return info
}

// Threshold returns the configured similarity threshold.
func (s *Session) Threshold() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.threshold
}

// ParseQuery lower-cases input and splits it on whitespace.
func ParseQuery(input string) []string {
	return strings.Fields(strings.ToLower(input))
}

// Search runs a batch search for every word in input at the session threshold.
func (s *Session) Search(ctx context.Context, input string) (*Batch, error) {
	return s.SearchWithThreshold(ctx, input, s.Threshold())
}

// SearchWithThreshold runs a batch search at an explicit threshold.
func (s *Session) SearchWithThreshold(ctx context.Context, input string, threshold float64) (*Batch, error) {
	words := ParseQuery(input)
	if len(words) == 0 {
		return nil, fmt.Errorf("no words to search")
	}

	s.mu.RLock()
	table := s.table
	s.mu.RUnlock()
	if table == nil {
		return nil, ErrNoTable
	}

	batch := &Batch{RunID: uuid.New(), Words: words}
	log := s.logger.With("run_id", batch.RunID.String())

	start := time.Now()
	results, err := embeddings.SearchAll(ctx, words, table, threshold)
	if err != nil {
		return nil, fmt.Errorf("search cancelled: %w", err)
	}
	batch.Elapsed = time.Since(start)
	batch.Results = results
	batch.Text = report.RenderBatch(results)

	for _, r := range results {
		attrs := []any{"word", r.Query, "status", r.Status.String(), "matches", len(r.Matches), "compared", r.Compared}
		if r.HasBest() {
			attrs = append(attrs, "best", r.Best.Word, "score", r.Best.Score)
		}
		log.Debug("word searched", attrs...)
	}
	log.Info("search complete", "words", len(words), "threshold", threshold, "elapsed", batch.Elapsed)
	return batch, nil
}

// Persist writes report text to the output file.
func (s *Session) Persist(text string) error {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()

	start := time.Now()
	if err := store.Write(text); err != nil {
		s.logger.Error("failed to write report", "path", store.Path(), "error", err)
		return fmt.Errorf("failed to write output file %s: %w", store.Path(), err)
	}
	s.logger.Info("report written", "path", store.Path(), "bytes", len(text), "elapsed", time.Since(start))
	return nil
}

// BestScores decodes the highest similarity per word from the output file.
func (s *Session) BestScores() (map[string]float64, error) {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()

	scores, err := store.BestScores()
	if err != nil {
		s.logger.Warn("could not read report", "path", store.Path(), "error", err)
		return scores, err
	}
	s.logger.Info("report decoded", "path", store.Path(), "words", len(scores))
	return scores, nil
}
