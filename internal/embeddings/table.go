// ABOUTME: In-memory word embedding table and its text loader.
// ABOUTME: Parses "word, v1, ..., vD" records, skipping malformed lines and failing on bad numbers.
package embeddings

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultDimension is the vector length of the reference embedding file.
const DefaultDimension = 50

// fieldSeparator delimits the word and its components on each record.
const fieldSeparator = ", "

var (
	// ErrSourceUnreadable is returned when the embedding source cannot be opened or read.
	ErrSourceUnreadable = errors.New("embedding source unreadable")
	// ErrNumericParse is returned when a well-shaped record holds a non-numeric component.
	ErrNumericParse = errors.New("embedding component is not a number")
)

// ParseError reports the record that aborted a load.
type ParseError struct {
	Line  int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: invalid component %q: %v", e.Line, e.Field, e.Err)
}

// Unwrap lets errors.Is match ErrNumericParse.
func (e *ParseError) Unwrap() []error {
	return []error{ErrNumericParse, e.Err}
}

// Table maps words to fixed-length vectors. It is immutable once loaded
// and safe for concurrent readers.
type Table struct {
	dim     int
	words   []string
	vectors [][]float64
	index   map[string]int
	skipped int
}

// Len returns the number of distinct words in the table.
func (t *Table) Len() int { return len(t.words) }

// Dimension returns the vector length shared by every entry.
func (t *Table) Dimension() int { return t.dim }

// Skipped returns how many malformed lines were ignored during load.
func (t *Table) Skipped() int { return t.skipped }

// Lookup returns the vector stored for word.
func (t *Table) Lookup(word string) ([]float64, bool) {
	i, ok := t.index[word]
	if !ok {
		return nil, false
	}
	return t.vectors[i], true
}

// Iterate calls fn for every entry in load order until fn returns false.
func (t *Table) Iterate(fn func(word string, vector []float64) bool) {
	for i, w := range t.words {
		if !fn(w, t.vectors[i]) {
			return
		}
	}
}

// NewTable builds a table from already-parsed entries, in the given word order.
// Every vector must have length dim.
func NewTable(dim int, words []string, vectors [][]float64) (*Table, error) {
	if len(words) != len(vectors) {
		return nil, fmt.Errorf("words and vectors length mismatch: %d != %d", len(words), len(vectors))
	}
	t := newTable(dim)
	for i, w := range words {
		if len(vectors[i]) != dim {
			return nil, fmt.Errorf("vector for %q has dimension %d, want %d", w, len(vectors[i]), dim)
		}
		t.put(w, vectors[i])
	}
	return t, nil
}

func newTable(dim int) *Table {
	return &Table{
		dim:   dim,
		index: make(map[string]int),
	}
}

// put stores a vector; a repeated word keeps its first position but takes the new vector.
func (t *Table) put(word string, vector []float64) {
	if i, ok := t.index[word]; ok {
		t.vectors[i] = vector
		return
	}
	t.index[word] = len(t.words)
	t.words = append(t.words, word)
	t.vectors = append(t.vectors, vector)
}

// lineOutcome tags how a single source line was handled.
type lineOutcome int

const (
	lineAccepted lineOutcome = iota
	lineSkipped
	lineFailed
)

// parseLine classifies one record. A wrong field count is skipped, never an error.
func parseLine(line string, dim int) (string, []float64, lineOutcome, *ParseError) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) != dim+1 {
		return "", nil, lineSkipped, nil
	}
	vector := make([]float64, dim)
	for i := 0; i < dim; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i+1]), 64)
		if err != nil {
			return "", nil, lineFailed, &ParseError{Field: parts[i+1], Err: err}
		}
		vector[i] = v
	}
	return parts[0], vector, lineAccepted, nil
}

// Load reads embedding records from r. Lines without exactly dim+1 fields are
// skipped; a numeric parse failure aborts the load.
func Load(r io.Reader, dim int) (*Table, error) {
	if dim < 1 {
		return nil, fmt.Errorf("invalid dimension %d", dim)
	}

	t := newTable(dim)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		word, vector, outcome, perr := parseLine(sc.Text(), dim)
		switch outcome {
		case lineAccepted:
			t.put(word, vector)
		case lineSkipped:
			t.skipped++
		case lineFailed:
			perr.Line = lineNo
			return nil, perr
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	return t, nil
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string, dim int) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	t, err := Load(f, dim)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return t, nil
}
