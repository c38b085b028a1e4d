package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultSniffBytes is how much of a file is inspected to detect its delimiter.
const DefaultSniffBytes = 1024

// Ext is the file extension of every dataset file.
const Ext = ".csv"

// LoadError reports a dataset that could not be opened, sniffed, or parsed.
type LoadError struct {
	Name string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %q (%s): %v", e.Name, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store resolves dataset names to files in a data directory.
type Store struct {
	Dir        string
	SniffBytes int
}

// NewStore returns a Store rooted at dir. A non-positive sniffBytes falls back
// to DefaultSniffBytes.
func NewStore(dir string, sniffBytes int) *Store {
	if sniffBytes <= 0 {
		sniffBytes = DefaultSniffBytes
	}
	return &Store{Dir: dir, SniffBytes: sniffBytes}
}

// Path returns the backing file of a dataset.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name+Ext)
}

// Load reads every row of the named dataset.
func (s *Store) Load(name string) ([][]string, error) {
	path := s.Path(name)
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Name: name, Path: path, Err: err}
	}
	defer f.Close()
	rows, err := ReadRows(f, s.SniffBytes)
	if err != nil {
		return nil, &LoadError{Name: name, Path: path, Err: err}
	}
	return rows, nil
}

// ReadRows sniffs the delimiter from the first sniffBytes bytes of r, rewinds,
// and parses the whole input with it.
func ReadRows(r io.ReadSeeker, sniffBytes int) ([][]string, error) {
	if sniffBytes <= 0 {
		sniffBytes = DefaultSniffBytes
	}
	buf := make([]byte, sniffBytes)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("read sample: %w", err)
	}
	delim, err := SniffDelimiter(buf[:n], n == sniffBytes)
	if err != nil {
		return nil, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind: %w", err)
	}

	br := bufio.NewReader(r)
	if bom, _ := br.Peek(3); string(bom) == "\ufeff" {
		_, _ = br.Discard(3)
	}
	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}
