package summary

import (
	"fmt"
	"os"
	"sync"

	"github.com/gocarina/gocsv"
)

// Appender accepts finished runs.
type Appender interface {
	Append(rec Record) error
}

// Store appends records to a CSV file. The header is written once, when
// the file is new or empty. It is safe for concurrent use.
type Store struct {
	mu            sync.Mutex
	file          *os.File
	headerWritten bool
}

// OpenStore opens path for appending, creating it when needed.
func OpenStore(path string) (*Store, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening summary csv: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat summary csv: %w", err)
	}
	return &Store{file: f, headerWritten: info.Size() > 0}, nil
}

func (s *Store) Append(rec Record) error {
	return s.AppendAll([]Record{rec})
}

// AppendAll writes records in order under a single lock.
func (s *Store) AppendAll(records []Record) error {
	if len(records) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.headerWritten {
		if err := gocsv.Marshal(records, s.file); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		s.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, s.file); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// Path returns the file name of the underlying CSV file.
func (s *Store) Path() string {
	return s.file.Name()
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// ReadFile loads every record of a summary CSV file.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening summary csv: %w", err)
	}
	defer f.Close()

	var records []Record
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("reading summary csv: %w", err)
	}
	return records, nil
}
