package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matsen/abook/internal/addressbook"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// JSONLStore keeps one record per line, in book order.
type JSONLStore struct {
	path string
}

// NewJSONLStore returns a JSONL store at path.
func NewJSONLStore(path string) *JSONLStore {
	return &JSONLStore{path: path}
}

// Path returns the file path.
func (s *JSONLStore) Path() string {
	return s.path
}

// Load reads the book. A missing file yields an empty book.
func (s *JSONLStore) Load() (*addressbook.AddressBook, error) {
	data, err := ReadAllRecords(s.path)
	if err != nil {
		return nil, err
	}
	book, err := addressbook.FromSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.path, err)
	}
	return book, nil
}

// Save writes the whole book, replacing existing content.
func (s *JSONLStore) Save(book *addressbook.AddressBook) error {
	return WriteAllRecords(s.path, book.Snapshot())
}

// ReadAllRecords reads all records from a JSONL file.
func ReadAllRecords(path string) ([]addressbook.RecordData, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file returns empty slice
		}
		return nil, fmt.Errorf("opening book file: %w", err)
	}
	defer f.Close()

	var records []addressbook.RecordData
	scanner := bufio.NewScanner(f)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var rec addressbook.RecordData
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading book file: %w", err)
	}

	return records, nil
}

// writeRecordJSONL marshals a record to JSON and writes it as a JSONL line.
func writeRecordJSONL(w io.Writer, rec addressbook.RecordData) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}
	return nil
}

// WriteAllRecords writes all records to a JSONL file, replacing existing content.
func WriteAllRecords(path string, records []addressbook.RecordData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating book file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, rec := range records {
		if err := writeRecordJSONL(w, rec); err != nil {
			f.Close()
			return fmt.Errorf("record %q: %w", rec.Name, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flushing book file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing book file: %w", err)
	}
	return nil
}
