package docfill

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RecordDelimiter separates fields in text record sources.
const RecordDelimiter = ';'

// Record is one row of a record source. Fields keep the header order.
type Record struct {
	key     string
	headers []string
	values  map[string]string
}

// Key returns the value of the first column.
func (r Record) Key() string {
	return r.key
}

// Get returns the value of the named field.
func (r Record) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Headers returns the field names in column order.
func (r Record) Headers() []string {
	return append([]string(nil), r.headers...)
}

// Fields returns a copy of all fields, the key column included.
func (r Record) Fields() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// RecordStore maps record keys to records.
type RecordStore struct {
	headers    []string
	keys       []string
	records    map[string]Record
	duplicates []string
}

// Headers returns the column names in order.
func (s *RecordStore) Headers() []string {
	return append([]string(nil), s.headers...)
}

// Keys returns the record keys in the order they first appeared.
func (s *RecordStore) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Get returns the record stored under key.
func (s *RecordStore) Get(key string) (Record, bool) {
	r, ok := s.records[key]
	return r, ok
}

// Len returns the number of records.
func (s *RecordStore) Len() int {
	return len(s.records)
}

// Duplicates returns keys that appeared on more than one row. The last of
// those rows is the one kept.
func (s *RecordStore) Duplicates() []string {
	return append([]string(nil), s.duplicates...)
}

// LoadRecords loads a record source. Files ending in .xlsx are read from their
// first sheet; anything else is parsed as ';'-separated UTF-8 text. Headers
// found in forbidden fail the load with a HeaderConflictError.
func LoadRecords(path string, forbidden []string) (*RecordStore, error) {
	var (
		rows [][]string
		err  error
	)

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readSpreadsheetRows(path)
	} else {
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return nil, NewConfigurationError("data", "cannot open record source", err)
		}
		defer f.Close()
		rows, err = readDelimitedRows(f)
	}
	if err != nil {
		return nil, NewConfigurationError("data", fmt.Sprintf("malformed record source '%s'", path), err)
	}

	store, err := buildRecordStore(rows, forbidden)
	var emptyErr *EmptyHeaderError
	if errors.As(err, &emptyErr) {
		emptyErr.Path = path
	}
	return store, err
}

// ParseRecords parses ';'-separated UTF-8 text from r.
func ParseRecords(r io.Reader, forbidden []string) (*RecordStore, error) {
	rows, err := readDelimitedRows(r)
	if err != nil {
		return nil, NewConfigurationError("data", "malformed record source", err)
	}
	return buildRecordStore(rows, forbidden)
}

func readDelimitedRows(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
	}

	reader := csv.NewReader(br)
	reader.Comma = RecordDelimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return rows, nil
}

func readSpreadsheetRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	// excelize reports trailing empty rows as empty slices; the text reader
	// skips blank lines, so do the same here.
	out := rows[:0]
	for _, row := range rows {
		if !isBlankRow(row) {
			out = append(out, row)
		}
	}
	return out, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

func buildRecordStore(rows [][]string, forbidden []string) (*RecordStore, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &EmptyHeaderError{}
	}
	headers := rows[0]

	forbiddenSet := make(map[string]bool, len(forbidden))
	for _, name := range forbidden {
		forbiddenSet[name] = true
	}
	var conflicts []string
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		if forbiddenSet[h] && !seen[h] {
			conflicts = append(conflicts, h)
		}
		seen[h] = true
	}
	if len(conflicts) > 0 {
		return nil, NewHeaderConflictError(conflicts)
	}

	store := &RecordStore{
		headers: append([]string(nil), headers...),
		records: make(map[string]Record, len(rows)-1),
	}

	for _, row := range rows[1:] {
		values := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				values[h] = row[i]
			} else {
				values[h] = ""
			}
		}

		key := values[headers[0]]
		if _, exists := store.records[key]; exists {
			store.duplicates = append(store.duplicates, key)
		} else {
			store.keys = append(store.keys, key)
		}
		store.records[key] = Record{key: key, headers: store.headers, values: values}
	}

	return store, nil
}
