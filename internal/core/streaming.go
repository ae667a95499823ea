package core

// streaming.go turns an uploaded file into CSV records. The input passes
// through a UTF-8 decoder that drops a leading BOM (common in files saved
// by spreadsheet programs on Windows) and replaces invalid byte sequences
// with U+FFFD, so the csv package never sees malformed text.

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewSanitizingReader wraps r with BOM removal and UTF-8 repair.
func NewSanitizingReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
}

// headerIndex maps a lowercased, trimmed header name to its column.
type headerIndex map[string]int

func makeHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// require returns the required columns that are absent.
func (h headerIndex) require(cols []string) []string {
	var missing []string
	for _, c := range cols {
		if _, ok := h[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// value returns the trimmed cell for col, or "" when the row is short.
func (h headerIndex) value(rec []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// readImportFile parses the whole upload before anything is written, so a
// syntax error anywhere rejects the file without partial processing.
func readImportFile(r io.Reader, required []string) (headerIndex, [][]string, error) {
	cr := csv.NewReader(NewSanitizingReader(r))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmptyFile
	}
	if err != nil {
		return nil, nil, &CSVError{Err: err}
	}

	idx := makeHeaderIndex(header)
	if missing := idx.require(required); len(missing) > 0 {
		return nil, nil, &MissingColumnsError{Columns: missing}
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, &CSVError{Err: err}
	}
	return idx, records, nil
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
