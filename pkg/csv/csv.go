package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Table is a parsed CSV file: a header row plus zero or more records.
// Records are kept as raw strings; typing happens at summarize time.
type Table struct {
	Headers []string
	Records [][]string
}

// Missing-value tokens, compared case-insensitively.
var missingTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

// IsMissing reports whether a raw CSV field counts as a missing value.
func IsMissing(field string) bool {
	return missingTokens[strings.ToLower(strings.TrimSpace(field))]
}

// ReadTable reads a CSV document into a Table. The first row is the
// header. A table with zero data rows is valid.
func ReadTable(input io.Reader, sep rune) (*Table, error) {
	reader := csv.NewReader(input)
	if sep != 0 {
		reader.Comma = sep
	}

	headers, err := reader.Read()
	if err != nil {
		return nil, errors.New("failed to read header")
	}

	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	seen := make(map[string]bool, len(headers))
	for _, header := range headers {
		if seen[header] {
			return nil, fmt.Errorf("duplicate column '%s'", header)
		}
		seen[header] = true
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}

	return &Table{
		Headers: headers,
		Records: records,
	}, nil
}

// Column returns the values of the named column, or nil if no such
// column exists.
func (t *Table) Column(name string) []string {
	for i, header := range t.Headers {
		if header != name {
			continue
		}

		values := make([]string, len(t.Records))
		for row, record := range t.Records {
			values[row] = record[i]
		}
		return values
	}

	return nil
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Records)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.Headers)
}
