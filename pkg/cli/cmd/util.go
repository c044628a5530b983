package cmd

import (
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/csvlab/csvlab/pkg/csv"
)

// loadTable reads a CSV file with the given separator flag value.
func loadTable(path string, sepFlag string) (*csv.Table, error) {
	sep, err := sepRune(sepFlag)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("file '%s' not found", path)
	}
	defer file.Close()

	table, err := csv.ReadTable(file, sep)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return table, nil
}

func sepRune(sepFlag string) (rune, error) {
	if sepFlag == "\\t" || sepFlag == "tab" {
		return '\t', nil
	}

	r, size := utf8.DecodeRuneInString(sepFlag)
	if size == 0 || size != len(sepFlag) {
		return 0, fmt.Errorf("invalid separator '%s': must be a single character", sepFlag)
	}

	return r, nil
}

// fmtFloat renders an optional statistic for table output.
func fmtFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'g', 6, 64)
}
