package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/csvlab/csvlab/pkg/csv"
)

const (
	// DtypeInt64 covers integer columns with no missing values.
	DtypeInt64 = "int64"
	// DtypeFloat64 covers all other numeric columns, including columns
	// that are entirely missing.
	DtypeFloat64 = "float64"
	// DtypeObject covers everything else.
	DtypeObject = "object"
)

// DefaultExampleValues is the number of example values captured per column.
const DefaultExampleValues = 3

// ColumnSummary describes a single column of a dataset.
type ColumnSummary struct {
	Name          string   `json:"name"`
	Dtype         string   `json:"dtype"`
	NonNull       int      `json:"non_null"`
	Missing       int      `json:"missing"`
	MissingShare  float64  `json:"missing_share"`
	Unique        int      `json:"unique"`
	ExampleValues []string `json:"example_values"`
	IsNumeric     bool     `json:"is_numeric"`
	Min           *float64 `json:"min"`
	Max           *float64 `json:"max"`
	Mean          *float64 `json:"mean"`
	Std           *float64 `json:"std"`
}

// DatasetSummary describes a whole dataset, column by column.
type DatasetSummary struct {
	NRows   int             `json:"n_rows"`
	NCols   int             `json:"n_cols"`
	Columns []ColumnSummary `json:"columns"`
}

// Summarize builds a DatasetSummary from a table: row/column counts,
// inferred dtypes, missing counts, distinct counts, a few example values
// and basic numeric statistics.
func Summarize(t *csv.Table, exampleValues int) *DatasetSummary {
	nRows := t.NumRows()
	nCols := t.NumCols()

	columns := make([]ColumnSummary, 0, nCols)
	for i, name := range t.Headers {
		columns = append(columns, summarizeColumn(t, i, name, exampleValues))
	}

	return &DatasetSummary{
		NRows:   nRows,
		NCols:   nCols,
		Columns: columns,
	}
}

func summarizeColumn(t *csv.Table, col int, name string, exampleValues int) ColumnSummary {
	nRows := t.NumRows()

	var present []string
	for _, record := range t.Records {
		field := record[col]
		if csv.IsMissing(field) {
			continue
		}
		present = append(present, strings.TrimSpace(field))
	}

	nonNull := len(present)
	missing := nRows - nonNull

	missingShare := 0.0
	if nRows > 0 {
		missingShare = float64(missing) / float64(nRows)
	}

	numbers, isNumeric := parseNumbers(present)
	dtype := inferDtype(present, isNumeric, missing)

	unique := countDistinct(present, numbers, isNumeric)

	examples := distinctHead(present, exampleValues)
	if examples == nil {
		examples = []string{}
	}

	summary := ColumnSummary{
		Name:          name,
		Dtype:         dtype,
		NonNull:       nonNull,
		Missing:       missing,
		MissingShare:  missingShare,
		Unique:        unique,
		ExampleValues: examples,
		IsNumeric:     isNumeric,
	}

	if isNumeric && nonNull > 0 {
		min, max, mean := minMaxMean(numbers)
		summary.Min = &min
		summary.Max = &max
		summary.Mean = &mean
		if std, ok := sampleStd(numbers, mean); ok {
			summary.Std = &std
		}
	}

	return summary
}

// parseNumbers parses every non-missing value as a float. A column counts
// as numeric when all of its values parse; a column with no values at all
// is numeric the way an all-NaN column is.
func parseNumbers(present []string) ([]float64, bool) {
	numbers := make([]float64, 0, len(present))
	for _, value := range present {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return nil, false
		}
		numbers = append(numbers, parsed)
	}
	return numbers, true
}

func inferDtype(present []string, isNumeric bool, missing int) string {
	if !isNumeric {
		return DtypeObject
	}

	// Integer columns with missing values degrade to float64.
	if missing == 0 && len(present) > 0 {
		allInts := true
		for _, value := range present {
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				allInts = false
				break
			}
		}
		if allInts {
			return DtypeInt64
		}
	}

	return DtypeFloat64
}

func countDistinct(present []string, numbers []float64, isNumeric bool) int {
	seen := make(map[string]bool, len(present))
	for i, value := range present {
		key := value
		if isNumeric {
			key = strconv.FormatFloat(numbers[i], 'f', -1, 64)
		}
		seen[key] = true
	}
	return len(seen)
}

// distinctHead returns the first limit distinct values in order of first
// appearance.
func distinctHead(present []string, limit int) []string {
	var head []string
	seen := make(map[string]bool)
	for _, value := range present {
		if seen[value] {
			continue
		}
		seen[value] = true
		head = append(head, value)
		if len(head) >= limit {
			break
		}
	}
	return head
}

func minMaxMean(numbers []float64) (min float64, max float64, mean float64) {
	min = numbers[0]
	max = numbers[0]
	sum := 0.0
	for _, n := range numbers {
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
		sum += n
	}
	mean = sum / float64(len(numbers))
	return min, max, mean
}

// sampleStd is the sample standard deviation (ddof=1). It is undefined
// for fewer than two values.
func sampleStd(numbers []float64, mean float64) (float64, bool) {
	if len(numbers) < 2 {
		return 0, false
	}

	sumSquares := 0.0
	for _, n := range numbers {
		d := n - mean
		sumSquares += d * d
	}

	return math.Sqrt(sumSquares / float64(len(numbers)-1)), true
}
