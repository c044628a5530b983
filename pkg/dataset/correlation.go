package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/csvlab/csvlab/pkg/csv"
)

// CorrelationMatrix is a Pearson correlation matrix over the numeric
// columns of a dataset. Cells where the correlation is undefined (fewer
// than two paired values, or zero variance) are null.
type CorrelationMatrix struct {
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
}

// Empty reports whether the matrix has no columns.
func (m *CorrelationMatrix) Empty() bool {
	return len(m.Columns) == 0
}

// Correlation computes pairwise Pearson correlations between numeric
// columns, using pairwise-complete observations.
func Correlation(t *csv.Table) *CorrelationMatrix {
	var columns []string
	var series [][]*float64

	for i, name := range t.Headers {
		values, numeric := numericSeries(t, i)
		if !numeric {
			continue
		}
		columns = append(columns, name)
		series = append(series, values)
	}

	values := make([][]*float64, len(columns))
	for i := range columns {
		values[i] = make([]*float64, len(columns))
		for j := range columns {
			values[i][j] = pearson(series[i], series[j])
		}
	}

	return &CorrelationMatrix{
		Columns: columns,
		Values:  values,
	}
}

// numericSeries extracts a column as floats with nil for missing values.
// The second return is false when the column is not numeric.
func numericSeries(t *csv.Table, col int) ([]*float64, bool) {
	values := make([]*float64, 0, t.NumRows())
	sawValue := false
	for _, record := range t.Records {
		field := record[col]
		if csv.IsMissing(field) {
			values = append(values, nil)
			continue
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return nil, false
		}
		sawValue = true
		v := parsed
		values = append(values, &v)
	}

	if !sawValue {
		return nil, false
	}

	return values, true
}

func pearson(x []*float64, y []*float64) *float64 {
	var xs, ys []float64
	for i := range x {
		if x[i] == nil || y[i] == nil {
			continue
		}
		xs = append(xs, *x[i])
		ys = append(ys, *y[i])
	}

	n := len(xs)
	if n < 2 {
		return nil
	}

	meanX := 0.0
	meanY := 0.0
	for i := 0; i < n; i++ {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return nil
	}

	r := cov / math.Sqrt(varX*varY)
	return &r
}
