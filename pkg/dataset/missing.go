package dataset

import (
	"sort"

	"github.com/csvlab/csvlab/pkg/csv"
)

// MissingColumn is one row of the missing-value table.
type MissingColumn struct {
	Column       string  `json:"column" csv:"column"`
	MissingCount int     `json:"missing_count" csv:"missing_count"`
	MissingShare float64 `json:"missing_share" csv:"missing_share"`
}

// MissingTable counts missing values per column, sorted by missing share
// descending. Ties keep the original column order.
func MissingTable(t *csv.Table) []MissingColumn {
	nRows := t.NumRows()
	if t.NumCols() == 0 {
		return nil
	}

	table := make([]MissingColumn, 0, t.NumCols())
	for i, name := range t.Headers {
		count := 0
		for _, record := range t.Records {
			if csv.IsMissing(record[i]) {
				count++
			}
		}

		share := 0.0
		if nRows > 0 {
			share = float64(count) / float64(nRows)
		}

		table = append(table, MissingColumn{
			Column:       name,
			MissingCount: count,
			MissingShare: share,
		})
	}

	sort.SliceStable(table, func(i, j int) bool {
		return table[i].MissingShare > table[j].MissingShare
	})

	return table
}

// MaxMissingShare returns the largest missing share in the table, or 0
// for an empty table.
func MaxMissingShare(table []MissingColumn) float64 {
	if len(table) == 0 {
		return 0
	}
	// Table is sorted by share descending.
	return table[0].MissingShare
}
