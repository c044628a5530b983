package profile

import (
	"github.com/csvlab/csvlab/pkg/csv"
	"github.com/csvlab/csvlab/pkg/dataset"
	"github.com/csvlab/csvlab/pkg/quality"
)

const (
	// DefaultTopCategoryColumns bounds how many categorical columns a
	// profile enumerates.
	DefaultTopCategoryColumns = 5
	// DefaultTopK is the number of top values captured per categorical
	// column.
	DefaultTopK = 5
)

// Profile is the full quality profile of a dataset: the per-column
// summary, the missing-value table, the top categorical values and the
// quality flags.
type Profile struct {
	Summary       *dataset.DatasetSummary            `json:"summary"`
	Missing       []dataset.MissingColumn            `json:"missing"`
	TopCategories map[string][]dataset.CategoryCount `json:"top_categories"`
	Quality       *quality.Flags                     `json:"quality"`
}

// Build profiles a table with the given thresholds.
func Build(t *csv.Table, th quality.Thresholds) *Profile {
	summary := dataset.Summarize(t, dataset.DefaultExampleValues)
	missing := dataset.MissingTable(t)

	return &Profile{
		Summary:       summary,
		Missing:       missing,
		TopCategories: dataset.TopCategories(t, DefaultTopCategoryColumns, DefaultTopK),
		Quality:       quality.Compute(summary, missing, th),
	}
}
