package quality

import (
	"strings"

	"github.com/csvlab/csvlab/pkg/dataset"
)

// Thresholds tune the quality heuristics. The zero value is not usable;
// start from DefaultThresholds.
type Thresholds struct {
	MinRows         int     `json:"min_rows,omitempty" mapstructure:"min_rows,omitempty" yaml:"min_rows,omitempty"`
	MaxColumns      int     `json:"max_columns,omitempty" mapstructure:"max_columns,omitempty" yaml:"max_columns,omitempty"`
	MaxMissingShare float64 `json:"max_missing_share,omitempty" mapstructure:"max_missing_share,omitempty" yaml:"max_missing_share,omitempty"`
	HighCardinality int     `json:"high_cardinality,omitempty" mapstructure:"high_cardinality,omitempty" yaml:"high_cardinality,omitempty"`
	ZeroMeanRatio   float64 `json:"zero_mean_ratio,omitempty" mapstructure:"zero_mean_ratio,omitempty" yaml:"zero_mean_ratio,omitempty"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MinRows:         100,
		MaxColumns:      100,
		MaxMissingShare: 0.5,
		HighCardinality: 50,
		ZeroMeanRatio:   0.1,
	}
}

// Flags are heuristic data-quality signals for a dataset, plus an
// aggregate quality score in [0, 1].
type Flags struct {
	TooFewRows                     bool    `json:"too_few_rows"`
	TooManyColumns                 bool    `json:"too_many_columns"`
	MaxMissingShare                float64 `json:"max_missing_share"`
	TooManyMissing                 bool    `json:"too_many_missing"`
	HasConstantColumns             bool    `json:"has_constant_columns"`
	HasHighCardinalityCategoricals bool    `json:"has_high_cardinality_categoricals"`
	HasSuspiciousIDDuplicates      bool    `json:"has_suspicious_id_duplicates"`
	HasManyZeroValues              bool    `json:"has_many_zero_values"`
	QualityScore                   float64 `json:"quality_score"`
}

// Column names treated as row identifiers for the duplicate check.
var idColumnNames = map[string]bool{
	"user_id":     true,
	"id":          true,
	"customer_id": true,
}

// Compute evaluates the quality heuristics for a summarized dataset.
func Compute(summary *dataset.DatasetSummary, missing []dataset.MissingColumn, th Thresholds) *Flags {
	flags := &Flags{}

	flags.TooFewRows = summary.NRows < th.MinRows
	flags.TooManyColumns = summary.NCols > th.MaxColumns

	flags.MaxMissingShare = dataset.MaxMissingShare(missing)
	flags.TooManyMissing = flags.MaxMissingShare > th.MaxMissingShare

	for _, col := range summary.Columns {
		if col.Unique == 1 {
			flags.HasConstantColumns = true
			break
		}
	}

	for _, col := range summary.Columns {
		if !col.IsNumeric && col.Unique > th.HighCardinality {
			flags.HasHighCardinalityCategoricals = true
			break
		}
	}

	flags.HasSuspiciousIDDuplicates = hasIDDuplicates(summary)
	flags.HasManyZeroValues = hasManyZeroValues(summary, th)
	flags.QualityScore = score(flags)

	return flags
}

// hasIDDuplicates checks the first identifier-looking column: fewer
// distinct values than rows means duplicated identifiers.
func hasIDDuplicates(summary *dataset.DatasetSummary) bool {
	for _, col := range summary.Columns {
		if !idColumnNames[strings.ToLower(col.Name)] {
			continue
		}
		return col.Unique < summary.NRows
	}
	return false
}

// hasManyZeroValues approximates a "mostly zeros" numeric column from the
// summary statistics: a minimum of zero with a mean far below the
// maximum, or a constant all-zero column.
func hasManyZeroValues(summary *dataset.DatasetSummary, th Thresholds) bool {
	for _, col := range summary.Columns {
		if !col.IsNumeric || col.NonNull == 0 || col.Min == nil || *col.Min != 0 {
			continue
		}

		if col.Max != nil && *col.Max > 0 {
			if col.Mean != nil && *col.Mean <= th.ZeroMeanRatio**col.Max {
				return true
			}
		} else if col.Std != nil && *col.Std == 0 && col.Mean != nil && *col.Mean == 0 {
			return true
		}
	}
	return false
}

func score(flags *Flags) float64 {
	score := 1.0
	score -= flags.MaxMissingShare
	if flags.TooFewRows {
		score -= 0.2
	}
	if flags.TooManyColumns {
		score -= 0.1
	}
	if flags.HasConstantColumns {
		score -= 0.1
	}
	if flags.HasHighCardinalityCategoricals {
		score -= 0.05
	}
	if flags.HasSuspiciousIDDuplicates {
		score -= 0.15
	}
	if flags.HasManyZeroValues {
		score -= 0.1
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
