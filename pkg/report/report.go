package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/csvlab/csvlab/pkg/csv"
	"github.com/csvlab/csvlab/pkg/dataset"
	"github.com/csvlab/csvlab/pkg/profile"
	"github.com/csvlab/csvlab/pkg/quality"
	"github.com/gocarina/gocsv"
	"golang.org/x/sync/errgroup"
)

// Options control report generation.
type Options struct {
	OutDir          string
	Title           string
	SourceName      string
	TopK            int
	MaxHistColumns  int
	MinMissingShare float64
	Thresholds      quality.Thresholds
}

func DefaultOptions(outDir string) Options {
	return Options{
		OutDir:          outDir,
		Title:           "EDA report",
		TopK:            profile.DefaultTopK,
		MaxHistColumns:  6,
		MinMissingShare: 0.1,
		Thresholds:      quality.DefaultThresholds(),
	}
}

// summaryRow flattens a ColumnSummary for the summary.csv artifact.
type summaryRow struct {
	Name         string   `csv:"name"`
	Dtype        string   `csv:"dtype"`
	NonNull      int      `csv:"non_null"`
	Missing      int      `csv:"missing"`
	MissingShare float64  `csv:"missing_share"`
	Unique       int      `csv:"unique"`
	IsNumeric    bool     `csv:"is_numeric"`
	Min          *float64 `csv:"min"`
	Max          *float64 `csv:"max"`
	Mean         *float64 `csv:"mean"`
	Std          *float64 `csv:"std"`
}

// Generate profiles a table and writes the report artifacts into
// opts.OutDir: summary.csv, missing.csv, correlation.csv,
// top_categories/<column>.csv and report.md. Returns the profile the
// report was built from.
func Generate(t *csv.Table, opts Options) (*profile.Profile, error) {
	if err := os.MkdirAll(opts.OutDir, 0766); err != nil {
		return nil, fmt.Errorf("failed to create report directory '%s': %w", opts.OutDir, err)
	}

	summary := dataset.Summarize(t, dataset.DefaultExampleValues)
	missing := dataset.MissingTable(t)
	corr := dataset.Correlation(t)
	topCategories := dataset.TopCategories(t, profile.DefaultTopCategoryColumns, opts.TopK)
	flags := quality.Compute(summary, missing, opts.Thresholds)

	p := &profile.Profile{
		Summary:       summary,
		Missing:       missing,
		TopCategories: topCategories,
		Quality:       flags,
	}

	g := new(errgroup.Group)
	g.Go(func() error {
		return writeSummaryCsv(filepath.Join(opts.OutDir, "summary.csv"), summary)
	})
	g.Go(func() error {
		if len(missing) == 0 {
			return nil
		}
		return writeCsvFile(filepath.Join(opts.OutDir, "missing.csv"), &missing)
	})
	g.Go(func() error {
		if corr.Empty() {
			return nil
		}
		return writeCorrelationCsv(filepath.Join(opts.OutDir, "correlation.csv"), corr)
	})
	g.Go(func() error {
		return writeTopCategories(filepath.Join(opts.OutDir, "top_categories"), topCategories)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	markdown := renderMarkdown(p, opts)
	mdPath := filepath.Join(opts.OutDir, "report.md")
	if err := os.WriteFile(mdPath, []byte(markdown), 0766); err != nil {
		return nil, fmt.Errorf("failed to write '%s': %w", mdPath, err)
	}

	return p, nil
}

func writeSummaryCsv(path string, summary *dataset.DatasetSummary) error {
	rows := make([]summaryRow, 0, len(summary.Columns))
	for _, col := range summary.Columns {
		rows = append(rows, summaryRow{
			Name:         col.Name,
			Dtype:        col.Dtype,
			NonNull:      col.NonNull,
			Missing:      col.Missing,
			MissingShare: col.MissingShare,
			Unique:       col.Unique,
			IsNumeric:    col.IsNumeric,
			Min:          col.Min,
			Max:          col.Max,
			Mean:         col.Mean,
			Std:          col.Std,
		})
	}
	return writeCsvFile(path, &rows)
}

func writeCsvFile(path string, rows interface{}) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0766)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(rows, file); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}

	return nil
}

func writeCorrelationCsv(path string, corr *dataset.CorrelationMatrix) error {
	body := strings.Builder{}

	body.WriteString("column")
	for _, col := range corr.Columns {
		body.WriteString(",")
		body.WriteString(col)
	}
	body.WriteString("\n")

	for i, col := range corr.Columns {
		body.WriteString(col)
		for j := range corr.Columns {
			body.WriteString(",")
			if cell := corr.Values[i][j]; cell != nil {
				body.WriteString(strconv.FormatFloat(*cell, 'f', -1, 64))
			}
		}
		body.WriteString("\n")
	}

	return os.WriteFile(path, []byte(body.String()), 0766)
}

func writeTopCategories(dir string, topCategories map[string][]dataset.CategoryCount) error {
	if len(topCategories) == 0 {
		return nil
	}

	if err := os.MkdirAll(dir, 0766); err != nil {
		return fmt.Errorf("failed to create '%s': %w", dir, err)
	}

	for column, counts := range topCategories {
		rows := counts
		path := filepath.Join(dir, fmt.Sprintf("%s.csv", column))
		if err := writeCsvFile(path, &rows); err != nil {
			return err
		}
	}

	return nil
}

func renderMarkdown(p *profile.Profile, opts Options) string {
	body := strings.Builder{}

	body.WriteString(fmt.Sprintf("# %s\n\n", opts.Title))
	if opts.SourceName != "" {
		body.WriteString(fmt.Sprintf("Source file: `%s`\n\n", opts.SourceName))
	}
	body.WriteString(fmt.Sprintf("Rows: **%d**, columns: **%d**\n\n", p.Summary.NRows, p.Summary.NCols))

	body.WriteString("## Data quality (heuristics)\n\n")
	body.WriteString(fmt.Sprintf("- Quality score: **%.2f**\n", p.Quality.QualityScore))
	body.WriteString(fmt.Sprintf("- Missing-share threshold for problem columns: **%.1f%%**\n", opts.MinMissingShare*100))

	problem := problemColumns(p.Missing, opts.MinMissingShare)
	if len(problem) > 0 {
		body.WriteString(fmt.Sprintf("- Problem columns by missing share: `%s`\n", strings.Join(problem, ", ")))
	} else {
		body.WriteString("- No problem columns by missing share.\n")
	}
	body.WriteString(fmt.Sprintf("- Too few rows: **%t**\n", p.Quality.TooFewRows))
	body.WriteString(fmt.Sprintf("- Too many columns: **%t**\n", p.Quality.TooManyColumns))
	body.WriteString(fmt.Sprintf("- Too many missing values: **%t**\n\n", p.Quality.TooManyMissing))

	body.WriteString("## Numeric features\n\n")
	numeric := numericColumns(p.Summary, opts.MaxHistColumns)
	if len(numeric) == 0 {
		body.WriteString("No numeric columns found.\n\n")
	} else {
		body.WriteString(fmt.Sprintf("Numeric columns (up to %d shown): `%s`. Per-column statistics are in `summary.csv`.\n\n", opts.MaxHistColumns, strings.Join(numeric, ", ")))
	}

	body.WriteString("## Categorical features\n\n")
	if len(p.TopCategories) == 0 {
		body.WriteString("No categorical or string features found.\n\n")
	} else {
		body.WriteString("See the files under `top_categories/`.\n\n")
	}

	body.WriteString("## Other artifacts\n\n")
	body.WriteString("- Column summary: `summary.csv`\n")
	body.WriteString("- Missing values: `missing.csv`\n")
	body.WriteString("- Correlation: `correlation.csv`\n")
	body.WriteString("- Top categories: `top_categories/`\n")

	return body.String()
}

func numericColumns(summary *dataset.DatasetSummary, max int) []string {
	var names []string
	for _, col := range summary.Columns {
		if !col.IsNumeric {
			continue
		}
		names = append(names, col.Name)
		if len(names) == max {
			break
		}
	}
	return names
}

func problemColumns(missing []dataset.MissingColumn, minShare float64) []string {
	var problem []string
	for _, col := range missing {
		if col.MissingShare >= minShare {
			problem = append(problem, col.Column)
		}
	}
	return problem
}
