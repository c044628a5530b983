package dataset

import (
	"os"
	"strings"
	"testing"

	"github.com/csvlab/csvlab/pkg/csv"
	"github.com/stretchr/testify/assert"
)

func loadTestTable(t *testing.T, path string) *csv.Table {
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err.Error())
	}
	defer file.Close()

	table, err := csv.ReadTable(file, ',')
	if err != nil {
		t.Fatal(err.Error())
	}

	return table
}

func tableFromString(t *testing.T, input string) *csv.Table {
	table, err := csv.ReadTable(strings.NewReader(input), ',')
	if err != nil {
		t.Fatal(err.Error())
	}
	return table
}

func TestSummarize(t *testing.T) {
	table := loadTestTable(t, "../../test/assets/data/csv/people.csv")

	t.Run("Summarize() - dimensions and columns", testSummarizeDimensionsFunc(table))
	t.Run("Summarize() - numeric column with missing values", testSummarizeNumericMissingFunc(table))
	t.Run("Summarize() - integer column", testSummarizeIntegerFunc(table))
	t.Run("Summarize() - categorical column", testSummarizeCategoricalFunc(table))
}

func testSummarizeDimensionsFunc(table *csv.Table) func(*testing.T) {
	return func(t *testing.T) {
		summary := Summarize(table, DefaultExampleValues)

		assert.Equal(t, 4, summary.NRows)
		assert.Equal(t, 3, summary.NCols)
		assert.Equal(t, 3, len(summary.Columns))
		assert.Equal(t, "age", summary.Columns[0].Name)
		assert.Equal(t, "height", summary.Columns[1].Name)
		assert.Equal(t, "city", summary.Columns[2].Name)
	}
}

func testSummarizeNumericMissingFunc(table *csv.Table) func(*testing.T) {
	return func(t *testing.T) {
		summary := Summarize(table, DefaultExampleValues)
		age := summary.Columns[0]

		assert.Equal(t, DtypeFloat64, age.Dtype)
		assert.True(t, age.IsNumeric)
		assert.Equal(t, 3, age.NonNull)
		assert.Equal(t, 1, age.Missing)
		assert.InDelta(t, 0.25, age.MissingShare, 1e-9)
		assert.Equal(t, 3, age.Unique)
		assert.Equal(t, []string{"10", "20", "30"}, age.ExampleValues)

		assert.Equal(t, 10.0, *age.Min)
		assert.Equal(t, 30.0, *age.Max)
		assert.InDelta(t, 20.0, *age.Mean, 1e-9)
		assert.InDelta(t, 10.0, *age.Std, 1e-9)
	}
}

func testSummarizeIntegerFunc(table *csv.Table) func(*testing.T) {
	return func(t *testing.T) {
		summary := Summarize(table, DefaultExampleValues)
		height := summary.Columns[1]

		assert.Equal(t, DtypeInt64, height.Dtype)
		assert.True(t, height.IsNumeric)
		assert.Equal(t, 4, height.NonNull)
		assert.Equal(t, 0, height.Missing)
		assert.Equal(t, 4, height.Unique)

		assert.Equal(t, 140.0, *height.Min)
		assert.Equal(t, 170.0, *height.Max)
		assert.InDelta(t, 155.0, *height.Mean, 1e-9)
		assert.InDelta(t, 12.90994449, *height.Std, 1e-6)
	}
}

func testSummarizeCategoricalFunc(table *csv.Table) func(*testing.T) {
	return func(t *testing.T) {
		summary := Summarize(table, DefaultExampleValues)
		city := summary.Columns[2]

		assert.Equal(t, DtypeObject, city.Dtype)
		assert.False(t, city.IsNumeric)
		assert.Equal(t, 3, city.NonNull)
		assert.Equal(t, 1, city.Missing)
		assert.Equal(t, 2, city.Unique)
		assert.Equal(t, []string{"A", "B"}, city.ExampleValues)

		assert.Nil(t, city.Min)
		assert.Nil(t, city.Max)
		assert.Nil(t, city.Mean)
		assert.Nil(t, city.Std)
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	t.Run("Summarize() - empty table", func(t *testing.T) {
		table := tableFromString(t, "a,b\n")
		summary := Summarize(table, DefaultExampleValues)

		assert.Equal(t, 0, summary.NRows)
		assert.Equal(t, 2, summary.NCols)
		for _, col := range summary.Columns {
			assert.Equal(t, 0, col.NonNull)
			assert.Equal(t, 0.0, col.MissingShare)
			assert.Equal(t, []string{}, col.ExampleValues)
		}
	})

	t.Run("Summarize() - all-missing column is numeric", func(t *testing.T) {
		table := tableFromString(t, "a,b\n1,\n2,\n")
		summary := Summarize(table, DefaultExampleValues)

		b := summary.Columns[1]
		assert.Equal(t, DtypeFloat64, b.Dtype)
		assert.True(t, b.IsNumeric)
		assert.Equal(t, 0, b.Unique)
		assert.Nil(t, b.Min)
		assert.Nil(t, b.Std)
	})

	t.Run("Summarize() - single value has no std", func(t *testing.T) {
		table := tableFromString(t, "a\n5\n")
		summary := Summarize(table, DefaultExampleValues)

		a := summary.Columns[0]
		assert.Equal(t, 5.0, *a.Mean)
		assert.Nil(t, a.Std)
	})

	t.Run("Summarize() - numeric values deduplicate by parsed value", func(t *testing.T) {
		table := tableFromString(t, "a\n1\n1.0\n2\n")
		summary := Summarize(table, DefaultExampleValues)

		assert.Equal(t, 2, summary.Columns[0].Unique)
	})
}
