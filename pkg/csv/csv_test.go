package csv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadTable(t *testing.T) {
	t.Run("ReadTable() - basic", testReadTableBasicFunc())
	t.Run("ReadTable() - custom separator", testReadTableSeparatorFunc())
	t.Run("ReadTable() - duplicate columns", testReadTableDuplicateColumnsFunc())
	t.Run("ReadTable() - header only", testReadTableHeaderOnlyFunc())
	t.Run("ReadTable() - empty input", testReadTableEmptyInputFunc())
}

func testReadTableBasicFunc() func(*testing.T) {
	return func(t *testing.T) {
		input := "age,city\n10,A\n20,B\n"

		table, err := ReadTable(strings.NewReader(input), ',')
		assert.NoError(t, err)

		assert.Equal(t, []string{"age", "city"}, table.Headers)
		assert.Equal(t, 2, table.NumRows())
		assert.Equal(t, 2, table.NumCols())
		assert.Equal(t, []string{"A", "B"}, table.Column("city"))
		assert.Nil(t, table.Column("unknown"))
	}
}

func testReadTableSeparatorFunc() func(*testing.T) {
	return func(t *testing.T) {
		input := "age;city\n10;A\n"

		table, err := ReadTable(strings.NewReader(input), ';')
		assert.NoError(t, err)

		assert.Equal(t, []string{"age", "city"}, table.Headers)
		assert.Equal(t, []string{"10"}, table.Column("age"))
	}
}

func testReadTableDuplicateColumnsFunc() func(*testing.T) {
	return func(t *testing.T) {
		input := "age,age\n10,20\n"

		_, err := ReadTable(strings.NewReader(input), ',')
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate column")
	}
}

func testReadTableHeaderOnlyFunc() func(*testing.T) {
	return func(t *testing.T) {
		table, err := ReadTable(strings.NewReader("age,city\n"), ',')
		assert.NoError(t, err)

		assert.Equal(t, 0, table.NumRows())
		assert.Equal(t, 2, table.NumCols())
	}
}

func testReadTableEmptyInputFunc() func(*testing.T) {
	return func(t *testing.T) {
		_, err := ReadTable(strings.NewReader(""), ',')
		assert.Error(t, err)
	}
}

func TestIsMissing(t *testing.T) {
	missing := []string{"", " ", "NA", "na", "N/A", "NaN", "null", "NULL", "None"}
	for _, field := range missing {
		assert.True(t, IsMissing(field), "expected '%s' to be missing", field)
	}

	present := []string{"0", "false", "A", "n/a values"}
	for _, field := range present {
		assert.False(t, IsMissing(field), "expected '%s' to be present", field)
	}
}
