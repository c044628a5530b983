package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrelation(t *testing.T) {
	t.Run("Correlation() - perfect positive correlation", func(t *testing.T) {
		table := tableFromString(t, "x,y\n1,10\n2,20\n3,30\n")

		corr := Correlation(table)

		assert.Equal(t, []string{"x", "y"}, corr.Columns)
		assert.InDelta(t, 1.0, *corr.Values[0][1], 1e-9)
		assert.InDelta(t, 1.0, *corr.Values[1][0], 1e-9)
		assert.InDelta(t, 1.0, *corr.Values[0][0], 1e-9)
	})

	t.Run("Correlation() - negative correlation", func(t *testing.T) {
		table := tableFromString(t, "x,y\n1,30\n2,20\n3,10\n")

		corr := Correlation(table)

		assert.InDelta(t, -1.0, *corr.Values[0][1], 1e-9)
	})

	t.Run("Correlation() - pairwise complete observations", func(t *testing.T) {
		table := tableFromString(t, "x,y\n1,10\n2,\n3,30\n4,41\n")

		corr := Correlation(table)

		// Rows with a missing y are dropped from the pair
		assert.NotNil(t, corr.Values[0][1])
		assert.InDelta(t, 1.0, *corr.Values[0][1], 1e-2)
	})

	t.Run("Correlation() - zero variance is undefined", func(t *testing.T) {
		table := tableFromString(t, "x,y\n1,5\n2,5\n3,5\n")

		corr := Correlation(table)

		assert.Nil(t, corr.Values[0][1])
		assert.Nil(t, corr.Values[1][1])
	})

	t.Run("Correlation() - non-numeric columns excluded", func(t *testing.T) {
		table := tableFromString(t, "x,city\n1,A\n2,B\n")

		corr := Correlation(table)

		assert.Equal(t, []string{"x"}, corr.Columns)
	})

	t.Run("Correlation() - no numeric columns", func(t *testing.T) {
		table := tableFromString(t, "city\nA\nB\n")

		corr := Correlation(table)

		assert.True(t, corr.Empty())
	})
}
