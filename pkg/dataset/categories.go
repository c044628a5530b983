package dataset

import (
	"sort"
	"strconv"
	"strings"

	"github.com/csvlab/csvlab/pkg/csv"
)

// CategoryCount is one value of a categorical column with its count and
// its share of the counted total.
type CategoryCount struct {
	Value string  `json:"value" csv:"value"`
	Count int     `json:"count" csv:"count"`
	Share float64 `json:"share" csv:"share"`
}

// TopCategories computes the top-k values for up to maxColumns
// categorical (non-numeric) columns. Shares are relative to the top-k
// total. Columns with no non-missing values are skipped.
func TopCategories(t *csv.Table, maxColumns int, topK int) map[string][]CategoryCount {
	result := make(map[string][]CategoryCount)

	var candidates []int
	for i := range t.Headers {
		if isCategorical(t, i) {
			candidates = append(candidates, i)
		}
	}

	if len(candidates) > maxColumns {
		candidates = candidates[:maxColumns]
	}

	for _, col := range candidates {
		counts := valueCounts(t, col)
		if len(counts) == 0 {
			continue
		}

		if len(counts) > topK {
			counts = counts[:topK]
		}

		total := 0
		for _, c := range counts {
			total += c.Count
		}
		for i := range counts {
			counts[i].Share = float64(counts[i].Count) / float64(total)
		}

		result[t.Headers[col]] = counts
	}

	return result
}

func isCategorical(t *csv.Table, col int) bool {
	for _, record := range t.Records {
		field := record[col]
		if csv.IsMissing(field) {
			continue
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
			return true
		}
	}
	return false
}

// valueCounts returns value frequencies sorted by count descending,
// ties broken by order of first appearance.
func valueCounts(t *csv.Table, col int) []CategoryCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for _, record := range t.Records {
		field := record[col]
		if csv.IsMissing(field) {
			continue
		}
		value := strings.TrimSpace(field)
		if _, ok := counts[value]; !ok {
			firstSeen[value] = len(firstSeen)
		}
		counts[value]++
	}

	result := make([]CategoryCount, 0, len(counts))
	for value, count := range counts {
		result = append(result, CategoryCount{Value: value, Count: count})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return firstSeen[result[i].Value] < firstSeen[result[j].Value]
	})

	return result
}
