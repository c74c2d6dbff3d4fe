package statement

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-scorer/internal/models"
)

// Summarize computes mean, mode, min and max of values. Every statistic of an
// empty sequence is zero. Mode ties go to the smallest tied value.
func Summarize(values []decimal.Decimal) models.Stats {
	if len(values) == 0 {
		return models.Stats{
			Mean: decimal.Zero,
			Mode: decimal.Zero,
			Min:  decimal.Zero,
			Max:  decimal.Zero,
		}
	}

	sum := decimal.Sum(values[0], values[1:]...)

	return models.Stats{
		Mean: sum.Div(decimal.NewFromInt(int64(len(values)))),
		Mode: mode(values),
		Min:  decimal.Min(values[0], values[1:]...),
		Max:  decimal.Max(values[0], values[1:]...),
	}
}

// mode sorts a copy of values and returns the first value of the longest run,
// which is the smallest of any tied candidates.
func mode(values []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	best, bestCount := sorted[0], 0
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j].Equal(sorted[i]) {
			j++
		}
		if j-i > bestCount {
			best, bestCount = sorted[i], j-i
		}
		i = j
	}
	return best
}
