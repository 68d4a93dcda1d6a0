package calculation

import (
	"math"
	"sort"

	"github.com/rpgo/wealth-projector/internal/domain"
)

// Quantile returns the q-quantile of sorted using linear interpolation
// between closest ranks (position q*(n-1)). sorted must be ascending.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	v := sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
	// keep rounding from stepping outside the bracketing samples
	return math.Min(math.Max(v, sorted[lo]), sorted[hi])
}

// Median is Quantile(sorted, 0.5).
func Median(sorted []float64) float64 { return Quantile(sorted, 0.5) }

// percentileRanges summarizes a sorted sample.
func percentileRanges(sorted []float64) domain.PercentileRanges {
	return domain.PercentileRanges{
		P10: Quantile(sorted, 0.10),
		P25: Quantile(sorted, 0.25),
		P50: Quantile(sorted, 0.50),
		P75: Quantile(sorted, 0.75),
		P90: Quantile(sorted, 0.90),
	}
}

// Summarize reduces per-trial rows into monthly bands. Rows are never
// mutated and their order does not affect the result.
func Summarize(wealth, savings [][]float64) []domain.MonthlyBand {
	if len(wealth) == 0 {
		return nil
	}
	months := len(wealth[0])
	bands := make([]domain.MonthlyBand, months)
	column := make([]float64, len(wealth))
	savColumn := make([]float64, len(savings))
	for m := 0; m < months; m++ {
		for i, row := range wealth {
			column[i] = row[m]
		}
		sort.Float64s(column)
		band := domain.MonthlyBand{
			Month:  m,
			Median: Median(column),
			P10:    Quantile(column, 0.10),
			P90:    Quantile(column, 0.90),
		}
		if len(savings) > 0 {
			for i, row := range savings {
				savColumn[i] = row[m]
			}
			sort.Float64s(savColumn)
			band.SavingsMedian = Median(savColumn)
		}
		bands[m] = band
	}
	return bands
}
