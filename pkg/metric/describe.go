package metric

import (
	"math"
	"sort"

	"github.com/raykavin/plotkit/pkg/core"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the valid values of one column
type Stats struct {
	Count   int
	Missing int
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
	Last    float64
	P05     float64
	Median  float64
	P95     float64
}

// Describe computes Stats over the present values of column. Every
// statistic is NaN when the column holds no value.
func Describe(column core.Column) Stats {
	values := core.Present(column)
	stats := Stats{Count: len(values), Missing: column.Len() - len(values)}
	if len(values) == 0 {
		nan := math.NaN()
		stats.Mean, stats.StdDev, stats.Min, stats.Max, stats.Last = nan, nan, nan, nan, nan
		stats.P05, stats.Median, stats.P95 = nan, nan, nan
		return stats
	}

	stats.Min, stats.Max, stats.Last = values.Min(), values.Max(), values.Last(0)

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	stats.Mean, stats.StdDev = stat.MeanStdDev(sorted, nil)
	stats.StdDev = lo.Ternary(len(sorted) > 1, stats.StdDev, 0)
	stats.P05 = stat.Quantile(0.05, stat.LinInterp, sorted, nil)
	stats.Median = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	stats.P95 = stat.Quantile(0.95, stat.LinInterp, sorted, nil)
	return stats
}
