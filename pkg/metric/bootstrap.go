package metric

import (
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// Interval is a bootstrap confidence interval of some measure
type Interval struct {
	Lower  float64
	Upper  float64
	StdDev float64
	Mean   float64
}

// Bootstrap resamples values with replacement samples times, applies
// measure to every resample and returns the two-sided interval at the
// given confidence (0.95 for 95%)
func Bootstrap(values []float64, measure func([]float64) float64, samples int, confidence float64) Interval {
	if len(values) == 0 || samples <= 0 {
		return Interval{}
	}

	measured := make([]float64, 0, samples)
	resample := make([]float64, len(values))
	for i := 0; i < samples; i++ {
		for j := range resample {
			resample[j] = lo.Sample(values)
		}
		measured = append(measured, measure(resample))
	}
	sort.Float64s(measured)

	tail := 1 - confidence
	mean, stdDev := stat.MeanStdDev(measured, nil)
	return Interval{
		Lower:  stat.Quantile(tail/2, stat.LinInterp, measured, nil),
		Upper:  stat.Quantile(1-tail/2, stat.LinInterp, measured, nil),
		StdDev: stdDev,
		Mean:   mean,
	}
}

// Mean is the arithmetic mean, usable as a Bootstrap measure
func Mean(values []float64) float64 {
	return stat.Mean(values, nil)
}
