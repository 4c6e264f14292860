package metric

import (
	"math"
	"testing"

	"github.com/raykavin/plotkit/pkg/core"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	stats := Describe(core.FloatColumn{4, math.NaN(), 1, 3, 2, 5})

	require.Equal(t, 5, stats.Count)
	require.Equal(t, 1, stats.Missing)
	require.Equal(t, 3.0, stats.Mean)
	require.InDelta(t, math.Sqrt(2.5), stats.StdDev, 1e-9)
	require.Equal(t, 1.0, stats.Min)
	require.Equal(t, 5.0, stats.Max)
	require.Equal(t, 5.0, stats.Last)
	require.GreaterOrEqual(t, stats.Median, 2.0)
	require.LessOrEqual(t, stats.Median, 3.0)
	require.LessOrEqual(t, stats.P05, stats.Median)
	require.GreaterOrEqual(t, stats.P95, stats.Median)
}

func TestDescribe_Degenerate(t *testing.T) {
	single := Describe(core.BoolColumn{true})
	require.Equal(t, 1, single.Count)
	require.Equal(t, 1.0, single.Mean)
	require.Equal(t, 0.0, single.StdDev)

	empty := Describe(core.FloatColumn{math.NaN(), math.NaN()})
	require.Equal(t, 0, empty.Count)
	require.Equal(t, 2, empty.Missing)
	require.True(t, math.IsNaN(empty.Mean))
	require.True(t, math.IsNaN(empty.P95))
}

func TestBootstrap(t *testing.T) {
	interval := Bootstrap([]float64{2, 2, 2, 2}, Mean, 200, 0.95)
	require.Equal(t, Interval{Lower: 2, Upper: 2, StdDev: 0, Mean: 2}, interval)

	require.Equal(t, Interval{}, Bootstrap(nil, Mean, 100, 0.95))

	spread := Bootstrap([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, Mean, 500, 0.9)
	require.LessOrEqual(t, spread.Lower, spread.Mean)
	require.GreaterOrEqual(t, spread.Upper, spread.Mean)
	require.InDelta(t, 5.5, spread.Mean, 1)
}
