package overlay

import (
	"testing"

	"github.com/raykavin/plotkit/pkg/core"
	"github.com/stretchr/testify/require"
)

func TestRSI_DefaultLevels(t *testing.T) {
	table := newTable(3, map[string][]float64{"value": {65, 72, 40}})
	elements := Generate(identity("rsi", core.KindRSI), table)

	require.Len(t, elements.Series, 4)
	main := elements.Series[0]
	require.Equal(t, "rsi", main.ID)
	require.Len(t, main.Data, 3)

	expected := []struct {
		id    string
		name  string
		value float64
		dash  core.DashStyle
	}{
		{"rsi_overbought", "Overbought (70)", 70, core.DashDash},
		{"rsi_oversold", "Oversold (30)", 30, core.DashDash},
		{"rsi_midline", "Midline (50)", 50, core.DashDot},
	}
	for i, want := range expected {
		level := elements.Series[i+1]
		require.Equal(t, want.id, level.ID)
		require.Equal(t, want.name, level.Name)
		require.Equal(t, "rsi", level.LinkedTo)
		require.Equal(t, want.dash, level.DashStyle)
		require.False(t, level.EnableMouseTracking)
		require.Equal(t, xs(main.Data), xs(level.Data))
		for _, point := range level.Data {
			require.Equal(t, want.value, point.Values[0].Unwrap())
		}
	}
}

func TestRSI_ConfiguredLevels(t *testing.T) {
	config := identity("rsi", core.KindRSI)
	config.ConfigOptions = map[string]any{"overbought": 80, "oversold": "20"}

	elements := Generate(config, newTable(2, map[string][]float64{"value": {50, 60}}))
	overbought, ok := seriesByID(elements, "rsi_overbought")
	require.True(t, ok)
	require.Equal(t, "Overbought (80)", overbought.Name)

	oversold, _ := seriesByID(elements, "rsi_oversold")
	require.Equal(t, 20.0, oversold.Data[0].Values[0].Unwrap())

	midline, _ := seriesByID(elements, "rsi_midline")
	require.Equal(t, 50.0, midline.Data[0].Values[0].Unwrap())
}

func TestRSI_SkipsMissingValues(t *testing.T) {
	elements := Generate(identity("rsi", core.KindRSI), newTable(3, map[string][]float64{"value": {nan, 30, nan}}))
	require.Equal(t, []float64{ms(1)}, xs(elements.Series[0].Data))
}

func TestCCI_ZeroLine(t *testing.T) {
	elements := Generate(identity("cci", core.KindCCI), newTable(2, map[string][]float64{"value": {120, -80}}))

	require.Equal(t, []string{"cci", "cci_overbought", "cci_oversold", "cci_zero"}, elements.SeriesIDs())
	zero, _ := seriesByID(elements, "cci_zero")
	require.Equal(t, core.DashSolid, zero.DashStyle)
	require.Equal(t, 0.0, zero.Data[1].Values[0].Unwrap())
}

func TestStochastic(t *testing.T) {
	table := newTable(2, map[string][]float64{"stoch_k": {10, 90}, "stoch_d": {nan, 50}})
	elements := Generate(identity("st", core.KindStoch), table)

	require.Equal(t, []string{"st", "st_d", "st_overbought", "st_oversold"}, elements.SeriesIDs())
	d, _ := seriesByID(elements, "st_d")
	require.Len(t, d.Data, 1)
	require.Equal(t, "st", d.LinkedTo)
	require.Equal(t, "st %K", elements.Series[0].Name)
}

func TestQQE_OptionalLines(t *testing.T) {
	table := newTable(2, map[string][]float64{"short_line": {40, 60}, "long_line": {45, 55}})
	elements := Generate(identity("q", core.KindQQE), table)
	require.Equal(t, []string{"q", "q_long", "q_overbought", "q_oversold", "q_midline"}, elements.SeriesIDs())

	table.MustAdd("rsi_ma", core.FloatColumn{50, 51})
	elements = Generate(identity("q", core.KindQQE), table)
	require.Equal(t, []string{"q", "q_long", "q_rsi_ma", "q_overbought", "q_oversold", "q_midline"}, elements.SeriesIDs())
}

func TestMACD_HistogramZones(t *testing.T) {
	table := newTable(2, map[string][]float64{"macd": {1, 2}, "macd_signal": {1, 1}, "macd_histogram": {-1, 1}})
	elements := Generate(identity("m", core.KindMACD), table)

	require.Equal(t, []string{"m", "m_signal", "m_histogram"}, elements.SeriesIDs())
	histogram := elements.Series[2]
	require.Equal(t, core.SeriesColumn, histogram.Type)
	require.Len(t, histogram.Zones, 2)
	require.Equal(t, 0.0, *histogram.Zones[0].Value)
	require.Nil(t, histogram.Zones[1].Value)
}

func TestFOSC_Percent(t *testing.T) {
	elements := Generate(identity("f", core.KindFOSC), newTable(1, map[string][]float64{"value": {0.25}}))
	require.Equal(t, 25.0, elements.Series[0].Data[0].Values[0].Unwrap())
}

func TestPSAR_NothingWithoutPoints(t *testing.T) {
	elements := Generate(identity("p", core.KindPSAR), newTable(2, map[string][]float64{"value": {nan, nan}}))
	require.Empty(t, elements.Series)

	elements = Generate(identity("p", core.KindPSAR), newTable(2, map[string][]float64{"value": {nan, 3}}))
	require.Len(t, elements.Series, 1)
	require.Equal(t, core.SeriesScatter, elements.Series[0].Type)
}
