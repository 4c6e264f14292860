package overlay

import (
	"testing"

	"github.com/raykavin/plotkit/pkg/core"
	"github.com/stretchr/testify/require"
)

func orderBlockTable(mitigated float64) *core.Frame {
	column := func(at int, v float64) []float64 {
		values := make([]float64, 10)
		for i := range values {
			values[i] = nan
		}
		values[at] = v
		return values
	}

	return newTable(10, map[string][]float64{
		"ob":              column(2, 1),
		"top":             column(2, 120),
		"bottom":          column(2, 100),
		"mitigated_index": column(2, mitigated),
	})
}

func TestOrderBlocks_MitigatedZone(t *testing.T) {
	elements := Generate(identity("ob", core.KindOrderBlocks), orderBlockTable(5))

	require.Len(t, elements.Annotations, 1)
	shapes := elements.Annotations[0].Shapes
	require.Len(t, shapes, 1)
	require.Equal(t, core.ShapeRect, shapes[0].Type)
	require.Equal(t, []core.Anchor{
		{X: ms(2), Y: 100}, {X: ms(5), Y: 100}, {X: ms(5), Y: 120}, {X: ms(2), Y: 120},
	}, shapes[0].Points)

	require.Empty(t, elements.Annotations[0].Labels)

	zone := elements.Series[0]
	require.Equal(t, core.SeriesAreaRange, zone.Type)
	require.Len(t, zone.Data, 3)
	require.False(t, core.Valid(zone.Data[2].X))
}

func TestOrderBlocks_LookaheadFallback(t *testing.T) {
	for _, mitigated := range []float64{nan, 0, 40} {
		elements := Generate(identity("ob", core.KindOrderBlocks), orderBlockTable(mitigated))
		require.Equal(t, ms(9), elements.Annotations[0].Shapes[0].Points[1].X)
	}

	config := identity("ob", core.KindOrderBlocks)
	config.ConfigOptions = map[string]any{"lookahead": 3}
	elements := Generate(config, orderBlockTable(nan))
	require.Equal(t, ms(5), elements.Annotations[0].Shapes[0].Points[1].X)
}

func TestOrderBlocks_Label(t *testing.T) {
	table := orderBlockTable(5)
	volume := make(core.FloatColumn, 10)
	percentage := make(core.FloatColumn, 10)
	volume[2], percentage[2] = 2500000, 42.5
	table.MustAdd("ob_volume", volume).MustAdd("percentage", percentage)

	elements := Generate(identity("ob", core.KindOrderBlocks), table)
	labels := elements.Annotations[0].Labels
	require.Len(t, labels, 1)
	require.Equal(t, "OB: 2.500M (42.5%)", labels[0].Text)
	require.Equal(t, (ms(2)+ms(5))/2, labels[0].Point.X)
	require.Equal(t, 110.0, labels[0].Point.Y)
}

func TestFairValueGap(t *testing.T) {
	table := newTable(4, map[string][]float64{
		"fvg":             {nan, -1, nan, nan},
		"top":             {nan, 5, nan, nan},
		"bottom":          {nan, 4, nan, nan},
		"mitigated_index": {nan, nan, nan, nan},
	})
	elements := Generate(identity("fvg", core.KindFVG), table)

	layer := elements.Annotations[0]
	require.Len(t, layer.Shapes, 1)
	require.Equal(t, ms(3), layer.Shapes[0].Points[1].X)
	require.Equal(t, "FVG", layer.Labels[0].Text)
}

func TestGap_FilledUpGap(t *testing.T) {
	table := newTable(3, map[string][]float64{
		"gap_retrace":   {nan, 0, nan},
		"gap_filled":    {nan, 1, nan},
		"gap_size":      {nan, 2, nan},
		"psc_timestamp": {nan, ms(0), nan},
		"psc":           {nan, 100, nan},
		"o":             {99, 102, 101},
	})
	elements := Generate(identity("gap", core.KindGap), table)

	layer := elements.Annotations[0]
	require.Equal(t, 10, layer.ZIndex)
	require.Len(t, layer.Shapes, 2)
	require.Equal(t, "rgba(34, 197, 94, 0.15)", layer.Shapes[0].Fill)
	require.Equal(t, 100.0, layer.Shapes[0].Points[0].Y)
	require.Equal(t, 102.0, layer.Shapes[0].Points[2].Y)
	require.Equal(t, ms(2), layer.Shapes[0].Points[1].X)
	require.Equal(t, core.DashDash, layer.Shapes[1].DashStyle)

	require.Len(t, layer.Labels, 1)
	require.Equal(t, "↑ 2.00% • FILLED ✓", layer.Labels[0].Text)
	require.Equal(t, "#22C55E", elements.Series[0].Color)
}

func TestFormatVolume(t *testing.T) {
	require.Equal(t, "N/A", formatVolume(0))
	require.Equal(t, "512.00", formatVolume(512))
	require.Equal(t, "1.500k", formatVolume(1500))
	require.Equal(t, "3.000B", formatVolume(3e9))
}
