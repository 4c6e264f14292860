package overlay

import (
	"github.com/raykavin/plotkit/pkg/core"
)

const (
	eldersBuyZone  = "rgba(16, 185, 129, 0.1)"
	eldersSellZone = "rgba(239, 68, 68, 0.1)"
)

// elders draws the Elder thermometer with its EMA and shades every
// contiguous run of buy or sell signals on the x axis
func elders(config core.SeriesConfig, table core.Table) core.PlotElements {
	rows := Extract(config, table)

	thermometer := newSeries(config, core.SeriesColumn)
	thermometer.Name = config.Name + " Thermometer"
	thermometer.Data = valuePoints(rows, 1)
	thermometer.Color = "#06b6d4"

	ema := signalLine(config, "_ema", config.Name+" EMA", "#f59e0b", "", thermometer.ID, valuePoints(rows, 2))

	var bands []core.PlotBand
	zones := []struct {
		col   int
		color string
		label string
	}{
		{3, eldersBuyZone, "Buy Zone"},
		{4, eldersSellZone, "Sell Zone"},
	}
	for _, z := range zones {
		col := z.col
		active := func(row Row) bool { return core.Truthy(row[col]) }
		for _, block := range scanRegions(rows, active, -1, -1) {
			bands = append(bands, core.PlotBand{From: block.start, To: block.end, Color: z.color, Label: z.label})
		}
	}

	return core.PlotElements{
		Series:    []core.RenderableSeries{thermometer, ema},
		PlotBands: bands,
	}
}
