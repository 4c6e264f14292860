package overlay

import (
	"github.com/raykavin/plotkit/pkg/core"
)

// line draws the value column as is, keeping nulls as gaps.
// Colour, width and dash come from the config options when set.
func line(config core.SeriesConfig, table core.Table) core.PlotElements {
	options, _ := core.DecodeOptions[core.LineOptions](config)

	series := newSeries(config, core.SeriesLine)
	series.Data = rawPoints(Extract(config, table))
	series.Color = options.Color
	if series.Color == "" {
		series.Color = seriesColor(config.Name)
	}
	series.LineWidth = valueOr(options.Width, 2)
	series.DashStyle = dashFromArray(options.Dash)
	series.Marker = noMarker()

	return core.PlotElements{Series: []core.RenderableSeries{series}}
}

// columnSeries draws a histogram, red below zero
func columnSeries(config core.SeriesConfig, table core.Table) core.PlotElements {
	series := newSeries(config, core.SeriesColumn)
	series.Data = rawPoints(Extract(config, table))
	series.Color = colorSuccess
	series.NegativeColor = colorRed
	series.Zones = negativeZones(colorRed, colorSuccess)

	return core.PlotElements{Series: []core.RenderableSeries{series}}
}

// position draws the held position size as a left step line
func position(config core.SeriesConfig, table core.Table) core.PlotElements {
	series := newSeries(config, core.SeriesLine)
	series.Data = rawPoints(Extract(config, table))
	series.Color = colorCyan
	series.LineWidth = 2
	series.Step = "left"
	series.Marker = noMarker()

	return core.PlotElements{Series: []core.RenderableSeries{series}}
}

func atr(config core.SeriesConfig, table core.Table) core.PlotElements {
	series := newSeries(config, core.SeriesLine)
	series.Data = rawPoints(Extract(config, table))
	series.Color = colorSuccess
	series.LineWidth = 2
	series.Marker = noMarker()

	return core.PlotElements{Series: []core.RenderableSeries{series}}
}
