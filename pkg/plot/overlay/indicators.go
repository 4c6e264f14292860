package overlay

import (
	"github.com/raykavin/plotkit/pkg/core"
)

// macd draws the MACD line, its signal and the histogram
func macd(config core.SeriesConfig, table core.Table) core.PlotElements {
	rows := Extract(config, table)

	main := oscillatorLine(config, config.Name+" MACD", "#2563eb", valuePoints(rows, 1))
	signal := signalLine(config, "_signal", "Signal", "#f59e0b", core.DashDash, main.ID, valuePoints(rows, 2))

	histogram := linkedSeries(config, core.SeriesColumn, "_histogram", "Histogram", main.ID)
	histogram.Data = valuePoints(rows, 3)
	histogram.Color = colorAshGrey
	histogram.Zones = negativeZones(colorOverbought, colorOversold)

	return core.PlotElements{Series: []core.RenderableSeries{main, signal, histogram}}
}

// fosc draws the Forecast Oscillator as a percentage
func fosc(config core.SeriesConfig, table core.Table) core.PlotElements {
	rows := Extract(config, table)

	main := oscillatorLine(config, config.Name, colorSuccess, scaledPoints(rows, 1, 100))
	main.Zones = negativeZones(colorRed, colorSuccess)

	series := []core.RenderableSeries{main}
	series = append(series, referenceSeries(config, main, zeroLevel())...)
	return core.PlotElements{Series: series}
}

func qstick(config core.SeriesConfig, table core.Table) core.PlotElements {
	rows := Extract(config, table)

	main := oscillatorLine(config, config.Name, colorCyan, valuePoints(rows, 1))

	series := []core.RenderableSeries{main}
	series = append(series, referenceSeries(config, main, zeroLevel())...)
	return core.PlotElements{Series: series}
}

// psar draws Parabolic SAR dots. Nothing is drawn without points.
func psar(config core.SeriesConfig, table core.Table) core.PlotElements {
	points := valuePoints(Extract(config, table), 1)
	if len(points) == 0 {
		return core.PlotElements{}
	}

	series := newSeries(config, core.SeriesScatter)
	series.Data = points
	series.Color = colorCyan
	series.Marker = &core.Marker{Enabled: true, Symbol: "circle", Radius: 3}

	return core.PlotElements{Series: []core.RenderableSeries{series}}
}

// pairedLines draws two independent lines of one indicator
func pairedLines(config core.SeriesConfig, rows []Row, first, second lineSpec) core.PlotElements {
	series := make([]core.RenderableSeries, 0, 2)
	for _, spec := range []lineSpec{first, second} {
		s := newSeries(config, core.SeriesLine)
		s.ID = config.ID + spec.suffix
		s.Name = spec.name
		s.Data = valuePoints(rows, spec.col)
		s.Color = spec.color
		s.LineWidth = spec.width
		s.Marker = noMarker()
		series = append(series, s)
	}
	return core.PlotElements{Series: series}
}

type lineSpec struct {
	col    int
	suffix string
	name   string
	color  string
	width  float64
}

func vortex(config core.SeriesConfig, table core.Table) core.PlotElements {
	return pairedLines(config, Extract(config, table),
		lineSpec{col: 1, suffix: "_vi_plus", name: "VI+", color: "#16a34a", width: 1.8},
		lineSpec{col: 2, suffix: "_vi_minus", name: "VI-", color: "#dc2626", width: 1.8},
	)
}

func chandeKrollStop(config core.SeriesConfig, table core.Table) core.PlotElements {
	return pairedLines(config, Extract(config, table),
		lineSpec{col: 1, suffix: "_long_stop", name: "Long Stop", color: "#1d4ed8", width: 1.5},
		lineSpec{col: 2, suffix: "_short_stop", name: "Short Stop", color: "#ea580c", width: 1.5},
	)
}
