package overlay

import (
	"fmt"

	"github.com/raykavin/plotkit/pkg/core"
)

func overboughtLevel(value float64, dash core.DashStyle) referenceLevel {
	return referenceLevel{
		suffix: "_overbought",
		name:   fmt.Sprintf("Overbought (%s)", formatNumber(value)),
		value:  value,
		color:  colorOverbought,
		dash:   dash,
	}
}

func oversoldLevel(value float64, dash core.DashStyle) referenceLevel {
	return referenceLevel{
		suffix: "_oversold",
		name:   fmt.Sprintf("Oversold (%s)", formatNumber(value)),
		value:  value,
		color:  colorOversold,
		dash:   dash,
	}
}

func midlineLevel(value float64, dash core.DashStyle) referenceLevel {
	return referenceLevel{
		suffix: "_midline",
		name:   fmt.Sprintf("Midline (%s)", formatNumber(value)),
		value:  value,
		color:  colorMidline,
		dash:   dash,
	}
}

func oscillatorLine(config core.SeriesConfig, name, color string, points []core.DataPoint) core.RenderableSeries {
	series := newSeries(config, core.SeriesLine)
	series.Name = name
	series.Data = points
	series.Color = color
	series.LineWidth = 2
	series.Marker = noMarker()
	return series
}

func signalLine(config core.SeriesConfig, suffix, name, color string, dash core.DashStyle, primaryID string, points []core.DataPoint) core.RenderableSeries {
	series := linkedSeries(config, core.SeriesLine, suffix, name, primaryID)
	series.Data = points
	series.Color = color
	series.LineWidth = 2
	series.DashStyle = dash
	series.Marker = noMarker()
	return series
}

// rsi draws the Relative Strength Index with overbought, oversold and
// midline references (70/30/50 unless configured)
func rsi(config core.SeriesConfig, table core.Table) core.PlotElements {
	options := thresholdOptions(config)
	rows := Extract(config, table)

	main := oscillatorLine(config, config.Name, "#8b5cf6", valuePoints(rows, 1))

	series := []core.RenderableSeries{main}
	series = append(series, referenceSeries(config, main,
		overboughtLevel(valueOr(options.Overbought, 70), core.DashDash),
		oversoldLevel(valueOr(options.Oversold, 30), core.DashDash),
		midlineLevel(valueOr(options.Midline, 50), core.DashDot),
	)...)

	return core.PlotElements{Series: series}
}

// cci draws the Commodity Channel Index with +-100 and zero references
func cci(config core.SeriesConfig, table core.Table) core.PlotElements {
	options := thresholdOptions(config)
	rows := Extract(config, table)

	main := oscillatorLine(config, config.Name, colorCyan, valuePoints(rows, 1))

	series := []core.RenderableSeries{main}
	series = append(series, referenceSeries(config, main,
		overboughtLevel(valueOr(options.Overbought, 100), core.DashDot),
		oversoldLevel(valueOr(options.Oversold, -100), core.DashDot),
		zeroLevel(),
	)...)

	return core.PlotElements{Series: series}
}

// stochastic draws %K and %D with 80/20 references
func stochastic(config core.SeriesConfig, table core.Table) core.PlotElements {
	options := thresholdOptions(config)
	rows := Extract(config, table)

	k := oscillatorLine(config, config.Name+" %K", "#3b82f6", valuePoints(rows, 1))
	d := signalLine(config, "_d", "%D", "#f59e0b", core.DashDash, k.ID, valuePoints(rows, 2))

	series := []core.RenderableSeries{k, d}
	series = append(series, referenceSeries(config, k,
		overboughtLevel(valueOr(options.Overbought, 80), core.DashDash),
		oversoldLevel(valueOr(options.Oversold, 20), core.DashDash),
	)...)

	return core.PlotElements{Series: series}
}

// aroon draws Aroon Up and Down with 70/30 references
func aroon(config core.SeriesConfig, table core.Table) core.PlotElements {
	options := thresholdOptions(config)
	rows := Extract(config, table)

	up := oscillatorLine(config, config.Name+" Up", colorSuccess, valuePoints(rows, 1))
	down := signalLine(config, "_down", config.Name+" Down", colorRed, core.DashDash, up.ID, valuePoints(rows, 2))

	series := []core.RenderableSeries{up, down}
	series = append(series, referenceSeries(config, up,
		overboughtLevel(valueOr(options.Overbought, 70), core.DashDot),
		oversoldLevel(valueOr(options.Oversold, 30), core.DashDot),
	)...)

	return core.PlotElements{Series: series}
}

// fisher draws the Fisher Transform and its signal with +-2 and zero references
func fisher(config core.SeriesConfig, table core.Table) core.PlotElements {
	options := thresholdOptions(config)
	rows := Extract(config, table)

	main := oscillatorLine(config, config.Name+" Fisher", colorCyan, valuePoints(rows, 1))
	signal := signalLine(config, "_signal", "Signal", colorYellow, core.DashDash, main.ID, valuePoints(rows, 2))

	series := []core.RenderableSeries{main, signal}
	series = append(series, referenceSeries(config, main,
		overboughtLevel(valueOr(options.Overbought, 2), core.DashDot),
		oversoldLevel(valueOr(options.Oversold, -2), core.DashDot),
		zeroLevel(),
	)...)

	return core.PlotElements{Series: series}
}

// qqe draws the short and long QQE lines. The RSI MA and result lines are
// added only when they have points.
func qqe(config core.SeriesConfig, table core.Table) core.PlotElements {
	options := thresholdOptions(config)
	rows := Extract(config, table)

	short := oscillatorLine(config, config.Name+" Short", colorCyan, valuePoints(rows, 1))
	long := signalLine(config, "_long", "Long", colorYellow, core.DashDash, short.ID, valuePoints(rows, 2))

	series := []core.RenderableSeries{short, long}

	if points := valuePoints(rows, 3); len(points) > 0 {
		rsiMA := signalLine(config, "_rsi_ma", "RSI MA", colorPurple, core.DashDot, short.ID, points)
		rsiMA.LineWidth = 1.5
		series = append(series, rsiMA)
	}

	if points := valuePoints(rows, 4); len(points) > 0 {
		result := signalLine(config, "_result", "Result", colorSuccess, core.DashDashDot, short.ID, points)
		result.LineWidth = 1.5
		series = append(series, result)
	}

	series = append(series, referenceSeries(config, short,
		overboughtLevel(valueOr(options.Overbought, 70), core.DashDot),
		oversoldLevel(valueOr(options.Oversold, 30), core.DashDot),
		midlineLevel(valueOr(options.Midline, 50), core.DashSolid),
	)...)

	return core.PlotElements{Series: series}
}
