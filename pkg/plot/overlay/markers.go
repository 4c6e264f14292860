package overlay

import (
	"strings"

	"github.com/raykavin/plotkit/pkg/core"
)

const (
	flagShape     = "squarepin"
	flagWidth     = 16
	flagLineWidth = 1
)

// risingEdges places a flag on every row where values turns true after
// not being true on the previous row
func risingEdges(index, values []core.Value, title, text string) []core.DataPoint {
	points := make([]core.DataPoint, 0)
	previous := false
	for i, v := range values {
		current := core.Truthy(v)
		if ts := at(index, i); current && !previous && core.Valid(ts) {
			points = append(points, core.DataPoint{X: ts, Title: title, Text: text})
		}
		previous = current
	}
	return points
}

func flagSeries(config core.SeriesConfig, color string, points []core.DataPoint) core.RenderableSeries {
	series := newSeries(config, core.SeriesFlags)
	series.Data = points
	series.Color = color
	series.FillColor = color
	series.FlagShape = flagShape
	series.Width = flagWidth
	series.LineWidth = flagLineWidth
	return series
}

// flag marks where a boolean column switches on. The overlay id picks the
// style: "long", "short", or a generic crossover.
func flag(config core.SeriesConfig, table core.Table) core.PlotElements {
	title, text, color := "C", "CrossOver", colorCyan
	switch strings.ToLower(config.ID) {
	case "long":
		title, text, color = "L", "LONG", colorSuccess
	case "short":
		title, text, color = "S", "SHORT", colorRed
	}

	index := column(table, config.ColumnOr("index", "index"))
	values := column(table, config.ColumnOr("value", "value"))
	if index == nil || values == nil {
		return core.PlotElements{Series: []core.RenderableSeries{flagSeries(config, color, []core.DataPoint{})}}
	}

	return core.PlotElements{
		Series: []core.RenderableSeries{flagSeries(config, color, risingEdges(index, values, title, text))},
	}
}

// tradeSignal flags strategy entries and exits, one flag series per signal
// column that fired at least once
func tradeSignal(config core.SeriesConfig, table core.Table) core.PlotElements {
	index := column(table, config.ColumnOr("index", "index"))
	if index == nil {
		return core.PlotElements{}
	}

	signals := []struct {
		key   string
		title string
		text  string
		name  string
		color string
	}{
		{"enter_long", "L", "ENTER LONG", "Enter Long", colorSuccess},
		{"enter_short", "S", "ENTER SHORT", "Enter Short", colorRed},
		{"exit_long", "XL", "EXIT LONG", "Exit Long", colorAshGrey},
		{"exit_short", "XS", "EXIT SHORT", "Exit Short", colorAshGrey},
	}

	var series []core.RenderableSeries
	for _, signal := range signals {
		values := column(table, config.ColumnOr(signal.key, signal.key))
		if values == nil {
			continue
		}

		points := risingEdges(index, values, signal.title, signal.text)
		if len(points) == 0 {
			continue
		}

		s := flagSeries(config, signal.color, points)
		s.ID = config.ID + "_" + signal.key
		s.Name = config.Name + " - " + signal.name
		series = append(series, s)
	}

	return core.PlotElements{Series: series}
}

// exitLevels draws take-profit and stop-loss as step lines, each tagged
// with a label at its first level
func exitLevels(config core.SeriesConfig, table core.Table) core.PlotElements {
	index := column(table, config.ColumnOr("index", "index"))

	levels := []struct {
		key     string
		name    string
		color   string
		offsetY float64
	}{
		{"take_profit", "Take Profit", colorSuccess, -15},
		{"stop_loss", "Stop Loss", colorRed, 15},
	}

	var elements core.PlotElements
	for _, level := range levels {
		values := column(table, config.ColumnOr(level.key, level.key))

		points := make([]core.DataPoint, 0)
		for i, ts := range index {
			if v := at(values, i); core.Valid(ts) && core.Valid(v) {
				points = append(points, core.Point(ts.Unwrap(), v.Unwrap()))
			}
		}
		if len(points) == 0 {
			continue
		}

		series := newSeries(config, core.SeriesLine)
		series.ID = config.ID + "_" + level.key
		series.Name = level.name
		series.LinkedTo = ""
		series.Data = points
		series.Color = level.color
		series.LineWidth = 2
		series.DashStyle = core.DashDash
		series.Opacity = 0.8
		series.Step = "left"
		series.Marker = noMarker()

		first := points[0]
		elements.Series = append(elements.Series, series)
		elements.Annotations = append(elements.Annotations, core.AnnotationLayer{
			ZIndex: 10,
			Labels: []core.Label{{
				Point:           anchor(first.X.Unwrap(), first.Values[0].Unwrap(), config.YAxis),
				Text:            level.name,
				OffsetX:         10,
				OffsetY:         level.offsetY,
				BackgroundColor: level.color,
				BorderColor:     level.color,
				BorderWidth:     1,
				Padding:         4,
				Style:           core.LabelStyle{Color: colorWhite, FontSize: "11px", FontWeight: "bold"},
			}},
		})
	}

	return elements
}
