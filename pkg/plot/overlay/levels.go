package overlay

import (
	"github.com/raykavin/plotkit/pkg/core"
)

var levelLabelOptions = core.LabelOptions{
	BackgroundColor: "transparent",
	Style:           core.LabelStyle{FontSize: "8px", FontWeight: "normal"},
}

func levelLabel(x, y float64, yAxis int, text, color string, offsetY float64) core.Label {
	return core.Label{
		Point:           anchor(x, y, yAxis),
		Text:            text,
		OffsetY:         offsetY,
		BackgroundColor: "transparent",
		Style:           core.LabelStyle{Color: color, FontSize: "8px", FontWeight: "normal"},
	}
}

func horizontalPath(from, to, level float64, yAxis int, color string) core.Shape {
	return core.Shape{
		Type:        core.ShapePath,
		Points:      []core.Anchor{anchor(from, level, yAxis), anchor(to, level, yAxis)},
		Stroke:      color,
		StrokeWidth: 1,
	}
}

// previousHighLow draws the previous period high and low as horizontal
// segments, one per level, each ending where the next level starts. The
// current level is not extended.
func previousHighLow(config core.SeriesConfig, table core.Table) core.PlotElements {
	const (
		lineColor = "rgba(255, 255, 255, 0.2)"
		textColor = "rgba(255, 255, 255, 0.4)"
	)

	rows := Extract(config, table)
	options := levelLabelOptions
	layer := core.AnnotationLayer{ZIndex: 2, LabelOptions: &options}

	sides := []struct {
		col     int
		text    string
		offsetY float64
	}{
		{1, "PH", -10},
		{2, "PL", 10},
	}

	for _, side := range sides {
		for _, s := range consecutiveSegments(scanLevelChanges(rows, side.col)) {
			layer.Shapes = append(layer.Shapes, horizontalPath(s.from.time, s.to.time, s.from.level, config.YAxis, lineColor))
			layer.Labels = append(layer.Labels, levelLabel(s.to.time, s.from.level, config.YAxis, side.text, textColor, side.offsetY))
		}
	}

	return core.PlotElements{
		Series:      []core.RenderableSeries{legendSeries(config, lineColor)},
		Annotations: []core.AnnotationLayer{layer},
	}
}

// liquidity draws resting liquidity levels and, once taken, the sweep
// towards the candle that swept them. A level runs to its end index, or to
// the next level when no end is given; the last open level is not extended.
func liquidity(config core.SeriesConfig, table core.Table) core.PlotElements {
	const (
		lineColor      = "rgba(255, 165, 0, 0.2)"
		sweptColor     = "rgba(255, 0, 0, 0.2)"
		textColor      = "rgba(255, 165, 0, 0.4)"
		sweptTextColor = "rgba(255, 0, 0, 0.4)"
	)

	rows := Extract(config, table)
	highs := column(table, config.ColumnOr("high", "h"))
	lows := column(table, config.ColumnOr("low", "l"))
	n := len(rows)

	// levels only count on rows flagged as liquidity
	flagged := make([]Row, n)
	for i, row := range rows {
		flagged[i] = Row{row[0], core.None(), core.None()}
		if core.Valid(row[1]) {
			flagged[i][2] = row[2]
		}
	}
	nextLevel := make(map[int]int)
	for _, s := range consecutiveSegments(scanLevelChanges(flagged, 2)) {
		nextLevel[s.from.row] = s.to.row
	}

	options := levelLabelOptions
	layer := core.AnnotationLayer{ZIndex: 2, LabelOptions: &options}

	for i, row := range rows {
		ts, ok := row.Time()
		marker, level := row[1], row[2]
		if !ok || !core.Valid(level) {
			continue
		}

		isHigh := core.Valid(marker) && marker.Unwrap() == 1
		offsetY := 10.0
		if isHigh {
			offsetY = -10
		}

		endTime := ts
		if core.Valid(marker) {
			end, hasEnd := core.Int(row[3])
			if hasEnd {
				end = clampIndex(end, n)
			} else {
				end, hasEnd = nextLevel[i]
			}

			if hasEnd {
				endTime = timeAt(rows, end, ts)
				layer.Shapes = append(layer.Shapes, horizontalPath(ts, endTime, level.Unwrap(), config.YAxis, lineColor))
				layer.Labels = append(layer.Labels, levelLabel(timeAt(rows, (i+end)/2, ts), level.Unwrap(), config.YAxis, "Liquidity", textColor, offsetY))
			}
		}

		swept, ok := core.Int(row[4])
		if !ok || swept == 0 {
			continue
		}
		swept = clampIndex(swept, n)

		prices := lows
		if isHigh {
			prices = highs
		}
		price := at(prices, swept)
		if !core.Valid(price) {
			continue
		}

		sweptTime := timeAt(rows, swept, ts)
		layer.Shapes = append(layer.Shapes, core.Shape{
			Type:        core.ShapePath,
			Points:      []core.Anchor{anchor(endTime, level.Unwrap(), config.YAxis), anchor(sweptTime, price.Unwrap(), config.YAxis)},
			Stroke:      sweptColor,
			StrokeWidth: 1,
		})
		layer.Labels = append(layer.Labels, levelLabel(
			timeAt(rows, (i+swept)/2, ts), (level.Unwrap()+price.Unwrap())/2, config.YAxis,
			"Liquidity Swept", sweptTextColor, offsetY,
		))
	}

	return core.PlotElements{
		Series:      []core.RenderableSeries{legendSeries(config, lineColor)},
		Annotations: []core.AnnotationLayer{layer},
	}
}
