package overlay

import (
	"github.com/raykavin/plotkit/pkg/core"
)

type swingPoint struct {
	time  float64
	level float64
	sign  float64
}

// swingHighLow joins consecutive swing points into a zig-zag polyline.
// A segment starting at a swing low (-1) is green, any other is red.
func swingHighLow(config core.SeriesConfig, table core.Table) core.PlotElements {
	const (
		lowColor    = "rgba(0, 128, 0, 0.8)"
		highColor   = "rgba(255, 0, 0, 0.8)"
		legendColor = "rgba(128, 128, 128, 0.5)"
	)

	var points []swingPoint
	for _, row := range Extract(config, table) {
		ts, ok := row.Time()
		if !ok || !core.Valid(row[1]) || !core.Valid(row[2]) {
			continue
		}
		points = append(points, swingPoint{time: ts, level: row[2].Unwrap(), sign: row[1].Unwrap()})
	}

	var shapes []core.Shape
	for i := 0; i+1 < len(points); i++ {
		from, to := points[i], points[i+1]

		color := highColor
		if from.sign == -1 {
			color = lowColor
		}

		shapes = append(shapes, core.Shape{
			Type:        core.ShapePath,
			Points:      []core.Anchor{anchor(from.time, from.level, config.YAxis), anchor(to.time, to.level, config.YAxis)},
			Stroke:      color,
			StrokeWidth: 2,
		})
	}

	elements := core.PlotElements{Series: []core.RenderableSeries{legendSeries(config, legendColor)}}
	if len(shapes) > 0 {
		elements.Annotations = []core.AnnotationLayer{{Shapes: shapes, ZIndex: 2}}
	}
	return elements
}

// bosChoch draws breaks of structure and changes of character as
// horizontal segments from the pivot to the candle that broke it
func bosChoch(config core.SeriesConfig, table core.Table) core.PlotElements {
	const (
		bosColor   = "rgba(255, 165, 0, 0.4)"
		chochColor = "rgba(0, 0, 255, 0.4)"
	)

	rows := Extract(config, table)

	var bosPoints, chochPoints []core.DataPoint
	for _, row := range rows {
		ts, ok := row.Time()
		bos, choch, level := row[1], row[2], row[3]
		if !ok || !core.Valid(level) {
			continue
		}

		end := ts
		if broken, ok := core.Int(row[4]); ok {
			end = timeAt(rows, broken, ts)
		}

		segment := func() []core.DataPoint {
			return []core.DataPoint{core.Point(ts, level.Unwrap()), core.Point(end, level.Unwrap()), core.Gap(1)}
		}
		if core.Valid(bos) {
			bosPoints = append(bosPoints, segment()...)
		}
		if core.Valid(choch) {
			chochPoints = append(chochPoints, segment()...)
		}
	}

	var series []core.RenderableSeries
	if len(bosPoints) > 0 {
		bos := newSeries(config, core.SeriesLine)
		bos.Name = config.Name + " BOS"
		bos.Data = bosPoints
		bos.Color = bosColor
		bos.LineWidth = 2
		bos.Marker = noMarker()
		series = append(series, bos)
	}

	if len(chochPoints) > 0 {
		choch := newSeries(config, core.SeriesLine)
		choch.ID = config.ID + "_choch"
		choch.Name = config.Name + " CHOCH"
		choch.Data = chochPoints
		choch.Color = chochColor
		choch.LineWidth = 2
		choch.DashStyle = core.DashDot
		choch.Marker = noMarker()
		if len(bosPoints) > 0 {
			choch.LinkedTo = config.ID
		}
		series = append(series, choch)
	}

	if len(series) == 0 {
		empty := newSeries(config, core.SeriesLine)
		empty.Color = bosColor
		series = append(series, empty)
	}

	return core.PlotElements{Series: series}
}
