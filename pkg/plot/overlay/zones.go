package overlay

import (
	"fmt"
	"math"

	"github.com/raykavin/plotkit/pkg/core"
)

const (
	orderBlockLookahead = 50
	fvgLookahead        = 10
	gapLookahead        = 10
)

// zone is a time x price rectangle
type zone struct {
	start, end  float64
	bottom, top float64
}

func (z zone) centre() (float64, float64) {
	return (z.start + z.end) / 2, (z.top + z.bottom) / 2
}

func (z zone) rect(yAxis int, fill string) core.Shape {
	return core.Shape{
		Type: core.ShapeRect,
		Points: []core.Anchor{
			anchor(z.start, z.bottom, yAxis),
			anchor(z.end, z.bottom, yAxis),
			anchor(z.end, z.top, yAxis),
			anchor(z.start, z.top, yAxis),
		},
		Fill: fill,
	}
}

// rangePoints appends the zone to a range series, closing it with a gap
// so successive zones are not joined
func (z zone) rangePoints() []core.DataPoint {
	points := []core.DataPoint{core.Point(z.start, z.bottom, z.top)}
	if z.end != z.start {
		points = append(points, core.Point(z.end, z.bottom, z.top))
	}
	return append(points, core.Gap(2))
}

// activeZone reads a zone opened at row i. It needs a non-zero marker and
// both bounds. The end row comes from zoneEnd.
func activeZone(rows []Row, i int, marker, top, bottom, mitigated core.Value, lookahead int) (zone, bool) {
	ts, ok := rows[i].Time()
	if !ok || !core.Truthy(marker) || !core.Valid(top) || !core.Valid(bottom) {
		return zone{}, false
	}

	end := zoneEnd(i, mitigated, len(rows), lookahead)
	return zone{
		start:  ts,
		end:    timeAt(rows, end, ts),
		bottom: bottom.Unwrap(),
		top:    top.Unwrap(),
	}, true
}

func zoneLookahead(config core.SeriesConfig, fallback int) int {
	options, err := core.DecodeOptions[core.ZoneOptions](config)
	if err != nil || options.Lookahead == nil || *options.Lookahead < 0 {
		return fallback
	}
	return *options.Lookahead
}

func zoneSeries(config core.SeriesConfig, color string, points []core.DataPoint) core.RenderableSeries {
	series := newSeries(config, core.SeriesAreaRange)
	series.Data = points
	series.Color = color
	series.FillColor = color
	series.LineWidth = 0
	series.Marker = noMarker()
	return series
}

var zoneLabelStyle = core.LabelStyle{Color: "rgba(255, 255, 255, 0.4)", FontSize: "8px"}

// formatVolume abbreviates a traded volume
func formatVolume(volume float64) string {
	switch {
	case volume == 0 || math.IsNaN(volume):
		return "N/A"
	case volume >= 1e12:
		return fmt.Sprintf("%.3fT", volume/1e12)
	case volume >= 1e9:
		return fmt.Sprintf("%.3fB", volume/1e9)
	case volume >= 1e6:
		return fmt.Sprintf("%.3fM", volume/1e6)
	case volume >= 1e3:
		return fmt.Sprintf("%.3fk", volume/1e3)
	default:
		return fmt.Sprintf("%.2f", volume)
	}
}

// orderBlocks draws each order block as a rectangle and range segment,
// labelled with its volume and strength when known
func orderBlocks(config core.SeriesConfig, table core.Table) core.PlotElements {
	const fill = "rgba(138, 43, 226, 0.3)"

	rows := Extract(config, table)
	lookahead := zoneLookahead(config, orderBlockLookahead)

	layer := core.AnnotationLayer{ZIndex: config.ZIndex}
	points := make([]core.DataPoint, 0)

	for i, row := range rows {
		z, ok := activeZone(rows, i, row[1], row[2], row[3], row[4], lookahead)
		if !ok {
			continue
		}

		layer.Shapes = append(layer.Shapes, z.rect(config.YAxis, fill))
		points = append(points, z.rangePoints()...)

		volume, percentage := row[5], row[6]
		if !core.Valid(volume) && !core.Valid(percentage) {
			continue
		}

		x, y := z.centre()
		layer.Labels = append(layer.Labels, core.Label{
			Point: anchor(x, y, config.YAxis),
			Text:  fmt.Sprintf("OB: %s (%s%%)", formatVolume(volume.TakeOr(0)), formatNumber(percentage.TakeOr(0))),
			Style: zoneLabelStyle,
		})
	}

	return core.PlotElements{
		Series:      []core.RenderableSeries{zoneSeries(config, fill, points)},
		Annotations: []core.AnnotationLayer{layer},
	}
}

// fairValueGap draws each unfilled imbalance as a labelled rectangle
func fairValueGap(config core.SeriesConfig, table core.Table) core.PlotElements {
	const fill = "rgba(255, 255, 0, 0.2)"

	rows := Extract(config, table)
	lookahead := zoneLookahead(config, fvgLookahead)

	layer := core.AnnotationLayer{ZIndex: config.ZIndex}
	points := make([]core.DataPoint, 0)

	for i, row := range rows {
		z, ok := activeZone(rows, i, row[1], row[2], row[3], row[4], lookahead)
		if !ok {
			continue
		}

		layer.Shapes = append(layer.Shapes, z.rect(config.YAxis, fill))
		points = append(points, z.rangePoints()...)

		x, y := z.centre()
		layer.Labels = append(layer.Labels, core.Label{
			Point: anchor(x, y, config.YAxis),
			Text:  "FVG",
			Style: zoneLabelStyle,
		})
	}

	return core.PlotElements{
		Series:      []core.RenderableSeries{zoneSeries(config, fill, points)},
		Annotations: []core.AnnotationLayer{layer},
	}
}

// gap draws opening gaps against the previous session close: a shaded
// zone between the close and the open, a dashed line from the close, and
// the gap size in percent
func gap(config core.SeriesConfig, table core.Table) core.PlotElements {
	const (
		upColor   = "#22C55E"
		downColor = "#EF4444"
	)

	rows := Extract(config, table)
	opens := column(table, config.ColumnOr("open", "o"))
	lookahead := zoneLookahead(config, gapLookahead)

	layer := core.AnnotationLayer{
		ZIndex: 10,
		LabelOptions: &core.LabelOptions{
			BackgroundColor: "transparent",
			BorderColor:     "transparent",
		},
	}

	for i, row := range rows {
		ts, ok := row.Time()
		retrace, filled, size, pscTime, psc := row[1], row[2], row[3], row[4], row[5]
		if !ok || !core.Valid(retrace) || !core.Truthy(size) {
			continue
		}

		open := at(opens, i)
		if !core.Truthy(pscTime) || !core.Truthy(psc) || !core.Truthy(open) {
			continue
		}

		isUp := size.Unwrap() > 0
		isFilled := core.Truthy(filled)
		color := downColor
		arrow := "↓"
		offset := -15.0
		if isUp {
			color, arrow, offset = upColor, "↑", 15
		}

		closePrice := psc.Unwrap()
		z := zone{
			start:  ts,
			end:    timeAt(rows, min(i+lookahead, len(rows)-1), ts),
			bottom: math.Min(closePrice, open.Unwrap()),
			top:    math.Max(closePrice, open.Unwrap()),
		}
		layer.Shapes = append(layer.Shapes, z.rect(config.YAxis, rgba(color, 0.15)))

		layer.Shapes = append(layer.Shapes, core.Shape{
			Type:        core.ShapePath,
			Points:      []core.Anchor{anchor(pscTime.Unwrap(), closePrice, config.YAxis), anchor(ts, closePrice, config.YAxis)},
			Stroke:      color,
			StrokeWidth: 1,
			DashStyle:   core.DashDash,
		})

		text := fmt.Sprintf("%s %.2f%%", arrow, math.Abs(size.Unwrap())/closePrice*100)
		background, padding, fontSize := rgba(color, 0.9), 6.0, "12px"
		if isFilled {
			text += " • FILLED ✓"
			background, padding, fontSize = rgba(color, 0.95), 8, "13px"
		}

		layer.Labels = append(layer.Labels, core.Label{
			Point:           anchor((pscTime.Unwrap()+ts)/2, closePrice, config.YAxis),
			Text:            text,
			OffsetY:         offset,
			Align:           "center",
			VerticalAlign:   "middle",
			BackgroundColor: background,
			BorderColor:     color,
			BorderWidth:     2,
			Padding:         padding,
			Style:           core.LabelStyle{Color: colorWhite, FontSize: fontSize, FontWeight: "700"},
		})
	}

	return core.PlotElements{
		Series:      []core.RenderableSeries{legendSeries(config, upColor)},
		Annotations: []core.AnnotationLayer{layer},
	}
}
