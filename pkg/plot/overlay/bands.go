package overlay

import (
	"math"

	"github.com/raykavin/plotkit/pkg/core"
)

// rangePoints builds [x, low, high] points for rows where both bounds are valid
func rangePoints(rows []Row, lowCol, highCol int, ordered bool) []core.DataPoint {
	points := make([]core.DataPoint, 0, len(rows))
	for _, row := range rows {
		ts, ok := row.Time()
		if !ok || !core.Valid(row[lowCol]) || !core.Valid(row[highCol]) {
			continue
		}

		low, high := row[lowCol].Unwrap(), row[highCol].Unwrap()
		if ordered {
			low, high = math.Min(low, high), math.Max(low, high)
		}
		points = append(points, core.Point(ts, low, high))
	}
	return points
}

// bollingerBands draws the band as a range plus its three boundary lines.
// The range needs both bounds on a row; each line only needs its own value.
func bollingerBands(config core.SeriesConfig, table core.Table) core.PlotElements {
	rows := Extract(config, table)

	band := newSeries(config, core.SeriesAreaRange)
	band.ID = config.ID + "_range"
	band.Name = config.Name + " Range"
	band.Data = rangePoints(rows, 3, 1, false)
	band.Color = "#2563eb"
	band.FillColor = "rgba(37, 99, 235, 0.1)"
	band.LineWidth = 0
	band.Marker = noMarker()

	upper := signalLine(config, "_upper", "Upper", "#2563eb", "", band.ID, valuePoints(rows, 1))
	upper.LineWidth = 1.5
	middle := signalLine(config, "_middle", "Middle", "#64748b", core.DashDash, band.ID, valuePoints(rows, 2))
	middle.LineWidth = 1
	lower := signalLine(config, "_lower", "Lower", "#2563eb", "", band.ID, valuePoints(rows, 3))
	lower.LineWidth = 1.5

	return core.PlotElements{Series: []core.RenderableSeries{band, upper, middle, lower}}
}

// ichimoku draws the five Ichimoku lines and the cloud between the spans
func ichimoku(config core.SeriesConfig, table core.Table) core.PlotElements {
	rows := Extract(config, table)

	lines := []struct {
		col    int
		suffix string
		name   string
		color  string
		dash   core.DashStyle
	}{
		{1, "_tenkan", "Tenkan-sen", "#2563eb", ""},
		{2, "_kijun", "Kijun-sen", "#f59e0b", ""},
		{3, "_senkou_a", "Senkou Span A", "#10b981", ""},
		{4, "_senkou_b", "Senkou Span B", "#ef4444", ""},
		{5, "_chikou", "Chikou Span", "#8b5cf6", core.DashDash},
	}

	series := make([]core.RenderableSeries, 0, len(lines)+1)
	for _, spec := range lines {
		s := newSeries(config, core.SeriesLine)
		s.ID = config.ID + spec.suffix
		s.Name = spec.name
		s.Data = valuePoints(rows, spec.col)
		s.Color = spec.color
		s.LineWidth = 1.5
		s.DashStyle = spec.dash
		s.Marker = noMarker()
		series = append(series, s)
	}

	cloud := newSeries(config, core.SeriesAreaRange)
	cloud.ID = config.ID + "_cloud"
	cloud.Name = "Cloud"
	cloud.Data = rangePoints(rows, 3, 4, true)
	cloud.Color = "rgba(16, 185, 129, 0.12)"
	cloud.FillColor = "rgba(16, 185, 129, 0.12)"
	cloud.LineWidth = 0
	cloud.ZIndex = config.ZIndex - 1
	cloud.EnableMouseTracking = false
	cloud.Marker = noMarker()

	return core.PlotElements{Series: append(series, cloud)}
}
