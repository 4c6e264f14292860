package overlay

import (
	"fmt"
	"strconv"
	"unicode/utf16"

	"github.com/raykavin/plotkit/pkg/core"
	"github.com/samber/lo"
)

// Base colours
const (
	colorSuccess = "#16a34a"
	colorWarning = "#ca8a04"
	colorCyan    = "#06b6d4"
	colorRed     = "#dc2626"
	colorYellow  = "#eab308"
	colorPurple  = "#9333ea"
	colorAshGrey = "#6b7280"
	colorWhite   = "#FFFFFF"

	colorOverbought = "#ef4444"
	colorOversold   = "#10b981"
	colorMidline    = "#6b7280"
)

var seriesPalette = []string{
	"#2563eb", "#dc2626", "#16a34a", "#ca8a04", "#9333ea",
	"#db2777", "#0891b2", "#ea580c", "#0d9488", "#7c2d12",
}

// seriesColor picks a stable palette colour for a series name
func seriesColor(name string) string {
	var hash int32
	for _, unit := range utf16.Encode([]rune(name)) {
		hash = (hash << 5) - hash + int32(unit)
	}

	index := int64(hash)
	if index < 0 {
		index = -index
	}
	return seriesPalette[index%int64(len(seriesPalette))]
}

// rgba converts a #rrggbb colour to rgba() with the given alpha
func rgba(hex string, alpha float64) string {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return hex
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatNumber(alpha))
}

// formatNumber prints the shortest exact representation of v
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var dashArrays = map[string]core.DashStyle{
	"5,5":             core.DashDash,
	"10,5":            core.DashDashDot,
	"15,10,5,10":      core.DashLongDashDot,
	"2,2":             core.DashDot,
	"15,10,5,10,5,10": core.DashLongDashDotDot,
}

// dashFromArray maps a CSS dash array to a dash style
func dashFromArray(dash string) core.DashStyle {
	if dash == "" {
		return ""
	}
	if style, ok := dashArrays[dash]; ok {
		return style
	}
	return core.DashSolid
}

// newSeries creates a series carrying the shared options of a config
func newSeries(config core.SeriesConfig, seriesType core.SeriesType) core.RenderableSeries {
	return core.RenderableSeries{
		Type:     seriesType,
		ID:       config.ID,
		Name:     config.Name,
		Data:     []core.DataPoint{},
		YAxis:    config.YAxis,
		ZIndex:   config.ZIndex,
		LinkedTo: config.LinkedTo,
		SeriesStyle: core.SeriesStyle{
			EnableMouseTracking: true,
			ShowInLegend:        true,
		},
	}
}

// linkedSeries creates a secondary series grouped with primaryID
func linkedSeries(config core.SeriesConfig, seriesType core.SeriesType, suffix, name, primaryID string) core.RenderableSeries {
	series := newSeries(config, seriesType)
	series.ID = config.ID + suffix
	series.Name = name
	series.LinkedTo = primaryID
	return series
}

func noMarker() *core.Marker {
	return &core.Marker{Enabled: false}
}

// valuePoints keeps rows with a timestamp and a valid value at col
func valuePoints(rows []Row, col int) []core.DataPoint {
	return scaledPoints(rows, col, 1)
}

func scaledPoints(rows []Row, col int, scale float64) []core.DataPoint {
	points := make([]core.DataPoint, 0, len(rows))
	for _, row := range rows {
		ts, ok := row.Time()
		if !ok || !core.Valid(row[col]) {
			continue
		}
		points = append(points, core.Point(ts, row[col].Unwrap()*scale))
	}
	return points
}

// rawPoints keeps every row with a timestamp. Missing values stay null so
// the engine draws a gap.
func rawPoints(rows []Row) []core.DataPoint {
	points := make([]core.DataPoint, 0, len(rows))
	for _, row := range rows {
		if _, ok := row.Time(); !ok {
			continue
		}
		points = append(points, core.DataPoint{X: row[0], Values: append([]core.Value(nil), row[1:]...)})
	}
	return points
}

// constantPoints maps every timestamp of points to level
func constantPoints(points []core.DataPoint, level float64) []core.DataPoint {
	return lo.Map(points, func(point core.DataPoint, _ int) core.DataPoint {
		return core.Point(point.X.Unwrap(), level)
	})
}

// referenceLevel is a constant threshold drawn next to an oscillator
type referenceLevel struct {
	suffix string
	name   string
	value  float64
	color  string
	dash   core.DashStyle
}

// referenceSeries draws each level at every timestamp of primary.
// The reference lines are linked to primary and ignore the mouse.
func referenceSeries(config core.SeriesConfig, primary core.RenderableSeries, levels ...referenceLevel) []core.RenderableSeries {
	out := make([]core.RenderableSeries, 0, len(levels))
	for _, level := range levels {
		series := linkedSeries(config, core.SeriesLine, level.suffix, level.name, primary.ID)
		series.Data = constantPoints(primary.Data, level.value)
		series.Color = level.color
		series.LineWidth = 1
		series.DashStyle = level.dash
		series.Marker = noMarker()
		series.EnableMouseTracking = false
		series.ShowInLegend = false
		out = append(out, series)
	}
	return out
}

// zeroLevel is the solid zero line shared by centred oscillators
func zeroLevel() referenceLevel {
	return referenceLevel{suffix: "_zero", name: "Zero Line", value: 0, color: colorMidline, dash: core.DashSolid}
}

// thresholdOptions decodes threshold options, ignoring malformed bags
func thresholdOptions(config core.SeriesConfig) core.ThresholdOptions {
	options, err := core.DecodeOptions[core.ThresholdOptions](config)
	if err != nil {
		return core.ThresholdOptions{}
	}
	return options
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// negativeZones colours values below zero with negative
func negativeZones(negative, positive string) []core.Zone {
	return []core.Zone{{Value: lo.ToPtr(0.0), Color: negative}, {Color: positive}}
}

func anchor(x, y float64, yAxis int) core.Anchor {
	return core.Anchor{X: x, Y: y, YAxis: yAxis}
}

// legendSeries is an empty line that only toggles the overlay in the legend
func legendSeries(config core.SeriesConfig, color string) core.RenderableSeries {
	series := newSeries(config, core.SeriesLine)
	series.Color = color
	series.EnableMouseTracking = false
	return series
}
