package overlay

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/raykavin/plotkit/pkg/core"
)

var sessionColors = map[string]string{
	"Sydney":              "#F59E0B",
	"Tokyo":               "#3B82F6",
	"London":              "#8B5CF6",
	"NewYork":             "#6366F1",
	"AsianKillZone":       "#FBBF24",
	"LondonOpenKillZone":  "#A78BFA",
	"NewYorkKillZone":     "#818CF8",
	"LondonCloseKillZone": "#94A3B8",
}

const (
	sessionRangeColor   = "#8B5CF6"
	sessionDefaultColor = "#16866E"
	sessionOpacity      = 0.08
)

var upperCase = regexp.MustCompile(`([A-Z])`)

// sessionLabel derives the block label from the session option
func sessionLabel(spec core.SessionSpec, fallback string) string {
	switch {
	case spec.Name != "":
		return strings.TrimSpace(upperCase.ReplaceAllString(spec.Name, " $1"))
	case spec.Range != nil:
		if spec.Range.Start == nil || spec.Range.End == nil {
			return "Custom Range"
		}
		return fmt.Sprintf("%02d:%02d-%02d:%02d UTC",
			spec.Range.Start.Hour, spec.Range.Start.Minute,
			spec.Range.End.Hour, spec.Range.End.Minute)
	default:
		return fallback
	}
}

func sessionColor(spec core.SessionSpec) string {
	if color, ok := sessionColors[spec.Name]; ok {
		return color
	}
	if spec.Range != nil {
		return sessionRangeColor
	}
	return sessionDefaultColor
}

// sessions outlines every contiguous run of active rows with a dashed box
// spanning the run's price range, labelled with the session name
func sessions(config core.SeriesConfig, table core.Table) core.PlotElements {
	options, _ := core.DecodeOptions[core.SessionOptions](config)
	spec := options.Session

	color := sessionColor(spec)
	text := sessionLabel(spec, config.Name)

	layer := core.AnnotationLayer{
		ZIndex: 1,
		LabelOptions: &core.LabelOptions{
			BackgroundColor: "transparent",
			BorderColor:     "transparent",
			Style:           core.LabelStyle{Color: color},
		},
	}

	active := func(row Row) bool { return core.Truthy(row[1]) }
	var bands []core.PlotBand
	for _, block := range scanRegions(Extract(config, table), active, 3, 2) {
		low, high, ok := block.span()
		if !ok {
			// no price bounds: shade the whole pane height instead
			bands = append(bands, core.PlotBand{
				From:  block.start,
				To:    block.end,
				Color: rgba(color, sessionOpacity),
				Label: text,
			})
			continue
		}

		layer.Shapes = append(layer.Shapes, core.Shape{
			Type: core.ShapePath,
			Points: []core.Anchor{
				anchor(block.start, low, config.YAxis),
				anchor(block.end, low, config.YAxis),
				anchor(block.end, high, config.YAxis),
				anchor(block.start, high, config.YAxis),
			},
			Stroke:      color,
			StrokeWidth: 1,
			DashStyle:   core.DashShortDash,
			Fill:        rgba(color, sessionOpacity),
		})

		layer.Labels = append(layer.Labels, core.Label{
			Point:           anchor(block.start+(block.end-block.start)/2, high, config.YAxis),
			Text:            text,
			OffsetY:         -6,
			VerticalAlign:   "top",
			BackgroundColor: "transparent",
			BorderColor:     "transparent",
			Style:           core.LabelStyle{Color: color, FontWeight: "bold"},
		})
	}

	return core.PlotElements{
		Series:      []core.RenderableSeries{legendSeries(config, color)},
		PlotBands:   bands,
		Annotations: []core.AnnotationLayer{layer},
	}
}
