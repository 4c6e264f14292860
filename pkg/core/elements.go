package core

import (
	"encoding/json"
)

type SeriesType string

const (
	SeriesLine        SeriesType = "line"
	SeriesColumn      SeriesType = "column"
	SeriesAreaRange   SeriesType = "arearange"
	SeriesScatter     SeriesType = "scatter"
	SeriesFlags       SeriesType = "flags"
	SeriesCandlestick SeriesType = "candlestick"
)

type DashStyle string

const (
	DashSolid     DashStyle = "Solid"
	DashDash      DashStyle = "Dash"
	DashDot       DashStyle = "Dot"
	DashDashDot   DashStyle = "DashDot"
	DashShortDash DashStyle = "ShortDash"
	DashShortDot  DashStyle = "ShortDot"
	DashLongDash  DashStyle = "LongDash"

	DashLongDashDot    DashStyle = "LongDashDot"
	DashLongDashDotDot DashStyle = "LongDashDotDot"
)

type ShapeType string

const (
	ShapeRect ShapeType = "rect"
	ShapePath ShapeType = "path"
)

// DataPoint is one entry of a series. It encodes as [x, values...] or,
// for flags, as {x, title, text}. A point with no X breaks the line.
type DataPoint struct {
	X      Value
	Values []Value
	Title  string
	Text   string
}

// Point builds a data point from valid numbers
func Point(x float64, values ...float64) DataPoint {
	point := DataPoint{X: Some(x), Values: make([]Value, len(values))}
	for i, v := range values {
		point.Values[i] = Some(v)
	}
	return point
}

// Gap builds the null point used to break series continuity
func Gap(arity int) DataPoint {
	point := DataPoint{X: None(), Values: make([]Value, arity)}
	for i := range point.Values {
		point.Values[i] = None()
	}
	return point
}

func (p DataPoint) MarshalJSON() ([]byte, error) {
	if p.Title != "" || p.Text != "" {
		return json.Marshal(map[string]any{
			"x":     jsonNumber(p.X),
			"title": p.Title,
			"text":  p.Text,
		})
	}

	out := make([]any, 0, len(p.Values)+1)
	out = append(out, jsonNumber(p.X))
	for _, v := range p.Values {
		out = append(out, jsonNumber(v))
	}
	return json.Marshal(out)
}

func jsonNumber(v Value) any {
	if !Valid(v) {
		return nil
	}
	return v.Unwrap()
}

// Zone colours a series segment up to Value; the last zone has no bound
type Zone struct {
	Value *float64 `json:"value,omitempty"`
	Color string   `json:"color"`
}

type Marker struct {
	Enabled bool    `json:"enabled"`
	Symbol  string  `json:"symbol,omitempty"`
	Radius  float64 `json:"radius,omitempty"`
}

// SeriesStyle holds the rendering hints of a series
type SeriesStyle struct {
	Color               string    `json:"color,omitempty"`
	FillColor           string    `json:"fillColor,omitempty"`
	NegativeColor       string    `json:"negativeColor,omitempty"`
	LineWidth           float64   `json:"lineWidth,omitempty"`
	DashStyle           DashStyle `json:"dashStyle,omitempty"`
	Marker              *Marker   `json:"marker,omitempty"`
	Step                string    `json:"step,omitempty"`
	Opacity             float64   `json:"opacity,omitempty"`
	Zones               []Zone    `json:"zones,omitempty"`
	EnableMouseTracking bool      `json:"enableMouseTracking"`
	ShowInLegend        bool      `json:"showInLegend"`
	FlagShape           string    `json:"shape,omitempty"`
	Width               float64   `json:"width,omitempty"`
	DataLabelFormat     string    `json:"dataLabelFormat,omitempty"`
	UpColor             string    `json:"upColor,omitempty"`
}

// RenderableSeries is one data series handed to the chart engine
type RenderableSeries struct {
	Type     SeriesType  `json:"type"`
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Data     []DataPoint `json:"data"`
	YAxis    int         `json:"yAxis"`
	ZIndex   int         `json:"zIndex"`
	LinkedTo string      `json:"linkedTo,omitempty"`
	OnSeries string      `json:"onSeries,omitempty"`
	SeriesStyle
}

// Anchor is a point in data coordinates
type Anchor struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	XAxis int     `json:"xAxis"`
	YAxis int     `json:"yAxis"`
}

type Shape struct {
	Type        ShapeType `json:"type"`
	Points      []Anchor  `json:"points"`
	Fill        string    `json:"fill,omitempty"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"strokeWidth"`
	DashStyle   DashStyle `json:"dashStyle,omitempty"`
}

type LabelStyle struct {
	Color      string `json:"color,omitempty"`
	FontSize   string `json:"fontSize,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
}

// Label is text anchored at a data point and shifted by pixel offsets
type Label struct {
	Point           Anchor     `json:"point"`
	Text            string     `json:"text"`
	OffsetX         float64    `json:"x,omitempty"`
	OffsetY         float64    `json:"y,omitempty"`
	Align           string     `json:"align,omitempty"`
	VerticalAlign   string     `json:"verticalAlign,omitempty"`
	BackgroundColor string     `json:"backgroundColor,omitempty"`
	BorderColor     string     `json:"borderColor,omitempty"`
	BorderWidth     float64    `json:"borderWidth,omitempty"`
	Padding         float64    `json:"padding,omitempty"`
	Style           LabelStyle `json:"style"`
}

// LabelOptions are the defaults applied to every label of a layer
type LabelOptions struct {
	BackgroundColor string     `json:"backgroundColor,omitempty"`
	BorderColor     string     `json:"borderColor,omitempty"`
	BorderWidth     float64    `json:"borderWidth,omitempty"`
	Padding         float64    `json:"padding,omitempty"`
	Style           LabelStyle `json:"style"`
}

// AnnotationLayer groups shapes and labels drawn at one z-order
type AnnotationLayer struct {
	Shapes       []Shape       `json:"shapes,omitempty"`
	Labels       []Label       `json:"labels,omitempty"`
	ZIndex       int           `json:"zIndex"`
	LabelOptions *LabelOptions `json:"labelOptions,omitempty"`
}

// PlotBand shades the x-axis range [From, To]
type PlotBand struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Color string  `json:"color"`
	Label string  `json:"label,omitempty"`
}

// PlotLine marks a constant value on an axis
type PlotLine struct {
	Value     float64   `json:"value"`
	Color     string    `json:"color"`
	Width     float64   `json:"width"`
	DashStyle DashStyle `json:"dashStyle,omitempty"`
	Label     string    `json:"label,omitempty"`
}

// PlotElements is everything one overlay contributes to a chart
type PlotElements struct {
	Series      []RenderableSeries `json:"series"`
	PlotBands   []PlotBand         `json:"plotBands,omitempty"`
	PlotLines   []PlotLine         `json:"plotLines,omitempty"`
	Annotations []AnnotationLayer  `json:"annotations,omitempty"`
}

// Append concatenates parts into p, keeping their declared order
func (p *PlotElements) Append(parts ...PlotElements) {
	for _, part := range parts {
		p.Series = append(p.Series, part.Series...)
		p.PlotBands = append(p.PlotBands, part.PlotBands...)
		p.PlotLines = append(p.PlotLines, part.PlotLines...)
		p.Annotations = append(p.Annotations, part.Annotations...)
	}
}

// SeriesIDs returns the ids of all series in order
func (p PlotElements) SeriesIDs() []string {
	ids := make([]string, 0, len(p.Series))
	for _, series := range p.Series {
		ids = append(ids, series.ID)
	}
	return ids
}

// Empty reports whether the bundle draws nothing
func (p PlotElements) Empty() bool {
	for _, series := range p.Series {
		if len(series.Data) > 0 {
			return false
		}
	}
	for _, layer := range p.Annotations {
		if len(layer.Shapes) > 0 || len(layer.Labels) > 0 {
			return false
		}
	}
	return len(p.PlotBands) == 0 && len(p.PlotLines) == 0
}
