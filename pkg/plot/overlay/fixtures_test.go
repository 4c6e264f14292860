package overlay

import (
	"math"
	"time"

	"github.com/raykavin/plotkit/pkg/core"
)

var (
	base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	nan  = math.NaN()
)

func timestamps(n int) core.TimeColumn {
	out := make(core.TimeColumn, n)
	for i := range out {
		out[i] = base.Add(time.Duration(i) * time.Minute)
	}
	return out
}

// ms is the unix millisecond timestamp of row i
func ms(i int) float64 {
	return float64(base.Add(time.Duration(i) * time.Minute).UnixMilli())
}

// identity maps every logical key of kind to a column of the same name
func identity(id string, kind core.OverlayKind) core.SeriesConfig {
	mapping := make(map[string]string)
	for _, key := range DataKeys(kind) {
		mapping[key] = key
	}
	return core.SeriesConfig{ID: id, Kind: kind, Name: id, DataMapping: mapping}
}

// newTable builds a frame with n timestamps under "index" and the given float columns
func newTable(n int, columns map[string][]float64) *core.Frame {
	frame := core.NewFrame().MustAdd("index", timestamps(n))
	for name, values := range columns {
		frame.MustAdd(name, core.FloatColumn(values))
	}
	return frame
}

func seriesByID(elements *core.PlotElements, id string) (core.RenderableSeries, bool) {
	for _, series := range elements.Series {
		if series.ID == id {
			return series, true
		}
	}
	return core.RenderableSeries{}, false
}

func xs(points []core.DataPoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, point := range points {
		out = append(out, core.Float(point.X))
	}
	return out
}
