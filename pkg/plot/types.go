package plot

import (
	"strconv"
	"strings"

	"github.com/raykavin/plotkit/pkg/core"
	"github.com/raykavin/plotkit/pkg/layout"
)

// Overlay render outcomes
const (
	StatusRendered    = "rendered"
	StatusEmpty       = "empty"
	StatusUnsupported = "unsupported"
	StatusFailed      = "failed"
)

// ChartElements is a whole chart: the layout frame, the merged elements of
// every overlay and a per-overlay summary
type ChartElements struct {
	Title string        `json:"title"`
	Panes []layout.Pane `json:"panes"`
	core.PlotElements
	Overlays []OverlaySummary `json:"overlays"`
}

// OverlaySummary counts what one overlay contributed
type OverlaySummary struct {
	ID        string           `json:"id"`
	Kind      core.OverlayKind `json:"type"`
	Status    string           `json:"status"`
	Series    int              `json:"series"`
	Points    int              `json:"points"`
	PlotBands int              `json:"plotBands"`
	PlotLines int              `json:"plotLines"`
	Shapes    int              `json:"shapes"`
	Labels    int              `json:"labels"`
	Missing   []string         `json:"missing,omitempty"`
}

func (s *OverlaySummary) count(elements core.PlotElements) {
	s.Series = len(elements.Series)
	for _, series := range elements.Series {
		s.Points += len(series.Data)
	}
	s.PlotBands = len(elements.PlotBands)
	s.PlotLines = len(elements.PlotLines)
	for _, layer := range elements.Annotations {
		s.Shapes += len(layer.Shapes)
		s.Labels += len(layer.Labels)
	}
}

// SummaryHeader names the columns of Row
var SummaryHeader = []string{
	"id", "type", "status", "series", "points",
	"plot_bands", "plot_lines", "shapes", "labels", "missing",
}

// Row formats the summary as SummaryHeader columns
func (s OverlaySummary) Row() []string {
	return []string{
		s.ID,
		s.Kind.String(),
		s.Status,
		strconv.Itoa(s.Series),
		strconv.Itoa(s.Points),
		strconv.Itoa(s.PlotBands),
		strconv.Itoa(s.PlotLines),
		strconv.Itoa(s.Shapes),
		strconv.Itoa(s.Labels),
		strings.Join(s.Missing, ";"),
	}
}
