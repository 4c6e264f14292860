package plot

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/StudioSol/set"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/gorilla/mux"
	"github.com/raykavin/plotkit/pkg/core"
	"github.com/raykavin/plotkit/pkg/layout"
	"github.com/raykavin/plotkit/pkg/logger"
	"github.com/raykavin/plotkit/pkg/plot/overlay"
	"github.com/samber/lo"
)

// Static assets embedded in the binary
var (
	//go:embed assets
	staticFiles embed.FS
)

var ErrOverlayPanic = errors.New("overlay handler panicked")

// Chart assembles overlays into one chart and serves the last render
type Chart struct {
	sync.Mutex
	port          int
	debug         bool
	roundTrips    []core.RoundTrip
	scriptContent string
	indexHTML     *template.Template
	last          *ChartElements
	lastUpdate    time.Time
	hub           *hub
	metrics       *renderMetrics
	log           logger.Logger
}

// Option defines a function type for configuring a Chart instance
type Option func(*Chart)

// WithPort sets the HTTP server port
func WithPort(port int) Option {
	return func(chart *Chart) {
		chart.port = port
	}
}

// WithDebug enables debug mode (disables minification)
func WithDebug() Option {
	return func(chart *Chart) {
		chart.debug = true
	}
}

// WithRoundTrips sets the trades drawn over candlestick overlays
func WithRoundTrips(trips ...core.RoundTrip) Option {
	return func(chart *Chart) {
		chart.roundTrips = trips
	}
}

// NewChart creates a new chart instance with the provided options
func NewChart(log logger.Logger, options ...Option) (*Chart, error) {
	chart := &Chart{
		port: 8080,
		hub:  newHub(log),
		log:  log,
	}
	chart.metrics = newRenderMetrics(func() float64 {
		return float64(chart.hub.clientCount())
	})

	for _, option := range options {
		option(chart)
	}

	var err error
	chart.indexHTML, err = template.ParseFS(staticFiles, "assets/chart.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart template: %w", err)
	}

	chartJS, err := staticFiles.ReadFile("assets/chart.js")
	if err != nil {
		return nil, fmt.Errorf("failed to read chart.js: %w", err)
	}

	transpileChartJS := api.Transform(string(chartJS), api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            api.ES2015,
		MinifySyntax:      !chart.debug,
		MinifyIdentifiers: !chart.debug,
		MinifyWhitespace:  !chart.debug,
	})

	if len(transpileChartJS.Errors) > 0 {
		return nil, fmt.Errorf("chart script failed with: %v", transpileChartJS.Errors)
	}

	chart.scriptContent = string(transpileChartJS.Code)

	return chart, nil
}

type rendered struct {
	config   core.SeriesConfig
	elements *core.PlotElements
}

// Render runs every overlay of l against table and merges the results in
// layout order. A failing overlay is reported in the summary and skipped.
// The result also becomes the chart served over HTTP, and connected
// browsers are told to reload it.
func (c *Chart) Render(l *layout.Layout, table core.Table) ChartElements {
	chart := ChartElements{
		PlotElements: core.PlotElements{Series: []core.RenderableSeries{}},
		Overlays:     []OverlaySummary{},
	}
	if l == nil {
		return chart
	}
	chart.Title = l.Title
	chart.Panes = l.Panes

	start := time.Now()
	defer func() {
		c.metrics.renders.Inc()
		c.metrics.duration.Observe(time.Since(start).Seconds())
	}()

	ids := set.NewLinkedHashSetString()
	bundles := make([]rendered, 0, len(l.Series))

	for _, config := range l.Series {
		summary, elements := c.renderOverlay(config, table)
		chart.Overlays = append(chart.Overlays, summary)
		c.metrics.observe(summary)
		if elements == nil {
			continue
		}

		for _, series := range elements.Series {
			ids.Add(series.ID)
		}
		bundles = append(bundles, rendered{config, elements})
	}

	// links across overlays need every id of the chart, so they run last
	for _, bundle := range bundles {
		linkOverlay(bundle.config, bundle.elements, ids)
		chart.Append(*bundle.elements)
	}

	c.Lock()
	c.last = &chart
	c.lastUpdate = time.Now()
	notice := renderNotice{
		Title:    chart.Title,
		Overlays: len(chart.Overlays),
		Series:   len(chart.Series),
		Updated:  c.lastUpdate,
	}
	c.Unlock()

	c.hub.publish(Message{Type: MessageRendered, Payload: notice})

	return chart
}

func (c *Chart) renderOverlay(config core.SeriesConfig, table core.Table) (OverlaySummary, *core.PlotElements) {
	summary := OverlaySummary{ID: config.ID, Kind: config.Kind}
	log := c.log.WithFields(map[string]any{"overlay": config.ID, "kind": config.Kind.String()})

	if missing := overlay.MissingColumns(config, table); len(missing) > 0 {
		summary.Missing = missing
		log.Debugf("missing columns %v, reading them as null", missing)
	}

	elements, err := c.generate(config, table)
	switch {
	case err != nil:
		summary.Status = StatusFailed
		log.WithError(err).Error("overlay skipped")
		return summary, nil
	case elements == nil:
		summary.Status = StatusUnsupported
		log.Warnf("%v: %s", core.ErrUnknownKind, config.Kind)
		return summary, nil
	}

	promoteFirst(config, elements)
	summary.count(*elements)
	summary.Status = lo.Ternary(elements.Empty(), StatusEmpty, StatusRendered)

	log.Tracef("%d series, %d points, %d bands, %d lines, %d shapes, %d labels",
		summary.Series, summary.Points, summary.PlotBands, summary.PlotLines, summary.Shapes, summary.Labels)

	return summary, elements
}

func (c *Chart) generate(config core.SeriesConfig, table core.Table) (elements *core.PlotElements, err error) {
	defer func() {
		if r := recover(); r != nil {
			elements, err = nil, fmt.Errorf("%w: %v", ErrOverlayPanic, r)
		}
	}()
	return overlay.Generate(config, table, c.roundTrips...), nil
}

// promoteFirst gives the first series the overlay id unless a series
// already carries it, and moves links that pointed to the old id
func promoteFirst(config core.SeriesConfig, elements *core.PlotElements) {
	if config.ID == "" || len(elements.Series) == 0 {
		return
	}
	if lo.ContainsBy(elements.Series, func(series core.RenderableSeries) bool {
		return series.ID == config.ID
	}) {
		return
	}

	previous := elements.Series[0].ID
	elements.Series[0].ID = config.ID
	for i := range elements.Series {
		if elements.Series[i].LinkedTo == previous && previous != "" {
			elements.Series[i].LinkedTo = config.ID
		}
		if elements.Series[i].OnSeries == previous && previous != "" {
			elements.Series[i].OnSeries = config.ID
		}
	}
}

// linkOverlay attaches an overlay to the series named by config.LinkedTo.
// Flags are placed on it, other series follow its visibility. Series
// already linked inside their own overlay keep that link.
func linkOverlay(config core.SeriesConfig, elements *core.PlotElements, ids *set.LinkedHashSetString) {
	target := config.LinkedTo
	if target == "" || !ids.InArray(target) {
		return
	}

	for i := range elements.Series {
		series := &elements.Series[i]
		if series.ID == target {
			continue
		}
		if config.Kind == core.KindFlag || series.Type == core.SeriesFlags {
			series.OnSeries = target
			continue
		}
		if series.LinkedTo == "" {
			series.LinkedTo = target
		}
	}
}

// Last returns the most recent render, if any
func (c *Chart) Last() (ChartElements, bool) {
	c.Lock()
	defer c.Unlock()

	if c.last == nil {
		return ChartElements{}, false
	}
	return *c.last, true
}

// Handler routes the chart pages and APIs
func (c *Chart) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/assets/chart.js", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		fmt.Fprint(w, c.scriptContent)
	}).Methods(http.MethodGet)

	router.HandleFunc("/health", c.handleHealth)
	router.HandleFunc("/data", c.handleData).Methods(http.MethodGet)
	router.HandleFunc("/overlays", c.handleOverlays).Methods(http.MethodGet)
	router.HandleFunc("/overlays/{id}", c.handleOverlay).Methods(http.MethodGet)
	router.HandleFunc("/ws", c.hub.handleWebSocket)
	router.Handle("/metrics", c.metrics.handler())
	router.HandleFunc("/", c.handleIndex).Methods(http.MethodGet)

	return router
}

// Close disconnects every websocket client and stops notifying them.
// Renders keep working; they are no longer pushed.
func (c *Chart) Close() {
	c.hub.close()
}

// Start initializes the HTTP server for the chart
func (c *Chart) Start() error {
	c.log.Infof("Chart available at http://localhost:%d", c.port)
	return http.ListenAndServe(fmt.Sprintf(":%d", c.port), c.Handler())
}
