package plot

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/raykavin/plotkit/pkg/core"
	"github.com/raykavin/plotkit/pkg/layout"
	"github.com/raykavin/plotkit/pkg/logger"
	"github.com/raykavin/plotkit/pkg/logger/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestChart(t *testing.T, options ...Option) *Chart {
	t.Helper()
	log, err := zerolog.NewWithWriter(io.Discard, logger.Config{Level: "trace", JSON: true})
	require.NoError(t, err)

	chart, err := NewChart(zerolog.NewAdapter(log), options...)
	require.NoError(t, err)
	t.Cleanup(chart.Close)
	return chart
}

func sampleTable() *core.Frame {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	index := core.TimeColumn{start, start.Add(time.Minute), start.Add(2 * time.Minute)}

	return core.NewFrame().
		MustAdd("index", index).
		MustAdd("close", core.FloatColumn{10, 11, 12}).
		MustAdd("ma", core.FloatColumn{10, 10.5, 11}).
		MustAdd("signal", core.BoolColumn{false, true, true})
}

func mapping(value string) map[string]string {
	return map[string]string{"index": "index", "value": value}
}

func sampleLayout() *layout.Layout {
	return &layout.Layout{
		Title: "BTCUSDT",
		Panes: []layout.Pane{{ID: "main", Height: 100}},
		Series: []core.SeriesConfig{
			{ID: "price", Kind: core.KindLine, DataMapping: mapping("close")},
			{ID: "long", Kind: core.KindFlag, DataMapping: mapping("signal"), LinkedTo: "price"},
			{ID: "ma", Kind: core.KindLine, DataMapping: mapping("ma"), LinkedTo: "price"},
			{ID: "lost", Kind: core.KindLine, DataMapping: mapping("close"), LinkedTo: "nowhere"},
			{ID: "heat", Kind: "heatmap", DataMapping: mapping("close")},
			{ID: "gone", Kind: core.KindLine, DataMapping: mapping("volume")},
		},
	}
}

func seriesByID(chart ChartElements, id string) core.RenderableSeries {
	for _, series := range chart.Series {
		if series.ID == id {
			return series
		}
	}
	return core.RenderableSeries{}
}

func TestRender(t *testing.T) {
	chart := newTestChart(t).Render(sampleLayout(), sampleTable())

	require.Equal(t, "BTCUSDT", chart.Title)
	require.Equal(t, []string{"price", "long", "ma", "lost", "gone"}, chart.SeriesIDs())

	require.Equal(t, "price", seriesByID(chart, "long").OnSeries)
	require.Equal(t, "price", seriesByID(chart, "ma").LinkedTo)
	require.Empty(t, seriesByID(chart, "lost").LinkedTo)
	require.Empty(t, seriesByID(chart, "price").LinkedTo)
	require.Len(t, seriesByID(chart, "long").Data, 1)

	require.Len(t, chart.Overlays, 6)
	require.Equal(t, StatusRendered, chart.Overlays[0].Status)
	require.Equal(t, 3, chart.Overlays[0].Points)
	require.Equal(t, StatusUnsupported, chart.Overlays[4].Status)
	require.Equal(t, []string{"volume"}, chart.Overlays[5].Missing)
}

func TestRender_NilLayout(t *testing.T) {
	chart := newTestChart(t).Render(nil, sampleTable())
	require.Empty(t, chart.Series)
	require.NotNil(t, chart.Series)
	require.Empty(t, chart.Overlays)
}

type panicColumn struct{}

func (panicColumn) Len() int { return 3 }

func (panicColumn) Get(int) core.Value { panic("broken column") }

type panicTable struct {
	*core.Frame
}

func (t panicTable) Column(name string) (core.Column, bool) {
	if name == "close" {
		return panicColumn{}, true
	}
	return t.Frame.Column(name)
}

func TestRender_RecoversPanics(t *testing.T) {
	l := &layout.Layout{Series: []core.SeriesConfig{
		{ID: "broken", Kind: core.KindLine, DataMapping: mapping("close")},
		{ID: "ma", Kind: core.KindLine, DataMapping: mapping("ma")},
	}}

	chart := newTestChart(t).Render(l, panicTable{sampleTable()})
	require.Equal(t, []string{"ma"}, chart.SeriesIDs())
	require.Equal(t, StatusFailed, chart.Overlays[0].Status)
	require.Equal(t, StatusRendered, chart.Overlays[1].Status)
}

func TestPromoteFirst(t *testing.T) {
	elements := &core.PlotElements{Series: []core.RenderableSeries{
		{ID: "ob_zones"},
		{ID: "ob_labels", LinkedTo: "ob_zones"},
		{ID: "ob_flags", OnSeries: "ob_zones"},
	}}

	promoteFirst(core.SeriesConfig{ID: "ob"}, elements)
	require.Equal(t, []string{"ob", "ob_labels", "ob_flags"}, elements.SeriesIDs())
	require.Equal(t, "ob", elements.Series[1].LinkedTo)
	require.Equal(t, "ob", elements.Series[2].OnSeries)

	kept := &core.PlotElements{Series: []core.RenderableSeries{{ID: "rsi_upper"}, {ID: "rsi"}}}
	promoteFirst(core.SeriesConfig{ID: "rsi"}, kept)
	require.Equal(t, []string{"rsi_upper", "rsi"}, kept.SeriesIDs())
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

func TestHandlers_BeforeRender(t *testing.T) {
	handler := newTestChart(t).Handler()

	require.Equal(t, http.StatusServiceUnavailable, get(t, handler, "/health").Code)
	require.Equal(t, http.StatusNotFound, get(t, handler, "/data").Code)
	require.Equal(t, http.StatusNotFound, get(t, handler, "/overlays").Code)
	require.Equal(t, http.StatusOK, get(t, handler, "/").Code)
	require.Equal(t, http.StatusNotFound, get(t, handler, "/missing").Code)
}

func TestHandlers(t *testing.T) {
	chart := newTestChart(t, WithPort(9090), WithDebug())
	chart.Render(sampleLayout(), sampleTable())
	handler := chart.Handler()

	require.Equal(t, http.StatusOK, get(t, handler, "/health").Code)

	index := get(t, handler, "/")
	require.Equal(t, http.StatusOK, index.Code)
	require.Contains(t, index.Body.String(), "<title>BTCUSDT</title>")

	script := get(t, handler, "/assets/chart.js")
	require.Equal(t, "application/javascript", script.Header().Get("Content-Type"))
	require.Contains(t, script.Body.String(), "/data")

	data := get(t, handler, "/data")
	require.Equal(t, http.StatusOK, data.Code)
	var payload struct {
		Title  string `json:"title"`
		Series []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"series"`
		Overlays []OverlaySummary `json:"overlays"`
	}
	require.NoError(t, json.NewDecoder(data.Body).Decode(&payload))
	require.Equal(t, "BTCUSDT", payload.Title)
	require.Len(t, payload.Series, 5)
	require.Equal(t, "flags", payload.Series[1].Type)
	require.Len(t, payload.Overlays, 6)

	overlays := get(t, handler, "/overlays")
	require.Equal(t, "text/csv", overlays.Header().Get("Content-Type"))
	records, err := csv.NewReader(strings.NewReader(overlays.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7)
	require.Equal(t, SummaryHeader, records[0])
	require.Equal(t, []string{"price", "line", "rendered", "1", "3", "0", "0", "0", "0", ""}, records[1])
	require.Equal(t, "volume", records[6][9])

	single := get(t, handler, "/overlays/heat")
	require.Equal(t, http.StatusOK, single.Code)
	var summary OverlaySummary
	require.NoError(t, json.NewDecoder(single.Body).Decode(&summary))
	require.Equal(t, StatusUnsupported, summary.Status)
	require.Equal(t, http.StatusNotFound, get(t, handler, "/overlays/nope").Code)

	metrics := get(t, handler, "/metrics").Body.String()
	require.Contains(t, metrics, "plotkit_renders_total 1")
	require.Contains(t, metrics, `plotkit_overlays_total{kind="line",status="rendered"} 4`)
	require.Contains(t, metrics, `plotkit_points_total{kind="flag"} 1`)
	require.Contains(t, metrics, "plotkit_websocket_clients 0")
}

func TestLast(t *testing.T) {
	chart := newTestChart(t, WithRoundTrips())
	_, ok := chart.Last()
	require.False(t, ok)

	chart.Render(sampleLayout(), sampleTable())
	last, ok := chart.Last()
	require.True(t, ok)
	require.Equal(t, "BTCUSDT", last.Title)
}

func TestWebSocket_NotifiesRenders(t *testing.T) {
	chart := newTestChart(t)
	server := httptest.NewServer(chart.Handler())
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello Message
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, MessageHello, hello.Type)
	require.Equal(t, 1, chart.hub.clientCount())

	chart.Render(sampleLayout(), sampleTable())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var notice struct {
		Type    string       `json:"type"`
		Payload renderNotice `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&notice))
	require.Equal(t, MessageRendered, notice.Type)
	require.Equal(t, "BTCUSDT", notice.Payload.Title)
	require.Equal(t, 6, notice.Payload.Overlays)
	require.Equal(t, 5, notice.Payload.Series)
}

func dialChart(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var hello Message
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, MessageHello, hello.Type)
	return conn
}

func TestWebSocket_StalledClientDoesNotBlockHub(t *testing.T) {
	chart := newTestChart(t)
	server := httptest.NewServer(chart.Handler())
	defer server.Close()

	// never reads after the hello
	dialChart(t, server)

	for i := 0; i < 64; i++ {
		chart.hub.publish(Message{Type: MessageRendered, Payload: strings.Repeat("x", 64*1024)})
	}

	dialed := make(chan error, 1)
	go func() {
		conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
		if err == nil {
			var hello Message
			err = conn.ReadJSON(&hello)
			conn.Close()
		}
		dialed <- err
	}()

	select {
	case err := <-dialed:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("new client could not connect while another one stalls")
	}
}

func TestChart_Close(t *testing.T) {
	chart := newTestChart(t)
	server := httptest.NewServer(chart.Handler())
	defer server.Close()

	conn := dialChart(t, server)

	chart.Close()
	chart.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
	require.Eventually(t, func() bool { return chart.hub.clientCount() == 0 }, time.Second, 10*time.Millisecond)

	// renders still work, nothing is pushed and late clients are turned away
	elements := chart.Render(sampleLayout(), sampleTable())
	require.Len(t, elements.Overlays, 6)

	late, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer late.Close()
	require.NoError(t, late.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = late.ReadMessage()
	require.Error(t, err)
	require.Zero(t, chart.hub.clientCount())
}
