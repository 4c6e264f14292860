package plot

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

// handleHealth reports unavailable until a chart has been rendered
func (c *Chart) handleHealth(w http.ResponseWriter, _ *http.Request) {
	c.Lock()
	lastUpdate := c.lastUpdate
	c.Unlock()

	if lastUpdate.IsZero() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(lastUpdate.String())); err != nil {
		c.log.Error("Failed to write health status: ", err)
	}
}

// handleIndex handles the main page request
func (c *Chart) handleIndex(w http.ResponseWriter, _ *http.Request) {
	chart, _ := c.Last()

	w.Header().Set("Content-Type", "text/html")
	err := c.indexHTML.Execute(w, map[string]interface{}{
		"title": chart.Title,
		"panes": chart.Panes,
	})
	if err != nil {
		c.log.Error("Template execution failed: ", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleData serves the last render as JSON
func (c *Chart) handleData(w http.ResponseWriter, _ *http.Request) {
	chart, ok := c.Last()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(chart); err != nil {
		c.log.Error("JSON encoding failed: ", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleOverlay serves the summary of one overlay of the last render
func (c *Chart) handleOverlay(w http.ResponseWriter, r *http.Request) {
	chart, ok := c.Last()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	id := mux.Vars(r)["id"]
	summary, found := lo.Find(chart.Overlays, func(summary OverlaySummary) bool {
		return summary.ID == id
	})
	if !found {
		http.Error(w, "unknown overlay "+id, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		c.log.Error("JSON encoding failed: ", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleOverlays exports the per-overlay summary of the last render as CSV
func (c *Chart) handleOverlays(w http.ResponseWriter, _ *http.Request) {
	chart, ok := c.Last()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	buffer := bytes.NewBuffer(nil)
	csvWriter := csv.NewWriter(buffer)

	if err := csvWriter.Write(SummaryHeader); err != nil {
		c.log.Error("Failed writing CSV header: ", err)
		http.Error(w, "Failed to generate CSV", http.StatusInternalServerError)
		return
	}

	for _, summary := range chart.Overlays {
		if err := csvWriter.Write(summary.Row()); err != nil {
			c.log.Error("Failed writing CSV data: ", err)
			http.Error(w, "Failed to generate CSV", http.StatusInternalServerError)
			return
		}
	}
	csvWriter.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment;filename=overlays.csv")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buffer.Bytes()); err != nil {
		c.log.Error("Failed writing CSV response: ", err)
	}
}
