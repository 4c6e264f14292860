package zerolog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/raykavin/plotkit/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, logger.Config{Level: "debug", JSON: true})
	require.NoError(t, err)

	adapter := NewAdapter(log)
	adapter.WithFields(map[string]any{"overlay": "rsi", "rows": 3}).
		WithError(errors.New("boom")).
		Warnf("missing column %s", "rsi_14")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "missing column rsi_14", entry["message"])
	require.Equal(t, "rsi", entry["overlay"])
	require.Equal(t, 3.0, entry["rows"])
	require.Equal(t, "boom", entry["error"])
}

func TestNewWithWriter_BadLevel(t *testing.T) {
	_, err := NewWithWriter(&bytes.Buffer{}, logger.Config{Level: "loud"})
	require.Error(t, err)
}

func TestAdapter_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, logger.Config{Level: "trace", JSON: true})
	require.NoError(t, err)

	adapter := NewAdapter(log)
	adapter.SetLevel(logger.ErrorLevel)
	require.Equal(t, logger.ErrorLevel, adapter.GetLevel())

	adapter.Info("hidden")
	require.Zero(t, buf.Len())

	adapter.Error("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestConsoleFormatters(t *testing.T) {
	require.Contains(t, formatLevel("info"), "[INF]")
	require.Contains(t, formatLevel("other"), "[UNK]")
	require.Equal(t, ">", formatMessage(""))
	require.Contains(t, formatMessage(strings.Repeat("x", 100)), strings.Repeat("x", messageWidth))
	require.NotContains(t, formatMessage(strings.Repeat("x", 100)), strings.Repeat("x", messageWidth+1))
	require.Contains(t, formatCaller("/src/plotkit/pkg/plot/chart.go:12345"), "chart.go")
	require.Contains(t, formatCaller("/src/plotkit/pkg/plot/chart.go:12345"), ":2345]")
	require.Contains(t, formatTimestamp("2024-01-01T10:00:00Z", "2006"), "[2024]")
}
