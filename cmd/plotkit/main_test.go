package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/raykavin/plotkit/pkg/core"
	"github.com/raykavin/plotkit/pkg/plot"
	"github.com/stretchr/testify/require"
)

func sampleFrame() *core.Frame {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	index := make(core.TimeColumn, 20)
	closes := make(core.FloatColumn, 20)
	for i := range index {
		index[i] = start.Add(time.Duration(i) * time.Hour)
		closes[i] = float64(100 + i%7)
	}
	return core.NewFrame().
		MustAdd("time", index).
		MustAdd("close", closes).
		MustAdd("long", core.BoolColumn(make([]bool, 20)))
}

func TestInspectedColumns(t *testing.T) {
	frame := sampleFrame()

	names, err := inspectedColumns(frame, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"close", "long"}, names)

	names, err = inspectedColumns(frame, []string{"long"})
	require.NoError(t, err)
	require.Equal(t, []string{"long"}, names)

	_, err = inspectedColumns(frame, []string{"volume"})
	require.Error(t, err)
}

func TestInspect(t *testing.T) {
	bins, bootstrap = 5, 50
	t.Cleanup(func() { bins, bootstrap = 15, 0 })

	var out bytes.Buffer
	require.NoError(t, inspect(&out, sampleFrame(), []string{"close"}))
	require.Contains(t, strings.ToUpper(out.String()), "MEDIAN")
	require.Contains(t, out.String(), "------ close -------")
	require.Contains(t, out.String(), "MEAN (95%)")
}

func TestWriteSummary(t *testing.T) {
	var out bytes.Buffer
	writeSummary(&out, []plot.OverlaySummary{
		{ID: "price", Kind: core.KindLine, Status: plot.StatusRendered, Series: 1, Points: 20},
		{ID: "rsi", Kind: core.KindRSI, Status: plot.StatusEmpty, Series: 3, Missing: []string{"rsi_14"}},
	})

	require.Contains(t, out.String(), "price")
	require.Contains(t, out.String(), "rsi_14")
	require.Contains(t, strings.ToUpper(out.String()), "1 RENDERED")
}
