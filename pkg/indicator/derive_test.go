package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/raykavin/plotkit/pkg/core"
	"github.com/stretchr/testify/require"
)

func candles(n int) *core.Frame {
	index := make(core.TimeColumn, n)
	open := make(core.FloatColumn, n)
	high := make(core.FloatColumn, n)
	low := make(core.FloatColumn, n)
	closes := make(core.FloatColumn, n)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		index[i] = start.Add(time.Duration(i) * time.Hour)
		price := 100 + 10*math.Sin(float64(i)/5) + float64(i)/10
		open[i] = price - 0.5
		closes[i] = price + 0.5
		high[i] = price + 2
		low[i] = price - 2
	}

	return core.NewFrame().
		MustAdd("time", index).
		MustAdd("open", open).
		MustAdd("high", high).
		MustAdd("low", low).
		MustAdd("close", closes)
}

func TestDerive_AllIndicators(t *testing.T) {
	frame := candles(120)
	require.NoError(t, Derive(frame, Names()...))

	derived := frame.Columns()[5:]
	require.Len(t, derived, 23)
	for _, name := range derived {
		column, _ := frame.Column(name)
		require.False(t, core.Valid(column.Get(0)), name)
		require.True(t, core.Valid(column.Get(119)), name)
	}
}

func TestDerive_Ranges(t *testing.T) {
	frame := candles(80)
	require.NoError(t, Derive(frame, "rsi", "bbands", "aroon"))

	rsi, _ := frame.Column("rsi")
	upper, _ := frame.Column("bbands_upper")
	middle, _ := frame.Column("bbands_middle")
	lower, _ := frame.Column("bbands_lower")
	aroonUp, _ := frame.Column("aroon_up")

	for i := 20; i < frame.NumRows(); i++ {
		require.InDelta(t, 50, rsi.Get(i).Unwrap(), 50)
		require.GreaterOrEqual(t, upper.Get(i).Unwrap(), middle.Get(i).Unwrap())
		require.GreaterOrEqual(t, middle.Get(i).Unwrap(), lower.Get(i).Unwrap())
		require.InDelta(t, 50, aroonUp.Get(i).Unwrap(), 50)
	}

	require.False(t, core.Valid(rsi.Get(13)))
	require.True(t, core.Valid(rsi.Get(14)))
}

func TestDerive_Errors(t *testing.T) {
	require.ErrorIs(t, Derive(candles(50), "renko"), ErrUnknownIndicator)
	require.ErrorIs(t, Derive(candles(10), "macd"), ErrInsufficientData)

	frame := candles(50)
	require.NoError(t, Derive(frame, "ema"))
	require.ErrorIs(t, Derive(frame, "ema"), core.ErrDuplicateName)

	require.ErrorIs(t, DeriveFrom(candles(50), Source{Close: "price"}, "ema"), ErrMissingSource)
	require.NoError(t, Derive(candles(5)))
}

func TestDerive_CloseOnly(t *testing.T) {
	full := candles(40)
	closes, _ := full.Column("close")
	index, _ := full.Column("time")

	frame := core.NewFrame().MustAdd("time", index).MustAdd("close", closes)
	require.NoError(t, Derive(frame, "atr"))

	atr, _ := frame.Column("atr")
	require.True(t, core.Valid(atr.Get(39)))
}
