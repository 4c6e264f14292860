package overlay

import (
	"github.com/StudioSol/set"
	"github.com/raykavin/plotkit/pkg/core"
)

// Row is one extracted table row. Position 0 is always the timestamp,
// the rest follow DataKeys of the overlay kind.
type Row []core.Value

// Time returns the row timestamp in unix milliseconds
func (r Row) Time() (float64, bool) {
	if len(r) == 0 || !core.Valid(r[0]) {
		return 0, false
	}
	return r[0].Unwrap(), true
}

var (
	singleValueKeys = []string{"index", "value"}

	candlestickKeys     = []string{"index", "open", "high", "low", "close"}
	swingHighLowKeys    = []string{"index", "high_low", "level"}
	retracementKeys     = []string{"index", "direction", "current_retracement", "deepest_retracement"}
	previousHighLowKeys = []string{"index", "previous_high", "previous_low", "broken_high", "broken_low"}
	aroonKeys           = []string{"index", "aroon_up", "aroon_down"}
	fisherKeys          = []string{"index", "fisher", "fisher_signal"}
	qqeKeys             = []string{"index", "short_line", "long_line", "rsi_ma", "result"}
	fvgKeys             = []string{"index", "fvg", "top", "bottom", "mitigated_index"}
	gapKeys             = []string{"index", "gap_retrace", "gap_filled", "gap_size", "psc_timestamp", "psc"}
	orderBlockKeys      = []string{"index", "ob", "top", "bottom", "mitigated_index", "ob_volume", "percentage"}
	bosChochKeys        = []string{"index", "bos", "choch", "level", "broken_index"}
	liquidityKeys       = []string{"index", "liquidity", "level", "end", "swept"}
	sessionKeys         = []string{"index", "active", "high", "low"}
	eldersKeys          = []string{"index", "result", "ema", "buy_signal", "sell_signal"}
	macdKeys            = []string{"index", "macd", "macd_signal", "macd_histogram"}
	vortexKeys          = []string{"index", "plus_indicator", "minus_indicator"}
	ichimokuKeys        = []string{"index", "tenkan", "kijun", "senkou_a", "senkou_b", "chikou"}
	chandeKrollKeys     = []string{"index", "long_stop", "short_stop"}
	bollingerKeys       = []string{"index", "bbands_upper", "bbands_middle", "bbands_lower"}
	stochKeys           = []string{"index", "stoch_k", "stoch_d"}
	tradeSignalKeys     = []string{"index", "enter_long", "enter_short", "exit_long", "exit_short"}
	exitLevelKeys       = []string{"index", "take_profit", "stop_loss"}
)

// DataKeys returns the ordered logical keys read for a kind.
// Unknown kinds read nothing.
func DataKeys(kind core.OverlayKind) []string {
	switch kind {
	case core.KindLine, core.KindPanelLine, core.KindPanelLinePercent, core.KindHLine,
		core.KindVWAP, core.KindBBPercentB, core.KindATR, core.KindCCI, core.KindFOSC,
		core.KindPSAR, core.KindQStick, core.KindColumn, core.KindAO, core.KindFlag,
		core.KindPosition, core.KindRSI:
		return singleValueKeys
	case core.KindCandlestick:
		return candlestickKeys
	case core.KindSwingHighLow:
		return swingHighLowKeys
	case core.KindRetracements:
		return retracementKeys
	case core.KindPreviousHighLow:
		return previousHighLowKeys
	case core.KindAroon:
		return aroonKeys
	case core.KindFisher:
		return fisherKeys
	case core.KindQQE:
		return qqeKeys
	case core.KindFVG:
		return fvgKeys
	case core.KindGap:
		return gapKeys
	case core.KindOrderBlocks:
		return orderBlockKeys
	case core.KindBOSChoch:
		return bosChochKeys
	case core.KindLiquidity:
		return liquidityKeys
	case core.KindSessions:
		return sessionKeys
	case core.KindElders:
		return eldersKeys
	case core.KindMACD:
		return macdKeys
	case core.KindVortex:
		return vortexKeys
	case core.KindIchimoku:
		return ichimokuKeys
	case core.KindChandeKrollStop:
		return chandeKrollKeys
	case core.KindBBands:
		return bollingerKeys
	case core.KindStoch:
		return stochKeys
	case core.KindTradeSignal:
		return tradeSignalKeys
	case core.KindExitLevels:
		return exitLevelKeys
	default:
		return nil
	}
}

// Extract materializes one row per table row for the config's kind.
// Unmapped keys and absent columns read as None on every row.
func Extract(config core.SeriesConfig, table core.Table) []Row {
	if table == nil {
		return nil
	}

	keys := DataKeys(config.Kind)
	columns := make([]core.Column, len(keys))
	for i, key := range keys {
		if name, ok := config.Column(key); ok {
			columns[i], _ = table.Column(name)
		}
	}

	rows := make([]Row, table.NumRows())
	for i := range rows {
		row := make(Row, len(keys))
		for j, column := range columns {
			if column == nil {
				row[j] = core.None()
				continue
			}
			row[j] = column.Get(i)
		}
		rows[i] = row
	}

	return rows
}

// MissingColumns lists mapped physical columns the table does not expose,
// in key order and without repeats
func MissingColumns(config core.SeriesConfig, table core.Table) []string {
	missing := set.NewLinkedHashSetString()
	for _, key := range DataKeys(config.Kind) {
		name, ok := config.Column(key)
		if !ok {
			continue
		}
		if table == nil {
			missing.Add(name)
			continue
		}
		if _, ok := table.Column(name); !ok {
			missing.Add(name)
		}
	}

	names := make([]string, 0)
	for name := range missing.Iter() {
		names = append(names, name)
	}
	return names
}

// column reads a physical column as values. A missing column reads as empty.
func column(table core.Table, name string) []core.Value {
	if table == nil {
		return nil
	}

	col, ok := table.Column(name)
	if !ok {
		return nil
	}

	values := make([]core.Value, col.Len())
	for i := range values {
		values[i] = col.Get(i)
	}
	return values
}

// at returns values[i], or None when i is out of range
func at(values []core.Value, i int) core.Value {
	if i < 0 || i >= len(values) {
		return core.None()
	}
	return values[i]
}
