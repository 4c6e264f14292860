package core

// OverlayKind identifies how one overlay is rendered
type OverlayKind string

const (
	KindLine             OverlayKind = "line"
	KindCandlestick      OverlayKind = "candlestick"
	KindColumn           OverlayKind = "column"
	KindPanelLine        OverlayKind = "panel_line"
	KindPanelLinePercent OverlayKind = "panel_line_percent"
	KindRSI              OverlayKind = "rsi"
	KindCCI              OverlayKind = "cci"
	KindAroon            OverlayKind = "aroon"
	KindFisher           OverlayKind = "fisher"
	KindQQE              OverlayKind = "qqe"
	KindElders           OverlayKind = "elders"
	KindFOSC             OverlayKind = "fosc"
	KindStoch            OverlayKind = "stoch"
	KindATR              OverlayKind = "atr"
	KindAO               OverlayKind = "ao"
	KindQStick           OverlayKind = "qstick"
	KindBBands           OverlayKind = "bbands"
	KindBBPercentB       OverlayKind = "bb_percent_b"
	KindMACD             OverlayKind = "macd"
	KindVortex           OverlayKind = "vortex"
	KindIchimoku         OverlayKind = "ichimoku"
	KindChandeKrollStop  OverlayKind = "chande_kroll_stop"
	KindPSAR             OverlayKind = "psar"
	KindFlag             OverlayKind = "flag"
	KindTradeSignal      OverlayKind = "trade_signal"
	KindSwingHighLow     OverlayKind = "shl"
	KindBOSChoch         OverlayKind = "bos_choch"
	KindOrderBlocks      OverlayKind = "order_blocks"
	KindFVG              OverlayKind = "fvg"
	KindLiquidity        OverlayKind = "liquidity"
	KindGap              OverlayKind = "gap"
	KindSessions         OverlayKind = "sessions"
	KindPreviousHighLow  OverlayKind = "previous_high_low"
	KindRetracements     OverlayKind = "retracements"
	KindHLine            OverlayKind = "h_line"
	KindVWAP             OverlayKind = "vwap"
	KindExitLevels       OverlayKind = "exit_levels"
	KindPosition         OverlayKind = "position"
)

var overlayKinds = []OverlayKind{
	KindLine, KindCandlestick, KindColumn, KindPanelLine, KindPanelLinePercent,
	KindRSI, KindCCI, KindAroon, KindFisher, KindQQE, KindElders, KindFOSC,
	KindStoch, KindATR, KindAO, KindQStick, KindBBands, KindBBPercentB, KindMACD,
	KindVortex, KindIchimoku, KindChandeKrollStop, KindPSAR, KindFlag,
	KindTradeSignal, KindSwingHighLow, KindBOSChoch, KindOrderBlocks, KindFVG,
	KindLiquidity, KindGap, KindSessions, KindPreviousHighLow, KindRetracements,
	KindHLine, KindVWAP, KindExitLevels, KindPosition,
}

// OverlayKinds returns every known kind in declaration order
func OverlayKinds() []OverlayKind {
	return append([]OverlayKind(nil), overlayKinds...)
}

// Valid reports whether k is a known kind
func (k OverlayKind) Valid() bool {
	for _, kind := range overlayKinds {
		if kind == k {
			return true
		}
	}
	return false
}

func (k OverlayKind) String() string {
	return string(k)
}
