package overlay

import (
	"github.com/raykavin/plotkit/pkg/core"
)

// Handler turns one overlay config and its table into plot elements.
// Handlers never mutate their inputs and keep no state between calls.
type Handler func(config core.SeriesConfig, table core.Table) core.PlotElements

func handlerFor(kind core.OverlayKind, roundTrips []core.RoundTrip) Handler {
	switch kind {
	case core.KindLine, core.KindPanelLine, core.KindPanelLinePercent, core.KindHLine,
		core.KindVWAP, core.KindBBPercentB:
		return line
	case core.KindColumn, core.KindAO:
		return columnSeries
	case core.KindPosition:
		return position
	case core.KindATR:
		return atr
	case core.KindCandlestick:
		return func(config core.SeriesConfig, table core.Table) core.PlotElements {
			return candlestick(config, table, roundTrips)
		}
	case core.KindRSI:
		return rsi
	case core.KindCCI:
		return cci
	case core.KindStoch:
		return stochastic
	case core.KindAroon:
		return aroon
	case core.KindFisher:
		return fisher
	case core.KindQQE:
		return qqe
	case core.KindMACD:
		return macd
	case core.KindFOSC:
		return fosc
	case core.KindQStick:
		return qstick
	case core.KindPSAR:
		return psar
	case core.KindVortex:
		return vortex
	case core.KindChandeKrollStop:
		return chandeKrollStop
	case core.KindBBands:
		return bollingerBands
	case core.KindIchimoku:
		return ichimoku
	case core.KindElders:
		return elders
	case core.KindFlag:
		return flag
	case core.KindTradeSignal:
		return tradeSignal
	case core.KindExitLevels:
		return exitLevels
	case core.KindSwingHighLow:
		return swingHighLow
	case core.KindBOSChoch:
		return bosChoch
	case core.KindOrderBlocks:
		return orderBlocks
	case core.KindFVG:
		return fairValueGap
	case core.KindGap:
		return gap
	case core.KindLiquidity:
		return liquidity
	case core.KindSessions:
		return sessions
	case core.KindPreviousHighLow:
		return previousHighLow
	case core.KindRetracements:
		return retracements
	default:
		return nil
	}
}

// Supported reports whether kind has a handler
func Supported(kind core.OverlayKind) bool {
	return handlerFor(kind, nil) != nil
}

// Generate renders one overlay. It returns nil for a kind without a handler,
// which callers treat as "draw nothing". Round trips are only read by the
// candlestick overlay.
func Generate(config core.SeriesConfig, table core.Table, roundTrips ...core.RoundTrip) *core.PlotElements {
	handler := handlerFor(config.Kind, roundTrips)
	if handler == nil {
		return nil
	}

	elements := handler(config, table)
	if elements.Series == nil {
		elements.Series = []core.RenderableSeries{}
	}
	dropDanglingLinks(&elements)
	return &elements
}

// dropDanglingLinks clears linkedTo references that point outside the bundle
func dropDanglingLinks(elements *core.PlotElements) {
	ids := make(map[string]struct{}, len(elements.Series))
	for _, series := range elements.Series {
		ids[series.ID] = struct{}{}
	}

	for i := range elements.Series {
		if elements.Series[i].LinkedTo == "" {
			continue
		}
		if _, ok := ids[elements.Series[i].LinkedTo]; !ok || elements.Series[i].LinkedTo == elements.Series[i].ID {
			elements.Series[i].LinkedTo = ""
		}
	}
}
