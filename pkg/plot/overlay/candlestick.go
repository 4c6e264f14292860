package overlay

import (
	"github.com/raykavin/plotkit/pkg/core"
)

const (
	buyMarkerColor  = "rgba(0, 128, 0, 0.8)"
	sellMarkerColor = "rgba(220, 38, 38, 0.8)"

	takeProfitFill = "rgba(0, 255, 0, 0.3)"
	stopLossFill   = "rgba(255, 0, 0, 0.3)"
)

// candlestick draws OHLC candles. Round trips add buy and sell markers and,
// when they carry exit levels, the take-profit and stop-loss boxes.
func candlestick(config core.SeriesConfig, table core.Table, roundTrips []core.RoundTrip) core.PlotElements {
	rows := Extract(config, table)

	candles := newSeries(config, core.SeriesCandlestick)
	candles.Data = rawPoints(rows)
	candles.UpColor = colorSuccess
	candles.Color = colorRed

	elements := core.PlotElements{Series: []core.RenderableSeries{candles}}
	if len(roundTrips) == 0 {
		return elements
	}

	lastTime := 0.0
	if timed := timedRows(rows); len(timed) > 0 {
		lastTime, _ = timed[len(timed)-1].Time()
	}

	var buys, sells []core.DataPoint
	var shapes []core.Shape
	for _, trip := range roundTrips {
		open := float64(trip.OpenTime.UnixMilli())

		var closeTime float64
		if trip.Closed() {
			closeTime = float64(trip.CloseTime.Unwrap().UnixMilli())
		}

		entry := trip.LowestPrice
		switch trip.Side {
		case core.SideLong:
			buys = append(buys, core.Point(open, trip.LowestPrice))
			if trip.Closed() {
				sells = append(sells, core.Point(closeTime, trip.HighestPrice))
			}
		case core.SideShort:
			entry = trip.HighestPrice
			sells = append(sells, core.Point(open, trip.HighestPrice))
			if trip.Closed() {
				buys = append(buys, core.Point(closeTime, trip.LowestPrice))
			}
		default:
			continue
		}

		end := closeTime
		if !trip.Closed() {
			end = max(lastTime, open)
		}
		if core.Valid(trip.TakeProfit) {
			shapes = append(shapes, zone{start: open, end: end, bottom: entry, top: trip.TakeProfit.Unwrap()}.rect(config.YAxis, takeProfitFill))
		}
		if core.Valid(trip.StopLoss) {
			shapes = append(shapes, zone{start: open, end: end, bottom: entry, top: trip.StopLoss.Unwrap()}.rect(config.YAxis, stopLossFill))
		}
	}

	if len(buys) > 0 {
		elements.Series = append(elements.Series, tradeMarkers(config, "_buy_point", "Buy Point", "Bought {y:.2f}", buyMarkerColor, "triangle", buys))
	}
	if len(sells) > 0 {
		elements.Series = append(elements.Series, tradeMarkers(config, "_sell_point", "Sell Point", "Sold {y:.2f}", sellMarkerColor, "triangle-down", sells))
	}
	if len(shapes) > 0 {
		elements.Annotations = []core.AnnotationLayer{{Shapes: shapes, ZIndex: config.ZIndex}}
	}

	return elements
}

func tradeMarkers(config core.SeriesConfig, suffix, name, format, color, symbol string, points []core.DataPoint) core.RenderableSeries {
	series := linkedSeries(config, core.SeriesScatter, suffix, name, config.ID)
	series.Data = points
	series.Color = color
	series.Marker = &core.Marker{Enabled: true, Symbol: symbol, Radius: 6}
	series.DataLabelFormat = format
	return series
}
