package indicator

import (
	"math"

	"github.com/markcheno/go-talib"
)

// SuperTrend follows price with an ATR band that flips side when the
// close crosses it
func SuperTrend(high, low, close []float64, atrPeriod int, factor float64) []float64 {
	n := len(close)
	trend := make([]float64, n)
	if n == 0 {
		return trend
	}

	atr := talib.Atr(high, low, close, atrPeriod)
	upper := make([]float64, n)
	lower := make([]float64, n)

	for i := 1; i < n; i++ {
		median := (high[i] + low[i]) / 2
		basicUpper := median + atr[i]*factor
		basicLower := median - atr[i]*factor

		upper[i] = upper[i-1]
		if basicUpper < upper[i-1] || close[i-1] > upper[i-1] {
			upper[i] = basicUpper
		}

		lower[i] = lower[i-1]
		if basicLower > lower[i-1] || close[i-1] < lower[i-1] {
			lower[i] = basicLower
		}

		switch {
		case trend[i-1] == upper[i-1] && close[i] > upper[i]:
			trend[i] = lower[i]
		case trend[i-1] == upper[i-1]:
			trend[i] = upper[i]
		case close[i] < lower[i]:
			trend[i] = upper[i]
		default:
			trend[i] = lower[i]
		}
	}

	return trend
}

// ChandeKrollStop returns the long and short stops: the highest high and
// lowest low over p, pulled back by x ATRs, then smoothed over q
func ChandeKrollStop(high, low, close []float64, p int, x float64, q int) (long, short []float64) {
	atr := talib.Atr(high, low, close, p)
	highest := talib.Max(high, p)
	lowest := talib.Min(low, p)

	firstHigh := make([]float64, len(close))
	firstLow := make([]float64, len(close))
	for i := range close {
		firstHigh[i] = highest[i] - x*atr[i]
		firstLow[i] = lowest[i] + x*atr[i]
	}

	return talib.Min(firstLow, q), talib.Max(firstHigh, q)
}

// Vortex returns VI+ and VI- over period
func Vortex(high, low, close []float64, period int) (plus, minus []float64) {
	n := len(close)
	plusMove := make([]float64, n)
	minusMove := make([]float64, n)
	for i := 1; i < n; i++ {
		plusMove[i] = math.Abs(high[i] - low[i-1])
		minusMove[i] = math.Abs(low[i] - high[i-1])
	}

	trueRange := talib.Sum(talib.TRange(high, low, close), period)
	plusSum := talib.Sum(plusMove, period)
	minusSum := talib.Sum(minusMove, period)

	plus = make([]float64, n)
	minus = make([]float64, n)
	for i := range trueRange {
		if trueRange[i] == 0 {
			continue
		}
		plus[i] = plusSum[i] / trueRange[i]
		minus[i] = minusSum[i] / trueRange[i]
	}
	return plus, minus
}

// forecastOscillator is the distance of close from its time series
// forecast, as a fraction of close
func forecastOscillator(close []float64, period int) []float64 {
	forecast := talib.Tsf(close, period)
	out := make([]float64, len(close))
	for i := range close {
		if close[i] != 0 {
			out[i] = (close[i] - forecast[i]) / close[i]
		}
	}
	return out
}

func qstick(open, close []float64, period int) []float64 {
	body := make([]float64, len(close))
	for i := range close {
		body[i] = close[i] - open[i]
	}
	return talib.Sma(body, period)
}

func awesomeOscillator(high, low []float64) []float64 {
	median := talib.MedPrice(high, low)
	fast := talib.Sma(median, 5)
	slow := talib.Sma(median, 34)

	out := make([]float64, len(median))
	for i := range median {
		out[i] = fast[i] - slow[i]
	}
	return out
}
