package indicator

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/markcheno/go-talib"
	"github.com/raykavin/plotkit/pkg/core"
)

var (
	ErrUnknownIndicator = errors.New("unknown indicator")
	ErrInsufficientData = errors.New("insufficient data")
	ErrMissingSource    = errors.New("missing source column")
)

// Source names the OHLC columns indicators read from
type Source struct {
	Open, High, Low, Close string
}

// DefaultSource reads the conventional lowercase OHLC column names
var DefaultSource = Source{Open: "open", High: "high", Low: "low", Close: "close"}

// prices holds the source columns as plain numbers, NaN for missing values
type prices struct {
	open, high, low, close []float64
}

// output is one derived column
type output struct {
	name   string
	values []float64
}

type derivation struct {
	// warmUp is the number of leading rows without a meaningful value
	warmUp  int
	compute func(p prices) []output
}

var derivations = map[string]derivation{
	"rsi": {14, func(p prices) []output {
		return []output{{"rsi", talib.Rsi(p.close, 14)}}
	}},
	"ema": {8, func(p prices) []output {
		return []output{{"ema", talib.Ema(p.close, 9)}}
	}},
	"macd": {33, func(p prices) []output {
		macd, signal, histogram := talib.Macd(p.close, 12, 26, 9)
		return []output{{"macd", macd}, {"macd_signal", signal}, {"macd_histogram", histogram}}
	}},
	"bbands": {19, func(p prices) []output {
		upper, middle, lower := talib.BBands(p.close, 20, 2, 2, talib.SMA)
		return []output{{"bbands_upper", upper}, {"bbands_middle", middle}, {"bbands_lower", lower}}
	}},
	"stoch": {8, func(p prices) []output {
		k, d := talib.Stoch(p.high, p.low, p.close, 5, 3, talib.SMA, 3, talib.SMA)
		return []output{{"stoch_k", k}, {"stoch_d", d}}
	}},
	"cci": {13, func(p prices) []output {
		return []output{{"cci", talib.Cci(p.high, p.low, p.close, 14)}}
	}},
	"aroon": {14, func(p prices) []output {
		down, up := talib.Aroon(p.high, p.low, 14)
		return []output{{"aroon_up", up}, {"aroon_down", down}}
	}},
	"psar": {1, func(p prices) []output {
		return []output{{"psar", talib.Sar(p.high, p.low, 0.02, 0.2)}}
	}},
	"atr": {14, func(p prices) []output {
		return []output{{"atr", talib.Atr(p.high, p.low, p.close, 14)}}
	}},
	"fosc": {13, func(p prices) []output {
		return []output{{"fosc", forecastOscillator(p.close, 14)}}
	}},
	"qstick": {9, func(p prices) []output {
		return []output{{"qstick", qstick(p.open, p.close, 10)}}
	}},
	"ao": {33, func(p prices) []output {
		return []output{{"ao", awesomeOscillator(p.high, p.low)}}
	}},
	"supertrend": {11, func(p prices) []output {
		return []output{{"supertrend", SuperTrend(p.high, p.low, p.close, 10, 3)}}
	}},
	"chande_kroll_stop": {18, func(p prices) []output {
		long, short := ChandeKrollStop(p.high, p.low, p.close, 10, 1, 9)
		return []output{{"long_stop", long}, {"short_stop", short}}
	}},
	"vortex": {14, func(p prices) []output {
		plus, minus := Vortex(p.high, p.low, p.close, 14)
		return []output{{"plus_indicator", plus}, {"minus_indicator", minus}}
	}},
}

// Names lists the indicators Derive knows, sorted
func Names() []string {
	names := make([]string, 0, len(derivations))
	for name := range derivations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Derive computes the named indicators from the default OHLC columns and
// appends their outputs to frame
func Derive(frame *core.Frame, names ...string) error {
	return DeriveFrom(frame, DefaultSource, names...)
}

// DeriveFrom is like Derive with explicit source columns. Warm-up rows of
// every output read as missing.
func DeriveFrom(frame *core.Frame, source Source, names ...string) error {
	if len(names) == 0 {
		return nil
	}

	p, err := readPrices(frame, source)
	if err != nil {
		return err
	}

	for _, name := range names {
		d, ok := derivations[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownIndicator, name)
		}
		if frame.NumRows() <= d.warmUp {
			return fmt.Errorf("%w: %s needs more than %d rows, got %d", ErrInsufficientData, name, d.warmUp, frame.NumRows())
		}

		for _, out := range d.compute(p) {
			if err := frame.Add(out.name, core.FloatColumn(warmUp(out.values, d.warmUp))); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}

func readPrices(frame *core.Frame, source Source) (prices, error) {
	read := func(name string) ([]float64, error) {
		column, ok := frame.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingSource, name)
		}
		values := make([]float64, column.Len())
		for i := range values {
			values[i] = core.Float(column.Get(i))
		}
		return values, nil
	}

	var (
		p   prices
		err error
	)
	if p.close, err = read(source.Close); err != nil {
		return p, err
	}

	// open, high and low fall back to close for close-only tables
	for _, field := range []struct {
		name string
		dst  *[]float64
	}{
		{source.Open, &p.open},
		{source.High, &p.high},
		{source.Low, &p.low},
	} {
		if *field.dst, err = read(field.name); err != nil {
			*field.dst = p.close
		}
	}
	return p, nil
}

// warmUp blanks the first n values
func warmUp(values []float64, n int) []float64 {
	for i := 0; i < n && i < len(values); i++ {
		values[i] = math.NaN()
	}
	return values
}
