package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/moznion/go-optional"
	"github.com/raykavin/plotkit/pkg/core"
)

type roundTripRecord struct {
	Side         core.SideType `json:"side"`
	OpenTime     time.Time     `json:"open_datetime"`
	CloseTime    *time.Time    `json:"close_datetime"`
	HighestPrice float64       `json:"highest_price"`
	LowestPrice  float64       `json:"lowest_price"`
	TakeProfit   *float64      `json:"take_profit"`
	StopLoss     *float64      `json:"stop_loss"`
}

func (r roundTripRecord) roundTrip() core.RoundTrip {
	trip := core.RoundTrip{
		Side:         r.Side,
		OpenTime:     r.OpenTime,
		CloseTime:    optional.None[time.Time](),
		HighestPrice: r.HighestPrice,
		LowestPrice:  r.LowestPrice,
		TakeProfit:   core.None(),
		StopLoss:     core.None(),
	}
	if r.CloseTime != nil {
		trip.CloseTime = optional.Some(*r.CloseTime)
	}
	if r.TakeProfit != nil {
		trip.TakeProfit = core.Some(*r.TakeProfit)
	}
	if r.StopLoss != nil {
		trip.StopLoss = core.Some(*r.StopLoss)
	}
	return trip
}

// roundTripRow is the CSV form of a trade. Empty cells are absent values.
type roundTripRow struct {
	Side         string  `csv:"side"`
	OpenTime     string  `csv:"open_datetime"`
	CloseTime    string  `csv:"close_datetime"`
	HighestPrice float64 `csv:"highest_price"`
	LowestPrice  float64 `csv:"lowest_price"`
	TakeProfit   string  `csv:"take_profit"`
	StopLoss     string  `csv:"stop_loss"`
}

func (r roundTripRow) record() (roundTripRecord, error) {
	record := roundTripRecord{
		Side:         core.SideType(r.Side),
		HighestPrice: r.HighestPrice,
		LowestPrice:  r.LowestPrice,
	}

	var err error
	if record.OpenTime, err = time.Parse(time.RFC3339, r.OpenTime); err != nil {
		return record, fmt.Errorf("open_datetime: %w", err)
	}
	if record.CloseTime, err = optionalField(r.CloseTime, func(s string) (time.Time, error) {
		return time.Parse(time.RFC3339, s)
	}); err != nil {
		return record, fmt.Errorf("close_datetime: %w", err)
	}
	if record.TakeProfit, err = optionalField(r.TakeProfit, parseFloat); err != nil {
		return record, fmt.Errorf("take_profit: %w", err)
	}
	if record.StopLoss, err = optionalField(r.StopLoss, parseFloat); err != nil {
		return record, fmt.Errorf("stop_loss: %w", err)
	}
	return record, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func optionalField[T any](raw string, parse func(string) (T, error)) (*T, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, err := parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// LoadRoundTrips reads trades from a JSON array, or from a headered CSV
// file when the extension is .csv. A trade without close_datetime is
// still open.
func LoadRoundTrips(path string) ([]core.RoundTrip, error) {
	var (
		records []roundTripRecord
		err     error
	)
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		records, err = readRoundTripsCSV(path)
	} else {
		records, err = readRoundTripsJSON(path)
	}
	if err != nil {
		return nil, err
	}

	trips := make([]core.RoundTrip, 0, len(records))
	for i, record := range records {
		if record.Side != core.SideLong && record.Side != core.SideShort {
			return nil, fmt.Errorf("round trip #%d: unknown side %q", i, record.Side)
		}
		trips = append(trips, record.roundTrip())
	}
	return trips, nil
}

func readRoundTripsJSON(path string) ([]roundTripRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read round trips %s: %w", path, err)
	}

	var records []roundTripRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode round trips %s: %w", path, err)
	}
	return records, nil
}

func readRoundTripsCSV(path string) ([]roundTripRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read round trips %s: %w", path, err)
	}
	defer file.Close()

	var rows []roundTripRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("decode round trips %s: %w", path, err)
	}

	records := make([]roundTripRecord, 0, len(rows))
	for i, row := range rows {
		record, err := row.record()
		if err != nil {
			return nil, fmt.Errorf("round trip #%d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}
