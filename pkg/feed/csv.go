package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/raykavin/plotkit/pkg/core"
	"github.com/samber/lo"
	"github.com/xhit/go-str2duration/v2"
)

var (
	ErrEmptyFile    = errors.New("empty csv file")
	ErrNoIndex      = errors.New("index column not found")
	ErrBadTimestamp = errors.New("invalid timestamp")
)

// indexCandidates are tried in order when no index column is given
var indexCandidates = []string{"index", "time", "timestamp", "date", "datetime"}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

// unix timestamps at or above this magnitude are read as milliseconds
const millisecondsThreshold = 1e11

type Option func(*loader)

type loader struct {
	indexColumn string
	last        string
	tail        int
}

// WithIndexColumn names the timestamp column
func WithIndexColumn(name string) Option {
	return func(l *loader) {
		l.indexColumn = name
	}
}

// WithLast keeps only the rows inside a trailing window such as "30d" or "12h"
func WithLast(window string) Option {
	return func(l *loader) {
		l.last = window
	}
}

// WithTail keeps only the last n rows, after any WithLast window.
// Zero or less keeps every row.
func WithTail(n int) Option {
	return func(l *loader) {
		l.tail = n
	}
}

// LoadCSV reads a headered CSV file into a frame
func LoadCSV(path string, options ...Option) (*core.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	frame, err := ReadCSV(file, options...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frame, nil
}

// ReadCSV reads headered CSV data into a frame. The index column becomes a
// TimeColumn, true/false columns become flags and every other numeric
// column a FloatColumn. Text columns are skipped.
func ReadCSV(r io.Reader, options ...Option) (*core.Frame, error) {
	l := loader{}
	for _, option := range options {
		option(&l)
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(lines) < 2 {
		return nil, ErrEmptyFile
	}

	header, records := lines[0], lines[1:]
	indexAt, err := l.indexPosition(header)
	if err != nil {
		return nil, err
	}

	times := make(core.TimeColumn, len(records))
	for i, record := range records {
		if times[i], err = parseTime(record[indexAt]); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
	}

	frame := core.NewFrame()
	if err := frame.Add(header[indexAt], times); err != nil {
		return nil, err
	}

	for j, name := range header {
		if j == indexAt {
			continue
		}

		cells := lo.Map(records, func(record []string, _ int) string {
			return strings.TrimSpace(record[j])
		})

		column, ok := parseColumn(cells)
		if !ok {
			continue
		}
		if err := frame.Add(name, column); err != nil {
			return nil, err
		}
	}

	if l.last != "" {
		window, err := str2duration.ParseDuration(l.last)
		if err != nil {
			return nil, fmt.Errorf("window %q: %w", l.last, err)
		}

		end := lo.MaxBy(times, func(a, b time.Time) bool { return a.After(b) })
		frame = frame.Since(header[indexAt], end.Add(-window))
	}

	if l.tail > 0 {
		frame = frame.Tail(l.tail)
	}
	return frame, nil
}

func (l loader) indexPosition(header []string) (int, error) {
	candidates := indexCandidates
	if l.indexColumn != "" {
		candidates = []string{l.indexColumn}
	}

	for _, name := range candidates {
		if _, at, ok := lo.FindIndexOf(header, func(column string) bool {
			return strings.EqualFold(strings.TrimSpace(column), name)
		}); ok {
			return at, nil
		}
	}
	return 0, fmt.Errorf("%w: tried %s", ErrNoIndex, strings.Join(candidates, ", "))
}

// parseTime reads unix seconds, unix milliseconds or a formatted date.
// An empty cell yields the zero time, which reads as a missing timestamp.
func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if isNull(raw) {
		return time.Time{}, nil
	}

	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		if math.Abs(n) >= millisecondsThreshold {
			return time.UnixMilli(int64(n)).UTC(), nil
		}
		return time.Unix(int64(n), 0).UTC(), nil
	}

	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, raw)
}

func isNull(cell string) bool {
	switch strings.ToLower(cell) {
	case "", "nan", "null", "none":
		return true
	}
	return false
}

func isBool(cell string) bool {
	return strings.EqualFold(cell, "true") || strings.EqualFold(cell, "false")
}

// parseColumn converts cells to a column. ok is false for text columns.
func parseColumn(cells []string) (core.Column, bool) {
	present := lo.Reject(cells, func(cell string, _ int) bool { return isNull(cell) })

	if len(present) > 0 && lo.EveryBy(present, isBool) {
		if len(present) == len(cells) {
			return core.BoolColumn(lo.Map(cells, func(cell string, _ int) bool {
				return strings.EqualFold(cell, "true")
			})), true
		}

		return core.NullableColumn(lo.Map(cells, func(cell string, _ int) core.Value {
			if isNull(cell) {
				return core.None()
			}
			return core.Some(lo.Ternary(strings.EqualFold(cell, "true"), 1.0, 0.0))
		})), true
	}

	values := make(core.FloatColumn, len(cells))
	for i, cell := range cells {
		if isNull(cell) {
			values[i] = math.NaN()
			continue
		}

		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		if math.IsInf(v, 0) {
			v = math.NaN()
		}
		values[i] = v
	}
	return values, true
}
