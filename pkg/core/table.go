package core

import (
	"fmt"
	"time"
)

// Column is a read-only view over one named column of a table
type Column interface {
	Len() int
	Get(i int) Value
}

// Table is a read-only, time-indexed columnar dataset
type Table interface {
	Column(name string) (Column, bool)
	NumRows() int
	Columns() []string
}

// FloatColumn stores plain numbers; NaN and ±Inf read as missing
type FloatColumn Series[float64]

func (c FloatColumn) Len() int { return len(c) }

func (c FloatColumn) Get(i int) Value {
	if i < 0 || i >= len(c) || !finite(c[i]) {
		return None()
	}
	return Some(c[i])
}

// NullableColumn stores optional numbers
type NullableColumn []Value

func (c NullableColumn) Len() int { return len(c) }

func (c NullableColumn) Get(i int) Value {
	if i < 0 || i >= len(c) {
		return None()
	}
	return c[i]
}

// BoolColumn stores flags, read as 1 for true and 0 for false
type BoolColumn []bool

func (c BoolColumn) Len() int { return len(c) }

func (c BoolColumn) Get(i int) Value {
	if i < 0 || i >= len(c) {
		return None()
	}
	if c[i] {
		return Some(1)
	}
	return Some(0)
}

// TimeColumn stores timestamps, read as unix milliseconds
type TimeColumn []time.Time

func (c TimeColumn) Len() int { return len(c) }

func (c TimeColumn) Get(i int) Value {
	if i < 0 || i >= len(c) || c[i].IsZero() {
		return None()
	}
	return Some(float64(c[i].UnixMilli()))
}

// Frame is the in-memory Table implementation. Columns keep insertion order.
type Frame struct {
	names   []string
	columns map[string]Column
	rows    int
}

// NewFrame creates an empty frame
func NewFrame() *Frame {
	return &Frame{columns: make(map[string]Column)}
}

// Add appends a named column. The first column fixes the row count.
func (f *Frame) Add(name string, column Column) error {
	if _, ok := f.columns[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	if len(f.names) == 0 {
		f.rows = column.Len()
	} else if column.Len() != f.rows {
		return fmt.Errorf("%w: %s has %d rows, expected %d", ErrColumnLength, name, column.Len(), f.rows)
	}

	f.names = append(f.names, name)
	f.columns[name] = column
	return nil
}

// MustAdd is like Add but panics on error. Meant for fixtures.
func (f *Frame) MustAdd(name string, column Column) *Frame {
	if err := f.Add(name, column); err != nil {
		panic(err)
	}
	return f
}

func (f *Frame) Column(name string) (Column, bool) {
	if f == nil {
		return nil, false
	}
	column, ok := f.columns[name]
	return column, ok
}

func (f *Frame) NumRows() int {
	if f == nil {
		return 0
	}
	return f.rows
}

func (f *Frame) Columns() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.names...)
}

// Tail returns a frame with the last 'positions' rows.
// Returns the frame itself if it is not larger than positions.
func (f *Frame) Tail(positions int) *Frame {
	if f == nil || positions >= f.rows {
		return f
	}
	positions = max(positions, 0)
	return f.slice(f.rows-positions, f.rows)
}

// Since returns a frame with the rows whose timestamp, read from the
// given column, is at or after start
func (f *Frame) Since(indexColumn string, start time.Time) *Frame {
	column, ok := f.columns[indexColumn]
	if !ok {
		return f
	}

	limit := float64(start.UnixMilli())
	for i := 0; i < f.rows; i++ {
		if v := column.Get(i); Valid(v) && v.Unwrap() >= limit {
			return f.slice(i, f.rows)
		}
	}
	return f.slice(f.rows, f.rows)
}

func (f *Frame) slice(from, to int) *Frame {
	out := NewFrame()
	for _, name := range f.names {
		out.MustAdd(name, sliceColumn(f.columns[name], from, to))
	}
	return out
}

func sliceColumn(column Column, from, to int) Column {
	switch c := column.(type) {
	case FloatColumn:
		return c[from:to]
	case NullableColumn:
		return c[from:to]
	case BoolColumn:
		return c[from:to]
	case TimeColumn:
		return c[from:to]
	default:
		values := make(NullableColumn, 0, to-from)
		for i := from; i < to; i++ {
			values = append(values, column.Get(i))
		}
		return values
	}
}
