package core

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// Series is an ordered run of plain values, without gaps
type Series[T constraints.Ordered] []T

// Present collects the valid values of column in row order
func Present(column Column) Series[float64] {
	if column == nil {
		return Series[float64]{}
	}

	values := make(Series[float64], 0, column.Len())
	for i := 0; i < column.Len(); i++ {
		if v := column.Get(i); Valid(v) {
			values = append(values, v.Unwrap())
		}
	}
	return values
}

// Last returns the value at a specified position from the end
// position 0 is the last value, 1 is the second-to-last, etc.
func (s Series[T]) Last(position int) T {
	return s[len(s)-1-position]
}

// Min panics on an empty series
func (s Series[T]) Min() T { return slices.Min(s) }

// Max panics on an empty series
func (s Series[T]) Max() T { return slices.Max(s) }
