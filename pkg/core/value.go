package core

import (
	"math"

	"github.com/moznion/go-optional"
)

// Value is a single cell of a table. None marks a missing value.
type Value = optional.Option[float64]

// Some wraps a present value
func Some(v float64) Value {
	return optional.Some(v)
}

// None returns the missing value marker
func None() Value {
	return optional.None[float64]()
}

// Valid reports whether v holds a finite number. NaN and ±Inf count as
// missing so they never reach a chart payload.
func Valid(v Value) bool {
	return v.IsSome() && finite(v.Unwrap())
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Truthy reports whether v is present and non-zero
func Truthy(v Value) bool {
	return Valid(v) && v.Unwrap() != 0
}

// Float returns the value of v, or NaN when it is missing
func Float(v Value) float64 {
	if !Valid(v) {
		return math.NaN()
	}
	return v.Unwrap()
}

// Int returns the integer part of v. ok is false when v is missing.
func Int(v Value) (n int, ok bool) {
	if !Valid(v) {
		return 0, false
	}
	return int(math.Floor(v.Unwrap())), true
}
