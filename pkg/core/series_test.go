package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresent(t *testing.T) {
	values := Present(FloatColumn{3, math.NaN(), 1, 2})
	require.Equal(t, Series[float64]{3, 1, 2}, values)
	require.Equal(t, 2.0, values.Last(0))
	require.Equal(t, 3.0, values.Last(2))
	require.Equal(t, 1.0, values.Min())
	require.Equal(t, 3.0, values.Max())

	require.Equal(t, Series[float64]{1, 0}, Present(BoolColumn{true, false}))
	require.Empty(t, Present(nil))
}
