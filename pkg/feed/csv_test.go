package feed

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/raykavin/plotkit/pkg/core"
	"github.com/stretchr/testify/require"
)

const sample = `time,close,rsi_14,enter_long,side
1704067200,100.5,,false,buy
1704067260,101,NaN,true,sell
1704067320,99.75,55.2,false,buy
`

func TestReadCSV(t *testing.T) {
	frame, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)

	require.Equal(t, 3, frame.NumRows())
	require.Equal(t, []string{"time", "close", "rsi_14", "enter_long"}, frame.Columns())

	index, _ := frame.Column("time")
	require.Equal(t, float64(time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC).UnixMilli()), index.Get(1).Unwrap())

	rsi, _ := frame.Column("rsi_14")
	require.False(t, core.Valid(rsi.Get(0)))
	require.False(t, core.Valid(rsi.Get(1)))
	require.Equal(t, 55.2, rsi.Get(2).Unwrap())

	enter, _ := frame.Column("enter_long")
	require.IsType(t, core.BoolColumn{}, enter)
	require.True(t, core.Truthy(enter.Get(1)))
}

func TestReadCSV_TimeFormats(t *testing.T) {
	data := `date,value
2024-01-01T00:00:00Z,1
2024-01-01 00:01:00,2
1704067320000,3
,4
`
	frame, err := ReadCSV(strings.NewReader(data), WithIndexColumn("date"))
	require.NoError(t, err)

	index, _ := frame.Column("date")
	for i := 0; i < 3; i++ {
		want := time.Date(2024, 1, 1, 0, i, 0, 0, time.UTC).UnixMilli()
		require.Equal(t, float64(want), index.Get(i).Unwrap())
	}
	require.False(t, core.Valid(index.Get(3)))
}

func TestReadCSV_NullableFlags(t *testing.T) {
	data := "index,flag\n1704067200,true\n1704067260,\n"
	frame, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)

	flag, _ := frame.Column("flag")
	require.IsType(t, core.NullableColumn{}, flag)
	require.Equal(t, 1.0, flag.Get(0).Unwrap())
	require.False(t, core.Valid(flag.Get(1)))
}

func TestReadCSV_InfiniteCells(t *testing.T) {
	data := "index,ratio\n1704067200,Inf\n1704067260,-inf\n1704067320,2.5\n"
	frame, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)

	ratio, _ := frame.Column("ratio")
	require.False(t, core.Valid(ratio.Get(0)))
	require.False(t, core.Valid(ratio.Get(1)))
	require.Equal(t, 2.5, ratio.Get(2).Unwrap())

	_, err = json.Marshal([]core.DataPoint{{X: core.Some(1), Values: []core.Value{ratio.Get(0)}}})
	require.NoError(t, err)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("time,close\n"))
	require.ErrorIs(t, err, ErrEmptyFile)

	_, err = ReadCSV(strings.NewReader("when,close\n1,2\n"))
	require.ErrorIs(t, err, ErrNoIndex)

	_, err = ReadCSV(strings.NewReader("time,close\nyesterday,2\n"))
	require.ErrorIs(t, err, ErrBadTimestamp)

	_, err = ReadCSV(strings.NewReader(sample), WithLast("soon"))
	require.Error(t, err)
}

func TestReadCSV_Last(t *testing.T) {
	frame, err := ReadCSV(strings.NewReader(sample), WithLast("1m"))
	require.NoError(t, err)
	require.Equal(t, 2, frame.NumRows())

	closes, _ := frame.Column("close")
	require.Equal(t, 101.0, closes.Get(0).Unwrap())
}

func TestReadCSV_Tail(t *testing.T) {
	frame, err := ReadCSV(strings.NewReader(sample), WithTail(1))
	require.NoError(t, err)
	require.Equal(t, 1, frame.NumRows())
	closes, _ := frame.Column("close")
	require.Equal(t, 99.75, closes.Get(0).Unwrap())

	frame, err = ReadCSV(strings.NewReader(sample), WithLast("1m"), WithTail(5))
	require.NoError(t, err)
	require.Equal(t, 2, frame.NumRows())

	frame, err = ReadCSV(strings.NewReader(sample), WithTail(-3))
	require.NoError(t, err)
	require.Equal(t, 3, frame.NumRows())
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "btc.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	frame, err := LoadCSV(path)
	require.NoError(t, err)
	require.Equal(t, 3, frame.NumRows())

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
