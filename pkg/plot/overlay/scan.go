package overlay

import (
	"math"

	"github.com/raykavin/plotkit/pkg/core"
)

// timedRows drops rows whose timestamp cannot be resolved
func timedRows(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if _, ok := row.Time(); ok {
			out = append(out, row)
		}
	}
	return out
}

// clampIndex keeps i inside [0, n-1]
func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// zoneEnd resolves the last row of a zone opened at row i. An explicit
// mitigation index in (0, n-1] wins, otherwise the zone lasts lookahead rows.
func zoneEnd(i int, mitigated core.Value, n, lookahead int) int {
	if m, ok := core.Int(mitigated); ok && m > 0 && m <= n-1 {
		return m
	}
	return min(i+lookahead, n-1)
}

// timeAt returns the timestamp of rows[i], or fallback when it has none
func timeAt(rows []Row, i int, fallback float64) float64 {
	if i < 0 || i >= len(rows) {
		return fallback
	}
	if ts, ok := rows[i].Time(); ok {
		return ts
	}
	return fallback
}

// region is one maximal run of active rows
type region struct {
	start, end float64
	low, high  float64
}

// span returns the price range of the region. A region with a single
// present bound collapses to it; ok is false when no bound was seen.
func (r region) span() (low, high float64, ok bool) {
	hasLow, hasHigh := !math.IsInf(r.low, 1), !math.IsInf(r.high, -1)
	switch {
	case hasLow && hasHigh:
		return r.low, r.high, true
	case hasLow:
		return r.low, r.low, true
	case hasHigh:
		return r.high, r.high, true
	default:
		return 0, 0, false
	}
}

// scanRegions groups consecutive active rows into regions in a single pass.
// A region ends at the timestamp of the row after its last active row, or
// at its own last timestamp when it runs to the end of the data. lowCol and
// highCol select the bound columns; pass -1 to skip bounds.
func scanRegions(rows []Row, active func(Row) bool, lowCol, highCol int) []region {
	rows = timedRows(rows)

	var (
		regions []region
		current region
		open    bool
	)

	flush := func() {
		if open {
			regions = append(regions, current)
			open = false
		}
	}

	for i, row := range rows {
		if !active(row) {
			flush()
			continue
		}

		ts, _ := row.Time()
		if !open {
			open = true
			current = region{start: ts, low: math.Inf(1), high: math.Inf(-1)}
		}

		if lowCol >= 0 && core.Valid(row[lowCol]) {
			current.low = math.Min(current.low, row[lowCol].Unwrap())
		}
		if highCol >= 0 && core.Valid(row[highCol]) {
			current.high = math.Max(current.high, row[highCol].Unwrap())
		}

		current.end = timeAt(rows, i+1, ts)
	}
	flush()

	return regions
}

// levelChange marks the row where a level column takes a new value
type levelChange struct {
	row   int
	time  float64
	level float64
}

// scanLevelChanges records every row whose valid level differs from the
// last recorded one. Rows without a level keep the previous level alive.
func scanLevelChanges(rows []Row, col int) []levelChange {
	var (
		changes []levelChange
		last    core.Value = core.None()
	)

	for i, row := range rows {
		ts, ok := row.Time()
		if !ok || !core.Valid(row[col]) {
			continue
		}

		level := row[col].Unwrap()
		if core.Valid(last) && last.Unwrap() == level {
			continue
		}

		changes = append(changes, levelChange{row: i, time: ts, level: level})
		last = row[col]
	}

	return changes
}

// segment is a horizontal stretch at one level
type segment struct {
	from, to levelChange
}

// consecutiveSegments joins each recorded change to the next one.
// The last change is left open.
func consecutiveSegments(changes []levelChange) []segment {
	if len(changes) < 2 {
		return nil
	}

	segments := make([]segment, 0, len(changes)-1)
	for i := 0; i < len(changes)-1; i++ {
		segments = append(segments, segment{from: changes[i], to: changes[i+1]})
	}
	return segments
}
