package core

import (
	"time"

	"github.com/moznion/go-optional"
)

type SideType string

const (
	SideLong  SideType = "Long"
	SideShort SideType = "Short"
)

// RoundTrip is one closed or open trade, as reported by the upstream
// trade analytics layer
type RoundTrip struct {
	Side         SideType                   `json:"side"`
	OpenTime     time.Time                  `json:"open_datetime"`
	CloseTime    optional.Option[time.Time] `json:"-"`
	HighestPrice float64                    `json:"highest_price"`
	LowestPrice  float64                    `json:"lowest_price"`
	TakeProfit   Value                      `json:"-"`
	StopLoss     Value                      `json:"-"`
}

// Closed reports whether the trade has an exit
func (r RoundTrip) Closed() bool {
	return r.CloseTime.IsSome()
}

// EndTime returns the exit time, or fallback for an open trade
func (r RoundTrip) EndTime(fallback time.Time) time.Time {
	return r.CloseTime.TakeOr(fallback)
}
