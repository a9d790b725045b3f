package models

import "time"

// Side is the broker-reported direction of a single fill.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Execution is one broker-reported fill. Executions exist only while an
// import is being reconstructed into trades; they are never stored.
type Execution struct {
	Instrument string    `json:"instrument"`
	Side       Side      `json:"side"`
	Quantity   float64   `json:"quantity"`
	Price      float64   `json:"price"`
	Timestamp  time.Time `json:"timestamp"`
	Commission float64   `json:"commission"`
}

// SignedQuantity returns the fill quantity with buys positive and sells
// negative, the convention used for net position tracking.
func (e Execution) SignedQuantity() float64 {
	if e.Side == SideSell {
		return -e.Quantity
	}
	return e.Quantity
}
