package types

import "time"

const (
	Long  Side = "LONG"
	Short Side = "SHORT"
)

type Side string

// Sign returns the PnL direction multiplier for the side.
func (s Side) Sign() float64 {
	if s == Short {
		return -1
	}
	return 1
}

type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Signal is a proposed entry produced by a strategy for a single bar.
// It is either consumed by the engine on that bar or discarded.
type Signal struct {
	Side Side
	SL   float64
	TP   float64
}

// EquityPoint is one sample of the account equity curve. The engine
// appends exactly one point per processed bar.
type EquityPoint struct {
	Time   time.Time
	Equity float64
}
