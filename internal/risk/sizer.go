package risk

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jwtly10/breakbench/internal/logging"
)

var riskLog = logging.New("risk")

// Bounds are the broker-imposed volume constraints in lots.
type Bounds struct {
	Min  float64
	Step float64
	Max  float64
}

// Sizer computes a risk-bounded trade volume: the lot size that loses
// at most riskPct percent of equity if the stop is hit, quantized down
// to the broker's volume step and clamped into the broker's bounds.
//
// Stateless and deterministic.
type Sizer struct {
	riskPct float64
	bounds  Bounds
}

func NewSizer(riskPct float64, bounds Bounds) *Sizer {
	return &Sizer{
		riskPct: riskPct,
		bounds:  bounds,
	}
}

func (s *Sizer) Volume(equity, entry, stop float64) float64 {
	riskAmount := equity * s.riskPct / 100

	stopDistance := math.Abs(entry - stop)
	if stopDistance == 0 {
		// No price risk means no sizing basis; fall back to the
		// smallest tradable volume.
		return s.bounds.Min
	}

	raw := riskAmount / stopDistance
	vol := stepFloor(raw, s.bounds.Step)
	if vol < s.bounds.Min {
		vol = s.bounds.Min
	}
	if vol > s.bounds.Max {
		vol = s.bounds.Max
	}

	riskLog.Debug("Calculated volume", "equity", equity, "riskAmount", riskAmount, "entry", entry, "stop", stop, "stopDistance", stopDistance, "raw", raw, "volume", vol)
	return vol
}

// stepFloor quantizes x down to the nearest multiple of step. The
// floor must never round a boundary value up past the step, so this
// runs on exact decimals rather than binary floats.
func stepFloor(x, step float64) float64 {
	if step <= 0 {
		return x
	}
	q := decimal.NewFromFloat(step)
	out, _ := decimal.NewFromFloat(x).Div(q).Floor().Mul(q).Float64()
	return out
}
