package strategy

import (
	"time"

	"github.com/jwtly10/breakbench/internal/logging"
	"github.com/jwtly10/breakbench/internal/types"
)

var breakoutLog = logging.New("strategy")

const (
	// WindowBars measures the lookback window as a fixed bar count.
	WindowBars WindowMode = "BARS"
	// WindowDuration measures the lookback window as trailing
	// wall-clock time behind the newest bar.
	WindowDuration WindowMode = "DURATION"
)

type WindowMode string

type BreakoutConfig struct {
	Mode WindowMode

	// Bars is the window capacity. In duration mode it still bounds
	// how many bars can be retained.
	Bars int

	// Span is the trailing window length in duration mode.
	Span time.Duration

	// Digits is the instrument's quoted decimal precision, used to
	// derive the pip size.
	Digits int

	DistancePips float64
	StopLossPips float64
	RiskReward   float64
}

// Breakout detects range breakouts over a sliding window of recent
// bars: when the window spans at least DistancePips and the latest
// close sits at the window extreme, it proposes an entry in the
// direction of the break, with the stop DistancePips behind the close
// and the target at RiskReward times the stop distance.
//
// The strategy holds no state beyond the window itself. An identical
// bar sequence always produces an identical signal sequence.
type Breakout struct {
	cfg    BreakoutConfig
	window *Window
	start  time.Time
}

func NewBreakout(cfg BreakoutConfig) *Breakout {
	return &Breakout{
		cfg:    cfg,
		window: NewWindow(cfg.Bars),
	}
}

// OnBar pushes the bar into the window and reports a breakout signal,
// if any. The boolean is false during warm-up and on bars with no
// confirmed breakout.
func (b *Breakout) OnBar(bar types.Candle) (types.Signal, bool) {
	if b.start.IsZero() {
		b.start = bar.Time
	}
	b.window.Push(bar)
	if b.cfg.Mode == WindowDuration {
		b.window.EvictBefore(bar.Time.Add(-b.cfg.Span))
	}

	if !b.ready(bar) {
		return types.Signal{}, false
	}

	hi, lo := b.window.HighLow()
	pip := PipSize(b.cfg.Digits)
	rangePips := (hi - lo) / pip
	if rangePips < b.cfg.DistancePips {
		return types.Signal{}, false
	}

	// The breakout must be confirmed by a close at the extreme, not
	// merely an intrabar touch.
	last := bar.Close
	slDist := PipsToPrice(b.cfg.StopLossPips, pip)
	tpDist := slDist * b.cfg.RiskReward

	if last >= hi {
		sig := types.Signal{Side: types.Long, SL: last - slDist, TP: last + tpDist}
		breakoutLog.Debug("Long breakout", "close", last, "windowHigh", hi, "rangePips", rangePips, "sl", sig.SL, "tp", sig.TP)
		return sig, true
	}
	if last <= lo {
		sig := types.Signal{Side: types.Short, SL: last + slDist, TP: last - tpDist}
		breakoutLog.Debug("Short breakout", "close", last, "windowLow", lo, "rangePips", rangePips, "sl", sig.SL, "tp", sig.TP)
		return sig, true
	}
	return types.Signal{}, false
}

// ready reports whether the warm-up period has passed. In bar mode the
// window must be full; in duration mode the strategy must have seen at
// least Span of history.
func (b *Breakout) ready(bar types.Candle) bool {
	if b.cfg.Mode == WindowDuration {
		return bar.Time.Sub(b.start) >= b.cfg.Span && b.window.Len() > 0
	}
	return b.window.Full()
}
