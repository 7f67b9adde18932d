package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwtly10/breakbench/internal/types"
)

func candleAt(minute int, high, low, close float64) types.Candle {
	base, _ := time.Parse(time.RFC3339, "2024-01-01T00:00:00Z")
	return types.Candle{
		Time:  base.Add(time.Duration(minute) * time.Minute),
		Open:  close,
		High:  high,
		Low:   low,
		Close: close,
	}
}

func fiveDigitConfig() BreakoutConfig {
	return BreakoutConfig{
		Mode:         WindowBars,
		Bars:         3,
		Digits:       5,
		DistancePips: 40,
		StopLossPips: 15,
		RiskReward:   2,
	}
}

func TestBreakout_LongWhenCloseAtWindowHigh(t *testing.T) {
	b := NewBreakout(fiveDigitConfig())

	_, ok := b.OnBar(candleAt(0, 1.1050, 1.1000, 1.1020))
	assert.False(t, ok, "No signal during warm-up")
	_, ok = b.OnBar(candleAt(1, 1.1060, 1.1010, 1.1030))
	assert.False(t, ok, "No signal during warm-up")

	// Range = (1.1070 - 1.1000) / 0.0001 = 70 pips >= 40, and the
	// close sits at the window high.
	sig, ok := b.OnBar(candleAt(2, 1.1070, 1.1020, 1.1070))
	require.True(t, ok)
	assert.Equal(t, types.Long, sig.Side)
	assert.InDelta(t, 1.1070-15*0.0001, sig.SL, 1e-9)
	assert.InDelta(t, 1.1070+15*2*0.0001, sig.TP, 1e-9)
}

func TestBreakout_ShortWhenCloseAtWindowLow(t *testing.T) {
	b := NewBreakout(fiveDigitConfig())

	b.OnBar(candleAt(0, 1.1070, 1.1020, 1.1040))
	b.OnBar(candleAt(1, 1.1060, 1.1010, 1.1030))

	sig, ok := b.OnBar(candleAt(2, 1.1050, 1.1000, 1.1000))
	require.True(t, ok)
	assert.Equal(t, types.Short, sig.Side)
	assert.InDelta(t, 1.1000+15*0.0001, sig.SL, 1e-9)
	assert.InDelta(t, 1.1000-15*2*0.0001, sig.TP, 1e-9)
}

func TestBreakout_NoSignalBelowDistanceThreshold(t *testing.T) {
	b := NewBreakout(fiveDigitConfig())

	// Range = 30 pips < 40 even though the close is at the extreme.
	b.OnBar(candleAt(0, 1.1020, 1.1000, 1.1010))
	b.OnBar(candleAt(1, 1.1025, 1.1005, 1.1015))
	_, ok := b.OnBar(candleAt(2, 1.1030, 1.1010, 1.1030))
	assert.False(t, ok)
}

func TestBreakout_NoSignalWhenCloseInsideRange(t *testing.T) {
	b := NewBreakout(fiveDigitConfig())

	b.OnBar(candleAt(0, 1.1050, 1.1000, 1.1020))
	b.OnBar(candleAt(1, 1.1060, 1.1010, 1.1030))
	// 70 pip range but the close is strictly between the extremes: an
	// intrabar touch is not a confirmed breakout.
	_, ok := b.OnBar(candleAt(2, 1.1070, 1.1020, 1.1040))
	assert.False(t, ok)
}

func TestBreakout_TwoDigitInstrumentUsesLargerPip(t *testing.T) {
	cfg := fiveDigitConfig()
	cfg.Digits = 2
	b := NewBreakout(cfg)

	// Range = (155.00 - 154.50) / 0.01 = 50 pips >= 40.
	b.OnBar(candleAt(0, 154.80, 154.50, 154.60))
	b.OnBar(candleAt(1, 154.90, 154.60, 154.70))
	sig, ok := b.OnBar(candleAt(2, 155.00, 154.70, 155.00))
	require.True(t, ok)
	assert.Equal(t, types.Long, sig.Side)
	assert.InDelta(t, 155.00-15*0.01, sig.SL, 1e-9)
	assert.InDelta(t, 155.00+30*0.01, sig.TP, 1e-9)
}

func TestBreakout_DurationModeWarmUpAndEviction(t *testing.T) {
	cfg := BreakoutConfig{
		Mode:         WindowDuration,
		Bars:         10,
		Span:         2 * time.Minute,
		Digits:       5,
		DistancePips: 40,
		StopLossPips: 15,
		RiskReward:   2,
	}
	b := NewBreakout(cfg)

	// An early spike that will age out of the trailing span.
	_, ok := b.OnBar(candleAt(0, 1.1200, 1.1000, 1.1100))
	assert.False(t, ok, "No signal before a full span of history")
	_, ok = b.OnBar(candleAt(1, 1.1060, 1.1010, 1.1030))
	assert.False(t, ok, "No signal before a full span of history")

	// By minute 3 the spike bar is outside the 2-minute span; the
	// retained range is (1.1070 - 1.1010) = 60 pips and the close
	// breaks the retained high, not the evicted one.
	b.OnBar(candleAt(2, 1.1065, 1.1015, 1.1040))
	sig, ok := b.OnBar(candleAt(3, 1.1070, 1.1020, 1.1070))
	require.True(t, ok)
	assert.Equal(t, types.Long, sig.Side)
}

func TestBreakout_DeterministicSignalSequence(t *testing.T) {
	bars := []types.Candle{
		candleAt(0, 1.1050, 1.1000, 1.1020),
		candleAt(1, 1.1060, 1.1010, 1.1030),
		candleAt(2, 1.1070, 1.1020, 1.1070),
		candleAt(3, 1.1080, 1.1030, 1.1050),
		candleAt(4, 1.1090, 1.1040, 1.1090),
	}

	replay := func() []types.Signal {
		b := NewBreakout(fiveDigitConfig())
		var out []types.Signal
		for _, c := range bars {
			if sig, ok := b.OnBar(c); ok {
				out = append(out, sig)
			}
		}
		return out
	}

	assert.Equal(t, replay(), replay(), "Identical bar sequence must yield identical signals")
}
