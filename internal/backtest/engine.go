package backtest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwtly10/breakbench/internal/logging"
	"github.com/jwtly10/breakbench/internal/types"
)

var engineLog = logging.New("engine")

const (
	// ContractSize is the unit multiplier per standard lot.
	ContractSize = 100000.0

	ExitStopLoss    = "STOP_LOSS"
	ExitTakeProfit  = "TAKE_PROFIT"
	ExitEndOfReplay = "END_OF_BACKTEST"
)

const (
	// LeaveOpen leaves a position still open at feed exhaustion out of
	// the closed-trade list, and therefore out of the statistics.
	LeaveOpen ClosePolicy = "LEAVE_OPEN"
	// CloseAtLastPrice force-closes a remaining position at the last
	// processed bar's close.
	CloseAtLastPrice ClosePolicy = "CLOSE_AT_LAST_PRICE"
)

type ClosePolicy string

// Strategy produces at most one entry proposal per bar.
type Strategy interface {
	OnBar(bar types.Candle) (types.Signal, bool)
}

// Sizer converts equity, entry and stop prices into a trade volume.
type Sizer interface {
	Volume(equity, entry, stop float64) float64
}

// Trade is a position record. ExitTime, ExitPrice, PnL and ExitReason
// are zero until the trade closes; a trade is closed exactly once and
// immutable after that.
type Trade struct {
	ID         int
	EntryTime  time.Time
	ExitTime   time.Time
	Side       types.Side
	EntryPrice float64
	ExitPrice  float64
	Volume     float64
	StopLoss   float64
	TakeProfit float64
	PnL        float64
	ExitReason string
}

// Engine replays a bar sequence through a strategy and simulates fills
// against a single position. It is a deterministic pure replay: one
// state transition per bar, no retries, no shared state between
// instances, so independent runs can execute in parallel.
type Engine struct {
	strategy       Strategy
	sizer          Sizer
	initialBalance float64
	policy         ClosePolicy
	observer       Observer
}

func NewEngine(strategy Strategy, sizer Sizer, initialBalance float64, policy ClosePolicy) *Engine {
	return &Engine{
		strategy:       strategy,
		sizer:          sizer,
		initialBalance: initialBalance,
		policy:         policy,
		observer:       NopObserver{},
	}
}

// SetObserver installs hooks invoked on signal detection and trade
// opens/closes. Passing nil restores the no-op default.
func (e *Engine) SetObserver(o Observer) {
	if o == nil {
		o = NopObserver{}
	}
	e.observer = o
}

// Run replays the bars in order and returns the closed trades, the
// equity curve and the final balance. Cancelling ctx stops the replay
// between bars; the partial results remain consistent and statable.
//
// An empty feed yields an empty, zero-stats result and never fails.
func (e *Engine) Run(ctx context.Context, bars []types.Candle) *Results {
	results := &Results{
		RunID:          uuid.NewString(),
		InitialBalance: e.initialBalance,
		Trades:         []Trade{},
		EquityCurve:    make([]types.EquityPoint, 0, len(bars)),
	}

	engineLog.Debug("Starting backtest", "run_id", results.RunID, "initial_balance", e.initialBalance, "total_bars", len(bars))

	equity := e.initialBalance
	var open *Trade
	var last types.Candle
	nextID := 1

	for _, bar := range bars {
		if ctx.Err() != nil {
			engineLog.Warn("Backtest cancelled", "run_id", results.RunID, "bars_processed", len(results.EquityCurve))
			break
		}
		last = bar

		signal, ok := e.strategy.OnBar(bar)
		if ok {
			e.observer.SignalDetected(bar, signal)
		}

		switch {
		case open == nil && ok:
			// Next-bar fill model: entry at the triggering bar's
			// open, not its close. The opening bar is not also
			// tested for exits.
			entry := bar.Open
			open = &Trade{
				ID:         nextID,
				EntryTime:  bar.Time,
				Side:       signal.Side,
				EntryPrice: entry,
				Volume:     e.sizer.Volume(equity, entry, signal.SL),
				StopLoss:   signal.SL,
				TakeProfit: signal.TP,
			}
			nextID++
			e.observer.TradeOpened(*open)

		case open != nil:
			// While a position is open further signals are
			// suppressed; only the exit levels matter.
			if exitPrice, reason, hit := touchExit(*open, bar); hit {
				closed := closeTrade(open, exitPrice, bar.Time, reason)
				equity += closed.PnL
				results.Trades = append(results.Trades, closed)
				e.observer.TradeClosed(closed)
				open = nil
			}
		}

		results.EquityCurve = append(results.EquityCurve, types.EquityPoint{Time: bar.Time, Equity: equity})
	}

	if open != nil && e.policy == CloseAtLastPrice {
		closed := closeTrade(open, last.Close, last.Time, ExitEndOfReplay)
		equity += closed.PnL
		results.Trades = append(results.Trades, closed)
		e.observer.TradeClosed(closed)
		// Keep the curve at one point per bar but reflect the
		// forced close in the final sample.
		results.EquityCurve[len(results.EquityCurve)-1].Equity = equity
		open = nil
	}

	results.OpenTrade = open
	results.FinalBalance = equity

	return results
}

// touchExit tests the bar's range against the position's exit levels.
// If both levels are touched on the same bar the stop loss wins: the
// intrabar path is unknown, so the worse outcome is assumed.
func touchExit(t Trade, bar types.Candle) (exitPrice float64, reason string, hit bool) {
	if t.Side == types.Long {
		if bar.Low <= t.StopLoss {
			return t.StopLoss, ExitStopLoss, true
		}
		if bar.High >= t.TakeProfit {
			return t.TakeProfit, ExitTakeProfit, true
		}
	} else {
		if bar.High >= t.StopLoss {
			return t.StopLoss, ExitStopLoss, true
		}
		if bar.Low <= t.TakeProfit {
			return t.TakeProfit, ExitTakeProfit, true
		}
	}
	return 0, "", false
}

// closeTrade fills the position exactly at the exit level, never
// improved, and realizes the PnL.
func closeTrade(pos *Trade, exitPrice float64, exitTime time.Time, reason string) Trade {
	closed := *pos
	closed.ExitTime = exitTime
	closed.ExitPrice = exitPrice
	closed.PnL = (exitPrice - closed.EntryPrice) * closed.Side.Sign() * closed.Volume * ContractSize
	closed.ExitReason = reason

	engineLog.Debug("Closed position", "id", closed.ID, "exit_price", exitPrice, "pnl", closed.PnL, "reason", reason, "timestamp", exitTime)
	return closed
}
