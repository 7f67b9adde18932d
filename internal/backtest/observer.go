package backtest

import (
	"log/slog"

	"github.com/jwtly10/breakbench/internal/types"
)

// Observer receives notifications at the engine's well-defined
// decision points. Implementations must not mutate engine state; they
// exist for diagnostics and trade journaling.
type Observer interface {
	SignalDetected(bar types.Candle, signal types.Signal)
	TradeOpened(trade Trade)
	TradeClosed(trade Trade)
}

// NopObserver is the default observer; it discards everything.
type NopObserver struct{}

func (NopObserver) SignalDetected(types.Candle, types.Signal) {}
func (NopObserver) TradeOpened(Trade)                         {}
func (NopObserver) TradeClosed(Trade)                         {}

// LogObserver mirrors engine events to slog.
type LogObserver struct{}

func (LogObserver) SignalDetected(bar types.Candle, signal types.Signal) {
	slog.Debug("Signal detected", "time", bar.Time, "side", signal.Side, "close", bar.Close, "sl", signal.SL, "tp", signal.TP)
}

func (LogObserver) TradeOpened(trade Trade) {
	slog.Info("Opened trade", "id", trade.ID, "side", trade.Side, "price", trade.EntryPrice, "volume", trade.Volume, "sl", trade.StopLoss, "tp", trade.TakeProfit, "timestamp", trade.EntryTime)
}

func (LogObserver) TradeClosed(trade Trade) {
	slog.Info("Closed trade", "id", trade.ID, "exit_price", trade.ExitPrice, "pnl", trade.PnL, "reason", trade.ExitReason, "timestamp", trade.ExitTime)
}
