package backtest

import (
	"fmt"

	"github.com/jwtly10/breakbench/internal/types"
)

// Results is the full output of one engine run. OpenTrade is non-nil
// only when the feed ended with a position still open under the
// LeaveOpen policy; it is excluded from Trades and from statistics.
type Results struct {
	RunID          string
	InitialBalance float64
	FinalBalance   float64
	Trades         []Trade
	EquityCurve    []types.EquityPoint
	OpenTrade      *Trade

	stats *Statistics
}

func (r *Results) PrintTrades() {
	fmt.Println("\n=== Trade List ===")
	for _, trade := range r.Trades {
		fmt.Printf("#%d | %s | Entry: %.5f @ %s | Exit: %.5f @ %s | Vol: %.2f | P&L: %.2f | %s\n",
			trade.ID,
			trade.Side,
			trade.EntryPrice,
			trade.EntryTime.Format("2006-01-02 15:04"),
			trade.ExitPrice,
			trade.ExitTime.Format("2006-01-02 15:04"),
			trade.Volume,
			trade.PnL,
			trade.ExitReason,
		)
	}
	if r.OpenTrade != nil {
		fmt.Printf("(open) | %s | Entry: %.5f @ %s | Vol: %.2f | still open at end of feed\n",
			r.OpenTrade.Side,
			r.OpenTrade.EntryPrice,
			r.OpenTrade.EntryTime.Format("2006-01-02 15:04"),
			r.OpenTrade.Volume,
		)
	}
}
