package backtest

import (
	"fmt"
	"time"
)

type Statistics struct {
	// Basic
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64 // fraction of closed trades with positive PnL

	// P&L
	TotalPnL        float64
	TotalPnLPercent float64
	GrossProfit     float64
	GrossLoss       float64
	ProfitFactor    float64

	// Averages
	AvgWin     float64
	AvgLoss    float64
	Expectancy float64 // average PnL per closed trade

	// Risk
	MaxDrawdown        float64
	MaxDrawdownPercent float64

	// Duration
	AvgTradeDuration time.Duration
}

// Calculate aggregates the closed trades and the equity curve into an
// immutable snapshot. A run with no closed trades yields zero values
// throughout; there is no division by zero.
func (r *Results) Calculate() *Statistics {
	// Return cached if already calculated
	if r.stats != nil {
		return r.stats
	}

	stats := &Statistics{
		TotalTrades: len(r.Trades),
	}

	// Drawdown comes from the equity curve, not the trade list, so a
	// zero-trade run over a non-empty feed still reports it (always 0
	// for a flat curve).
	stats.MaxDrawdown = maxDrawdown(r)
	if r.InitialBalance > 0 {
		stats.MaxDrawdownPercent = stats.MaxDrawdown / r.InitialBalance * 100
	}

	if len(r.Trades) == 0 {
		r.stats = stats
		return stats
	}

	var totalWin, totalLoss float64
	var totalDuration time.Duration

	for _, trade := range r.Trades {
		stats.TotalPnL += trade.PnL
		if trade.PnL > 0 {
			stats.WinningTrades++
			totalWin += trade.PnL
		} else if trade.PnL < 0 {
			stats.LosingTrades++
			totalLoss += trade.PnL // Already negative
		}
		totalDuration += trade.ExitTime.Sub(trade.EntryTime)
	}

	stats.WinRate = float64(stats.WinningTrades) / float64(stats.TotalTrades)
	stats.Expectancy = stats.TotalPnL / float64(stats.TotalTrades)

	stats.GrossProfit = totalWin
	stats.GrossLoss = totalLoss
	if r.InitialBalance > 0 {
		stats.TotalPnLPercent = stats.TotalPnL / r.InitialBalance * 100
	}

	if totalLoss != 0 {
		stats.ProfitFactor = totalWin / -totalLoss
	}

	if stats.WinningTrades > 0 {
		stats.AvgWin = totalWin / float64(stats.WinningTrades)
	}
	if stats.LosingTrades > 0 {
		stats.AvgLoss = totalLoss / float64(stats.LosingTrades)
	}

	stats.AvgTradeDuration = totalDuration / time.Duration(stats.TotalTrades)

	r.stats = stats
	return stats
}

// maxDrawdown walks the equity curve in time order and returns the
// largest decline from the running peak. The peak is a high-water mark:
// it only ever moves up.
func maxDrawdown(r *Results) float64 {
	var peak, maxDD float64
	for i, p := range r.EquityCurve {
		if i == 0 || p.Equity > peak {
			peak = p.Equity
		}
		if dd := peak - p.Equity; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

func (s *Statistics) Print() {
	fmt.Println("\n=== Backtest Results ===")
	fmt.Printf("Total Trades:     %d\n", s.TotalTrades)
	fmt.Printf("Winning Trades:   %d (%.2f%%)\n", s.WinningTrades, s.WinRate*100)
	fmt.Printf("Losing Trades:    %d\n\n", s.LosingTrades)

	fmt.Printf("Total P&L:        %.2f (%.2f%%)\n", s.TotalPnL, s.TotalPnLPercent)
	fmt.Printf("Gross Profit:     %.2f\n", s.GrossProfit)
	fmt.Printf("Gross Loss:       %.2f\n", s.GrossLoss)
	fmt.Printf("Profit Factor:    %.2f\n\n", s.ProfitFactor)

	fmt.Printf("Avg Win:          %.2f\n", s.AvgWin)
	fmt.Printf("Avg Loss:         %.2f\n", s.AvgLoss)
	fmt.Printf("Expectancy:       %.2f per trade\n\n", s.Expectancy)

	fmt.Printf("Max Drawdown:     %.2f (%.2f%%)\n", s.MaxDrawdown, s.MaxDrawdownPercent)
	fmt.Printf("Avg Duration:     %s\n", s.AvgTradeDuration.Round(time.Minute))
}
