package tradingview

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jwtly10/breakbench/internal/backtest"
)

func allowDump() bool {
	// Get OS Env for dump DEBUG_DUMP=1 etc
	debugDump := os.Getenv("DEBUG_DUMP")
	if debugDump == "1" {
		slog.Info("DEBUG_DUMP=1, dumping to stdout")
		return true
	}

	return false
}

// DumpPineScript prints Pine Script markers for the closed trades so a
// run's fills can be eyeballed against a TradingView chart. Gated by
// DEBUG_DUMP=1.
func DumpPineScript(trades []backtest.Trade) {
	if !allowDump() {
		return
	}

	fmt.Println(generateTradePinescript(trades))
}

// generateTradePinescript renders entry and exit plotshape markers for
// each trade, labelled with prices, volume and the exit reason.
func generateTradePinescript(trades []backtest.Trade) string {
	var sb strings.Builder

	sb.WriteString("// ============================================\n")
	sb.WriteString("// TRADE VALIDATION MARKERS\n")
	sb.WriteString("// ============================================\n\n")

	for _, trade := range trades {
		// Entry marker
		entryTimestamp := formatPineTimestamp(trade.EntryTime)
		entryText := fmt.Sprintf("#%d %s\\nEntry: %.5f\\nVol: %.2f\\nTP: %.5f\\nSL: %.5f",
			trade.ID, trade.Side, trade.EntryPrice, trade.Volume, trade.TakeProfit, trade.StopLoss)

		sb.WriteString(fmt.Sprintf("t%d_entry = time == %s\n", trade.ID, entryTimestamp))
		sb.WriteString(fmt.Sprintf("plotshape(t%d_entry, title=\"#%d %s Entry\", location=location.bottom, color=color.blue, style=shape.labelup, size=size.small, text=\"%s\", textcolor=color.white)\n\n",
			trade.ID, trade.ID, trade.Side, entryText))

		// Exit marker
		exitTimestamp := formatPineTimestamp(trade.ExitTime)
		exitColor := "color.green"
		if trade.ExitReason == backtest.ExitStopLoss {
			exitColor = "color.red"
		}
		exitText := fmt.Sprintf("#%d EXIT\\nExit: %.5f\\n%s",
			trade.ID, trade.ExitPrice, trade.ExitReason)

		sb.WriteString(fmt.Sprintf("t%d_exit = time == %s\n", trade.ID, exitTimestamp))
		sb.WriteString(fmt.Sprintf("plotshape(t%d_exit, title=\"#%d EXIT\", location=location.top, color=%s, style=shape.labeldown, size=size.small, text=\"%s\", textcolor=color.white)\n\n",
			trade.ID, trade.ID, exitColor, exitText))
	}

	return sb.String()
}

func formatPineTimestamp(t time.Time) string {
	utc := t.UTC()
	return fmt.Sprintf("timestamp(\"UTC\", %d, %d, %d, %d, %d)",
		utc.Year(), int(utc.Month()), utc.Day(), utc.Hour(), utc.Minute())
}
