package tradingview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jwtly10/breakbench/internal/backtest"
	"github.com/jwtly10/breakbench/internal/types"
)

func TestGenerateTradePinescript(t *testing.T) {
	trades := []backtest.Trade{
		{
			ID:         1,
			Side:       types.Long,
			EntryPrice: 1.10855,
			EntryTime:  time.Date(2025, 8, 4, 13, 45, 0, 0, time.UTC),
			ExitPrice:  1.11855,
			ExitTime:   time.Date(2025, 8, 4, 17, 0, 0, 0, time.UTC),
			Volume:     0.50,
			PnL:        500.00,
			TakeProfit: 1.11855,
			StopLoss:   1.10355,
			ExitReason: backtest.ExitTakeProfit,
		},
	}

	pineCode := generateTradePinescript(trades)

	expected := `// ============================================
// TRADE VALIDATION MARKERS
// ============================================

t1_entry = time == timestamp("UTC", 2025, 8, 4, 13, 45)
plotshape(t1_entry, title="#1 LONG Entry", location=location.bottom, color=color.blue, style=shape.labelup, size=size.small, text="#1 LONG\nEntry: 1.10855\nVol: 0.50\nTP: 1.11855\nSL: 1.10355", textcolor=color.white)

t1_exit = time == timestamp("UTC", 2025, 8, 4, 17, 0)
plotshape(t1_exit, title="#1 EXIT", location=location.top, color=color.green, style=shape.labeldown, size=size.small, text="#1 EXIT\nExit: 1.11855\nTAKE_PROFIT", textcolor=color.white)

`

	assert.Equal(t, expected, pineCode)
}

func TestGenerateTradePinescript_StopLossExitIsRed(t *testing.T) {
	trades := []backtest.Trade{
		{
			ID:         2,
			Side:       types.Short,
			EntryTime:  time.Date(2025, 8, 5, 9, 0, 0, 0, time.UTC),
			ExitTime:   time.Date(2025, 8, 5, 9, 30, 0, 0, time.UTC),
			ExitReason: backtest.ExitStopLoss,
		},
	}

	pineCode := generateTradePinescript(trades)
	assert.Contains(t, pineCode, "color=color.red")
}
