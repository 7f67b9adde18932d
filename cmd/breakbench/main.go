package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jwtly10/breakbench/internal/backtest"
	"github.com/jwtly10/breakbench/internal/config"
	"github.com/jwtly10/breakbench/internal/feed"
	"github.com/jwtly10/breakbench/internal/risk"
	"github.com/jwtly10/breakbench/internal/strategy"
	"github.com/jwtly10/breakbench/internal/tradingview"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Backtest failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	bars, err := feed.LoadCSV(cfg.CSVPath)
	if err != nil {
		return err
	}
	slog.Info("Loaded bars", "symbol", cfg.Symbol, "count", len(bars))

	breakout := strategy.NewBreakout(cfg.StrategyConfig())
	sizer := risk.NewSizer(cfg.RiskPercent, cfg.VolumeBounds)

	engine := backtest.NewEngine(breakout, sizer, cfg.InitialBalance, cfg.ClosePolicy)
	engine.SetObserver(backtest.LogObserver{})

	results := engine.Run(context.Background(), bars)

	stats := results.Calculate()
	stats.Print()
	results.PrintTrades()

	if err := backtest.WriteEquityCSV(results.EquityCurve, cfg.EquityOut); err != nil {
		return err
	}
	slog.Info("Wrote equity curve", "run_id", results.RunID, "path", cfg.EquityOut, "points", len(results.EquityCurve))

	tradingview.DumpPineScript(results.Trades)

	return nil
}
