package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/jwtly10/breakbench/internal/backtest"
	"github.com/jwtly10/breakbench/internal/risk"
	"github.com/jwtly10/breakbench/internal/strategy"
)

// Config holds everything a backtest run needs. Positivity validation
// lives here, in the loader: the engine and strategy trust their
// inputs.
type Config struct {
	Symbol string
	Digits int

	WindowMode strategy.WindowMode
	WindowBars int
	WindowSpan time.Duration

	DistancePips float64
	StopLossPips float64
	RiskReward   float64

	RiskPercent  float64
	VolumeBounds risk.Bounds

	InitialBalance float64
	ClosePolicy    backtest.ClosePolicy

	CSVPath   string
	EquityOut string
}

// Load reads configuration from the environment, after loading a .env
// file if one is present in the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Could not load .env file", "error", err)
	}

	cfg := &Config{
		Symbol:         envString("SYMBOL", "EURUSD"),
		Digits:         envInt("DIGITS", 5),
		WindowMode:     strategy.WindowMode(envString("WINDOW_MODE", string(strategy.WindowBars))),
		WindowBars:     envInt("WINDOW_BARS", 20),
		WindowSpan:     envDuration("WINDOW_SPAN", 20*time.Minute),
		DistancePips:   envFloat("DISTANCE_PIPS", 10),
		StopLossPips:   envFloat("SL_PIPS", 15),
		RiskReward:     envFloat("TP_RR", 2),
		RiskPercent:    envFloat("RISK_PCT", 1),
		InitialBalance: envFloat("INITIAL_BALANCE", 10000),
		ClosePolicy:    backtest.ClosePolicy(envString("CLOSE_POLICY", string(backtest.LeaveOpen))),
		CSVPath:        envString("CSV_PATH", ""),
		EquityOut:      envString("EQUITY_OUT", "equity.csv"),
		VolumeBounds: risk.Bounds{
			Min:  envFloat("VOL_MIN", 0.01),
			Step: envFloat("VOL_STEP", 0.01),
			Max:  envFloat("VOL_MAX", 10),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.WindowMode {
	case strategy.WindowBars, strategy.WindowDuration:
	default:
		return fmt.Errorf("invalid WINDOW_MODE %q", c.WindowMode)
	}
	switch c.ClosePolicy {
	case backtest.LeaveOpen, backtest.CloseAtLastPrice:
	default:
		return fmt.Errorf("invalid CLOSE_POLICY %q", c.ClosePolicy)
	}

	if c.WindowBars < 1 {
		return fmt.Errorf("WINDOW_BARS must be at least 1, got %d", c.WindowBars)
	}
	if c.WindowMode == strategy.WindowDuration && c.WindowSpan <= 0 {
		return fmt.Errorf("WINDOW_SPAN must be positive, got %s", c.WindowSpan)
	}
	if c.DistancePips <= 0 {
		return fmt.Errorf("DISTANCE_PIPS must be positive, got %v", c.DistancePips)
	}
	if c.StopLossPips <= 0 {
		return fmt.Errorf("SL_PIPS must be positive, got %v", c.StopLossPips)
	}
	if c.RiskReward <= 0 {
		return fmt.Errorf("TP_RR must be positive, got %v", c.RiskReward)
	}
	if c.RiskPercent <= 0 || c.RiskPercent > 100 {
		return fmt.Errorf("RISK_PCT must be in (0, 100], got %v", c.RiskPercent)
	}
	if c.VolumeBounds.Min <= 0 || c.VolumeBounds.Step <= 0 || c.VolumeBounds.Max < c.VolumeBounds.Min {
		return fmt.Errorf("invalid volume bounds %+v", c.VolumeBounds)
	}
	if c.InitialBalance <= 0 {
		return fmt.Errorf("INITIAL_BALANCE must be positive, got %v", c.InitialBalance)
	}
	return nil
}

// StrategyConfig maps the run configuration onto the breakout
// strategy's own config type.
func (c *Config) StrategyConfig() strategy.BreakoutConfig {
	return strategy.BreakoutConfig{
		Mode:         c.WindowMode,
		Bars:         c.WindowBars,
		Span:         c.WindowSpan,
		Digits:       c.Digits,
		DistancePips: c.DistancePips,
		StopLossPips: c.StopLossPips,
		RiskReward:   c.RiskReward,
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("Ignoring invalid int env value", "key", key, "value", v)
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("Ignoring invalid float env value", "key", key, "value", v)
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("Ignoring invalid duration env value", "key", key, "value", v)
		return fallback
	}
	return d
}
