package feed

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jwtly10/breakbench/internal/logging"
	"github.com/jwtly10/breakbench/internal/types"
)

var feedLog = logging.New("feed")

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// LoadCSV reads historical bars from a CSV file. Column order is taken
// from the header (case-insensitive); a "time" column is required. If
// the full open/high/low/close set is present it is used directly;
// otherwise a "bid" (or "ask") column is accepted and each row becomes
// a flat candle at that price. A "volume" column is optional.
//
// Bars are returned sorted by time. Any malformed row is a hard error:
// clean input is this loader's contract with the engine.
func LoadCSV(path string) ([]types.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bar file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading bar file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("bar file %s is empty", path)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	timeIdx, ok := cols["time"]
	if !ok {
		return nil, fmt.Errorf("bar file %s has no time column", path)
	}

	_, hasOpen := cols["open"]
	_, hasHigh := cols["high"]
	_, hasLow := cols["low"]
	_, hasClose := cols["close"]
	useOHLC := hasOpen && hasHigh && hasLow && hasClose

	priceIdx, hasBid := cols["bid"]
	if !hasBid {
		priceIdx, hasBid = cols["ask"]
	}
	if !useOHLC && !hasBid {
		return nil, fmt.Errorf("bar file %s has neither open/high/low/close nor bid/ask columns", path)
	}

	bars := make([]types.Candle, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2 // 1-based, after header

		ts, err := parseTime(row[timeIdx])
		if err != nil {
			return nil, fmt.Errorf("bar file %s line %d: %w", path, line, err)
		}

		c := types.Candle{Time: ts}
		if useOHLC {
			if c.Open, err = parsePrice(row, cols["open"], line, path); err != nil {
				return nil, err
			}
			if c.High, err = parsePrice(row, cols["high"], line, path); err != nil {
				return nil, err
			}
			if c.Low, err = parsePrice(row, cols["low"], line, path); err != nil {
				return nil, err
			}
			if c.Close, err = parsePrice(row, cols["close"], line, path); err != nil {
				return nil, err
			}
		} else {
			// Quote-only data collapses to a flat candle.
			p, err := parsePrice(row, priceIdx, line, path)
			if err != nil {
				return nil, err
			}
			c.Open, c.High, c.Low, c.Close = p, p, p, p
		}

		if vi, ok := cols["volume"]; ok && vi < len(row) && row[vi] != "" {
			if c.Volume, err = parsePrice(row, vi, line, path); err != nil {
				return nil, err
			}
		}

		bars = append(bars, c)
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Time.Before(bars[j].Time)
	})

	feedLog.Debug("Loaded bars", "path", path, "count", len(bars))
	return bars, nil
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable time %q", raw)
}

func parsePrice(row []string, idx, line int, path string) (float64, error) {
	if idx >= len(row) {
		return 0, fmt.Errorf("bar file %s line %d: missing column %d", path, line, idx)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil {
		return 0, fmt.Errorf("bar file %s line %d: bad number %q", path, line, row[idx])
	}
	return v, nil
}
