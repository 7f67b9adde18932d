package backtest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jwtly10/breakbench/internal/types"
)

// WriteEquityCSV writes the equity curve as a two-column CSV with the
// header "time,equity". This is the interchange format consumed by
// external charting/persistence tooling.
func WriteEquityCSV(points []types.EquityPoint, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating equity file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "equity"}); err != nil {
		return fmt.Errorf("writing equity header: %w", err)
	}
	for _, p := range points {
		row := []string{
			p.Time.Format(time.RFC3339),
			strconv.FormatFloat(p.Equity, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing equity row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
