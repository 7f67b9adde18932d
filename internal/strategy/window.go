package strategy

import (
	"time"

	"github.com/jwtly10/breakbench/internal/types"
)

// Window is a fixed-capacity circular buffer over the most recent bars.
// Push evicts the oldest bar once the buffer is full, so both push and
// evict are O(1) with no reallocation during a run.
type Window struct {
	buf   []types.Candle
	head  int // index of the next write slot
	count int
}

func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{
		buf: make([]types.Candle, capacity),
	}
}

func (w *Window) Push(c types.Candle) {
	w.buf[w.head] = c
	w.head = (w.head + 1) % len(w.buf)
	if w.count < len(w.buf) {
		w.count++
	}
}

// EvictBefore drops bars with a timestamp strictly before cutoff,
// oldest first. Used by the duration window mode.
func (w *Window) EvictBefore(cutoff time.Time) {
	for w.count > 0 && w.At(0).Time.Before(cutoff) {
		w.count--
	}
}

func (w *Window) Len() int {
	return w.count
}

func (w *Window) Full() bool {
	return w.count == len(w.buf)
}

// At returns the i-th retained bar, with 0 being the oldest.
func (w *Window) At(i int) types.Candle {
	idx := (w.head - w.count + i + len(w.buf)) % len(w.buf)
	return w.buf[idx]
}

// HighLow returns the highest high and lowest low across the retained
// bars. It must not be called on an empty window.
func (w *Window) HighLow() (hi float64, lo float64) {
	hi = w.At(0).High
	lo = w.At(0).Low
	for i := 1; i < w.count; i++ {
		c := w.At(i)
		if c.High > hi {
			hi = c.High
		}
		if c.Low < lo {
			lo = c.Low
		}
	}
	return hi, lo
}
