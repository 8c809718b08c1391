package clock

import (
	"time"
)

// Board timing.
const (
	DefaultClockHz   = 2000000 // 8080 clock rate on the Midway board.
	DefaultRefreshHz = 60      // Display refresh rate.
)

// DefaultMaxCatchUp is the number of quanta a Pacer hands out at most
// after the driver fell behind.
const DefaultMaxCatchUp = 4

// Pacer budgets emulated cycles in fixed quanta of one display refresh.
type Pacer struct {
	src        Source
	clockHz    int
	refreshHz  int
	period     time.Duration
	last       time.Time
	MaxCatchUp int // Upper bound on the value returned by Due.
}

// NewPacer creates a pacer for the given clock and refresh rates.
// Non-positive rates fall back to the board defaults. A nil source reads
// the wall clock.
func NewPacer(src Source, clockHz, refreshHz int) *Pacer {
	if src == nil {
		src = System{}
	}

	if clockHz <= 0 {
		clockHz = DefaultClockHz
	}

	if refreshHz <= 0 {
		refreshHz = DefaultRefreshHz
	}

	return &Pacer{
		src:        src,
		clockHz:    clockHz,
		refreshHz:  refreshHz,
		period:     time.Second / time.Duration(refreshHz),
		last:       src.Now(),
		MaxCatchUp: DefaultMaxCatchUp,
	}
}

// ClockHz returns the emulated clock rate.
func (p *Pacer) ClockHz() int {
	return p.clockHz
}

// CyclesPerTick returns the number of cycles in a single quantum.
func (p *Pacer) CyclesPerTick() int {
	return p.clockHz / p.refreshHz
}

// Period returns the wall time covered by a single quantum.
func (p *Pacer) Period() time.Duration {
	return p.period
}

// Reset restarts the budget from the current time.
func (p *Pacer) Reset() {
	p.last = p.src.Now()
}

// Due returns the number of whole quanta elapsed since the last call.
// If the caller fell more than MaxCatchUp quanta behind, the excess is dropped.
func (p *Pacer) Due() int {
	now := p.src.Now()
	elapsed := now.Sub(p.last)
	if elapsed < p.period {
		return 0
	}

	n := int(elapsed / p.period)
	if p.MaxCatchUp > 0 && n > p.MaxCatchUp {
		p.last = now
		return p.MaxCatchUp
	}

	p.last = p.last.Add(time.Duration(n) * p.period)
	return n
}

// Wait returns the time left until the next quantum is due.
func (p *Pacer) Wait() time.Duration {
	left := p.period - p.src.Now().Sub(p.last)
	if left < 0 {
		return 0
	}
	return left
}
