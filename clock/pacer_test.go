package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCyclesPerTick(t *testing.T) {
	p := NewPacer(NewManual(time.Time{}), 2000000, 60)
	assert.Equal(t, 33333, p.CyclesPerTick())
	assert.Equal(t, time.Second/60, p.Period())

	p = NewPacer(NewManual(time.Time{}), 0, 0)
	assert.Equal(t, DefaultClockHz, p.ClockHz())
	assert.Equal(t, DefaultClockHz/DefaultRefreshHz, p.CyclesPerTick())
}

func TestDue(t *testing.T) {
	src := NewManual(time.Unix(1000, 0))
	p := NewPacer(src, 1000, 10)

	assert.Equal(t, 0, p.Due())

	src.Advance(99 * time.Millisecond)
	assert.Equal(t, 0, p.Due())

	src.Advance(1 * time.Millisecond)
	assert.Equal(t, 1, p.Due())
	assert.Equal(t, 0, p.Due())

	// Partial quanta carry over.
	src.Advance(250 * time.Millisecond)
	assert.Equal(t, 2, p.Due())
	assert.Equal(t, 50*time.Millisecond, p.Wait())

	src.Advance(50 * time.Millisecond)
	assert.Equal(t, 1, p.Due())
}

func TestDueCatchUp(t *testing.T) {
	src := NewManual(time.Unix(1000, 0))
	p := NewPacer(src, 1000, 10)
	p.MaxCatchUp = 3

	src.Advance(10 * time.Second)
	assert.Equal(t, 3, p.Due())

	// Dropped quanta do not come back.
	assert.Equal(t, 0, p.Due())
	assert.Equal(t, 100*time.Millisecond, p.Wait())
}

func TestReset(t *testing.T) {
	src := NewManual(time.Unix(1000, 0))
	p := NewPacer(src, 1000, 10)

	src.Advance(time.Second)
	p.Reset()
	assert.Equal(t, 0, p.Due())
}

func TestSystem(t *testing.T) {
	before := time.Now()
	now := System{}.Now()
	assert.False(t, now.Before(before))
}
