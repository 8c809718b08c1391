package main

import (
	"context"
	"io"
	"time"

	"github.com/hexaflex/invaders/clock"
	"github.com/hexaflex/invaders/machine"
	"github.com/hexaflex/invaders/rom"
)

// Controller controls the execution of the board against wall time.
type Controller struct {
	machine    *machine.Machine
	pacer      *clock.Pacer
	image      *rom.Image
	start      time.Time
	cycleStart uint64
	running    bool
}

// NewController creates a new controller for the given board.
func NewController(m *machine.Machine, pacer *clock.Pacer) *Controller {
	m.CyclesPerFrame = pacer.CyclesPerTick()
	return &Controller{
		machine: m,
		pacer:   pacer,
	}
}

// Running returns true if the board is currently running.
func (c *Controller) Running() bool {
	return c.running
}

// Frequency returns the current clock frequency in herz.
func (c *Controller) Frequency() float64 {
	if !c.running {
		return 0
	}
	return float64(c.machine.Cycles()-c.cycleStart) / time.Since(c.start).Seconds()
}

// ToggleRun starts or stops program execution.
func (c *Controller) ToggleRun() {
	c.setRunning(!c.running)
}

// Start begins execution of the program.
func (c *Controller) Start() {
	c.setRunning(true)
}

// Stop pauses execution of the program.
func (c *Controller) Stop() {
	c.setRunning(false)
}

// Update runs as many frames as are due. Execution stops when the
// program halts or fails.
func (c *Controller) Update(ctx context.Context) error {
	if !c.running {
		return nil
	}

	for n := c.pacer.Due(); n > 0; n-- {
		if err := c.machine.RunFrame(ctx); err != nil {
			c.setRunning(false)
			if err != io.EOF {
				return err
			}
			break
		}
	}

	return nil
}

// Wait returns the time until the next frame is due.
func (c *Controller) Wait() time.Duration {
	if !c.running {
		return c.pacer.Period()
	}
	return c.pacer.Wait()
}

// Step performs a single execution step.
func (c *Controller) Step() error {
	_, err := c.machine.Step()
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}

// VRAM returns the board's video memory.
func (c *Controller) VRAM() []byte {
	return c.machine.VRAM()
}

// Startup loads the given program and initializes the board and connected peripherals.
func (c *Controller) Startup(img *rom.Image) error {
	c.image = img
	c.machine.Load(img)
	return c.machine.Startup()
}

// Reset restarts the board with the last loaded program.
func (c *Controller) Reset() error {
	c.machine.Shutdown()
	err := c.Startup(c.image)
	c.setRunning(c.running && err == nil)
	return err
}

// Shutdown disposes of board and peripheral resources.
func (c *Controller) Shutdown() error {
	return c.machine.Shutdown()
}

// setRunning determines of the board is running or is paused.
func (c *Controller) setRunning(v bool) {
	c.running = v
	c.start = time.Now()
	c.cycleStart = c.machine.Cycles()
	c.pacer.Reset()
}
