// Package machine composes the Midway 8080 board: the CPU, its peripherals
// and the frame timing which drives the video interrupts.
package machine

import (
	"context"
	"log"

	"github.com/hexaflex/invaders/clock"
	"github.com/hexaflex/invaders/devices"
	"github.com/hexaflex/invaders/devices/mw8080/cpu"
	"github.com/hexaflex/invaders/devices/mw8080/input"
	"github.com/hexaflex/invaders/devices/mw8080/shifter"
	"github.com/hexaflex/invaders/rom"
)

// Interrupts raised by the video hardware.
const (
	MidFrameVector = 1 // Beam reaches the middle of the screen.
	VBlankVector   = 2 // Beam reaches the end of the screen.
)

// DefaultCyclesPerFrame is the cycle budget of a single display refresh.
const DefaultCyclesPerFrame = clock.DefaultClockHz / clock.DefaultRefreshHz

// Machine defines the board.
type Machine struct {
	cpu            *cpu.CPU
	shifter        *shifter.Device
	input          *input.Device
	image          *rom.Image
	CyclesPerFrame int    // Cycle budget for RunFrame.
	over           int    // Cycles the last frame ran past its budget.
	cycles         uint64 // Cycles executed since startup.
	frames         uint64 // Frames completed since startup.
	started        bool
}

// New creates a board with the shift register, the given input device and any
// additional peripherals. A nil input creates one without gamepad support.
// The trace handler is optional.
func New(trace cpu.TraceFunc, in *input.Device, devs ...devices.Device) *Machine {
	if in == nil {
		in = input.New(false)
	}

	m := &Machine{
		cpu:            cpu.New(trace),
		shifter:        shifter.New(),
		input:          in,
		CyclesPerFrame: DefaultCyclesPerFrame,
	}

	m.cpu.Connect(m.shifter)
	m.cpu.Connect(m.input)

	for _, dev := range devs {
		if !m.cpu.Connect(dev) {
			log.Println(dev.ID(), "is already connected")
		}
	}

	return m
}

// CPU returns the board's processor.
func (m *Machine) CPU() *cpu.CPU {
	return m.cpu
}

// Input returns the board's input device.
func (m *Machine) Input() *input.Device {
	return m.input
}

// Shifter returns the board's shift register.
func (m *Machine) Shifter() *shifter.Device {
	return m.shifter
}

// Load sets the program image. It is copied into memory at startup, or
// right away if the board is already running.
func (m *Machine) Load(img *rom.Image) {
	m.image = img
	if m.started {
		m.install()
	}
}

// install copies the image into memory and points the CPU at its entry point.
func (m *Machine) install() {
	if m.image == nil {
		return
	}

	n := m.image.CopyTo(m.cpu.Memory())
	m.cpu.Registers().PC = m.image.Entry
	log.Printf("%s loaded %d bytes, entry %04x", m.cpu.ID(), n, m.image.Entry)
}

// Startup resets the board and loads the program image.
func (m *Machine) Startup() error {
	if err := m.cpu.Startup(); err != nil {
		return err
	}

	m.over = 0
	m.cycles = 0
	m.frames = 0
	m.started = true
	m.install()
	return nil
}

// Shutdown cleans up internal resources.
func (m *Machine) Shutdown() error {
	m.started = false
	return m.cpu.Shutdown()
}

// RunFrame runs the CPU for one display refresh. It raises the mid-screen
// interrupt halfway through and the vblank interrupt at the end.
//
// Returns io.EOF if the program halted, ctx.Err() if the context is done,
// or any error returned by the CPU. The context is checked between instructions.
func (m *Machine) RunFrame(ctx context.Context) error {
	half := m.CyclesPerFrame / 2

	if err := m.run(ctx, half); err != nil {
		return err
	}

	m.cpu.Interrupt(MidFrameVector)

	if err := m.run(ctx, m.CyclesPerFrame-half); err != nil {
		return err
	}

	m.cpu.Interrupt(VBlankVector)
	m.frames++
	return nil
}

// run executes instructions until the cycle budget is spent. Overshoot is
// deducted from the next budget.
func (m *Machine) run(ctx context.Context, budget int) error {
	budget -= m.over
	m.over = 0

	var n int
	for n < budget {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c, err := m.cpu.Step()
		n += c
		m.cycles += uint64(c)

		if err != nil {
			return err
		}
	}

	m.over = n - budget
	return nil
}

// Step executes a single instruction.
func (m *Machine) Step() (int, error) {
	n, err := m.cpu.Step()
	m.cycles += uint64(n)
	return n, err
}

// VRAM returns the video memory.
func (m *Machine) VRAM() []byte {
	return m.cpu.Memory()[cpu.VRAMStart:cpu.VRAMEnd]
}

// Cycles returns the number of cycles executed since startup.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// Frames returns the number of frames completed since startup.
func (m *Machine) Frames() uint64 {
	return m.frames
}
