// Package diag runs 8080 diagnostic programs written for CP/M, such as
// cpudiag, 8080PRE and TST8080.
//
// These programs report through two BDOS calls (CALL 0005 with C=2 or C=9)
// and exit through the warm boot vector at 0000. The harness traps both
// addresses instead of running an operating system.
package diag

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"log"

	"github.com/pkg/errors"

	"github.com/hexaflex/invaders/devices/mw8080/cpu"
	"github.com/hexaflex/invaders/rom"
)

// CP/M entry points.
const (
	WarmBoot = 0x0000
	BDOS     = 0x0005
)

// Supported BDOS functions, selected by register C.
const (
	bdosPrintChar   = 2 // Print the character in E.
	bdosPrintString = 9 // Print the '$' terminated string at DE.
)

// ErrCycleLimit is returned when a program does not finish in time.
var ErrCycleLimit = errors.New("cycle limit exceeded")

// Patch defines bytes to overwrite after loading a program.
type Patch struct {
	Addr uint16
	Data []byte
}

// Known patches for cpudiag.bin.
var (
	// FixStackPointer corrects the operand of the program's LXI SP,
	// which is assembled off by one page in circulating copies.
	FixStackPointer = Patch{0x0170, []byte{0x07}}

	// SkipDAATest jumps over the DAA and auxiliary carry checks.
	SkipDAATest = Patch{0x059c, []byte{0xc3, 0xc2, 0x05}}
)

// Harness defines a diagnostic program run.
type Harness struct {
	cpu     *cpu.CPU
	image   *rom.Image
	patches []Patch
	out     bytes.Buffer
	console io.Writer
	cycles  uint64
}

// New creates a harness for the given program. Console output is copied to
// w as it is produced; w may be nil. The trace handler is optional.
func New(img *rom.Image, w io.Writer, trace cpu.TraceFunc) *Harness {
	if w == nil {
		w = ioutil.Discard
	}

	return &Harness{
		cpu:     cpu.New(trace),
		image:   img,
		console: w,
	}
}

// Patch schedules bytes to be written at addr once the program is loaded.
func (h *Harness) Patch(p ...Patch) {
	h.patches = append(h.patches, p...)
}

// CPU returns the processor running the program.
func (h *Harness) CPU() *cpu.CPU {
	return h.cpu
}

// Cycles returns the number of cycles the last run took.
func (h *Harness) Cycles() uint64 {
	return h.cycles
}

// Run executes the program until it jumps to the warm boot vector or halts.
// It returns everything the program printed.
//
// A maxCycles of zero or less means no limit. Exceeding the limit yields
// ErrCycleLimit. The context is checked between instructions.
func (h *Harness) Run(ctx context.Context, maxCycles int) (string, error) {
	if err := h.load(); err != nil {
		return "", err
	}

	defer h.cpu.Shutdown()

	regs := h.cpu.Registers()

	for {
		select {
		case <-ctx.Done():
			return h.out.String(), ctx.Err()
		default:
		}

		switch regs.PC {
		case WarmBoot:
			return h.out.String(), nil
		case BDOS:
			h.bdos()
			continue
		}

		if maxCycles > 0 && h.cycles >= uint64(maxCycles) {
			return h.out.String(), errors.Wrapf(ErrCycleLimit, "at %04x after %d cycles", regs.PC, h.cycles)
		}

		n, err := h.cpu.Step()
		h.cycles += uint64(n)

		if err == io.EOF {
			log.Printf("%s halted at %04x", h.cpu.ID(), regs.PC-1)
			return h.out.String(), nil
		}

		if err != nil {
			return h.out.String(), err
		}
	}
}

// load resets the cpu, installs the program and applies patches.
func (h *Harness) load() error {
	h.out.Reset()
	h.cycles = 0

	if err := h.cpu.Startup(); err != nil {
		return err
	}

	mem := h.cpu.Memory()
	mem[WarmBoot] = 0x76 // HLT
	mem[BDOS] = 0xc9     // RET

	h.image.CopyTo(mem)

	for _, p := range h.patches {
		mem.Write(p.Addr, p.Data)
	}

	h.cpu.Registers().PC = h.image.Entry
	return nil
}

// bdos performs the BDOS function selected by C and returns to the caller.
func (h *Harness) bdos() {
	regs := h.cpu.Registers()
	mem := h.cpu.Memory()

	switch regs.C {
	case bdosPrintChar:
		h.print(regs.E)
	case bdosPrintString:
		for addr, i := regs.DE(), 0; i < cpu.MemoryCapacity; addr, i = addr+1, i+1 {
			c := mem.U8(addr)
			if c == '$' {
				break
			}
			h.print(c)
		}
	default:
		log.Printf("%s unsupported BDOS function %d at %04x", h.cpu.ID(), regs.C, mem.U16(regs.SP)-3)
	}

	// RET
	regs.PC = mem.U16(regs.SP)
	regs.SP += 2
}

func (h *Harness) print(c byte) {
	h.out.WriteByte(c)
	h.console.Write([]byte{c})
}
