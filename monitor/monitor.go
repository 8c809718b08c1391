// Package monitor implements an interactive machine code monitor for the 8080.
package monitor

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hexaflex/invaders/arch"
	"github.com/hexaflex/invaders/devices/mw8080/cpu"
)

// DefaultRunLimit bounds the number of cycles a single 'g' command may run.
const DefaultRunLimit = 200000000

// Target is the processor under inspection.
type Target interface {
	Step() (int, error)
	Memory() cpu.Memory
	Registers() *cpu.Registers
	Flags() *cpu.Flags
	Halted() bool
}

var _ Target = &cpu.CPU{}

// ErrUnknownCommand is returned for unrecognized input.
var ErrUnknownCommand = errors.New("unknown command")

// Monitor defines monitor state.
type Monitor struct {
	target      Target
	out         io.Writer
	breakpoints map[uint16]bool
	next        uint16 // Address of the next 'd' listing.
	cycles      uint64 // Cycles executed through the monitor.
	RunLimit    int    // Cycle limit of the 'g' command; <= 0 for none.
}

// New creates a monitor for the given target, writing output to w.
func New(target Target, w io.Writer) *Monitor {
	return &Monitor{
		target:      target,
		out:         w,
		breakpoints: make(map[uint16]bool),
		next:        target.Registers().PC,
		RunLimit:    DefaultRunLimit,
	}
}

// Cycles returns the number of cycles executed through the monitor.
func (m *Monitor) Cycles() uint64 {
	return m.cycles
}

// Breakpoints returns the breakpoint addresses in ascending order.
func (m *Monitor) Breakpoints() []uint16 {
	out := make([]uint16, 0, len(m.breakpoints))
	for addr := range m.breakpoints {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Exec executes a single command line.
// Returns true if the command asks the monitor to exit.
func (m *Monitor) Exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	args := fields[1:]
	var err error

	switch strings.ToLower(fields[0]) {
	case "q", "quit":
		return true, nil
	case "h", "?", "help":
		m.help()
	case "r":
		m.registers()
	case "s":
		err = m.step(args)
	case "d":
		err = m.disassemble(args)
	case "m":
		err = m.dump(args)
	case "b":
		err = m.breakpoint(args)
	case "g":
		err = m.run(args)
	default:
		err = errors.Wrapf(ErrUnknownCommand, "%q", fields[0])
	}

	return false, err
}

func (m *Monitor) help() {
	fmt.Fprint(m.out, `s [n]        step n instructions
r            show registers
d [addr] [n] disassemble n instructions
m addr [n]   dump n bytes of memory
b [addr]     toggle breakpoint at addr, or list breakpoints
g [addr]     run until a breakpoint or halt
q            quit
`)
}

func (m *Monitor) registers() {
	regs := m.target.Registers()
	text, _ := arch.Disassemble(m.target.Memory(), regs.PC)
	fmt.Fprintf(m.out, "%s %s  %s\n", *regs, *m.target.Flags(), text)
}

func (m *Monitor) step(args []string) error {
	n, err := count(args, 0, 1)
	if err != nil {
		return err
	}

	regs := m.target.Registers()

	for i := 0; i < n; i++ {
		pc := regs.PC
		text, _ := arch.Disassemble(m.target.Memory(), pc)

		c, err := m.target.Step()
		m.cycles += uint64(c)
		fmt.Fprintf(m.out, "%04X  %-14s %s %s\n", pc, text, *regs, *m.target.Flags())

		if err == io.EOF {
			fmt.Fprintln(m.out, "halted")
			break
		}

		if err != nil {
			return err
		}
	}

	m.next = regs.PC
	return nil
}

func (m *Monitor) disassemble(args []string) error {
	addr := m.next
	if len(args) > 0 {
		v, err := address(args[0])
		if err != nil {
			return err
		}
		addr = v
	}

	n, err := count(args, 1, 10)
	if err != nil {
		return err
	}

	var sb strings.Builder
	m.next = arch.Dump(&sb, m.target.Memory(), addr, n)
	io.WriteString(m.out, sb.String())
	return nil
}

func (m *Monitor) dump(args []string) error {
	if len(args) == 0 {
		return errors.New("missing address")
	}

	addr, err := address(args[0])
	if err != nil {
		return err
	}

	n, err := count(args, 1, 64)
	if err != nil {
		return err
	}

	mem := m.target.Memory()
	for row := 0; row < n; row += 16 {
		fmt.Fprintf(m.out, "%04X ", addr)

		var ascii strings.Builder
		for col := 0; col < 16 && row+col < n; col++ {
			v := mem.U8(addr)
			fmt.Fprintf(m.out, " %02X", v)

			if v >= 0x20 && v < 0x7f {
				ascii.WriteByte(v)
			} else {
				ascii.WriteByte('.')
			}
			addr++
		}

		fmt.Fprintf(m.out, "  %s\n", ascii.String())
	}

	return nil
}

func (m *Monitor) breakpoint(args []string) error {
	if len(args) == 0 {
		for _, addr := range m.Breakpoints() {
			fmt.Fprintf(m.out, "%04X\n", addr)
		}
		return nil
	}

	addr, err := address(args[0])
	if err != nil {
		return err
	}

	if m.breakpoints[addr] {
		delete(m.breakpoints, addr)
		fmt.Fprintf(m.out, "breakpoint %04X cleared\n", addr)
	} else {
		m.breakpoints[addr] = true
		fmt.Fprintf(m.out, "breakpoint %04X set\n", addr)
	}

	return nil
}

// run steps until the program counter hits a breakpoint. A breakpoint at the
// starting address does not stop the run.
func (m *Monitor) run(args []string) error {
	regs := m.target.Registers()

	if len(args) > 0 {
		addr, err := address(args[0])
		if err != nil {
			return err
		}
		regs.PC = addr
	}

	var spent int
	for {
		c, err := m.target.Step()
		m.cycles += uint64(c)
		spent += c

		if err == io.EOF {
			fmt.Fprintf(m.out, "halted at %04X\n", regs.PC-1)
			break
		}

		if err != nil {
			m.next = regs.PC
			return err
		}

		if m.breakpoints[regs.PC] {
			fmt.Fprintf(m.out, "break at %04X\n", regs.PC)
			break
		}

		if m.RunLimit > 0 && spent >= m.RunLimit {
			fmt.Fprintf(m.out, "stopped at %04X after %d cycles\n", regs.PC, spent)
			break
		}
	}

	m.next = regs.PC
	m.registers()
	return nil
}

// address parses a hexadecimal address, with an optional $ or 0x prefix.
func address(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "$")
	s = strings.TrimPrefix(s, "0x")

	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, errors.Errorf("invalid address %q", s)
	}
	return uint16(v), nil
}

// count parses the decimal count at args[i], or returns def if there is none.
func count(args []string, i, def int) (int, error) {
	if i >= len(args) {
		return def, nil
	}

	v, err := strconv.Atoi(args[i])
	if err != nil || v < 1 {
		return 0, errors.Errorf("invalid count %q", args[i])
	}
	return v, nil
}
