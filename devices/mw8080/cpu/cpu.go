// Package cpu implements the Intel 8080 CPU of the Midway 8080 board.
package cpu

import (
	"io"
	"log"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/hexaflex/invaders/arch"
	"github.com/hexaflex/invaders/devices"
)

// IntQueueCapacity capacity of the CPU interrupt queue.
const IntQueueCapacity = 8

// Cycle cost of servicing an interrupt; the same as the RST it executes.
const interruptCycles = 11

// TraceFunc represents a callback handler for debug trace output.
// It receives the decoded instruction along with a copy of the registers and
// flags, before the instruction executes.
type TraceFunc func(*Instruction, Registers, Flags)

// CPU implements the runtime.
type CPU struct {
	devices     devices.Map // Connected peripherals.
	trace       TraceFunc   // Handler for debug trace output.
	memory      Memory      // System memory.
	instr       Instruction // Decoded instruction data.
	regs        Registers   // Register file.
	flags       Flags       // Condition bits.
	intQueue    chan int    // Hardware interrupt queue.
	initialized uint32      // Has the cpu been started?
	inte        bool        // Interrupt enable latch.
	halted      bool        // Has a HLT instruction been executed?
}

// New creates a new CPU.
// Optionally with the given debug trace handler.
func New(trace TraceFunc) *CPU {
	if trace == nil {
		trace = func(*Instruction, Registers, Flags) { /* nop */ }
	}

	return &CPU{
		trace:    trace,
		memory:   NewMemory(),
		intQueue: make(chan int, IntQueueCapacity),
	}
}

// ID returns the cpu's device ID.
func (c *CPU) ID() devices.ID {
	return devices.NewID(devices.MW8080, 0x0001)
}

// Memory returns the cpu's internal memory bank.
func (c *CPU) Memory() Memory {
	return c.memory
}

// Registers returns the cpu's register file.
func (c *CPU) Registers() *Registers {
	return &c.regs
}

// Flags returns the cpu's condition bits.
func (c *CPU) Flags() *Flags {
	return &c.flags
}

// InterruptsEnabled returns the state of the interrupt enable latch.
func (c *CPU) InterruptsEnabled() bool {
	return c.inte
}

// Halted returns true if the cpu executed a HLT instruction.
func (c *CPU) Halted() bool {
	return c.halted
}

// Connect connects the given hardware peripheral to the system.
// Returns false if the given device type is already connected.
func (c *CPU) Connect(dev devices.Device) bool {
	return c.devices.Connect(dev)
}

// Startup clears memory and registers and initializes connected peripherals.
// Returns an error if the cpu is already running. Use Shutdown() first.
func (c *CPU) Startup() error {
	if !atomic.CompareAndSwapUint32(&c.initialized, 0, 1) {
		return errors.Errorf("%s cpu is already running", c.ID())
	}

	log.Println(c.ID(), "startup")
	c.memory.Clear()
	c.regs = Registers{}
	c.flags = Flags{}
	c.inte = false
	c.halted = false

	for len(c.intQueue) > 0 {
		<-c.intQueue
	}

	return c.devices.Startup(c.queueInterrupt)
}

// Shutdown cleans up internal resources.
func (c *CPU) Shutdown() error {
	if !atomic.CompareAndSwapUint32(&c.initialized, 1, 0) {
		return nil
	}
	log.Println(c.ID(), "shutdown")
	return c.devices.Shutdown()
}

// Interrupt requests execution of the given RST vector before the next instruction.
// The request is dropped if interrupts are disabled.
func (c *CPU) Interrupt(vector int) {
	c.queueInterrupt(vector)
}

// Step performs a single execution step and returns the number of cycles it took.
//
// Returns io.EOF once a HLT instruction has executed, or if the cpu has not been
// started. A halted cpu stays halted: further steps do nothing.
// Returns an *Error for opcodes outside the instruction set, leaving all state untouched.
func (c *CPU) Step() (int, error) {
	if atomic.LoadUint32(&c.initialized) == 0 || c.halted {
		return 0, io.EOF
	}

	if c.checkIntQueue() {
		return interruptCycles, nil
	}

	instr := &c.instr
	if err := instr.Decode(c.memory, c.regs.PC); err != nil {
		return 0, err
	}

	c.trace(instr, c.regs, c.flags)
	c.regs.PC += uint16(instr.Size)

	switch instr.Class {
	case arch.Transfer:
		c.transfer(instr)
	case arch.Arithmetic:
		c.arithmetic(instr)
	case arch.Logical:
		c.logical(instr)
	case arch.Rotate:
		c.rotate(instr)
	case arch.Stack:
		c.stack(instr)
	case arch.Branch:
		if c.branch(instr) && instr.Taken > 0 {
			return instr.Taken, nil
		}
	case arch.IO:
		c.io(instr)
	case arch.Control:
		if instr.Code == 0x76 { // HLT
			c.halted = true
			return instr.Cycles, io.EOF
		}
		c.control(instr)
	}

	return instr.Cycles, nil
}

// checkIntQueue checks if there is a pending interrupt request.
// If so, and interrupts are enabled, it pushes the program counter and jumps
// to the requested vector. Interrupts are disabled until the program executes EI.
func (c *CPU) checkIntQueue() bool {
	select {
	case vector := <-c.intQueue:
		if !c.inte {
			return false
		}

		c.push(c.regs.PC)
		c.regs.PC = uint16(vector&7) * 8
		c.inte = false
		return true
	default:
		return false
	}
}

// queueInterrupt adds a new request to the interrupt queue, provided interrupts are enabled.
func (c *CPU) queueInterrupt(vector int) {
	if !c.inte {
		return
	}

	select {
	case c.intQueue <- vector:
	default:
	}
}

// push pushes the given value onto the stack and updates SP.
func (c *CPU) push(value uint16) {
	c.regs.SP -= 2
	c.memory.SetU16(c.regs.SP, value)
}

// pop returns the top value from the stack and updates SP.
func (c *CPU) pop() uint16 {
	v := c.memory.U16(c.regs.SP)
	c.regs.SP += 2
	return v
}
