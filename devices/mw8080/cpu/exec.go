package cpu

import (
	"github.com/hexaflex/invaders/arch"
)

// reg returns the value of the register with the given index.
// Index arch.M reads memory at the address in HL.
func (c *CPU) reg(n byte) uint8 {
	r := &c.regs
	switch n {
	case arch.B:
		return r.B
	case arch.C:
		return r.C
	case arch.D:
		return r.D
	case arch.E:
		return r.E
	case arch.H:
		return r.H
	case arch.L:
		return r.L
	case arch.M:
		return c.memory.U8(r.HL())
	}
	return r.A
}

// setReg sets the register with the given index.
// Index arch.M writes memory at the address in HL.
func (c *CPU) setReg(n byte, v uint8) {
	r := &c.regs
	switch n {
	case arch.B:
		r.B = v
	case arch.C:
		r.C = v
	case arch.D:
		r.D = v
	case arch.E:
		r.E = v
	case arch.H:
		r.H = v
	case arch.L:
		r.L = v
	case arch.M:
		c.memory.SetU8(r.HL(), v)
	default:
		r.A = v
	}
}

// pair returns the register pair with the given index. Index arch.SP yields SP.
func (c *CPU) pair(n byte) uint16 {
	switch n {
	case arch.BC:
		return c.regs.BC()
	case arch.DE:
		return c.regs.DE()
	case arch.HL:
		return c.regs.HL()
	}
	return c.regs.SP
}

// setPair sets the register pair with the given index. Index arch.SP sets SP.
func (c *CPU) setPair(n byte, v uint16) {
	switch n {
	case arch.BC:
		c.regs.SetBC(v)
	case arch.DE:
		c.regs.SetDE(v)
	case arch.HL:
		c.regs.SetHL(v)
	default:
		c.regs.SP = v
	}
}

// condition returns true if the condition with the given index holds.
func (c *CPU) condition(n byte) bool {
	f := &c.flags
	switch n {
	case arch.NZ:
		return !f.Z
	case arch.Z:
		return f.Z
	case arch.NC:
		return !f.C
	case arch.CY:
		return f.C
	case arch.PO:
		return !f.P
	case arch.PE:
		return f.P
	case arch.P:
		return !f.S
	}
	return f.S
}

// transfer executes data movement instructions. None of them touch the flags.
func (c *CPU) transfer(i *Instruction) {
	r := &c.regs
	mem := c.memory

	switch op := i.Code; {
	case op >= 0x40 && op < 0x80: // MOV
		c.setReg(i.dst(), c.reg(i.src()))
	case op&0xc7 == 0x06: // MVI
		c.setReg(i.dst(), i.D8())
	case op&0xcf == 0x01: // LXI
		c.setPair(i.pair(), i.D16())
	case op == 0x02: // STAX B
		mem.SetU8(r.BC(), r.A)
	case op == 0x12: // STAX D
		mem.SetU8(r.DE(), r.A)
	case op == 0x0a: // LDAX B
		r.A = mem.U8(r.BC())
	case op == 0x1a: // LDAX D
		r.A = mem.U8(r.DE())
	case op == 0x22: // SHLD
		mem.SetU16(i.D16(), r.HL())
	case op == 0x2a: // LHLD
		r.SetHL(mem.U16(i.D16()))
	case op == 0x32: // STA
		mem.SetU8(i.D16(), r.A)
	case op == 0x3a: // LDA
		r.A = mem.U8(i.D16())
	case op == 0xeb: // XCHG
		r.D, r.H = r.H, r.D
		r.E, r.L = r.L, r.E
	}
}

// arithmetic executes additions, subtractions, increments and decrements.
func (c *CPU) arithmetic(i *Instruction) {
	f := &c.flags

	switch op := i.Code; {
	case op&0xc0 == 0x80: // ADD, ADC, SUB, SBB
		c.alu(i.dst(), c.reg(i.src()))
	case op&0xc7 == 0xc6: // ADI, ACI, SUI, SBI
		c.alu(i.dst(), i.D8())
	case op&0xc7 == 0x04: // INR
		c.setReg(i.dst(), inr(f, c.reg(i.dst())))
	case op&0xc7 == 0x05: // DCR
		c.setReg(i.dst(), dcr(f, c.reg(i.dst())))
	case op&0xcf == 0x03: // INX
		c.setPair(i.pair(), c.pair(i.pair())+1)
	case op&0xcf == 0x0b: // DCX
		c.setPair(i.pair(), c.pair(i.pair())-1)
	case op&0xcf == 0x09: // DAD
		c.regs.SetHL(dad(f, c.regs.HL(), c.pair(i.pair())))
	case op == 0x27: // DAA
		c.regs.A = daa(f, c.regs.A)
	}
}

// logical executes bitwise operations and comparisons.
func (c *CPU) logical(i *Instruction) {
	switch op := i.Code; {
	case op&0xc0 == 0x80: // ANA, XRA, ORA, CMP
		c.alu(i.dst(), c.reg(i.src()))
	case op&0xc7 == 0xc6: // ANI, XRI, ORI, CPI
		c.alu(i.dst(), i.D8())
	case op == 0x2f: // CMA
		c.regs.A = ^c.regs.A
	}
}

// alu applies the accumulator operation with the given index to A and v.
// The index is the ALU field shared by the register and immediate forms.
func (c *CPU) alu(op byte, v uint8) {
	f := &c.flags
	r := &c.regs

	switch op {
	case 0: // ADD
		r.A = add(f, r.A, v, false)
	case 1: // ADC
		r.A = add(f, r.A, v, f.C)
	case 2: // SUB
		r.A = sub(f, r.A, v, false)
	case 3: // SBB
		r.A = sub(f, r.A, v, f.C)
	case 4: // ANA
		r.A = and(f, r.A, v)
	case 5: // XRA
		r.A = xor(f, r.A, v)
	case 6: // ORA
		r.A = or(f, r.A, v)
	case 7: // CMP
		sub(f, r.A, v, false)
	}
}

// rotate executes the accumulator rotations. Only C is affected.
func (c *CPU) rotate(i *Instruction) {
	f := &c.flags
	r := &c.regs

	switch i.Code {
	case 0x07: // RLC
		r.A = rlc(f, r.A)
	case 0x0f: // RRC
		r.A = rrc(f, r.A)
	case 0x17: // RAL
		r.A = ral(f, r.A)
	case 0x1f: // RAR
		r.A = rar(f, r.A)
	}
}

// stack executes PUSH, POP, XTHL and SPHL.
func (c *CPU) stack(i *Instruction) {
	r := &c.regs

	switch op := i.Code; {
	case op == 0xf5: // PUSH PSW
		c.push(uint16(r.A)<<8 | uint16(c.flags.PSW()))
	case op == 0xf1: // POP PSW
		v := c.pop()
		r.A = uint8(v >> 8)
		c.flags.SetPSW(uint8(v))
	case op&0xcf == 0xc5: // PUSH
		c.push(c.pair(i.pair()))
	case op&0xcf == 0xc1: // POP
		c.setPair(i.pair(), c.pop())
	case op == 0xe3: // XTHL
		v := c.memory.U16(r.SP)
		c.memory.SetU16(r.SP, r.HL())
		r.SetHL(v)
	case op == 0xf9: // SPHL
		r.SP = r.HL()
	}
}

// branch executes jumps, calls, returns and restarts.
// Returns true if a conditional branch was taken.
func (c *CPU) branch(i *Instruction) bool {
	r := &c.regs

	switch op := i.Code; {
	case op == 0xc3: // JMP
		r.PC = i.D16()
	case op == 0xcd: // CALL
		c.push(r.PC)
		r.PC = i.D16()
	case op == 0xc9: // RET
		r.PC = c.pop()
	case op == 0xe9: // PCHL
		r.PC = r.HL()
	case op&0xc7 == 0xc2: // Jcc
		if c.condition(i.dst()) {
			r.PC = i.D16()
			return true
		}
	case op&0xc7 == 0xc4: // Ccc
		if c.condition(i.dst()) {
			c.push(r.PC)
			r.PC = i.D16()
			return true
		}
	case op&0xc7 == 0xc0: // Rcc
		if c.condition(i.dst()) {
			r.PC = c.pop()
			return true
		}
	case op&0xc7 == 0xc7: // RST
		c.push(r.PC)
		r.PC = uint16(i.dst()) * 8
	}
	return false
}

// io executes IN and OUT through the connected devices.
func (c *CPU) io(i *Instruction) {
	switch i.Code {
	case 0xdb: // IN
		c.regs.A = c.devices.In(i.D8())
	case 0xd3: // OUT
		c.devices.Out(i.D8(), c.regs.A)
	}
}

// control executes NOP, DI, EI, STC and CMC. HLT is handled by Step.
func (c *CPU) control(i *Instruction) {
	switch i.Code {
	case 0xf3: // DI
		c.inte = false
	case 0xfb: // EI
		c.inte = true
	case 0x37: // STC
		c.flags.C = true
	case 0x3f: // CMC
		c.flags.C = !c.flags.C
	}
}
