package cpu

import (
	"fmt"
	"math/bits"
)

// Registers holds the general purpose registers, the program counter
// and the stack pointer.
type Registers struct {
	B, C uint8
	D, E uint8
	H, L uint8
	A    uint8  // Accumulator.
	SP   uint16 // Stack pointer.
	PC   uint16 // Program counter.
}

// BC returns the BC register pair.
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }

// SetBC sets the BC register pair.
func (r *Registers) SetBC(v uint16) { r.B, r.C = uint8(v>>8), uint8(v) }

// DE returns the DE register pair.
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }

// SetDE sets the DE register pair.
func (r *Registers) SetDE(v uint16) { r.D, r.E = uint8(v>>8), uint8(v) }

// HL returns the HL register pair.
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// SetHL sets the HL register pair.
func (r *Registers) SetHL(v uint16) { r.H, r.L = uint8(v>>8), uint8(v) }

func (r Registers) String() string {
	return fmt.Sprintf("A=%02x BC=%04x DE=%04x HL=%04x SP=%04x PC=%04x",
		r.A, r.BC(), r.DE(), r.HL(), r.SP, r.PC)
}

// Bits of the packed flag byte.
const (
	FlagC  = 1 << 0 // Carry.
	Flag1  = 1 << 1 // Unused, always set.
	FlagP  = 1 << 2 // Parity.
	FlagAC = 1 << 4 // Auxiliary carry.
	FlagZ  = 1 << 6 // Zero.
	FlagS  = 1 << 7 // Sign.
)

// Flags holds the condition bits.
type Flags struct {
	C  bool // Carry out of bit 7, or borrow.
	P  bool // Even number of set bits in the result.
	AC bool // Carry out of bit 3.
	Z  bool // Result is zero.
	S  bool // Bit 7 of the result is set.
}

// PSW returns the flags packed into the low byte of the program status word.
func (f Flags) PSW() uint8 {
	v := uint8(Flag1)
	if f.C {
		v |= FlagC
	}
	if f.P {
		v |= FlagP
	}
	if f.AC {
		v |= FlagAC
	}
	if f.Z {
		v |= FlagZ
	}
	if f.S {
		v |= FlagS
	}
	return v
}

// SetPSW unpacks the flags from the low byte of the program status word.
// The unused bits are ignored.
func (f *Flags) SetPSW(v uint8) {
	f.C = v&FlagC != 0
	f.P = v&FlagP != 0
	f.AC = v&FlagAC != 0
	f.Z = v&FlagZ != 0
	f.S = v&FlagS != 0
}

func (f Flags) String() string {
	var b [5]byte
	for i, v := range []struct {
		set  bool
		name byte
	}{{f.S, 'S'}, {f.Z, 'Z'}, {f.AC, 'A'}, {f.P, 'P'}, {f.C, 'C'}} {
		if v.set {
			b[i] = v.name
		} else {
			b[i] = '-'
		}
	}
	return string(b[:])
}

// setZSP sets the zero, sign and parity flags from the given result.
func (f *Flags) setZSP(v uint8) {
	f.Z = v == 0
	f.S = v&0x80 != 0
	f.P = parity(uint(v), 8)
}

// parity returns true if the low width bits of v hold an even number of set bits.
func parity(v uint, width int) bool {
	if width < bits.UintSize {
		v &= 1<<uint(width) - 1
	}
	return bits.OnesCount(v)%2 == 0
}
