package cpu

import (
	"github.com/hexaflex/invaders/arch"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	*arch.Opcode         // Opcode description.
	IP           uint16  // Instruction address.
	Code         byte    // Instruction opcode.
	Args         [2]byte // Operand bytes following the opcode, if any.
}

// Decode decodes the instruction at the given address.
// It fails for opcodes outside the instruction set.
func (i *Instruction) Decode(m Memory, ip uint16) error {
	i.IP = ip
	i.Code = m.U8(ip)
	i.Args = [2]byte{}

	op, ok := arch.Lookup(i.Code)
	i.Opcode = op
	if !ok {
		return NewError(i, ErrUnsupportedOpcode, "unsupported opcode %02x", i.Code)
	}

	for j := 1; j < op.Size; j++ {
		i.Args[j-1] = m.U8(ip + uint16(j))
	}

	return nil
}

// D8 returns the 8-bit immediate operand.
func (i *Instruction) D8() uint8 {
	return i.Args[0]
}

// D16 returns the 16-bit immediate operand or address.
func (i *Instruction) D16() uint16 {
	return uint16(i.Args[1])<<8 | uint16(i.Args[0])
}

// dst returns the register index encoded in bits 3-5.
func (i *Instruction) dst() byte {
	return (i.Code >> 3) & 7
}

// src returns the register index encoded in bits 0-2.
func (i *Instruction) src() byte {
	return i.Code & 7
}

// pair returns the register pair index encoded in bits 4-5.
func (i *Instruction) pair() byte {
	return (i.Code >> 4) & 3
}

// Bytes returns the encoded instruction.
func (i *Instruction) Bytes() []byte {
	out := []byte{i.Code, i.Args[0], i.Args[1]}
	if i.Opcode == nil || !i.Supported() {
		return out[:1]
	}
	return out[:i.Size]
}
