package arch

import (
	"fmt"
	"strings"
)

// Disassemble returns the mnemonic for the instruction at the given address,
// along with its length in bytes. Opcodes outside the instruction set are
// rendered as a single data byte.
func Disassemble(mem []byte, addr uint16) (string, int) {
	opcode := at(mem, addr)

	op, ok := Lookup(opcode)
	if !ok {
		return fmt.Sprintf("DB $%02X", opcode), 1
	}

	sep := " "
	if strings.IndexByte(op.Name, ' ') > -1 {
		sep = ","
	}

	switch op.Size {
	case 2:
		return fmt.Sprintf("%s%s$%02X", op.Name, sep, at(mem, addr+1)), 2
	case 3:
		lo := uint16(at(mem, addr+1))
		hi := uint16(at(mem, addr+2))
		return fmt.Sprintf("%s%s$%04X", op.Name, sep, hi<<8|lo), 3
	}

	return op.Name, 1
}

// Dump writes count disassembled instructions starting at addr to sb,
// one per line, prefixed with their address and encoded bytes.
// Returns the address following the last instruction.
func Dump(sb *strings.Builder, mem []byte, addr uint16, count int) uint16 {
	for i := 0; i < count; i++ {
		text, size := Disassemble(mem, addr)

		var raw [3]string
		for j := 0; j < 3; j++ {
			if j < size {
				raw[j] = fmt.Sprintf("%02X", at(mem, addr+uint16(j)))
			} else {
				raw[j] = "  "
			}
		}

		fmt.Fprintf(sb, "%04X  %s  %s\n", addr, strings.Join(raw[:], " "), text)
		addr += uint16(size)
	}
	return addr
}

// at returns the byte at addr, or 0 if mem is too short to hold it.
func at(mem []byte, addr uint16) byte {
	if int(addr) >= len(mem) {
		return 0
	}
	return mem[addr]
}
