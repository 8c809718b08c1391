// Package arch describes the Intel 8080 instruction set along with
// some related helper functions.
package arch

// Class groups opcodes by the kind of operation they perform.
type Class byte

// Known instruction classes.
const (
	Unsupported Class = iota // Not part of the documented instruction set.
	Transfer                 // MOV, MVI, LXI, LDA/STA, LDAX/STAX, LHLD/SHLD, XCHG.
	Arithmetic               // ADD, ADC, SUB, SBB, INR, DCR, DAD, INX, DCX, DAA and immediates.
	Logical                  // ANA, XRA, ORA, CMP, CMA and immediates.
	Rotate                   // RLC, RRC, RAL, RAR.
	Stack                    // PUSH, POP, XTHL, SPHL.
	Branch                   // JMP, Jcc, CALL, Ccc, RET, Rcc, RST, PCHL.
	IO                       // IN, OUT.
	Control                  // NOP, HLT, DI, EI, STC, CMC.
)

func (c Class) String() string {
	switch c {
	case Transfer:
		return "transfer"
	case Arithmetic:
		return "arithmetic"
	case Logical:
		return "logical"
	case Rotate:
		return "rotate"
	case Stack:
		return "stack"
	case Branch:
		return "branch"
	case IO:
		return "io"
	case Control:
		return "control"
	}
	return "unsupported"
}

// Opcode describes a single opcode byte.
type Opcode struct {
	Name   string // Mnemonic, including any fixed register operands.
	Class  Class  // Instruction class.
	Size   int    // Instruction length in bytes, including operands.
	Cycles int    // Cycle cost. For conditional CALL and RET, the cost when not taken.
	Taken  int    // Cycle cost of a conditional CALL or RET when taken; zero otherwise.
}

// Supported returns true if the opcode is part of the documented instruction set.
func (o *Opcode) Supported() bool {
	return o.Class != Unsupported
}

// Opcodes maps every opcode byte to its description.
// Entries left zero are not part of the documented instruction set.
var Opcodes = [256]Opcode{
	0x00: {"NOP", Control, 1, 4, 0},
	0x01: {"LXI B", Transfer, 3, 10, 0},
	0x02: {"STAX B", Transfer, 1, 7, 0},
	0x03: {"INX B", Arithmetic, 1, 5, 0},
	0x04: {"INR B", Arithmetic, 1, 5, 0},
	0x05: {"DCR B", Arithmetic, 1, 5, 0},
	0x06: {"MVI B", Transfer, 2, 7, 0},
	0x07: {"RLC", Rotate, 1, 4, 0},
	0x08: {},
	0x09: {"DAD B", Arithmetic, 1, 10, 0},
	0x0a: {"LDAX B", Transfer, 1, 7, 0},
	0x0b: {"DCX B", Arithmetic, 1, 5, 0},
	0x0c: {"INR C", Arithmetic, 1, 5, 0},
	0x0d: {"DCR C", Arithmetic, 1, 5, 0},
	0x0e: {"MVI C", Transfer, 2, 7, 0},
	0x0f: {"RRC", Rotate, 1, 4, 0},
	0x10: {},
	0x11: {"LXI D", Transfer, 3, 10, 0},
	0x12: {"STAX D", Transfer, 1, 7, 0},
	0x13: {"INX D", Arithmetic, 1, 5, 0},
	0x14: {"INR D", Arithmetic, 1, 5, 0},
	0x15: {"DCR D", Arithmetic, 1, 5, 0},
	0x16: {"MVI D", Transfer, 2, 7, 0},
	0x17: {"RAL", Rotate, 1, 4, 0},
	0x18: {},
	0x19: {"DAD D", Arithmetic, 1, 10, 0},
	0x1a: {"LDAX D", Transfer, 1, 7, 0},
	0x1b: {"DCX D", Arithmetic, 1, 5, 0},
	0x1c: {"INR E", Arithmetic, 1, 5, 0},
	0x1d: {"DCR E", Arithmetic, 1, 5, 0},
	0x1e: {"MVI E", Transfer, 2, 7, 0},
	0x1f: {"RAR", Rotate, 1, 4, 0},
	0x20: {},
	0x21: {"LXI H", Transfer, 3, 10, 0},
	0x22: {"SHLD", Transfer, 3, 16, 0},
	0x23: {"INX H", Arithmetic, 1, 5, 0},
	0x24: {"INR H", Arithmetic, 1, 5, 0},
	0x25: {"DCR H", Arithmetic, 1, 5, 0},
	0x26: {"MVI H", Transfer, 2, 7, 0},
	0x27: {"DAA", Arithmetic, 1, 4, 0},
	0x28: {},
	0x29: {"DAD H", Arithmetic, 1, 10, 0},
	0x2a: {"LHLD", Transfer, 3, 16, 0},
	0x2b: {"DCX H", Arithmetic, 1, 5, 0},
	0x2c: {"INR L", Arithmetic, 1, 5, 0},
	0x2d: {"DCR L", Arithmetic, 1, 5, 0},
	0x2e: {"MVI L", Transfer, 2, 7, 0},
	0x2f: {"CMA", Logical, 1, 4, 0},
	0x30: {},
	0x31: {"LXI SP", Transfer, 3, 10, 0},
	0x32: {"STA", Transfer, 3, 13, 0},
	0x33: {"INX SP", Arithmetic, 1, 5, 0},
	0x34: {"INR M", Arithmetic, 1, 10, 0},
	0x35: {"DCR M", Arithmetic, 1, 10, 0},
	0x36: {"MVI M", Transfer, 2, 10, 0},
	0x37: {"STC", Control, 1, 4, 0},
	0x38: {},
	0x39: {"DAD SP", Arithmetic, 1, 10, 0},
	0x3a: {"LDA", Transfer, 3, 13, 0},
	0x3b: {"DCX SP", Arithmetic, 1, 5, 0},
	0x3c: {"INR A", Arithmetic, 1, 5, 0},
	0x3d: {"DCR A", Arithmetic, 1, 5, 0},
	0x3e: {"MVI A", Transfer, 2, 7, 0},
	0x3f: {"CMC", Control, 1, 4, 0},
	0x40: {"MOV B,B", Transfer, 1, 5, 0},
	0x41: {"MOV B,C", Transfer, 1, 5, 0},
	0x42: {"MOV B,D", Transfer, 1, 5, 0},
	0x43: {"MOV B,E", Transfer, 1, 5, 0},
	0x44: {"MOV B,H", Transfer, 1, 5, 0},
	0x45: {"MOV B,L", Transfer, 1, 5, 0},
	0x46: {"MOV B,M", Transfer, 1, 7, 0},
	0x47: {"MOV B,A", Transfer, 1, 5, 0},
	0x48: {"MOV C,B", Transfer, 1, 5, 0},
	0x49: {"MOV C,C", Transfer, 1, 5, 0},
	0x4a: {"MOV C,D", Transfer, 1, 5, 0},
	0x4b: {"MOV C,E", Transfer, 1, 5, 0},
	0x4c: {"MOV C,H", Transfer, 1, 5, 0},
	0x4d: {"MOV C,L", Transfer, 1, 5, 0},
	0x4e: {"MOV C,M", Transfer, 1, 7, 0},
	0x4f: {"MOV C,A", Transfer, 1, 5, 0},
	0x50: {"MOV D,B", Transfer, 1, 5, 0},
	0x51: {"MOV D,C", Transfer, 1, 5, 0},
	0x52: {"MOV D,D", Transfer, 1, 5, 0},
	0x53: {"MOV D,E", Transfer, 1, 5, 0},
	0x54: {"MOV D,H", Transfer, 1, 5, 0},
	0x55: {"MOV D,L", Transfer, 1, 5, 0},
	0x56: {"MOV D,M", Transfer, 1, 7, 0},
	0x57: {"MOV D,A", Transfer, 1, 5, 0},
	0x58: {"MOV E,B", Transfer, 1, 5, 0},
	0x59: {"MOV E,C", Transfer, 1, 5, 0},
	0x5a: {"MOV E,D", Transfer, 1, 5, 0},
	0x5b: {"MOV E,E", Transfer, 1, 5, 0},
	0x5c: {"MOV E,H", Transfer, 1, 5, 0},
	0x5d: {"MOV E,L", Transfer, 1, 5, 0},
	0x5e: {"MOV E,M", Transfer, 1, 7, 0},
	0x5f: {"MOV E,A", Transfer, 1, 5, 0},
	0x60: {"MOV H,B", Transfer, 1, 5, 0},
	0x61: {"MOV H,C", Transfer, 1, 5, 0},
	0x62: {"MOV H,D", Transfer, 1, 5, 0},
	0x63: {"MOV H,E", Transfer, 1, 5, 0},
	0x64: {"MOV H,H", Transfer, 1, 5, 0},
	0x65: {"MOV H,L", Transfer, 1, 5, 0},
	0x66: {"MOV H,M", Transfer, 1, 7, 0},
	0x67: {"MOV H,A", Transfer, 1, 5, 0},
	0x68: {"MOV L,B", Transfer, 1, 5, 0},
	0x69: {"MOV L,C", Transfer, 1, 5, 0},
	0x6a: {"MOV L,D", Transfer, 1, 5, 0},
	0x6b: {"MOV L,E", Transfer, 1, 5, 0},
	0x6c: {"MOV L,H", Transfer, 1, 5, 0},
	0x6d: {"MOV L,L", Transfer, 1, 5, 0},
	0x6e: {"MOV L,M", Transfer, 1, 7, 0},
	0x6f: {"MOV L,A", Transfer, 1, 5, 0},
	0x70: {"MOV M,B", Transfer, 1, 7, 0},
	0x71: {"MOV M,C", Transfer, 1, 7, 0},
	0x72: {"MOV M,D", Transfer, 1, 7, 0},
	0x73: {"MOV M,E", Transfer, 1, 7, 0},
	0x74: {"MOV M,H", Transfer, 1, 7, 0},
	0x75: {"MOV M,L", Transfer, 1, 7, 0},
	0x76: {"HLT", Control, 1, 7, 0},
	0x77: {"MOV M,A", Transfer, 1, 7, 0},
	0x78: {"MOV A,B", Transfer, 1, 5, 0},
	0x79: {"MOV A,C", Transfer, 1, 5, 0},
	0x7a: {"MOV A,D", Transfer, 1, 5, 0},
	0x7b: {"MOV A,E", Transfer, 1, 5, 0},
	0x7c: {"MOV A,H", Transfer, 1, 5, 0},
	0x7d: {"MOV A,L", Transfer, 1, 5, 0},
	0x7e: {"MOV A,M", Transfer, 1, 7, 0},
	0x7f: {"MOV A,A", Transfer, 1, 5, 0},
	0x80: {"ADD B", Arithmetic, 1, 4, 0},
	0x81: {"ADD C", Arithmetic, 1, 4, 0},
	0x82: {"ADD D", Arithmetic, 1, 4, 0},
	0x83: {"ADD E", Arithmetic, 1, 4, 0},
	0x84: {"ADD H", Arithmetic, 1, 4, 0},
	0x85: {"ADD L", Arithmetic, 1, 4, 0},
	0x86: {"ADD M", Arithmetic, 1, 7, 0},
	0x87: {"ADD A", Arithmetic, 1, 4, 0},
	0x88: {"ADC B", Arithmetic, 1, 4, 0},
	0x89: {"ADC C", Arithmetic, 1, 4, 0},
	0x8a: {"ADC D", Arithmetic, 1, 4, 0},
	0x8b: {"ADC E", Arithmetic, 1, 4, 0},
	0x8c: {"ADC H", Arithmetic, 1, 4, 0},
	0x8d: {"ADC L", Arithmetic, 1, 4, 0},
	0x8e: {"ADC M", Arithmetic, 1, 7, 0},
	0x8f: {"ADC A", Arithmetic, 1, 4, 0},
	0x90: {"SUB B", Arithmetic, 1, 4, 0},
	0x91: {"SUB C", Arithmetic, 1, 4, 0},
	0x92: {"SUB D", Arithmetic, 1, 4, 0},
	0x93: {"SUB E", Arithmetic, 1, 4, 0},
	0x94: {"SUB H", Arithmetic, 1, 4, 0},
	0x95: {"SUB L", Arithmetic, 1, 4, 0},
	0x96: {"SUB M", Arithmetic, 1, 7, 0},
	0x97: {"SUB A", Arithmetic, 1, 4, 0},
	0x98: {"SBB B", Arithmetic, 1, 4, 0},
	0x99: {"SBB C", Arithmetic, 1, 4, 0},
	0x9a: {"SBB D", Arithmetic, 1, 4, 0},
	0x9b: {"SBB E", Arithmetic, 1, 4, 0},
	0x9c: {"SBB H", Arithmetic, 1, 4, 0},
	0x9d: {"SBB L", Arithmetic, 1, 4, 0},
	0x9e: {"SBB M", Arithmetic, 1, 7, 0},
	0x9f: {"SBB A", Arithmetic, 1, 4, 0},
	0xa0: {"ANA B", Logical, 1, 4, 0},
	0xa1: {"ANA C", Logical, 1, 4, 0},
	0xa2: {"ANA D", Logical, 1, 4, 0},
	0xa3: {"ANA E", Logical, 1, 4, 0},
	0xa4: {"ANA H", Logical, 1, 4, 0},
	0xa5: {"ANA L", Logical, 1, 4, 0},
	0xa6: {"ANA M", Logical, 1, 7, 0},
	0xa7: {"ANA A", Logical, 1, 4, 0},
	0xa8: {"XRA B", Logical, 1, 4, 0},
	0xa9: {"XRA C", Logical, 1, 4, 0},
	0xaa: {"XRA D", Logical, 1, 4, 0},
	0xab: {"XRA E", Logical, 1, 4, 0},
	0xac: {"XRA H", Logical, 1, 4, 0},
	0xad: {"XRA L", Logical, 1, 4, 0},
	0xae: {"XRA M", Logical, 1, 7, 0},
	0xaf: {"XRA A", Logical, 1, 4, 0},
	0xb0: {"ORA B", Logical, 1, 4, 0},
	0xb1: {"ORA C", Logical, 1, 4, 0},
	0xb2: {"ORA D", Logical, 1, 4, 0},
	0xb3: {"ORA E", Logical, 1, 4, 0},
	0xb4: {"ORA H", Logical, 1, 4, 0},
	0xb5: {"ORA L", Logical, 1, 4, 0},
	0xb6: {"ORA M", Logical, 1, 7, 0},
	0xb7: {"ORA A", Logical, 1, 4, 0},
	0xb8: {"CMP B", Logical, 1, 4, 0},
	0xb9: {"CMP C", Logical, 1, 4, 0},
	0xba: {"CMP D", Logical, 1, 4, 0},
	0xbb: {"CMP E", Logical, 1, 4, 0},
	0xbc: {"CMP H", Logical, 1, 4, 0},
	0xbd: {"CMP L", Logical, 1, 4, 0},
	0xbe: {"CMP M", Logical, 1, 7, 0},
	0xbf: {"CMP A", Logical, 1, 4, 0},
	0xc0: {"RNZ", Branch, 1, 5, 11},
	0xc1: {"POP B", Stack, 1, 10, 0},
	0xc2: {"JNZ", Branch, 3, 10, 0},
	0xc3: {"JMP", Branch, 3, 10, 0},
	0xc4: {"CNZ", Branch, 3, 11, 17},
	0xc5: {"PUSH B", Stack, 1, 11, 0},
	0xc6: {"ADI", Arithmetic, 2, 7, 0},
	0xc7: {"RST 0", Branch, 1, 11, 0},
	0xc8: {"RZ", Branch, 1, 5, 11},
	0xc9: {"RET", Branch, 1, 10, 0},
	0xca: {"JZ", Branch, 3, 10, 0},
	0xcb: {},
	0xcc: {"CZ", Branch, 3, 11, 17},
	0xcd: {"CALL", Branch, 3, 17, 0},
	0xce: {"ACI", Arithmetic, 2, 7, 0},
	0xcf: {"RST 1", Branch, 1, 11, 0},
	0xd0: {"RNC", Branch, 1, 5, 11},
	0xd1: {"POP D", Stack, 1, 10, 0},
	0xd2: {"JNC", Branch, 3, 10, 0},
	0xd3: {"OUT", IO, 2, 10, 0},
	0xd4: {"CNC", Branch, 3, 11, 17},
	0xd5: {"PUSH D", Stack, 1, 11, 0},
	0xd6: {"SUI", Arithmetic, 2, 7, 0},
	0xd7: {"RST 2", Branch, 1, 11, 0},
	0xd8: {"RC", Branch, 1, 5, 11},
	0xd9: {},
	0xda: {"JC", Branch, 3, 10, 0},
	0xdb: {"IN", IO, 2, 10, 0},
	0xdc: {"CC", Branch, 3, 11, 17},
	0xdd: {},
	0xde: {"SBI", Arithmetic, 2, 7, 0},
	0xdf: {"RST 3", Branch, 1, 11, 0},
	0xe0: {"RPO", Branch, 1, 5, 11},
	0xe1: {"POP H", Stack, 1, 10, 0},
	0xe2: {"JPO", Branch, 3, 10, 0},
	0xe3: {"XTHL", Stack, 1, 18, 0},
	0xe4: {"CPO", Branch, 3, 11, 17},
	0xe5: {"PUSH H", Stack, 1, 11, 0},
	0xe6: {"ANI", Logical, 2, 7, 0},
	0xe7: {"RST 4", Branch, 1, 11, 0},
	0xe8: {"RPE", Branch, 1, 5, 11},
	0xe9: {"PCHL", Branch, 1, 5, 0},
	0xea: {"JPE", Branch, 3, 10, 0},
	0xeb: {"XCHG", Transfer, 1, 4, 0},
	0xec: {"CPE", Branch, 3, 11, 17},
	0xed: {},
	0xee: {"XRI", Logical, 2, 7, 0},
	0xef: {"RST 5", Branch, 1, 11, 0},
	0xf0: {"RP", Branch, 1, 5, 11},
	0xf1: {"POP PSW", Stack, 1, 10, 0},
	0xf2: {"JP", Branch, 3, 10, 0},
	0xf3: {"DI", Control, 1, 4, 0},
	0xf4: {"CP", Branch, 3, 11, 17},
	0xf5: {"PUSH PSW", Stack, 1, 11, 0},
	0xf6: {"ORI", Logical, 2, 7, 0},
	0xf7: {"RST 6", Branch, 1, 11, 0},
	0xf8: {"RM", Branch, 1, 5, 11},
	0xf9: {"SPHL", Stack, 1, 5, 0},
	0xfa: {"JM", Branch, 3, 10, 0},
	0xfb: {"EI", Control, 1, 4, 0},
	0xfc: {"CM", Branch, 3, 11, 17},
	0xfd: {},
	0xfe: {"CPI", Logical, 2, 7, 0},
	0xff: {"RST 7", Branch, 1, 11, 0},
}

// Lookup returns the description for the given opcode.
// Returns false if the opcode is not supported.
func Lookup(opcode byte) (*Opcode, bool) {
	op := &Opcodes[opcode]
	return op, op.Supported()
}

// Name returns the mnemonic for the given opcode.
// Returns false if the opcode is not recognized.
func Name(opcode byte) (string, bool) {
	op, ok := Lookup(opcode)
	if !ok {
		return "", false
	}
	return op.Name, true
}

// Size returns the length in bytes of the given opcode's instruction.
// Returns -1 if the opcode is not recognized.
func Size(opcode byte) int {
	op, ok := Lookup(opcode)
	if !ok {
		return -1
	}
	return op.Size
}
