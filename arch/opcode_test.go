package arch

import "testing"

var undocumented = map[byte]bool{
	0x08: true, 0x10: true, 0x18: true, 0x20: true, 0x28: true, 0x30: true,
	0x38: true, 0xcb: true, 0xd9: true, 0xdd: true, 0xed: true, 0xfd: true,
}

func TestOpcodeTable(t *testing.T) {
	for i := 0; i < len(Opcodes); i++ {
		op := &Opcodes[i]

		if undocumented[byte(i)] {
			if op.Supported() || op.Name != "" {
				t.Fatalf("opcode %02x: expected no entry; have %+v", i, *op)
			}
			continue
		}

		if !op.Supported() {
			t.Fatalf("opcode %02x: missing entry", i)
		}

		if op.Name == "" {
			t.Fatalf("opcode %02x: missing name", i)
		}

		if op.Size < 1 || op.Size > 3 {
			t.Fatalf("opcode %02x (%s): invalid size %d", i, op.Name, op.Size)
		}

		if op.Cycles <= 0 {
			t.Fatalf("opcode %02x (%s): invalid cycle count %d", i, op.Name, op.Cycles)
		}

		if op.Taken != 0 && op.Taken <= op.Cycles {
			t.Fatalf("opcode %02x (%s): taken cost %d not above base cost %d", i, op.Name, op.Taken, op.Cycles)
		}
	}
}

func TestOpcodeCycles(t *testing.T) {
	for _, v := range []struct {
		opcode        byte
		cycles, taken int
	}{
		{0x00, 4, 0},   // NOP
		{0x01, 10, 0},  // LXI B
		{0x22, 16, 0},  // SHLD
		{0x34, 10, 0},  // INR M
		{0x41, 5, 0},   // MOV B,C
		{0x46, 7, 0},   // MOV B,M
		{0x76, 7, 0},   // HLT
		{0x86, 7, 0},   // ADD M
		{0xc0, 5, 11},  // RNZ
		{0xc2, 10, 0},  // JNZ
		{0xc4, 11, 17}, // CNZ
		{0xc5, 11, 0},  // PUSH B
		{0xc9, 10, 0},  // RET
		{0xcd, 17, 0},  // CALL
		{0xe3, 18, 0},  // XTHL
		{0xeb, 4, 0},   // XCHG
	} {
		op := Opcodes[v.opcode]
		if op.Cycles != v.cycles || op.Taken != v.taken {
			t.Fatalf("opcode %02x (%s): cycles mismatch:\nwant: %d/%d\nhave: %d/%d",
				v.opcode, op.Name, v.cycles, v.taken, op.Cycles, op.Taken)
		}
	}
}

func TestName(t *testing.T) {
	if name, ok := Name(0x7e); !ok || name != "MOV A,M" {
		t.Fatalf("expected MOV A,M; have %q (%v)", name, ok)
	}

	if _, ok := Name(0xdd); ok {
		t.Fatalf("expected 0xdd to be unknown")
	}

	if Size(0xdd) != -1 {
		t.Fatalf("expected size -1 for 0xdd")
	}
}

func TestDisassemble(t *testing.T) {
	mem := []byte{
		0x00,             // NOP
		0x3e, 0x12,       // MVI A,$12
		0x21, 0x34, 0x12, // LXI H,$1234
		0xc3, 0xcd, 0xab, // JMP $ABCD
		0xdb, 0x01,       // IN $01
		0xdd,             // DB $DD
		0xcf,             // RST 1
	}

	for _, v := range []struct {
		addr uint16
		text string
		size int
	}{
		{0, "NOP", 1},
		{1, "MVI A,$12", 2},
		{3, "LXI H,$1234", 3},
		{6, "JMP $ABCD", 3},
		{9, "IN $01", 2},
		{11, "DB $DD", 1},
		{12, "RST 1", 1},
	} {
		text, size := Disassemble(mem, v.addr)
		if text != v.text || size != v.size {
			t.Fatalf("disassembly mismatch at %04x:\nwant: %q (%d)\nhave: %q (%d)", v.addr, v.text, v.size, text, size)
		}
	}
}

func TestRegisterNames(t *testing.T) {
	for i := 0; i < 8; i++ {
		if RegisterIndex(RegisterName(i)) != i {
			t.Fatalf("register %d does not round-trip through %q", i, RegisterName(i))
		}
	}

	if IsRegister("X") {
		t.Fatalf("expected X to be unknown")
	}

	if PairIndex("psw") != PSW || PairName(HL) != "HL" || ConditionName(PE) != "PE" {
		t.Fatalf("pair or condition name mismatch")
	}
}
