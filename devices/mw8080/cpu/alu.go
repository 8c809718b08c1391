package cpu

// add returns a+b+carry and sets Z, S, P, C and AC.
// C is set when the unsigned sum exceeds 8 bits.
func add(f *Flags, a, b uint8, carry bool) uint8 {
	ci := bit(carry)
	sum := uint16(a) + uint16(b) + uint16(ci)
	f.setZSP(uint8(sum))
	f.C = sum > 0xff
	f.AC = (a&0xf)+(b&0xf)+ci > 0xf
	return uint8(sum)
}

// sub returns a-b-borrow and sets Z, S, P, C and AC.
// C is set when a borrow occurred. The hardware subtracts by adding the
// one's complement of b, so AC is the carry out of bit 3 of that sum.
func sub(f *Flags, a, b uint8, borrow bool) uint8 {
	bi := bit(borrow)
	diff := int(a) - int(b) - int(bi)
	f.setZSP(uint8(diff))
	f.C = diff < 0
	f.AC = (a&0xf)+(^b&0xf)+(1-bi) > 0xf
	return uint8(diff)
}

// and returns a&b, sets Z, S, P and clears C.
// AC reflects bit 3 of a|b, as the 8080 computes it.
func and(f *Flags, a, b uint8) uint8 {
	v := a & b
	f.setZSP(v)
	f.C = false
	f.AC = (a|b)&0x08 != 0
	return v
}

// xor returns a^b, sets Z, S, P and clears C and AC.
func xor(f *Flags, a, b uint8) uint8 {
	v := a ^ b
	f.setZSP(v)
	f.C = false
	f.AC = false
	return v
}

// or returns a|b, sets Z, S, P and clears C and AC.
func or(f *Flags, a, b uint8) uint8 {
	v := a | b
	f.setZSP(v)
	f.C = false
	f.AC = false
	return v
}

// inr returns v+1 and sets Z, S, P and AC. C is left untouched.
func inr(f *Flags, v uint8) uint8 {
	v++
	f.setZSP(v)
	f.AC = v&0xf == 0
	return v
}

// dcr returns v-1 and sets Z, S, P and AC. C is left untouched.
func dcr(f *Flags, v uint8) uint8 {
	v--
	f.setZSP(v)
	f.AC = v&0xf != 0xf
	return v
}

// dad returns a+b and sets C to the carry out of bit 15. No other flag changes.
func dad(f *Flags, a, b uint16) uint16 {
	sum := uint32(a) + uint32(b)
	f.C = sum > 0xffff
	return uint16(sum)
}

// daa adjusts v to packed BCD after an addition.
// C is set when the high digit needed correcting and is never cleared.
func daa(f *Flags, v uint8) uint8 {
	var correction uint8
	carry := f.C
	lo := v & 0x0f
	hi := v >> 4

	if f.AC || lo > 9 {
		correction += 0x06
	}

	if f.C || hi > 9 || (hi >= 9 && lo > 9) {
		correction += 0x60
		carry = true
	}

	v = add(f, v, correction, false)
	f.C = carry
	return v
}

// rlc rotates v left. Bit 7 moves into bit 0 and C.
func rlc(f *Flags, v uint8) uint8 {
	f.C = v&0x80 != 0
	return v<<1 | v>>7
}

// rrc rotates v right. Bit 0 moves into bit 7 and C.
func rrc(f *Flags, v uint8) uint8 {
	f.C = v&0x01 != 0
	return v>>1 | v<<7
}

// ral rotates v left through the carry: the old C moves into bit 0, bit 7 into C.
func ral(f *Flags, v uint8) uint8 {
	c := bit(f.C)
	f.C = v&0x80 != 0
	return v<<1 | c
}

// rar rotates v right through the carry: the old C moves into bit 7, bit 0 into C.
func rar(f *Flags, v uint8) uint8 {
	c := bit(f.C)
	f.C = v&0x01 != 0
	return v>>1 | c<<7
}

// bit returns 1 if v is true, 0 otherwise.
func bit(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}
