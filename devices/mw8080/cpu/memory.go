package cpu

// MemoryCapacity defines the size of the address space.
const MemoryCapacity = 0x10000

// Well known addresses of the board's memory map.
const (
	ROMStart  = 0x0000 // Start of program ROM.
	RAMStart  = 0x2000 // Start of work RAM.
	VRAMStart = 0x2400 // Start of video RAM.
	VRAMEnd   = 0x4000 // End of video RAM (exclusive).
)

// Memory defines the system's memory bank.
// Addresses are 16 bits wide, so every access wraps around the address space.
type Memory []byte

// NewMemory creates a new, zeroed memory bank.
func NewMemory() Memory {
	return make(Memory, MemoryCapacity)
}

// SetU8 sets the 8-bit value at the given address.
func (m Memory) SetU8(addr uint16, value uint8) {
	m[addr] = value
}

// U8 returns the 8-bit value at the given address.
func (m Memory) U8(addr uint16) uint8 {
	return m[addr]
}

// SetU16 sets the little-endian 16-bit value at the given address.
func (m Memory) SetU16(addr, value uint16) {
	m[addr] = byte(value)
	m[addr+1] = byte(value >> 8)
}

// U16 returns the little-endian 16-bit value at the given address.
func (m Memory) U16(addr uint16) uint16 {
	return uint16(m[addr+1])<<8 | uint16(m[addr])
}

// Write writes len(p) bytes from p into memory, starting at the given address.
// Data running past the end of the address space is dropped.
// Returns the number of bytes written.
func (m Memory) Write(addr uint16, p []byte) int {
	return copy(m[addr:], p)
}

// Read reads len(p) bytes from memory into p, starting at the given address.
// Returns the number of bytes read.
func (m Memory) Read(addr uint16, p []byte) int {
	return copy(p, m[addr:])
}

// Clear zeroes the whole memory bank.
func (m Memory) Clear() {
	for i := range m {
		m[i] = 0
	}
}
