package arch

import "strings"

// Register indices as encoded in the DDD and SSS opcode fields.
const (
	B = 0
	C = 1
	D = 2
	E = 3
	H = 4
	L = 5
	M = 6 // Memory at the address in HL.
	A = 7
)

// Register pair indices as encoded in the RP opcode field.
const (
	BC  = 0
	DE  = 1
	HL  = 2
	SP  = 3 // PSW when used by PUSH and POP.
	PSW = 3
)

// Condition indices as encoded in the CCC opcode field.
const (
	NZ = 0 // Not zero.
	Z  = 1 // Zero.
	NC = 2 // No carry.
	CY = 3 // Carry.
	PO = 4 // Parity odd.
	PE = 5 // Parity even.
	P  = 6 // Plus.
	MI = 7 // Minus.
)

var (
	registerNames  = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}
	pairNames      = [4]string{"BC", "DE", "HL", "SP"}
	conditionNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
)

// IsRegister returns true if the given name represents a known register.
func IsRegister(name string) bool {
	return RegisterIndex(name) > -1
}

// RegisterIndex returns the index for the given register.
// Returns -1 if the name is not recognized.
func RegisterIndex(name string) int {
	name = strings.ToUpper(name)
	for i, v := range registerNames {
		if v == name {
			return i
		}
	}
	return -1
}

// RegisterName returns the name associated with the given register index.
// Returns "" if the index is not recognized.
func RegisterName(n int) string {
	if n < 0 || n >= len(registerNames) {
		return ""
	}
	return registerNames[n]
}

// PairIndex returns the index for the given register pair.
// Returns -1 if the name is not recognized.
func PairIndex(name string) int {
	switch strings.ToUpper(name) {
	case "BC", "B":
		return BC
	case "DE", "D":
		return DE
	case "HL", "H":
		return HL
	case "SP", "PSW":
		return SP
	}
	return -1
}

// PairName returns the name associated with the given register pair index.
// Returns "" if the index is not recognized.
func PairName(n int) string {
	if n < 0 || n >= len(pairNames) {
		return ""
	}
	return pairNames[n]
}

// ConditionName returns the mnemonic suffix for the given condition index.
// Returns "" if the index is not recognized.
func ConditionName(n int) string {
	if n < 0 || n >= len(conditionNames) {
		return ""
	}
	return conditionNames[n]
}
