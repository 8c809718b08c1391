// Package shifter implements the 16-bit barrel shift register of the Midway 8080 board.
//
// Games write bytes to port 4, which shift into the register from the top.
// A write to port 2 selects the bit offset of the 8-bit window read from port 3.
package shifter

import (
	"github.com/hexaflex/invaders/devices"
)

// Port numbers handled by the device.
const (
	PortOffset = 2 // Write: shift amount in the low 3 bits.
	PortResult = 3 // Read: shifted result.
	PortData   = 4 // Write: data byte shifted in from the top.
)

// Device defines the shift register state.
type Device struct {
	shift  uint16 // Shift register contents.
	amount uint8  // Result offset, 0-7.
}

var (
	_ devices.Device     = &Device{}
	_ devices.PortReader = &Device{}
	_ devices.PortWriter = &Device{}
)

// New creates a new device.
func New() *Device {
	return &Device{}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.MW8080, 0x0002)
}

// Startup clears the register.
func (d *Device) Startup(devices.IntFunc) error {
	d.shift = 0
	d.amount = 0
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	return nil
}

// In returns the 8-bit window of the register selected by the last offset write.
func (d *Device) In(port uint8) (uint8, bool) {
	if port != PortResult {
		return 0, false
	}
	return uint8(d.shift >> (8 - d.amount)), true
}

// Out latches the shift amount or shifts a new data byte in.
func (d *Device) Out(port, value uint8) {
	switch port {
	case PortOffset:
		d.amount = value & 7
	case PortData:
		d.shift = uint16(value)<<8 | d.shift>>8
	}
}

// Value returns the raw register contents.
func (d *Device) Value() uint16 {
	return d.shift
}
