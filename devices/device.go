package devices

import (
	"log"

	"github.com/pkg/errors"
)

// IntFunc represents a Hardware Interrupt handler.
// The argument is the RST vector (0-7) the device requests.
type IntFunc func(int)

// Device represents a peripheral device attached to the board.
type Device interface {
	// ID yields the manufacturer and serial number for the device.
	ID() ID

	// Startup initializes internal resources.
	//
	// IntFunc represents an interrupt handler the device can
	// use to send interrupt requests to the CPU.
	Startup(IntFunc) error

	// Shutdown cleans up internal resources.
	Shutdown() error
}

// PortReader is implemented by devices which drive one or more input ports.
type PortReader interface {
	// In returns the value the device places on the given port.
	// Returns false if the device does not drive that port.
	In(port uint8) (uint8, bool)
}

// PortWriter is implemented by devices which latch values written to output ports.
type PortWriter interface {
	// Out delivers a value written to the given port.
	// Devices ignore ports they do not latch.
	Out(port, value uint8)
}

// Map contains a list of registered peripherals.
type Map []Device

// Connect adds the given device to the device map.
// Returns false if the device type is already present in the set.
func (dm *Map) Connect(dev Device) bool {
	if (*dm).Find(dev.ID()) > -1 {
		return false
	}

	*dm = append(*dm, dev)
	return true
}

// In returns the value on the given input port. Values from all devices
// driving the port are combined. Unclaimed ports read as 0.
func (dm Map) In(port uint8) uint8 {
	var value uint8
	for _, dev := range dm {
		if r, ok := dev.(PortReader); ok {
			if v, ok := r.In(port); ok {
				value |= v
			}
		}
	}
	return value
}

// Out delivers the value written to the given output port to all devices.
func (dm Map) Out(port, value uint8) {
	for _, dev := range dm {
		if w, ok := dev.(PortWriter); ok {
			w.Out(port, value)
		}
	}
}

// Startup initializes internal resources.
func (dm Map) Startup(f IntFunc) error {
	var errorset ErrorSet

	for _, dev := range dm {
		log.Println(dev.ID(), "startup")
		if err := dev.Startup(f); err != nil {
			errorset.Append(errors.Wrapf(err, "%s", dev.ID()))
		}
	}

	if errorset.Len() == 0 {
		return nil
	}

	return errorset
}

// Shutdown cleans up internal resources.
func (dm Map) Shutdown() error {
	var errorset ErrorSet

	for _, dev := range dm {
		log.Println(dev.ID(), "shutdown")
		if err := dev.Shutdown(); err != nil {
			errorset.Append(errors.Wrapf(err, "%s", dev.ID()))
		}
	}

	if errorset.Len() == 0 {
		return nil
	}

	return errorset
}

// Find returns the index for the device with the given id.
// Returns -1 if it can't be found.
func (dm Map) Find(id ID) int {
	for i, dev := range dm {
		if dev.ID() == id {
			return i
		}
	}
	return -1
}
