package shifter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShift(t *testing.T) {
	d := New()
	assert.NoError(t, d.Startup(nil))

	d.Out(PortData, 0x12)
	d.Out(PortData, 0x34)
	assert.Equal(t, uint16(0x3412), d.Value())

	d.Out(PortOffset, 5)
	v, ok := d.In(PortResult)
	assert.True(t, ok)
	assert.Equal(t, uint8((0x3412>>3)&0xff), v)
}

func TestOffsets(t *testing.T) {
	d := New()
	d.Out(PortData, 0xff)
	d.Out(PortData, 0x81)

	for amount, want := range []uint8{0x81, 0x03, 0x07, 0x0f, 0x1f, 0x3f, 0x7f, 0xff} {
		d.Out(PortOffset, uint8(amount))
		v, _ := d.In(PortResult)
		assert.Equal(t, want, v, "amount %d", amount)
	}

	// Only the low 3 bits select the offset.
	d.Out(PortOffset, 0xf9)
	v, _ := d.In(PortResult)
	assert.Equal(t, uint8(0x03), v)
}

func TestUnhandledPorts(t *testing.T) {
	d := New()
	d.Out(PortData, 0xaa)

	for _, port := range []uint8{0, 1, 2, 4, 5, 6, 7, 0xff} {
		_, ok := d.In(port)
		assert.False(t, ok, "port %d", port)
	}

	d.Out(6, 0x55)
	d.Out(3, 0x55)
	assert.Equal(t, uint16(0xaa00), d.Value())
}

func TestStartupClears(t *testing.T) {
	d := New()
	d.Out(PortData, 0xaa)
	d.Out(PortOffset, 3)
	assert.NoError(t, d.Startup(nil))

	v, _ := d.In(PortResult)
	assert.Equal(t, uint8(0), v)
	assert.Equal(t, uint16(0), d.Value())
}
