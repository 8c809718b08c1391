package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func read(t *testing.T, d *Device, port uint8) uint8 {
	t.Helper()
	v, ok := d.In(port)
	require.True(t, ok, "port %d", port)
	return v
}

func TestIdle(t *testing.T) {
	d := New(false)
	require.NoError(t, d.Startup(nil))

	assert.Equal(t, uint8(0x08), read(t, d, Port1))
	assert.Equal(t, uint8(0x00), read(t, d, Port2))

	for _, port := range []uint8{0, 3, 4, 0xff} {
		_, ok := d.In(port)
		assert.False(t, ok, "port %d", port)
	}
}

func TestButtonBits(t *testing.T) {
	for _, v := range []struct {
		button Button
		port   uint8
		want   uint8
	}{
		{Coin, Port1, 0x09},
		{P2Start, Port1, 0x0a},
		{P1Start, Port1, 0x0c},
		{P1Fire, Port1, 0x18},
		{P1Left, Port1, 0x28},
		{P1Right, Port1, 0x48},
		{Tilt, Port2, 0x04},
		{P2Fire, Port2, 0x10},
		{P2Left, Port2, 0x20},
		{P2Right, Port2, 0x40},
	} {
		d := New(false)
		d.Press(v.button)
		assert.Equal(t, v.want, read(t, d, v.port), v.button.String())

		idle := uint8(0x08)
		if v.port == Port2 {
			idle = 0
		}

		d.Release(v.button)
		assert.Equal(t, idle, read(t, d, v.port), v.button.String())
	}
}

func TestCombinedButtons(t *testing.T) {
	d := New(false)
	d.Press(Coin)
	d.Press(P1Fire)
	d.Press(P1Right)
	assert.Equal(t, uint8(0x59), read(t, d, Port1))

	d.Release(Coin)
	assert.Equal(t, uint8(0x58), read(t, d, Port1))

	// Unknown buttons are ignored.
	d.Press(Button(42))
	assert.Equal(t, uint8(0x58), read(t, d, Port1))
}

func TestDIPSwitches(t *testing.T) {
	d := New(false)

	for ships, want := range map[int]uint8{0: 0, 3: 0, 4: 1, 5: 2, 6: 3, 9: 3} {
		d.SetShips(ships)
		assert.Equal(t, want, read(t, d, Port2), "%d ships", ships)
	}

	d.SetShips(3)
	d.SetExtraShipAt1000(true)
	assert.Equal(t, uint8(0x08), read(t, d, Port2))

	d.SetCoinInfo(false)
	assert.Equal(t, uint8(0x88), read(t, d, Port2))

	d.SetCoinInfo(true)
	d.SetExtraShipAt1000(false)
	assert.Equal(t, uint8(0x00), read(t, d, Port2))
}

func TestStartupReleasesButtons(t *testing.T) {
	d := New(false)
	d.SetShips(5)
	d.Press(P2Fire)
	require.NoError(t, d.Startup(nil))

	assert.Equal(t, uint8(0x02), read(t, d, Port2))
}
