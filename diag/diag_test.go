package diag

import (
	"bytes"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/invaders/devices/mw8080/cpu"
	"github.com/hexaflex/invaders/rom"
)

func image(code ...byte) *rom.Image {
	img := &rom.Image{Entry: rom.DiagOrigin}
	img.Add("test", rom.DiagOrigin, code)
	return img
}

// hello prints "HELLO!" through both BDOS functions, then warm boots.
var hello = []byte{
	0x0e, 0x09,       // MVI C, 9
	0x11, 0x12, 0x01, // LXI D, msg
	0xcd, 0x05, 0x00, // CALL BDOS
	0x0e, 0x02,       // MVI C, 2
	0x1e, '!',        // MVI E, '!'
	0xcd, 0x05, 0x00, // CALL BDOS
	0xc3, 0x00, 0x00, // JMP WBOOT
	'H', 'E', 'L', 'L', 'O', '$',
}

func TestBDOS(t *testing.T) {
	var console bytes.Buffer

	h := New(image(hello...), &console, nil)
	out, err := h.Run(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, "HELLO!", out)
	assert.Equal(t, "HELLO!", console.String())
	assert.True(t, h.Cycles() > 0)
}

func TestRunTwice(t *testing.T) {
	h := New(image(hello...), nil, nil)

	for i := 0; i < 2; i++ {
		out, err := h.Run(context.Background(), 0)
		require.NoError(t, err)
		assert.Equal(t, "HELLO!", out)
	}
}

func TestPatch(t *testing.T) {
	h := New(image(hello...), nil, nil)

	// Replace the first character of the message.
	h.Patch(Patch{0x0112, []byte{'J'}})

	out, err := h.Run(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "JELLO!", out)
}

func TestHalt(t *testing.T) {
	h := New(image(0x0e, 0x02, 0x1e, 'x', 0xcd, 0x05, 0x00, 0x76), nil, nil)

	out, err := h.Run(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "x", out)
	assert.True(t, h.CPU().Halted())
}

func TestCycleLimit(t *testing.T) {
	h := New(image(0xc3, 0x00, 0x01), nil, nil)

	_, err := h.Run(context.Background(), 1000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycleLimit))
	assert.True(t, h.Cycles() >= 1000)
}

func TestUnsupportedOpcode(t *testing.T) {
	h := New(image(0x00, 0xed), nil, nil)

	_, err := h.Run(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cpu.ErrUnsupportedOpcode))

	cerr, ok := err.(*cpu.Error)
	require.True(t, ok)
	assert.Equal(t, uint16(0x0101), cerr.IP)
}

func TestCancel(t *testing.T) {
	h := New(image(0xc3, 0x00, 0x01), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Run(ctx, 0)
	assert.Equal(t, context.Canceled, err)
}
