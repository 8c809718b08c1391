package machine

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/invaders/devices/mw8080/cpu"
	"github.com/hexaflex/invaders/devices/mw8080/input"
	"github.com/hexaflex/invaders/rom"
)

// start creates a running machine with the given code at address 0.
func start(t *testing.T, code ...byte) *Machine {
	t.Helper()

	var img rom.Image
	img.Add("test", 0, code)

	m := New(nil, nil)
	m.Load(&img)
	require.NoError(t, m.Startup())
	t.Cleanup(func() { m.Shutdown() })
	return m
}

func TestFrameInterrupts(t *testing.T) {
	m := start(t,
		0x31, 0x00, 0x24, //      LXI SP, $2400
		0xfb,             //      EI
		0xc3, 0x04, 0x00, // loop JMP loop
		0x00,             //      NOP
		0x04, 0xfb, 0xc9, // $08  INR B; EI; RET
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x0c, 0xfb, 0xc9, // $10  INR C; EI; RET
	)

	ctx := context.Background()
	require.NoError(t, m.RunFrame(ctx))

	regs := m.CPU().Registers()
	assert.Equal(t, uint8(1), regs.B)
	assert.Equal(t, uint8(0), regs.C)

	// The vblank request is serviced at the start of the next frame.
	require.NoError(t, m.RunFrame(ctx))
	assert.Equal(t, uint8(2), regs.B)
	assert.Equal(t, uint8(1), regs.C)

	assert.Equal(t, uint64(2), m.Frames())
	assert.True(t, m.Cycles() >= uint64(2*DefaultCyclesPerFrame))
	assert.True(t, m.Cycles() < uint64(2*DefaultCyclesPerFrame+20))
}

func TestInterruptsIgnoredWhileDisabled(t *testing.T) {
	m := start(t,
		0xc3, 0x00, 0x00, // loop JMP loop
	)

	require.NoError(t, m.RunFrame(context.Background()))
	assert.Equal(t, uint16(0x0000), m.CPU().Registers().PC)
	assert.Equal(t, uint16(0x0000), m.CPU().Registers().SP)
}

func TestShiftRegister(t *testing.T) {
	m := start(t,
		0x3e, 0x12, // MVI A, $12
		0xd3, 0x04, // OUT 4
		0x3e, 0x34, // MVI A, $34
		0xd3, 0x04, // OUT 4
		0x3e, 0x05, // MVI A, 5
		0xd3, 0x02, // OUT 2
		0xdb, 0x03, // IN 3
		0x76,       // HLT
	)

	err := m.RunFrame(context.Background())
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, uint8((0x3412>>3)&0xff), m.CPU().Registers().A)
	assert.True(t, m.CPU().Halted())
}

func TestInputPorts(t *testing.T) {
	in := input.New(false)
	in.SetShips(4)

	var img rom.Image
	img.Add("test", 0, []byte{
		0xdb, 0x01, // IN 1
		0x47,       // MOV B, A
		0xdb, 0x02, // IN 2
		0x76,       // HLT
	})

	m := New(nil, in)
	m.Load(&img)
	require.NoError(t, m.Startup())
	defer m.Shutdown()

	m.Input().Press(input.Coin)

	assert.Equal(t, io.EOF, m.RunFrame(context.Background()))
	assert.Equal(t, uint8(0x09), m.CPU().Registers().B)
	assert.Equal(t, uint8(0x01), m.CPU().Registers().A)
}

func TestRunFrameCancel(t *testing.T) {
	m := start(t, 0xc3, 0x00, 0x00)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, context.Canceled, m.RunFrame(ctx))
	assert.Equal(t, uint64(0), m.Cycles())
}

func TestRunFrameError(t *testing.T) {
	m := start(t, 0x00, 0xdd)

	err := m.RunFrame(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, cpu.ErrUnsupportedOpcode)
	assert.Equal(t, uint16(1), m.CPU().Registers().PC)
}

func TestLoadWhileRunning(t *testing.T) {
	m := New(nil, nil)
	require.NoError(t, m.Startup())
	defer m.Shutdown()

	img, entry := &rom.Image{Entry: 0x0100}, uint16(0x0100)
	img.Add("late", entry, []byte{0x76})
	m.Load(img)

	assert.Equal(t, entry, m.CPU().Registers().PC)
	_, err := m.Step()
	assert.Equal(t, io.EOF, err)
}

func TestVRAM(t *testing.T) {
	m := start(t,
		0x3e, 0xff,       // MVI A, $ff
		0x32, 0x00, 0x24, // STA $2400
		0x32, 0xff, 0x3f, // STA $3fff
		0x76,             // HLT
	)

	assert.Equal(t, io.EOF, m.RunFrame(context.Background()))

	vram := m.VRAM()
	require.Len(t, vram, 0x1c00)
	assert.Equal(t, byte(0xff), vram[0])
	assert.Equal(t, byte(0xff), vram[len(vram)-1])
	assert.Equal(t, byte(0), vram[1])
}
