package monitor

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/invaders/devices/mw8080/cpu"
)

// setup returns a started cpu running the given code at address 0.
func setup(t *testing.T, code ...byte) (*Monitor, *cpu.CPU, *bytes.Buffer) {
	t.Helper()

	c := cpu.New(nil)
	require.NoError(t, c.Startup())
	t.Cleanup(func() { c.Shutdown() })

	c.Memory().Write(0, code)

	var out bytes.Buffer
	return New(c, &out), c, &out
}

var program = []byte{
	0x3e, 0x01,       // 0000 MVI A, $01
	0x3c,             // 0002 INR A
	0x3c,             // 0003 INR A
	0xc3, 0x02, 0x00, // 0004 JMP $0002
}

func TestStep(t *testing.T) {
	m, c, out := setup(t, program...)

	quit, err := m.Exec("s")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, uint8(1), c.Registers().A)
	assert.Contains(t, out.String(), "MVI A,$01")

	_, err = m.Exec("s 3")
	require.NoError(t, err)
	assert.Equal(t, uint8(3), c.Registers().A)
	assert.Equal(t, uint16(0x0002), c.Registers().PC)
	assert.Equal(t, uint64(7+5+5+10), m.Cycles())
}

func TestStepHalt(t *testing.T) {
	m, c, out := setup(t, 0x00, 0x76)

	_, err := m.Exec("s 5")
	require.NoError(t, err)
	assert.True(t, c.Halted())
	assert.Contains(t, out.String(), "halted")
}

func TestStepError(t *testing.T) {
	m, _, _ := setup(t, 0xdd)

	_, err := m.Exec("s")
	assert.True(t, errors.Is(err, cpu.ErrUnsupportedOpcode))
}

func TestRegisters(t *testing.T) {
	m, c, out := setup(t, program...)
	c.Registers().SetBC(0x1234)
	c.Flags().Z = true

	_, err := m.Exec("r")
	require.NoError(t, err)
	assert.Equal(t, "A=00 BC=1234 DE=0000 HL=0000 SP=0000 PC=0000 -Z---  MVI A,$01\n", out.String())
}

func TestDisassemble(t *testing.T) {
	m, _, out := setup(t, program...)

	_, err := m.Exec("d 0 3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "0000  3E 01     MVI A,$01", lines[0])
	assert.Equal(t, "0002  3C        INR A", lines[1])
	assert.Equal(t, "0003  3C        INR A", lines[2])

	// Listings continue where the last one ended.
	out.Reset()
	_, err = m.Exec("d $ 1")
	assert.Error(t, err)

	_, err = m.Exec("d")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "0004  C3 02 00  JMP $0002\n"))
}

func TestDump(t *testing.T) {
	m, c, out := setup(t)
	c.Memory().Write(0x2000, []byte("HELLO"))

	_, err := m.Exec("m $2000 5")
	require.NoError(t, err)
	assert.Equal(t, "2000  48 45 4C 4C 4F  HELLO\n", out.String())

	out.Reset()
	_, err = m.Exec("m 0x2000 18")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "2010  00 00"))

	_, err = m.Exec("m")
	assert.Error(t, err)

	_, err = m.Exec("m 2000 0")
	assert.Error(t, err)
}

func TestBreakpoints(t *testing.T) {
	m, c, out := setup(t, program...)

	_, err := m.Exec("b 4")
	require.NoError(t, err)
	assert.Equal(t, []uint16{4}, m.Breakpoints())

	_, err = m.Exec("g")
	require.NoError(t, err)
	assert.Equal(t, uint16(4), c.Registers().PC)
	assert.Equal(t, uint8(3), c.Registers().A)
	assert.Contains(t, out.String(), "break at 0004")

	// Running again from a breakpoint moves past it.
	_, err = m.Exec("g")
	require.NoError(t, err)
	assert.Equal(t, uint16(4), c.Registers().PC)
	assert.Equal(t, uint8(5), c.Registers().A)

	_, err = m.Exec("b 4")
	require.NoError(t, err)
	assert.Empty(t, m.Breakpoints())
}

func TestRunLimit(t *testing.T) {
	m, c, out := setup(t, program...)
	m.RunLimit = 100

	_, err := m.Exec("g 2")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "stopped at")
	assert.True(t, c.Registers().A > 0)
}

func TestRunHalt(t *testing.T) {
	m, c, out := setup(t, 0x00, 0x00, 0x76)

	_, err := m.Exec("g")
	require.NoError(t, err)
	assert.True(t, c.Halted())
	assert.Contains(t, out.String(), "halted at 0002")
}

func TestUnknownCommand(t *testing.T) {
	m, _, _ := setup(t)

	_, err := m.Exec("x 12")
	assert.True(t, errors.Is(err, ErrUnknownCommand))

	quit, err := m.Exec("   ")
	assert.NoError(t, err)
	assert.False(t, quit)
}

func TestScript(t *testing.T) {
	m, c, out := setup(t, program...)

	err := m.Script(context.Background(), strings.NewReader("s 2\nbogus\nq\ns\n"))
	require.NoError(t, err)
	assert.Equal(t, uint8(2), c.Registers().A)
	assert.Contains(t, out.String(), "unknown command")
}
