package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/invaders/clock"
	"github.com/hexaflex/invaders/machine"
	"github.com/hexaflex/invaders/rom"
)

func newController(t *testing.T, code ...byte) (*Controller, *clock.Manual) {
	t.Helper()

	var img rom.Image
	img.Add("test", 0, code)

	src := clock.NewManual(time.Unix(0, 0))
	ctl := NewController(machine.New(nil, nil), clock.NewPacer(src, 6000, 60))
	require.NoError(t, ctl.Startup(&img))
	t.Cleanup(func() { ctl.Shutdown() })
	return ctl, src
}

func TestControllerPacing(t *testing.T) {
	ctl, src := newController(t, 0xc3, 0x00, 0x00) // JMP 0
	ctx := context.Background()

	// Nothing runs while paused.
	src.Advance(time.Second)
	require.NoError(t, ctl.Update(ctx))
	assert.Equal(t, uint64(0), ctl.machine.Cycles())

	ctl.Start()
	require.NoError(t, ctl.Update(ctx))
	assert.Equal(t, uint64(0), ctl.machine.Cycles())

	src.Advance(time.Second / 60)
	require.NoError(t, ctl.Update(ctx))
	assert.Equal(t, uint64(100), ctl.machine.Cycles())
	assert.Equal(t, uint64(1), ctl.machine.Frames())
}

func TestControllerHalt(t *testing.T) {
	ctl, src := newController(t, 0x00, 0x76)

	ctl.Start()
	src.Advance(time.Second / 30)
	require.NoError(t, ctl.Update(context.Background()))
	assert.False(t, ctl.Running())
}

func TestControllerError(t *testing.T) {
	ctl, src := newController(t, 0xd9)

	ctl.Start()
	src.Advance(time.Second / 60)
	assert.Error(t, ctl.Update(context.Background()))
	assert.False(t, ctl.Running())
}

func TestControllerReset(t *testing.T) {
	ctl, _ := newController(t, 0x3c, 0x76) // INR A; HLT

	require.NoError(t, ctl.Step())
	assert.Equal(t, uint8(1), ctl.machine.CPU().Registers().A)

	require.NoError(t, ctl.Reset())
	assert.Equal(t, uint8(0), ctl.machine.CPU().Registers().A)
	assert.Equal(t, uint16(0), ctl.machine.CPU().Registers().PC)
}

func TestPrettyFrequency(t *testing.T) {
	assert.Equal(t, "2.00 MHz", prettyFrequency(2e6))
	assert.Equal(t, "1.50 KHz", prettyFrequency(1500))
	assert.Equal(t, "12.00 Hz", prettyFrequency(12))
}
