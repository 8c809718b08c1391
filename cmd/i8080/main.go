package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/hexaflex/invaders/arch"
	"github.com/hexaflex/invaders/devices/mw8080/cpu"
	"github.com/hexaflex/invaders/diag"
	"github.com/hexaflex/invaders/monitor"
	"github.com/hexaflex/invaders/rom"
)

func main() {
	config := parseArgs()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, err := rom.LoadFile(config.Image, uint16(config.Origin))
	if err != nil {
		log.Fatal(err)
	}

	img.Entry = uint16(config.Entry)

	var trace cpu.TraceFunc
	if config.PrintTrace {
		trace = printTrace
	}

	if config.Monitor {
		err = runMonitor(ctx, img, trace)
	} else {
		err = runDiag(ctx, config, img, trace)
	}

	if err != nil {
		log.Fatal(err)
	}
}

// runDiag runs the image in the CP/M harness and reports the result.
func runDiag(ctx context.Context, config *Config, img *rom.Image, trace cpu.TraceFunc) error {
	h := diag.New(img, os.Stdout, trace)

	if config.FixSP {
		h.Patch(diag.FixStackPointer)
	}

	if config.SkipDAA {
		h.Patch(diag.SkipDAATest)
	}

	_, err := h.Run(ctx, config.MaxCycles)
	fmt.Println()
	log.Printf("%s: %d cycles", config.Image, h.Cycles())
	return err
}

// runMonitor loads the image into a fresh cpu and hands it to the monitor.
func runMonitor(ctx context.Context, img *rom.Image, trace cpu.TraceFunc) error {
	c := cpu.New(trace)
	if err := c.Startup(); err != nil {
		return err
	}

	defer c.Shutdown()

	img.CopyTo(c.Memory())
	c.Registers().PC = img.Entry

	log.Println(Version())
	return monitor.New(c, os.Stdout).Interactive(ctx)
}

// printTrace prints instruction trace data.
func printTrace(i *cpu.Instruction, regs cpu.Registers, flags cpu.Flags) {
	text, _ := arch.Disassemble(i.Bytes(), 0)
	fmt.Printf("%04x  %-14s %s %s\n", i.IP, text, regs, flags)
}
