package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hexaflex/invaders/rom"
)

// Config defines program configuration.
type Config struct {
	Image      string  // Path to the program image.
	Origin     address // Load address.
	Entry      address // Initial program counter.
	MaxCycles  int     // Cycle limit of a diagnostic run; 0 for none.
	Monitor    bool    // Start the interactive monitor instead of running the program.
	PrintTrace bool    // Print instruction trace data?
	FixSP      bool    // Patch the stack pointer of cpudiag.bin.
	SkipDAA    bool    // Patch cpudiag.bin to skip the DAA test.
}

// address is a flag.Value holding a hexadecimal 16-bit address.
type address uint16

func (a *address) String() string {
	return fmt.Sprintf("%04x", uint16(*a))
}

func (a *address) Set(s string) error {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return err
	}
	*a = address(v)
	return nil
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Origin = rom.DiagOrigin
	c.MaxCycles = 0

	entry := address(0)
	entrySet := false

	flag.Usage = func() {
		fmt.Printf("%s [options] <image file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Var(&c.Origin, "org", "Load address of the image, in hex.")
	flag.Var(&entry, "entry", "Entry point, in hex. Defaults to the load address.")
	flag.IntVar(&c.MaxCycles, "max-cycles", c.MaxCycles, "Abort a run after this many cycles; 0 means no limit.")
	flag.BoolVar(&c.Monitor, "monitor", c.Monitor, "Start the interactive monitor.")
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print instruction trace data.")
	flag.BoolVar(&c.FixSP, "fix-sp", c.FixSP, "Patch the stack pointer setup of cpudiag.bin.")
	flag.BoolVar(&c.SkipDAA, "skip-daa", c.SkipDAA, "Patch cpudiag.bin to skip its DAA test.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "entry" {
			entrySet = true
		}
	})

	c.Entry = c.Origin
	if entrySet {
		c.Entry = entry
	}

	c.Image = flag.Arg(0)
	return &c
}
