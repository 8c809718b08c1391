package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexaflex/invaders/clock"
	"github.com/hexaflex/invaders/devices/mw8080/input"
)

// Config defines program configuration.
type Config struct {
	RomDir       string // Directory holding the ROM set.
	ScaleFactor  int    // Amount by which each pixel is scaled (virtual resolution)
	Fullscreen   bool   // Run in fullscreen?
	Debug        bool   // Start paused?
	PrintTrace   bool   // Print instruction trace data?
	Gamepad      bool   // Poll for gamepads?
	Ships        int    // Ships per game, set through the DIP switches.
	ExtraShip    bool   // Award the extra ship at 1000 points instead of 1500.
	HideCoinInfo bool   // Hide the coin info on the demo screen.
	ClockHz      int    // Emulated clock rate.
	RefreshHz    int    // Display refresh rate.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.ScaleFactor = 3
	c.Gamepad = true
	c.Ships = input.MinShips
	c.ClockHz = clock.DefaultClockHz
	c.RefreshHz = clock.DefaultRefreshHz

	flag.Usage = func() {
		fmt.Printf("%s [options] <rom directory>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.BoolVar(&c.Debug, "debug", c.Debug, "Start paused, with trace output enabled.")
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print instruction trace data.")
	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	flag.BoolVar(&c.Gamepad, "gamepad", c.Gamepad, "Use a connected gamepad.")
	flag.IntVar(&c.Ships, "ships", c.Ships, "Ships per game (3-6).")
	flag.BoolVar(&c.ExtraShip, "extra-ship-1000", c.ExtraShip, "Award the extra ship at 1000 points instead of 1500.")
	flag.BoolVar(&c.HideCoinInfo, "hide-coin-info", c.HideCoinInfo, "Hide the coin info on the demo screen.")
	flag.IntVar(&c.ClockHz, "clock", c.ClockHz, "CPU clock rate in Hz.")
	flag.IntVar(&c.RefreshHz, "refresh", c.RefreshHz, "Display refresh rate in Hz.")

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

	if c.ScaleFactor < 1 {
		c.ScaleFactor = 1
	}

	c.RomDir = flag.Arg(0)
	c.PrintTrace = c.PrintTrace || c.Debug
	return &c
}
