package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/invaders/arch"
	"github.com/hexaflex/invaders/clock"
	"github.com/hexaflex/invaders/devices/mw8080/cpu"
	"github.com/hexaflex/invaders/devices/mw8080/input"
	"github.com/hexaflex/invaders/devices/mw8080/video"
	"github.com/hexaflex/invaders/machine"
	"github.com/hexaflex/invaders/rom"
)

// keyButtons maps keyboard keys to cabinet controls.
var keyButtons = map[glfw.Key]input.Button{
	glfw.KeyC:     input.Coin,
	glfw.Key1:     input.P1Start,
	glfw.Key2:     input.P2Start,
	glfw.KeySpace: input.P1Fire,
	glfw.KeyLeft:  input.P1Left,
	glfw.KeyRight: input.P1Right,
	glfw.KeyW:     input.P2Fire,
	glfw.KeyA:     input.P2Left,
	glfw.KeyD:     input.P2Right,
	glfw.KeyT:     input.Tilt,
}

// App defines application context.
type App struct {
	config       *Config       // Application configuration.
	window       *glfw.Window  // OpenGL/GLFW context.
	ctl          *Controller   // Board with program to be run.
	display      *video.Device // Display.
	input        *input.Device // Player controls.
	titleUpdated time.Time     // Value used to periodically update window title.
	lastRendered time.Time     // Last time a frame was rendered.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.display = video.New()
	a.input = input.New(config.Gamepad)
	a.input.SetShips(config.Ships)
	a.input.SetExtraShipAt1000(config.ExtraShip)
	a.input.SetCoinInfo(!config.HideCoinInfo)

	m := machine.New(a.printTrace, a.input)
	pacer := clock.NewPacer(clock.System{}, config.ClockHz, config.RefreshHz)
	a.ctl = NewController(m, pacer)
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	if err := a.display.Startup(nil); err != nil {
		return err
	}

	log.Println(Version())
	printHelp()

	if err := a.loadProgram(); err != nil {
		return err
	}

	if !a.config.Debug {
		a.ctl.Start()
	}

	ctx := context.Background()
	for !a.window.ShouldClose() {
		a.mainLoop(ctx)
	}

	return nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop(ctx context.Context) {
	a.input.Update()

	if err := a.ctl.Update(ctx); err != nil {
		logError(err)
	}

	// Periodically render display contents.
	if time.Since(a.lastRendered) >= a.ctl.pacer.Period() {
		a.lastRendered = time.Now()
		a.display.Update(a.ctl.VRAM())
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		a.display.Draw()
		a.window.SwapBuffers()
	}

	// Periodically update the window title to show the current cpu clock frequency.
	if time.Since(a.titleUpdated) >= time.Second*2 {
		a.titleUpdated = time.Now()
		freq := prettyFrequency(a.ctl.Frequency())
		a.window.SetTitle(fmt.Sprintf("%s %s - %s", AppName, AppVersion, freq))
	}

	glfw.WaitEventsTimeout(a.ctl.Wait().Seconds())
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	a.ctl.Stop()
	a.ctl.Shutdown()
	a.display.Shutdown()

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if btn, ok := keyButtons[key]; ok {
		switch action {
		case glfw.Press:
			a.input.Press(btn)
		case glfw.Release:
			a.input.Release(btn)
		}
		return
	}

	if action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF2:
		a.config.Debug = !a.config.Debug
		a.config.PrintTrace = a.config.Debug
		a.ctl.setRunning(!a.config.Debug)
	case glfw.KeyF3:
		a.config.PrintTrace = !a.config.PrintTrace
	case glfw.KeyF5:
		err = a.ctl.Reset()
	case glfw.KeyF6:
		err = a.ctl.Step()
	case glfw.KeyP:
		a.ctl.ToggleRun()
	}

	if err != nil {
		logError(err)
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := video.Width * a.config.ScaleFactor
	height := video.Height * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		a.window.Destroy()
		a.window = nil
		glfw.Terminate()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// loadProgram loads the ROM set from disk and restarts the board.
func (a *App) loadProgram() error {
	log.Println("loading", a.config.RomDir)

	img, err := rom.LoadSet(a.config.RomDir, rom.InvadersSet)
	if err != nil {
		return err
	}

	a.ctl.Shutdown()
	return a.ctl.Startup(img)
}

// printTrace prints instruction trace data. This can be toggled
// on off through a.config.PrintTrace.
func (a *App) printTrace(i *cpu.Instruction, regs cpu.Registers, flags cpu.Flags) {
	if !a.config.PrintTrace {
		return
	}

	var sb strings.Builder
	sb.Grow(120)

	for _, b := range i.Bytes() {
		fmt.Fprintf(&sb, "%02x ", b)
	}

	pad(&sb, 9)
	text, _ := arch.Disassemble(i.Bytes(), 0)
	sb.WriteString(text)
	pad(&sb, 24)

	fmt.Printf("%04x  %s %s %s\n", i.IP, sb.String(), regs, flags)
}

// logError logs the given error. Core failures include the disassembly
// of the offending instruction.
func logError(err error) {
	if cerr, ok := err.(*cpu.Error); ok && cerr.Instruction != nil {
		text, _ := arch.Disassemble(cerr.Bytes(), 0)
		log.Printf("%v (%s)", err, text)
		return
	}
	log.Println(err)
}

// printHelp writes a short overview of supported shortcut keys to stdout.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the program.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F2       Enable/Disable debug mode.\n")
	sb.WriteString(" F3       Enable/Disable debug trace output.\n")
	sb.WriteString(" F5       Reset the board.\n")
	sb.WriteString(" F6       Perform a single execution step.\n")
	sb.WriteString(" P        Pause/Resume program execution.\n")
	sb.WriteString(" C        Insert coin.\n")
	sb.WriteString(" 1, 2     Start a one or two player game.\n")
	sb.WriteString(" Space    Player 1 fire; arrow keys move.\n")
	sb.WriteString(" W        Player 2 fire; A and D move.\n")
	sb.WriteString(" T        Tilt.")
	log.Println(sb.String())
}

// pad padds sb with spaces until it reaches the given size.
var pad = func() func(*strings.Builder, int) {
	set := strings.Repeat(" ", 80)
	return func(sb *strings.Builder, size int) {
		if sb.Len() >= size {
			return
		}
		if size > len(set) {
			size = len(set)
		}
		sb.WriteString(set[:size-sb.Len()])
	}
}()

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
