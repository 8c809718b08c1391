// Package input implements the player controls and DIP switches of the
// Space Invaders cabinet, as seen on input ports 1 and 2.
package input

import (
	"log"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/invaders/devices"
)

// Port numbers handled by the device.
const (
	Port1 = 1
	Port2 = 2
)

// Button identifies a cabinet control.
type Button int

// Known buttons.
const (
	Coin Button = iota
	P1Start
	P2Start
	P1Fire
	P1Left
	P1Right
	P2Fire
	P2Left
	P2Right
	Tilt
	buttonCount
)

var buttonNames = [buttonCount]string{
	"coin", "p1-start", "p2-start",
	"p1-fire", "p1-left", "p1-right",
	"p2-fire", "p2-left", "p2-right",
	"tilt",
}

func (b Button) String() string {
	if b < 0 || b >= buttonCount {
		return "unknown"
	}
	return buttonNames[b]
}

// bits maps each button to its port and bit.
var bits = [buttonCount]struct {
	port uint8
	mask uint8
}{
	Coin:    {Port1, 1 << 0},
	P2Start: {Port1, 1 << 1},
	P1Start: {Port1, 1 << 2},
	P1Fire:  {Port1, 1 << 4},
	P1Left:  {Port1, 1 << 5},
	P1Right: {Port1, 1 << 6},
	Tilt:    {Port2, 1 << 2},
	P2Fire:  {Port2, 1 << 4},
	P2Left:  {Port2, 1 << 5},
	P2Right: {Port2, 1 << 6},
}

// Port 1 bit 3 is tied high on the board.
const port1Always = 1 << 3

// DIP switch bits on port 2.
const (
	dipShips     = 0x03 // Ships per game, minus 3.
	dipExtraShip = 0x08 // Extra ship at 1000 points instead of 1500.
	dipCoinInfo  = 0x80 // Hide the coin info on the demo screen.
)

// Ship count limits selectable with the DIP switches.
const (
	MinShips = 3
	MaxShips = 6
)

// gamepadButtons maps gamepad buttons to cabinet controls.
var gamepadButtons = map[glfw.GamepadButton]Button{
	glfw.ButtonBack:      Coin,
	glfw.ButtonStart:     P1Start,
	glfw.ButtonY:         P2Start,
	glfw.ButtonA:         P1Fire,
	glfw.ButtonB:         P1Fire,
	glfw.ButtonDpadLeft:  P1Left,
	glfw.ButtonDpadRight: P1Right,
}

// Device defines the input latches.
type Device struct {
	mu          sync.Mutex
	keys        [buttonCount]bool // Buttons held through Press/Release.
	pad         [buttonCount]bool // Buttons held on the gamepad.
	dip         uint8             // DIP switch bits for port 2.
	joy         glfw.Joystick
	gamepad     bool // Poll glfw for gamepads?
	initialized bool // Is a gamepad connected?
}

var (
	_ devices.Device     = &Device{}
	_ devices.PortReader = &Device{}
)

// New creates a new device. If gamepad is true, the device polls glfw for
// a connected gamepad; this requires glfw to be initialized.
func New(gamepad bool) *Device {
	return &Device{gamepad: gamepad}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.MW8080, 0x0003)
}

// Startup releases all buttons and detects any connected gamepad.
// DIP switch settings are kept.
func (d *Device) Startup(devices.IntFunc) error {
	d.mu.Lock()
	d.keys = [buttonCount]bool{}
	d.pad = [buttonCount]bool{}
	d.mu.Unlock()

	if !d.gamepad {
		return nil
	}

	glfw.SetJoystickCallback(d.configure)

	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() && joy.IsGamepad() {
			d.configure(joy, glfw.Connected)
			break
		}
	}

	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if d.gamepad {
		glfw.SetJoystickCallback(nil)
	}
	return nil
}

// Press marks the given button as held down.
func (d *Device) Press(b Button) {
	d.set(b, true)
}

// Release marks the given button as released.
func (d *Device) Release(b Button) {
	d.set(b, false)
}

func (d *Device) set(b Button, pressed bool) {
	if b < 0 || b >= buttonCount {
		return
	}

	d.mu.Lock()
	d.keys[b] = pressed
	d.mu.Unlock()
}

// SetShips sets the number of ships per game, clamped to [MinShips, MaxShips].
func (d *Device) SetShips(n int) {
	if n < MinShips {
		n = MinShips
	}
	if n > MaxShips {
		n = MaxShips
	}

	d.mu.Lock()
	d.dip = d.dip&^dipShips | uint8(n-MinShips)
	d.mu.Unlock()
}

// SetExtraShipAt1000 selects whether the bonus ship is awarded at 1000 points
// instead of 1500.
func (d *Device) SetExtraShipAt1000(v bool) {
	d.setDIP(dipExtraShip, v)
}

// SetCoinInfo selects whether the demo screen shows the coin info.
func (d *Device) SetCoinInfo(show bool) {
	d.setDIP(dipCoinInfo, !show)
}

func (d *Device) setDIP(mask uint8, on bool) {
	d.mu.Lock()
	if on {
		d.dip |= mask
	} else {
		d.dip &^= mask
	}
	d.mu.Unlock()
}

// In returns the state of input port 1 or 2.
func (d *Device) In(port uint8) (uint8, bool) {
	var v uint8

	switch port {
	case Port1:
		v = port1Always
	case Port2:
		v = 0
	default:
		return 0, false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if port == Port2 {
		v |= d.dip
	}

	for b, bit := range bits {
		if bit.port == port && (d.keys[b] || d.pad[b]) {
			v |= bit.mask
		}
	}

	return v, true
}

// Update polls the gamepad state.
func (d *Device) Update() {
	if !d.initialized {
		return
	}

	state := d.joy.GetGamepadState()
	if state == nil {
		return
	}

	var pad [buttonCount]bool
	for btn, b := range gamepadButtons {
		if state.Buttons[btn] == glfw.Press {
			pad[b] = true
		}
	}

	d.mu.Lock()
	d.pad = pad
	d.mu.Unlock()
}

// configure is called whenever a joystick is connected or disconnected from the system.
func (d *Device) configure(joy glfw.Joystick, event glfw.PeripheralEvent) {
	d.initialized = event == glfw.Connected && joy.IsGamepad()
	d.joy = joy

	if d.initialized {
		log.Println(d.ID(), "gamepad connected")
	} else {
		log.Println(d.ID(), "gamepad disconnected")
	}

	d.mu.Lock()
	d.pad = [buttonCount]bool{}
	d.mu.Unlock()
}
