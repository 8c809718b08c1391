// Package video implements the 1bpp display of the Midway 8080 board.
//
// The board scans video memory at 0x2400-0x3fff straight to a monitor which
// is mounted rotated 90 degrees counter-clockwise in the cabinet. A coloured
// gel on the cabinet glass tints parts of the otherwise white image.
package video

import (
	"bytes"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/invaders/devices"
)

// Device defines all internal doodads for the display.
type Device struct {
	frame       [FrameSize]byte // Decoded RGBA image.
	last        [VRAMSize]byte  // Video memory at the last upload.
	shader      uint32
	vao         uint32
	vbo         uint32
	screenTex   uint32
	dirty       bool
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a new device.
func New() *Device {
	return &Device{dirty: true}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.MW8080, 0x0004)
}

// Startup initializes device resources. It requires a current GL context.
func (d *Device) Startup(devices.IntFunc) error {
	var err error

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	d.screenTex = makeTexture()
	d.frame = [FrameSize]byte{}
	d.last = [VRAMSize]byte{}
	d.dirty = true
	d.initialized = true
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.screenTex)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// Update decodes the given video memory if it changed since the last call.
func (d *Device) Update(vram []byte) {
	if len(vram) > VRAMSize {
		vram = vram[:VRAMSize]
	}

	if !d.dirty && bytes.Equal(d.last[:len(vram)], vram) {
		return
	}

	copy(d.last[:], vram)
	Decode(vram, d.frame[:])
	d.dirty = true
}

// Frame returns the most recently decoded image.
func (d *Device) Frame() []byte {
	return d.frame[:]
}

// Draw renders the display contents.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	if d.dirty {
		uploadTexture(d.screenTex, Width, Height, d.frame[:])
		d.dirty = false
	}

	gl.UseProgram(d.shader)
	gl.BindVertexArray(d.vao)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.screenTex)

	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
