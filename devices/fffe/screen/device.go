// Package screen renders the machine display into the current OpenGL context.
package screen

import (
	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/fffe/display"
)

// Device draws a display as a full-viewport textured quad.
// Startup, Draw and Shutdown must be called on the thread owning the GL context.
type Device struct {
	source      *display.Display
	pixels      [display.PixelCount]byte
	on          Color
	off         Color
	shader      uint32
	vao         uint32
	vbo         uint32
	tex         uint32
	colorsDirty bool
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a screen for the given display, using the given colors
// for lit and unlit pixels.
func New(source *display.Display, on, off Color) *Device {
	return &Device{
		source: source,
		on:     on,
		off:    off,
	}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Manufacturer, 0x0010)
}

// Startup compiles the shader and allocates the quad and texture.
func (d *Device) Startup() error {
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

	d.tex = makeTexture()
	d.colorsDirty = true
	d.initialized = true
	d.upload()
	return nil
}

// Shutdown releases the GL resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.tex)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// SetSource switches to drawing another display.
func (d *Device) SetSource(source *display.Display) {
	d.source = source
	if d.initialized {
		d.upload()
	}
}

// SetColors changes the lit and unlit pixel colors.
func (d *Device) SetColors(on, off Color) {
	d.on = on
	d.off = off
	d.colorsDirty = true
}

// Draw uploads the display contents if they changed since the last
// call and renders them.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	if d.source.Changed() {
		d.upload()
	}

	gl.UseProgram(d.shader)

	if d.colorsDirty {
		on, off := d.on.Vec4(), d.off.Vec4()
		gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("onColor")), 1, &on[0])
		gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("offColor")), 1, &off[0])
		d.colorsDirty = false
	}

	gl.BindVertexArray(d.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.tex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (d *Device) upload() {
	pack(d.pixels[:], d.source.Pixels())
	uploadTexture(d.tex, gl.R8, display.Width, display.Height, gl.RED, gl.UNSIGNED_BYTE, d.pixels[:])
}

// pack converts pixel states into one intensity byte per pixel.
func pack(dst []byte, pixels []bool) {
	for i, on := range pixels {
		if on {
			dst[i] = 0xff
		} else {
			dst[i] = 0
		}
	}
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
