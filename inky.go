// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inky

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3/rpi"
)

// ErrBusyTimeout is returned when the busy line does not clear within the
// allotted time. The panel is left in an indeterminate state and the next
// update starts over from the reset.
var ErrBusyTimeout = errors.New("inky: timeout waiting for busy signal to clear")

// defaultUpdateTimeout bounds the busy wait after triggering a refresh.
const defaultUpdateTimeout = 30 * time.Second

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
var _ draw.Image = &Dev{}

// Dev is a handle to an Inky pHAT or wHAT.
type Dev struct {
	c         conn.Conn
	maxTxSize int
	dc        gpio.PinOut
	r         gpio.PinOut
	busy      gpio.PinIn

	// Color of the panel, which decides the waveform and how the accent
	// plane is interpreted.
	color Color
	// Modifiable color of the border.
	border Color
	// Model being used.
	model Model
	// Display variant reported by the identity EEPROM, if any.
	variant uint

	// Logical size.
	width  int
	height int
	bounds image.Rectangle

	// Controller memory geometry.
	cols     int
	rows     int
	rotation int

	flipVertically   bool
	flipHorizontally bool

	// Active waveform.
	lut LUT

	// Busy wait bound for a full refresh.
	timeout time.Duration

	// Pix holds the logical pixel buffer as plane indices (0 white,
	// 1 black, 2 accent), row-major at y*width+x.
	Pix []uint8
}

// New opens a handle to an Inky pHAT or wHAT.
func New(p spi.Port, dc gpio.PinOut, reset gpio.PinOut, busy gpio.PinIn, o *Opts) (*Dev, error) {
	width, height := o.Width, o.Height
	if width == 0 && height == 0 {
		switch o.Model {
		case PHAT:
			width, height = 212, 104
		case PHAT2:
			width, height = 250, 122
		case WHAT:
			width, height = 400, 300
		}
	}
	res, err := resolutionFor(width, height)
	if err != nil {
		return nil, err
	}

	lut, err := chooseLUT(o.ModelColor, o.DisplayVariant)
	if err != nil {
		return nil, err
	}

	c, err := p.Connect(488*physic.KiloHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to inky over spi: %v", err)
	}

	// Get the maxTxSize from the conn if it implements the conn.Limits
	// interface, otherwise use 4096 bytes.
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize == 0 {
		maxTxSize = 4096 // Use a conservative default.
	}

	if err := busy.In(gpio.Float, gpio.FallingEdge); err != nil {
		// The panel still refreshes without the busy line, it just has
		// to be paced by fixed delays.
		log.Printf("inky: cannot watch busy pin, falling back to timed waits: %v", err)
		busy = nil
	}

	timeout := o.UpdateTimeout
	if timeout == 0 {
		timeout = defaultUpdateTimeout
	}

	d := &Dev{
		c:                c,
		maxTxSize:        maxTxSize,
		dc:               dc,
		r:                reset,
		busy:             busy,
		color:            o.ModelColor,
		border:           o.BorderColor,
		model:            o.Model,
		variant:          o.DisplayVariant,
		width:            width,
		height:           height,
		bounds:           image.Rect(0, 0, width, height),
		cols:             res.cols,
		rows:             res.rows,
		rotation:         res.rotation,
		flipVertically:   o.FlipVertically,
		flipHorizontally: o.FlipHorizontally,
		lut:              lut,
		timeout:          timeout,
		Pix:              make([]uint8, width*height),
	}

	return d, nil
}

// NewEEPROM opens a handle to an Inky after reading its identity EEPROM.
// When o specifies a panel size it must match the one the EEPROM reports.
// The detected display variant feeds the waveform selection.
func NewEEPROM(p spi.Port, bus i2c.Bus, dc gpio.PinOut, reset gpio.PinOut, busy gpio.PinIn, o *Opts) (*Dev, error) {
	detected, err := DetectOpts(bus)
	if err != nil {
		return nil, err
	}
	if (o.Width != 0 || o.Height != 0) && (o.Width != detected.Width || o.Height != detected.Height) {
		return nil, fmt.Errorf("inky: supplied width/height do not match display: %dx%d", detected.Width, detected.Height)
	}

	merged := *o
	merged.Width = detected.Width
	merged.Height = detected.Height
	merged.Model = detected.Model
	merged.ModelColor = detected.ModelColor
	merged.PCBVariant = detected.PCBVariant
	merged.DisplayVariant = detected.DisplayVariant
	return New(p, dc, reset, busy, &merged)
}

// NewHat opens a handle using the canonical Inky pinout on a Raspberry Pi.
func NewHat(p spi.Port, o *Opts) (*Dev, error) {
	dc := rpi.P1_15
	reset := rpi.P1_13
	busy := rpi.P1_11
	return New(p, dc, reset, busy, o)
}

// SetPixel sets one pixel in the logical buffer. Out of range coordinates
// and colors that have no plane index are ignored.
func (d *Dev) SetPixel(x, y int, c Color) {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return
	}
	if v, ok := c.pixel(); ok {
		d.Pix[y*d.width+x] = v
	}
}

// SetBorder changes the border color. This will not take effect until the
// next update. Colors without a plane index are ignored.
func (d *Dev) SetBorder(c Color) {
	if _, ok := c.pixel(); ok {
		d.border = c
	}
}

// Update refreshes the panel from the current buffer contents. When wait
// is true it blocks until the refresh completed and puts the controller
// into deep sleep; otherwise it returns right after the trigger and the
// caller must not start another update until the panel settled.
//
// At most one update may be in flight per device; calls must be
// serialized by the caller.
func (d *Dev) Update(wait bool) error {
	bw, accent := d.packPlanes()

	eh := &errorHandler{d: d}
	d.reset(eh)
	updateSequence(eh, d, bw, accent, wait)

	return eh.err
}

// reset strobes the reset line with the settle times the panel needs.
func (d *Dev) reset(eh *errorHandler) {
	eh.rstOut(gpio.Low)
	time.Sleep(100 * time.Millisecond)
	eh.rstOut(gpio.High)
	time.Sleep(100 * time.Millisecond)
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return d.palette()
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.bounds
}

// At returns the buffered (not necessarily displayed) color at x, y.
// Coordinates outside the panel read as white.
func (d *Dev) At(x, y int) color.Color {
	pal := d.palette()
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return pal[pixelWhite]
	}
	v := d.Pix[y*d.width+x]
	if int(v) >= len(pal) {
		v = pixelWhite
	}
	return pal[v]
}

// Set writes the palette color closest to c into the buffer.
func (d *Dev) Set(x, y int, c color.Color) {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return
	}
	d.Pix[y*d.width+x] = uint8(d.palette().Index(c))
}

// Draw updates the display with the given image. Partial updates are not
// supported and dstRect must cover the whole display. The image is
// dithered against the panel's three color palette.
func (d *Dev) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	if dstRect != d.bounds {
		return fmt.Errorf("inky: partial updates are not supported")
	}
	draw.FloydSteinberg.Draw(d, dstRect, src, srcPts)
	return d.Update(true)
}

// DrawAll redraws the whole display.
func (d *Dev) DrawAll(src image.Image) error {
	if !src.Bounds().Eq(d.bounds) {
		d.SetImage(src)
		return d.Update(true)
	}
	return d.Draw(d.bounds, src, image.Point{})
}

// Halt puts the controller into deep sleep. It wakes up again on the next
// update.
func (d *Dev) Halt() error {
	eh := &errorHandler{d: d}
	deepSleep(eh)
	return eh.err
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("inky.Dev{%s, %s, Width: %d, Height: %d}", d.c, d.dc, d.width, d.height)
}
