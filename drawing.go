// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inky

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// palette returns the three logical colors of the panel. The accent entry
// depends on the color profile and falls back to black for monochrome
// panels.
func (d *Dev) palette() color.Palette {
	accent := color.NRGBA{A: 0xFF}
	switch d.color {
	case Red:
		accent = color.NRGBA{R: 0xFF, A: 0xFF}
	case Yellow:
		accent = color.NRGBA{R: 0xFF, G: 0xFF, A: 0xFF}
	}
	return color.Palette{
		color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		color.NRGBA{A: 0xFF},
		accent,
	}
}

// SetImage replaces the buffer with src. The image is resampled to the
// panel size and quantized against the panel palette. A palette indexed
// image of the right size is taken over index for index.
func (d *Dev) SetImage(src image.Image) {
	if p, ok := src.(*image.Paletted); ok && p.Bounds().Dx() == d.width && p.Bounds().Dy() == d.height {
		b := p.Bounds()
		for y := 0; y < d.height; y++ {
			for x := 0; x < d.width; x++ {
				d.Pix[y*d.width+x] = p.ColorIndexAt(b.Min.X+x, b.Min.Y+y)
			}
		}
		return
	}

	scaled := image.NewNRGBA(d.bounds)
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	pal := d.palette()
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			d.Pix[y*d.width+x] = uint8(pal.Index(scaled.NRGBAAt(x, y)))
		}
	}
}

// packPlanes converts the logical buffer into the two transmit-ready bit
// planes. The buffer is kept in logical orientation; the vertical flip
// (mirroring columns), the horizontal flip (mirroring rows) and the
// rotation of the column-major models are applied here.
//
// Packing is row-major over the whole frame, MSB first. The black/white
// plane has inverted polarity: a cleared bit marks black ink, everything
// else is set. The accent plane has a set bit exactly where the accent
// ink goes.
func (d *Dev) packPlanes() (bw, accent []byte) {
	w, h := d.width, d.height
	region := make([]uint8, len(d.Pix))
	copy(region, d.Pix)

	if d.flipVertically {
		for y := 0; y < h; y++ {
			row := region[y*w : (y+1)*w]
			for i, j := 0, w-1; i < j; i, j = i+1, j-1 {
				row[i], row[j] = row[j], row[i]
			}
		}
	}

	if d.flipHorizontally {
		for y0, y1 := 0, h-1; y0 < y1; y0, y1 = y0+1, y1-1 {
			for x := 0; x < w; x++ {
				region[y0*w+x], region[y1*w+x] = region[y1*w+x], region[y0*w+x]
			}
		}
	}

	if d.rotation != 0 {
		// One clockwise quarter turn into controller orientation.
		rotated := make([]uint8, len(region))
		for y := 0; y < w; y++ {
			for x := 0; x < h; x++ {
				rotated[y*h+x] = region[(h-1-x)*w+y]
			}
		}
		region = rotated
		w, h = h, w
	}

	n := len(region)
	bw = make([]byte, (n+7)/8)
	accent = make([]byte, (n+7)/8)
	for i, v := range region {
		if v != pixelBlack {
			bw[i>>3] |= 0x80 >> (i & 7)
		}
		if v == pixelAccent {
			accent[i>>3] |= 0x80 >> (i & 7)
		}
	}
	return bw, accent
}
