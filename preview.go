// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inky

import (
	"bytes"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Preview renders the logical buffer to w using ANSI color codes, one
// block per pixel. A nil writer selects stdout. Useful to check a frame
// without waiting through a refresh cycle.
func (d *Dev) Preview(w io.Writer) error {
	if w == nil {
		w = colorable.NewColorableStdout()
	}

	pal := d.palette()
	var buf bytes.Buffer
	for y := 0; y < d.height; y++ {
		_, _ = buf.WriteString("\033[0m")
		for x := 0; x < d.width; x++ {
			v := d.Pix[y*d.width+x]
			if int(v) >= len(pal) {
				v = pixelWhite
			}
			c := color.NRGBAModel.Convert(pal[v]).(color.NRGBA)
			_, _ = buf.WriteString(ansi256.Default.Block(c))
		}
		_, _ = buf.WriteString("\033[0m\n")
	}
	_, err := buf.WriteTo(w)
	return err
}
