// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inky

import (
	"fmt"
)

// Model lists the supported e-ink display models.
type Model int

// Supported Model.
const (
	// PHAT is the original 212x104 Inky pHAT.
	PHAT Model = iota
	// WHAT is the 400x300 Inky wHAT.
	WHAT
	// PHAT2 is the 250x122 Inky pHAT with the SSD1608 controller.
	PHAT2
)

// Set sets the Model to a value represented by the string s. Set implements the flag.Value interface.
func (m *Model) Set(s string) error {
	switch s {
	case "PHAT":
		*m = PHAT
	case "PHAT2":
		*m = PHAT2
	case "WHAT":
		*m = WHAT
	default:
		return fmt.Errorf("unknown model %q: expected PHAT, PHAT2 or WHAT", s)
	}
	return nil
}

// String implements the fmt.Stringer interface.
func (m Model) String() string {
	switch m {
	case PHAT:
		return "PHAT"
	case PHAT2:
		return "PHAT2"
	case WHAT:
		return "WHAT"
	}
	return fmt.Sprintf("Model(%d)", int(m))
}

// Color is used to define which model of inky is being used, and also for
// setting the border color and individual pixels.
type Color int

// Valid Color.
const (
	Black Color = iota
	Red
	Yellow
	White
)

// Set sets the Color to a value represented by the string s. Set implements the flag.Value interface.
func (c *Color) Set(s string) error {
	switch s {
	case "black":
		*c = Black
	case "red":
		*c = Red
	case "yellow":
		*c = Yellow
	case "white":
		*c = White
	default:
		return fmt.Errorf("unknown color %q: expected either black, red, yellow or white", s)
	}
	return nil
}

// String implements the fmt.Stringer interface.
func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case White:
		return "white"
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

// Pixel indices of the two controller RAM planes. White is the resting
// state, the accent index is shared between red and yellow panels.
const (
	pixelWhite  uint8 = 0
	pixelBlack  uint8 = 1
	pixelAccent uint8 = 2
)

// pixel maps a Color to its RAM plane index. Red and yellow alias to the
// same accent index, the active color profile decides the interpretation.
func (c Color) pixel() (uint8, bool) {
	switch c {
	case White:
		return pixelWhite, true
	case Black:
		return pixelBlack, true
	case Red, Yellow:
		return pixelAccent, true
	}
	return 0, false
}
