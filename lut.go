// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inky

import (
	"fmt"
)

// LUT contains the waveform that is used to program the display.
//
// Each table is 70 bytes. The first 35 bytes describe the voltages applied
// during the seven update phases, five rows of seven phases (LUT0 black,
// LUT1 white, unused, LUT3 red/yellow, LUT4 VCOM). Each phase byte holds
// four two-bit steps selecting VSS, VSH1, VSL or VSH2.
//
// The remaining 35 bytes are seven rows of step durations and a repeat
// count, one row per phase. Phases with an all-zero timing row are skipped
// by the controller. The first two phases pulse the display to mitigate
// image retention before the target image is applied.
type LUT []byte

var lutBlack = LUT{
	0b01001000, 0b10100000, 0b00010000, 0b00010000, 0b00010011, 0b00000000, 0b00000000,
	0b01001000, 0b10100000, 0b10000000, 0b00000000, 0b00000011, 0b00000000, 0b00000000,
	0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000,
	0b01001000, 0b10100101, 0b00000000, 0b10111011, 0b00000000, 0b00000000, 0b00000000,
	0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000,
	0x10, 0x04, 0x04, 0x04, 0x04,
	0x10, 0x04, 0x04, 0x04, 0x04,
	0x04, 0x08, 0x08, 0x10, 0x10,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
}

var lutRed = LUT{
	0b01001000, 0b10100000, 0b00010000, 0b00010000, 0b00010011, 0b00000000, 0b00000000,
	0b01001000, 0b10100000, 0b10000000, 0b00000000, 0b00000011, 0b00000000, 0b00000000,
	0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000,
	0b01001000, 0b10100101, 0b00000000, 0b10111011, 0b00000000, 0b00000000, 0b00000000,
	0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000,
	0x40, 0x0C, 0x20, 0x0C, 0x06,
	0x10, 0x08, 0x04, 0x04, 0x06,
	0x04, 0x08, 0x08, 0x10, 0x10,
	0x02, 0x02, 0x02, 0x40, 0x20,
	0x02, 0x02, 0x02, 0x02, 0x02,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
}

// lutRedHT is the high-temperature red waveform used by the "Red pHAT
// (High-Temp)" and "Red wHAT" display variants.
var lutRedHT = LUT{
	0b01001000, 0b10100000, 0b00010000, 0b00010000, 0b00010011, 0b00010000, 0b00010000,
	0b01001000, 0b10100000, 0b10000000, 0b00000000, 0b00000011, 0b10000000, 0b10000000,
	0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000,
	0b01001000, 0b10100101, 0b00000000, 0b10111011, 0b00000000, 0b01001000, 0b00000000,
	0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000,
	0x43, 0x0A, 0x1F, 0x0A, 0x04,
	0x10, 0x08, 0x04, 0x04, 0x06,
	0x04, 0x08, 0x08, 0x10, 0x0B,
	0x02, 0x04, 0x04, 0x40, 0x10,
	0x06, 0x06, 0x06, 0x02, 0x02,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
}

var lutYellow = LUT{
	0b11111010, 0b10010100, 0b10001100, 0b11000000, 0b11010000, 0b00000000, 0b00000000,
	0b11111010, 0b10010100, 0b00101100, 0b10000000, 0b11100000, 0b00000000, 0b00000000,
	0b11111010, 0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000, 0b00000000,
	0b11111010, 0b10010100, 0b11111000, 0b10000000, 0b01010000, 0b00000000, 0b11001100,
	0b10111111, 0b01011000, 0b11111100, 0b10000000, 0b11010000, 0b00000000, 0b00010001,
	0x40, 0x10, 0x40, 0x10, 0x08,
	0x08, 0x10, 0x04, 0x04, 0x10,
	0x08, 0x08, 0x03, 0x08, 0x20,
	0x08, 0x04, 0x00, 0x00, 0x10,
	0x10, 0x08, 0x08, 0x00, 0x20,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
}

// chooseLUT selects the waveform table for the requested color profile.
// The plain red waveform is upgraded to the high-temperature variant only
// when the identity EEPROM reports display variant 1 or 6 and that variant
// is a red panel. Black and yellow are never upgraded.
func chooseLUT(c Color, displayVariant uint) (LUT, error) {
	if c == Red && (displayVariant == 1 || displayVariant == 6) && variantColor(displayVariant) == Red {
		return lutRedHT, nil
	}
	switch c {
	case Black:
		return lutBlack, nil
	case Red:
		return lutRed, nil
	case Yellow:
		return lutYellow, nil
	}
	return nil, fmt.Errorf("inky: unsupported color: %v", c)
}
