// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inky

import (
	"fmt"
	"image"
)

// resolution describes the controller memory geometry for one panel size.
// The controller RAM is laid out column-major for the small panels, which
// is reconciled by rotating the frame while packing.
type resolution struct {
	cols     int
	rows     int
	rotation int // degrees, 0 or -90
}

// resolutions maps the logical panel size to the controller geometry.
var resolutions = map[image.Point]resolution{
	image.Pt(800, 480): {cols: 800, rows: 480, rotation: 0},
	image.Pt(600, 448): {cols: 600, rows: 448, rotation: 0},
	image.Pt(400, 300): {cols: 400, rows: 300, rotation: 0},
	image.Pt(212, 104): {cols: 104, rows: 212, rotation: -90},
	image.Pt(250, 122): {cols: 250, rows: 122, rotation: -90},
}

// resolutionFor returns the controller geometry for a width by height
// panel. Only the panel sizes listed in resolutions are supported.
func resolutionFor(width, height int) (resolution, error) {
	res, ok := resolutions[image.Pt(width, height)]
	if !ok {
		return resolution{}, fmt.Errorf("inky: resolution %dx%d not supported", width, height)
	}
	return res, nil
}
