// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inky

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolutionFor(t *testing.T) {
	for _, tc := range []struct {
		width, height int
		want          resolution
		wantErr       bool
	}{
		{width: 800, height: 480, want: resolution{cols: 800, rows: 480}},
		{width: 600, height: 448, want: resolution{cols: 600, rows: 448}},
		{width: 400, height: 300, want: resolution{cols: 400, rows: 300}},
		{width: 212, height: 104, want: resolution{cols: 104, rows: 212, rotation: -90}},
		{width: 250, height: 122, want: resolution{cols: 250, rows: 122, rotation: -90}},
		{width: 104, height: 212, wantErr: true},
		{width: 640, height: 400, wantErr: true},
		{width: 0, height: 0, wantErr: true},
	} {
		got, err := resolutionFor(tc.width, tc.height)
		if tc.wantErr {
			if err == nil {
				t.Errorf("resolutionFor(%d, %d) succeeded, want error", tc.width, tc.height)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolutionFor(%d, %d) failed: %v", tc.width, tc.height, err)
			continue
		}
		if diff := cmp.Diff(got, tc.want, cmp.AllowUnexported(resolution{})); diff != "" {
			t.Errorf("resolutionFor(%d, %d) difference (-got +want):\n%s", tc.width, tc.height, diff)
		}
	}
}
