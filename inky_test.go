// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inky

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi/spitest"
)

func busyPin() *gpiotest.Pin {
	return &gpiotest.Pin{EdgesChan: make(chan gpio.Level, 1)}
}

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		name       string
		opts       Opts
		wantBounds image.Rectangle
		wantString string
		wantErr    bool
	}{
		{
			name:       "default pHAT",
			opts:       Opts{ModelColor: Red},
			wantBounds: image.Rect(0, 0, 212, 104),
			wantString: "inky.Dev{playback, (0), Width: 212, Height: 104}",
		},
		{
			name:       "wHAT",
			opts:       Opts{Model: WHAT, ModelColor: Black},
			wantBounds: image.Rect(0, 0, 400, 300),
			wantString: "inky.Dev{playback, (0), Width: 400, Height: 300}",
		},
		{
			name:       "SSD1608 pHAT",
			opts:       Opts{Model: PHAT2, ModelColor: Yellow},
			wantBounds: image.Rect(0, 0, 250, 122),
			wantString: "inky.Dev{playback, (0), Width: 250, Height: 122}",
		},
		{
			name:       "explicit resolution",
			opts:       Opts{Width: 600, Height: 448, ModelColor: Black},
			wantBounds: image.Rect(0, 0, 600, 448),
			wantString: "inky.Dev{playback, (0), Width: 600, Height: 448}",
		},
		{
			name:    "unsupported resolution",
			opts:    Opts{Width: 128, Height: 64, ModelColor: Black},
			wantErr: true,
		},
		{
			name:    "white is not a color profile",
			opts:    Opts{Model: WHAT, ModelColor: White},
			wantErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dev, err := New(&spitest.Playback{}, &gpiotest.Pin{}, &gpiotest.Pin{}, busyPin(), &tc.opts)
			if tc.wantErr {
				if err == nil {
					t.Fatal("New() succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}

			if diff := cmp.Diff(dev.Bounds(), tc.wantBounds); diff != "" {
				t.Errorf("Bounds() difference (-got +want):\n%s", diff)
			}
			if diff := cmp.Diff(dev.String(), tc.wantString); diff != "" {
				t.Errorf("String() difference (-got +want):\n%s", diff)
			}
			if len(dev.Pix) != tc.wantBounds.Dx()*tc.wantBounds.Dy() {
				t.Errorf("len(Pix) = %d, want %d", len(dev.Pix), tc.wantBounds.Dx()*tc.wantBounds.Dy())
			}
		})
	}
}

func TestWaitUntilIdle(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		d := &Dev{busy: &gpiotest.Pin{L: gpio.High, EdgesChan: make(chan gpio.Level)}}
		eh := &errorHandler{d: d}

		eh.waitUntilIdle(10 * time.Millisecond)

		if !errors.Is(eh.err, ErrBusyTimeout) {
			t.Errorf("err = %v, want ErrBusyTimeout", eh.err)
		}
	})

	t.Run("already idle", func(t *testing.T) {
		d := &Dev{busy: &gpiotest.Pin{L: gpio.Low, EdgesChan: make(chan gpio.Level)}}
		eh := &errorHandler{d: d}

		eh.waitUntilIdle(10 * time.Millisecond)

		if eh.err != nil {
			t.Errorf("err = %v, want nil", eh.err)
		}
	})

	t.Run("edge clears", func(t *testing.T) {
		pin := &gpiotest.Pin{L: gpio.High, EdgesChan: make(chan gpio.Level, 1)}
		pin.EdgesChan <- gpio.Low
		eh := &errorHandler{d: &Dev{busy: pin}}

		eh.waitUntilIdle(time.Second)

		if eh.err != nil {
			t.Errorf("err = %v, want nil", eh.err)
		}
	})
}

func TestUpdateTransportError(t *testing.T) {
	dev, err := New(&spitest.Playback{Playback: conntest.Playback{DontPanic: true}},
		&gpiotest.Pin{}, &gpiotest.Pin{}, busyPin(), &Opts{Model: WHAT, ModelColor: Black})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	err = dev.Update(false)
	if err == nil {
		t.Fatal("Update() succeeded against a transport that rejects writes")
	}
	if errors.Is(err, ErrBusyTimeout) {
		t.Errorf("err = %v, want a transport error, not a timeout", err)
	}
}

func TestSetBorder(t *testing.T) {
	d := &Dev{border: White}

	d.SetBorder(Color(9))
	if d.border != White {
		t.Errorf("border = %v, invalid color should be ignored", d.border)
	}

	d.SetBorder(Black)
	if d.border != Black {
		t.Errorf("border = %v, want black", d.border)
	}
}

func TestDrawPartialRejected(t *testing.T) {
	dev, err := New(&spitest.Playback{Playback: conntest.Playback{DontPanic: true}},
		&gpiotest.Pin{}, &gpiotest.Pin{}, busyPin(), &Opts{Model: WHAT, ModelColor: Black})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	src := image.NewNRGBA(image.Rect(0, 0, 400, 300))
	if err := dev.Draw(image.Rect(0, 0, 10, 10), src, image.Point{}); err == nil {
		t.Error("Draw() with a partial area succeeded, want error")
	}
}
