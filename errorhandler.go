// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inky

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// errorHandler is a wrapper for error management. The first failure is
// kept and every later call becomes a no-op, so a sequence can be written
// without per-step error checks and surfaces its first transport error at
// the end.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.r.Out(l)
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.dc.Out(l)
}

func (eh *errorHandler) cTx(w []byte, r []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.c.Tx(w, r)
}

func (eh *errorHandler) sendCommand(cmd byte) {
	if eh.err != nil {
		return
	}

	eh.dcOut(gpio.Low)
	eh.cTx([]byte{cmd}, nil)
}

func (eh *errorHandler) sendData(data []byte) {
	if eh.err != nil {
		return
	}

	eh.dcOut(gpio.High)
	for len(data) > 0 {
		chunk := len(data)
		if chunk > eh.d.maxTxSize {
			chunk = eh.d.maxTxSize
		}
		eh.cTx(data[:chunk], nil)
		data = data[chunk:]
	}
}

// waitUntilIdle waits for the busy line to clear, bounded by timeout. The
// line is sampled first so an already idle controller does not block. A
// timeout is recorded as ErrBusyTimeout and stops the sequence.
//
// Without a usable busy line the full timeout is slept instead, which is
// the only safe assumption about when the controller settled.
func (eh *errorHandler) waitUntilIdle(timeout time.Duration) {
	if eh.err != nil {
		return
	}
	if eh.d.busy == nil {
		time.Sleep(timeout)
		return
	}
	if eh.d.busy.Read() == gpio.High {
		if !eh.d.busy.WaitForEdge(timeout) {
			eh.err = ErrBusyTimeout
		}
	}
}

var _ controller = &errorHandler{}
