// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package inky

import (
	"encoding/binary"
	"time"
)

// Commands
const (
	driverOutputControl            byte = 0x01
	gateDrivingVoltageControl      byte = 0x03
	sourceDrivingVoltageControl    byte = 0x04
	deepSleepMode                  byte = 0x10
	dataEntryModeSetting           byte = 0x11
	swReset                        byte = 0x12
	masterActivation               byte = 0x20
	displayUpdateControl2          byte = 0x22
	writeRAMBW                     byte = 0x24
	writeRAMRed                    byte = 0x26
	writeVcomRegister              byte = 0x2C
	writeLutRegister               byte = 0x32
	setDummyLinePeriod             byte = 0x3A
	setGateTime                    byte = 0x3B
	borderWaveformControl          byte = 0x3C
	setRAMXAddressStartEndPosition byte = 0x44
	setRAMYAddressStartEndPosition byte = 0x45
	setRAMXAddressCounter          byte = 0x4E
	setRAMYAddressCounter          byte = 0x4F
	setAnalogBlockControl          byte = 0x74
	setDigitalBlockControl         byte = 0x7E
)

// softResetTimeout bounds the busy wait after a soft reset.
const softResetTimeout = time.Second

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	waitUntilIdle(time.Duration)
}

// softReset issues a soft reset and waits for the controller to settle.
func softReset(ctrl controller) {
	ctrl.sendCommand(swReset)
	ctrl.waitUntilIdle(softResetTimeout)
}

// configDisplay issues the fixed register configuration for one refresh:
// block control, gate geometry, driving voltages, timing, data entry mode,
// VCOM and the border waveform.
func configDisplay(ctrl controller, d *Dev) {
	ctrl.sendCommand(setAnalogBlockControl)
	ctrl.sendData([]byte{0x54})

	ctrl.sendCommand(setDigitalBlockControl)
	ctrl.sendData([]byte{0x3B})

	// Gate setting, number of gate lines as little-endian uint16.
	gate := make([]byte, 3)
	binary.LittleEndian.PutUint16(gate, uint16(d.rows))
	ctrl.sendCommand(driverOutputControl)
	ctrl.sendData(gate)

	ctrl.sendCommand(gateDrivingVoltageControl)
	ctrl.sendData([]byte{0x17})

	ctrl.sendCommand(sourceDrivingVoltageControl)
	ctrl.sendData([]byte{0x41, 0xAC, 0x32})

	ctrl.sendCommand(setDummyLinePeriod)
	ctrl.sendData([]byte{0x07})

	ctrl.sendCommand(setGateTime)
	ctrl.sendData([]byte{0x04})

	// X/Y increment.
	ctrl.sendCommand(dataEntryModeSetting)
	ctrl.sendData([]byte{0x03})

	ctrl.sendCommand(writeVcomRegister)
	ctrl.sendData([]byte{0x3C})

	ctrl.sendCommand(borderWaveformControl)
	ctrl.sendData([]byte{0b00000000})
	switch {
	case d.border == Black:
		// GS Transition Define A + VSS + LUT0
		ctrl.sendCommand(borderWaveformControl)
		ctrl.sendData([]byte{0b00000000})
	case d.border == Red && d.color == Red:
		// Fix Level Define A + VSH2 + LUT3
		ctrl.sendCommand(borderWaveformControl)
		ctrl.sendData([]byte{0b01110011})
	case d.border == Yellow && d.color == Yellow:
		// GS Transition Define A + VSH2 + LUT3
		ctrl.sendCommand(borderWaveformControl)
		ctrl.sendData([]byte{0b00110011})
	case d.border == White:
		// GS Transition Define A + VSH2 + LUT1
		ctrl.sendCommand(borderWaveformControl)
		ctrl.sendData([]byte{0b00110001})
	}
	// Any other border/profile combination keeps the register at the
	// default written above.

	// VSH/VSL overrides for the yellow panels and the red wHAT.
	if d.color == Yellow {
		ctrl.sendCommand(sourceDrivingVoltageControl)
		ctrl.sendData([]byte{0x07, 0xAC, 0x32})
	}
	if d.color == Red && d.width == 400 && d.height == 300 {
		ctrl.sendCommand(sourceDrivingVoltageControl)
		ctrl.sendData([]byte{0x30, 0xAC, 0x22})
	}
}

// writeLut uploads the 70 byte waveform table.
func writeLut(ctrl controller, lut LUT) {
	ctrl.sendCommand(writeLutRegister)
	ctrl.sendData(lut[:70])
}

// writeFrame sets the RAM window to the full panel and uploads the two
// packed planes, black/white first, the accent plane second. The address
// pointer is reset to the origin before each plane.
func writeFrame(ctrl controller, cols, rows int, bw, accent []byte) {
	rowsLE := make([]byte, 2)
	binary.LittleEndian.PutUint16(rowsLE, uint16(rows))

	ctrl.sendCommand(setRAMXAddressStartEndPosition)
	ctrl.sendData([]byte{0x00, byte(cols/8 - 1)})

	ctrl.sendCommand(setRAMYAddressStartEndPosition)
	ctrl.sendData([]byte{0x00, 0x00, rowsLE[0], rowsLE[1]})

	for _, plane := range []struct {
		cmd byte
		buf []byte
	}{
		{writeRAMBW, bw},
		{writeRAMRed, accent},
	} {
		ctrl.sendCommand(setRAMXAddressCounter)
		ctrl.sendData([]byte{0x00})

		ctrl.sendCommand(setRAMYAddressCounter)
		ctrl.sendData([]byte{0x00, 0x00})

		ctrl.sendCommand(plane.cmd)
		ctrl.sendData(plane.buf)
	}
}

// triggerUpdate starts the refresh and gives the controller time to pull
// the busy line up before anyone samples it.
func triggerUpdate(ctrl controller) {
	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendData([]byte{0xC7})

	ctrl.sendCommand(masterActivation)

	time.Sleep(50 * time.Millisecond)
}

func deepSleep(ctrl controller) {
	ctrl.sendCommand(deepSleepMode)
	ctrl.sendData([]byte{0x01})
}

// updateSequence runs one complete refresh. When wait is false the
// sequence returns right after the trigger, leaving the panel mid-refresh
// and awake; the caller must not start another update until it finishes.
func updateSequence(ctrl controller, d *Dev, bw, accent []byte, wait bool) {
	softReset(ctrl)
	configDisplay(ctrl, d)
	writeLut(ctrl, d.lut)
	writeFrame(ctrl, d.cols, d.rows, bw, accent)
	triggerUpdate(ctrl)

	if wait {
		ctrl.waitUntilIdle(d.timeout)
		deepSleep(ctrl)
	}
}
