// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package inky drives the Pimoroni Inky pHAT and Inky wHAT tri-colour
// e-paper displays over SPI.
//
// The displays use an SSD1608 compatible controller with two RAM planes,
// one for black/white ink and one for the red or yellow accent ink. The
// driver keeps a logical pixel buffer, packs it into the two bit planes
// and runs the full refresh sequence (reset, configuration, waveform LUT
// upload, RAM write, update trigger, busy wait, deep sleep).
//
// Datasheet
//
// https://cdn-shop.adafruit.com/product-files/1346/SSD1608_1.2.pdf
//
// Product pages:
//
// Inky pHAT: https://shop.pimoroni.com/products/inky-phat
//
// Inky wHAT: https://shop.pimoroni.com/products/inky-what
package inky
