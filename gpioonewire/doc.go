// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gpioonewire implements a 1-wire bus master by bit-banging a single
// open-drain GPIO line.
//
// All slots are generated by the host: the reset pulse with presence detect
// and the read and write time slots at standard speed. Timing relies on a
// Delayer that busy-waits, so the calling goroutine is blocked for the whole
// transaction (a 9 byte page read takes a few milliseconds).
//
// The master addresses a single device with skip-ROM; ROM search is not
// implemented.
//
// For timing details, refer to the [application note].
//
// [application note]: https://www.analog.com/en/resources/technical-articles/1wire-communication-through-software.html
package gpioonewire
