// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ds2438 controls a Maxim DS2438 smart battery monitor over 1-wire.
//
// The device measures battery voltage, current and temperature and integrates
// the current into an 8 bit accumulator (ICA). It is addressed with skip-ROM
// and must be the only device on its bus.
//
// Memory is organized in eight 9 byte pages, the last byte of each page being
// a CRC which this package does not verify.
//
// Voltage and temperature conversions are polled until the busy flag of the
// status register clears. There is no timeout: a device that never clears
// its busy flag blocks ReadVoltage and ReadTemperature forever.
//
// Any onewire.Bus works; gpioonewire provides one on a single GPIO.
//
// For detailed information, refer to the [datasheet].
//
// [datasheet]: https://www.analog.com/media/en/technical-documentation/data-sheets/DS2438.pdf
package ds2438
