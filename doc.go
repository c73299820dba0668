// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package onewire is a container for a bit-banged 1-wire bus master and the
// DS2438 battery monitor driver using it.
//
// See gpioonewire for the bus and ds2438 for the device. The ds2438ctl
// command under cmd/ exercises both on real hardware.
package onewire
