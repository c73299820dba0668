// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpioonewire_test

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/onewire"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/onewire/gpioonewire"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	p := gpioreg.ByName("GPIO4")
	if p == nil {
		log.Fatal("failed to find GPIO4")
	}
	bus, err := gpioonewire.New(gpioonewire.NewPinLine(p), gpioonewire.SpinDelay{}, nil)
	if err != nil {
		log.Fatal(err)
	}

	// Read ROM: family code, serial number and CRC of the only device.
	var rom [8]byte
	if err := bus.Tx([]byte{0x33}, rom[:], onewire.WeakPullup); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: % x\n", bus, rom)
}
