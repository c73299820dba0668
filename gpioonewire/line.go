// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpioonewire

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// PinLine drives a 1-wire line through a periph GPIO pin.
//
// The pin emulates an open-drain output: it is an output at Low while the
// line is driven and an input otherwise. Pull selects the input pull, use
// gpio.Float when the bus has an external pull-up resistor.
type PinLine struct {
	Pin  gpio.PinIO
	Pull gpio.Pull
}

// NewPinLine returns a Line on p relying on the internal pull-up.
func NewPinLine(p gpio.PinIO) *PinLine {
	return &PinLine{Pin: p, Pull: gpio.PullUp}
}

func (l *PinLine) String() string {
	return l.Pin.String()
}

// DriveLow implements Line.
func (l *PinLine) DriveLow() error {
	return l.Pin.Out(gpio.Low)
}

// Release implements Line.
func (l *PinLine) Release() error {
	return l.Pin.In(l.Pull, gpio.NoEdge)
}

// Sample implements Line.
func (l *PinLine) Sample() gpio.Level {
	return l.Pin.Read()
}

// SpinDelay busy-waits on the monotonic clock.
//
// time.Sleep is far too coarse for 1-wire slots, SpinDelay never yields and
// keeps the calling goroutine on its thread for the whole duration.
// periph.io/x/host/v3/cpu.Nanospin is not used: on Linux it calls
// nanosleep, whose wakeup latency exceeds the 6µs write-one and read slots.
type SpinDelay struct{}

// Delay implements Delayer.
func (SpinDelay) Delay(d time.Duration) {
	start := time.Now()
	for time.Since(start) < d {
	}
}

// DelayFunc adapts a function to Delayer.
type DelayFunc func(d time.Duration)

// Delay implements Delayer.
func (f DelayFunc) Delay(d time.Duration) {
	f(d)
}

var _ Line = &PinLine{}
var _ Delayer = SpinDelay{}
