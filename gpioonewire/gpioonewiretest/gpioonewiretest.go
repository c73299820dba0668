// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gpioonewiretest simulates a 1-wire slave at the bit level so that
// gpioonewire can be exercised without hardware.
//
// Slave implements both gpioonewire.Line and gpioonewire.Delayer on a virtual
// clock: delays advance Now instantly and the slave decodes the master's low
// pulses by their width, like a real device does.
package gpioonewiretest

import (
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Responder is the byte-level behavior of a simulated device.
type Responder interface {
	// Reset is called on every reset pulse. It returns true to answer with a
	// presence pulse.
	Reset() bool
	// Write receives a byte written by the master.
	Write(c byte)
	// Read returns the next byte to transmit. ok is false when the device is
	// not transmitting, in which case the next slots are write slots.
	Read() (c byte, ok bool)
}

// Pulse is a low period driven by the master.
type Pulse struct {
	Start time.Duration
	Width time.Duration
}

const (
	resetMin    = 480 * time.Microsecond // shortest pulse seen as a reset
	write0Min   = 15 * time.Microsecond  // shortest pulse seen as a zero
	presenceOn  = 30 * time.Microsecond  // presence pulse start after release
	presenceOff = 150 * time.Microsecond // presence pulse end after release
	readHold    = 30 * time.Microsecond  // time a zero is held in a read slot
)

// Slave is a simulated device on a virtual clock.
//
// A nil Responder behaves as an empty bus.
type Slave struct {
	Responder Responder

	mu        sync.Mutex
	Now       time.Duration // virtual time
	Resets    int           // reset pulses seen
	Pulses    []Pulse       // every low pulse driven by the master
	Written   []byte        // bytes received in write slots
	ReadSlots int           // slots in which the slave transmitted a bit

	low          bool
	lowAt        time.Duration
	selected     bool
	presenceFrom time.Duration
	presenceTo   time.Duration
	rx           byte
	rxBits       int
	tx           byte
	txBits       int
	reading      bool
	slotBit      byte
}

func (s *Slave) String() string {
	return "gpioonewiretest.Slave"
}

// DriveLow implements gpioonewire.Line.
func (s *Slave) DriveLow() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.low {
		return nil
	}
	s.low = true
	s.lowAt = s.Now
	s.reading = false
	if s.selected && s.txBits == 0 && s.rxBits == 0 {
		if c, ok := s.Responder.Read(); ok {
			s.tx, s.txBits = c, 8
		}
	}
	if s.txBits > 0 {
		s.reading = true
		s.slotBit = s.tx & 1
		s.tx >>= 1
		s.txBits--
		s.ReadSlots++
	}
	return nil
}

// Release implements gpioonewire.Line.
func (s *Slave) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.low {
		return nil
	}
	s.low = false
	w := s.Now - s.lowAt
	s.Pulses = append(s.Pulses, Pulse{Start: s.lowAt, Width: w})
	switch {
	case w >= resetMin:
		s.Resets++
		s.rx, s.rxBits = 0, 0
		s.tx, s.txBits = 0, 0
		s.reading = false
		s.selected = s.Responder != nil && s.Responder.Reset()
		if s.selected {
			s.presenceFrom = s.Now + presenceOn
			s.presenceTo = s.Now + presenceOff
		}
	case s.reading:
	case s.selected:
		if w < write0Min {
			s.rx |= 1 << s.rxBits
		}
		s.rxBits++
		if s.rxBits == 8 {
			s.Written = append(s.Written, s.rx)
			s.Responder.Write(s.rx)
			s.rx, s.rxBits = 0, 0
		}
	}
	return nil
}

// Sample implements gpioonewire.Line.
func (s *Slave) Sample() gpio.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.low:
		return gpio.Low
	case s.Now >= s.presenceFrom && s.Now < s.presenceTo:
		return gpio.Low
	case s.reading && s.slotBit == 0 && s.Now < s.lowAt+readHold:
		return gpio.Low
	}
	return gpio.High
}

// Delay implements gpioonewire.Delayer by advancing the virtual clock.
func (s *Slave) Delay(d time.Duration) {
	s.mu.Lock()
	s.Now += d
	s.mu.Unlock()
}
