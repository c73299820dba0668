// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpioonewire

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/onewire"
)

// Line is the open-drain data line of the bus.
//
// DriveLow pulls the line low, Release lets the pull-up resistor bring it
// back high and Sample returns the current level as seen on the wire.
type Line interface {
	DriveLow() error
	Release() error
	Sample() gpio.Level
}

// Delayer blocks the caller for at least the given duration.
//
// Implementations must not return early: every timing in Opts is a minimum.
type Delayer interface {
	Delay(d time.Duration)
}

// Opts contains the 1-wire timing used by the master.
//
// The values are minimums honored within the granularity of the Delayer.
// A full reset takes ResetLow+PresenceSample+ResetHigh, every bit slot takes
// Slot regardless of the bit value.
type Opts struct {
	ResetLow       time.Duration // reset low time, at least 480µs
	PresenceSample time.Duration // time between release and presence sample, 60µs..75µs
	ResetHigh      time.Duration // time held after the presence sample
	Slot           time.Duration // length of a read or write slot
	Write1Low      time.Duration // low time of a write-one slot
	Write0Low      time.Duration // low time of a write-zero slot
	ReadLow        time.Duration // low time initiating a read slot
	ReadSample     time.Duration // time between read release and sample
}

// DefaultOpts is the recommended standard-speed timing.
var DefaultOpts = Opts{
	ResetLow:       480 * time.Microsecond,
	PresenceSample: 70 * time.Microsecond,
	ResetHigh:      410 * time.Microsecond,
	Slot:           70 * time.Microsecond,
	Write1Low:      6 * time.Microsecond,
	Write0Low:      60 * time.Microsecond,
	ReadLow:        6 * time.Microsecond,
	ReadSample:     9 * time.Microsecond,
}

func (o *Opts) validate() error {
	switch {
	case o.ResetLow < 480*time.Microsecond:
		return errors.New("gpioonewire: reset low time must be at least 480µs")
	case o.PresenceSample < 60*time.Microsecond || o.PresenceSample > 70*time.Microsecond:
		return errors.New("gpioonewire: presence sample must be within 60µs..70µs")
	case o.ResetHigh < 0:
		return errors.New("gpioonewire: invalid reset high time")
	case o.Write1Low <= 0 || o.Write1Low >= 15*time.Microsecond:
		return errors.New("gpioonewire: write one low time must be within 0..15µs")
	case o.Write0Low < 60*time.Microsecond || o.Write0Low >= o.Slot:
		return errors.New("gpioonewire: write zero low time must be at least 60µs and fit in the slot")
	case o.ReadLow <= 0 || o.ReadLow+o.ReadSample > 15*time.Microsecond:
		return errors.New("gpioonewire: read sample must happen within 15µs of the slot start")
	case o.ReadLow+o.ReadSample >= o.Slot:
		return errors.New("gpioonewire: read sample does not fit in the slot")
	}
	return nil
}

// New returns a 1-wire bus master that bit-bangs the protocol on line.
//
// The bus implements onewire.Bus so it can be passed to any 1-wire device
// driver. opts may be nil, in which case DefaultOpts is used.
func New(line Line, delay Delayer, opts *Opts) (*Bus, error) {
	if line == nil || delay == nil {
		return nil, errors.New("gpioonewire: line and delay are required")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := line.Release(); err != nil {
		return nil, fmt.Errorf("gpioonewire: failed to release line: %w", err)
	}
	return &Bus{line: line, delay: delay, opts: *opts}, nil
}

// Bus is a 1-wire master driving a single open-drain line.
//
// Reset, WriteBit, ReadBit, WriteByte and ReadByte are the raw time slots and
// take no lock. Tx runs a complete transaction while holding the bus lock.
type Bus struct {
	mu    sync.Mutex
	line  Line
	delay Delayer
	opts  Opts
}

func (b *Bus) String() string {
	if s, ok := b.line.(fmt.Stringer); ok {
		return "gpioonewire{" + s.String() + "}"
	}
	return "gpioonewire"
}

// Halt implements conn.Resource.
//
// It releases the line.
func (b *Bus) Halt() error {
	return b.line.Release()
}

// Tx performs a bus transaction: a reset, the write of w and the read of
// len(r) bytes.
//
// If no device answers the reset with a presence pulse, Tx returns an error
// implementing onewire.BusError and no slot is issued. The line has no active
// pull-up so power is ignored.
func (b *Bus) Tx(w, r []byte, power onewire.Pullup) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	present, err := b.Reset()
	if err != nil {
		return err
	}
	if !present {
		return busError("gpioonewire: no device present")
	}
	for _, c := range w {
		if err := b.WriteByte(c); err != nil {
			return err
		}
	}
	for i := range r {
		if r[i], err = b.ReadByte(); err != nil {
			return err
		}
	}
	return nil
}

// Search implements onewire.Bus.
//
// ROM search is not supported; the master only addresses a single device with
// skip-ROM.
func (b *Bus) Search(alarmOnly bool) ([]onewire.Address, error) {
	return nil, errors.New("gpioonewire: search is not supported")
}

// Reset issues a reset pulse and reports whether a device answered with a
// presence pulse.
//
// The full reset slot is always held, even when no device is present.
func (b *Bus) Reset() (bool, error) {
	if err := b.line.DriveLow(); err != nil {
		return false, err
	}
	b.delay.Delay(b.opts.ResetLow)
	if err := b.line.Release(); err != nil {
		return false, err
	}
	b.delay.Delay(b.opts.PresenceSample)
	present := b.line.Sample() == gpio.Low
	b.delay.Delay(b.opts.ResetHigh)
	return present, nil
}

// WriteBit writes the lowest bit of bit in one slot.
func (b *Bus) WriteBit(bit byte) error {
	low := b.opts.Write0Low
	if bit&1 != 0 {
		low = b.opts.Write1Low
	}
	if err := b.line.DriveLow(); err != nil {
		return err
	}
	b.delay.Delay(low)
	if err := b.line.Release(); err != nil {
		return err
	}
	b.delay.Delay(b.opts.Slot - low)
	return nil
}

// ReadBit reads one bit in one slot. It returns 0 or 1.
func (b *Bus) ReadBit() (byte, error) {
	if err := b.line.DriveLow(); err != nil {
		return 0, err
	}
	b.delay.Delay(b.opts.ReadLow)
	if err := b.line.Release(); err != nil {
		return 0, err
	}
	b.delay.Delay(b.opts.ReadSample)
	var bit byte
	if b.line.Sample() == gpio.High {
		bit = 1
	}
	b.delay.Delay(b.opts.Slot - b.opts.ReadLow - b.opts.ReadSample)
	return bit, nil
}

// WriteByte writes c least significant bit first.
func (b *Bus) WriteByte(c byte) error {
	for i := 0; i < 8; i++ {
		if err := b.WriteBit(c & 1); err != nil {
			return err
		}
		c >>= 1
	}
	return nil
}

// ReadByte reads one byte, least significant bit first.
func (b *Bus) ReadByte() (byte, error) {
	var c byte
	for i := 0; i < 8; i++ {
		bit, err := b.ReadBit()
		if err != nil {
			return 0, err
		}
		c >>= 1
		if bit != 0 {
			c |= 0x80
		}
	}
	return c, nil
}

// busError implements error and onewire.BusError.
type busError string

func (e busError) Error() string  { return string(e) }
func (e busError) BusError() bool { return true }

var _ conn.Resource = &Bus{}
var _ onewire.Bus = &Bus{}
