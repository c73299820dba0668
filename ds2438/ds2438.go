// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds2438

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/onewire"
	"periph.io/x/conn/v3/physic"
)

var (
	// ErrDeviceNotFound is returned when no presence pulse answered a reset.
	// It implements onewire.BusError.
	ErrDeviceNotFound error = busError("ds2438: device not found")
	// ErrBadParameter is returned for a page number above 7 or an unknown
	// input source. No bus activity takes place.
	ErrBadParameter = errors.New("ds2438: bad parameter")
	// ErrOperation is returned when a later phase of a multi-phase operation
	// failed after an earlier phase succeeded. The cause is wrapped as well.
	ErrOperation = errors.New("ds2438: operation failed")
)

// Opts contains options to pass to the constructor.
type Opts struct {
	// SenseResistor is the current sense resistor between VSENS+ and VSENS-.
	SenseResistor physic.ElectricResistance
}

// DefaultOpts is the sense resistor of the reference design.
var DefaultOpts = Opts{
	SenseResistor: 150 * physic.Ohm,
}

// New returns a handle to the single DS2438 on the 1-wire bus o.
//
// The device is addressed with skip-ROM so it must be the only device on the
// bus. New does not talk to the device, use IsDevicePresent to check for it.
func New(o onewire.Bus, opts *Opts) (*Dev, error) {
	if o == nil {
		return nil, errors.New("ds2438: bus is required")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.SenseResistor <= 0 {
		return nil, errors.New("ds2438: invalid sense resistor")
	}
	return &Dev{bus: o, rsense: opts.SenseResistor}, nil
}

// Dev is a handle to a DS2438 smart battery monitor.
//
// Dev keeps no state about the device: every call talks to the device again.
// Dev is not safe for concurrent use and a page access is two bus
// transactions, so callers sharing the bus must serialize complete
// operations.
type Dev struct {
	bus    onewire.Bus
	rsense physic.ElectricResistance
}

func (d *Dev) String() string {
	return "DS2438{" + d.bus.String() + "}"
}

// Halt implements conn.Resource.
func (d *Dev) Halt() error {
	return nil
}

// IsDevicePresent issues a bus reset and reports whether a device answered
// it.
func (d *Dev) IsDevicePresent() (bool, error) {
	err := d.tx(nil, nil)
	if errors.Is(err, ErrDeviceNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Sense implements physic.SenseEnv.
//
// It runs a temperature conversion and fills e.Temperature.
func (d *Dev) Sense(e *physic.Env) error {
	t, err := d.ReadTemperature()
	if err != nil {
		return err
	}
	e.Temperature = t
	return nil
}

// SenseContinuous implements physic.SenseEnv.
func (d *Dev) SenseContinuous(time.Duration) (<-chan physic.Env, error) {
	return nil, errors.New("ds2438: not implemented")
}

// Precision implements physic.SenseEnv.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = tempLSB
}

// tx runs one bus transaction and classifies a missing presence pulse as
// ErrDeviceNotFound.
func (d *Dev) tx(w, r []byte) error {
	err := d.bus.Tx(w, r, onewire.WeakPullup)
	if err == nil {
		return nil
	}
	var se interface{ IsShorted() bool }
	if errors.As(err, &se) && se.IsShorted() {
		return fmt.Errorf("ds2438: %w", err)
	}
	var be onewire.BusError
	if errors.As(err, &be) && be.BusError() {
		return fmt.Errorf("%w: %w", ErrDeviceNotFound, err)
	}
	return fmt.Errorf("ds2438: %w", err)
}

// busError implements error and onewire.BusError.
type busError string

func (e busError) Error() string  { return string(e) }
func (e busError) BusError() bool { return true }

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
