// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds2438

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
)

// StartVoltageConversion starts a conversion of the selected voltage input.
func (d *Dev) StartVoltageConversion() error {
	return d.tx([]byte{cmdSkipROM, cmdConvertV}, nil)
}

// StartTemperatureConversion starts a temperature conversion.
func (d *Dev) StartTemperatureConversion() error {
	return d.tx([]byte{cmdSkipROM, cmdConvertT}, nil)
}

// HasVoltageData reports whether the last voltage conversion has completed.
func (d *Dev) HasVoltageData() (bool, error) {
	ready, _, err := d.pollReady(StatusADB)
	return ready, err
}

// HasTemperatureData reports whether the last temperature conversion has
// completed.
func (d *Dev) HasTemperatureData() (bool, error) {
	ready, _, err := d.pollReady(StatusTB)
	return ready, err
}

// ReadVoltage runs a voltage conversion and returns its result.
//
// ReadVoltage polls the busy flag without any timeout: it does not return
// until the device reports the conversion complete or a bus error occurs.
// When the device disappears while polling, the error matches both
// ErrOperation and ErrDeviceNotFound with errors.Is.
func (d *Dev) ReadVoltage() (physic.ElectricPotential, error) {
	if err := d.StartVoltageConversion(); err != nil {
		return 0, err
	}
	p, err := d.waitReady(StatusADB)
	if err != nil {
		return 0, err
	}
	return p.Voltage(), nil
}

// ReadTemperature runs a temperature conversion and returns its result.
//
// Like ReadVoltage, it polls without timeout and a device lost while polling
// matches both ErrOperation and ErrDeviceNotFound.
func (d *Dev) ReadTemperature() (physic.Temperature, error) {
	if err := d.StartTemperatureConversion(); err != nil {
		return 0, err
	}
	p, err := d.waitReady(StatusTB)
	if err != nil {
		return 0, err
	}
	return p.Temperature(), nil
}

// Current returns the last current measurement. The current A/D converter
// runs on its own when IAD is enabled; a negative value is a discharge.
func (d *Dev) Current() (physic.ElectricCurrent, error) {
	p, err := d.ReadPage(0)
	if err != nil {
		return 0, err
	}
	return p.Current(d.rsense), nil
}

// ICA returns the raw integrated current accumulator.
func (d *Dev) ICA() (byte, error) {
	p, err := d.ReadPage(1)
	if err != nil {
		return 0, err
	}
	return p.ICA(), nil
}

// Capacity returns the remaining capacity in mAh as integrated by the ICA.
func (d *Dev) Capacity() (float64, error) {
	ica, err := d.ICA()
	if err != nil {
		return 0, err
	}
	return DecodeCapacity(ica, d.rsense), nil
}

// pollReady reads page 0 and reports whether busy is clear. A set bit means
// the conversion is still running.
func (d *Dev) pollReady(busy Status) (bool, Page, error) {
	p, err := d.ReadPage(0)
	if err != nil {
		return false, p, err
	}
	return p.Status()&busy == 0, p, nil
}

// waitReady spins until busy is clear and returns the page that reported it.
func (d *Dev) waitReady(busy Status) (Page, error) {
	for {
		ready, p, err := d.pollReady(busy)
		if err != nil {
			return p, fmt.Errorf("%w: polling conversion: %w", ErrOperation, err)
		}
		if ready {
			return p, nil
		}
	}
}

// Quantity is a physical quantity measured by the device.
type Quantity int

// Quantities returned by Measure.
const (
	Voltage Quantity = iota
	Temperature
	Current
	Capacity
)

func (q Quantity) String() string {
	switch q {
	case Voltage:
		return "voltage"
	case Temperature:
		return "temperature"
	case Current:
		return "current"
	case Capacity:
		return "capacity"
	default:
		return fmt.Sprintf("Quantity(%d)", int(q))
	}
}

// Unit returns the unit of Measurement.Value for q.
func (q Quantity) Unit() string {
	switch q {
	case Voltage:
		return "V"
	case Temperature:
		return "°C"
	case Current:
		return "mA"
	case Capacity:
		return "mAh"
	default:
		return ""
	}
}

// Measurement is the result of Measure: one quantity in its Unit.
type Measurement struct {
	Quantity Quantity
	Value    float64
}

func (m Measurement) String() string {
	return fmt.Sprintf("%s: %g%s", m.Quantity, m.Value, m.Quantity.Unit())
}

// Measure returns q, running a conversion for voltage and temperature.
func (d *Dev) Measure(q Quantity) (Measurement, error) {
	m := Measurement{Quantity: q}
	switch q {
	case Voltage:
		v, err := d.ReadVoltage()
		if err != nil {
			return m, err
		}
		m.Value = float64(v) / float64(physic.Volt)
	case Temperature:
		t, err := d.ReadTemperature()
		if err != nil {
			return m, err
		}
		m.Value = t.Celsius()
	case Current:
		c, err := d.Current()
		if err != nil {
			return m, err
		}
		m.Value = float64(c) / float64(physic.MilliAmpere)
	case Capacity:
		c, err := d.Capacity()
		if err != nil {
			return m, err
		}
		m.Value = c
	default:
		return m, fmt.Errorf("%w: quantity %d", ErrBadParameter, int(q))
	}
	return m, nil
}
