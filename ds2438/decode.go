// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds2438

import (
	"math"

	"periph.io/x/conn/v3/physic"
)

const (
	tempLSB    = 31250 * physic.MicroKelvin // 0.03125°C
	voltageLSB = 10 * physic.MilliVolt
)

// DecodeTemperature converts the temperature register, page 0 bytes 2 (msb)
// and 1 (lsb).
//
// msb holds the whole degrees as a signed 8 bit value, the upper 5 bits of
// lsb hold the fraction in 1/32°C which takes the sign of msb.
func DecodeTemperature(msb, lsb byte) physic.Temperature {
	t := physic.Temperature(int8(msb)) * physic.Kelvin
	frac := physic.Temperature(lsb>>3) * tempLSB
	if msb&0x80 != 0 {
		t -= frac
	} else {
		t += frac
	}
	return t + physic.ZeroCelsius
}

// DecodeVoltage converts the voltage register, page 0 bytes 4 (msb) and 3
// (lsb). The 10 bit result has a resolution of 10mV.
func DecodeVoltage(msb, lsb byte) physic.ElectricPotential {
	return physic.ElectricPotential(raw10(msb, lsb)) * voltageLSB
}

// DecodeCurrent converts the current register, page 0 bytes 6 (msb) and 5
// (lsb), measured across rsense.
//
// The magnitude is 10 bits wide, any of the upper 6 bits of msb set marks a
// discharge current which is returned as a negative value.
func DecodeCurrent(msb, lsb byte, rsense physic.ElectricResistance) physic.ElectricCurrent {
	ma := float64(raw10(msb, lsb)) / (4.096 * ohms(rsense))
	if msb&^0x03 != 0 {
		ma = -ma
	}
	return physic.ElectricCurrent(math.Round(ma * float64(physic.MilliAmpere)))
}

// DecodeCapacity converts the integrated current accumulator, page 1 byte 4,
// into mAh for the given sense resistor.
func DecodeCapacity(ica byte, rsense physic.ElectricResistance) float64 {
	return float64(ica) / (2.048 * ohms(rsense))
}

func raw10(msb, lsb byte) uint16 {
	return uint16(msb&0x03)<<8 | uint16(lsb)
}

func ohms(r physic.ElectricResistance) float64 {
	return float64(r) / float64(physic.Ohm)
}

// Temperature decodes the temperature register of page 0.
func (p Page) Temperature() physic.Temperature {
	return DecodeTemperature(p[2], p[1])
}

// Voltage decodes the voltage register of page 0.
func (p Page) Voltage() physic.ElectricPotential {
	return DecodeVoltage(p[4], p[3])
}

// Current decodes the current register of page 0.
func (p Page) Current(rsense physic.ElectricResistance) physic.ElectricCurrent {
	return DecodeCurrent(p[6], p[5], rsense)
}

// ICA returns the integrated current accumulator of page 1.
func (p Page) ICA() byte {
	return p[4]
}
