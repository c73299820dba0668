// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds2438

import (
	"fmt"
	"math"
	"testing"

	"periph.io/x/conn/v3/physic"
)

func TestDecodeTemperature(t *testing.T) {
	var testData = []struct {
		msb, lsb byte
		expected float64
	}{
		{0x19, 0x00, 25},
		{0xe7, 0x00, -25},
		{0x00, 0x00, 0},
		{0x19, 0x80, 25.5},
		{0x19, 0x08, 25.03125},
		{0x19, 0x07, 25}, // the 3 low bits are ignored
		{0x7d, 0x00, 125},
		{0xc9, 0x00, -55},
		{0xe7, 0x80, -25.5},
	}
	for _, entry := range testData {
		t.Run(fmt.Sprintf("%#02x_%#02x>%f", entry.msb, entry.lsb, entry.expected), func(t *testing.T) {
			if c := DecodeTemperature(entry.msb, entry.lsb).Celsius(); c != entry.expected {
				t.Errorf("expected %f, got %f", entry.expected, c)
			}
		})
	}
}

func TestDecodeVoltage(t *testing.T) {
	var testData = []struct {
		msb, lsb byte
		expected physic.ElectricPotential
	}{
		{0x00, 0x64, physic.Volt},
		{0x03, 0xff, 10230 * physic.MilliVolt},
		{0x00, 0x00, 0},
		{0x01, 0x00, 2560 * physic.MilliVolt},
		{0xfc, 0x01, 10 * physic.MilliVolt}, // only 2 bits of msb count
	}
	for _, entry := range testData {
		if v := DecodeVoltage(entry.msb, entry.lsb); v != entry.expected {
			t.Errorf("DecodeVoltage(%#x, %#x) = %s, expected %s", entry.msb, entry.lsb, v, entry.expected)
		}
	}
}

func TestDecodeCurrent(t *testing.T) {
	rsense := 150 * physic.Ohm
	magnitude := 10 / (4.096 * 150)
	var testData = []struct {
		msb, lsb byte
		expected float64 // mA
	}{
		{0x00, 0x0a, magnitude},
		{0xfc, 0x0a, -magnitude},
		{0x80, 0x0a, -magnitude},
		{0x04, 0x0a, -magnitude},
		{0x00, 0x00, 0},
		{0x03, 0xff, 1023 / (4.096 * 150)},
	}
	for _, entry := range testData {
		c := DecodeCurrent(entry.msb, entry.lsb, rsense)
		ma := float64(c) / float64(physic.MilliAmpere)
		// The result is rounded to the nanoampere.
		if math.Abs(ma-entry.expected) > 1e-6 {
			t.Errorf("DecodeCurrent(%#x, %#x) = %f mA, expected %f mA", entry.msb, entry.lsb, ma, entry.expected)
		}
	}
	if c := DecodeCurrent(0x00, 0x0a, 150*physic.Ohm); c <= 0 {
		t.Errorf("expected a charge current, got %s", c)
	}
}

func TestDecodeCapacity(t *testing.T) {
	if c := DecodeCapacity(0, 150*physic.Ohm); c != 0 {
		t.Errorf("expected 0, got %f", c)
	}
	if c, want := DecodeCapacity(0xff, 150*physic.Ohm), 255/(2.048*150); math.Abs(c-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, c)
	}
	if c, want := DecodeCapacity(100, 50*physic.Ohm), 100/(2.048*50); math.Abs(c-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, c)
	}
}

func TestPage_accessors(t *testing.T) {
	p := Page{0x49, 0x80, 0x19, 0x64, 0x00, 0x0a, 0xfc, 0x00, 0x5c}
	if s := p.Status(); s != StatusIAD|StatusAD|StatusADB {
		t.Errorf("status %s", s)
	}
	if s := p.Status().String(); s != "Status{IAD|AD|ADB}" {
		t.Error(s)
	}
	if c := p.Temperature().Celsius(); c != 25.5 {
		t.Errorf("temperature %f", c)
	}
	if v := p.Voltage(); v != physic.Volt {
		t.Errorf("voltage %s", v)
	}
	if c := p.Current(150 * physic.Ohm); c >= 0 {
		t.Errorf("expected discharge, got %s", c)
	}
	p[4] = 0x42
	if ica := p.ICA(); ica != 0x42 {
		t.Errorf("ICA %#x", ica)
	}
	if s := p.String(); s != "49 80 19 64 42 0a fc 00 5c" {
		t.Error(s)
	}
}

func TestStrings(t *testing.T) {
	if s := InputVDD.String(); s != "VDD" {
		t.Error(s)
	}
	if s := InputSource(7).String(); s != "InputSource(7)" {
		t.Error(s)
	}
	if s := Temperature.String(); s != "temperature" {
		t.Error(s)
	}
	m := Measurement{Quantity: Voltage, Value: 3.7}
	if s := m.String(); s != "voltage: 3.7V" {
		t.Error(s)
	}
}
