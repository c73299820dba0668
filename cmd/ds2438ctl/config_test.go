// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/onewire/ds2438"
	"github.com/GermanBionicSystems/onewire/gpioonewire"
)

func writeConfig(t *testing.T, s string) string {
	path := filepath.Join(t.TempDir(), "ds2438.yaml")
	if err := os.WriteFile(path, []byte(s), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_defaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.validate(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(gpioonewire.DefaultOpts, cfg.busOpts()); diff != "" {
		t.Errorf("bus opts (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ds2438.DefaultOpts, cfg.devOpts()); diff != "" {
		t.Errorf("device opts (-want +got):\n%s", diff)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
pin: GPIO17
pull: float
sense_resistor_ohms: 0.05
timing:
  reset_low_us: 500
  slot_us: 75
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Pin != "GPIO17" {
		t.Errorf("pin %q", cfg.Pin)
	}
	if p, _ := cfg.pull(); p != gpio.Float {
		t.Errorf("pull %s", p)
	}
	want := gpioonewire.DefaultOpts
	want.ResetLow = 500 * time.Microsecond
	want.Slot = 75 * time.Microsecond
	if diff := cmp.Diff(want, cfg.busOpts()); diff != "" {
		t.Errorf("bus opts (-want +got):\n%s", diff)
	}
	if r := cfg.devOpts().SenseResistor; r != 50*physic.MilliOhm {
		t.Errorf("sense resistor %s", r)
	}
}

func TestLoadConfig_invalid(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
	if _, err := loadConfig(writeConfig(t, "pin: [")); err == nil {
		t.Error("expected parse error")
	}
	var tests = []string{
		"pin: ''",
		"pull: down",
		"sense_resistor_ohms: -1",
		"timing:\n  slot_us: -70",
	}
	for _, s := range tests {
		cfg, err := loadConfig(writeConfig(t, s))
		if err != nil {
			t.Fatal(err)
		}
		if err := cfg.validate(); err == nil {
			t.Errorf("%q: expected validation error", s)
		}
	}
}

func TestParsePage(t *testing.T) {
	if n, err := parsePage("7"); err != nil || n != 7 {
		t.Errorf("parsePage(7) = %d, %v", n, err)
	}
	for _, s := range []string{"8", "-1", "x"} {
		if _, err := parsePage(s); !errors.Is(err, ds2438.ErrBadParameter) {
			t.Errorf("parsePage(%q): %v", s, err)
		}
	}
}

func TestParsePageData(t *testing.T) {
	p, err := parsePageData([]string{"0b", "a0", "19", "64", "0", "ff", "1", "2", "5c"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ds2438.Page{0x0b, 0xa0, 0x19, 0x64, 0, 0xff, 1, 2, 0x5c}, p); diff != "" {
		t.Errorf("page (-want +got):\n%s", diff)
	}
	if _, err := parsePageData([]string{"100", "0", "0", "0", "0", "0", "0", "0", "0"}); err == nil {
		t.Error("expected range error")
	}
	if _, err := parsePageData([]string{"0"}); err == nil {
		t.Error("expected length error")
	}
}

func TestParseQuantities(t *testing.T) {
	qs, err := parseQuantities(nil)
	if err != nil || len(qs) != 4 {
		t.Fatalf("%v, %v", qs, err)
	}
	qs, err = parseQuantities([]string{"current", "voltage"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]ds2438.Quantity{ds2438.Current, ds2438.Voltage}, qs); diff != "" {
		t.Errorf("quantities (-want +got):\n%s", diff)
	}
	if _, err := parseQuantities([]string{"power"}); err == nil {
		t.Error("expected error")
	}
}
