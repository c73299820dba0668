// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpioonewire

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestPinLine(t *testing.T) {
	p := &gpiotest.Pin{N: "GPIO4", Num: 4, L: gpio.High}
	l := NewPinLine(p)
	if s := l.String(); s != p.String() {
		t.Fatal(s)
	}
	if err := l.DriveLow(); err != nil {
		t.Fatal(err)
	}
	if p.L != gpio.Low {
		t.Fatal("line not driven low")
	}
	if l.Sample() != gpio.Low {
		t.Fatal("expected to sample low")
	}
	if err := l.Release(); err != nil {
		t.Fatal(err)
	}
	if p.P != gpio.PullUp {
		t.Fatalf("expected pull-up on release, got %s", p.P)
	}
}

func TestSpinDelay(t *testing.T) {
	const d = 200 * time.Microsecond
	start := time.Now()
	SpinDelay{}.Delay(d)
	if e := time.Since(start); e < d {
		t.Fatalf("returned after %s, expected at least %s", e, d)
	}
}

func TestDelayFunc(t *testing.T) {
	var total time.Duration
	l := &gpiotest.Pin{N: "GPIO4", L: gpio.High}
	b, err := New(NewPinLine(l), DelayFunc(func(d time.Duration) { total += d }), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Reset(); err != nil {
		t.Fatal(err)
	}
	if total != 960*time.Microsecond {
		t.Fatalf("reset delays summed to %s", total)
	}
}
