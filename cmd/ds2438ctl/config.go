// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/onewire/ds2438"
	"github.com/GermanBionicSystems/onewire/gpioonewire"
)

// Config is the optional configuration file.
type Config struct {
	Pin               string  `yaml:"pin"`
	Pull              string  `yaml:"pull"` // "up" or "float"
	SenseResistorOhms float64 `yaml:"sense_resistor_ohms"`
	Timing            Timing  `yaml:"timing"`
}

// Timing overrides the 1-wire timing in microseconds; zero keeps the default.
type Timing struct {
	ResetLow       int `yaml:"reset_low_us"`
	PresenceSample int `yaml:"presence_sample_us"`
	ResetHigh      int `yaml:"reset_high_us"`
	Slot           int `yaml:"slot_us"`
	Write1Low      int `yaml:"write1_low_us"`
	Write0Low      int `yaml:"write0_low_us"`
	ReadLow        int `yaml:"read_low_us"`
	ReadSample     int `yaml:"read_sample_us"`
}

func defaultConfig() *Config {
	return &Config{
		Pin:               "GPIO4",
		Pull:              "up",
		SenseResistorOhms: float64(ds2438.DefaultOpts.SenseResistor) / float64(physic.Ohm),
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Pin == "" {
		return errors.New("config: pin is required")
	}
	if _, err := c.pull(); err != nil {
		return err
	}
	if c.SenseResistorOhms <= 0 {
		return errors.New("config: sense_resistor_ohms must be positive")
	}
	t := []int{c.Timing.ResetLow, c.Timing.PresenceSample, c.Timing.ResetHigh, c.Timing.Slot,
		c.Timing.Write1Low, c.Timing.Write0Low, c.Timing.ReadLow, c.Timing.ReadSample}
	for _, v := range t {
		if v < 0 {
			return errors.New("config: timings must not be negative")
		}
	}
	return nil
}

func (c *Config) pull() (gpio.Pull, error) {
	switch c.Pull {
	case "", "up":
		return gpio.PullUp, nil
	case "float":
		return gpio.Float, nil
	default:
		return gpio.PullNoChange, fmt.Errorf("config: unknown pull %q", c.Pull)
	}
}

func (c *Config) busOpts() gpioonewire.Opts {
	o := gpioonewire.DefaultOpts
	set := func(d *time.Duration, us int) {
		if us != 0 {
			*d = time.Duration(us) * time.Microsecond
		}
	}
	set(&o.ResetLow, c.Timing.ResetLow)
	set(&o.PresenceSample, c.Timing.PresenceSample)
	set(&o.ResetHigh, c.Timing.ResetHigh)
	set(&o.Slot, c.Timing.Slot)
	set(&o.Write1Low, c.Timing.Write1Low)
	set(&o.Write0Low, c.Timing.Write0Low)
	set(&o.ReadLow, c.Timing.ReadLow)
	set(&o.ReadSample, c.Timing.ReadSample)
	return o
}

func (c *Config) devOpts() ds2438.Opts {
	return ds2438.Opts{SenseResistor: physic.ElectricResistance(c.SenseResistorOhms * float64(physic.Ohm))}
}
