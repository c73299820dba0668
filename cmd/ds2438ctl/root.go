// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/onewire/ds2438"
	"github.com/GermanBionicSystems/onewire/gpioonewire"
)

var (
	configPath string
	pinName    string
	rsenseOhms float64
)

var rootCmd = &cobra.Command{
	Use:   "ds2438ctl",
	Short: "DS2438 battery monitor tool",
	Long: `ds2438ctl talks to a single DS2438 smart battery monitor on a 1-wire bus
bit-banged on one GPIO pin.

The pin, the sense resistor and the bus timing can be set in a YAML file
passed with --config; --pin and --rsense override the file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&pinName, "pin", "p", "", "GPIO pin of the 1-wire bus (default GPIO4)")
	rootCmd.PersistentFlags().Float64VarP(&rsenseOhms, "rsense", "r", 0, "sense resistor in ohms (default 150)")
}

// settings returns the configuration after applying the flags.
func settings(cmd *cobra.Command) (*Config, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("pin") {
		cfg.Pin = pinName
	}
	if cmd.Flags().Changed("rsense") {
		cfg.SenseResistorOhms = rsenseOhms
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openDev initializes periph and returns the device on the configured pin.
func openDev(cmd *cobra.Command) (*ds2438.Dev, error) {
	cfg, err := settings(cmd)
	if err != nil {
		return nil, err
	}
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	p := gpioreg.ByName(cfg.Pin)
	if p == nil {
		return nil, fmt.Errorf("failed to find pin %s", cfg.Pin)
	}
	pull, _ := cfg.pull()
	opts := cfg.busOpts()
	bus, err := gpioonewire.New(&gpioonewire.PinLine{Pin: p, Pull: pull}, gpioonewire.SpinDelay{}, &opts)
	if err != nil {
		return nil, err
	}
	devOpts := cfg.devOpts()
	return ds2438.New(bus, &devOpts)
}
