// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/onewire/ds2438"
)

var presentCmd = &cobra.Command{
	Use:   "present",
	Short: "Check for a device on the bus",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDev(cmd)
		if err != nil {
			return err
		}
		ok, err := d.IsDevicePresent()
		if err != nil {
			return err
		}
		if !ok {
			return ds2438.ErrDeviceNotFound
		}
		fmt.Fprintln(cmd.OutOrStdout(), row("device", "present"))
		return nil
	},
}

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Read or write a memory page",
}

var pageReadCmd = &cobra.Command{
	Use:   "read <page>",
	Short: "Read one page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parsePage(args[0])
		if err != nil {
			return err
		}
		d, err := openDev(cmd)
		if err != nil {
			return err
		}
		p, err := d.ReadPage(n)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), pageRow(n, p))
		return nil
	},
}

var pageWriteCmd = &cobra.Command{
	Use:   "write <page> <b0> ... <b8>",
	Short: "Write one page, bytes in hexadecimal",
	Args:  cobra.ExactArgs(1 + ds2438.PageSize),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parsePage(args[0])
		if err != nil {
			return err
		}
		p, err := parsePageData(args[1:])
		if err != nil {
			return err
		}
		d, err := openDev(cmd)
		if err != nil {
			return err
		}
		return d.WritePage(n, p)
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Read all pages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDev(cmd)
		if err != nil {
			return err
		}
		for n := ds2438.PageNumber(0); n < ds2438.NumPages; n++ {
			p, err := d.ReadPage(n)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pageRow(n, p))
		}
		return nil
	},
}

var measureCmd = &cobra.Command{
	Use:       "measure [voltage|temperature|current|capacity]...",
	Short:     "Measure voltage, temperature, current and remaining capacity",
	ValidArgs: []string{"voltage", "temperature", "current", "capacity"},
	Args:      cobra.OnlyValidArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		qs, err := parseQuantities(args)
		if err != nil {
			return err
		}
		d, err := openDev(cmd)
		if err != nil {
			return err
		}
		for _, q := range qs {
			m, err := d.Measure(q)
			if err != nil {
				return fmt.Errorf("%s: %w", q, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), row(q.String(), fmt.Sprintf("%.5f %s", m.Value, q.Unit())))
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Change the status/configuration register",
}

var configIADCmd = &cobra.Command{
	Use:       "iad on|off",
	Short:     "Enable or disable the current A/D and the ICA",
	ValidArgs: []string{"on", "off"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDev(cmd)
		if err != nil {
			return err
		}
		if args[0] == "on" {
			return d.EnableIAD()
		}
		return d.DisableIAD()
	},
}

var configCACmd = &cobra.Command{
	Use:       "ca on|off",
	Short:     "Enable or disable the current accumulators",
	ValidArgs: []string{"on", "off"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDev(cmd)
		if err != nil {
			return err
		}
		if args[0] == "on" {
			return d.EnableCA()
		}
		return d.DisableCA()
	},
}

var configInputCmd = &cobra.Command{
	Use:       "input vdd|vad",
	Short:     "Select the voltage A/D input",
	ValidArgs: []string{"vdd", "vad"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDev(cmd)
		if err != nil {
			return err
		}
		s := ds2438.InputVAD
		if args[0] == "vdd" {
			s = ds2438.InputVDD
		}
		return d.SelectInputSource(s)
	},
}

func init() {
	pageCmd.AddCommand(pageReadCmd, pageWriteCmd)
	configCmd.AddCommand(configIADCmd, configCACmd, configInputCmd)
	rootCmd.AddCommand(presentCmd, pageCmd, dumpCmd, measureCmd, configCmd)
}

func parsePage(s string) (ds2438.PageNumber, error) {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil || n >= ds2438.NumPages {
		return 0, fmt.Errorf("%w: page %q", ds2438.ErrBadParameter, s)
	}
	return ds2438.PageNumber(n), nil
}

func parsePageData(args []string) (ds2438.Page, error) {
	var p ds2438.Page
	if len(args) != len(p) {
		return p, fmt.Errorf("expected %d bytes, got %d", len(p), len(args))
	}
	for i, a := range args {
		v, err := strconv.ParseUint(a, 16, 8)
		if err != nil {
			return p, fmt.Errorf("byte %d: %w", i, err)
		}
		p[i] = byte(v)
	}
	return p, nil
}

func parseQuantities(args []string) ([]ds2438.Quantity, error) {
	all := []ds2438.Quantity{ds2438.Voltage, ds2438.Temperature, ds2438.Current, ds2438.Capacity}
	if len(args) == 0 {
		return all, nil
	}
	var qs []ds2438.Quantity
	for _, a := range args {
		found := false
		for _, q := range all {
			if q.String() == a {
				qs = append(qs, q)
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown quantity %q", a)
		}
	}
	return qs, nil
}
