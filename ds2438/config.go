// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds2438

import "fmt"

// InputSource selects the input of the voltage A/D converter.
type InputSource uint8

const (
	// InputVAD measures the general purpose VAD input.
	InputVAD InputSource = 0
	// InputVDD measures the battery supply voltage.
	InputVDD InputSource = 1
)

func (s InputSource) String() string {
	switch s {
	case InputVAD:
		return "VAD"
	case InputVDD:
		return "VDD"
	default:
		return fmt.Sprintf("InputSource(%d)", uint8(s))
	}
}

// EnableIAD enables the current A/D converter and the integrated current
// accumulator.
func (d *Dev) EnableIAD() error {
	return d.updateStatus(StatusIAD, 0)
}

// DisableIAD disables the current A/D converter and the integrated current
// accumulator.
func (d *Dev) DisableIAD() error {
	return d.updateStatus(0, StatusIAD)
}

// EnableCA enables the charging and discharging current accumulators.
func (d *Dev) EnableCA() error {
	return d.updateStatus(StatusCA, 0)
}

// DisableCA disables the charging and discharging current accumulators.
func (d *Dev) DisableCA() error {
	return d.updateStatus(0, StatusCA)
}

// SelectInputSource selects what the voltage conversion measures.
func (d *Dev) SelectInputSource(s InputSource) error {
	switch s {
	case InputVDD:
		return d.updateStatus(StatusAD, 0)
	case InputVAD:
		return d.updateStatus(0, StatusAD)
	default:
		return fmt.Errorf("%w: input source %d", ErrBadParameter, s)
	}
}

// updateStatus does a read-modify-write of the status/configuration register.
//
// Nothing is written when the read fails.
func (d *Dev) updateStatus(set, unset Status) error {
	p, err := d.ReadPage(0)
	if err != nil {
		return err
	}
	p[0] = byte((Status(p[0]) | set) &^ unset)
	if err := d.WritePage(0, p); err != nil {
		return fmt.Errorf("%w: writing status: %w", ErrOperation, err)
	}
	return nil
}
