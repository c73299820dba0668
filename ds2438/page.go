// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds2438

import (
	"fmt"
	"strings"
)

// PageSize is the size of a memory page including its trailing CRC byte.
const PageSize = 9

// Page is the content of one memory page as read from or written to the
// scratchpad.
//
// Byte 8 is the device's CRC of bytes 0..7. It is not verified.
type Page [PageSize]byte

// PageNumber selects one of the eight memory pages.
type PageNumber uint8

// NumPages is the number of memory pages of the device.
const NumPages = 8

// Status is byte 0 of page 0, the status/configuration register.
type Status byte

// Status/configuration register bits, datasheet p.15.
const (
	StatusIAD Status = 0x01 // current A/D and ICA enabled
	StatusCA  Status = 0x02 // current accumulator enabled
	StatusEE  Status = 0x04 // current accumulator shadowed to EEPROM
	StatusAD  Status = 0x08 // voltage A/D input: 1 VDD, 0 VAD
	StatusTB  Status = 0x10 // temperature conversion busy
	StatusNVB Status = 0x20 // EEPROM copy busy
	StatusADB Status = 0x40 // voltage conversion busy
)

func (s Status) String() string {
	names := []string{"IAD", "CA", "EE", "AD", "TB", "NVB", "ADB"}
	var set []string
	for i, n := range names {
		if s&(1<<i) != 0 {
			set = append(set, n)
		}
	}
	return "Status{" + strings.Join(set, "|") + "}"
}

// Status returns byte 0, meaningful for page 0 only.
func (p Page) Status() Status {
	return Status(p[0])
}

func (p Page) String() string {
	return fmt.Sprintf("% x", p[:])
}

const (
	cmdSkipROM         = 0xcc // address the only device on the bus
	cmdRecallMemory    = 0xb8 // copy page memory into the scratchpad
	cmdReadScratchpad  = 0xbe // read a scratchpad page
	cmdWriteScratchpad = 0x4e // write a scratchpad page
	cmdCopyScratchpad  = 0x48 // commit a scratchpad page into page memory
	cmdConvertV        = 0xb4 // start a voltage conversion
	cmdConvertT        = 0x44 // start a temperature conversion
)

// ReadPage reads page n.
//
// The page is first recalled into the scratchpad and then read from it, in two
// bus transactions.
func (d *Dev) ReadPage(n PageNumber) (Page, error) {
	var p Page
	if n >= NumPages {
		return p, fmt.Errorf("%w: page %d", ErrBadParameter, n)
	}
	if err := d.tx([]byte{cmdSkipROM, cmdRecallMemory, byte(n)}, nil); err != nil {
		return p, err
	}
	if err := d.tx([]byte{cmdSkipROM, cmdReadScratchpad, byte(n)}, p[:]); err != nil {
		return p, err
	}
	return p, nil
}

// WritePage writes p to page n.
//
// The data is written to the scratchpad and then copied into page memory, in
// two bus transactions.
func (d *Dev) WritePage(n PageNumber, p Page) error {
	if n >= NumPages {
		return fmt.Errorf("%w: page %d", ErrBadParameter, n)
	}
	w := make([]byte, 0, 3+PageSize)
	w = append(w, cmdSkipROM, cmdWriteScratchpad, byte(n))
	w = append(w, p[:]...)
	if err := d.tx(w, nil); err != nil {
		return err
	}
	return d.tx([]byte{cmdSkipROM, cmdCopyScratchpad, byte(n)}, nil)
}
