// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/GermanBionicSystems/onewire/ds2438"
)

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Width(14)
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
	crcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// pageRow formats a page with its CRC byte dimmed since it is not checked.
func pageRow(n ds2438.PageNumber, p ds2438.Page) string {
	data := fmt.Sprintf("% x", p[:ds2438.PageSize-1])
	crc := fmt.Sprintf(" %02x", p[ds2438.PageSize-1])
	return labelStyle.Render(fmt.Sprintf("page %d", n)) + valueStyle.Render(data) + crcStyle.Render(crc)
}
