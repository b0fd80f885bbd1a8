// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gpuui

import "github.com/charmbracelet/lipgloss"

// Theme is the viewer palette. Colors are ANSI 256-color codes.
type Theme struct {
	Title      lipgloss.Color
	Label      lipgloss.Color
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	Border     lipgloss.Color

	// Gauge fills blend from GaugeLow to GaugeHigh across the bar.
	GaugeLow  lipgloss.Color
	GaugeHigh lipgloss.Color

	// Temperatures at or above HotThreshold render in Hot.
	Hot          lipgloss.Color
	HotThreshold uint32
}

// DefaultTheme matches the text report colors.
var DefaultTheme = Theme{
	Title:        lipgloss.Color("15"),
	Label:        lipgloss.Color("245"),
	NormalText:   lipgloss.Color("252"),
	FaintText:    lipgloss.Color("242"),
	Border:       lipgloss.Color("238"),
	GaugeLow:     lipgloss.Color("#5FAF5F"),
	GaugeHigh:    lipgloss.Color("#D75F5F"),
	Hot:          lipgloss.Color("203"),
	HotThreshold: 85_000,
}

type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	faint lipgloss.Style
	hot   lipgloss.Style
	frame lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(theme.Title),
		label: lipgloss.NewStyle().Foreground(theme.Label).Width(labelWidth),
		value: lipgloss.NewStyle().Foreground(theme.NormalText),
		faint: lipgloss.NewStyle().Foreground(theme.FaintText),
		hot:   lipgloss.NewStyle().Bold(true).Foreground(theme.Hot),
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}
