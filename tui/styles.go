// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import "github.com/charmbracelet/lipgloss"

type theme struct {
	header      lipgloss.Style
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	panel       lipgloss.Style
	modal       lipgloss.Style
	modalTitle  lipgloss.Style
	cursor      lipgloss.Style
	target      lipgloss.Style
	muted       lipgloss.Style
	status      lipgloss.Style
	errorStatus lipgloss.Style
	banner      lipgloss.Style
	actionKey   lipgloss.Style
	system      lipgloss.Style
	bar         lipgloss.Style
}

func newTheme() theme {
	red := lipgloss.Color("#e63946")
	green := lipgloss.Color("#2a9d8f")
	gold := lipgloss.Color("#ffd166")
	snow := lipgloss.Color("#f1faee")
	muted := lipgloss.Color("#8d99ae")

	return theme{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(snow).
			Background(red).
			Padding(0, 1),
		tabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1d3557")).
			Background(gold).
			Padding(0, 1),
		tabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(green).
			Padding(0, 1),
		modal: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(red).
			Padding(1, 2).
			Width(56),
		modalTitle:  lipgloss.NewStyle().Bold(true).Foreground(red),
		cursor:      lipgloss.NewStyle().Bold(true).Foreground(gold),
		target:      lipgloss.NewStyle().Bold(true).Foreground(green),
		muted:       lipgloss.NewStyle().Foreground(muted),
		status:      lipgloss.NewStyle().Foreground(green).Bold(true),
		errorStatus: lipgloss.NewStyle().Foreground(red).Bold(true),
		banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1d3557")).
			Background(gold).
			Padding(0, 2),
		actionKey: lipgloss.NewStyle().Bold(true).Foreground(gold),
		system:    lipgloss.NewStyle().Italic(true).Foreground(green),
		bar:       lipgloss.NewStyle().Foreground(red),
	}
}
