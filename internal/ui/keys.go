// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// This file defines the keyboard bindings for the command picker.

package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the picker.
type KeyMap struct {
	Up    key.Binding // Move cursor up
	Down  key.Binding // Move cursor down
	Enter key.Binding // Choose the highlighted command / confirm arguments
	Esc   key.Binding // Leave the argument prompt
	Quit  key.Binding // Exit without running anything
}

// DefaultKeyMap provides the default keybindings.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
