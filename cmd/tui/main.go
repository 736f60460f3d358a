// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tui

import (
	"fmt"

	"devtool/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// RunTUI shows the command picker and returns the argv the user chose,
// or nil if they quit without choosing.
func RunTUI() ([]string, error) {
	m := ui.InitialModel()
	p := tea.NewProgram(&m)
	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("command picker failed: %w", err)
	}
	return m.Selection(), nil
}
