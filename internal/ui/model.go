// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui implements the interactive command picker shown when dev is
// started without arguments.
package ui

import (
	"strings"

	"devtool/internal/dispatch"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateCommandList state = iota
	stateArgsInput
)

var argPlaceholders = map[dispatch.Command]string{
	dispatch.Test: "keywords, e.g. parser lexer",
	dispatch.Lint: "modules, e.g. core core.io (empty: package and tests)",
	dispatch.Type: "modules, e.g. core parser.lexer (empty: whole package)",
}

// Model is the bubbletea model of the picker. After the program exits,
// Selection holds the chosen command line.
type Model struct {
	commands     []dispatch.Command
	cursor       int
	currentState state
	input        textinput.Model
	keys         KeyMap
	selection    []string
	width        int
}

// InitialModel returns a picker over every dispatcher command.
func InitialModel() Model {
	input := textinput.New()
	input.Prompt = "args> "
	input.CharLimit = 512

	return Model{
		commands:     dispatch.Commands(),
		currentState: stateCommandList,
		input:        input,
		keys:         DefaultKeyMap,
	}
}

// Selection returns the chosen argv, or nil when the user quit.
func (m *Model) Selection() []string {
	return m.selection
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.currentState == stateArgsInput {
			return m.handleArgsKeys(msg)
		}
		return m.handleListKeys(msg)
	}

	if m.currentState == stateArgsInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.commands)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		chosen := m.commands[m.cursor]
		if !chosen.TakesArgs() {
			m.selection = []string{chosen.String()}
			return m, tea.Quit
		}
		m.currentState = stateArgsInput
		m.input.Placeholder = argPlaceholders[chosen]
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *Model) handleArgsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Esc):
		m.input.Reset()
		m.input.Blur()
		m.currentState = stateCommandList
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		chosen := m.commands[m.cursor]
		m.selection = append([]string{chosen.String()}, strings.Fields(m.input.Value())...)
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("dev: choose a command"))
	b.WriteString("\n\n")

	for i, c := range m.commands {
		cursor := "  "
		name := c.String()
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
			name = selectedStyle.Render(name)
		}
		b.WriteString(cursor + name + "  " + descriptionStyle.Render(c.Description()) + "\n")
	}

	if m.currentState == stateArgsInput {
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("Arguments for " + m.commands[m.cursor].String()))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	border := mainContentBorderStyle
	if m.width > 2 {
		// Stretch the box to the terminal; the border takes one column per side.
		border = border.Width(m.width - 2)
	}
	body := border.Render(strings.TrimRight(b.String(), "\n"))
	return body + "\n" + m.footer() + "\n"
}

func (m *Model) footer() string {
	bindings := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Quit}
	if m.currentState == stateArgsInput {
		bindings = []key.Binding{m.keys.Enter, m.keys.Esc}
	}

	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, footerSeparatorStyle.Render(" | "))
}
