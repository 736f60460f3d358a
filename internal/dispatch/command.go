// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package dispatch

// Command is one of the operations the dispatcher knows.
type Command int

const (
	Clean Command = iota + 1
	Test
	Cov
	Lint
	Type
)

var commandNames = map[Command]string{
	Clean: "clean",
	Test:  "test",
	Cov:   "cov",
	Lint:  "lint",
	Type:  "type",
}

var commandDescriptions = map[Command]string{
	Clean: "Remove test, coverage and type-check artefacts",
	Test:  "Run the test suite, optionally filtered by keywords",
	Cov:   "Measure coverage and serve the HTML report",
	Lint:  "Format, sort imports and lint modules",
	Type:  "Type check the package or selected modules",
}

// Commands lists every command in menu order.
func Commands() []Command {
	return []Command{Clean, Test, Cov, Lint, Type}
}

// ParseCommand decodes the first command-line argument.
func ParseCommand(name string) (Command, error) {
	for _, c := range Commands() {
		if commandNames[c] == name {
			return c, nil
		}
	}
	return 0, &UnknownCommandError{Name: name}
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Description is the one-line summary shown in help and the picker.
func (c Command) Description() string {
	return commandDescriptions[c]
}

// TakesArgs reports whether trailing arguments are meaningful for c.
func (c Command) TakesArgs() bool {
	switch c {
	case Test, Lint, Type:
		return true
	default:
		return false
	}
}
