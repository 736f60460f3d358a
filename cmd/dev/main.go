// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package main

import (
	"fmt"
	"os"

	"devtool/cmd/cli"
	"devtool/cmd/tui"

	"github.com/mattn/go-isatty"
)

func main() {
	args := os.Args[1:]

	// Without arguments on an interactive terminal, let the user pick a
	// command. Otherwise the CLI handles everything, including help.
	if len(args) == 0 && isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
		chosen, err := tui.RunTUI()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
			os.Exit(1)
		}
		if chosen == nil {
			return
		}
		args = chosen
	}

	os.Exit(cli.Run(args))
}
