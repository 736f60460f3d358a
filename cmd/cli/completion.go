// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"slices"

	"devtool/internal/discovery"
	"devtool/internal/logger"

	"github.com/spf13/cobra"
)

// moduleCompletionFunc suggests dotted module names under the package root
// for lint and type, skipping modules already on the command line.
func (a *app) moduleCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := a.loadConfig()
	if err != nil {
		// Completion must stay silent; the real command will report the problem.
		logger.Debug("completion: could not load config", "error", err)
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names, err := discovery.ModuleNames(cfg, toComplete)
	if err != nil {
		logger.Debug("completion: module discovery failed", "error", err)
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	suggestions := make([]string, 0, len(names))
	for _, name := range names {
		if !slices.Contains(args, name) {
			suggestions = append(suggestions, name)
		}
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}

// writeCompletion prints the completion script for shell. It replaces cobra's
// completion command, which would take a first argument of its own.
func (a *app) writeCompletion(rootCmd *cobra.Command, shell string) error {
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(a.stdout, true)
	case "zsh":
		return rootCmd.GenZshCompletion(a.stdout)
	case "fish":
		return rootCmd.GenFishCompletion(a.stdout, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(a.stdout)
	default:
		return fmt.Errorf("unsupported shell %q (use bash, zsh, fish or powershell)", shell)
	}
}
