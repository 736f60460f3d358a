// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"devtool/internal/dispatch"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// isTerminal reports whether w is a terminal, so spinners are only drawn for people.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newCleanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: dispatch.Clean.Description(),
		Long: `Removes every .pytest_cache, .coverage, htmlcov and .mypy_cache entry
below the project root, at any depth. Only exact name matches are removed.
The artefact list can be changed with 'artefacts' in .dev.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dispatcher()
			if err != nil {
				return err
			}

			statusColor.Fprintf(a.stdout, "Cleaning artefacts under %s...\n", identifierColor.Sprint(d.Config.Root))

			var s *spinner.Spinner
			if isTerminal(a.stdout) {
				s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(a.stdout))
				s.Color("cyan")
				s.Suffix = " Scanning..."
				s.Start()
			}
			removed, err := d.Clean(cmd.Context())
			if s != nil {
				s.Stop()
			}

			for _, path := range removed {
				dimColor.Fprintf(a.stdout, "  removed %s\n", path)
			}
			if err != nil {
				return err
			}

			if len(removed) == 0 {
				fmt.Fprintln(a.stdout, "Nothing to clean.")
			} else {
				successColor.Fprintf(a.stdout, "Removed %d artefact(s).\n", len(removed))
			}
			return nil
		},
	}
}

func newTestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "test [keyword...]",
		Short: dispatch.Test.Description(),
		Long: `Runs the test runner on the tests directory, stopping at the first failure,
with maximal verbosity and previously failed tests first. Each keyword is
passed as its own -k filter.`,
		Example:           "  dev test\n  dev test parser\n  dev test parser lexer",
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			return d.Test(cmd.Context(), args)
		},
	}
}

func newCovCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cov",
		Short: dispatch.Cov.Description(),
		Long: `Runs the test suite with coverage for the package and writes an HTML report,
then serves the report on http://localhost:5000 until interrupted (Ctrl-C).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			if err := d.Cov(cmd.Context()); err != nil {
				return err
			}
			statusColor.Fprintln(a.stdout, "Coverage server stopped.")
			return nil
		},
	}
}

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [module...]",
		Short: dispatch.Lint.Description(),
		Long: `Runs the formatter, the import sorter and the linter on each target in turn.
Targets are dotted module paths under the package (core.io resolves to
<package>/core/io, or <package>/core/io.py when that directory does not exist).
With no targets the package and the tests directory are linted.
All targets are resolved before any tool runs.`,
		Example:           "  dev lint\n  dev lint core\n  dev lint core.io parser",
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: a.moduleCompletionFunc,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			return d.Lint(cmd.Context(), args)
		},
	}
}

func newTypeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "type [module...]",
		Short:             dispatch.Type.Description(),
		Long:              `Runs the type checker on <package>.<module> for each module given, or on the whole package.`,
		Example:           "  dev type\n  dev type core parser.lexer",
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: a.moduleCompletionFunc,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			return d.Type(cmd.Context(), args)
		},
	}
}
