// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package cli is the cobra front end of dev.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"devtool/internal/config"
	"devtool/internal/dispatch"
	"devtool/internal/logger"
	"devtool/internal/runner"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	stepColor       = color.New(color.FgYellow)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgBlue)
	dimColor        = color.New(color.Faint)
)

type options struct {
	root       string
	configPath string
	dryRun     bool
	verbose    bool

	// Root-only actions, taken when no command is given.
	showConfig  bool
	initConfig  bool
	force       bool
	listModules bool
	completion  string
}

// app holds the streams and flag values shared by all commands of one run.
type app struct {
	opts   options
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// exec and serve replace the real subprocess runner and report server in tests.
	exec  runner.Executor
	serve dispatch.ServeFunc
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout, stderr: stderr}
}

// loadConfig resolves the project root and reads its configuration.
func (a *app) loadConfig() (config.Config, error) {
	root := a.opts.root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.Config{}, fmt.Errorf("could not determine working directory: %w", err)
		}
		if root, err = config.FindRoot(wd); err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(root, a.opts.configPath)
}

// dispatcher builds a dispatcher whose steps are announced on stdout.
func (a *app) dispatcher() (*dispatch.Dispatcher, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	var exec runner.Executor = &runner.Local{
		Dir:    cfg.Root,
		Stdin:  a.stdin,
		Stdout: a.stdout,
		Stderr: a.stderr,
		DryRun: a.opts.dryRun,
	}
	if a.exec != nil {
		exec = a.exec
	}

	d := dispatch.New(cfg, &reportingExecutor{next: exec, out: a.stdout, quiet: a.opts.dryRun})
	d.Out = a.stdout
	d.Serve = a.serve
	return d, nil
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dev",
		Short: "Developer workflow commands",
		Long: `Runs the everyday developer tools of a Python project from one place:
the test suite, coverage with a local HTML report, formatters and linters,
and the type checker. It also cleans the artefacts those tools leave behind.

Settings come from .dev.yaml in the project root when present.`,
		Example:       "  dev test parser\n  dev lint core.io\n  dev type\n  dev cov",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitLogger(a.opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.runRootAction(cmd)
			}
			// routeArgs lets only workflow commands through, so this
			// normally reports an unknown command.
			command, err := dispatch.ParseCommand(args[0])
			if err != nil {
				return err
			}
			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			return d.Run(cmd.Context(), append([]string{command.String()}, args[1:]...))
		},
	}
	// The first argument belongs to the workflow commands alone.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{Use: "help", Hidden: true})
	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.opts.root, "root", "", "project root (default: nearest directory with .dev.yaml, else the working directory)")
	flags.StringVar(&a.opts.configPath, "config", "", "config file (default: <root>/.dev.yaml)")
	flags.BoolVarP(&a.opts.dryRun, "dry-run", "n", false, "print tool command lines instead of running them")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "mirror debug logs to stderr")

	local := rootCmd.Flags()
	local.BoolVar(&a.opts.showConfig, "show-config", false, "print the effective configuration as YAML")
	local.BoolVar(&a.opts.initConfig, "init-config", false, "write a .dev.yaml with the default settings into the project root")
	local.BoolVar(&a.opts.force, "force", false, "with --init-config, overwrite an existing .dev.yaml")
	local.BoolVar(&a.opts.listModules, "list-modules", false, "list the modules lint and type accept")
	local.StringVar(&a.opts.completion, "completion", "", "print a completion script for `shell` (bash, zsh, fish, powershell)")

	rootCmd.AddCommand(newCleanCmd(a))
	rootCmd.AddCommand(newTestCmd(a))
	rootCmd.AddCommand(newCovCmd(a))
	rootCmd.AddCommand(newLintCmd(a))
	rootCmd.AddCommand(newTypeCmd(a))
	return rootCmd
}

// runRootAction handles dev without a command: one of the root-only flags, or help.
func (a *app) runRootAction(cmd *cobra.Command) error {
	switch {
	case a.opts.showConfig:
		return a.showConfig()
	case a.opts.initConfig:
		return a.initConfig()
	case a.opts.listModules:
		return a.listModules()
	case a.opts.completion != "":
		return a.writeCompletion(cmd, a.opts.completion)
	}
	return cmd.Help()
}

// Run executes the command line and returns the process exit status.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, newApp(os.Stdin, os.Stdout, os.Stderr), args)
}

func execute(ctx context.Context, a *app, args []string) int {
	rootCmd := newRootCmd(a)

	err := func() error {
		routed, err := routeArgs(rootCmd, args)
		if err != nil {
			return err
		}
		rootCmd.SetArgs(routed)
		return rootCmd.ExecuteContext(ctx)
	}()
	if err == nil {
		return 0
	}

	var unknown *dispatch.UnknownCommandError
	switch {
	case errors.As(err, &unknown):
		fmt.Fprintln(a.stdout, unknown.Error())
		return 1
	case errors.Is(err, context.Canceled):
		errorColor.Fprintln(a.stderr, "Interrupted.")
		return 130
	}

	errorColor.Fprintf(a.stderr, "Error: %v\n", err)
	logger.Error("command failed", "args", args, "error", err)
	return 1
}
