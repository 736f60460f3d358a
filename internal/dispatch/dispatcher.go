// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package dispatch routes a command line to one of the workflow operations
// (clean, test, cov, lint, type). Apart from clean, each operation only
// builds argument lists and hands them to an external program; tool output
// and exit status are left for the user to read.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"devtool/internal/config"
	"devtool/internal/logger"
	"devtool/internal/runner"
	"devtool/internal/server"
)

// ServeFunc publishes dir on addr until ctx is done. ready receives the URL
// once the server accepts connections.
type ServeFunc func(ctx context.Context, dir, addr string, ready func(url string)) error

// Dispatcher carries everything an operation needs. The zero value is not
// usable; Config and Exec must be set.
type Dispatcher struct {
	Config config.Config
	Exec   runner.Executor

	// Out receives the dispatcher's own messages. Defaults to os.Stdout.
	Out io.Writer

	// Serve replaces the coverage report server. Defaults to server.New(dir).ListenAndServe.
	Serve ServeFunc
}

// New returns a dispatcher for cfg that runs tools with exec.
func New(cfg config.Config, exec runner.Executor) *Dispatcher {
	return &Dispatcher{Config: cfg, Exec: exec}
}

// Run decodes argv[0] and performs that command with the remaining arguments.
// clean and cov are only recognised on their own; with trailing arguments
// they are unknown commands like any other word.
func (d *Dispatcher) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return ErrNoCommand
	}
	cmd, err := ParseCommand(argv[0])
	if err != nil {
		return err
	}
	if !cmd.TakesArgs() && len(argv) > 1 {
		return &UnknownCommandError{Name: argv[0]}
	}
	return d.Dispatch(ctx, cmd, argv[1:])
}

// Dispatch performs an already decoded command.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command, args []string) error {
	if !cmd.TakesArgs() && len(args) > 0 {
		return &UnexpectedArgsError{Command: cmd, Args: args}
	}

	logger.Info("dispatching command", "command", cmd.String(), "args", args, "root", d.Config.Root)

	switch cmd {
	case Clean:
		_, err := d.Clean(ctx)
		return err
	case Test:
		return d.Test(ctx, args)
	case Cov:
		return d.Cov(ctx)
	case Lint:
		return d.Lint(ctx, args)
	case Type:
		return d.Type(ctx, args)
	default:
		return &UnknownCommandError{Name: cmd.String()}
	}
}

// Test runs the test runner with one keyword filter per term.
func (d *Dispatcher) Test(ctx context.Context, terms []string) error {
	return d.runSteps(ctx, runner.TestStep(d.Config, terms))
}

// Cov runs the test suite under coverage, then serves the HTML report until
// ctx is cancelled. Cancellation is a normal way to stop and is not an error.
func (d *Dispatcher) Cov(ctx context.Context) error {
	if err := d.runSteps(ctx, runner.CoverageStep(d.Config)); err != nil {
		return err
	}

	logger.Infof("serving coverage report from %s", d.Config.ReportRoot())
	serve := d.Serve
	if serve == nil {
		serve = d.defaultServe
	}

	err := serve(ctx, d.Config.ReportRoot(), d.Config.CoverageAddr(), func(url string) {
		fmt.Fprintln(d.out(), url)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (d *Dispatcher) defaultServe(ctx context.Context, dir, addr string, ready func(string)) error {
	return server.New(dir).ListenAndServe(ctx, addr, ready)
}

// Lint resolves every target first, then runs the formatter, import sorter
// and linter on each path in turn.
func (d *Dispatcher) Lint(ctx context.Context, args []string) error {
	paths, err := ResolveLintPaths(d.Config, args)
	if err != nil {
		return err
	}

	var steps []runner.Step
	for _, path := range paths {
		steps = append(steps, runner.LintSequence(d.Config, path)...)
	}
	return d.runSteps(ctx, steps...)
}

// Type runs the type checker on the package or on the named sub-modules.
func (d *Dispatcher) Type(ctx context.Context, modules []string) error {
	return d.runSteps(ctx, runner.TypeStep(d.Config, QualifyModules(d.Config, modules)))
}

// runSteps runs every step exactly once, in order. A tool exiting non-zero
// is logged and does not stop the sequence; a tool that cannot be started does.
// Cancellation stops the sequence and is returned even when it arrives
// during the last step.
func (d *Dispatcher) runSteps(ctx context.Context, steps ...runner.Step) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := d.Exec.Run(ctx, step)
		if err == nil {
			continue
		}

		if ctx.Err() != nil {
			logger.Warnf("interrupted during step '%s'", step.Name)
			return ctx.Err()
		}
		var exitErr *runner.ExitError
		if errors.As(err, &exitErr) {
			logger.Warn("tool exited with non-zero status", "step", step.Name, "command", step.Command, "code", exitErr.Code)
			continue
		}
		return err
	}
	return ctx.Err()
}

func (d *Dispatcher) out() io.Writer {
	if d.Out == nil {
		return os.Stdout
	}
	return d.Out
}
