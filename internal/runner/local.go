// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"devtool/internal/logger"
	"devtool/internal/util"
)

// Local runs steps as child processes of this one. Standard streams are
// forwarded untouched; nil streams fall back to the process's own.
type Local struct {
	// Dir is the working directory of every step
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// DryRun prints each command line instead of running it
	DryRun bool
}

// Run starts the step and waits for it. A non-zero exit is returned as *ExitError;
// any other error means the program could not be run at all.
func (l *Local) Run(ctx context.Context, step Step) error {
	line := util.CommandLine(step.Command, step.Args...)
	if l.DryRun {
		fmt.Fprintln(l.stderr(), "+ "+line)
		return nil
	}

	logger.Debug("running step", "step", step.Name, "command", line, "dir", l.Dir)

	cmd := exec.CommandContext(ctx, step.Command, step.Args...)
	cmd.Dir = l.Dir
	cmd.Stdin = l.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = l.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = l.stderr()

	if err := cmd.Start(); err != nil {
		logger.Errorf("could not start %s: %v", step.Command, err)
		return fmt.Errorf("failed to start step '%s': %w", step.Name, err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Step: step, Code: exitErr.ExitCode(), Err: err}
		}
		return fmt.Errorf("step '%s' failed: %w", step.Name, err)
	}
	logger.Debugf("step '%s' finished", step.Name)
	return nil
}

func (l *Local) stderr() io.Writer {
	if l.Stderr == nil {
		return os.Stderr
	}
	return l.Stderr
}
