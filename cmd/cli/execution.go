// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"errors"
	"io"

	"devtool/internal/runner"
)

// reportingExecutor prints a banner around every step it hands to next.
// In quiet mode (dry runs) the banners are left out.
type reportingExecutor struct {
	next  runner.Executor
	out   io.Writer
	quiet bool
}

func (r *reportingExecutor) Run(ctx context.Context, step runner.Step) error {
	if r.quiet {
		return r.next.Run(ctx, step)
	}

	stepColor.Fprintf(r.out, "\n--- Running Step: %s (%s) ---\n", step.Name, identifierColor.Sprint(step.Command))

	err := r.next.Run(ctx, step)

	var exitErr *runner.ExitError
	switch {
	case err == nil:
		successColor.Fprintf(r.out, "--- Step '%s' completed successfully ---\n", step.Name)
	case errors.As(err, &exitErr):
		errorColor.Fprintf(r.out, "--- Step '%s' exited with status %d ---\n", step.Name, exitErr.Code)
	default:
		errorColor.Fprintf(r.out, "--- Step '%s' could not run ---\n", step.Name)
	}
	return err
}
