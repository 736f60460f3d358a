// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package runner turns dispatcher operations into external tool invocations
// and runs them.
package runner

import (
	"context"
	"fmt"
	"strings"

	"devtool/internal/config"
)

// Step is a single external program invocation.
type Step struct {
	Name    string
	Command string
	Args    []string
}

// Argv returns the command followed by its arguments.
func (s Step) Argv() []string {
	return append([]string{s.Command}, s.Args...)
}

// Executor runs steps. Implementations block until the step has finished.
type Executor interface {
	Run(ctx context.Context, step Step) error
}

// ExitError reports a step that ran but exited with a non-zero status.
type ExitError struct {
	Step Step
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("step '%s' exited with status %d", e.Step.Name, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// newStep splits a configured tool such as "python -m pytest" into the
// program and its leading arguments.
func newStep(name, tool string, args ...string) Step {
	fields := strings.Fields(tool)
	if len(fields) == 0 {
		return Step{Name: name, Args: args}
	}
	return Step{
		Name:    name,
		Command: fields[0],
		Args:    append(fields[1:len(fields):len(fields)], args...),
	}
}

// TestStep runs the test suite, stopping at the first failure, with previously
// failed tests first. Every term becomes its own keyword filter.
func TestStep(cfg config.Config, terms []string) Step {
	args := []string{cfg.TestsDir, "-x", "-vv", "--ff"}
	for _, term := range terms {
		args = append(args, "-k", term)
	}
	return newStep("test", cfg.Tools.TestRunner, args...)
}

// CoverageStep runs the test suite with coverage for the package and an HTML report.
func CoverageStep(cfg config.Config) Step {
	return newStep("coverage", cfg.Tools.TestRunner,
		"--cov="+cfg.Package,
		"--cov-report=html",
		cfg.TestsDir,
	)
}

// LintSequence returns the formatter, import sorter and linter steps for path, in that order.
func LintSequence(cfg config.Config, path string) []Step {
	lineLength := fmt.Sprintf("%d", cfg.LineLength)

	linterArgs := []string{"--max-line-length=" + lineLength}
	if len(cfg.Tools.LintIgnore) > 0 {
		linterArgs = append(linterArgs, "--extend-ignore="+strings.Join(cfg.Tools.LintIgnore, ","))
	}
	linterArgs = append(linterArgs, path)

	return []Step{
		newStep("format", cfg.Tools.Formatter, "--line-length="+lineLength, path),
		newStep("sort imports", cfg.Tools.ImportSorter, "--profile=black", path),
		newStep("lint", cfg.Tools.Linter, linterArgs...),
	}
}

// TypeStep runs the type checker over the given qualified module names.
func TypeStep(cfg config.Config, modules []string) Step {
	args := make([]string, 0, 2*len(modules))
	for _, module := range modules {
		args = append(args, "-p", module)
	}
	return newStep("type check", cfg.Tools.TypeChecker, args...)
}
