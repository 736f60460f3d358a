// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package dispatch

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrNoCommand is returned by Run when argv is empty.
var ErrNoCommand = errors.New("no command given")

// UnknownCommandError is returned for a first argument that names no command.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %s", e.Name)
}

// PathNotFoundError is returned when a lint target resolves to nothing on disk.
// Path is the last location tried.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("%s does not exist", e.Path)
}

// Is lets callers test for fs.ErrNotExist.
func (e *PathNotFoundError) Is(target error) bool {
	return target == fs.ErrNotExist
}

// UnexpectedArgsError is returned when a command that takes no arguments gets some.
type UnexpectedArgsError struct {
	Command Command
	Args    []string
}

func (e *UnexpectedArgsError) Error() string {
	return fmt.Sprintf("%s takes no arguments, got %q", e.Command, e.Args)
}
