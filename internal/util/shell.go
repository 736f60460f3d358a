// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package util

import "strings"

// shellSafe lists the bytes that never need quoting in a POSIX shell word.
const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_./=:,+@%"

// QuoteArgForShell quotes an argument for safe use in a POSIX shell command.
// It uses single quotes and escapes any internal single quotes. Arguments made
// only of safe characters are returned unchanged so echoed commands stay readable.
func QuoteArgForShell(arg string) string {
	if arg == "" {
		return "''"
	}
	if strings.Trim(arg, shellSafe) == "" {
		return arg
	}

	// Replace internal ' with '\'' and wrap in single quotes.
	quotedArg := strings.ReplaceAll(arg, "'", `'\''`)
	return `'` + quotedArg + `'`
}

// CommandLine renders name and args as a single copy-pasteable shell line.
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, QuoteArgForShell(name))
	for _, arg := range args {
		parts = append(parts, QuoteArgForShell(arg))
	}
	return strings.Join(parts, " ")
}
