// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"strings"

	"devtool/internal/dispatch"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// routeArgs checks the command word that follows the global flags before
// cobra sees the command line. Only the workflow commands are accepted
// there: any other word, or an unknown flag in its place, is an unknown
// command. clean and cov only match on their own. Arguments after test,
// lint and type are passed on verbatim, so "dev test -v" filters on "-v"
// instead of turning on verbose logging. A lone -h or --help still shows
// the command's help.
func routeArgs(rootCmd *cobra.Command, args []string) ([]string, error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && arg != "-" {
			f, takesValue := lookupRootFlag(rootCmd, arg)
			if f == nil {
				return nil, &dispatch.UnknownCommandError{Name: arg}
			}
			if takesValue {
				i++
			}
			continue
		}

		// Shell completion scripts call back into the hidden completion command.
		if arg == cobra.ShellCompRequestCmd || arg == cobra.ShellCompNoDescRequestCmd {
			return append([]string{}, args...), nil
		}

		cmd, err := dispatch.ParseCommand(arg)
		if err != nil {
			return nil, err
		}
		rest := args[i+1:]
		switch {
		case len(rest) == 0:
			return append([]string{}, args...), nil
		case !cmd.TakesArgs():
			return nil, &dispatch.UnknownCommandError{Name: arg}
		case len(rest) == 1 && (rest[0] == "-h" || rest[0] == "--help"):
			return append([]string{}, args...), nil
		}

		routed := make([]string, 0, len(args)+1)
		routed = append(routed, args[:i+1]...)
		routed = append(routed, "--")
		return append(routed, rest...), nil
	}
	return append([]string{}, args...), nil
}

// lookupRootFlag finds the root flag a dash-prefixed word refers to and
// whether its value is the next word. Combined shorthands such as -nv are
// accepted when every letter is a known flag.
func lookupRootFlag(rootCmd *cobra.Command, arg string) (*pflag.Flag, bool) {
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		name, _, hasValue := strings.Cut(name, "=")
		f := findFlag(rootCmd, name, "")
		if f == nil {
			return nil, false
		}
		return f, !hasValue && f.NoOptDefVal == ""
	}

	letters := arg[1:]
	var f *pflag.Flag
	for j := 0; j < len(letters); j++ {
		f = findFlag(rootCmd, "", letters[j:j+1])
		if f == nil {
			return nil, false
		}
		if f.NoOptDefVal == "" {
			// The rest of the word, if any, is the value.
			return f, j == len(letters)-1
		}
	}
	return f, false
}

func findFlag(rootCmd *cobra.Command, name, shorthand string) *pflag.Flag {
	for _, fs := range []*pflag.FlagSet{rootCmd.PersistentFlags(), rootCmd.Flags()} {
		if name != "" {
			if f := fs.Lookup(name); f != nil {
				return f
			}
			continue
		}
		if f := fs.ShorthandLookup(shorthand); f != nil {
			return f
		}
	}
	return nil
}
