// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package dispatch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"devtool/internal/config"
)

// ResolveLintPaths maps dotted module names to paths under the package root.
// "module.sub" becomes <package>/module/sub, or <package>/module/sub<ext> when
// the former is absent. All arguments are resolved before returning, so a
// missing target fails the whole call. No arguments select the package root
// and the tests root.
func ResolveLintPaths(cfg config.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{cfg.PackageRoot(), cfg.TestsRoot()}, nil
	}

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		path := filepath.Join(cfg.PackageRoot(), filepath.FromSlash(strings.ReplaceAll(arg, ".", "/")))

		exists, err := pathExists(path)
		if err != nil {
			return nil, err
		}
		if !exists {
			path += cfg.SourceExt
			if exists, err = pathExists(path); err != nil {
				return nil, err
			}
		}
		if !exists {
			return nil, &PathNotFoundError{Path: path}
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// QualifyModules prefixes each argument with the package name. No arguments
// select the package itself.
func QualifyModules(cfg config.Config, args []string) []string {
	if len(args) == 0 {
		return []string{cfg.Package}
	}
	modules := make([]string, 0, len(args))
	for _, arg := range args {
		modules = append(modules, cfg.Package+"."+arg)
	}
	return modules
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return false, nil
	default:
		return false, fmt.Errorf("could not check %s: %w", path, err)
	}
}
