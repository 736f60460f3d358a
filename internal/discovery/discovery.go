// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package discovery finds the modules of the configured package so that lint
// and type targets can be completed and picked interactively. Modules are
// reported in the dotted form those commands accept.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"devtool/internal/config"
	"devtool/internal/logger"
)

// Module is one importable unit below the package root.
type Module struct {
	Name  string // Dotted name relative to the package, e.g. "io.reader"
	Path  string // Filesystem path of the file or directory
	IsDir bool   // True for sub-packages
}

// skipDirs are never descended into, on top of hidden entries and artefacts.
var skipDirs = []string{"__pycache__", "node_modules"}

// FindModules walks the package root and returns every sub-package and
// source file it contains, sorted by name. A missing package root yields an
// empty result rather than an error.
func FindModules(cfg config.Config) ([]Module, error) {
	root := cfg.PackageRoot()
	logger.Debug("Discovering modules", "package_root", root)

	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Package root does not exist", "package_root", root)
			return nil, nil
		}
		return nil, fmt.Errorf("could not access package root %s: %w", root, err)
	}

	var modules []Module
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		name := d.Name()
		if ignored(cfg, name) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		switch {
		case d.IsDir():
			modules = append(modules, Module{Name: dotted(rel), Path: path, IsDir: true})
		case filepath.Ext(name) == cfg.SourceExt:
			stem := strings.TrimSuffix(rel, cfg.SourceExt)
			if filepath.Base(stem) == "__init__" {
				return nil
			}
			modules = append(modules, Module{Name: dotted(stem), Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking package root %s: %w", root, err)
	}

	slices.SortFunc(modules, func(a, b Module) int {
		return strings.Compare(a.Name, b.Name)
	})
	logger.Debug("Module discovery finished", "count", len(modules))
	return modules, nil
}

// ModuleNames is FindModules reduced to the dotted names, filtered by prefix.
func ModuleNames(cfg config.Config, prefix string) ([]string, error) {
	modules, err := FindModules(cfg)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(modules))
	for _, m := range modules {
		if strings.HasPrefix(m.Name, prefix) {
			names = append(names, m.Name)
		}
	}
	return names, nil
}

func ignored(cfg config.Config, name string) bool {
	return strings.HasPrefix(name, ".") ||
		slices.Contains(skipDirs, name) ||
		slices.Contains(cfg.Artefacts, name)
}

func dotted(rel string) string {
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", ".")
}
