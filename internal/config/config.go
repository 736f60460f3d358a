// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config holds the settings the dispatcher works with: the project
// root, the package name, line length, the coverage server address, the
// artefact names removed by clean and the external tools that get invoked.
// Defaults reproduce the stock Python workflow; a project may override them
// with a .dev.yaml file in its root.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the per-project configuration file looked up in the root.
const FileName = ".dev.yaml"

const (
	DefaultLineLength   = 120
	DefaultCoverageHost = "localhost"
	DefaultCoveragePort = 5000
	DefaultTestsDir     = "tests"
	DefaultSourceExt    = ".py"
	DefaultReportDir    = "htmlcov"
)

// DefaultArtefacts are the names clean removes wherever they appear in the tree.
var DefaultArtefacts = []string{
	".pytest_cache",
	".coverage",
	"htmlcov",
	".mypy_cache",
}

// Coverage describes where the HTML coverage report is written and served.
type Coverage struct {
	// Host is the interface the report server binds to
	Host string `yaml:"host"`

	// Port is the TCP port of the report server
	Port int `yaml:"port"`

	// ReportDir is the report directory, relative to the root
	ReportDir string `yaml:"report_dir"`
}

// Tools names the external programs each operation invokes.
type Tools struct {
	TestRunner   string   `yaml:"test_runner"`
	Formatter    string   `yaml:"formatter"`
	ImportSorter string   `yaml:"import_sorter"`
	Linter       string   `yaml:"linter"`
	TypeChecker  string   `yaml:"type_checker"`
	LintIgnore   []string `yaml:"lint_ignore"`
}

// Config is the full set of values the dispatcher needs for one invocation.
type Config struct {
	// Root is the project directory. It is never read from the file.
	Root string `yaml:"-"`

	// Package is the name of the source package under Root
	Package string `yaml:"package"`

	// TestsDir is the test tree, relative to Root
	TestsDir string `yaml:"tests_dir"`

	// SourceExt is appended when a lint target does not exist as given
	SourceExt string `yaml:"source_ext"`

	// LineLength is passed to the formatter and the linter
	LineLength int `yaml:"line_length"`

	Coverage  Coverage `yaml:"coverage"`
	Artefacts []string `yaml:"artefacts"`
	Tools     Tools    `yaml:"tools"`
}

// Default returns the configuration used when no file is present.
func Default(root string) Config {
	return Config{
		Root:       root,
		Package:    packageFromRoot(root),
		TestsDir:   DefaultTestsDir,
		SourceExt:  DefaultSourceExt,
		LineLength: DefaultLineLength,
		Coverage: Coverage{
			Host:      DefaultCoverageHost,
			Port:      DefaultCoveragePort,
			ReportDir: DefaultReportDir,
		},
		Artefacts: append([]string(nil), DefaultArtefacts...),
		Tools: Tools{
			TestRunner:   "pytest",
			Formatter:    "black",
			ImportSorter: "isort",
			Linter:       "flake8",
			TypeChecker:  "mypy",
			LintIgnore:   []string{"E203"},
		},
	}
}

func packageFromRoot(root string) string {
	base := filepath.Base(filepath.Clean(root))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.ReplaceAll(base, "-", "_")
}

// Load builds the configuration for root. An empty path means Root/.dev.yaml,
// which is optional; an explicit path must exist.
func Load(root, path string) (Config, error) {
	cfg := Default(root)

	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, cfg.Validate()
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.Root = root

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first setting that would make an operation meaningless.
func (c Config) Validate() error {
	switch {
	case c.Root == "":
		return errors.New("root directory is not set")
	case c.Package == "":
		return errors.New("package name is empty")
	case c.LineLength <= 0:
		return fmt.Errorf("line_length must be positive, got %d", c.LineLength)
	case c.Coverage.Port < 1 || c.Coverage.Port > 65535:
		return fmt.Errorf("coverage port %d is out of range", c.Coverage.Port)
	}

	tools := []struct{ key, name string }{
		{"test_runner", c.Tools.TestRunner},
		{"formatter", c.Tools.Formatter},
		{"import_sorter", c.Tools.ImportSorter},
		{"linter", c.Tools.Linter},
		{"type_checker", c.Tools.TypeChecker},
	}
	for _, t := range tools {
		if strings.TrimSpace(t.name) == "" {
			return fmt.Errorf("tools.%s is empty", t.key)
		}
	}
	return nil
}

// PackageRoot is the directory lint and module discovery resolve against.
func (c Config) PackageRoot() string {
	return filepath.Join(c.Root, c.Package)
}

// TestsRoot is the test tree passed to the test runner and the default lint target.
func (c Config) TestsRoot() string {
	return filepath.Join(c.Root, c.TestsDir)
}

// ReportRoot is the directory the coverage server publishes.
func (c Config) ReportRoot() string {
	return filepath.Join(c.Root, c.Coverage.ReportDir)
}

// CoverageAddr is the host:port the coverage server listens on.
func (c Config) CoverageAddr() string {
	return fmt.Sprintf("%s:%d", c.Coverage.Host, c.Coverage.Port)
}

// FindRoot walks up from dir looking for a .dev.yaml. When none is found it
// returns dir itself.
func FindRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("could not resolve %s: %w", dir, err)
	}
	for current := abs; ; {
		if _, err := os.Stat(filepath.Join(current, FileName)); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return abs, nil
		}
		current = parent
	}
}

// Save writes cfg to Root/.dev.yaml. It refuses to replace an existing file
// unless overwrite is set.
func Save(cfg Config, overwrite bool) (string, error) {
	path := filepath.Join(cfg.Root, FileName)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("config file %s already exists", path)
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return path, err
	}

	// Write with permissions rw-r--r-- (0644), the file is meant to be committed
	if err := os.WriteFile(path, data, 0644); err != nil {
		return path, fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return path, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	return data, nil
}
