// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"

	"devtool/internal/config"
)

// showConfig prints the effective settings (package name, line length,
// coverage address, artefacts and tool names) as YAML.
func (a *app) showConfig() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	dimColor.Fprintf(a.stdout, "# root: %s\n", cfg.Root)
	fmt.Fprint(a.stdout, string(data))
	return nil
}

// initConfig writes a .dev.yaml holding the effective settings into the root.
func (a *app) initConfig() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	path, err := config.Save(cfg, a.opts.force)
	if err != nil {
		return fmt.Errorf("%w (use --force to overwrite)", err)
	}
	successColor.Fprintf(a.stdout, "Configuration written to %s\n", path)
	return nil
}
