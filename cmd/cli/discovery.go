// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"

	"devtool/internal/discovery"
)

// listModules prints every sub-package and source module below the package
// root in the dotted form lint and type accept. Sub-packages end in '/'.
func (a *app) listModules() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	modules, err := discovery.FindModules(cfg)
	if err != nil {
		return err
	}
	if len(modules) == 0 {
		statusColor.Fprintf(a.stdout, "No modules found under %s\n", cfg.PackageRoot())
		return nil
	}

	for _, m := range modules {
		if m.IsDir {
			fmt.Fprintf(a.stdout, "%s/\n", identifierColor.Sprint(m.Name))
		} else {
			fmt.Fprintln(a.stdout, m.Name)
		}
	}
	return nil
}
