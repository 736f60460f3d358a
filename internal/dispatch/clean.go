// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"devtool/internal/logger"
)

// Clean removes every entry below the root whose name is exactly one of the
// artefact names, at any depth. Matching directories are removed with their
// contents and not descended into. It returns the removed paths.
func (d *Dispatcher) Clean(ctx context.Context) ([]string, error) {
	root := d.Config.Root
	var removed []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Already gone, e.g. removed by a concurrent tool.
			if errors.Is(err, fs.ErrNotExist) && path != root {
				return nil
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == root || !slices.Contains(d.Config.Artefacts, entry.Name()) {
			return nil
		}

		if entry.IsDir() {
			if err := os.RemoveAll(path); err != nil {
				return fmt.Errorf("failed to remove %s: %w", path, err)
			}
			removed = append(removed, path)
			logger.Debug("removed artefact directory", "path", path)
			return filepath.SkipDir
		}

		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed = append(removed, path)
		logger.Debug("removed artefact", "path", path)
		return nil
	})

	logger.Info("clean finished", "root", root, "removed", len(removed))
	return removed, err
}
