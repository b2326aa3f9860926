//go:build !windows

package wharf

import (
	"os"

	"github.com/pkg/errors"
)

// applyMode applies a clamped container mode to the entity at the specified
// path. Entities that don't exist and symbolic links are skipped, and the
// permission change is skipped when the on-disk mode already matches.
func applyMode(path string, mode uint32) error {
	// Check that the entity exists, skipping it otherwise. Permissions are
	// applied after file and symlink creation, so an entry that's missing at
	// this point was intentionally not materialized.
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "unable to read metadata: %q", path)
	}

	// Skip symbolic links, since a permission change would follow the link
	// and alter its target's mode.
	if info.Mode()&os.ModeSymlink != 0 {
		return nil
	}

	// Clamp the mode.
	clamped := os.FileMode(MaskMode(mode))

	// Apply the mode if it differs from the on-disk permissions.
	if info.Mode().Perm() != clamped {
		if err := os.Chmod(path, clamped); err != nil {
			return errors.Wrapf(err, "unable to change permissions: %q", path)
		}
	}

	// Success.
	return nil
}
