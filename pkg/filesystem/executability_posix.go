//go:build !windows

package filesystem

import (
	"os"
)

// MakeExecutable ensures that the file at the specified path has all of its
// executable permission bits set. It is a no-op if the bits are already set.
func MakeExecutable(path string) error {
	// Grab the current permissions.
	info, err := Metadata(path)
	if err != nil {
		return err
	}
	mode := info.Mode()

	// If all executable bits are already set, then there's nothing to do.
	if mode&0111 == 0111 {
		return nil
	}

	// Add the executable bits.
	if err := os.Chmod(path, mode|0111); err != nil {
		return operationError(OperationSetPermissions, path, err)
	}

	// Success.
	return nil
}
