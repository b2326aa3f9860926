//go:build windows

package filesystem

import (
	"errors"

	"golang.org/x/sys/windows"
)

// isCrossDeviceError indicates whether or not an error from a rename
// operation is due to the source and destination residing on different
// devices.
func isCrossDeviceError(err error) bool {
	return errors.Is(err, windows.ERROR_NOT_SAME_DEVICE)
}
