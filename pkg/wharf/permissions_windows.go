//go:build windows

package wharf

// applyMode is a no-op on Windows, where container permission modes have no
// equivalent.
func applyMode(path string, mode uint32) error {
	return nil
}
