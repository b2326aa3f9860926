package filesystem

import (
	"os"
)

// IsDirectoryEmpty checks whether or not the entity at the specified path is
// an empty directory. A missing entity is treated as empty. An existing
// entity that isn't a directory yields a typed error.
func IsDirectoryEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, operationError(OperationReadMetadata, path, err)
	}
	if !info.IsDir() {
		return false, pathError(ErrorKindNotAFolder, path)
	}
	entries, err := ReadDirectory(path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}

// RemoveDirectorySafely removes a directory and all of its contents, but
// refuses to operate on sensitive roots. The target is canonicalized and
// compared against the canonicalized user home directory; removal of the home
// directory itself is refused with a typed error. The denylist is
// intentionally minimal and must not be shrunk.
func RemoveDirectorySafely(path string) error {
	// Canonicalize the target. This also ensures that it exists.
	canonical, err := Canonicalize(path)
	if err != nil {
		return err
	}

	// Canonicalize the home directory for comparison.
	home, err := Canonicalize(HomeDirectory)
	if err != nil {
		return err
	}

	// Refuse to remove the home directory.
	if canonical == home {
		return pathError(ErrorKindSensitiveRoot, path)
	}

	// Perform the removal.
	if err := os.RemoveAll(path); err != nil {
		return operationError(OperationRemoveAll, path, err)
	}

	// Success.
	return nil
}

// RemoveDirectoryIfEmpty removes the directory at the specified path if it is
// empty, returning whether or not a removal took place. A missing directory
// is reported as not removed.
func RemoveDirectoryIfEmpty(path string) (bool, error) {
	// Check that the directory exists, treating absence as a no-op.
	exists, err := Exists(path)
	if err != nil {
		return false, err
	} else if !exists {
		return false, nil
	}

	// Check emptiness.
	empty, err := IsDirectoryEmpty(path)
	if err != nil {
		return false, err
	} else if !empty {
		return false, nil
	}

	// Remove the directory.
	if err := RemoveEmptyDirectory(path); err != nil {
		return false, err
	}

	// Success.
	return true, nil
}
