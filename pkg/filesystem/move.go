package filesystem

import (
	"os"
	"path/filepath"
)

// copyDirectoryTree recursively copies the directory tree rooted at the
// source path to the destination path. Regular files are copied with their
// permission bits, symbolic links are recreated with their targets, and
// directories are created as needed. The resulting tree at the destination is
// byte-identical to the source.
func copyDirectoryTree(source, destination string) error {
	// Process directories breadth-first using an explicit queue so that
	// arbitrarily deep trees don't grow the stack.
	type pair struct {
		source      string
		destination string
	}
	queue := []pair{{source, destination}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		// Create the destination directory.
		if err := CreateDirectories(current.destination); err != nil {
			return err
		}

		// Enumerate and dispatch entries.
		entries, err := ReadDirectory(current.source)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			sourcePath := filepath.Join(current.source, entry.Name())
			destinationPath := filepath.Join(current.destination, entry.Name())
			if entry.IsDir() {
				queue = append(queue, pair{sourcePath, destinationPath})
			} else if entry.Type()&os.ModeSymlink != 0 {
				target, err := os.Readlink(sourcePath)
				if err != nil {
					return operationError(OperationReadMetadata, sourcePath, err)
				}
				if err := os.Symlink(target, destinationPath); err != nil {
					return twoPathOperationError(OperationCopy, sourcePath, destinationPath, err)
				}
			} else {
				if err := CopyFile(sourcePath, destinationPath); err != nil {
					return err
				}
			}
		}
	}

	// Success.
	return nil
}

// MoveDirectory moves a directory tree to a new location. It attempts a
// rename first and, if the rename fails because the destination lies on a
// different device, falls back to a recursive copy followed by a safe removal
// of the source. The destination's parent directories are created as needed.
func MoveDirectory(source, destination string) error {
	// Validate that the source is a directory.
	if isDirectory, err := IsDirectory(source); err != nil {
		return err
	} else if !isDirectory {
		return pathError(ErrorKindNotAFolder, source)
	}

	// Ensure that the destination's parent exists.
	if err := CreateDirectories(filepath.Dir(destination)); err != nil {
		return err
	}

	// Attempt a rename, which is atomic and cheap when it works.
	err := os.Rename(source, destination)
	if err == nil {
		return nil
	}

	// If the rename failed for any reason other than crossing a device
	// boundary, then report it.
	if !isCrossDeviceError(err) {
		return twoPathOperationError(OperationRename, source, destination, err)
	}

	// The destination lies on a different device, so fall back to copying the
	// tree and removing the source.
	if err := copyDirectoryTree(source, destination); err != nil {
		return err
	}
	return RemoveDirectorySafely(source)
}
