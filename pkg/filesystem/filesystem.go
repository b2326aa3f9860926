package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Exists checks whether or not a path points at an existing filesystem entity.
// A missing entity is reported as (false, nil), never as an error.
func Exists(path string) (bool, error) {
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, operationError(OperationExistsCheck, path, err)
	}
	return true, nil
}

// Metadata reads the metadata of the entity at the specified path, following
// symbolic links.
func Metadata(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, operationError(OperationReadMetadata, path, err)
	}
	return info, nil
}

// IsDirectory checks whether or not a path represents a directory on the
// filesystem.
func IsDirectory(path string) (bool, error) {
	info, err := Metadata(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// ReadDirectory reads the entries of the directory at the specified path.
func ReadDirectory(path string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, operationError(OperationReadDirectory, path, err)
	}
	return entries, nil
}

// Canonicalize returns the canonical form of a path, with all symbolic links
// resolved.
func Canonicalize(path string) (string, error) {
	canonical, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", operationError(OperationCanonicalize, path, err)
	}
	if canonical, err = filepath.Abs(canonical); err != nil {
		return "", operationError(OperationCanonicalize, path, err)
	}
	return canonical, nil
}

// CreateDirectories creates a directory and any missing parents.
func CreateDirectories(path string) error {
	if err := os.MkdirAll(path, 0700); err != nil {
		return operationError(OperationCreateDirectory, path, err)
	}
	return nil
}

// CopyFile copies the regular file at the source path to the destination
// path, preserving its permission bits. The destination is truncated if it
// exists.
func CopyFile(source, destination string) error {
	// Open the source file and grab its metadata so that permissions can be
	// propagated.
	sourceFile, err := os.Open(source)
	if err != nil {
		return operationError(OperationOpenFile, source, err)
	}
	defer sourceFile.Close()
	info, err := sourceFile.Stat()
	if err != nil {
		return operationError(OperationReadMetadata, source, err)
	}

	// Open the destination file.
	destinationFile, err := os.OpenFile(
		destination,
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
		info.Mode().Perm(),
	)
	if err != nil {
		return operationError(OperationOpenFile, destination, err)
	}

	// Copy the contents.
	if _, err := io.Copy(destinationFile, sourceFile); err != nil {
		destinationFile.Close()
		return twoPathOperationError(OperationCopy, source, destination, err)
	}

	// Close out the destination.
	if err := destinationFile.Close(); err != nil {
		return operationError(OperationWriteBuffer, destination, err)
	}

	// Success.
	return nil
}

// Rename renames a filesystem entity. It fails if the rename would cross a
// device boundary; use MoveDirectory for moves that need to handle that case.
func Rename(source, destination string) error {
	if err := os.Rename(source, destination); err != nil {
		return twoPathOperationError(OperationRename, source, destination, err)
	}
	return nil
}

// RemoveFile removes the file at the specified path.
func RemoveFile(path string) error {
	if err := os.Remove(path); err != nil {
		return operationError(OperationRemoveFile, path, err)
	}
	return nil
}

// RemoveEmptyDirectory removes the directory at the specified path, which
// must be empty.
func RemoveEmptyDirectory(path string) error {
	if err := os.Remove(path); err != nil {
		return operationError(OperationRemoveEmptyDirectory, path, err)
	}
	return nil
}

// SetPermissions sets the permission bits of the entity at the specified
// path.
func SetPermissions(path string, mode os.FileMode) error {
	if err := os.Chmod(path, mode); err != nil {
		return operationError(OperationSetPermissions, path, err)
	}
	return nil
}

// OpenFile opens a file with the specified flags and permission bits.
func OpenFile(path string, flag int, mode os.FileMode) (*os.File, error) {
	file, err := os.OpenFile(path, flag, mode)
	if err != nil {
		return nil, operationError(OperationOpenFile, path, err)
	}
	return file, nil
}

// FileName extracts the final component of a path, validating that the
// component exists and is valid Unicode.
func FileName(path string) (string, error) {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", pathError(ErrorKindMissingFileName, path)
	}
	if !utf8.ValidString(name) {
		return "", pathError(ErrorKindInvalidUnicode, path)
	}
	return name, nil
}

// FileStem extracts the final component of a path with any extension
// stripped.
func FileStem(path string) (string, error) {
	name, err := FileName(path)
	if err != nil {
		return "", err
	}
	if extension := filepath.Ext(name); extension != "" {
		name = name[:len(name)-len(extension)]
	}
	return name, nil
}

// ArchiveStem extracts the final component of a path with its archive
// extension stripped. Unlike FileStem, it also strips a second ".tar"
// extension, so that "game.tar.gz" yields "game".
func ArchiveStem(path string) (string, error) {
	stem, err := FileStem(path)
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(strings.ToLower(stem), ".tar") {
		stem = stem[:len(stem)-len(".tar")]
	}
	return stem, nil
}

// Parent extracts the parent of a path, failing with a typed error for paths
// that have none (such as a filesystem root).
func Parent(path string) (string, error) {
	parent := filepath.Dir(path)
	if parent == path {
		return "", pathError(ErrorKindMissingParent, path)
	}
	return parent, nil
}
