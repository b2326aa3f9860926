package wharf

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/Vidi0/scratch-io/pkg/filesystem"
)

// UnsafePathError indicates that a container entry's path would escape the
// build folder that it is being resolved against.
type UnsafePathError struct {
	// Path is the offending container path.
	Path string
}

// Error implements error.Error.
func (e *UnsafePathError) Error() string {
	return "container path is not safe: " + e.Path
}

// resolveWithin resolves a slash-separated container path against a build
// folder. Only normal path components and "." components (which are
// skipped) are permitted: parent references, roots, and empty components are
// rejected so that the resolved path can never escape the build folder.
func resolveWithin(buildFolder, path string) (string, error) {
	if strings.HasPrefix(path, "/") {
		return "", &UnsafePathError{Path: path}
	}
	resolved := buildFolder
	for _, component := range strings.Split(path, "/") {
		switch component {
		case ".":
			continue
		case "", "..":
			return "", &UnsafePathError{Path: path}
		}
		if filepath.IsAbs(component) || filepath.VolumeName(component) != "" {
			return "", &UnsafePathError{Path: path}
		}
		resolved = filepath.Join(resolved, component)
	}
	return resolved, nil
}

// ResolvePath resolves a directory's path against a build folder, enforcing
// path safety.
func (d *Dir) ResolvePath(buildFolder string) (string, error) {
	return resolveWithin(buildFolder, d.Path)
}

// ResolvePath resolves a file's path against a build folder, enforcing path
// safety.
func (f *File) ResolvePath(buildFolder string) (string, error) {
	return resolveWithin(buildFolder, f.Path)
}

// ResolvePath resolves a symlink's path against a build folder, enforcing
// path safety.
func (s *Symlink) ResolvePath(buildFolder string) (string, error) {
	return resolveWithin(buildFolder, s.Path)
}

// OpenRead opens the file for reading within a build folder.
func (f *File) OpenRead(buildFolder string) (*os.File, error) {
	path, err := f.ResolvePath(buildFolder)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open file for reading: %q", path)
	}
	return file, nil
}

// OpenWrite opens the file for writing within a build folder, truncating any
// existing contents.
func (f *File) OpenWrite(buildFolder string) (*os.File, error) {
	path, err := f.ResolvePath(buildFolder)
	if err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open file for writing: %q", path)
	}
	return file, nil
}

// GetFile looks up a file by index, validating the index against the
// container's file list.
func (c *Container) GetFile(index int64) (*File, error) {
	if index < 0 || index >= int64(len(c.Files)) {
		return nil, errors.Errorf("invalid file index: %d", index)
	}
	return c.Files[index], nil
}

// TotalBlocks computes the total number of hash blocks occupied by all of the
// container's files.
func (c *Container) TotalBlocks() uint64 {
	var total uint64
	for _, file := range c.Files {
		total += FileBlocks(uint64(file.Size))
	}
	return total
}

// CreateDirectories creates the build folder and all of the container's
// directories beneath it. Creation is recursive and idempotent.
func (c *Container) CreateDirectories(buildFolder string) error {
	// Create the build folder itself.
	if err := filesystem.CreateDirectories(buildFolder); err != nil {
		return err
	}

	// Create the container's directories.
	for _, dir := range c.Dirs {
		path, err := dir.ResolvePath(buildFolder)
		if err != nil {
			return err
		}
		if err := filesystem.CreateDirectories(path); err != nil {
			return err
		}
	}

	// Success.
	return nil
}

// CreateFiles ensures that all of the container's files exist beneath the
// build folder. Existing files keep their contents; missing files are created
// empty.
func (c *Container) CreateFiles(buildFolder string) error {
	for _, file := range c.Files {
		path, err := file.ResolvePath(buildFolder)
		if err != nil {
			return err
		}

		// Open in append mode so that an existing file isn't touched. The
		// handle is closed immediately, this only ensures existence.
		handle, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return errors.Wrapf(err, "unable to create file: %q", path)
		}
		handle.Close()
	}

	// Success.
	return nil
}

// CreateSymlinks creates all of the container's symbolic links beneath the
// build folder, replacing any existing entries at their paths.
func (c *Container) CreateSymlinks(buildFolder string) error {
	for _, symlink := range c.Symlinks {
		path, err := symlink.ResolvePath(buildFolder)
		if err != nil {
			return err
		}

		// Remove any existing entry at the link's path.
		if _, err := os.Lstat(path); err == nil {
			if err := os.Remove(path); err != nil {
				return errors.Wrapf(err, "unable to remove existing symlink: %q", path)
			}
		} else if !os.IsNotExist(err) {
			return errors.Wrapf(err, "unable to check for existing symlink: %q", path)
		}

		// Create the link.
		if err := os.Symlink(symlink.Dest, path); err != nil {
			return errors.Wrapf(err, "unable to create symlink: %q", path)
		}
	}

	// Success.
	return nil
}

// ApplyPermissions applies clamped permission modes to all of the container's
// entries beneath the build folder. It only has an effect on POSIX systems
// and skips entries that don't exist on disk; symbolic links keep their
// modes as created and their targets are not changed through them.
func (c *Container) ApplyPermissions(buildFolder string) error {
	for _, file := range c.Files {
		path, err := file.ResolvePath(buildFolder)
		if err != nil {
			return err
		}
		if err := applyMode(path, file.Mode); err != nil {
			return err
		}
	}
	for _, dir := range c.Dirs {
		path, err := dir.ResolvePath(buildFolder)
		if err != nil {
			return err
		}
		if err := applyMode(path, dir.Mode); err != nil {
			return err
		}
	}
	for _, symlink := range c.Symlinks {
		path, err := symlink.ResolvePath(buildFolder)
		if err != nil {
			return err
		}
		if err := applyMode(path, symlink.Mode); err != nil {
			return err
		}
	}

	// Success.
	return nil
}

// Materialize creates the container's full tree beneath the build folder:
// directories, files, and symlinks, followed by permission application.
func (c *Container) Materialize(buildFolder string) error {
	if err := c.CreateDirectories(buildFolder); err != nil {
		return err
	}
	if err := c.CreateFiles(buildFolder); err != nil {
		return err
	}
	if err := c.CreateSymlinks(buildFolder); err != nil {
		return err
	}
	return c.ApplyPermissions(buildFolder)
}
