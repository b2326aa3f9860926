package extract

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// resolveEntryPath resolves an archive entry's name against the extraction
// target, rejecting names that would escape it.
func resolveEntryPath(target, name string) (string, error) {
	resolved := target
	for _, component := range strings.Split(filepath.ToSlash(name), "/") {
		switch component {
		case "", ".":
			continue
		case "..":
			return "", errors.Errorf("archive entry escapes extraction target: %q", name)
		}
		resolved = filepath.Join(resolved, component)
	}
	if filepath.IsAbs(name) {
		return "", errors.Errorf("archive entry has an absolute path: %q", name)
	}
	return resolved, nil
}

// writeEntryFile writes a single regular file entry, creating parents as
// needed and truncating any previous contents.
func writeEntryFile(path string, contents io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "unable to create parent directories: %q", path)
	}

	// Entries without recorded permissions (common in ZIP archives) default
	// to standard file permissions.
	permissions := mode.Perm()
	if permissions == 0 {
		permissions = 0644
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, permissions)
	if err != nil {
		return errors.Wrapf(err, "unable to create file: %q", path)
	}
	if _, err := io.Copy(file, contents); err != nil {
		file.Close()
		return errors.Wrapf(err, "unable to write file contents: %q", path)
	}
	return errors.Wrapf(file.Close(), "unable to close file: %q", path)
}

// replaceSymlink creates a symbolic link, replacing any existing entry at its
// path.
func replaceSymlink(path, destination string) error {
	if _, err := os.Lstat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return errors.Wrapf(err, "unable to remove existing entry: %q", path)
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "unable to check for existing entry: %q", path)
	}
	if err := os.Symlink(destination, path); err != nil {
		return errors.Wrapf(err, "unable to create symlink: %q", path)
	}
	return nil
}

// extractTar extracts a tarball stream into the target folder.
func extractTar(archive io.Reader, target string) error {
	reader := tar.NewReader(archive)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return errors.Wrap(err, "unable to read archive entry")
		}

		// Resolve the entry's on-disk path.
		path, err := resolveEntryPath(target, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, header.FileInfo().Mode().Perm()|0700); err != nil {
				return errors.Wrapf(err, "unable to create directory: %q", path)
			}
		case tar.TypeReg:
			if err := writeEntryFile(path, reader, header.FileInfo().Mode()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := replaceSymlink(path, header.Linkname); err != nil {
				return err
			}
		case tar.TypeLink:
			// Hard links are materialized as links to the previously
			// extracted entry.
			linkTarget, err := resolveEntryPath(target, header.Linkname)
			if err != nil {
				return err
			}
			if err := os.Link(linkTarget, path); err != nil {
				return errors.Wrapf(err, "unable to create hard link: %q", path)
			}
		case tar.TypeXGlobalHeader, tar.TypeXHeader:
			// Extended header metadata doesn't materialize on disk.
		default:
			// Other entry types (devices, FIFOs) have no place in game
			// content and are skipped.
		}
	}
}
