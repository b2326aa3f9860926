package extract

import (
	"archive/zip"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// extractZip extracts a ZIP archive into the target folder.
func extractZip(archive *os.File, target string) error {
	// Determine the archive's size, which the ZIP reader needs to locate the
	// central directory.
	info, err := archive.Stat()
	if err != nil {
		return errors.Wrap(err, "unable to read archive metadata")
	}
	reader, err := zip.NewReader(archive, info.Size())
	if err != nil {
		return errors.Wrap(err, "unable to open archive")
	}

	for _, entry := range reader.File {
		// Resolve the entry's on-disk path.
		path, err := resolveEntryPath(target, entry.Name)
		if err != nil {
			return err
		}

		mode := entry.Mode()
		switch {
		case mode.IsDir() || strings.HasSuffix(entry.Name, "/"):
			if err := os.MkdirAll(path, mode.Perm()|0700); err != nil {
				return errors.Wrapf(err, "unable to create directory: %q", path)
			}
		case mode&os.ModeSymlink != 0:
			// Symlink entries store their destination as the entry contents.
			contents, err := entry.Open()
			if err != nil {
				return errors.Wrapf(err, "unable to open symlink entry: %q", entry.Name)
			}
			destination, err := io.ReadAll(contents)
			contents.Close()
			if err != nil {
				return errors.Wrapf(err, "unable to read symlink entry: %q", entry.Name)
			}
			if err := replaceSymlink(path, string(destination)); err != nil {
				return err
			}
		default:
			contents, err := entry.Open()
			if err != nil {
				return errors.Wrapf(err, "unable to open archive entry: %q", entry.Name)
			}
			err = writeEntryFile(path, contents, mode)
			contents.Close()
			if err != nil {
				return err
			}
		}
	}

	// Success.
	return nil
}
