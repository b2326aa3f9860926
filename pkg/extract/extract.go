// Package extract implements the archive extraction pipeline: format
// detection from path suffixes, extraction into a temporary sibling of the
// target folder, flattening of redundant wrapping directories, and an atomic
// promotion of the result into place.
package extract

import (
	"compress/bzip2"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz"

	"github.com/Vidi0/scratch-io/pkg/filesystem"
)

// Extract extracts the archive at the specified path into the target folder,
// which must be empty or absent. The archive's format is detected from its
// suffix; files with an unrecognized suffix aren't extracted at all, they're
// moved into the target folder and marked executable.
//
// Extraction streams into a ".part" sibling of the target, so the target
// itself never holds partial extraction state: its existence is a reliable
// signal that extraction completed. On success, the archive is removed,
// redundant wrapping directories are flattened away, and the temporary is
// moved into place.
func Extract(archive, target string) error {
	// Require the target to be empty or absent.
	if empty, err := filesystem.IsDirectoryEmpty(target); err != nil {
		return err
	} else if !empty {
		return errors.Errorf("extraction target isn't empty: %q", target)
	}

	// Handle non-archive files: move them inside the target and mark them
	// executable.
	format := DetectFormat(archive)
	if format == FormatNone {
		if err := filesystem.CreateDirectories(target); err != nil {
			return err
		}
		name, err := filesystem.FileName(archive)
		if err != nil {
			return err
		}
		destination := filepath.Join(target, name)
		if err := filesystem.Rename(archive, destination); err != nil {
			return err
		}
		return filesystem.MakeExecutable(destination)
	}

	// Compute the temporary extraction folder and create it. Any partial
	// contents left by a previous interrupted extraction are retained;
	// decoders overwrite entries that they re-extract.
	temporary, err := filesystem.AddPartExtension(target)
	if err != nil {
		return err
	}
	if err := filesystem.CreateDirectories(temporary); err != nil {
		return err
	}

	// Open the archive and dispatch on its format.
	file, err := filesystem.OpenFile(archive, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	switch format {
	case FormatZip:
		err = extractZip(file, temporary)
	case FormatTar:
		err = extractTar(file, temporary)
	case FormatTarGzip:
		err = extractCompressedTar(file, temporary, func(r io.Reader) (io.Reader, error) {
			decompressor, err := pgzip.NewReader(r)
			if err != nil {
				return nil, err
			}
			return decompressor, nil
		})
	case FormatTarBzip2:
		err = extractCompressedTar(file, temporary, func(r io.Reader) (io.Reader, error) {
			return bzip2.NewReader(r), nil
		})
	case FormatTarXz:
		err = extractCompressedTar(file, temporary, func(r io.Reader) (io.Reader, error) {
			return xz.NewReader(r)
		})
	case FormatTarZstd:
		err = extractCompressedTar(file, temporary, func(r io.Reader) (io.Reader, error) {
			decompressor, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return decompressor.IOReadCloser(), nil
		})
	default:
		err = errors.Errorf("unhandled archive format: %s", format)
	}
	file.Close()
	if err != nil {
		return errors.Wrapf(err, "unable to extract %s archive: %q", format, archive)
	}

	// Remove the archive now that its contents are extracted.
	if err := filesystem.RemoveFile(archive); err != nil {
		return err
	}

	// Flatten redundant wrapping directories so that the payload root becomes
	// the install root.
	if err := filesystem.FlattenRoot(temporary); err != nil {
		return err
	}

	// Promote the temporary into place.
	return filesystem.MoveDirectory(temporary, target)
}

// extractCompressedTar wraps an archive stream in the specified decompressor
// and extracts the resulting tarball.
func extractCompressedTar(
	archive io.Reader,
	target string,
	decompress func(io.Reader) (io.Reader, error),
) error {
	decompressed, err := decompress(archive)
	if err != nil {
		return errors.Wrap(err, "unable to create decompressor")
	}
	return extractTar(decompressed, target)
}
