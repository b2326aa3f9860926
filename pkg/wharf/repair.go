package wharf

import (
	"archive/zip"
	"io"

	"github.com/pkg/errors"
)

// repairCopyBufferSize is the chunk size used when streaming repaired file
// contents from an archive to disk.
const repairCopyBufferSize = 64 * 1024

// RepairFiles reconstructs the broken files recorded in this structure from a
// ZIP archive assumed to contain the authoritative build contents. Each
// broken file is located within the archive by its container path and its
// bytes are streamed into the corresponding on-disk path, truncating any
// previous contents. The progress callback is invoked with the number of
// bytes written since the previous invocation.
//
// Missing parent directories, symlinks, and permission modes are not handled
// here; they are the container model's responsibility. Repair fails if a
// file's parent directory doesn't exist.
func (i *IntegrityIssues) RepairFiles(buildFolder string, archive *zip.Reader, progress func(uint64)) error {
	if progress == nil {
		progress = func(uint64) {}
	}

	// A reusable copy buffer, so large repairs don't reallocate per chunk.
	buffer := make([]byte, repairCopyBufferSize)

	for _, file := range i.Files {
		// Locate the authoritative contents within the archive.
		source, err := archive.Open(file.Path)
		if err != nil {
			return errors.Wrapf(err, "unable to find file in build archive: %q", file.Path)
		}

		// Open the on-disk file, truncating its broken contents.
		destination, err := file.OpenWrite(buildFolder)
		if err != nil {
			source.Close()
			return err
		}

		// Stream the contents chunk by chunk, reporting progress per chunk.
		for {
			read, err := source.Read(buffer)
			if read > 0 {
				if _, err := destination.Write(buffer[:read]); err != nil {
					source.Close()
					destination.Close()
					return errors.Wrapf(err, "unable to write repaired contents: %q", file.Path)
				}
				progress(uint64(read))
			}
			if err == io.EOF {
				break
			} else if err != nil {
				source.Close()
				destination.Close()
				return errors.Wrapf(err, "unable to read file from build archive: %q", file.Path)
			}
		}

		// Close out both files.
		source.Close()
		if err := destination.Close(); err != nil {
			return errors.Wrapf(err, "unable to close repaired file: %q", file.Path)
		}
	}

	// Success.
	return nil
}
