package wharf

import (
	"bytes"
	"crypto/md5"
	"io"
	"os"

	"github.com/pkg/errors"
)

// IntegrityIssues records the files of a container whose on-disk state failed
// verification. The file list never contains duplicates.
type IntegrityIssues struct {
	// Files are the container files that failed verification.
	Files []*File
}

// Intact indicates whether or not verification found every file intact.
func (i *IntegrityIssues) Intact() bool {
	return len(i.Files) == 0
}

// BytesToFix computes the total declared size of the files that failed
// verification.
func (i *IntegrityIssues) BytesToFix() uint64 {
	var total uint64
	for _, file := range i.Files {
		total += uint64(file.Size)
	}
	return total
}

// VerifyFiles verifies the integrity of every file in the signature's
// container against the on-disk state beneath the build folder. Files that
// are missing, have mismatched sizes, or contain a corrupted block are
// recorded as integrity issues and their remaining hashes are skipped;
// verification then continues with the next file. The progress callback is
// invoked with the number of hashes processed (read or skipped) since the
// previous invocation.
//
// Directory and symlink existence and entry permission modes are not
// verified.
func (s *Signature) VerifyFiles(buildFolder string, progress func(uint64)) (*IntegrityIssues, error) {
	if progress == nil {
		progress = func(uint64) {}
	}

	// This structure collects all the integrity issues found in the build
	// folder.
	issues := &IntegrityIssues{}

	// This buffer holds the block currently being hashed.
	buffer := make([]byte, BlockSize)

	// Create a reusable MD5 digest. A fresh state is used per block via
	// Reset.
	digest := md5.New()
	digestSum := make([]byte, 0, MD5Size)

	// recordIssue registers a file as broken and skips its remaining hashes.
	recordIssue := func(file *File, blocksRead uint64) error {
		issues.Files = append(issues.Files, file)
		skipped, err := s.BlockHashes.SkipFile(uint64(file.Size), blocksRead)
		if err != nil {
			return err
		}
		progress(skipped)
		return nil
	}

	// Verify each file in the container's declared order.
	for _, file := range s.Container.Files {
		path, err := file.ResolvePath(buildFolder)
		if err != nil {
			return nil, err
		}
		fileSize := uint64(file.Size)

		// A missing file fails verification without consuming data.
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			if err := recordIssue(file, 0); err != nil {
				return nil, err
			}
			continue
		} else if err != nil {
			return nil, errors.Wrapf(err, "unable to read file metadata: %q", path)
		}

		// A size mismatch fails verification without hashing.
		if uint64(info.Size()) != fileSize {
			if err := recordIssue(file, 0); err != nil {
				return nil, err
			}
			continue
		}

		// Open the file for hashing. Additional read buffering isn't needed
		// because blocks are already large.
		handle, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to open file for verification: %q", path)
		}

		// Hash the file block by block, comparing each block's hash with the
		// one provided by the signature.
		for blockIndex := uint64(0); ; blockIndex++ {
			// The current block is a full block unless fewer bytes remain.
			blockSize := BlockSize
			if remaining := fileSize - blockIndex*BlockSize; remaining < blockSize {
				blockSize = remaining
			}

			// Read the block.
			block := buffer[:blockSize]
			if _, err := io.ReadFull(handle, block); err != nil {
				handle.Close()
				return nil, errors.Wrapf(err, "unable to read file block: %q", path)
			}

			// Hash the block.
			digest.Reset()
			digest.Write(block)
			digestSum = digest.Sum(digestSum[:0])

			// Pull the expected hash from the signature.
			expected, err := s.BlockHashes.Next()
			if err == io.EOF {
				handle.Close()
				return nil, errors.New("expected a block hash, but the signature stream is exhausted")
			} else if err != nil {
				handle.Close()
				return nil, err
			}

			// One new hash has been read.
			progress(1)

			// Compare the hashes.
			if !bytes.Equal(digestSum, expected.StrongHash) {
				handle.Close()
				if err := recordIssue(file, blockIndex+1); err != nil {
					return nil, err
				}
				break
			}

			// If the file has been fully read, then proceed to the next one.
			if blockIndex*BlockSize+blockSize == fileSize {
				handle.Close()
				break
			}
		}
	}

	// Success.
	return issues, nil
}
