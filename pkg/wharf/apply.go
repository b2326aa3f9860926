package wharf

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/golang/groupcache/lru"
)

// maximumOpenOldFiles is the capacity of the cache of open old-file read
// handles maintained during patch application.
const maximumOpenOldFiles = 16

// oldFileCache is a bounded LRU of open read handles for old container
// files, keyed by file index. Evicted and cleared handles are closed.
type oldFileCache struct {
	// cache is the underlying LRU.
	cache *lru.Cache
	// container is the old container.
	container *Container
	// buildFolder is the old build folder.
	buildFolder string
}

// newOldFileCache creates an old-file handle cache over the specified
// container and build folder.
func newOldFileCache(container *Container, buildFolder string) *oldFileCache {
	cache := lru.New(maximumOpenOldFiles)
	cache.OnEvicted = func(key lru.Key, value interface{}) {
		value.(*os.File).Close()
	}
	return &oldFileCache{
		cache:       cache,
		container:   container,
		buildFolder: buildFolder,
	}
}

// get returns an open read handle for the old file with the specified index,
// opening (and caching) it if necessary.
func (c *oldFileCache) get(index int64) (*os.File, error) {
	// Check for a cached handle.
	if value, ok := c.cache.Get(index); ok {
		return value.(*os.File), nil
	}

	// Look up and open the file.
	file, err := c.container.GetFile(index)
	if err != nil {
		return nil, err
	}
	handle, err := file.OpenRead(c.buildFolder)
	if err != nil {
		return nil, err
	}

	// Cache the handle. Insertion may evict (and close) the least recently
	// used handle.
	c.cache.Add(index, handle)
	return handle, nil
}

// close closes all cached handles.
func (c *oldFileCache) close() {
	c.cache.Clear()
}

// isLiteralCopy indicates whether or not an rsync operation represents a
// literal copy of an entire old file into a new file of the same size: a
// block-range copy starting at the first block and spanning at least the new
// file's size, referencing an old file whose size matches exactly.
func isLiteralCopy(operation *SyncOp, newFileSize int64, containerOld *Container) (bool, error) {
	if operation.Type != SyncOp_BLOCK_RANGE {
		return false, nil
	}
	if operation.BlockIndex != 0 {
		return false, nil
	}
	if uint64(operation.BlockSpan)*BlockSize < uint64(newFileSize) {
		return false, nil
	}
	oldFile, err := containerOld.GetFile(operation.FileIndex)
	if err != nil {
		return false, err
	}
	return oldFile.Size == newFileSize, nil
}

// copyBlockRange copies a block range from an old file into a writer. The
// copy starts at the range's first block and transfers the range's span of
// blocks, or stops early at the old file's end.
func copyBlockRange(source *os.File, destination io.Writer, blockIndex, blockSpan int64) error {
	// Seek to the range's start. The position is absolute, so no rewind is
	// needed beforehand.
	start := blockIndex * int64(BlockSize)
	if _, err := source.Seek(start, io.SeekStart); err != nil {
		return errors.Wrapf(err, "unable to seek old file to offset %d", start)
	}

	// Copy the range, tolerating an early end of the old file.
	length := blockSpan * int64(BlockSize)
	if _, err := io.CopyN(destination, source, length); err != nil && err != io.EOF {
		return errors.Wrap(err, "unable to copy block range from old file")
	}

	// Success.
	return nil
}

// applyRsyncEntry applies an rsync entry's operation stream, producing the
// new file's contents. If the entry's first operation is a literal copy of an
// equally sized old file, no output is produced at all and the new file is
// left as it is on disk.
func (p *Patch) applyRsyncEntry(
	entry *SyncEntry,
	newFolder string,
	oldFiles *oldFileCache,
) error {
	// Look up the new file.
	newFile, err := p.ContainerNew.GetFile(entry.FileIndex)
	if err != nil {
		return err
	}

	// Read the first operation. Even an empty file has one data operation, so
	// an immediately terminated stream is malformed.
	first, err := entry.NextOperation()
	if err == io.EOF {
		return errors.New("expected at least one sync operation for file")
	} else if err != nil {
		return err
	}

	// Check for the literal-copy fast path: the file's bytes already exist
	// verbatim as an old file, so no output needs to be produced. The
	// stream's terminator still has to be consumed to keep the entry
	// iterator consistent.
	if literal, err := isLiteralCopy(first, newFile.Size, p.ContainerOld); err != nil {
		return err
	} else if literal {
		if _, err := entry.NextOperation(); err == nil {
			return errors.New("unexpected operation after literal copy")
		} else if err != io.EOF {
			return err
		}
		return nil
	}

	// Open the new file, truncating any existing contents.
	destination, err := newFile.OpenWrite(newFolder)
	if err != nil {
		return err
	}
	defer destination.Close()

	// Apply all operations, including the first one read above.
	operation := first
	for {
		switch operation.Type {
		case SyncOp_BLOCK_RANGE:
			// Copy the specified range from the old file into the new one.
			source, err := oldFiles.get(operation.FileIndex)
			if err != nil {
				return err
			}
			if err := copyBlockRange(source, destination, operation.BlockIndex, operation.BlockSpan); err != nil {
				return err
			}
		case SyncOp_DATA:
			// Append the literal data to the new file.
			if _, err := destination.Write(operation.Data); err != nil {
				return errors.Wrap(err, "unable to write data to new file")
			}
		default:
			return errors.Errorf("unexpected sync operation type: %d", operation.Type)
		}

		// Grab the next operation.
		operation, err = entry.NextOperation()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
	}

	// Close out the new file.
	return errors.Wrap(destination.Close(), "unable to close new file")
}

// applyBsdiffEntry applies a bsdiff entry's control stream, producing the new
// file's contents from the entry's target old file.
func (p *Patch) applyBsdiffEntry(
	entry *SyncEntry,
	newFolder string,
	oldFiles *oldFileCache,
	addBuffer *[]byte,
) error {
	// Look up the new file and open it, truncating any existing contents.
	newFile, err := p.ContainerNew.GetFile(entry.FileIndex)
	if err != nil {
		return err
	}
	destination, err := newFile.OpenWrite(newFolder)
	if err != nil {
		return err
	}
	defer destination.Close()

	// Open the old file and rewind it, since a cached handle may have been
	// seeked by a previous bsdiff entry.
	source, err := oldFiles.get(entry.TargetIndex)
	if err != nil {
		return err
	}
	if _, err := source.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "unable to rewind old file")
	}

	// Apply all controls. Each control's operations are applied in order:
	// add, then copy, then seek.
	for {
		control, err := entry.NextControl()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		// Add the diff bytes to bytes read from the old file. The byte
		// addition wraps on 8-bit lanes, which is load-bearing for bsdiff
		// correctness.
		if len(control.Add) > 0 {
			// Grow the reusable buffer if needed. Add operations are usually
			// the same length, so allocation is rare.
			if cap(*addBuffer) < len(control.Add) {
				*addBuffer = make([]byte, len(control.Add))
			}
			buffer := (*addBuffer)[:len(control.Add)]

			// Read the old bytes.
			if _, err := io.ReadFull(source, buffer); err != nil {
				return errors.Wrap(err, "unable to read old file bytes for add operation")
			}

			// Combine and write.
			for i, diff := range control.Add {
				buffer[i] += diff
			}
			if _, err := destination.Write(buffer); err != nil {
				return errors.Wrap(err, "unable to write added bytes to new file")
			}
		}

		// Copy the extra bytes.
		if len(control.Copy) > 0 {
			if _, err := destination.Write(control.Copy); err != nil {
				return errors.Wrap(err, "unable to write copied bytes to new file")
			}
		}

		// Seek the old file by the signed relative offset.
		if control.Seek != 0 {
			if _, err := source.Seek(control.Seek, io.SeekCurrent); err != nil {
				return errors.Wrapf(err, "unable to seek old file by offset %d", control.Seek)
			}
		}
	}

	// Close out the new file.
	return errors.Wrap(destination.Close(), "unable to close new file")
}

// Apply applies the patch, reading old file contents beneath the old build
// folder and producing the new container's tree beneath the new build folder.
// The new container's directories are created up front; files are then
// patched strictly in the order emitted by the patch stream; finally the new
// container's symlinks are created and its permission modes applied. The
// progress callback is invoked once per completed new file.
//
// Application isn't resumable: an aborted apply leaves the new build folder
// in an undefined partial state that callers must discard or overwrite by
// retrying.
func (p *Patch) Apply(oldFolder, newFolder string, progress func()) error {
	if progress == nil {
		progress = func() {}
	}

	// Create the new container's directories.
	if err := p.ContainerNew.CreateDirectories(newFolder); err != nil {
		return err
	}

	// Create the old-file handle cache and the reusable add buffer.
	oldFiles := newOldFileCache(p.ContainerOld, oldFolder)
	defer oldFiles.close()
	var addBuffer []byte

	// Patch all files in stream order.
	for {
		entry, err := p.Entries.NextHeader()
		if err == io.EOF {
			break
		} else if err != nil {
			return errors.Wrap(err, "unable to read next patch entry")
		}

		switch entry.Type {
		case SyncHeader_RSYNC:
			err = p.applyRsyncEntry(entry, newFolder, oldFiles)
		case SyncHeader_BSDIFF:
			err = p.applyBsdiffEntry(entry, newFolder, oldFiles, &addBuffer)
		default:
			err = errors.Errorf("unknown sync entry type: %d", entry.Type)
		}
		if err != nil {
			return errors.Wrapf(err, "unable to patch file at index %d", entry.FileIndex)
		}

		// One new file has been patched.
		progress()
	}

	// Create the symlinks.
	if err := p.ContainerNew.CreateSymlinks(newFolder); err != nil {
		return err
	}

	// Apply the new container's permission modes.
	return p.ContainerNew.ApplyPermissions(newFolder)
}
