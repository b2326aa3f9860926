package wharf

import (
	"io"

	"github.com/pkg/errors"
)

// Patch represents a decoded wharf patch binary: a header, the old and new
// containers describing the tree before and after the patch, and an iterator
// over the per-file patch entries. The iterator reads from the underlying
// stream on the fly as entries are requested.
type Patch struct {
	// Header is the patch header.
	Header *PatchHeader
	// ContainerOld is the container describing the tree the patch applies to.
	ContainerOld *Container
	// ContainerNew is the container describing the tree the patch produces.
	ContainerNew *Container
	// Entries iterates over the patch's per-file sync entries.
	Entries *SyncEntryIterator
}

// SyncEntryIterator iterates over the per-file entries of a patch stream. Its
// logical length equals the number of files in the new container. All entries
// share the underlying stream, so the iterator cannot advance until the
// current entry's operation stream has been fully consumed.
type SyncEntryIterator struct {
	// reader is the decompressed patch stream.
	reader *streamReader
	// totalEntries is the number of entries in the stream.
	totalEntries uint64
	// entriesRead is the number of entries handed out so far.
	entriesRead uint64
	// current is the entry currently bound to the stream, if any.
	current *SyncEntry
}

// SyncEntry is a single per-file entry of a patch stream: the index of the
// file in the new container, the patching method, and (for bsdiff entries)
// the index of the old file that operations read from. The entry's operation
// stream is consumed through NextOperation or NextControl, depending on the
// method.
type SyncEntry struct {
	// Type is the patching method for the file.
	Type SyncHeader_Type
	// FileIndex is the index of the file in the new container.
	FileIndex int64
	// TargetIndex is the index of the old file that bsdiff operations read
	// from. It is only meaningful for bsdiff entries.
	TargetIndex int64
	// iterator is the parent iterator.
	iterator *SyncEntryIterator
	// exhausted tracks whether the entry's operation stream has terminated.
	exhausted bool
}

// NextHeader decodes the next per-file entry. It returns io.EOF once all
// entries have been handed out, and fails if the previous entry's operation
// stream hasn't been fully consumed, since the entries share one stream.
func (i *SyncEntryIterator) NextHeader() (*SyncEntry, error) {
	// Entries share the stream, so the previous entry must be done.
	if i.current != nil && !i.current.exhausted {
		return nil, errors.New("previous entry's operation stream not exhausted")
	}

	// Check whether all entries have been handed out.
	if i.entriesRead == i.totalEntries {
		return nil, io.EOF
	}
	i.entriesRead++

	// Decode the sync header.
	header := &SyncHeader{}
	if err := i.reader.decode(header); err != nil {
		return nil, errors.Wrap(err, "unable to decode sync header")
	}

	// Create the entry.
	entry := &SyncEntry{
		Type:      header.Type,
		FileIndex: header.FileIndex,
		iterator:  i,
	}

	// Bsdiff entries carry an additional header naming the old file.
	switch header.Type {
	case SyncHeader_RSYNC:
	case SyncHeader_BSDIFF:
		bsdiffHeader := &BsdiffHeader{}
		if err := i.reader.decode(bsdiffHeader); err != nil {
			return nil, errors.Wrap(err, "unable to decode bsdiff header")
		}
		entry.TargetIndex = bsdiffHeader.TargetIndex
	default:
		return nil, errors.Errorf("unknown sync header type: %d", header.Type)
	}

	// Bind the entry to the stream.
	i.current = entry
	return entry, nil
}

// NextOperation decodes the next rsync operation of the entry's stream. The
// HEY_YOU_DID_IT terminator isn't yielded; it terminates the stream with
// io.EOF instead.
func (e *SyncEntry) NextOperation() (*SyncOp, error) {
	if e.Type != SyncHeader_RSYNC {
		return nil, errors.New("entry is not an rsync entry")
	}
	if e.exhausted {
		return nil, io.EOF
	}

	// Decode the operation.
	operation := &SyncOp{}
	if err := e.iterator.reader.decode(operation); err != nil {
		return nil, errors.Wrap(err, "unable to decode sync operation")
	}

	// The terminator ends the stream without being yielded.
	if operation.Type == SyncOp_HEY_YOU_DID_IT {
		e.exhausted = true
		return nil, io.EOF
	}
	return operation, nil
}

// NextControl decodes the next bsdiff control of the entry's stream. A
// control with eof set terminates the stream with io.EOF after consuming the
// mandatory trailing rsync HEY_YOU_DID_IT operation; any other trailing
// operation is a decode error.
func (e *SyncEntry) NextControl() (*BsdiffControl, error) {
	if e.Type != SyncHeader_BSDIFF {
		return nil, errors.New("entry is not a bsdiff entry")
	}
	if e.exhausted {
		return nil, io.EOF
	}

	// Decode the control.
	control := &BsdiffControl{}
	if err := e.iterator.reader.decode(control); err != nil {
		return nil, errors.Wrap(err, "unable to decode bsdiff control")
	}
	if !control.Eof {
		return control, nil
	}

	// The eof control is followed by one trailing rsync terminator.
	trailer := &SyncOp{}
	if err := e.iterator.reader.decode(trailer); err != nil {
		return nil, errors.Wrap(err, "unable to decode bsdiff trailer operation")
	}
	if trailer.Type != SyncOp_HEY_YOU_DID_IT {
		return nil, errors.Errorf(
			"expected terminating operation after bsdiff eof, got type %d", trailer.Type,
		)
	}
	e.exhausted = true
	return nil, io.EOF
}

// ReadPatch decodes a wharf patch binary from the specified reader. The
// stream's magic number and header are validated, the remainder is
// decompressed per the header, and the old and new containers are decoded
// eagerly. Per-file entries remain in the stream, exposed through the
// returned patch's iterator.
func ReadPatch(reader io.Reader) (*Patch, error) {
	stream := newStreamReader(reader)

	// Check the magic bytes.
	if err := stream.expectMagic(PatchMagic); err != nil {
		return nil, err
	}

	// Decode the patch header.
	header := &PatchHeader{}
	if err := stream.decode(header); err != nil {
		return nil, errors.Wrap(err, "unable to decode patch header")
	}

	// Decompress the remaining stream.
	algorithm, err := compressionAlgorithm(header.Compression)
	if err != nil {
		return nil, err
	}
	if err := stream.decompress(algorithm); err != nil {
		return nil, err
	}

	// Decode the containers.
	containerOld := &Container{}
	if err := stream.decode(containerOld); err != nil {
		return nil, errors.Wrap(err, "unable to decode old container")
	}
	containerNew := &Container{}
	if err := stream.decode(containerNew); err != nil {
		return nil, errors.Wrap(err, "unable to decode new container")
	}

	// Expose the per-file entries. One entry is provided for each file in the
	// new container.
	return &Patch{
		Header:       header,
		ContainerOld: containerOld,
		ContainerNew: containerNew,
		Entries: &SyncEntryIterator{
			reader:       stream,
			totalEntries: uint64(len(containerNew.Files)),
		},
	}, nil
}
