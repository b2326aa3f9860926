package wharf

import (
	"io"

	"github.com/pkg/errors"
)

// Signature represents a decoded wharf signature binary: a header, the
// container describing the build tree, and an iterator over the per-block
// strong hashes. The iterator reads from the underlying stream on the fly as
// hashes are requested.
type Signature struct {
	// Header is the signature header.
	Header *SignatureHeader
	// Container is the container describing the build that the signature
	// covers.
	Container *Container
	// BlockHashes iterates over the signature's block hashes.
	BlockHashes *BlockHashIterator
}

// BlockHashIterator iterates over the independent, sequential
// length-delimited block hash messages of a signature stream. Hashes are read
// and decoded one at a time, without loading the stream into memory.
type BlockHashIterator struct {
	// reader is the decompressed signature stream.
	reader *streamReader
	// totalBlocks is the total number of block hashes in the stream.
	totalBlocks uint64
	// blocksRead is the number of block hashes consumed so far.
	blocksRead uint64
}

// TotalBlocks returns the total number of block hashes in the stream.
func (i *BlockHashIterator) TotalBlocks() uint64 {
	return i.totalBlocks
}

// Next decodes and returns the next block hash. It returns io.EOF once all
// hashes have been consumed.
func (i *BlockHashIterator) Next() (*BlockHash, error) {
	if i.blocksRead == i.totalBlocks {
		return nil, io.EOF
	}
	hash := &BlockHash{}
	if err := i.reader.decode(hash); err != nil {
		return nil, err
	}
	i.blocksRead++
	return hash, nil
}

// SkipFile discards the block hashes remaining for the current file, given
// the file's size and the number of its hashes already consumed. It returns
// the number of hashes skipped. The skipped hashes are consumed with the
// message skip primitive, so totals stay accurate without decoding.
func (i *BlockHashIterator) SkipFile(fileSize uint64, blocksRead uint64) (uint64, error) {
	blocksToSkip := FileBlocks(fileSize) - blocksRead
	for skipped := uint64(0); skipped < blocksToSkip; skipped++ {
		if err := i.reader.skip(); err != nil {
			return skipped, err
		}
	}
	i.blocksRead += blocksToSkip
	return blocksToSkip, nil
}

// ReadSignature decodes a wharf signature binary from the specified reader.
// The stream's magic number and header are validated, the remainder is
// decompressed per the header, and the container is decoded eagerly. Block
// hashes remain in the stream, exposed through the returned signature's
// iterator.
func ReadSignature(reader io.Reader) (*Signature, error) {
	stream := newStreamReader(reader)

	// Check the magic bytes.
	if err := stream.expectMagic(SignatureMagic); err != nil {
		return nil, err
	}

	// Decode the signature header.
	header := &SignatureHeader{}
	if err := stream.decode(header); err != nil {
		return nil, errors.Wrap(err, "unable to decode signature header")
	}

	// Decompress the remaining stream.
	algorithm, err := compressionAlgorithm(header.Compression)
	if err != nil {
		return nil, err
	}
	if err := stream.decompress(algorithm); err != nil {
		return nil, err
	}

	// Decode the container.
	container := &Container{}
	if err := stream.decode(container); err != nil {
		return nil, errors.Wrap(err, "unable to decode container")
	}

	// Expose the block hashes.
	return &Signature{
		Header:    header,
		Container: container,
		BlockHashes: &BlockHashIterator{
			reader:      stream,
			totalBlocks: container.TotalBlocks(),
		},
	}, nil
}
