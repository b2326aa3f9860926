package wharf

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"hash"
	"io"

	"github.com/pkg/errors"
)

// HashMismatchError indicates that a computed block hash didn't match the
// hash expected by a signature.
type HashMismatchError struct {
	// Expected is the hash recorded in the signature.
	Expected []byte
	// Computed is the hash computed from on-disk data.
	Computed []byte
}

// Error implements error.Error.
func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("block hash mismatch: computed %x, expected %x", e.Computed, e.Expected)
}

// BlockHasher is a streaming digester that aligns arbitrary-size writes to
// the fixed wharf block size and compares each completed block's MD5 against
// the next hash from a borrowed block hash iterator.
type BlockHasher struct {
	// hashes is the borrowed iterator providing expected hashes.
	hashes *BlockHashIterator
	// digest is the running MD5 state for the current block.
	digest hash.Hash
	// buffer is a reusable buffer for finalized digests.
	buffer []byte
	// written is the number of bytes fed into the current block.
	written uint64
	// firstBlock tracks whether the current block is the file's first. An
	// empty file still contributes one hash, so an empty first block must be
	// finalized while empty trailing blocks are ignored.
	firstBlock bool
}

// NewBlockHasher creates a block hasher that borrows the specified hash
// iterator.
func NewBlockHasher(hashes *BlockHashIterator) *BlockHasher {
	return &BlockHasher{
		hashes:     hashes,
		digest:     md5.New(),
		buffer:     make([]byte, 0, MD5Size),
		firstBlock: true,
	}
}

// Update feeds data into the hasher, finalizing and comparing blocks at each
// block boundary crossed by the data.
func (h *BlockHasher) Update(data []byte) error {
	for len(data) > 0 {
		// Take at most the remainder of the current block.
		take := BlockSize - h.written
		if take > uint64(len(data)) {
			take = uint64(len(data))
		}

		// Update the digest. Writes to a hash never fail.
		h.digest.Write(data[:take])
		h.written += take
		data = data[take:]

		// Finalize at block boundaries.
		if h.written == BlockSize {
			if err := h.FinalizeBlock(); err != nil {
				return err
			}
		}
	}

	// Success.
	return nil
}

// FinalizeBlock completes the current block: it computes the block's MD5,
// pulls the next expected hash from the borrowed iterator, and compares the
// two. An empty block is ignored unless it is the file's first block, since a
// file ending exactly on a block boundary has no trailing block but an empty
// file still has one empty hash.
func (h *BlockHasher) FinalizeBlock() error {
	// Skip empty non-first blocks.
	if h.written == 0 && !h.firstBlock {
		return nil
	}

	// Compute the block's hash.
	h.buffer = h.digest.Sum(h.buffer[:0])

	// Pull the next expected hash.
	expected, err := h.hashes.Next()
	if err == io.EOF {
		return errors.New("expected a block hash, but the signature stream is exhausted")
	} else if err != nil {
		return err
	}

	// Compare the hashes.
	if !bytes.Equal(h.buffer, expected.StrongHash) {
		return &HashMismatchError{
			Expected: expected.StrongHash,
			Computed: append([]byte(nil), h.buffer...),
		}
	}

	// Reset the per-block state.
	h.digest.Reset()
	h.written = 0
	h.firstBlock = false

	// Success.
	return nil
}

// FinalizeBlockAndReset completes the current block and then resets the
// hasher for a new file, restoring the first-block flag.
func (h *BlockHasher) FinalizeBlockAndReset() error {
	if err := h.FinalizeBlock(); err != nil {
		return err
	}
	h.firstBlock = true
	return nil
}

// HashWriter adapts a byte sink so that every write also flows through a
// block hasher.
type HashWriter struct {
	// writer is the underlying sink.
	writer io.Writer
	// hasher is the block hasher fed by writes.
	hasher *BlockHasher
}

// WrapWriter wraps a byte sink so that written data is hashed before being
// passed along.
func (h *BlockHasher) WrapWriter(writer io.Writer) *HashWriter {
	return &HashWriter{
		writer: writer,
		hasher: h,
	}
}

// Write implements io.Writer.Write.
func (w *HashWriter) Write(data []byte) (int, error) {
	if err := w.hasher.Update(data); err != nil {
		return 0, err
	}
	return w.writer.Write(data)
}
