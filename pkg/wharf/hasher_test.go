package wharf

import (
	"bytes"
	"testing"
)

// hashIteratorFor is a test helper that creates a block hash iterator over a
// synthesized signature stream for the specified per-file contents.
func hashIteratorFor(t *testing.T, contents ...[]byte) *BlockHashIterator {
	t.Helper()
	files := make([]*File, len(contents))
	for i, fileContents := range contents {
		files[i] = &File{Path: "file", Size: int64(len(fileContents))}
	}
	data := buildSignature(t, &Container{Files: files}, contents)
	signature, err := ReadSignature(bytes.NewReader(data))
	if err != nil {
		t.Fatal("unable to read synthesized signature:", err)
	}
	return signature.BlockHashes
}

// TestBlockHasherAligned verifies hashing of contents spanning multiple
// blocks fed in odd-sized chunks.
func TestBlockHasherAligned(t *testing.T) {
	contents := bytes.Repeat([]byte{0x5A}, int(BlockSize)+1234)
	hasher := NewBlockHasher(hashIteratorFor(t, contents))

	// Feed the contents in chunks that don't align with block boundaries.
	for offset := 0; offset < len(contents); {
		end := offset + 1000
		if end > len(contents) {
			end = len(contents)
		}
		if err := hasher.Update(contents[offset:end]); err != nil {
			t.Fatal("unable to update hasher:", err)
		}
		offset = end
	}

	// Finalize the trailing partial block.
	if err := hasher.FinalizeBlockAndReset(); err != nil {
		t.Fatal("unable to finalize trailing block:", err)
	}
}

// TestBlockHasherExactMultiple verifies that contents sized at an exact block
// multiple don't hash a trailing partial block.
func TestBlockHasherExactMultiple(t *testing.T) {
	contents := bytes.Repeat([]byte{0x11}, int(2*BlockSize))
	hashes := hashIteratorFor(t, contents)
	hasher := NewBlockHasher(hashes)

	if err := hasher.Update(contents); err != nil {
		t.Fatal("unable to update hasher:", err)
	}
	if err := hasher.FinalizeBlockAndReset(); err != nil {
		t.Fatal("unable to finalize:", err)
	}

	// Both hashes must have been consumed by the block-boundary
	// finalizations; the trailing finalize must not have consumed a third.
	if hashes.blocksRead != 2 {
		t.Error("consumed hash count mismatch:", hashes.blocksRead)
	}
}

// TestBlockHasherEmptyFile verifies that an empty file consumes exactly one
// empty-block hash.
func TestBlockHasherEmptyFile(t *testing.T) {
	hashes := hashIteratorFor(t, []byte{})
	hasher := NewBlockHasher(hashes)

	if err := hasher.FinalizeBlockAndReset(); err != nil {
		t.Fatal("unable to finalize empty file:", err)
	}
	if hashes.blocksRead != 1 {
		t.Error("empty file didn't consume exactly one hash:", hashes.blocksRead)
	}
}

// TestBlockHasherMismatch verifies that corrupted contents yield a hash
// mismatch error.
func TestBlockHasherMismatch(t *testing.T) {
	contents := []byte("original contents")
	hasher := NewBlockHasher(hashIteratorFor(t, contents))

	corrupted := append([]byte(nil), contents...)
	corrupted[0] ^= 0xFF
	if err := hasher.Update(corrupted); err != nil {
		t.Fatal("unable to update hasher:", err)
	}
	err := hasher.FinalizeBlock()
	if err == nil {
		t.Fatal("corrupted contents passed hashing")
	}
	if _, ok := err.(*HashMismatchError); !ok {
		t.Error("corruption didn't yield a hash mismatch error:", err)
	}
}

// TestHashWriter verifies that the write adapter feeds the hasher and passes
// data through to the underlying sink.
func TestHashWriter(t *testing.T) {
	contents := []byte("stream me through the hasher")
	hasher := NewBlockHasher(hashIteratorFor(t, contents))
	sink := &bytes.Buffer{}

	writer := hasher.WrapWriter(sink)
	if _, err := writer.Write(contents); err != nil {
		t.Fatal("unable to write through hash writer:", err)
	}
	if err := hasher.FinalizeBlockAndReset(); err != nil {
		t.Fatal("unable to finalize:", err)
	}
	if !bytes.Equal(sink.Bytes(), contents) {
		t.Error("hash writer didn't pass contents through")
	}
}
