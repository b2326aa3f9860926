// Package wharf implements reading, verification, and application of wharf
// binaries: block-hash signatures and rsync/bsdiff delta patches for build
// trees.
package wharf

const (
	// PatchMagic is the little-endian magic number that opens a wharf patch
	// binary.
	PatchMagic uint32 = 0x0FEF5F00

	// SignatureMagic is the little-endian magic number that opens a wharf
	// signature binary.
	SignatureMagic uint32 = PatchMagic + 1

	// BlockSize is the fixed size of the blocks used for hashing and for
	// rsync block-range copies.
	BlockSize uint64 = 64 * 1024

	// MD5Size is the size of the strong block hashes.
	MD5Size = 16

	// minimumMode is the set of permission bits that every materialized
	// container entry receives.
	minimumMode uint32 = 0o644

	// maximumMode is the set of permission bits that a materialized container
	// entry may carry.
	maximumMode uint32 = 0o777
)

// MaskMode clamps a container mode to the valid permission range: the result
// always carries at least the minimum permission bits and never any bit
// outside the maximum permission bits.
func MaskMode(mode uint32) uint32 {
	return (mode & maximumMode) | minimumMode
}

// FileBlocks computes the number of hash blocks that a file of the specified
// size occupies. An empty file still occupies one block for its empty hash.
func FileBlocks(size uint64) uint64 {
	blocks := (size + BlockSize - 1) / BlockSize
	if blocks == 0 {
		return 1
	}
	return blocks
}
