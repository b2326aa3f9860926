package wharf

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/protobuf/proto"
)

// patchBuilder accumulates the messages of a synthesized uncompressed patch
// binary.
type patchBuilder struct {
	t      *testing.T
	buffer *bytes.Buffer
}

// newPatchBuilder starts a patch binary for the specified containers.
func newPatchBuilder(t *testing.T, containerOld, containerNew *Container) *patchBuilder {
	t.Helper()
	builder := &patchBuilder{t: t, buffer: &bytes.Buffer{}}
	writeMagic(builder.buffer, PatchMagic)
	writeMessage(t, builder.buffer, &PatchHeader{Compression: uncompressedSettings()})
	writeMessage(t, builder.buffer, containerOld)
	writeMessage(t, builder.buffer, containerNew)
	return builder
}

// message appends a length-prefixed message to the patch body.
func (b *patchBuilder) message(message proto.Message) *patchBuilder {
	writeMessage(b.t, b.buffer, message)
	return b
}

// rsyncEntry appends an rsync sync header for a new file.
func (b *patchBuilder) rsyncEntry(fileIndex int64) *patchBuilder {
	return b.message(&SyncHeader{Type: SyncHeader_RSYNC, FileIndex: fileIndex})
}

// bsdiffEntry appends a bsdiff sync header and its target header.
func (b *patchBuilder) bsdiffEntry(fileIndex, targetIndex int64) *patchBuilder {
	b.message(&SyncHeader{Type: SyncHeader_BSDIFF, FileIndex: fileIndex})
	return b.message(&BsdiffHeader{TargetIndex: targetIndex})
}

// terminator appends the rsync stream terminator.
func (b *patchBuilder) terminator() *patchBuilder {
	return b.message(&SyncOp{Type: SyncOp_HEY_YOU_DID_IT})
}

// read decodes the accumulated patch binary.
func (b *patchBuilder) read() *Patch {
	b.t.Helper()
	patch, err := ReadPatch(bytes.NewReader(b.buffer.Bytes()))
	if err != nil {
		b.t.Fatal("unable to read synthesized patch:", err)
	}
	return patch
}

// TestPatchApplyRsyncData verifies application of a patch that writes a new
// file from literal data operations.
func TestPatchApplyRsyncData(t *testing.T) {
	oldFolder := t.TempDir()
	newFolder := t.TempDir()

	containerNew := &Container{Files: []*File{{Path: "fresh.bin", Size: 10, Mode: 0o644}}}
	patch := newPatchBuilder(t, &Container{}, containerNew).
		rsyncEntry(0).
		message(&SyncOp{Type: SyncOp_DATA, Data: []byte("0123456789")}).
		terminator().
		read()

	var patched int
	if err := patch.Apply(oldFolder, newFolder, func() { patched++ }); err != nil {
		t.Fatal("unable to apply patch:", err)
	}
	if patched != 1 {
		t.Error("progress callback count mismatch:", patched)
	}
	contents, err := os.ReadFile(filepath.Join(newFolder, "fresh.bin"))
	if err != nil {
		t.Fatal("patched file missing:", err)
	}
	if string(contents) != "0123456789" {
		t.Error("patched contents mismatch:", string(contents))
	}
}

// TestPatchApplyRsyncBlockRange verifies block-range copies from old files,
// including a span that exceeds the old file's remaining bytes.
func TestPatchApplyRsyncBlockRange(t *testing.T) {
	oldFolder := t.TempDir()
	newFolder := t.TempDir()

	// The old file has a block and a half of content.
	oldContents := bytes.Repeat([]byte{0xCD}, int(BlockSize+BlockSize/2))
	if err := os.WriteFile(filepath.Join(oldFolder, "old.bin"), oldContents, 0o644); err != nil {
		t.Fatal("unable to write old file:", err)
	}

	containerOld := &Container{Files: []*File{{Path: "old.bin", Size: int64(len(oldContents))}}}
	// The new file is the old file's second block onwards, so it is smaller
	// than the operation's nominal span.
	containerNew := &Container{Files: []*File{{Path: "new.bin", Size: int64(BlockSize / 2), Mode: 0o644}}}
	patch := newPatchBuilder(t, containerOld, containerNew).
		rsyncEntry(0).
		message(&SyncOp{Type: SyncOp_BLOCK_RANGE, FileIndex: 0, BlockIndex: 1, BlockSpan: 4}).
		terminator().
		read()

	if err := patch.Apply(oldFolder, newFolder, nil); err != nil {
		t.Fatal("unable to apply patch:", err)
	}
	contents, err := os.ReadFile(filepath.Join(newFolder, "new.bin"))
	if err != nil {
		t.Fatal("patched file missing:", err)
	}
	if !bytes.Equal(contents, oldContents[BlockSize:]) {
		t.Error("block range copy mismatch")
	}
}

// TestPatchApplyLiteralCopy verifies the literal-copy fast path: a first
// operation that trivially references an equally sized old file produces no
// output at all.
func TestPatchApplyLiteralCopy(t *testing.T) {
	oldFolder := t.TempDir()
	newFolder := t.TempDir()

	size := int64(2 * BlockSize)
	oldContents := bytes.Repeat([]byte{0xEE}, int(size))
	if err := os.WriteFile(filepath.Join(oldFolder, "same.bin"), oldContents, 0o644); err != nil {
		t.Fatal("unable to write old file:", err)
	}

	containerOld := &Container{Files: []*File{{Path: "same.bin", Size: size}}}
	containerNew := &Container{Files: []*File{{Path: "same.bin", Size: size, Mode: 0o644}}}
	patch := newPatchBuilder(t, containerOld, containerNew).
		rsyncEntry(0).
		message(&SyncOp{Type: SyncOp_BLOCK_RANGE, FileIndex: 0, BlockIndex: 0, BlockSpan: 2}).
		terminator().
		read()

	if err := patch.Apply(oldFolder, newFolder, nil); err != nil {
		t.Fatal("unable to apply patch:", err)
	}

	// The fast path must not have produced the new file.
	if _, err := os.Stat(filepath.Join(newFolder, "same.bin")); !os.IsNotExist(err) {
		t.Error("literal copy produced output")
	}
}

// TestPatchApplyBsdiffBump verifies a bsdiff add operation that bumps every
// byte of the old file by one.
func TestPatchApplyBsdiffBump(t *testing.T) {
	oldFolder := t.TempDir()
	newFolder := t.TempDir()

	oldContents := make([]byte, 16)
	if err := os.WriteFile(filepath.Join(oldFolder, "bump.bin"), oldContents, 0o644); err != nil {
		t.Fatal("unable to write old file:", err)
	}

	containerOld := &Container{Files: []*File{{Path: "bump.bin", Size: 16}}}
	containerNew := &Container{Files: []*File{{Path: "bump.bin", Size: 16, Mode: 0o644}}}
	patch := newPatchBuilder(t, containerOld, containerNew).
		bsdiffEntry(0, 0).
		message(&BsdiffControl{Add: bytes.Repeat([]byte{0x01}, 16)}).
		message(&BsdiffControl{Eof: true}).
		terminator().
		read()

	if err := patch.Apply(oldFolder, newFolder, nil); err != nil {
		t.Fatal("unable to apply patch:", err)
	}
	contents, err := os.ReadFile(filepath.Join(newFolder, "bump.bin"))
	if err != nil {
		t.Fatal("patched file missing:", err)
	}
	if !bytes.Equal(contents, bytes.Repeat([]byte{0x01}, 16)) {
		t.Error("bsdiff add result mismatch:", contents)
	}
}

// TestPatchApplyBsdiffWrapping verifies that bsdiff add arithmetic wraps on
// 8-bit lanes.
func TestPatchApplyBsdiffWrapping(t *testing.T) {
	oldFolder := t.TempDir()
	newFolder := t.TempDir()

	oldContents := []byte{0xFF, 0x80}
	if err := os.WriteFile(filepath.Join(oldFolder, "wrap.bin"), oldContents, 0o644); err != nil {
		t.Fatal("unable to write old file:", err)
	}

	containerOld := &Container{Files: []*File{{Path: "wrap.bin", Size: 2}}}
	containerNew := &Container{Files: []*File{{Path: "wrap.bin", Size: 2, Mode: 0o644}}}
	patch := newPatchBuilder(t, containerOld, containerNew).
		bsdiffEntry(0, 0).
		message(&BsdiffControl{Add: []byte{0x02, 0x80}}).
		message(&BsdiffControl{Eof: true}).
		terminator().
		read()

	if err := patch.Apply(oldFolder, newFolder, nil); err != nil {
		t.Fatal("unable to apply patch:", err)
	}
	contents, err := os.ReadFile(filepath.Join(newFolder, "wrap.bin"))
	if err != nil {
		t.Fatal("patched file missing:", err)
	}
	if !bytes.Equal(contents, []byte{0x01, 0x00}) {
		t.Error("bsdiff wrapping arithmetic mismatch:", contents)
	}
}

// TestPatchApplyBsdiffEmptyControl verifies that a control with all fields
// zero is a no-op.
func TestPatchApplyBsdiffEmptyControl(t *testing.T) {
	oldFolder := t.TempDir()
	newFolder := t.TempDir()

	if err := os.WriteFile(filepath.Join(oldFolder, "noop.bin"), []byte("ab"), 0o644); err != nil {
		t.Fatal("unable to write old file:", err)
	}

	containerOld := &Container{Files: []*File{{Path: "noop.bin", Size: 2}}}
	containerNew := &Container{Files: []*File{{Path: "noop.bin", Size: 2, Mode: 0o644}}}
	patch := newPatchBuilder(t, containerOld, containerNew).
		bsdiffEntry(0, 0).
		message(&BsdiffControl{}).
		message(&BsdiffControl{Add: []byte{0x00, 0x00}}).
		message(&BsdiffControl{Eof: true}).
		terminator().
		read()

	if err := patch.Apply(oldFolder, newFolder, nil); err != nil {
		t.Fatal("unable to apply patch:", err)
	}
	contents, err := os.ReadFile(filepath.Join(newFolder, "noop.bin"))
	if err != nil {
		t.Fatal("patched file missing:", err)
	}
	if string(contents) != "ab" {
		t.Error("no-op control altered contents:", contents)
	}
}

// TestPatchApplyBsdiffMissingTrailer verifies that a bsdiff stream whose eof
// control isn't followed by the rsync terminator is rejected.
func TestPatchApplyBsdiffMissingTrailer(t *testing.T) {
	oldFolder := t.TempDir()
	newFolder := t.TempDir()

	if err := os.WriteFile(filepath.Join(oldFolder, "bad.bin"), []byte("x"), 0o644); err != nil {
		t.Fatal("unable to write old file:", err)
	}

	containerOld := &Container{Files: []*File{{Path: "bad.bin", Size: 1}}}
	containerNew := &Container{Files: []*File{{Path: "bad.bin", Size: 1, Mode: 0o644}}}
	patch := newPatchBuilder(t, containerOld, containerNew).
		bsdiffEntry(0, 0).
		message(&BsdiffControl{Eof: true}).
		message(&SyncOp{Type: SyncOp_DATA, Data: []byte("stray")}).
		read()

	if err := patch.Apply(oldFolder, newFolder, nil); err == nil {
		t.Error("bsdiff stream without trailer accepted")
	}
}

// TestSyncEntryIteratorGuard verifies that the outer iterator refuses to
// advance while the current entry's operation stream is unconsumed.
func TestSyncEntryIteratorGuard(t *testing.T) {
	containerNew := &Container{Files: []*File{
		{Path: "one.bin", Size: 1, Mode: 0o644},
		{Path: "two.bin", Size: 1, Mode: 0o644},
	}}
	patch := newPatchBuilder(t, &Container{}, containerNew).
		rsyncEntry(0).
		message(&SyncOp{Type: SyncOp_DATA, Data: []byte("a")}).
		terminator().
		rsyncEntry(1).
		message(&SyncOp{Type: SyncOp_DATA, Data: []byte("b")}).
		terminator().
		read()

	// Grab the first entry but don't consume its operations.
	if _, err := patch.Entries.NextHeader(); err != nil {
		t.Fatal("unable to read first entry:", err)
	}
	if _, err := patch.Entries.NextHeader(); err == nil {
		t.Error("iterator advanced over unconsumed operation stream")
	}
}

// TestSyncEntryIteratorLength verifies that the iterator hands out exactly
// one entry per new container file and then reports EOF.
func TestSyncEntryIteratorLength(t *testing.T) {
	containerNew := &Container{Files: []*File{{Path: "only.bin", Size: 1, Mode: 0o644}}}
	patch := newPatchBuilder(t, &Container{}, containerNew).
		rsyncEntry(0).
		message(&SyncOp{Type: SyncOp_DATA, Data: []byte("x")}).
		terminator().
		read()

	entry, err := patch.Entries.NextHeader()
	if err != nil {
		t.Fatal("unable to read entry:", err)
	}
	for {
		if _, err := entry.NextOperation(); err == io.EOF {
			break
		} else if err != nil {
			t.Fatal("unable to read operation:", err)
		}
	}
	if _, err := patch.Entries.NextHeader(); err != io.EOF {
		t.Error("exhausted entry iterator didn't yield EOF:", err)
	}
}
