package wharf

import (
	"bytes"
	"testing"
)

// TestStreamMagicMismatch verifies that a wrong magic number is rejected.
func TestStreamMagicMismatch(t *testing.T) {
	buffer := &bytes.Buffer{}
	writeMagic(buffer, PatchMagic)
	if err := newStreamReader(buffer).expectMagic(SignatureMagic); err == nil {
		t.Error("mismatched magic number accepted")
	}
}

// TestStreamMagicTruncated verifies that a truncated magic number is
// rejected.
func TestStreamMagicTruncated(t *testing.T) {
	if err := newStreamReader(bytes.NewReader([]byte{0x00, 0x5f})).expectMagic(PatchMagic); err == nil {
		t.Error("truncated magic number accepted")
	}
}

// TestStreamDecode verifies decoding of sequential length-prefixed messages.
func TestStreamDecode(t *testing.T) {
	buffer := &bytes.Buffer{}
	writeMessage(t, buffer, &File{Path: "a/b.bin", Size: 42, Mode: 0o644})
	writeMessage(t, buffer, &Dir{Path: "a", Mode: 0o755})

	stream := newStreamReader(buffer)
	file := &File{}
	if err := stream.decode(file); err != nil {
		t.Fatal("unable to decode file message:", err)
	}
	if file.Path != "a/b.bin" || file.Size != 42 || file.Mode != 0o644 {
		t.Error("decoded file message mismatch:", file)
	}
	dir := &Dir{}
	if err := stream.decode(dir); err != nil {
		t.Fatal("unable to decode directory message:", err)
	}
	if dir.Path != "a" || dir.Mode != 0o755 {
		t.Error("decoded directory message mismatch:", dir)
	}
}

// TestStreamSkip verifies that skipped messages are fully consumed without
// disturbing subsequent decodes.
func TestStreamSkip(t *testing.T) {
	buffer := &bytes.Buffer{}
	writeMessage(t, buffer, &File{Path: "skipped", Size: 1000})
	writeMessage(t, buffer, &File{Path: "wanted"})

	stream := newStreamReader(buffer)
	if err := stream.skip(); err != nil {
		t.Fatal("unable to skip message:", err)
	}
	file := &File{}
	if err := stream.decode(file); err != nil {
		t.Fatal("unable to decode message after skip:", err)
	}
	if file.Path != "wanted" {
		t.Error("decoded wrong message after skip:", file.Path)
	}
}

// TestStreamDecodeTruncated verifies that a truncated message body is
// rejected.
func TestStreamDecodeTruncated(t *testing.T) {
	buffer := &bytes.Buffer{}
	writeMessage(t, buffer, &File{Path: "some/longer/path.bin", Size: 12345})
	truncated := buffer.Bytes()[:buffer.Len()-3]

	stream := newStreamReader(bytes.NewReader(truncated))
	if err := stream.decode(&File{}); err == nil {
		t.Error("truncated message accepted")
	}
}
