package wharf

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/golang/protobuf/proto"
)

const (
	// streamReaderBufferSize is the size to use for the buffered reader in
	// streamReader.
	streamReaderBufferSize = 32 * 1024

	// streamInitialBufferSize is the initial message buffer size for stream
	// readers.
	streamInitialBufferSize = 32 * 1024

	// streamMaximumAllowedMessageSize is the maximum message size that we'll
	// attempt to read from a wharf binary.
	streamMaximumAllowedMessageSize = 100 * 1024 * 1024

	// streamMaximumPersistentBufferSize is the maximum message buffer size
	// that a stream reader will keep allocated.
	streamMaximumPersistentBufferSize = 1024 * 1024
)

// streamReader reads length-prefixed Protocol Buffers messages from a wharf
// binary. For performance reasons, this type wraps the underlying stream in a
// buffering reader, so a single streamReader must persist for the lifetime of
// the stream.
type streamReader struct {
	// reader is a buffered reader wrapping the underlying reader.
	reader *bufio.Reader
	// buffer is a reusable receive buffer for decoding messages.
	buffer []byte
}

// newStreamReader creates a new wharf stream reader.
func newStreamReader(reader io.Reader) *streamReader {
	return &streamReader{
		reader: bufio.NewReaderSize(reader, streamReaderBufferSize),
		buffer: make([]byte, streamInitialBufferSize),
	}
}

// expectMagic reads a little-endian 32-bit magic number from the stream and
// compares it against the expected value.
func (r *streamReader) expectMagic(expected uint32) error {
	// Read the magic bytes.
	var magicBytes [4]byte
	if _, err := io.ReadFull(r.reader, magicBytes[:]); err != nil {
		return errors.Wrap(err, "unable to read magic bytes")
	}

	// Compare the magic numbers.
	if magic := binary.LittleEndian.Uint32(magicBytes[:]); magic != expected {
		return errors.Errorf("magic number mismatch: 0x%08x != 0x%08x", magic, expected)
	}

	// Success.
	return nil
}

// readLength reads the next message's varint length delimiter and validates
// it against the maximum allowed message size. The varint encoding caps the
// delimiter at ten bytes.
func (r *streamReader) readLength() (uint64, error) {
	length, err := binary.ReadUvarint(r.reader)
	if err != nil {
		return 0, errors.Wrap(err, "unable to read message length")
	}
	if length > streamMaximumAllowedMessageSize {
		return 0, errors.New("message size too large")
	}
	return length, nil
}

// bufferWithSize returns a buffer with the specified size, opting to reuse a
// cached buffer if possible.
func (r *streamReader) bufferWithSize(size int) []byte {
	// If we can satisfy this request with our existing buffer, then use that.
	if cap(r.buffer) >= size {
		return r.buffer[:size]
	}

	// Otherwise allocate a new buffer.
	result := make([]byte, size)

	// If this buffer doesn't exceed the maximum size that we're willing to
	// keep around in memory, then store it.
	if size <= streamMaximumPersistentBufferSize {
		r.buffer = result
	}

	// Done.
	return result
}

// decode decodes a length-prefixed Protocol Buffers message from the stream.
func (r *streamReader) decode(message proto.Message) error {
	// Read the next message length.
	length, err := r.readLength()
	if err != nil {
		return err
	}

	// Grab a buffer to read the message.
	messageBytes := r.bufferWithSize(int(length))

	// Read the message bytes.
	if _, err := io.ReadFull(r.reader, messageBytes); err != nil {
		return errors.Wrap(err, "unable to read message")
	}

	// Unmarshal the message.
	if err := proto.Unmarshal(messageBytes, message); err != nil {
		return errors.Wrap(err, "unable to unmarshal message")
	}

	// Success.
	return nil
}

// skip consumes and discards the next length-prefixed Protocol Buffers
// message without decoding it.
func (r *streamReader) skip() error {
	// Read the next message length.
	length, err := r.readLength()
	if err != nil {
		return err
	}

	// Discard the message bytes.
	if _, err := r.reader.Discard(int(length)); err != nil {
		return errors.Wrap(err, "unable to discard message")
	}

	// Success.
	return nil
}

// decompress replaces the stream's remaining contents with a decompressed
// view chosen by the specified algorithm. All subsequent reads flow through
// the decompressor.
func (r *streamReader) decompress(algorithm CompressionAlgorithm) error {
	decompressed, err := newDecompressingReader(r.reader, algorithm)
	if err != nil {
		return err
	}
	r.reader = bufio.NewReaderSize(decompressed, streamReaderBufferSize)
	return nil
}
