package wharf

import (
	"io"

	"github.com/pkg/errors"

	"github.com/andybalholm/brotli"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// newDecompressingReader wraps a reader in a decompressor chosen by the
// specified compression algorithm.
func newDecompressingReader(source io.Reader, algorithm CompressionAlgorithm) (io.Reader, error) {
	switch algorithm {
	case CompressionAlgorithm_NONE:
		return source, nil
	case CompressionAlgorithm_BROTLI:
		return brotli.NewReader(source), nil
	case CompressionAlgorithm_GZIP:
		decompressor, err := gzip.NewReader(source)
		if err != nil {
			return nil, errors.Wrap(err, "unable to create gzip decompressor")
		}
		return decompressor, nil
	case CompressionAlgorithm_ZSTD:
		decompressor, err := zstd.NewReader(source)
		if err != nil {
			return nil, errors.Wrap(err, "unable to create zstd decompressor")
		}
		return decompressor.IOReadCloser(), nil
	default:
		return nil, errors.Errorf("unknown compression algorithm: %d", algorithm)
	}
}

// compressionAlgorithm extracts and validates the compression algorithm from
// a header's compression settings.
func compressionAlgorithm(settings *CompressionSettings) (CompressionAlgorithm, error) {
	if settings == nil {
		return CompressionAlgorithm_NONE, errors.New("header missing compression settings")
	}
	return settings.Algorithm, nil
}
