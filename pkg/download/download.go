// Package download implements a resumable, hash-verified HTTP downloader.
// Downloads stream into a ".part" sidecar next to their destination and are
// promoted with a single atomic rename once complete, so a destination path
// only ever exists in a fully downloaded (and, if requested, verified) state.
package download

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Vidi0/scratch-io/pkg/api"
	"github.com/Vidi0/scratch-io/pkg/filesystem"
)

// copyBufferSize is the chunk size used when streaming response bodies to
// disk.
const copyBufferSize = 32 * 1024

// ErrMissingContentLength indicates that the server didn't declare the length
// of the resource to download.
var ErrMissingContentLength = errors.New("server didn't declare a content length")

// UnexpectedStatusError indicates that the server replied to a download
// request with an unexpected HTTP status.
type UnexpectedStatusError struct {
	// Status is the received HTTP status code.
	Status int
}

// Error implements error.Error.
func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status: %d %s", e.Status, http.StatusText(e.Status))
}

// DigestMismatchError indicates that a downloaded file's digest didn't match
// the expected digest.
type DigestMismatchError struct {
	// Expected is the expected hex digest.
	Expected string
	// Computed is the computed hex digest.
	Computed string
}

// Error implements error.Error.
func (e *DigestMismatchError) Error() string {
	return fmt.Sprintf(
		"file digest mismatch: computed %s, server declared %s",
		e.Computed, e.Expected,
	)
}

// Requester issues HTTP requests against API addresses. It is implemented by
// the API client.
type Requester interface {
	Do(ctx context.Context, method string, address api.URL, configure func(*http.Request)) (*http.Response, error)
}

// Callbacks bundles the progress callbacks of a download. Any field may be
// nil.
type Callbacks struct {
	// SizeKnown is invoked once, when the total size of the resource becomes
	// known.
	SizeKnown func(total uint64)
	// Progress is invoked with the total number of bytes committed so far. It
	// fires at most once per the download's callback interval and once at
	// completion.
	Progress func(downloaded uint64)
	// Warning is invoked with non-fatal conditions worth surfacing.
	Warning func(message string)
}

// sizeKnown dispatches the size callback if present.
func (c Callbacks) sizeKnown(total uint64) {
	if c.SizeKnown != nil {
		c.SizeKnown(total)
	}
}

// progress dispatches the progress callback if present.
func (c Callbacks) progress(downloaded uint64) {
	if c.Progress != nil {
		c.Progress(downloaded)
	}
}

// hashExisting feeds the existing contents of the part file through the
// digest, so the final digest covers the on-disk prefix as well as the bytes
// downloaded afterwards. This deliberately re-reads the prefix rather than
// trusting it: a part file corrupted while the process was away fails the
// final integrity check.
func hashExisting(file *os.File, digest hash.Hash) error {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "unable to rewind partial file")
	}
	if _, err := io.Copy(digest, file); err != nil {
		return errors.Wrap(err, "unable to hash partial file contents")
	}
	return nil
}

// streamBody streams a response body into the file, updating the digest (if
// any) and dispatching throttled progress callbacks. It returns the number of
// bytes written.
func streamBody(
	body io.Reader,
	file *os.File,
	digest hash.Hash,
	committed uint64,
	callbacks Callbacks,
	interval time.Duration,
) (uint64, error) {
	buffer := make([]byte, copyBufferSize)
	var written uint64
	lastCallback := time.Now()
	for {
		read, err := body.Read(buffer)
		if read > 0 {
			chunk := buffer[:read]

			// Write the chunk to the file.
			if _, err := file.Write(chunk); err != nil {
				return written, errors.Wrap(err, "unable to write chunk to file")
			}

			// Update the digest. Writes to a hash never fail.
			if digest != nil {
				digest.Write(chunk)
			}

			// Dispatch a throttled progress callback.
			written += uint64(read)
			if time.Since(lastCallback) > interval {
				lastCallback = time.Now()
				callbacks.progress(committed + written)
			}
		}
		if err == io.EOF {
			break
		} else if err != nil {
			return written, errors.Wrap(err, "unable to read response chunk")
		}
	}

	// Dispatch a final progress callback.
	callbacks.progress(committed + written)
	return written, nil
}

// Download downloads the resource at the specified address into the specified
// path, resuming any partial download left by a previous attempt. If
// expectedMD5 is non-empty, the file's MD5 digest (covering both resumed and
// freshly downloaded bytes) is verified against it (hex, case-insensitive)
// before the file is moved into place.
//
// At every point during the download, either the destination path exists and
// has passed verification, or a ".part" sidecar holds the bytes committed so
// far. Cancellation is safe at any chunk boundary; a subsequent call resumes
// from the sidecar's current length.
func Download(
	ctx context.Context,
	transport Requester,
	address api.URL,
	path string,
	expectedMD5 string,
	callbacks Callbacks,
	interval time.Duration,
) error {
	// Compute the sidecar path.
	partPath, err := filesystem.AddPartExtension(path)
	if err != nil {
		return err
	}

	// If the destination already exists, then move it back to the sidecar so
	// that its length and digest run through the same validation as a fresh
	// download.
	if exists, err := filesystem.Exists(path); err != nil {
		return err
	} else if exists {
		if err := filesystem.Rename(path, partPath); err != nil {
			return err
		}
	}

	// Open the sidecar for appending, creating it if necessary. Read access
	// is needed to hash any previously committed bytes.
	file, err := filesystem.OpenFile(partPath, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	// Determine how many bytes are already committed.
	info, err := file.Stat()
	if err != nil {
		return errors.Wrap(err, "unable to read partial file metadata")
	}
	committed := uint64(info.Size())

	// Issue a request for the whole resource to learn its length.
	fullResponse, err := transport.Do(ctx, http.MethodGet, address, nil)
	if err != nil {
		return err
	}
	defer fullResponse.Body.Close()
	if fullResponse.StatusCode != http.StatusOK {
		return &UnexpectedStatusError{Status: fullResponse.StatusCode}
	}
	if fullResponse.ContentLength < 0 {
		return ErrMissingContentLength
	}
	total := uint64(fullResponse.ContentLength)
	callbacks.sizeKnown(total)

	// Select the response body to stream, if any. A sidecar that already
	// holds the full resource needs no body at all; a shorter sidecar asks
	// the server for the remaining range; anything else (an overlong sidecar
	// or a server that ignored the range request) restarts from scratch.
	var body io.Reader
	switch {
	case committed == total:
		// Nothing to download.
	case committed == 0:
		body = fullResponse.Body
	case committed < total:
		// Request the remaining byte range.
		rangeResponse, err := transport.Do(ctx, http.MethodGet, address, func(request *http.Request) {
			request.Header.Set("Range", fmt.Sprintf("bytes=%d-", committed))
		})
		if err != nil {
			return err
		}

		switch rangeResponse.StatusCode {
		case http.StatusPartialContent:
			// The server honors the range; stream the remainder.
			defer rangeResponse.Body.Close()
			body = rangeResponse.Body
		case http.StatusOK:
			// The server ignored the range, so restart with this response's
			// full body.
			defer rangeResponse.Body.Close()
			if err := file.Truncate(0); err != nil {
				return errors.Wrap(err, "unable to truncate partial file")
			}
			committed = 0
			body = rangeResponse.Body
		default:
			rangeResponse.Body.Close()
			return &UnexpectedStatusError{Status: rangeResponse.StatusCode}
		}
	default:
		// The sidecar is longer than the resource; restart from scratch.
		if err := file.Truncate(0); err != nil {
			return errors.Wrap(err, "unable to truncate partial file")
		}
		committed = 0
		body = fullResponse.Body
	}

	// Set up the digest and feed it any previously committed bytes.
	var digest hash.Hash
	if expectedMD5 != "" {
		digest = md5.New()
		if committed > 0 {
			if err := hashExisting(file, digest); err != nil {
				return err
			}
		}
	}

	// Stream the response body, if any.
	if body != nil {
		if _, err := streamBody(body, file, digest, committed, callbacks, interval); err != nil {
			return err
		}
	} else {
		callbacks.progress(committed)
	}

	// Verify the digest. A mismatch leaves the sidecar in place so that the
	// caller can inspect or remove it.
	if digest != nil {
		computed := hex.EncodeToString(digest.Sum(nil))
		if !strings.EqualFold(computed, expectedMD5) {
			return &DigestMismatchError{Expected: expectedMD5, Computed: computed}
		}
	}

	// Sync the file so that all data is on disk before the rename publishes
	// it, then close the handle. Nothing may touch the handle after this
	// point.
	if err := file.Sync(); err != nil {
		return errors.Wrap(err, "unable to sync file contents")
	}
	if err := file.Close(); err != nil {
		return errors.Wrap(err, "unable to close file")
	}

	// Promote the sidecar to the destination.
	return filesystem.Rename(partPath, path)
}
