package extract

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz"
)

// TestDetectFormat verifies suffix-based format detection, including the
// tar-stem inference rules.
func TestDetectFormat(t *testing.T) {
	testCases := []struct {
		path     string
		expected Format
	}{
		{"game.zip", FormatZip},
		{"game.ZIP", FormatZip},
		{"game.tar", FormatTar},
		{"game.tar.gz", FormatTarGzip},
		{"game.TAR.GZ", FormatTarGzip},
		{"game.tgz", FormatTarGzip},
		{"game.taz", FormatTarGzip},
		{"game.gz", FormatNone},
		{"game.tar.bz2", FormatTarBzip2},
		{"game.tbz", FormatTarBzip2},
		{"game.tbz2", FormatTarBzip2},
		{"game.tz2", FormatTarBzip2},
		{"game.bz2", FormatNone},
		{"game.tar.xz", FormatTarXz},
		{"game.txz", FormatTarXz},
		{"game.xz", FormatNone},
		{"game.tar.zst", FormatTarZstd},
		{"game.tzst", FormatTarZstd},
		{"game.zst", FormatNone},
		{"game.exe", FormatNone},
		{"game", FormatNone},
	}
	for _, testCase := range testCases {
		if format := DetectFormat(testCase.path); format != testCase.expected {
			t.Errorf("format mismatch for %q: %s != %s",
				testCase.path, format, testCase.expected,
			)
		}
	}
}

// tarEntry describes a single test archive entry.
type tarEntry struct {
	name     string
	contents string
}

// buildTar is a test helper that builds an uncompressed tarball.
func buildTar(t *testing.T, entries []tarEntry) []byte {
	t.Helper()
	buffer := &bytes.Buffer{}
	writer := tar.NewWriter(buffer)
	for _, entry := range entries {
		if err := writer.WriteHeader(&tar.Header{
			Name: entry.name,
			Mode: 0o644,
			Size: int64(len(entry.contents)),
		}); err != nil {
			t.Fatal("unable to write tar header:", err)
		}
		if _, err := writer.Write([]byte(entry.contents)); err != nil {
			t.Fatal("unable to write tar contents:", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal("unable to close tar writer:", err)
	}
	return buffer.Bytes()
}

// writeArchive is a test helper that writes archive bytes to a file in a
// fresh game folder, returning the archive path and the target folder.
func writeArchive(t *testing.T, name string, data []byte) (string, string) {
	t.Helper()
	folder := t.TempDir()
	archive := filepath.Join(folder, name)
	if err := os.WriteFile(archive, data, 0o644); err != nil {
		t.Fatal("unable to write archive:", err)
	}
	return archive, filepath.Join(folder, "extracted")
}

// verifyWrappedExtraction is a test helper that checks the canonical wrapped
// extraction results: the payload hoisted to the target root, the wrapper
// gone, and the archive removed.
func verifyWrappedExtraction(t *testing.T, archive, target string) {
	t.Helper()
	contents, err := os.ReadFile(filepath.Join(target, "game.exe"))
	if err != nil {
		t.Fatal("extracted executable missing:", err)
	}
	if string(contents) != "executable" {
		t.Error("extracted executable contents mismatch")
	}
	if _, err := os.Stat(filepath.Join(target, "data", "x.bin")); err != nil {
		t.Error("extracted data file missing:", err)
	}
	if _, err := os.Stat(filepath.Join(target, "inner")); !os.IsNotExist(err) {
		t.Error("wrapper directory survived extraction")
	}
	if _, err := os.Stat(archive); !os.IsNotExist(err) {
		t.Error("archive still present after extraction")
	}
	if _, err := os.Stat(target + ".part"); !os.IsNotExist(err) {
		t.Error("temporary extraction folder still present")
	}
}

// wrappedEntries are archive entries wrapped in a redundant top directory.
var wrappedEntries = []tarEntry{
	{"inner/game.exe", "executable"},
	{"inner/data/x.bin", "data"},
}

// TestExtractTarWrapped verifies extraction of a wrapped tarball, including
// root flattening.
func TestExtractTarWrapped(t *testing.T) {
	archive, target := writeArchive(t, "game.tar", buildTar(t, wrappedEntries))
	if err := Extract(archive, target); err != nil {
		t.Fatal("unable to extract archive:", err)
	}
	verifyWrappedExtraction(t, archive, target)
}

// TestExtractTarGzip verifies extraction of a gzip-compressed tarball.
func TestExtractTarGzip(t *testing.T) {
	buffer := &bytes.Buffer{}
	compressor := pgzip.NewWriter(buffer)
	if _, err := compressor.Write(buildTar(t, wrappedEntries)); err != nil {
		t.Fatal("unable to compress tarball:", err)
	}
	if err := compressor.Close(); err != nil {
		t.Fatal("unable to close compressor:", err)
	}

	archive, target := writeArchive(t, "game.tar.gz", buffer.Bytes())
	if err := Extract(archive, target); err != nil {
		t.Fatal("unable to extract archive:", err)
	}
	verifyWrappedExtraction(t, archive, target)
}

// TestExtractTarZstd verifies extraction of a zstd-compressed tarball.
func TestExtractTarZstd(t *testing.T) {
	buffer := &bytes.Buffer{}
	compressor, err := zstd.NewWriter(buffer)
	if err != nil {
		t.Fatal("unable to create compressor:", err)
	}
	if _, err := compressor.Write(buildTar(t, wrappedEntries)); err != nil {
		t.Fatal("unable to compress tarball:", err)
	}
	if err := compressor.Close(); err != nil {
		t.Fatal("unable to close compressor:", err)
	}

	archive, target := writeArchive(t, "game.tzst", buffer.Bytes())
	if err := Extract(archive, target); err != nil {
		t.Fatal("unable to extract archive:", err)
	}
	verifyWrappedExtraction(t, archive, target)
}

// TestExtractTarXz verifies extraction of an xz-compressed tarball.
func TestExtractTarXz(t *testing.T) {
	buffer := &bytes.Buffer{}
	compressor, err := xz.NewWriter(buffer)
	if err != nil {
		t.Fatal("unable to create compressor:", err)
	}
	if _, err := compressor.Write(buildTar(t, wrappedEntries)); err != nil {
		t.Fatal("unable to compress tarball:", err)
	}
	if err := compressor.Close(); err != nil {
		t.Fatal("unable to close compressor:", err)
	}

	archive, target := writeArchive(t, "game.tar.xz", buffer.Bytes())
	if err := Extract(archive, target); err != nil {
		t.Fatal("unable to extract archive:", err)
	}
	verifyWrappedExtraction(t, archive, target)
}

// TestExtractZip verifies extraction of a ZIP archive.
func TestExtractZip(t *testing.T) {
	buffer := &bytes.Buffer{}
	writer := zip.NewWriter(buffer)
	for _, entry := range wrappedEntries {
		file, err := writer.Create(entry.name)
		if err != nil {
			t.Fatal("unable to create zip entry:", err)
		}
		if _, err := file.Write([]byte(entry.contents)); err != nil {
			t.Fatal("unable to write zip entry:", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal("unable to close zip writer:", err)
	}

	archive, target := writeArchive(t, "game.zip", buffer.Bytes())
	if err := Extract(archive, target); err != nil {
		t.Fatal("unable to extract archive:", err)
	}
	verifyWrappedExtraction(t, archive, target)
}

// TestExtractNonArchive verifies that an unrecognized file is moved into the
// target and marked executable instead of extracted.
func TestExtractNonArchive(t *testing.T) {
	archive, target := writeArchive(t, "game.x86_64", []byte("binary contents"))
	if err := Extract(archive, target); err != nil {
		t.Fatal("unable to install non-archive file:", err)
	}

	moved := filepath.Join(target, "game.x86_64")
	info, err := os.Stat(moved)
	if err != nil {
		t.Fatal("moved file missing:", err)
	}
	if runtime.GOOS != "windows" && info.Mode()&0o111 != 0o111 {
		t.Error("moved file isn't executable:", info.Mode())
	}
	if _, err := os.Stat(archive); !os.IsNotExist(err) {
		t.Error("original file still present after move")
	}
}

// TestExtractNonEmptyTarget verifies that extraction refuses a non-empty
// target folder.
func TestExtractNonEmptyTarget(t *testing.T) {
	archive, target := writeArchive(t, "game.tar", buildTar(t, wrappedEntries))
	if err := os.MkdirAll(target, 0o700); err != nil {
		t.Fatal("unable to create target:", err)
	}
	if err := os.WriteFile(filepath.Join(target, "occupied"), nil, 0o644); err != nil {
		t.Fatal("unable to occupy target:", err)
	}
	if err := Extract(archive, target); err == nil {
		t.Error("extraction into non-empty target succeeded")
	}
}

// TestExtractEscapingEntry verifies that archive entries escaping the target
// are rejected.
func TestExtractEscapingEntry(t *testing.T) {
	archive, target := writeArchive(t, "game.tar", buildTar(t, []tarEntry{
		{"../escape.bin", "escaped"},
	}))
	if err := Extract(archive, target); err == nil {
		t.Error("escaping archive entry accepted")
	}
}
