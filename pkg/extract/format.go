package extract

import (
	"path/filepath"
	"strings"
)

// Format identifies an archive format recognized by the extraction pipeline.
type Format uint8

const (
	// FormatNone indicates an unrecognized format. Files with this format
	// aren't extracted; they're moved into place and marked executable.
	FormatNone Format = iota
	// FormatZip indicates a ZIP archive.
	FormatZip
	// FormatTar indicates an uncompressed tarball.
	FormatTar
	// FormatTarGzip indicates a gzip-compressed tarball.
	FormatTarGzip
	// FormatTarBzip2 indicates a bzip2-compressed tarball.
	FormatTarBzip2
	// FormatTarXz indicates an xz-compressed tarball.
	FormatTarXz
	// FormatTarZstd indicates a zstd-compressed tarball.
	FormatTarZstd
)

// String provides a human-readable representation of a format.
func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTar:
		return "tar"
	case FormatTarGzip:
		return "tar.gz"
	case FormatTarBzip2:
		return "tar.bz2"
	case FormatTarXz:
		return "tar.xz"
	case FormatTarZstd:
		return "tar.zst"
	default:
		return "none"
	}
}

// DetectFormat determines the archive format of a path from its case-folded
// suffix. Compression suffixes that can wrap either a tarball or a bare file
// (such as "gz") are only treated as tarballs when the stem additionally ends
// in ".tar"; the dedicated tarball suffixes ("tgz" and friends) always are.
func DetectFormat(path string) Format {
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if extension == "" {
		return FormatNone
	}

	// Check whether the stem marks the file as a compressed tarball.
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tarStem := strings.HasSuffix(strings.ToLower(stem), ".tar")

	switch extension {
	case "zip":
		return FormatZip
	case "tar":
		return FormatTar
	case "tgz", "taz":
		return FormatTarGzip
	case "gz":
		if tarStem {
			return FormatTarGzip
		}
	case "tbz", "tbz2", "tz2":
		return FormatTarBzip2
	case "bz2":
		if tarStem {
			return FormatTarBzip2
		}
	case "txz":
		return FormatTarXz
	case "xz":
		if tarStem {
			return FormatTarXz
		}
	case "tzst":
		return FormatTarZstd
	case "zst":
		if tarStem {
			return FormatTarZstd
		}
	}
	return FormatNone
}
