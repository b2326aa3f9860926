package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

// TestUploadFolder verifies upload folder computation.
func TestUploadFolder(t *testing.T) {
	expected := filepath.Join("/games/example", "123456")
	if folder := UploadFolder("/games/example", 123456); folder != expected {
		t.Error("upload folder mismatch:", folder, "!=", expected)
	}
}

// TestUploadArchivePath verifies archive path computation.
func TestUploadArchivePath(t *testing.T) {
	expected := filepath.Join("/games/example", "42-download-game.zip")
	if path := UploadArchivePath("/games/example", 42, "game.zip"); path != expected {
		t.Error("upload archive path mismatch:", path, "!=", expected)
	}
}

// TestAddPartExtension verifies that the part extension is appended to the
// final path component.
func TestAddPartExtension(t *testing.T) {
	path, err := AddPartExtension(filepath.Join("/games", "archive.zip"))
	if err != nil {
		t.Fatal("unable to add part extension:", err)
	}
	if expected := filepath.Join("/games", "archive.zip.part"); path != expected {
		t.Error("part path mismatch:", path, "!=", expected)
	}
}

// TestAddPartExtensionWithoutFileName verifies that paths without a file name
// are rejected.
func TestAddPartExtensionWithoutFileName(t *testing.T) {
	if _, err := AddPartExtension("/"); err == nil {
		t.Error("part extension added to path without file name")
	}
}

// TestFindAvailablePath verifies that probing skips existing entries and
// renders the counter in hexadecimal.
func TestFindAvailablePath(t *testing.T) {
	directory := t.TempDir()
	base := filepath.Join(directory, "name")

	// Occupy the first eleven candidates so that the probe has to reach a
	// non-decimal digit.
	for i := 0; i < 11; i++ {
		occupied, err := FindAvailablePath(base)
		if err != nil {
			t.Fatal("unable to find available path:", err)
		}
		if err := os.WriteFile(occupied, nil, 0600); err != nil {
			t.Fatal("unable to occupy path:", err)
		}
	}

	// The next candidate should use the hexadecimal digit "b".
	available, err := FindAvailablePath(base)
	if err != nil {
		t.Fatal("unable to find available path:", err)
	}
	if expected := base + "b"; available != expected {
		t.Error("available path mismatch:", available, "!=", expected)
	}
}

// TestFileStem verifies extension stripping.
func TestFileStem(t *testing.T) {
	stem, err := FileStem("/downloads/game.zip")
	if err != nil {
		t.Fatal("unable to compute file stem:", err)
	}
	if stem != "game" {
		t.Error("file stem mismatch:", stem, "!= game")
	}
}

// TestArchiveStem verifies that tar archive stems lose both extensions.
func TestArchiveStem(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
	}{
		{"/downloads/game.zip", "game"},
		{"/downloads/game.tar.gz", "game"},
		{"/downloads/game.TAR.GZ", "game"},
		{"/downloads/game.tgz", "game"},
	}
	for _, testCase := range testCases {
		stem, err := ArchiveStem(testCase.path)
		if err != nil {
			t.Fatal("unable to compute archive stem:", err)
		}
		if stem != testCase.expected {
			t.Error("archive stem mismatch:", stem, "!=", testCase.expected)
		}
	}
}
