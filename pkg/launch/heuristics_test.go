package launch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Vidi0/scratch-io/pkg/api"
)

// createCandidate is a test helper that creates an empty candidate file.
func createCandidate(t *testing.T, folder, name string) {
	t.Helper()
	path := filepath.Join(folder, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal("unable to create candidate directories:", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o644); err != nil {
		t.Fatal("unable to create candidate:", err)
	}
}

// TestFindExecutablePrefersTitleMatch verifies that a candidate named after
// the game outranks other candidates.
func TestFindExecutablePrefersTitleMatch(t *testing.T) {
	folder := t.TempDir()
	createCandidate(t, folder, "crash_handler.sh")
	createCandidate(t, folder, "Space Miner.sh")

	executable, err := FindExecutable(folder, api.PlatformLinux, &api.Game{Title: "Space Miner!"})
	if err != nil {
		t.Fatal("unable to find executable:", err)
	}
	if filepath.Base(executable) != "Space Miner.sh" {
		t.Error("title match not preferred:", executable)
	}
}

// TestFindExecutablePrefersShallow verifies that depth is penalized.
func TestFindExecutablePrefersShallow(t *testing.T) {
	folder := t.TempDir()
	createCandidate(t, folder, "deep/nested/tool.x86_64")
	createCandidate(t, folder, "game.x86_64")

	executable, err := FindExecutable(folder, api.PlatformLinux, nil)
	if err != nil {
		t.Fatal("unable to find executable:", err)
	}
	if filepath.Base(executable) != "game.x86_64" {
		t.Error("shallow candidate not preferred:", executable)
	}
}

// TestFindExecutablePlatformFilter verifies that candidates are filtered by
// platform patterns.
func TestFindExecutablePlatformFilter(t *testing.T) {
	folder := t.TempDir()
	createCandidate(t, folder, "game.exe")
	createCandidate(t, folder, "readme.txt")

	executable, err := FindExecutable(folder, api.PlatformWindows, nil)
	if err != nil {
		t.Fatal("unable to find executable:", err)
	}
	if filepath.Base(executable) != "game.exe" {
		t.Error("platform filter mismatch:", executable)
	}

	// No Android candidates exist.
	if _, err := FindExecutable(folder, api.PlatformAndroid, nil); err == nil {
		t.Error("missing platform candidate didn't yield an error")
	} else if _, ok := err.(*NoExecutableFoundError); !ok {
		t.Error("missing candidate didn't yield typed error:", err)
	}
}

// TestFindExecutableLinuxBareFile verifies that extensionless files count as
// Linux candidates.
func TestFindExecutableLinuxBareFile(t *testing.T) {
	folder := t.TempDir()
	createCandidate(t, folder, "launcher")

	executable, err := FindExecutable(folder, api.PlatformLinux, nil)
	if err != nil {
		t.Fatal("unable to find executable:", err)
	}
	if filepath.Base(executable) != "launcher" {
		t.Error("bare file not accepted as Linux candidate:", executable)
	}
}
