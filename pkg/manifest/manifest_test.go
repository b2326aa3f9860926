package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

// writeManifest is a test helper that writes a manifest into a fresh upload
// folder.
func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	folder := t.TempDir()
	if err := os.WriteFile(filepath.Join(folder, FileName), []byte(contents), 0o644); err != nil {
		t.Fatal("unable to write manifest:", err)
	}
	return folder
}

// TestReadMissing verifies that a missing manifest yields nil without error.
func TestReadMissing(t *testing.T) {
	parsed, err := Read(t.TempDir())
	if err != nil {
		t.Fatal("missing manifest yielded error:", err)
	}
	if parsed != nil {
		t.Error("missing manifest yielded non-nil result")
	}
}

// TestReadActions verifies manifest parsing.
func TestReadActions(t *testing.T) {
	folder := writeManifest(t, `
[[actions]]
name = "play"
path = "game.x86_64"

[[actions]]
name = "editor"
path = "editor.x86_64"
args = ["--editor"]
`)

	parsed, err := Read(folder)
	if err != nil {
		t.Fatal("unable to read manifest:", err)
	}
	if len(parsed.Actions) != 2 {
		t.Fatal("action count mismatch:", len(parsed.Actions))
	}
	if parsed.Actions[1].Args[0] != "--editor" {
		t.Error("action arguments mismatch")
	}
}

// TestLaunchActionDefault verifies that the play action is used when no name
// is specified.
func TestLaunchActionDefault(t *testing.T) {
	folder := writeManifest(t, `
[[actions]]
name = "play"
path = "game.sh"
`)

	action, err := LaunchAction(folder, "")
	if err != nil {
		t.Fatal("unable to look up launch action:", err)
	}
	if action == nil || action.Path != "game.sh" {
		t.Error("default launch action mismatch")
	}

	// An unknown action yields nil.
	if action, err := LaunchAction(folder, "missing"); err != nil || action != nil {
		t.Error("unknown action lookup mismatch:", action, err)
	}
}
