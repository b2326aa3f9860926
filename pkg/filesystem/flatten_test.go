package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

// createTestFile is a test helper that creates a file with placeholder
// contents, creating parent directories as needed.
func createTestFile(t *testing.T, path string, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal("unable to create parent directories:", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatal("unable to create test file:", err)
	}
}

// TestFlattenRootSingleWrapper verifies that a single wrapping directory is
// removed and its contents hoisted into the root.
func TestFlattenRootSingleWrapper(t *testing.T) {
	root := t.TempDir()
	createTestFile(t, filepath.Join(root, "inner", "game.exe"), "executable")
	createTestFile(t, filepath.Join(root, "inner", "data", "x.bin"), "data")

	if err := FlattenRoot(root); err != nil {
		t.Fatal("unable to flatten root:", err)
	}

	if _, err := os.Stat(filepath.Join(root, "game.exe")); err != nil {
		t.Error("hoisted file missing:", err)
	}
	if _, err := os.Stat(filepath.Join(root, "data", "x.bin")); err != nil {
		t.Error("hoisted nested file missing:", err)
	}
	if _, err := os.Stat(filepath.Join(root, "inner")); !os.IsNotExist(err) {
		t.Error("wrapper directory still present")
	}
}

// TestFlattenRootNestedWrappers verifies that nested single-child wrappers
// are all removed.
func TestFlattenRootNestedWrappers(t *testing.T) {
	root := t.TempDir()
	createTestFile(t, filepath.Join(root, "a", "b", "c", "payload.txt"), "payload")

	if err := FlattenRoot(root); err != nil {
		t.Fatal("unable to flatten root:", err)
	}

	if _, err := os.Stat(filepath.Join(root, "payload.txt")); err != nil {
		t.Error("payload not hoisted to root:", err)
	}
}

// TestFlattenRootCollision verifies that a wrapped entry whose name collides
// with the wrapper itself survives flattening with its contents intact.
func TestFlattenRootCollision(t *testing.T) {
	root := t.TempDir()

	// The wrapper contains a child directory with the wrapper's own name.
	createTestFile(t, filepath.Join(root, "game", "game", "save.dat"), "save")
	createTestFile(t, filepath.Join(root, "game", "readme.txt"), "readme")

	if err := FlattenRoot(root); err != nil {
		t.Fatal("unable to flatten root:", err)
	}

	if _, err := os.Stat(filepath.Join(root, "readme.txt")); err != nil {
		t.Error("sibling file missing after flatten:", err)
	}
	contents, err := os.ReadFile(filepath.Join(root, "game", "save.dat"))
	if err != nil {
		t.Fatal("colliding directory contents missing:", err)
	}
	if string(contents) != "save" {
		t.Error("colliding directory contents corrupted")
	}
}

// TestFlattenRootIdempotent verifies that flattening a tree with no
// single-child wrapper leaves it unchanged.
func TestFlattenRootIdempotent(t *testing.T) {
	root := t.TempDir()
	createTestFile(t, filepath.Join(root, "one.txt"), "one")
	createTestFile(t, filepath.Join(root, "two.txt"), "two")

	if err := FlattenRoot(root); err != nil {
		t.Fatal("unable to flatten root:", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal("unable to read root:", err)
	}
	if len(entries) != 2 {
		t.Error("flat tree was modified by flattening")
	}
}

// TestFlattenRootSingleFile verifies that a root containing a single file is
// left unchanged.
func TestFlattenRootSingleFile(t *testing.T) {
	root := t.TempDir()
	createTestFile(t, filepath.Join(root, "game.exe"), "executable")

	if err := FlattenRoot(root); err != nil {
		t.Fatal("unable to flatten root:", err)
	}

	if _, err := os.Stat(filepath.Join(root, "game.exe")); err != nil {
		t.Error("single file removed by flattening:", err)
	}
}
