package wharf

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// TestResolveWithin verifies path safety enforcement for container paths.
func TestResolveWithin(t *testing.T) {
	testCases := []struct {
		path string
		safe bool
	}{
		{"file.bin", true},
		{"dir/file.bin", true},
		{"./dir/file.bin", true},
		{"../file.bin", false},
		{"dir/../../file.bin", false},
		{"/etc/passwd", false},
		{"dir//file.bin", false},
	}
	for _, testCase := range testCases {
		_, err := resolveWithin("/build", testCase.path)
		if testCase.safe && err != nil {
			t.Errorf("safe path %q rejected: %v", testCase.path, err)
		} else if !testCase.safe && err == nil {
			t.Errorf("unsafe path %q accepted", testCase.path)
		}
	}
}

// TestResolveWithinResult verifies that resolved paths land beneath the build
// folder.
func TestResolveWithinResult(t *testing.T) {
	resolved, err := resolveWithin("/build", "a/./b/c.bin")
	if err != nil {
		t.Fatal("unable to resolve path:", err)
	}
	if expected := filepath.Join("/build", "a", "b", "c.bin"); resolved != expected {
		t.Error("resolved path mismatch:", resolved, "!=", expected)
	}
}

// TestContainerGetFile verifies file index validation.
func TestContainerGetFile(t *testing.T) {
	container := &Container{Files: []*File{{Path: "only.bin"}}}
	if _, err := container.GetFile(0); err != nil {
		t.Error("valid file index rejected:", err)
	}
	if _, err := container.GetFile(1); err == nil {
		t.Error("out-of-range file index accepted")
	}
	if _, err := container.GetFile(-1); err == nil {
		t.Error("negative file index accepted")
	}
}

// TestContainerTotalBlocks verifies total block computation across empty,
// partial, and exact-multiple files.
func TestContainerTotalBlocks(t *testing.T) {
	container := &Container{Files: []*File{
		{Path: "empty.bin", Size: 0},
		{Path: "small.bin", Size: 10},
		{Path: "exact.bin", Size: int64(2 * BlockSize)},
		{Path: "large.bin", Size: int64(2*BlockSize + 1)},
	}}
	if total := container.TotalBlocks(); total != 1+1+2+3 {
		t.Error("total block count mismatch:", total)
	}
}

// TestContainerMaterialize verifies directory, file, and symlink creation
// with permission application.
func TestContainerMaterialize(t *testing.T) {
	buildFolder := t.TempDir()
	container := &Container{
		Dirs:  []*Dir{{Path: "data", Mode: 0o755}},
		Files: []*File{{Path: "data/save.bin", Size: 0, Mode: 0o600}},
		Symlinks: []*Symlink{
			{Path: "latest", Mode: 0o777, Dest: "data/save.bin"},
		},
	}

	if err := container.Materialize(buildFolder); err != nil {
		t.Fatal("unable to materialize container:", err)
	}

	// The directory and the file must exist.
	if info, err := os.Stat(filepath.Join(buildFolder, "data")); err != nil || !info.IsDir() {
		t.Error("container directory not materialized")
	}
	fileInfo, err := os.Stat(filepath.Join(buildFolder, "data", "save.bin"))
	if err != nil {
		t.Fatal("container file not materialized:", err)
	}

	// The symlink must point at its destination.
	target, err := os.Readlink(filepath.Join(buildFolder, "latest"))
	if err != nil {
		t.Fatal("container symlink not materialized:", err)
	}
	if target != "data/save.bin" {
		t.Error("symlink destination mismatch:", target)
	}

	// On POSIX systems, the file's mode must be clamped to carry at least the
	// minimum permission bits.
	if runtime.GOOS != "windows" {
		if mode := uint32(fileInfo.Mode().Perm()); mode != MaskMode(0o600) {
			t.Errorf("file mode not clamped: %o", mode)
		}
	}
}

// TestContainerCreateFilesPreservesContents verifies that materializing files
// doesn't truncate existing contents.
func TestContainerCreateFilesPreservesContents(t *testing.T) {
	buildFolder := t.TempDir()
	path := filepath.Join(buildFolder, "existing.bin")
	if err := os.WriteFile(path, []byte("contents"), 0o644); err != nil {
		t.Fatal("unable to create existing file:", err)
	}

	container := &Container{Files: []*File{{Path: "existing.bin", Size: 8, Mode: 0o644}}}
	if err := container.CreateFiles(buildFolder); err != nil {
		t.Fatal("unable to create container files:", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal("unable to read existing file:", err)
	}
	if string(contents) != "contents" {
		t.Error("existing file contents truncated")
	}
}

// TestContainerUnsafeMaterialize verifies that materialization rejects
// containers with escaping paths.
func TestContainerUnsafeMaterialize(t *testing.T) {
	buildFolder := t.TempDir()
	container := &Container{Files: []*File{{Path: "../escape.bin"}}}
	if err := container.CreateFiles(buildFolder); err == nil {
		t.Error("container with escaping path materialized")
	}
}
