package registry

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadEmpty verifies that a missing configuration file yields an empty
// registry.
func TestLoadEmpty(t *testing.T) {
	registry, err := Load(t.TempDir())
	if err != nil {
		t.Fatal("unable to load empty registry:", err)
	}
	if registry.APIKey() != "" {
		t.Error("empty registry carries an API key")
	}
	if len(registry.AllInstalled()) != 0 {
		t.Error("empty registry carries install records")
	}
}

// TestRoundTrip verifies that records and the API key survive a save/load
// cycle with decimal-string map keys.
func TestRoundTrip(t *testing.T) {
	folder := t.TempDir()

	registry, err := Load(folder)
	if err != nil {
		t.Fatal("unable to load registry:", err)
	}
	registry.SetAPIKey("saved-key")
	registry.SetInstalled(&InstalledUpload{
		UploadID:   123456,
		GameFolder: "/games/example",
	})
	if err := registry.Save(); err != nil {
		t.Fatal("unable to save registry:", err)
	}

	reloaded, err := Load(folder)
	if err != nil {
		t.Fatal("unable to reload registry:", err)
	}
	if reloaded.APIKey() != "saved-key" {
		t.Error("API key didn't survive round trip")
	}
	record, ok := reloaded.Installed(123456)
	if !ok {
		t.Fatal("install record didn't survive round trip")
	}
	if record.GameFolder != "/games/example" {
		t.Error("game folder mismatch:", record.GameFolder)
	}
	if record.UploadFolder() != filepath.Join("/games/example", "123456") {
		t.Error("upload folder mismatch:", record.UploadFolder())
	}
}

// TestRemoveInstalled verifies record removal.
func TestRemoveInstalled(t *testing.T) {
	registry, err := Load(t.TempDir())
	if err != nil {
		t.Fatal("unable to load registry:", err)
	}
	registry.SetInstalled(&InstalledUpload{UploadID: 7, GameFolder: "/games/x"})
	if !registry.RemoveInstalled(7) {
		t.Error("removal of present record reported absent")
	}
	if registry.RemoveInstalled(7) {
		t.Error("removal of absent record reported present")
	}
}

// TestIncompatibleVersion verifies that a newer configuration version yields
// a typed error.
func TestIncompatibleVersion(t *testing.T) {
	folder := t.TempDir()
	if err := os.WriteFile(
		filepath.Join(folder, "config.toml"),
		[]byte("config_version = 99\n"),
		0o600,
	); err != nil {
		t.Fatal("unable to write configuration:", err)
	}

	_, err := Load(folder)
	versionErr, ok := err.(*IncompatibleVersionError)
	if !ok {
		t.Fatal("incompatible version didn't yield typed error:", err)
	}
	if versionErr.Found != 99 {
		t.Error("found version mismatch:", versionErr.Found)
	}
}
