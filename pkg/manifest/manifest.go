// Package manifest implements reading of the ".itch.toml" manifest that
// games can ship to declare their launch actions.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/Vidi0/scratch-io/pkg/encoding"
	"github.com/Vidi0/scratch-io/pkg/filesystem"
)

const (
	// FileName is the manifest's file name within an upload folder.
	FileName = ".itch.toml"
	// PlayAction is the action name used when none is specified.
	PlayAction = "play"
)

// Action is a single launch action declared by a manifest.
type Action struct {
	// Name is the action's name.
	Name string `toml:"name"`
	// Path is the action's executable path, relative to the upload folder.
	Path string `toml:"path"`
	// Args are the arguments to launch the executable with.
	Args []string `toml:"args"`
}

// CanonicalPath resolves the action's executable path within an upload
// folder to its canonical form.
func (a *Action) CanonicalPath(uploadFolder string) (string, error) {
	return filesystem.Canonicalize(filepath.Join(uploadFolder, a.Path))
}

// Manifest is a parsed ".itch.toml" manifest.
type Manifest struct {
	// Actions are the manifest's launch actions.
	Actions []Action `toml:"actions"`
}

// Read reads and parses the manifest of an upload folder. A missing manifest
// yields (nil, nil).
func Read(uploadFolder string) (*Manifest, error) {
	path := filepath.Join(uploadFolder, FileName)

	// Check that the manifest exists and is a regular file.
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "unable to check for manifest")
	} else if info.IsDir() {
		return nil, errors.Errorf("manifest isn't a regular file: %q", path)
	}

	// Parse the manifest.
	parsed := &Manifest{}
	if err := encoding.LoadAndUnmarshalTOML(path, parsed); err != nil {
		return nil, errors.Wrap(err, "unable to parse manifest")
	}

	// Success.
	return parsed, nil
}

// LaunchAction looks up a launch action by name in an upload folder's
// manifest, defaulting to the play action. A missing manifest or action
// yields (nil, nil).
func LaunchAction(uploadFolder, name string) (*Action, error) {
	parsed, err := Read(uploadFolder)
	if err != nil {
		return nil, err
	} else if parsed == nil {
		return nil, nil
	}

	if name == "" {
		name = PlayAction
	}
	for i := range parsed.Actions {
		if parsed.Actions[i].Name == name {
			return &parsed.Actions[i], nil
		}
	}
	return nil, nil
}
