package filesystem

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// UploadFolder computes the folder that holds an installed upload's payload
// within a game folder. It is the game folder joined with the upload's
// decimal identifier.
func UploadFolder(gameFolder string, uploadID uint64) string {
	return filepath.Join(gameFolder, strconv.FormatUint(uploadID, 10))
}

// UploadArchivePath computes the path of a downloaded upload archive within a
// game folder. The archive is kept next to the upload folder under a name
// that encodes both the upload identifier and the server-side file name.
func UploadArchivePath(gameFolder string, uploadID uint64, filename string) string {
	return filepath.Join(
		gameFolder,
		fmt.Sprintf("%d-download-%s", uploadID, filename),
	)
}

// AddPartExtension appends a ".part" suffix to the final component of a path,
// marking it as holding in-progress data.
func AddPartExtension(path string) (string, error) {
	name, err := FileName(path)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), name+".part"), nil
}

// FindAvailablePath returns the first path formed by appending a hexadecimal
// counter to the final component of the specified path that doesn't point at
// an existing filesystem entity.
func FindAvailablePath(path string) (string, error) {
	// Validate that the path has a usable final component.
	name, err := FileName(path)
	if err != nil {
		return "", err
	}
	parent := filepath.Dir(path)

	// Probe candidate names until one is free. The counter is rendered in
	// hexadecimal to keep long probe sequences compact.
	for i := 0; ; i++ {
		candidate := filepath.Join(parent, fmt.Sprintf("%s%x", name, i))
		exists, err := Exists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

// GamesDirectoryName is the name of the directory under the user's home
// directory where game folders are placed by default.
const GamesDirectoryName = "Games"

// DefaultGameFolder computes the default game folder for a game title:
// the user's home directory joined with the games directory and the title.
func DefaultGameFolder(title string) string {
	return filepath.Join(HomeDirectory, GamesDirectoryName, title)
}
