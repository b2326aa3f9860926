// Package install orchestrates the installation lifecycle of uploads:
// download, extraction, registration, verification, upgrading, moving, and
// removal.
package install

import (
	"context"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/Vidi0/scratch-io/pkg/api"
	"github.com/Vidi0/scratch-io/pkg/download"
	"github.com/Vidi0/scratch-io/pkg/extract"
	"github.com/Vidi0/scratch-io/pkg/filesystem"
	"github.com/Vidi0/scratch-io/pkg/registry"
)

// DefaultCallbackInterval is the default minimum time span between download
// progress callbacks.
const DefaultCallbackInterval = 250 * time.Millisecond

// Callbacks bundles the progress callbacks of the install lifecycle. Any
// field may be nil.
type Callbacks struct {
	// Info is invoked with the resolved upload and game metadata before the
	// download starts.
	Info func(upload *api.Upload, game *api.Game)
	// StartingDownload is invoked when the total download size becomes
	// known.
	StartingDownload func(total uint64)
	// DownloadProgress is invoked with the number of bytes committed so far.
	DownloadProgress func(downloaded uint64)
	// Warning is invoked with non-fatal conditions worth surfacing.
	Warning func(message string)
	// Extracting is invoked when extraction begins.
	Extracting func()
	// Interval is the minimum time span between download progress callbacks.
	// A zero value uses DefaultCallbackInterval.
	Interval time.Duration
}

// warn dispatches the warning callback if present.
func (c Callbacks) warn(message string) {
	if c.Warning != nil {
		c.Warning(message)
	}
}

// interval returns the configured callback interval.
func (c Callbacks) interval() time.Duration {
	if c.Interval == 0 {
		return DefaultCallbackInterval
	}
	return c.Interval
}

// downloadCallbacks converts the install callbacks into download callbacks.
func (c Callbacks) downloadCallbacks() download.Callbacks {
	return download.Callbacks{
		SizeKnown: c.StartingDownload,
		Progress:  c.DownloadProgress,
		Warning:   c.Warning,
	}
}

// resolveGameFolder resolves the game folder for an install, defaulting to
// the games directory under the user's home directory.
func resolveGameFolder(gameFolder string, game *api.Game) string {
	if gameFolder != "" {
		return gameFolder
	}
	return filesystem.DefaultGameFolder(game.Title)
}

// Install downloads an upload's archive, extracts it into the upload folder
// beneath the game folder, and records the installation in the registry. If
// the game folder is empty, the default folder for the game's title is used.
// Unless skipped, the archive's digest is verified against the server's
// declared MD5 when one exists.
func Install(
	ctx context.Context,
	client *api.Client,
	reg *registry.Registry,
	uploadID uint64,
	gameFolder string,
	skipHashVerification bool,
	callbacks Callbacks,
) (*registry.InstalledUpload, error) {
	// Refuse to reinstall over an existing record.
	if _, installed := reg.Installed(uploadID); installed {
		return nil, &registry.AlreadyInstalledError{UploadID: uploadID}
	}

	// Resolve the upload and game metadata and report it.
	upload, err := client.UploadInfo(ctx, uploadID)
	if err != nil {
		return nil, err
	}
	game, err := client.GameInfo(ctx, upload.GameID)
	if err != nil {
		return nil, err
	}
	if callbacks.Info != nil {
		callbacks.Info(upload, game)
	}

	// Resolve the folders involved.
	gameFolder = resolveGameFolder(gameFolder, game)
	archivePath := filesystem.UploadArchivePath(gameFolder, uploadID, upload.Filename)
	uploadFolder := filesystem.UploadFolder(gameFolder, uploadID)

	// Create the game folder if it doesn't already exist.
	if err := filesystem.CreateDirectories(gameFolder); err != nil {
		return nil, err
	}

	// Select the digest to verify against.
	expectedMD5 := upload.MD5Hash
	if skipHashVerification {
		expectedMD5 = ""
		callbacks.warn("skipping hash verification, file integrity won't be checked")
	} else if expectedMD5 == "" {
		callbacks.warn("the server declares no MD5 hash, file integrity can't be checked")
	}

	// Download the archive.
	if err := download.Download(
		ctx, client, api.DownloadUploadURL(uploadID), archivePath,
		expectedMD5, callbacks.downloadCallbacks(), callbacks.interval(),
	); err != nil {
		return nil, err
	}

	// Extract the archive into the upload folder.
	if callbacks.Extracting != nil {
		callbacks.Extracting()
	}
	if err := extract.Extract(archivePath, uploadFolder); err != nil {
		return nil, err
	}

	// Record the installation with the canonical game folder.
	canonical, err := filesystem.Canonicalize(gameFolder)
	if err != nil {
		return nil, err
	}
	record := &registry.InstalledUpload{
		UploadID:   uploadID,
		GameFolder: canonical,
		Upload:     upload,
		Game:       game,
	}
	reg.SetInstalled(record)
	if err := reg.Save(); err != nil {
		return nil, err
	}

	// Success.
	return record, nil
}

// Import records an already installed upload in the registry without
// downloading anything. The upload folder must exist beneath the game
// folder.
func Import(
	ctx context.Context,
	client *api.Client,
	reg *registry.Registry,
	uploadID uint64,
	gameFolder string,
) (*registry.InstalledUpload, error) {
	// Refuse to reimport over an existing record.
	if _, installed := reg.Installed(uploadID); installed {
		return nil, &registry.AlreadyInstalledError{UploadID: uploadID}
	}

	// Require the upload folder to exist and be non-empty.
	uploadFolder := filesystem.UploadFolder(gameFolder, uploadID)
	if empty, err := filesystem.IsDirectoryEmpty(uploadFolder); err != nil {
		return nil, err
	} else if empty {
		return nil, errors.Errorf("no installed files found at %q", uploadFolder)
	}

	// Resolve the upload and game metadata.
	upload, err := client.UploadInfo(ctx, uploadID)
	if err != nil {
		return nil, err
	}
	game, err := client.GameInfo(ctx, upload.GameID)
	if err != nil {
		return nil, err
	}

	// Record the installation with the canonical game folder.
	canonical, err := filesystem.Canonicalize(gameFolder)
	if err != nil {
		return nil, err
	}
	record := &registry.InstalledUpload{
		UploadID:   uploadID,
		GameFolder: canonical,
		Upload:     upload,
		Game:       game,
	}
	reg.SetInstalled(record)
	if err := reg.Save(); err != nil {
		return nil, err
	}

	// Success.
	return record, nil
}

// Remove removes an installed upload's files and registry record. The game
// folder is pruned when the removal leaves it empty.
func Remove(reg *registry.Registry, uploadID uint64) error {
	// Look up the record.
	record, installed := reg.Installed(uploadID)
	if !installed {
		return &registry.NotInstalledError{UploadID: uploadID}
	}

	// Remove the upload folder if it still holds anything.
	uploadFolder := record.UploadFolder()
	if empty, err := filesystem.IsDirectoryEmpty(uploadFolder); err != nil {
		return err
	} else if !empty {
		if err := filesystem.RemoveDirectorySafely(uploadFolder); err != nil {
			return err
		}
	} else if exists, err := filesystem.Exists(uploadFolder); err != nil {
		return err
	} else if exists {
		if err := filesystem.RemoveEmptyDirectory(uploadFolder); err != nil {
			return err
		}
	}

	// Prune the game folder if it is now empty.
	if _, err := filesystem.RemoveDirectoryIfEmpty(record.GameFolder); err != nil {
		return err
	}

	// Drop the record.
	reg.RemoveInstalled(uploadID)
	return reg.Save()
}

// RemovePartialDownload removes the partial state of a cancelled download:
// the archive, its sidecar, and any partial extraction folder. It returns
// whether or not anything was actually deleted.
func RemovePartialDownload(
	ctx context.Context,
	client *api.Client,
	reg *registry.Registry,
	uploadID uint64,
	gameFolder string,
) (bool, error) {
	// Resolve the upload and game metadata, which determine the default game
	// folder and the archive's file name.
	upload, err := client.UploadInfo(ctx, uploadID)
	if err != nil {
		return false, err
	}
	game, err := client.GameInfo(ctx, upload.GameID)
	if err != nil {
		return false, err
	}
	gameFolder = resolveGameFolder(gameFolder, game)

	// Compute the partial paths. The upload folder itself is never removed.
	archivePath := filesystem.UploadArchivePath(gameFolder, uploadID, upload.Filename)
	archivePartPath, err := filesystem.AddPartExtension(archivePath)
	if err != nil {
		return false, err
	}
	extractionPartPath, err := filesystem.AddPartExtension(
		filesystem.UploadFolder(gameFolder, uploadID),
	)
	if err != nil {
		return false, err
	}

	var removed bool

	// Remove the partial files.
	for _, path := range []string{archivePartPath, archivePath} {
		if exists, err := filesystem.Exists(path); err != nil {
			return removed, err
		} else if exists {
			if err := filesystem.RemoveFile(path); err != nil {
				return removed, err
			}
			removed = true
		}
	}

	// Remove the partial extraction folder.
	if exists, err := filesystem.Exists(extractionPartPath); err != nil {
		return removed, err
	} else if exists {
		if err := filesystem.RemoveDirectorySafely(extractionPartPath); err != nil {
			return removed, err
		}
		removed = true
	}

	// Prune the game folder if it is now empty.
	if pruned, err := filesystem.RemoveDirectoryIfEmpty(gameFolder); err != nil {
		return removed, err
	} else if pruned {
		removed = true
	}

	return removed, nil
}

// Move moves an installed upload to a new game folder, handling cross-device
// destinations, and updates the registry record with the canonical new
// folder.
func Move(reg *registry.Registry, uploadID uint64, destinationGameFolder string) (string, error) {
	// Look up the record.
	record, installed := reg.Installed(uploadID)
	if !installed {
		return "", &registry.NotInstalledError{UploadID: uploadID}
	}

	// Require the source to exist.
	sourceUploadFolder := record.UploadFolder()
	if exists, err := filesystem.Exists(sourceUploadFolder); err != nil {
		return "", err
	} else if !exists {
		return "", errors.Errorf("the installed files are missing from %q", sourceUploadFolder)
	}

	// Require the destination to be empty or absent.
	destinationUploadFolder := filesystem.UploadFolder(destinationGameFolder, uploadID)
	if empty, err := filesystem.IsDirectoryEmpty(destinationUploadFolder); err != nil {
		return "", err
	} else if !empty {
		return "", errors.Errorf("the move destination isn't empty: %q", destinationUploadFolder)
	}

	// Move the upload folder.
	if err := filesystem.MoveDirectory(sourceUploadFolder, destinationUploadFolder); err != nil {
		return "", err
	}

	// Prune the source game folder if it is now empty.
	if _, err := filesystem.RemoveDirectoryIfEmpty(record.GameFolder); err != nil {
		return "", err
	}

	// Update the record with the canonical destination.
	canonical, err := filesystem.Canonicalize(destinationGameFolder)
	if err != nil {
		return "", err
	}
	record.GameFolder = canonical
	reg.SetInstalled(record)
	if err := reg.Save(); err != nil {
		return "", err
	}

	// Success.
	return canonical, nil
}

// CoverFileName is the default file name for downloaded cover images.
const CoverFileName = "cover.png"

// DownloadCover downloads a game's cover image into the specified folder,
// returning the image's path. A game without a cover yields an empty path.
// An existing cover isn't replaced unless force is set.
func DownloadCover(
	ctx context.Context,
	client *api.Client,
	gameID uint64,
	folder string,
	fileName string,
	force bool,
) (string, error) {
	// Resolve the game and check for a cover.
	game, err := client.GameInfo(ctx, gameID)
	if err != nil {
		return "", err
	}
	if game.CoverURL == "" {
		return "", nil
	}

	// Create the destination folder.
	if err := filesystem.CreateDirectories(folder); err != nil {
		return "", err
	}
	if fileName == "" {
		fileName = CoverFileName
	}
	path := filepath.Join(folder, fileName)

	// Keep an existing cover unless forced to replace it.
	if !force {
		if exists, err := filesystem.Exists(path); err != nil {
			return "", err
		} else if exists {
			return path, nil
		}
	}

	// Download the image without digest verification; the server declares no
	// digest for covers.
	if err := download.Download(
		ctx, client, api.External(game.CoverURL), path, "",
		download.Callbacks{}, DefaultCallbackInterval,
	); err != nil {
		return "", err
	}

	// Success.
	return path, nil
}
