package install

import (
	"archive/zip"
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/Vidi0/scratch-io/pkg/api"
	"github.com/Vidi0/scratch-io/pkg/download"
	"github.com/Vidi0/scratch-io/pkg/filesystem"
	"github.com/Vidi0/scratch-io/pkg/registry"
	"github.com/Vidi0/scratch-io/pkg/wharf"
)

// ErrNotWharfEnabled indicates that an upload isn't distributed through the
// wharf build infrastructure, so it can't be verified or upgraded
// incrementally.
var ErrNotWharfEnabled = errors.New("the upload isn't distributed as wharf builds")

// WharfCallbacks bundles the progress callbacks of verification and
// upgrading. Any field may be nil.
type WharfCallbacks struct {
	// Callbacks are the download callbacks used for fetched binaries.
	Callbacks
	// VerifyTotal is invoked with the total number of blocks to verify.
	VerifyTotal func(blocks uint64)
	// VerifyProgress is invoked with the number of blocks processed since
	// the previous invocation.
	VerifyProgress func(blocks uint64)
	// PatchStarting is invoked before each patch application with the
	// target build identifier.
	PatchStarting func(buildID uint64)
	// FilePatched is invoked after each patched file.
	FilePatched func()
	// RepairProgress is invoked with the number of bytes repaired since the
	// previous invocation.
	RepairProgress func(bytes uint64)
}

// installedBuildID extracts the installed build identifier from a registry
// record.
func installedBuildID(record *registry.InstalledUpload) (uint64, error) {
	if record.Upload == nil || record.Upload.Storage != api.UploadStorageBuild || record.Upload.BuildID == 0 {
		return 0, ErrNotWharfEnabled
	}
	return record.Upload.BuildID, nil
}

// downloadBuildFile downloads one of a build's files into a collision-free
// temporary within the game folder, returning the file's path. The caller is
// responsible for removing the file.
func downloadBuildFile(
	ctx context.Context,
	client *api.Client,
	buildID uint64,
	fileType string,
	gameFolder string,
	callbacks Callbacks,
) (string, error) {
	base := filesystem.UploadArchivePath(
		gameFolder, buildID, fmt.Sprintf("build-%s", fileType),
	)
	path, err := filesystem.FindAvailablePath(base)
	if err != nil {
		return "", err
	}
	if err := download.Download(
		ctx, client, api.DownloadBuildURL(buildID, fileType, api.BuildFileSubtypeDefault),
		path, "", callbacks.downloadCallbacks(), callbacks.interval(),
	); err != nil {
		return "", err
	}
	return path, nil
}

// verifyAgainstBuild downloads a build's signature and verifies the upload
// folder against it.
func verifyAgainstBuild(
	ctx context.Context,
	client *api.Client,
	buildID uint64,
	gameFolder, uploadFolder string,
	callbacks WharfCallbacks,
) (*wharf.IntegrityIssues, error) {
	// Download the signature.
	signaturePath, err := downloadBuildFile(
		ctx, client, buildID, api.BuildFileTypeSignature, gameFolder, callbacks.Callbacks,
	)
	if err != nil {
		return nil, err
	}
	defer os.Remove(signaturePath)

	// Decode the signature.
	file, err := filesystem.OpenFile(signaturePath, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	signature, err := wharf.ReadSignature(file)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read build signature")
	}
	if callbacks.VerifyTotal != nil {
		callbacks.VerifyTotal(signature.BlockHashes.TotalBlocks())
	}

	// Verify the upload folder.
	return signature.VerifyFiles(uploadFolder, callbacks.VerifyProgress)
}

// repairFromBuildArchive downloads a build's archive and reconstructs the
// broken files recorded in the integrity issues.
func repairFromBuildArchive(
	ctx context.Context,
	client *api.Client,
	buildID uint64,
	gameFolder, uploadFolder string,
	issues *wharf.IntegrityIssues,
	callbacks WharfCallbacks,
) error {
	// Download the authoritative build archive.
	archivePath, err := downloadBuildFile(
		ctx, client, buildID, api.BuildFileTypeArchive, gameFolder, callbacks.Callbacks,
	)
	if err != nil {
		return err
	}
	defer os.Remove(archivePath)

	// Open it as a ZIP archive.
	archive, err := zip.OpenReader(archivePath)
	if err != nil {
		return errors.Wrap(err, "unable to open build archive")
	}
	defer archive.Close()

	// Reconstruct the broken files.
	return issues.RepairFiles(uploadFolder, &archive.Reader, callbacks.RepairProgress)
}

// Verify checks an installed upload's files against the signature of its
// installed build, optionally repairing any broken files from the build's
// archive. It returns the integrity issues found by the verification pass
// (before any repair).
func Verify(
	ctx context.Context,
	client *api.Client,
	reg *registry.Registry,
	uploadID uint64,
	repair bool,
	callbacks WharfCallbacks,
) (*wharf.IntegrityIssues, error) {
	// Look up the record and its installed build.
	record, installed := reg.Installed(uploadID)
	if !installed {
		return nil, &registry.NotInstalledError{UploadID: uploadID}
	}
	buildID, err := installedBuildID(record)
	if err != nil {
		return nil, err
	}

	// Verify against the installed build's signature.
	issues, err := verifyAgainstBuild(
		ctx, client, buildID, record.GameFolder, record.UploadFolder(), callbacks,
	)
	if err != nil {
		return nil, err
	}

	// Repair if requested and needed.
	if repair && !issues.Intact() {
		if err := repairFromBuildArchive(
			ctx, client, buildID, record.GameFolder, record.UploadFolder(), issues, callbacks,
		); err != nil {
			return issues, err
		}
	}

	// Success.
	return issues, nil
}

// applyPatchBuild downloads and applies a single build's patch, staging the
// result next to the upload folder and swapping it into place on success.
func applyPatchBuild(
	ctx context.Context,
	client *api.Client,
	buildID uint64,
	gameFolder, uploadFolder string,
	callbacks WharfCallbacks,
) error {
	// Download the patch.
	patchPath, err := downloadBuildFile(
		ctx, client, buildID, api.BuildFileTypePatch, gameFolder, callbacks.Callbacks,
	)
	if err != nil {
		return err
	}
	defer os.Remove(patchPath)

	// Decode the patch.
	file, err := filesystem.OpenFile(patchPath, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer file.Close()
	patch, err := wharf.ReadPatch(file)
	if err != nil {
		return errors.Wrap(err, "unable to read build patch")
	}

	// Apply the patch into a collision-free staging folder. A failed or
	// aborted application leaves only the staging folder behind; the
	// installed tree is untouched until the swap below.
	staging, err := filesystem.FindAvailablePath(uploadFolder + ".stage")
	if err != nil {
		return err
	}
	if err := patch.Apply(uploadFolder, staging, callbacks.FilePatched); err != nil {
		return errors.Wrapf(err, "unable to apply patch for build %d", buildID)
	}

	// Swap the staging folder into place.
	if err := filesystem.RemoveDirectorySafely(uploadFolder); err != nil {
		return err
	}
	return filesystem.MoveDirectory(staging, uploadFolder)
}

// Upgrade upgrades an installed upload to its latest build by walking the
// server's upgrade path and applying each build's patch in order, then
// verifying the result against the final build's signature (repairing from
// the build archive if necessary) and refreshing the registry record. It
// returns whether or not an upgrade was performed.
func Upgrade(
	ctx context.Context,
	client *api.Client,
	reg *registry.Registry,
	uploadID uint64,
	callbacks WharfCallbacks,
) (bool, error) {
	// Look up the record and its installed build.
	record, installed := reg.Installed(uploadID)
	if !installed {
		return false, &registry.NotInstalledError{UploadID: uploadID}
	}
	currentBuildID, err := installedBuildID(record)
	if err != nil {
		return false, err
	}

	// Resolve the latest build.
	latest, err := client.UploadInfo(ctx, uploadID)
	if err != nil {
		return false, err
	}
	if latest.Storage != api.UploadStorageBuild || latest.BuildID == 0 {
		return false, ErrNotWharfEnabled
	}
	if latest.BuildID == currentBuildID {
		return false, nil
	}

	// Resolve the upgrade path.
	path, err := client.UpgradePath(ctx, currentBuildID, latest.BuildID)
	if err != nil {
		return false, err
	}
	if len(path) == 0 {
		return false, errors.Errorf(
			"no upgrade path from build %d to build %d", currentBuildID, latest.BuildID,
		)
	}

	// Apply each build's patch in order. File patching within each patch is
	// strictly sequential in stream order.
	uploadFolder := record.UploadFolder()
	for _, build := range path {
		if callbacks.PatchStarting != nil {
			callbacks.PatchStarting(build.ID)
		}
		if err := applyPatchBuild(
			ctx, client, build.ID, record.GameFolder, uploadFolder, callbacks,
		); err != nil {
			return false, err
		}
	}

	// Verify the upgraded tree against the final build's signature, and
	// repair from the build archive if anything is broken.
	issues, err := verifyAgainstBuild(
		ctx, client, latest.BuildID, record.GameFolder, uploadFolder, callbacks,
	)
	if err != nil {
		return false, err
	}
	if !issues.Intact() {
		callbacks.warn(fmt.Sprintf(
			"%d files failed verification after patching, repairing from the build archive",
			len(issues.Files),
		))
		if err := repairFromBuildArchive(
			ctx, client, latest.BuildID, record.GameFolder, uploadFolder, issues, callbacks,
		); err != nil {
			return false, err
		}
	}

	// Refresh the registry record.
	record.Upload = latest
	reg.SetInstalled(record)
	if err := reg.Save(); err != nil {
		return false, err
	}

	// Success.
	return true, nil
}
