// Package registry implements the persisted installed-upload registry: a
// versioned configuration file mapping upload identifiers to their install
// records, plus the saved API key.
package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/gofrs/flock"

	"github.com/Vidi0/scratch-io/pkg/api"
	"github.com/Vidi0/scratch-io/pkg/encoding"
)

const (
	// configDirectoryName is the name of the application's directory under
	// the user configuration directory.
	configDirectoryName = "scratch-io"
	// configFileName is the name of the configuration file.
	configFileName = "config.toml"
	// lockFileName is the name of the lock file guarding configuration
	// access against concurrent invocations.
	lockFileName = "config.lock"

	// Version is the configuration format version that this build reads and
	// writes.
	Version uint64 = 0
)

// IncompatibleVersionError indicates that the configuration file on disk was
// written by an incompatible version of the application.
type IncompatibleVersionError struct {
	// Found is the version found in the configuration file.
	Found uint64
}

// Error implements error.Error.
func (e *IncompatibleVersionError) Error() string {
	return fmt.Sprintf(
		"incompatible configuration version: found %d, supported %d",
		e.Found, Version,
	)
}

// NotInstalledError indicates that an upload isn't recorded as installed.
type NotInstalledError struct {
	// UploadID is the upload's identifier.
	UploadID uint64
}

// Error implements error.Error.
func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("upload %d isn't installed", e.UploadID)
}

// AlreadyInstalledError indicates that an upload is already recorded as
// installed.
type AlreadyInstalledError struct {
	// UploadID is the upload's identifier.
	UploadID uint64
}

// Error implements error.Error.
func (e *AlreadyInstalledError) Error() string {
	return fmt.Sprintf("upload %d is already installed", e.UploadID)
}

// InstalledUpload records an installed upload: its identifier, the canonical
// game folder holding its payload, and the last known server metadata. The
// metadata is optional so that records survive server-side schema changes;
// it can be refreshed with AddMissingInfo.
type InstalledUpload struct {
	// UploadID is the upload's identifier.
	UploadID uint64 `toml:"upload_id"`
	// GameFolder is the canonical absolute path of the game folder. The
	// upload's payload lives in the folder named by the upload identifier
	// beneath it.
	GameFolder string `toml:"game_folder"`
	// Upload is the last known upload metadata, if any.
	Upload *api.Upload `toml:"upload,omitempty"`
	// Game is the last known game metadata, if any.
	Game *api.Game `toml:"game,omitempty"`
}

// AddMissingInfo fills in (or, if force is set, refreshes) the record's
// server metadata. It returns whether or not anything was updated.
func (u *InstalledUpload) AddMissingInfo(ctx context.Context, client *api.Client, force bool) (bool, error) {
	var updated bool
	if u.Upload == nil || force {
		upload, err := client.UploadInfo(ctx, u.UploadID)
		if err != nil {
			return updated, err
		}
		u.Upload = upload
		updated = true
	}
	if u.Game == nil || force {
		game, err := client.GameInfo(ctx, u.Upload.GameID)
		if err != nil {
			return updated, err
		}
		u.Game = game
		updated = true
	}
	return updated, nil
}

// UploadFolder computes the folder holding the upload's payload.
func (u *InstalledUpload) UploadFolder() string {
	return filepath.Join(u.GameFolder, strconv.FormatUint(u.UploadID, 10))
}

// configuration is the on-disk configuration structure.
type configuration struct {
	// ConfigVersion is the configuration format version.
	ConfigVersion uint64 `toml:"config_version"`
	// APIKey is the saved API key, if any.
	APIKey string `toml:"api_key,omitempty"`
	// InstalledUploads maps decimal upload identifiers to their install
	// records.
	InstalledUploads map[string]*InstalledUpload `toml:"installed_uploads"`
}

// Registry is the loaded installed-upload registry. It is accessed by a
// single task; each mutation is persisted with an atomic save under a file
// lock, so concurrent invocations of the application never interleave
// partial writes.
type Registry struct {
	// path is the configuration file's path.
	path string
	// lock guards configuration access across processes.
	lock *flock.Flock
	// configuration is the loaded configuration.
	configuration
}

// DefaultConfigFolder computes the default configuration folder.
func DefaultConfigFolder() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "unable to determine user configuration directory")
	}
	return filepath.Join(base, configDirectoryName), nil
}

// Load loads the registry from the specified configuration folder, which may
// be empty to use the default. A missing configuration file yields an empty
// registry; an incompatible version yields a typed error.
func Load(configFolder string) (*Registry, error) {
	// Resolve the configuration folder.
	if configFolder == "" {
		var err error
		if configFolder, err = DefaultConfigFolder(); err != nil {
			return nil, err
		}
	}

	registry := &Registry{
		path: filepath.Join(configFolder, configFileName),
		lock: flock.New(filepath.Join(configFolder, lockFileName)),
		configuration: configuration{
			ConfigVersion:    Version,
			InstalledUploads: make(map[string]*InstalledUpload),
		},
	}

	// If the configuration file doesn't exist yet, then start empty.
	if _, err := os.Stat(registry.path); os.IsNotExist(err) {
		return registry, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "unable to check for configuration file")
	}

	// Take the file lock while reading.
	if err := registry.lock.Lock(); err != nil {
		return nil, errors.Wrap(err, "unable to acquire configuration lock")
	}
	defer registry.lock.Unlock()

	// Check the configuration version before decoding the full structure, so
	// that a newer format yields a version error rather than a decode error.
	versionProbe := struct {
		ConfigVersion uint64 `toml:"config_version"`
	}{}
	if err := encoding.LoadAndUnmarshalTOML(registry.path, &versionProbe); err != nil {
		return nil, errors.Wrap(err, "unable to read configuration version")
	}
	if versionProbe.ConfigVersion != Version {
		return nil, &IncompatibleVersionError{Found: versionProbe.ConfigVersion}
	}

	// Decode the configuration.
	if err := encoding.LoadAndUnmarshalTOML(registry.path, &registry.configuration); err != nil {
		return nil, errors.Wrap(err, "unable to load configuration")
	}
	if registry.InstalledUploads == nil {
		registry.InstalledUploads = make(map[string]*InstalledUpload)
	}

	// Success.
	return registry, nil
}

// Save persists the registry atomically under the file lock.
func (r *Registry) Save() error {
	// Ensure that the configuration folder exists.
	if err := os.MkdirAll(filepath.Dir(r.path), 0700); err != nil {
		return errors.Wrap(err, "unable to create configuration folder")
	}

	// Take the file lock while writing.
	if err := r.lock.Lock(); err != nil {
		return errors.Wrap(err, "unable to acquire configuration lock")
	}
	defer r.lock.Unlock()

	// Save atomically.
	if err := encoding.MarshalAndSaveTOML(r.path, &r.configuration); err != nil {
		return errors.Wrap(err, "unable to save configuration")
	}

	// Success.
	return nil
}

// APIKey returns the saved API key, if any.
func (r *Registry) APIKey() string {
	return r.configuration.APIKey
}

// SetAPIKey records the API key.
func (r *Registry) SetAPIKey(key string) {
	r.configuration.APIKey = key
}

// Installed looks up the install record for an upload.
func (r *Registry) Installed(uploadID uint64) (*InstalledUpload, bool) {
	record, ok := r.InstalledUploads[strconv.FormatUint(uploadID, 10)]
	return record, ok
}

// AllInstalled returns all install records.
func (r *Registry) AllInstalled() []*InstalledUpload {
	records := make([]*InstalledUpload, 0, len(r.InstalledUploads))
	for _, record := range r.InstalledUploads {
		records = append(records, record)
	}
	return records
}

// SetInstalled records an upload as installed, replacing any previous record.
func (r *Registry) SetInstalled(record *InstalledUpload) {
	r.InstalledUploads[strconv.FormatUint(record.UploadID, 10)] = record
}

// RemoveInstalled removes an upload's install record, returning whether or
// not a record was present.
func (r *Registry) RemoveInstalled(uploadID uint64) bool {
	key := strconv.FormatUint(uploadID, 10)
	if _, ok := r.InstalledUploads[key]; !ok {
		return false
	}
	delete(r.InstalledUploads, key)
	return true
}
