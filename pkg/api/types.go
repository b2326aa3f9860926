package api

import (
	"bytes"
	"strconv"
	"time"

	"github.com/Vidi0/scratch-io/pkg/encoding"
)

// List is a slice that tolerates the itch.io API's habit of encoding empty
// lists as empty JSON objects.
type List[T any] []T

// UnmarshalJSON implements json.Unmarshaler.UnmarshalJSON.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	// The API encodes empty lists as empty objects, so treat any object as an
	// empty list.
	if len(data) > 0 && bytes.TrimSpace(data)[0] == '{' {
		*l = nil
		return nil
	}
	var items []T
	if err := encoding.UnmarshalJSON(data, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// ParentBuildID is a build identifier that tolerates the API's habit of
// encoding a missing parent as an error token. Unrecognized values decode as
// zero, meaning "no parent".
type ParentBuildID uint64

// UnmarshalJSON implements json.Unmarshaler.UnmarshalJSON.
func (p *ParentBuildID) UnmarshalJSON(data []byte) error {
	var id uint64
	if err := encoding.UnmarshalJSON(data, &id); err != nil {
		*p = 0
		return nil
	}
	*p = ParentBuildID(id)
	return nil
}

// User represents an itch.io user account.
type User struct {
	ID          uint64 `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	URL         string `json:"url"`
	CoverURL    string `json:"cover_url"`
	// StillCoverURL is only present when the cover is animated. It points at
	// the first frame of the cover.
	StillCoverURL string `json:"still_cover_url"`
}

// Name returns the user's display name, falling back to the username when no
// display name is set.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// Profile represents the profile behind an API key.
type Profile struct {
	User
	Gamer     bool `json:"gamer"`
	Developer bool `json:"developer"`
	PressUser bool `json:"press_user"`
}

// Game classification values.
const (
	GameClassificationGame = "game"
	GameClassificationTool = "tool"
)

// Game trait values.
const (
	GameTraitPlatformLinux   = "p_linux"
	GameTraitPlatformWindows = "p_windows"
	GameTraitPlatformOSX     = "p_osx"
	GameTraitPlatformAndroid = "p_android"
	GameTraitCanBeBought     = "can_be_bought"
	GameTraitHasDemo         = "has_demo"
	GameTraitInPressSystem   = "in_press_system"
)

// Game represents an itch.io game page.
type Game struct {
	ID             uint64       `json:"id"`
	URL            string       `json:"url"`
	Title          string       `json:"title"`
	ShortText      string       `json:"short_text"`
	Type           string       `json:"type"`
	Classification string       `json:"classification"`
	CoverURL       string       `json:"cover_url"`
	CreatedAt      time.Time    `json:"created_at"`
	PublishedAt    *time.Time   `json:"published_at"`
	MinPrice       uint64       `json:"min_price"`
	Traits         List[string] `json:"traits"`
	User           *User        `json:"user"`
}

// Collection represents a game collection.
type Collection struct {
	ID         uint64    `json:"id"`
	Title      string    `json:"title"`
	GamesCount uint64    `json:"games_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CollectionGame represents a game's membership in a collection.
type CollectionGame struct {
	Game      *Game     `json:"game"`
	Position  uint64    `json:"position"`
	UserID    uint64    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnedKey represents a download key owned by the profile.
type OwnedKey struct {
	ID        uint64    `json:"id"`
	GameID    uint64    `json:"game_id"`
	Downloads uint64    `json:"downloads"`
	Game      *Game     `json:"game"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Upload type values.
const (
	UploadTypeDefault = "default"
	UploadTypeHTML    = "html"
	UploadTypeFlash   = "flash"
	UploadTypeJava    = "java"
	UploadTypeUnity   = "unity"
)

// Upload trait values.
const (
	UploadTraitPlatformLinux   = "p_linux"
	UploadTraitPlatformWindows = "p_windows"
	UploadTraitPlatformOSX     = "p_osx"
	UploadTraitPlatformAndroid = "p_android"
	UploadTraitDemo            = "demo"
)

// Upload storage values.
const (
	UploadStorageHosted   = "hosted"
	UploadStorageBuild    = "build"
	UploadStorageExternal = "external"
)

// Upload represents a downloadable file attached to a game.
type Upload struct {
	Position    uint64       `json:"position"`
	ID          uint64       `json:"id"`
	GameID      uint64       `json:"game_id"`
	Type        string       `json:"type"`
	Traits      List[string] `json:"traits"`
	Filename    string       `json:"filename"`
	DisplayName string       `json:"display_name"`
	Storage     string       `json:"storage"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Size and MD5Hash are present for hosted and build storage. The hash is
	// the hex MD5 digest of the upload's archive, when the server knows it.
	Size    uint64 `json:"size"`
	MD5Hash string `json:"md5_hash"`

	// Build, BuildID, and ChannelName are present for build storage.
	Build       *Build `json:"build"`
	BuildID     uint64 `json:"build_id"`
	ChannelName string `json:"channel_name"`

	// Host is present for external storage.
	Host string `json:"host"`
}

// Platform identifies a platform that an upload can run on.
type Platform string

// Platforms supported by uploads.
const (
	PlatformLinux          Platform = "linux"
	PlatformWindows        Platform = "windows"
	PlatformOSX            Platform = "osx"
	PlatformAndroid        Platform = "android"
	PlatformWeb            Platform = "web"
	PlatformFlash          Platform = "flash"
	PlatformJava           Platform = "java"
	PlatformUnityWebPlayer Platform = "unity-web-player"
)

// ParsePlatform validates a platform name.
func ParsePlatform(name string) (Platform, bool) {
	switch Platform(name) {
	case PlatformLinux, PlatformWindows, PlatformOSX, PlatformAndroid,
		PlatformWeb, PlatformFlash, PlatformJava, PlatformUnityWebPlayer:
		return Platform(name), true
	}
	return "", false
}

// Platforms interprets the platforms that the upload is available for from
// its type and traits.
func (u *Upload) Platforms() []Platform {
	var platforms []Platform

	switch u.Type {
	case UploadTypeHTML:
		platforms = append(platforms, PlatformWeb)
	case UploadTypeFlash:
		platforms = append(platforms, PlatformFlash)
	case UploadTypeJava:
		platforms = append(platforms, PlatformJava)
	case UploadTypeUnity:
		platforms = append(platforms, PlatformUnityWebPlayer)
	}

	for _, trait := range u.Traits {
		switch trait {
		case UploadTraitPlatformLinux:
			platforms = append(platforms, PlatformLinux)
		case UploadTraitPlatformWindows:
			platforms = append(platforms, PlatformWindows)
		case UploadTraitPlatformOSX:
			platforms = append(platforms, PlatformOSX)
		case UploadTraitPlatformAndroid:
			platforms = append(platforms, PlatformAndroid)
		}
	}

	return platforms
}

// Build file type values.
const (
	BuildFileTypeArchive   = "archive"
	BuildFileTypePatch     = "patch"
	BuildFileTypeSignature = "signature"
	BuildFileTypeManifest  = "manifest"
	BuildFileTypeUnpacked  = "unpacked"
)

// Build file subtype values.
const (
	BuildFileSubtypeDefault     = "default"
	BuildFileSubtypeOptimized   = "optimized"
	BuildFileSubtypeAccelerated = "accelerated"
	BuildFileSubtypeGzip        = "gzip"
)

// BuildFile represents a single file belonging to a build.
type BuildFile struct {
	Size    uint64 `json:"size"`
	Type    string `json:"type"`
	SubType string `json:"sub_type"`
	State   string `json:"state"`
}

// Build represents a single version of an upload pushed through the wharf
// infrastructure.
type Build struct {
	ID            uint64          `json:"id"`
	ParentBuildID ParentBuildID   `json:"parent_build_id"`
	Version       uint64          `json:"version"`
	UserVersion   string          `json:"user_version"`
	UploadID      uint64          `json:"upload_id"`
	State         string          `json:"state"`
	Files         List[BuildFile] `json:"files"`
	User          *User           `json:"user"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// WebGameURL computes the address where an HTML upload can be played in a
// browser.
func WebGameURL(uploadID uint64) string {
	return "https://html-classic.itch.zone/html/" +
		strconv.FormatUint(uploadID, 10) + "/index.html"
}
