package launch

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/karrick/godirwalk"

	"github.com/Vidi0/scratch-io/pkg/api"
)

// candidatePatterns maps platforms to the glob patterns that their launchable
// files match. Patterns are matched against slash-separated paths relative to
// the upload folder.
var candidatePatterns = map[api.Platform][]string{
	api.PlatformLinux: {
		"**/*.x86_64", "**/*.x86", "**/*.bin", "**/*.sh", "**/*.run",
	},
	api.PlatformWindows: {
		"**/*.exe", "**/*.msi", "**/*.bat",
	},
	api.PlatformOSX: {
		"**/*.dmg", "**/*.app", "**/*.pkg",
	},
	api.PlatformAndroid: {
		"**/*.apk",
	},
	api.PlatformWeb: {
		"**/*.html",
	},
	api.PlatformFlash: {
		"**/*.swf",
	},
	api.PlatformJava: {
		"**/*.jar",
	},
	api.PlatformUnityWebPlayer: {
		"**/*.unity3d",
	},
}

// NoExecutableFoundError indicates that the heuristics couldn't locate a
// launchable file for a platform.
type NoExecutableFoundError struct {
	// Platform is the platform searched for.
	Platform api.Platform
	// UploadFolder is the folder searched.
	UploadFolder string
}

// Error implements error.Error.
func (e *NoExecutableFoundError) Error() string {
	return "no " + string(e.Platform) + " executable found in " + e.UploadFolder
}

// alphanumericLower reduces a string to its lowercased ASCII alphanumeric
// characters, so that title comparisons ignore punctuation and spacing.
func alphanumericLower(s string) string {
	var builder strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			builder.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			builder.WriteRune(r + ('a' - 'A'))
		}
	}
	return builder.String()
}

// matchesPlatform checks whether a relative path matches any of a platform's
// candidate patterns. On Linux, files without any extension are additionally
// accepted, since native builds often ship bare executables.
func matchesPlatform(platform api.Platform, relative string) bool {
	for _, pattern := range candidatePatterns[platform] {
		if matched, _ := doublestar.Match(pattern, relative); matched {
			return true
		}
	}
	if platform == api.PlatformLinux && filepath.Ext(relative) == "" {
		return true
	}
	return false
}

// rateCandidate scores a candidate executable. Candidates closer to the
// upload folder's root score higher, as do candidates whose name resembles
// the game title.
func rateCandidate(relative string, gameTitle string) int {
	rating := 0

	// Penalize depth: each directory level below the root costs heavily, so
	// a top-level launcher beats a deeply nested helper binary.
	depth := strings.Count(filepath.ToSlash(relative), "/")
	rating -= depth * 1000

	// Reward name similarity with the game title.
	stem := strings.TrimSuffix(filepath.Base(relative), filepath.Ext(relative))
	name := alphanumericLower(stem)
	title := alphanumericLower(gameTitle)
	if title != "" && name == title {
		rating += 5000
	} else if title != "" && (strings.Contains(name, title) || strings.Contains(title, name)) && name != "" {
		rating += 2000
	}

	return rating
}

// FindExecutable walks an upload folder and returns the best launch
// candidate for a platform, rated by proximity to the root and name
// similarity to the game title.
func FindExecutable(uploadFolder string, platform api.Platform, game *api.Game) (string, error) {
	var gameTitle string
	if game != nil {
		gameTitle = game.Title
	}

	var best string
	bestRating := 0
	found := false
	err := godirwalk.Walk(uploadFolder, &godirwalk.Options{
		Callback: func(path string, entry *godirwalk.Dirent) error {
			if entry.IsDir() {
				return nil
			}
			relative, err := filepath.Rel(uploadFolder, path)
			if err != nil {
				return err
			}
			relative = filepath.ToSlash(relative)
			if !matchesPlatform(platform, relative) {
				return nil
			}
			if rating := rateCandidate(relative, gameTitle); !found || rating > bestRating {
				best, bestRating, found = path, rating, true
			}
			return nil
		},
		Unsorted: false,
	})
	if err != nil {
		return "", errors.Wrapf(err, "unable to walk upload folder: %q", uploadFolder)
	}
	if !found {
		return "", &NoExecutableFoundError{Platform: platform, UploadFolder: uploadFolder}
	}
	return best, nil
}
