package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Profile returns the profile behind the client's API key. It can be used to
// verify that the key is valid.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	response := struct {
		User *Profile `json:"user"`
	}{}
	if err := c.callJSON(ctx, http.MethodGet, V2("profile"), nil, &response); err != nil {
		return nil, fmt.Errorf("unable to get profile info: %w", err)
	}
	return response.User, nil
}

// UserInfo returns information about a user.
func (c *Client) UserInfo(ctx context.Context, userID uint64) (*User, error) {
	response := struct {
		User *User `json:"user"`
	}{}
	endpoint := V2("users/" + strconv.FormatUint(userID, 10))
	if err := c.callJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("unable to get user info: %w", err)
	}
	return response.User, nil
}

// OwnedKeys returns all of the profile's owned download keys, walking the
// endpoint's pagination to completion.
func (c *Client) OwnedKeys(ctx context.Context) ([]*OwnedKey, error) {
	var keys []*OwnedKey
	for page := uint64(1); ; page++ {
		response := struct {
			PerPage   uint64          `json:"per_page"`
			OwnedKeys List[*OwnedKey] `json:"owned_keys"`
		}{}
		configure := withQuery(url.Values{"page": {strconv.FormatUint(page, 10)}})
		if err := c.callJSON(ctx, http.MethodGet, V2("profile/owned-keys"), configure, &response); err != nil {
			return nil, fmt.Errorf("unable to list owned keys: %w", err)
		}

		keys = append(keys, response.OwnedKeys...)

		// The last page is the first one that isn't full.
		if uint64(len(response.OwnedKeys)) < response.PerPage || len(response.OwnedKeys) == 0 {
			break
		}
	}
	return keys, nil
}

// Collections returns the profile's game collections.
func (c *Client) Collections(ctx context.Context) ([]*Collection, error) {
	response := struct {
		Collections List[*Collection] `json:"collections"`
	}{}
	if err := c.callJSON(ctx, http.MethodGet, V2("profile/collections"), nil, &response); err != nil {
		return nil, fmt.Errorf("unable to list collections: %w", err)
	}
	return response.Collections, nil
}

// CollectionGames returns the games of a collection, walking the endpoint's
// pagination to completion.
func (c *Client) CollectionGames(ctx context.Context, collectionID uint64) ([]*CollectionGame, error) {
	endpoint := V2("collections/" + strconv.FormatUint(collectionID, 10) + "/collection-games")
	var games []*CollectionGame
	for page := uint64(1); ; page++ {
		response := struct {
			PerPage         uint64                `json:"per_page"`
			CollectionGames List[*CollectionGame] `json:"collection_games"`
		}{}
		configure := withQuery(url.Values{"page": {strconv.FormatUint(page, 10)}})
		if err := c.callJSON(ctx, http.MethodGet, endpoint, configure, &response); err != nil {
			return nil, fmt.Errorf("unable to list collection games: %w", err)
		}

		games = append(games, response.CollectionGames...)

		// The last page is the first one that isn't full.
		if uint64(len(response.CollectionGames)) < response.PerPage || len(response.CollectionGames) == 0 {
			break
		}
	}
	return games, nil
}

// GameInfo returns information about a game.
func (c *Client) GameInfo(ctx context.Context, gameID uint64) (*Game, error) {
	response := struct {
		Game *Game `json:"game"`
	}{}
	endpoint := V2("games/" + strconv.FormatUint(gameID, 10))
	if err := c.callJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("unable to get game info: %w", err)
	}
	return response.Game, nil
}

// GameUploads returns the uploads available for a game.
func (c *Client) GameUploads(ctx context.Context, gameID uint64) ([]*Upload, error) {
	response := struct {
		Uploads List[*Upload] `json:"uploads"`
	}{}
	endpoint := V2("games/" + strconv.FormatUint(gameID, 10) + "/uploads")
	if err := c.callJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("unable to list game uploads: %w", err)
	}
	return response.Uploads, nil
}

// UploadInfo returns information about an upload.
func (c *Client) UploadInfo(ctx context.Context, uploadID uint64) (*Upload, error) {
	response := struct {
		Upload *Upload `json:"upload"`
	}{}
	endpoint := V2("uploads/" + strconv.FormatUint(uploadID, 10))
	if err := c.callJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("unable to get upload info: %w", err)
	}
	return response.Upload, nil
}

// UploadBuilds returns the builds available for an upload.
func (c *Client) UploadBuilds(ctx context.Context, uploadID uint64) ([]*Build, error) {
	response := struct {
		Builds List[*Build] `json:"builds"`
	}{}
	endpoint := V2("uploads/" + strconv.FormatUint(uploadID, 10) + "/builds")
	if err := c.callJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("unable to list upload builds: %w", err)
	}
	return response.Builds, nil
}

// BuildInfo returns information about a build.
func (c *Client) BuildInfo(ctx context.Context, buildID uint64) (*Build, error) {
	response := struct {
		Build *Build `json:"build"`
	}{}
	endpoint := V2("builds/" + strconv.FormatUint(buildID, 10))
	if err := c.callJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("unable to get build info: %w", err)
	}
	return response.Build, nil
}

// UpgradePath returns the chain of builds leading from the current build to
// the target build, excluding the current build itself.
func (c *Client) UpgradePath(ctx context.Context, currentBuildID, targetBuildID uint64) ([]*Build, error) {
	response := struct {
		UpgradePath struct {
			Builds List[*Build] `json:"builds"`
		} `json:"upgrade_path"`
	}{}
	endpoint := V2(
		"builds/" + strconv.FormatUint(currentBuildID, 10) +
			"/upgrade-paths/" + strconv.FormatUint(targetBuildID, 10),
	)
	if err := c.callJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("unable to get upgrade path: %w", err)
	}
	return response.UpgradePath.Builds, nil
}

// ScannedArchive returns the server's scanned-archive record for an upload,
// which describes the upload's contents. The record's shape varies, so it is
// returned as raw JSON object data.
func (c *Client) ScannedArchive(ctx context.Context, uploadID uint64) (map[string]interface{}, error) {
	response := struct {
		ScannedArchive map[string]interface{} `json:"scanned_archive"`
	}{}
	endpoint := V2("uploads/" + strconv.FormatUint(uploadID, 10) + "/scanned-archive")
	if err := c.callJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("unable to get scanned archive: %w", err)
	}
	return response.ScannedArchive, nil
}

// BuildScannedArchive returns the server's scanned-archive record for a
// build.
func (c *Client) BuildScannedArchive(ctx context.Context, buildID uint64) (map[string]interface{}, error) {
	response := struct {
		ScannedArchive map[string]interface{} `json:"scanned_archive"`
	}{}
	endpoint := V2("builds/" + strconv.FormatUint(buildID, 10) + "/scanned-archive")
	if err := c.callJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("unable to get scanned archive: %w", err)
	}
	return response.ScannedArchive, nil
}

// DownloadUploadURL computes the address from which an upload's archive can
// be downloaded.
func DownloadUploadURL(uploadID uint64) URL {
	return V2("uploads/" + strconv.FormatUint(uploadID, 10) + "/download")
}

// DownloadBuildURL computes the address from which one of a build's files can
// be downloaded.
func DownloadBuildURL(buildID uint64, fileType, subType string) URL {
	return V2(
		"builds/" + strconv.FormatUint(buildID, 10) +
			"/download/" + fileType + "/" + subType,
	)
}
