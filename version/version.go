// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/natty-misc/ymd3/constant"
	"github.com/natty-misc/ymd3/fetch"
	"github.com/natty-misc/ymd3/filesystem"
	"github.com/natty-misc/ymd3/where"
)

var versionCacher = sync.OnceValue(func() *gache.Cache[string] {
	return gache.New[string](&gache.Options{
		Path:       filepath.Join(where.Cache(), "version.json"),
		Lifetime:   time.Hour * 24 * 2,
		FileSystem: &filesystem.GacheFs{},
	})
})

// releaseURL is the GitHub API endpoint of the latest release.
var releaseURL = "https://api.github.com/repos/" + constant.Repository + "/releases/latest"

// Latest retrieves the most recent stable application version from GitHub releases.
// The answer is cached for two days.
func Latest(ctx context.Context, fetcher fetch.Fetcher) (string, error) {
	ver, expired, err := versionCacher().Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	body, err := fetcher.Fetch(ctx, releaseURL)
	if err != nil {
		return "", err
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err := json.Unmarshal(body, &release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	version := strings.TrimPrefix(release.TagName, "v")
	_ = versionCacher().Set(version)
	return version, nil
}
