// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/natty-misc/ymd3/constant"
	"github.com/natty-misc/ymd3/filesystem"
	"github.com/natty-misc/ymd3/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "YMD_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The path can be overridden with the YMD_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the directory used for application diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Scripts resolves the script root holding extraction programs and the bootstrap program.
// A non-empty scripts.path setting takes precedence over the default location.
func Scripts() string {
	if custom := viper.GetString(key.ScriptsPath); custom != "" {
		return ensureDir(custom)
	}
	return ensureDir(filepath.Join(Config(), "scripts"))
}

// History resolves the path of the extraction history file.
func History() string {
	return filepath.Join(Config(), "history.json")
}
