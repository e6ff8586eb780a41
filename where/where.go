// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/samber/lo"
	"github.com/vres-cli/vres/constant"
	"github.com/vres-cli/vres/filesystem"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "VRES_CONFIG_PATH"

// EnvDataPath overrides the default write directory location.
const EnvDataPath = "VRES_DATA_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// It prioritizes the XDG_CONFIG_HOME specification on Linux and equivalent user profile paths on Darwin and Windows.
// Direct override: The path resolution can be explicitly specified via the VRES_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Vres))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Vres))
}

// Data resolves the per-user directory used as the default write directory.
// On Linux it follows XDG_DATA_HOME, elsewhere it shares the platform config root.
func Data() string {
	if custom, ok := os.LookupEnv(EnvDataPath); ok {
		return ensureDir(custom)
	}

	switch runtime.GOOS {
	case constant.Linux, constant.Android:
		if xdg, ok := os.LookupEnv("XDG_DATA_HOME"); ok && xdg != "" {
			return ensureDir(filepath.Join(xdg, constant.Vres))
		}

		if home, err := os.UserHomeDir(); err == nil {
			return ensureDir(filepath.Join(home, ".local", "share", constant.Vres))
		}
	}

	return ensureDir(filepath.Join(Config(), "data"))
}

// Logs resolves the absolute path to the directory used for application diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Mounts resolves the path to the persisted search path registry.
func Mounts() string {
	return filepath.Join(Config(), "mounts.json")
}

// Temp resolves a unique, volatile filesystem path for transient application artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Vres))
}
