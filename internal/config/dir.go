// Package config resolves foldermap settings from the config file, the
// environment and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the foldermap configuration directory.
//
// Resolution:
//   - $FOLDERMAP_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/foldermap if set (respects XDG on any platform)
//   - %AppData%/foldermap on Windows
//   - ~/.config/foldermap on macOS and Linux
func Dir() string {
	if dir := os.Getenv("FOLDERMAP_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "foldermap")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "foldermap")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "foldermap")
}

// File returns the default config file path, or "" when no directory resolves.
func File() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
