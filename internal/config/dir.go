// Package config resolves specdiff settings from defaults, the project
// config file, and environment overrides, and locates the global
// configuration directory.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the specdiff configuration directory.
//
// Resolution:
//   - $SPECDIFF_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/specdiff if set (respects XDG on any platform)
//   - %AppData%/specdiff on Windows
//   - ~/.config/specdiff on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("SPECDIFF_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "specdiff")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "specdiff")
		}
	}

	// macOS and Linux: ~/.config/specdiff
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "specdiff")
}
