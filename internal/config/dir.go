package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the gitprompts configuration directory.
//
// Resolution:
//   - $GITPROMPTS_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/gitprompts if set (respects XDG on any platform)
//   - %AppData%/gitprompts on Windows
//   - ~/.config/gitprompts on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("GITPROMPTS_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitprompts")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "gitprompts")
		}
	}

	// macOS and Linux: ~/.config/gitprompts
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gitprompts")
}
