package config

import (
	"os"
	"path/filepath"
)

const appName = "typetest"

// appDir resolves the typetest directory under the XDG base named by env,
// falling back to fallback under the home directory.
func appDir(env string, fallback ...string) string {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			home = "."
		}
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(base, appName)
}

func configDir() string {
	return appDir("XDG_CONFIG_HOME", ".config")
}

// DefaultConfigPath returns the TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// DefaultWordListDir holds one <lang>.txt word list per language.
func DefaultWordListDir() string {
	return filepath.Join(configDir(), "wordlists")
}

func DefaultWordListPath(lang string) string {
	return filepath.Join(DefaultWordListDir(), lang+".txt")
}

// DefaultLibraryPath returns the SQLite text library path.
func DefaultLibraryPath() string {
	return filepath.Join(appDir("XDG_DATA_HOME", ".local", "share"), "library.db")
}
