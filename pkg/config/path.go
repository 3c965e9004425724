package config

import (
	"os"
	"path/filepath"
	"sync"
)

// Name is the directory created under the user's config and cache dirs.
const Name = "rusty"

var configDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

var cacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

func userDir(lookup func() (string, error), fallback string) string {
	dir, err := lookup()
	if err != nil {
		if dir, err = os.UserHomeDir(); err == nil {
			dir = filepath.Join(dir, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}
	return filepath.Join(dir, Name)
}

// DefaultPath is the configuration file read when --config is not given.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultHistoryPath is where the REPL keeps its history.
func DefaultHistoryPath() string {
	return filepath.Join(cacheDir(), "history")
}
