package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "degportal"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/degportal by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/degportal by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/degportal/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/degportal/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// CatalogFilePath returns the full path to the catalog.yaml file.
// Returns ~/.config/degportal/catalog.yaml by default.
func CatalogFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "catalog.yaml")
}

// CacheFilePath returns the path to the SQLite document cache.
// Returns ~/.cache/degportal/documents.sqlite by default.
func CacheFilePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "documents.sqlite")
}
