package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DataPaths holds where curalink keeps its files
type DataPaths struct {
	DataDir    string // database and logs
	ConfigFile string // optional YAML configuration
}

// DetectDataPaths resolves the data and config locations for the current OS
func DetectDataPaths() (DataPaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return DataPaths{}, fmt.Errorf("failed to get home directory: %w", err)
	}

	var dataDir, configDir string
	switch runtime.GOOS {
	case "darwin":
		dataDir = filepath.Join(home, "Library/Application Support/curalink")
		configDir = filepath.Join(home, ".config/curalink")
	case "linux", "freebsd", "openbsd":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			dataDir = filepath.Join(xdg, "curalink")
		} else {
			dataDir = filepath.Join(home, ".local/share/curalink")
		}
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDir = filepath.Join(xdg, "curalink")
		} else {
			configDir = filepath.Join(home, ".config/curalink")
		}
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		dataDir = filepath.Join(appData, "curalink")
		configDir = dataDir
	default:
		return DataPaths{}, fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}

	return DataPaths{
		DataDir:    dataDir,
		ConfigFile: filepath.Join(configDir, "config.yaml"),
	}, nil
}

// DatabasePath returns the default session database location
func (dp DataPaths) DatabasePath() string {
	return filepath.Join(dp.DataDir, "chats.db")
}

// LogPath returns the log file used while the terminal UI is running
func (dp DataPaths) LogPath() string {
	return filepath.Join(dp.DataDir, "curalink.log")
}

// DatabaseExists checks if the session database has been created
func (dp DataPaths) DatabaseExists() bool {
	_, err := os.Stat(dp.DatabasePath())
	return err == nil
}
