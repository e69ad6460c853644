package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DatabaseFileName is the name of the session database inside the data directory
const DatabaseFileName = "sim_data.db"

// DataPaths holds the locations used by lap-analyzer
type DataPaths struct {
	DataDir      string // directory holding the database and exports
	DatabasePath string // SQLite session database
}

// DetectDataPaths returns the default data locations for the current operating system
func DetectDataPaths() (DataPaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return DataPaths{}, fmt.Errorf("failed to get home directory: %w", err)
	}

	var dataDir string
	switch runtime.GOOS {
	case "darwin":
		dataDir = filepath.Join(home, "Library/Application Support/lap-analyzer")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			dataDir = filepath.Join(appData, "lap-analyzer")
		} else {
			dataDir = filepath.Join(home, "AppData", "Roaming", "lap-analyzer")
		}
	default:
		dataDir = filepath.Join(home, ".config/lap-analyzer")
	}

	return DataPaths{
		DataDir:      dataDir,
		DatabasePath: filepath.Join(dataDir, DatabaseFileName),
	}, nil
}

// GetDataPaths resolves the data paths, honouring a custom database location.
// A custom path may name the database file or a directory to hold it.
func GetDataPaths(customPath string) (DataPaths, error) {
	if customPath == "" {
		return DetectDataPaths()
	}

	absPath, err := filepath.Abs(customPath)
	if err != nil {
		return DataPaths{}, fmt.Errorf("failed to resolve path %s: %w", customPath, err)
	}

	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		return DataPaths{
			DataDir:      absPath,
			DatabasePath: filepath.Join(absPath, DatabaseFileName),
		}, nil
	}

	return DataPaths{
		DataDir:      filepath.Dir(absPath),
		DatabasePath: absPath,
	}, nil
}

// DatabaseExists checks if the session database has been created
func (dp DataPaths) DatabaseExists() bool {
	info, err := os.Stat(dp.DatabasePath)
	return err == nil && !info.IsDir()
}
