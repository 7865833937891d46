// Package storage locates the per-user data directory and reads and writes
// the JSON files kept there.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	settingsFile = "settings.json"
	statesDir    = "states"
	biosDir      = "bios"
)

// Dirs resolves file locations below a base directory
type Dirs struct {
	Base string
}

// DefaultDirs returns the platform data directory for appName:
//   - macOS: ~/Library/Application Support/<appName>
//   - Linux: $XDG_DATA_HOME/<appName> or ~/.local/share/<appName>
//   - Windows: %APPDATA%/<appName>
func DefaultDirs(appName string) (Dirs, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return Dirs{}, fmt.Errorf("failed to get home directory: %w", err)
		}
		return Dirs{Base: filepath.Join(home, "Library", "Application Support", appName)}, nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return Dirs{}, errors.New("APPDATA environment variable not set")
		}
		return Dirs{Base: filepath.Join(appData, appName)}, nil
	}

	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return Dirs{Base: filepath.Join(dataHome, appName)}, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Dirs{}, fmt.Errorf("failed to get home directory: %w", err)
	}
	return Dirs{Base: filepath.Join(home, ".local", "share", appName)}, nil
}

func (d Dirs) SettingsPath() string { return filepath.Join(d.Base, settingsFile) }
func (d Dirs) StatesDir() string    { return filepath.Join(d.Base, statesDir) }
func (d Dirs) BiosDir() string      { return filepath.Join(d.Base, biosDir) }

// Ensure creates the directory tree.
func (d Dirs) Ensure() error {
	for _, dir := range []string{d.Base, d.StatesDir(), d.BiosDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// AtomicWriteJSON writes data to path through a temporary file and a rename,
// so readers never see a partially written file.
func AtomicWriteJSON(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// ReadJSON reads and unmarshals a JSON file. A missing file yields an error
// matching os.ErrNotExist.
func ReadJSON(path string, data any) error {
	jsonData, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(jsonData, data); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
