// Package settings persists the front-end configuration as JSON in the user
// data directory.
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/go-jeebie-shell/jeebie/frametime"
	"github.com/valerio/go-jeebie-shell/jeebie/menu"
	"github.com/valerio/go-jeebie-shell/jeebie/storage"
)

// CurrentVersion is the settings format written by this version.
const CurrentVersion = 1

// Settings is the on-disk configuration
type Settings struct {
	Version        int                         `json:"version"`
	RecentFiles    []string                    `json:"recentFiles"`
	FrameRateIndex int                         `json:"frameRateIndex"`
	SyncFrameRate  bool                        `json:"syncFrameRate"`
	Platform       string                      `json:"platform"`
	RTCMode        string                      `json:"rtcMode"`
	Palette        PaletteSetting              `json:"palette"`
	ROMPalettes    map[string]PaletteSetting   `json:"romPalettes,omitempty"`
	BiosPaths      map[string]string           `json:"biosPaths,omitempty"`
	Window         WindowSettings              `json:"window"`
	Video          VideoSettings               `json:"video"`
	Misc           MiscSettings                `json:"misc"`
	Cheats         map[string]menu.CheatConfig `json:"cheats,omitempty"`
}

// PaletteSetting stores a built-in palette by name and a custom one by colour.
type PaletteSetting struct {
	Name   string        `json:"name,omitempty"`
	Colors *menu.Palette `json:"colors,omitempty"`
}

type WindowSettings struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type VideoSettings struct {
	Scaling string `json:"scaling"`
}

type MiscSettings struct {
	FrameTimeNum   uint64 `json:"frameTimeNum"`
	FrameTimeDenom uint64 `json:"frameTimeDenom"`
	PauseOnDialogs bool   `json:"pauseOnDialogs"`
}

// Game Boy frame: 70224 cycles at 4194304 Hz
const (
	defaultFrameTimeNum   = 70224
	defaultFrameTimeDenom = 4194304
)

// Default returns the settings used on first start.
func Default() *Settings {
	return &Settings{
		Version:        CurrentVersion,
		FrameRateIndex: frametime.StepCount,
		Platform:       menu.PlatformCGB.String(),
		RTCMode:        menu.RTCCycleBased.String(),
		Palette:        PaletteSetting{Name: menu.BuiltinPalettes[0].Name},
		Video:          VideoSettings{Scaling: "keep-ratio"},
		Misc: MiscSettings{
			FrameTimeNum:   defaultFrameTimeNum,
			FrameTimeDenom: defaultFrameTimeDenom,
			PauseOnDialogs: true,
		},
	}
}

// Load reads the settings at path. A missing file yields the defaults; keys
// absent from the file keep their default value.
func Load(path string) (*Settings, error) {
	s := Default()
	if err := storage.ReadJSON(path, s); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("No settings file, using defaults", "path", path)
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	for _, fix := range s.Correct() {
		slog.Warn("Corrected setting", "fix", fix)
	}
	return s, nil
}

// Save writes the settings atomically.
func Save(path string, s *Settings) error {
	s.Version = CurrentVersion
	return storage.AtomicWriteJSON(path, s)
}
