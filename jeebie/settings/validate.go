package settings

import (
	"fmt"
	"strings"

	"github.com/valerio/go-jeebie-shell/jeebie/frametime"
	"github.com/valerio/go-jeebie-shell/jeebie/menu"
)

var scalingNames = map[string]menu.ScalingMethod{
	"unrestricted": menu.ScalingUnrestricted,
	"keep-ratio":   menu.ScalingKeepRatio,
	"integer":      menu.ScalingInteger,
}

// ParsePlatform accepts the menu names, case-insensitively.
func ParsePlatform(name string) (menu.Platform, bool) {
	for _, p := range menu.Platforms {
		if strings.EqualFold(p.String(), name) {
			return p, true
		}
	}
	return 0, false
}

func parseRTCMode(name string) (menu.RTCMode, bool) {
	for _, m := range []menu.RTCMode{menu.RTCCycleBased, menu.RTCRealTime} {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}

func (p PaletteSetting) resolve() (menu.Palette, bool) {
	if p.Colors != nil {
		return *p.Colors, true
	}
	return menu.PaletteByName(p.Name)
}

// paletteSetting stores built-in palettes by name.
func paletteSetting(p menu.Palette) PaletteSetting {
	if name := menu.PaletteName(p); name != "" {
		return PaletteSetting{Name: name}
	}
	return PaletteSetting{Colors: &p}
}

// Correct replaces invalid values with their defaults and describes each
// change.
func (s *Settings) Correct() []string {
	def := Default()
	var fixes []string
	fix := func(format string, args ...any) {
		fixes = append(fixes, fmt.Sprintf(format, args...))
	}

	if s.FrameRateIndex < 0 || s.FrameRateIndex > frametime.StepCount*2 {
		fix("frameRateIndex %d out of range", s.FrameRateIndex)
		s.FrameRateIndex = def.FrameRateIndex
	}
	if _, ok := ParsePlatform(s.Platform); !ok {
		fix("unknown platform %q", s.Platform)
		s.Platform = def.Platform
	}
	if _, ok := parseRTCMode(s.RTCMode); !ok {
		fix("unknown rtcMode %q", s.RTCMode)
		s.RTCMode = def.RTCMode
	}
	if _, ok := s.Palette.resolve(); !ok {
		fix("unknown palette %q", s.Palette.Name)
		s.Palette = def.Palette
	}
	for title, p := range s.ROMPalettes {
		if _, ok := p.resolve(); !ok {
			fix("unknown palette %q for %s", p.Name, title)
			delete(s.ROMPalettes, title)
		}
	}
	for name := range s.BiosPaths {
		if _, ok := ParsePlatform(name); !ok {
			fix("boot ROM for unknown platform %q", name)
			delete(s.BiosPaths, name)
		}
	}
	if s.Window.Width < 0 || s.Window.Height < 0 || (s.Window.Width == 0) != (s.Window.Height == 0) {
		fix("invalid window size %dx%d", s.Window.Width, s.Window.Height)
		s.Window = def.Window
	}
	if _, ok := scalingNames[s.Video.Scaling]; !ok {
		fix("unknown scaling %q", s.Video.Scaling)
		s.Video.Scaling = def.Video.Scaling
	}
	if s.Misc.FrameTimeDenom == 0 || s.Misc.FrameTimeNum == 0 {
		fix("invalid frame time %d/%d", s.Misc.FrameTimeNum, s.Misc.FrameTimeDenom)
		s.Misc.FrameTimeNum, s.Misc.FrameTimeDenom = def.Misc.FrameTimeNum, def.Misc.FrameTimeDenom
	}
	return fixes
}

// VideoConfig returns the video dialog settings.
func (s *Settings) VideoConfig() menu.VideoConfig {
	return menu.VideoConfig{
		SourceSize: menu.Size{Width: 160, Height: 144},
		Scaling:    scalingNames[s.Video.Scaling],
	}
}

// MiscConfig returns the miscellaneous dialog settings.
func (s *Settings) MiscConfig() menu.MiscConfig {
	return menu.MiscConfig{
		BaseFrameTime:  frametime.Rational{Num: s.Misc.FrameTimeNum, Denom: s.Misc.FrameTimeDenom},
		PauseOnDialogs: s.Misc.PauseOnDialogs,
	}
}

// Snapshot converts the settings to the handler's persisted state. Settings
// must have been corrected.
func (s *Settings) Snapshot() menu.Snapshot {
	snap := menu.Snapshot{
		RecentFiles:    append([]string(nil), s.RecentFiles...),
		FrameRateIndex: s.FrameRateIndex,
		WindowSize:     menu.Size{Width: s.Window.Width, Height: s.Window.Height},
		SyncFrameRate:  s.SyncFrameRate,
		ROMPalettes:    make(map[string]menu.Palette, len(s.ROMPalettes)),
		BiosPaths:      make(map[menu.Platform]string, len(s.BiosPaths)),
	}
	snap.Platform, _ = ParsePlatform(s.Platform)
	snap.RTCMode, _ = parseRTCMode(s.RTCMode)
	snap.GlobalPalette, _ = s.Palette.resolve()
	for title, p := range s.ROMPalettes {
		if colors, ok := p.resolve(); ok {
			snap.ROMPalettes[title] = colors
		}
	}
	for name, path := range s.BiosPaths {
		if p, ok := ParsePlatform(name); ok {
			snap.BiosPaths[p] = path
		}
	}
	return snap
}

// Update stores the handler state.
func (s *Settings) Update(snap menu.Snapshot) {
	s.RecentFiles = snap.RecentFiles
	s.FrameRateIndex = snap.FrameRateIndex
	s.SyncFrameRate = snap.SyncFrameRate
	s.Platform = snap.Platform.String()
	s.RTCMode = snap.RTCMode.String()
	s.Palette = paletteSetting(snap.GlobalPalette)
	s.Window = WindowSettings{Width: snap.WindowSize.Width, Height: snap.WindowSize.Height}

	s.ROMPalettes = make(map[string]PaletteSetting, len(snap.ROMPalettes))
	for title, p := range snap.ROMPalettes {
		s.ROMPalettes[title] = paletteSetting(p)
	}
	s.BiosPaths = make(map[string]string, len(snap.BiosPaths))
	for p, path := range snap.BiosPaths {
		s.BiosPaths[p.String()] = path
	}
}

// CheatsFor returns the cheats saved for a ROM title.
func (s *Settings) CheatsFor(title string) menu.CheatConfig {
	return s.Cheats[title]
}
