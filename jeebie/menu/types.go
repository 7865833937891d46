package menu

import (
	"fmt"

	"github.com/valerio/go-jeebie-shell/jeebie/frametime"
)

// Size is a window or image size in pixels. The zero Size means a freely
// resizable ("variable") window.
type Size struct {
	Width  int
	Height int
}

// VariableSize is the window size option that lets the user resize freely.
var VariableSize = Size{}

func (s Size) String() string {
	if s == VariableSize {
		return "Variable"
	}
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Fits reports whether s fits inside bound.
func (s Size) Fits(bound Size) bool {
	return s.Width <= bound.Width && s.Height <= bound.Height
}

// Covers reports whether s is at least as large as o in both dimensions.
func (s Size) Covers(o Size) bool {
	return s.Width >= o.Width && s.Height >= o.Height
}

// ScalingMethod controls which window sizes make sense for the video output
type ScalingMethod int

const (
	ScalingUnrestricted ScalingMethod = iota
	ScalingKeepRatio
	ScalingInteger
)

// Platform identifies the hardware the emulation source pretends to be
type Platform int

const (
	PlatformDMG Platform = iota // Game Boy
	PlatformCGB                 // Game Boy Color
	PlatformGBA                 // Game Boy Color in GBA mode
	PlatformGBP                 // Game Boy Pocket
	PlatformSGB                 // Super Game Boy
)

// Platforms lists every platform in menu order
var Platforms = []Platform{PlatformDMG, PlatformCGB, PlatformGBA, PlatformGBP, PlatformSGB}

func (p Platform) String() string {
	switch p {
	case PlatformDMG:
		return "GB"
	case PlatformCGB:
		return "GBC"
	case PlatformGBA:
		return "GBA"
	case PlatformGBP:
		return "GBP"
	case PlatformSGB:
		return "SGB"
	}
	return fmt.Sprintf("Platform(%d)", int(p))
}

// RTCMode selects how cartridge real-time clocks advance
type RTCMode int

const (
	RTCCycleBased RTCMode = iota
	RTCRealTime
)

func (m RTCMode) String() string {
	if m == RTCRealTime {
		return "real-time"
	}
	return "cycle-based"
}

// PaletteLayers is the number of DMG palettes: background, sprite 1, sprite 2.
const PaletteLayers = 3

// Palette holds four RGB32 colours (lightest first) per DMG layer
type Palette [PaletteLayers][4]uint32

// ROMInfo describes a successfully loaded ROM
type ROMInfo struct {
	Path  string
	Title string
	// DMG is true for ROMs that run in monochrome mode and therefore use
	// the configured palettes.
	DMG bool
}

// BiosCriteria selects the boot ROM to look up
type BiosCriteria struct {
	Platform Platform
	// Path, when set, is a user supplied candidate file to verify.
	Path string
}

// BiosInfo describes a verified boot ROM
type BiosInfo struct {
	Platform Platform
	Path     string
	Size     int
	CRC32    uint32
}

// VideoConfig is a snapshot of the video settings dialog
type VideoConfig struct {
	SourceSize Size
	Scaling    ScalingMethod
}

// MiscConfig is a snapshot of the miscellaneous settings dialog
type MiscConfig struct {
	BaseFrameTime  frametime.Rational
	PauseOnDialogs bool
}

// SoundConfig is a snapshot of the sound settings dialog
type SoundConfig struct {
	Engine     string
	SampleRate int
	LatencyMs  int
}

// CheatConfig is a snapshot of the cheat dialog
type CheatConfig struct {
	GameGenie []string
	GameShark []string
}

// FileFilter restricts a file chooser to the given extensions (without dot)
type FileFilter struct {
	Description string
	Extensions  []string
}

var (
	romFilter   = FileFilter{"Game Boy ROM images", []string{"gb", "gbc", "sgb", "zip", "7z", "gz", "rar"}}
	stateFilter = FileFilter{"Save states", []string{"gqs"}}
	biosFilter  = FileFilter{"Boot ROM images", []string{"bin", "gb", "gbc"}}
)
