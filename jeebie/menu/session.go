package menu

import "errors"

var (
	// ErrResetInProgress rejects state changing actions while the source resets.
	ErrResetInProgress = errors.New("reset in progress")
	// ErrNoROM rejects actions that need a loaded ROM.
	ErrNoROM = errors.New("no ROM loaded")
	// ErrROMLoaded rejects platform changes while a ROM is running.
	ErrROMLoaded = errors.New("close the ROM before changing platform")
	// ErrNotDMG rejects ROM palette changes for colour ROMs.
	ErrNotDMG = errors.New("ROM palettes only apply to monochrome ROMs")
)

// DefaultStateSlots is the number of save state slots.
const DefaultStateSlots = 10

// Session is the mutable state owned by the Handler.
type Session struct {
	CurrentFile   string
	ROMTitle      string
	DMG           bool
	Paused        bool
	Resetting     bool
	Slot          int
	Platform      Platform
	RTCMode       RTCMode
	SyncFrameRate bool
}

// ROMLoaded reports whether a ROM is open.
func (s Session) ROMLoaded() bool {
	return s.CurrentFile != ""
}

// Snapshot is the part of the handler state that outlives the process. It is
// exchanged with the settings store.
type Snapshot struct {
	RecentFiles    []string
	FrameRateIndex int
	Platform       Platform
	GlobalPalette  Palette
	ROMPalettes    map[string]Palette
	WindowSize     Size
	SyncFrameRate  bool
	RTCMode        RTCMode
	BiosPaths      map[Platform]string
}
