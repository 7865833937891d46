package input

import "github.com/valerio/go-jeebie-shell/jeebie/input/action"

// DefaultKeyMap provides default key mappings that work across backends.
// Backends can use these mappings as a base and override/extend as needed.
var DefaultKeyMap = map[string]action.Action{
	// File
	"o":      action.FileOpen,
	"c":      action.FileClose,
	"b":      action.FileOpenBios,
	"q":      action.FileQuit,
	"Alt+1":  action.FileOpenRecent1,
	"Alt+2":  action.FileOpenRecent2,
	"Alt+3":  action.FileOpenRecent3,
	"Alt+4":  action.FileOpenRecent4,
	"Alt+5":  action.FileOpenRecent5,
	"Alt+6":  action.FileOpenRecent6,
	"Alt+7":  action.FileOpenRecent7,
	"Alt+8":  action.FileOpenRecent8,
	"Alt+9":  action.FileOpenRecent9,
	"Escape": action.ViewEscape,

	// Play
	"Space":     action.PlayPauseToggle,
	"p":         action.PlayPauseToggle, // Alternative key
	"n":         action.PlayFrameStep,
	"r":         action.PlayReset,
	"-":         action.PlayDecFrameRate,
	"_":         action.PlayDecFrameRate, // Alternative with shift
	"+":         action.PlayIncFrameRate,
	"=":         action.PlayIncFrameRate, // Alternative without shift
	"Backspace": action.PlayResetFrameRate,
	"y":         action.PlaySyncFrameRateToggle,
	"t":         action.PlayRTCModeToggle,

	// State
	"F5": action.StateSave,
	"F8": action.StateLoad,
	"s":  action.StateSaveAs,
	"l":  action.StateLoadFrom,
	"F6": action.StatePrevSlot,
	"F7": action.StateNextSlot,
	"0":  action.StateSelectSlot0,
	"1":  action.StateSelectSlot1,
	"2":  action.StateSelectSlot2,
	"3":  action.StateSelectSlot3,
	"4":  action.StateSelectSlot4,
	"5":  action.StateSelectSlot5,
	"6":  action.StateSelectSlot6,
	"7":  action.StateSelectSlot7,
	"8":  action.StateSelectSlot8,
	"9":  action.StateSelectSlot9,

	// View
	"F11": action.ViewToggleFullScreen,
	"v":   action.ViewCycleWindowSize,
	"g":   action.ViewCyclePlatform,
	"k":   action.ViewCyclePalette,
	"K":   action.ViewCycleROMPalette,
	"m":   action.ViewMenuToggle,
	"F1":  action.HelpAbout,
}

// GetDefaultMapping returns the default action for a key, if one exists
func GetDefaultMapping(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}
