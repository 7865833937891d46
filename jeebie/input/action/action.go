package action

import "fmt"

// Action represents the user commands the front-end understands
type Action int

const (
	// File menu
	FileOpen Action = iota
	FileClose
	FileOpenRecent1
	FileOpenRecent2
	FileOpenRecent3
	FileOpenRecent4
	FileOpenRecent5
	FileOpenRecent6
	FileOpenRecent7
	FileOpenRecent8
	FileOpenRecent9
	FileOpenBios
	FileQuit

	// Play menu
	PlayPauseToggle
	PlayFrameStep
	PlayReset
	PlayDecFrameRate
	PlayIncFrameRate
	PlayResetFrameRate
	PlaySyncFrameRateToggle
	PlayRTCModeToggle

	// State menu
	StateSave
	StateLoad
	StateSaveAs
	StateLoadFrom
	StatePrevSlot
	StateNextSlot
	StateSelectSlot0
	StateSelectSlot1
	StateSelectSlot2
	StateSelectSlot3
	StateSelectSlot4
	StateSelectSlot5
	StateSelectSlot6
	StateSelectSlot7
	StateSelectSlot8
	StateSelectSlot9

	// View/settings menu
	ViewToggleFullScreen
	ViewEscape
	ViewCycleWindowSize
	ViewCyclePlatform
	ViewCyclePalette
	ViewCycleROMPalette
	ViewMenuToggle
	HelpAbout

	actionCount
)

// RecentSlots is the number of recent file actions.
const RecentSlots = int(FileOpenRecent9-FileOpenRecent1) + 1

// StateSlots is the number of save state slot actions.
const StateSlots = int(StateSelectSlot9-StateSelectSlot0) + 1

// Category groups actions the way the menus do
type Category int

const (
	CategoryFile Category = iota
	CategoryPlay
	CategoryState
	CategoryView
)

// Info describes an action for menus, help screens and logs
type Info struct {
	Description string
	Category    Category
}

var infos = map[Action]Info{
	FileOpen:                {"Open ROM", CategoryFile},
	FileClose:               {"Close ROM", CategoryFile},
	FileOpenBios:            {"Select boot ROM", CategoryFile},
	FileQuit:                {"Quit", CategoryFile},
	PlayPauseToggle:         {"Pause", CategoryPlay},
	PlayFrameStep:           {"Frame step", CategoryPlay},
	PlayReset:               {"Reset", CategoryPlay},
	PlayDecFrameRate:        {"Decrease frame rate", CategoryPlay},
	PlayIncFrameRate:        {"Increase frame rate", CategoryPlay},
	PlayResetFrameRate:      {"Reset frame rate", CategoryPlay},
	PlaySyncFrameRateToggle: {"Sync frame rate to refresh rate", CategoryPlay},
	PlayRTCModeToggle:       {"Toggle real-time clock mode", CategoryPlay},
	StateSave:               {"Save state", CategoryState},
	StateLoad:               {"Load state", CategoryState},
	StateSaveAs:             {"Save state as", CategoryState},
	StateLoadFrom:           {"Load state from", CategoryState},
	StatePrevSlot:           {"Previous state slot", CategoryState},
	StateNextSlot:           {"Next state slot", CategoryState},
	ViewToggleFullScreen:    {"Full screen", CategoryView},
	ViewEscape:              {"Leave full screen", CategoryView},
	ViewCycleWindowSize:     {"Next window size", CategoryView},
	ViewCyclePlatform:       {"Next platform", CategoryView},
	ViewCyclePalette:        {"Next palette", CategoryView},
	ViewCycleROMPalette:     {"Next ROM palette", CategoryView},
	ViewMenuToggle:          {"Show menus", CategoryView},
	HelpAbout:               {"About", CategoryView},
}

// GetInfo returns the description and category of an action
func GetInfo(act Action) Info {
	if info, ok := infos[act]; ok {
		return info
	}
	if n, ok := act.RecentIndex(); ok {
		return Info{fmt.Sprintf("Open recent file %d", n+1), CategoryFile}
	}
	if n, ok := act.StateSlot(); ok {
		return Info{fmt.Sprintf("Select state slot %d", n), CategoryState}
	}
	return Info{fmt.Sprintf("Action %d", int(act)), CategoryView}
}

// All returns every defined action in declaration order
func All() []Action {
	all := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		all = append(all, a)
	}
	return all
}

// RecentFile returns the action opening recent file i (0 based).
func RecentFile(i int) Action {
	return FileOpenRecent1 + Action(i)
}

// RecentIndex returns the 0-based recent file index of an open-recent action.
func (a Action) RecentIndex() (int, bool) {
	if a < FileOpenRecent1 || a > FileOpenRecent9 {
		return 0, false
	}
	return int(a - FileOpenRecent1), true
}

// SelectSlot returns the action selecting state slot n.
func SelectSlot(n int) Action {
	return StateSelectSlot0 + Action(n)
}

// StateSlot returns the slot number of a select-slot action.
func (a Action) StateSlot() (int, bool) {
	if a < StateSelectSlot0 || a > StateSelectSlot9 {
		return 0, false
	}
	return int(a - StateSelectSlot0), true
}

func (a Action) String() string {
	return GetInfo(a).Description
}
