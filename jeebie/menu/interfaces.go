package menu

import (
	"errors"

	"github.com/valerio/go-jeebie-shell/jeebie/frametime"
)

// ErrCancelled is returned by a FileChooser when the user dismisses it.
var ErrCancelled = errors.New("cancelled")

// Source is the emulation source driven by the menus. Every method is called
// from the front-end event thread.
type Source interface {
	// Load validates and loads a ROM. On error the previous ROM, if any,
	// stays loaded.
	Load(path string) (ROMInfo, error)
	Close()

	// Reset starts a reset. done must be called exactly once, from the
	// event thread, when the reset has completed.
	Reset(done func())

	ApplyPalette(p Palette)
	SetPlatform(p Platform) error
	SetRTCMode(m RTCMode)
	SetCheats(c CheatConfig)

	SaveState(slot int) error
	LoadState(slot int) error
	SaveStateTo(path string) error
	LoadStateFrom(path string) error

	LookupBios(c BiosCriteria) (BiosInfo, error)
}

// FrameTimeObserver receives the frame time the emulation should run at.
type FrameTimeObserver interface {
	SetFrameTime(ft frametime.Rational)
}

// MainWindow is the window shell hosting the emulation.
type MainWindow interface {
	FrameTimeObserver

	SetWindowTitle(title string)
	// SetWindowSize fixes the window to s, or makes it resizable for VariableSize.
	SetWindowSize(s Size)
	WindowSize() Size
	ToggleFullScreen()
	IsFullScreen() bool
	SetSyncToRefreshRate(on bool)
	SetAudioOut(c SoundConfig)

	Pause()
	Unpause()
	// FrameStep advances a paused emulation by exactly one frame.
	FrameStep()

	// ShowMessage displays a transient status message.
	ShowMessage(msg string)
	// ShowError reports a failure to the user.
	ShowError(err error)
}

// FileChooser asks the user for a file path.
type FileChooser interface {
	OpenFile(title string, filters ...FileFilter) (string, error)
	SaveFile(title string, filters ...FileFilter) (string, error)
}
