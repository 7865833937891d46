package backend

import (
	"github.com/valerio/go-jeebie-shell/jeebie/input/action"
	"github.com/valerio/go-jeebie-shell/jeebie/input/event"
	"github.com/valerio/go-jeebie-shell/jeebie/video"
)

// Backend represents a complete front-end platform (rendering + input).
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, image files, ...)
// - Translating platform-specific input events to Actions
// - Handling backend-specific features (snapshots, log panels)
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Update.
	Init(config BackendConfig) error

	// Update renders the provided frame and polls platform events, returning
	// the actions they map to. Backends should:
	// 1. Poll for platform-specific events (keyboard, window events, etc.)
	// 2. Translate events to InputEvents
	// 3. Render the provided frame
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// InputEvent is a platform event translated to an action
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title      string
	Scale      int
	Fullscreen bool
	ShowMenu   bool             // Backends may ignore unsupported features
	Callbacks  BackendCallbacks // Callbacks for backend communication
}

// BackendCallbacks allows backends to communicate with the front-end
type BackendCallbacks struct {
	// OnQuit is called when the backend requests shutdown (e.g., window close)
	OnQuit func()
}

// Chrome is implemented by backends that draw window decorations: a title,
// a status line and the menus.
type Chrome interface {
	SetTitle(title string)
	SetFullScreen(on bool)
	SetStatus(msg string)
	SetMenus(menus []Menu)
}

// Menu is a titled list of items as displayed by a Chrome backend
type Menu struct {
	Title string
	Items []MenuItem
}

// MenuItem is one menu entry. Key is the shortcut shown next to it.
type MenuItem struct {
	Label   string
	Key     string
	Checked bool
	Enabled bool
}
