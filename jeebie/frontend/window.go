// Package frontend hosts the emulation in a backend and runs the event loop
// that drives the menus.
package frontend

import (
	"log/slog"

	"github.com/valerio/go-jeebie-shell/jeebie/backend"
	"github.com/valerio/go-jeebie-shell/jeebie/frametime"
	"github.com/valerio/go-jeebie-shell/jeebie/menu"
	"github.com/valerio/go-jeebie-shell/jeebie/timing"
)

// statusFrames is how long a status message stays up, about two seconds.
const statusFrames = 120

// refreshFrameTime is the display refresh period assumed when syncing.
var refreshFrameTime = frametime.Rational{Num: 1, Denom: 60}

// Window implements menu.MainWindow on top of a Backend. It owns the pause
// state and the frame pacing.
type Window struct {
	chrome  backend.Chrome // nil when the backend draws no decorations
	limiter timing.Limiter

	title      string
	size       menu.Size
	fullScreen bool
	sync       bool
	frameTime  frametime.Rational
	audio      menu.SoundConfig
	showMenus  bool

	paused      bool
	stepPending bool

	status     string
	statusLeft int

	// OnError, when set, is called for every reported error in addition to
	// the status line.
	OnError func(err error)
}

// NewWindow wraps b. Chrome features are used when b implements them.
func NewWindow(b backend.Backend, limiter timing.Limiter, showMenus bool) *Window {
	w := &Window{
		limiter:   limiter,
		frameTime: timing.DefaultFrameTime,
		showMenus: showMenus,
	}
	if c, ok := b.(backend.Chrome); ok {
		w.chrome = c
	}
	return w
}

func (w *Window) SetFrameTime(ft frametime.Rational) {
	w.frameTime = ft
	if !w.sync {
		w.limiter.SetFrameTime(ft)
	}
	slog.Debug("Frame time changed", "frame_time", ft, "fps", ft.FPS())
}

// FrameTime returns the emulation frame period.
func (w *Window) FrameTime() frametime.Rational { return w.frameTime }

func (w *Window) SetWindowTitle(title string) {
	w.title = title
	if w.chrome != nil {
		w.chrome.SetTitle(title)
	}
}

// Title returns the window title.
func (w *Window) Title() string { return w.title }

func (w *Window) SetWindowSize(s menu.Size) {
	w.size = s
	slog.Debug("Window size changed", "size", s)
}

func (w *Window) WindowSize() menu.Size { return w.size }

func (w *Window) ToggleFullScreen() {
	w.fullScreen = !w.fullScreen
	if w.chrome != nil {
		w.chrome.SetFullScreen(w.fullScreen)
	}
}

func (w *Window) IsFullScreen() bool { return w.fullScreen }

// SetSyncToRefreshRate paces frames by the display refresh instead of the
// emulation frame time.
func (w *Window) SetSyncToRefreshRate(on bool) {
	w.sync = on
	if on {
		w.limiter.SetFrameTime(refreshFrameTime)
	} else {
		w.limiter.SetFrameTime(w.frameTime)
	}
}

func (w *Window) SetAudioOut(c menu.SoundConfig) {
	w.audio = c
	slog.Info("Audio output changed", "engine", c.Engine, "rate", c.SampleRate, "latency_ms", c.LatencyMs)
}

func (w *Window) Pause() {
	w.paused = true
}

func (w *Window) Unpause() {
	w.paused = false
	w.stepPending = false
	w.limiter.Reset()
}

func (w *Window) Paused() bool { return w.paused }

func (w *Window) FrameStep() {
	w.stepPending = true
}

func (w *Window) ShowMessage(msg string) {
	w.setStatus(msg)
}

func (w *Window) ShowError(err error) {
	slog.Error("Error", "error", err)
	w.setStatus("Error: " + err.Error())
	if w.OnError != nil {
		w.OnError(err)
	}
}

// Status returns the status message currently displayed.
func (w *Window) Status() string { return w.status }

func (w *Window) setStatus(msg string) {
	w.status = msg
	w.statusLeft = statusFrames
	if w.chrome != nil {
		w.chrome.SetStatus(msg)
	}
}

// ToggleMenus shows or hides the menu panel.
func (w *Window) ToggleMenus() {
	w.showMenus = !w.showMenus
	if !w.showMenus && w.chrome != nil {
		w.chrome.SetMenus(nil)
	}
}

// MenusVisible reports whether the menu panel is shown.
func (w *Window) MenusVisible() bool { return w.showMenus }

// shouldRun reports whether the next frame must be emulated, consuming a
// pending frame step.
func (w *Window) shouldRun() bool {
	if !w.paused {
		return true
	}
	if w.stepPending {
		w.stepPending = false
		return true
	}
	return false
}

// tick ages the status message.
func (w *Window) tick() {
	if w.statusLeft == 0 {
		return
	}
	w.statusLeft--
	if w.statusLeft == 0 {
		w.status = ""
		if w.chrome != nil {
			w.chrome.SetStatus("")
		}
	}
}

func (w *Window) publishMenus(menus []backend.Menu) {
	if w.chrome != nil && w.showMenus {
		w.chrome.SetMenus(menus)
	}
}

var _ menu.MainWindow = (*Window)(nil)
