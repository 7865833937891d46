package frontend

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-jeebie-shell/jeebie/backend"
	"github.com/valerio/go-jeebie-shell/jeebie/input"
	"github.com/valerio/go-jeebie-shell/jeebie/input/action"
	"github.com/valerio/go-jeebie-shell/jeebie/input/event"
	"github.com/valerio/go-jeebie-shell/jeebie/menu"
	"github.com/valerio/go-jeebie-shell/jeebie/settings"
	"github.com/valerio/go-jeebie-shell/jeebie/source"
	"github.com/valerio/go-jeebie-shell/jeebie/timing"
	"github.com/valerio/go-jeebie-shell/jeebie/video"
)

// Emulation is the part of the source the event loop drives
type Emulation interface {
	menu.Source
	// Poll finishes pending work without emulating a frame.
	Poll()
	RunFrame() *video.FrameBuffer
	Frame() *video.FrameBuffer
}

var _ Emulation = (*source.PatternSource)(nil)

// Config holds everything needed to build an App
type Config struct {
	AppName string
	Version string

	Backend       backend.Backend
	BackendConfig backend.BackendConfig
	Limiter       timing.Limiter
	Source        Emulation
	Chooser       menu.FileChooser // nil disables file dialogs

	Settings     *settings.Settings
	SettingsPath string // empty disables saving

	MaxWindowSize menu.Size
	InputOptions  []input.ManagerOption
	// ROM, when set, is opened at start-up.
	ROM string
}

// App ties the menus, the window and the backend together and runs the
// front-end event loop
type App struct {
	cfg     Config
	window  *Window
	handler *menu.Handler
	input   *input.Manager
	quit    bool
}

func New(cfg Config) (*App, error) {
	if cfg.Backend == nil || cfg.Source == nil {
		return nil, errors.New("backend and source are required")
	}
	if cfg.Limiter == nil {
		cfg.Limiter = timing.NewNoOpLimiter()
	}
	if cfg.Settings == nil {
		cfg.Settings = settings.Default()
	}

	a := &App{
		cfg:    cfg,
		window: NewWindow(cfg.Backend, cfg.Limiter, cfg.BackendConfig.ShowMenu),
		input:  input.NewManager(cfg.InputOptions...),
	}

	handler, err := menu.NewHandler(a.window, cfg.Source, cfg.Chooser, menu.Config{
		AppName:       cfg.AppName,
		Version:       cfg.Version,
		MaxWindowSize: cfg.MaxWindowSize,
		Video:         cfg.Settings.VideoConfig(),
		Misc:          cfg.Settings.MiscConfig(),
	}, menu.Callbacks{
		OnROMLoaded: a.romLoaded,
		OnQuit:      func() { a.quit = true },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create menu handler: %w", err)
	}
	a.handler = handler
	handler.Restore(cfg.Settings.Snapshot())
	handler.Bind(a.input)
	a.input.On(action.ViewMenuToggle, event.Press, a.window.ToggleMenus)

	return a, nil
}

// Handler returns the menu handler.
func (a *App) Handler() *menu.Handler { return a.handler }

// Window returns the main window.
func (a *App) Window() *Window { return a.window }

func (a *App) romLoaded(loaded bool) {
	if !loaded {
		a.cfg.Source.SetCheats(menu.CheatConfig{})
		return
	}
	a.handler.CheatDialogChange(a.cfg.Settings.CheatsFor(a.handler.Session().ROMTitle))
}

// Run initializes the backend and loops until a quit is requested. The
// settings are saved on the way out.
func (a *App) Run() error {
	bc := a.cfg.BackendConfig
	bc.Title = a.window.Title()
	bc.Callbacks.OnQuit = a.handler.Quit
	if err := a.cfg.Backend.Init(bc); err != nil {
		return fmt.Errorf("failed to initialize backend: %w", err)
	}
	defer func() {
		if err := a.cfg.Backend.Cleanup(); err != nil {
			slog.Error("Backend cleanup failed", "error", err)
		}
	}()

	if a.cfg.ROM != "" {
		// a failed load has already been reported, keep running without it
		a.handler.OpenFile(a.cfg.ROM)
	}

	a.cfg.Limiter.Reset()
	for !a.quit {
		if err := a.Step(); err != nil {
			return err
		}
		a.cfg.Limiter.WaitForNextFrame()
	}

	slog.Info("Shutting down")
	return a.saveSettings()
}

// Step runs one iteration of the event loop: emulate, present, then
// dispatch input.
func (a *App) Step() error {
	frame := a.cfg.Source.Frame()
	if a.window.shouldRun() {
		frame = a.cfg.Source.RunFrame()
	} else {
		a.cfg.Source.Poll()
	}

	a.window.tick()
	a.window.publishMenus(BuildMenus(a.handler, a.window.Paused()))

	events, err := a.cfg.Backend.Update(frame)
	if err != nil {
		return fmt.Errorf("backend update failed: %w", err)
	}
	for _, ev := range events {
		a.input.Trigger(ev.Action, ev.Type)
	}
	return nil
}

// Quitting reports whether a quit has been requested.
func (a *App) Quitting() bool { return a.quit }

func (a *App) saveSettings() error {
	if a.cfg.SettingsPath == "" {
		return nil
	}
	a.cfg.Settings.Update(a.handler.Snapshot())
	if err := settings.Save(a.cfg.SettingsPath, a.cfg.Settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	slog.Debug("Settings saved", "path", a.cfg.SettingsPath)
	return nil
}
