package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli"
	"github.com/valerio/go-jeebie-shell/jeebie/backend"
	"github.com/valerio/go-jeebie-shell/jeebie/backend/headless"
	"github.com/valerio/go-jeebie-shell/jeebie/backend/native"
	"github.com/valerio/go-jeebie-shell/jeebie/backend/terminal"
	"github.com/valerio/go-jeebie-shell/jeebie/frontend"
	"github.com/valerio/go-jeebie-shell/jeebie/input"
	"github.com/valerio/go-jeebie-shell/jeebie/input/action"
	"github.com/valerio/go-jeebie-shell/jeebie/menu"
	"github.com/valerio/go-jeebie-shell/jeebie/settings"
	"github.com/valerio/go-jeebie-shell/jeebie/source"
	"github.com/valerio/go-jeebie-shell/jeebie/storage"
	"github.com/valerio/go-jeebie-shell/jeebie/timing"
)

const (
	appName = "Jeebie"
	version = "2.0.0"
)

func main() {
	app := cli.NewApp()
	app.Name = appName
	app.Description = "A Game Boy emulator front-end"
	app.Usage = "jeebie [options] [ROM file]"
	app.Version = version
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without a user interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
		},
		cli.StringSliceFlag{
			Name:  "press",
			Usage: "Press a key on a frame in headless mode, as FRAME:KEY (e.g. 120:F5)",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save PNG snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.StringFlag{
			Name:  "data-dir",
			Usage: "Directory holding settings, save states and boot ROMs",
		},
		cli.StringFlag{
			Name:  "bios-dir",
			Usage: "Directory searched for boot ROMs (default: <data-dir>/bios)",
		},
		cli.StringFlag{
			Name:  "platform",
			Usage: "Emulated hardware: GB, GBC, GBA, GBP or SGB",
		},
		cli.BoolFlag{
			Name:  "no-menu",
			Usage: "Start with the menu panel hidden",
		},
		cli.BoolFlag{
			Name:  "native-dialogs",
			Usage: "Use the system file dialogs and show errors in message boxes",
		},
		cli.BoolFlag{
			Name:  "no-save",
			Usage: "Do not write settings on exit",
		},
	}
	app.Action = runFrontend

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func runFrontend(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" && c.NArg() > 0 {
		romPath = c.Args().Get(0)
	}

	dirs, err := dataDirs(c.String("data-dir"))
	if err != nil {
		return err
	}
	if err := dirs.Ensure(); err != nil {
		return err
	}

	cfg, err := settings.Load(dirs.SettingsPath())
	if err != nil {
		return err
	}
	if name := c.String("platform"); name != "" {
		p, ok := settings.ParsePlatform(name)
		if !ok {
			return fmt.Errorf("unknown platform %q", name)
		}
		cfg.Platform = p.String()
	}

	biosDir := c.String("bios-dir")
	if biosDir == "" {
		biosDir = dirs.BiosDir()
	}

	fc := frontend.Config{
		AppName:       appName,
		Version:       version,
		BackendConfig: backend.BackendConfig{Scale: 1, ShowMenu: !c.Bool("no-menu")},
		Source:        source.New(source.Config{StatesDir: dirs.StatesDir(), BiosDir: biosDir}),
		Settings:      cfg,
		MaxWindowSize: menu.Size{Width: 1920, Height: 1080},
		ROM:           romPath,
	}
	if !c.Bool("no-save") {
		fc.SettingsPath = dirs.SettingsPath()
	}

	if c.Bool("headless") {
		if err := headlessConfig(c, &fc, romPath); err != nil {
			return err
		}
	} else {
		fc.Backend = terminal.New()
		fc.Limiter = timing.NewAdaptiveLimiter()
		if c.Bool("native-dialogs") {
			fc.Chooser = native.NewChooser(filepath.Dir(romPath))
		}
	}

	app, err := frontend.New(fc)
	if err != nil {
		return err
	}
	if c.Bool("native-dialogs") && !c.Bool("headless") {
		app.Window().OnError = func(err error) { native.ShowError(appName, err) }
	}
	return app.Run()
}

func dataDirs(override string) (storage.Dirs, error) {
	if override != "" {
		return storage.Dirs{Base: override}, nil
	}
	return storage.DefaultDirs(appName)
}

func headlessConfig(c *cli.Context, fc *frontend.Config, romPath string) error {
	frames := c.Int("frames")
	if frames <= 0 {
		return errors.New("headless mode requires --frames option with a positive value")
	}

	snapshots, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), romPath)
	if err != nil {
		return err
	}

	// Set up debug logging for headless mode
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	b := headless.New(frames, snapshots)
	for _, p := range c.StringSlice("press") {
		frame, act, err := parsePress(p)
		if err != nil {
			return err
		}
		b.At(frame, act)
	}

	fc.Backend = b
	fc.Limiter = timing.NewNoOpLimiter()
	// scripted presses may repeat faster than a human could
	fc.InputOptions = []input.ManagerOption{input.WithDebounce(0)}
	return nil
}

// parsePress parses FRAME:KEY, KEY being a name from the default key map.
func parsePress(s string) (int, action.Action, error) {
	frameStr, key, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid --press %q: want FRAME:KEY", s)
	}
	frame, err := strconv.Atoi(frameStr)
	if err != nil || frame <= 0 {
		return 0, 0, fmt.Errorf("invalid --press %q: bad frame number", s)
	}
	act, ok := input.GetDefaultMapping(key)
	if !ok {
		return 0, 0, fmt.Errorf("invalid --press %q: unknown key %q", s, key)
	}
	return frame, act, nil
}
