package headless

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/valerio/go-jeebie-shell/jeebie/backend"
	"github.com/valerio/go-jeebie-shell/jeebie/input/action"
	"github.com/valerio/go-jeebie-shell/jeebie/input/event"
	"github.com/valerio/go-jeebie-shell/jeebie/video"
)

// Backend implements the Backend interface for automated testing and batch processing
type Backend struct {
	config         backend.BackendConfig
	frameCount     int
	maxFrames      int
	snapshotConfig SnapshotConfig
	script         map[int][]action.Action

	title  string
	status string
	menus  []backend.Menu
}

// SnapshotConfig holds configuration for frame snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
	ROMName   string // ROM name for snapshot filenames
}

func New(maxFrames int, snapshotConfig SnapshotConfig) *Backend {
	return &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
		script:         make(map[int][]action.Action),
	}
}

// At schedules actions to be pressed on the given frame (1 based).
func (h *Backend) At(frame int, acts ...action.Action) *Backend {
	h.script[frame] = append(h.script[frame], acts...)
	return h
}

func (h *Backend) Init(config backend.BackendConfig) error {
	h.config = config
	h.title = config.Title

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)
	return nil
}

// Update processes a frame, replays scripted actions and handles snapshots
func (h *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	var events []backend.InputEvent

	h.frameCount++
	for _, act := range h.script[h.frameCount] {
		events = append(events, backend.InputEvent{Action: act, Type: event.Press})
	}

	// Save snapshot if needed
	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval == 0 {
		h.saveSnapshot(frame)
	}

	// Log progress periodically
	if h.frameCount%60 == 0 {
		slog.Info("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	// Check if we've reached the target frame count
	if h.maxFrames > 0 && h.frameCount >= h.maxFrames {
		// Save final snapshot if enabled and we haven't just saved one
		if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval != 0 {
			h.saveSnapshot(frame)
		}

		if h.snapshotConfig.Enabled {
			slog.Info("Headless execution completed", "frames", h.maxFrames, "png_snapshots_saved_to", h.snapshotConfig.Directory)
		} else {
			slog.Info("Headless execution completed", "frames", h.maxFrames)
		}

		// Signal completion via quit event
		events = append(events, backend.InputEvent{Action: action.FileQuit, Type: event.Press})
	}

	return events, nil
}

func (h *Backend) Cleanup() error {
	return nil
}

// Frames returns the number of frames processed.
func (h *Backend) Frames() int { return h.frameCount }

func (h *Backend) SetTitle(title string) { h.title = title }
func (h *Backend) SetFullScreen(bool)    {}

func (h *Backend) SetStatus(msg string) {
	h.status = msg
	slog.Info("Status", "message", msg)
}

func (h *Backend) SetMenus(menus []backend.Menu) { h.menus = menus }

// Title returns the last window title set.
func (h *Backend) Title() string { return h.title }

// Status returns the last status message.
func (h *Backend) Status() string { return h.status }

// Menus returns the last menus published.
func (h *Backend) Menus() []backend.Menu { return h.menus }

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters
func CreateSnapshotConfig(interval int, directory, romPath string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
	}

	if !config.Enabled {
		return config, nil
	}

	// Set up snapshot directory
	if directory == "" {
		tempDir, err := os.MkdirTemp("", "jeebie-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = directory
	}

	// Extract ROM name for snapshot filenames
	config.ROMName = filepath.Base(romPath)
	config.ROMName = strings.TrimSuffix(config.ROMName, filepath.Ext(config.ROMName))
	if romPath == "" {
		config.ROMName = "nocart"
	}

	return config, nil
}

// saveSnapshot saves a PNG snapshot for the current frame
func (h *Backend) saveSnapshot(frame *video.FrameBuffer) {
	name := fmt.Sprintf("%s_frame_%d.png", h.snapshotConfig.ROMName, h.frameCount)
	if err := SavePNG(frame, filepath.Join(h.snapshotConfig.Directory, name)); err != nil {
		slog.Error("Failed to save PNG snapshot", "frame", h.frameCount, "error", err)
	}
}

// SavePNG writes frame to path as an opaque RGBA image.
func SavePNG(frame *video.FrameBuffer, path string) error {
	w, hgt := int(frame.Width()), int(frame.Height())
	img := image.NewRGBA(image.Rect(0, 0, w, hgt))
	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			r, g, b := video.RGB(frame.GetPixel(uint(x), uint(y)))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xFF})
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Chrome  = (*Backend)(nil)
)
