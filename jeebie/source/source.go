// Package source provides PatternSource, the emulation source driven by the
// menus. It loads and validates real ROM images and renders animated test
// patterns in their place.
package source

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/valerio/go-jeebie-shell/jeebie/cartridge"
	"github.com/valerio/go-jeebie-shell/jeebie/menu"
	"github.com/valerio/go-jeebie-shell/jeebie/romloader"
	"github.com/valerio/go-jeebie-shell/jeebie/video"
)

var (
	ErrNoROM           = errors.New("no ROM loaded")
	ErrCGBOnly         = errors.New("ROM requires a Game Boy Color")
	ErrUnknownPlatform = errors.New("unknown platform")
)

// Config holds the directories a PatternSource works with
type Config struct {
	StatesDir string
	BiosDir   string
}

type loadedROM struct {
	path    string
	header  cartridge.Header
	dmg     bool
	pattern int
}

// stem is the file name used for state files of this ROM.
func (r *loadedROM) stem() string {
	base := filepath.Base(r.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PatternSource implements menu.Source. All methods must be called from the
// front-end event loop.
type PatternSource struct {
	cfg      Config
	frame    *video.FrameBuffer
	rom      *loadedROM
	palette  menu.Palette
	platform menu.Platform
	rtc      menu.RTCMode
	cheats   []Cheat

	frameCount    uint64
	pendingResets []func()
}

func New(cfg Config) *PatternSource {
	s := &PatternSource{
		cfg:     cfg,
		frame:   video.NewFrameBuffer(),
		palette: menu.DefaultPalette,
	}
	s.render()
	return s
}

// Load reads, unpacks and validates a ROM image. On error the current ROM
// stays loaded.
func (s *PatternSource) Load(path string) (menu.ROMInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return menu.ROMInfo{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	img, err := romloader.Load(abs)
	if err != nil {
		return menu.ROMInfo{}, err
	}
	header, err := cartridge.Parse(img.Data)
	if err != nil {
		return menu.ROMInfo{}, fmt.Errorf("invalid ROM %s: %w", img.Name, err)
	}
	if !header.LogoValid {
		slog.Warn("ROM boot logo mismatch", "rom", img.Name)
	}

	dmg := header.DMG()
	if monochromeHardware(s.platform) {
		if header.CGBOnly() {
			return menu.ROMInfo{}, fmt.Errorf("%w: %s on %s", ErrCGBOnly, img.Name, s.platform)
		}
		dmg = true
	}

	s.rom = &loadedROM{
		path:    abs,
		header:  header,
		dmg:     dmg,
		pattern: int(header.HeaderChecksum) % patternCount,
	}
	s.frameCount = 0
	s.render()

	title := header.Title
	if title == "" {
		title = s.rom.stem()
	}
	slog.Info("Cartridge loaded",
		"title", title,
		"format", img.Format,
		"cart_type", fmt.Sprintf("%#02x", header.CartType),
		"rom_size", header.ROMSize,
		"dmg", dmg)

	return menu.ROMInfo{Path: abs, Title: title, DMG: dmg}, nil
}

// Close unloads the current ROM.
func (s *PatternSource) Close() {
	s.rom = nil
	s.frameCount = 0
	s.render()
}

// Loaded reports whether a ROM is loaded.
func (s *PatternSource) Loaded() bool { return s.rom != nil }

// Reset restarts the loaded ROM. The reset takes effect, and done is called,
// at the start of the next frame.
func (s *PatternSource) Reset(done func()) {
	s.pendingResets = append(s.pendingResets, done)
}

// Poll completes pending resets without emulating. The front-end calls it
// on frames where the emulation is paused.
func (s *PatternSource) Poll() {
	if len(s.pendingResets) == 0 {
		return
	}
	pending := s.pendingResets
	s.pendingResets = nil
	s.frameCount = 0
	s.render()
	slog.Debug("Reset completed", "callbacks", len(pending))
	for _, done := range pending {
		done()
	}
}

// RunFrame emulates one frame and returns the rendered picture.
func (s *PatternSource) RunFrame() *video.FrameBuffer {
	s.Poll()
	s.frameCount++
	s.render()
	return s.frame
}

// Frame returns the last rendered picture.
func (s *PatternSource) Frame() *video.FrameBuffer { return s.frame }

// FrameCount returns the number of frames since load or reset.
func (s *PatternSource) FrameCount() uint64 { return s.frameCount }

// ApplyPalette sets the colours used for monochrome ROMs.
func (s *PatternSource) ApplyPalette(p menu.Palette) {
	s.palette = p
	s.render()
}

// SetPlatform selects the emulated hardware for the next ROM.
func (s *PatternSource) SetPlatform(p menu.Platform) error {
	if p < menu.PlatformDMG || p > menu.PlatformSGB {
		return fmt.Errorf("%w: %d", ErrUnknownPlatform, int(p))
	}
	s.platform = p
	return nil
}

// Platform returns the selected hardware.
func (s *PatternSource) Platform() menu.Platform { return s.platform }

func (s *PatternSource) SetRTCMode(m menu.RTCMode) {
	s.rtc = m
}

// monochromeHardware reports whether p lacks colour support.
func monochromeHardware(p menu.Platform) bool {
	return p == menu.PlatformDMG || p == menu.PlatformGBP || p == menu.PlatformSGB
}

var _ menu.Source = (*PatternSource)(nil)
