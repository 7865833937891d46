package source

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/valerio/go-jeebie-shell/jeebie/menu"
	"github.com/valerio/go-jeebie-shell/jeebie/storage"
)

const (
	stateVersion   = 1
	StateExtension = ".gqs"
)

var (
	ErrNoState       = fmt.Errorf("no saved state: %w", os.ErrNotExist)
	ErrStateMismatch = errors.New("state belongs to a different ROM")
	ErrStateVersion  = errors.New("unsupported state version")
)

// stateFile is the on-disk save state
type stateFile struct {
	Version        int           `json:"version"`
	Title          string        `json:"title"`
	HeaderChecksum uint8         `json:"header_checksum"`
	GlobalChecksum uint16        `json:"global_checksum"`
	Frame          uint64        `json:"frame"`
	Platform       menu.Platform `json:"platform"`
	RTC            menu.RTCMode  `json:"rtc"`
	SavedAt        time.Time     `json:"saved_at"`
}

// StatePath returns the file backing slot of the loaded ROM.
func (s *PatternSource) StatePath(slot int) (string, error) {
	if s.rom == nil {
		return "", ErrNoROM
	}
	return filepath.Join(s.cfg.StatesDir, fmt.Sprintf("%s_%d%s", s.rom.stem(), slot, StateExtension)), nil
}

func (s *PatternSource) SaveState(slot int) error {
	path, err := s.StatePath(slot)
	if err != nil {
		return err
	}
	return s.SaveStateTo(path)
}

func (s *PatternSource) LoadState(slot int) error {
	path, err := s.StatePath(slot)
	if err != nil {
		return err
	}
	return s.LoadStateFrom(path)
}

// SaveStateTo writes the current state to path.
func (s *PatternSource) SaveStateTo(path string) error {
	if s.rom == nil {
		return ErrNoROM
	}
	st := stateFile{
		Version:        stateVersion,
		Title:          s.rom.header.Title,
		HeaderChecksum: s.rom.header.HeaderChecksum,
		GlobalChecksum: s.rom.header.GlobalChecksum,
		Frame:          s.frameCount,
		Platform:       s.platform,
		RTC:            s.rtc,
		SavedAt:        time.Now().UTC(),
	}
	if err := storage.AtomicWriteJSON(path, st); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	slog.Debug("State saved", "path", path, "frame", st.Frame)
	return nil
}

// LoadStateFrom restores the state saved at path. The state must have been
// saved from the same ROM.
func (s *PatternSource) LoadStateFrom(path string) error {
	if s.rom == nil {
		return ErrNoROM
	}

	var st stateFile
	if err := storage.ReadJSON(path, &st); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNoState, filepath.Base(path))
		}
		return fmt.Errorf("failed to load state: %w", err)
	}
	if st.Version != stateVersion {
		return fmt.Errorf("%w: %d", ErrStateVersion, st.Version)
	}
	if st.HeaderChecksum != s.rom.header.HeaderChecksum || st.GlobalChecksum != s.rom.header.GlobalChecksum {
		return fmt.Errorf("%w: saved from %q", ErrStateMismatch, st.Title)
	}

	s.frameCount = st.Frame
	s.render()
	slog.Debug("State loaded", "path", path, "frame", st.Frame)
	return nil
}
