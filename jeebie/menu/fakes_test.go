package menu

import (
	"errors"

	"github.com/valerio/go-jeebie-shell/jeebie/frametime"
)

var gbFrameTime = frametime.Rational{Num: 70224, Denom: 4194304}

type fakeSource struct {
	roms       map[string]ROMInfo
	loaded     string
	closed     int
	pendingRst []func()
	palettes   []Palette
	platform   Platform
	rtc        RTCMode
	cheats     CheatConfig
	saved      []int
	restored   []int
	savedTo    []string
	loadedFrom []string
	stateErr   error
	biosErr    error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		roms: map[string]ROMInfo{
			"/roms/tetris.gb":   {Path: "/roms/tetris.gb", Title: "TETRIS", DMG: true},
			"/roms/zelda.gbc":   {Path: "/roms/zelda.gbc", Title: "ZELDA", DMG: false},
			"/roms/kirby.gb":    {Path: "/roms/kirby.gb", Title: "KIRBY", DMG: true},
			"/roms/pokemon.gb":  {Path: "/roms/pokemon.gb", Title: "POKEMON RED", DMG: true},
			"/roms/mario.gb":    {Path: "/roms/mario.gb", Title: "MARIOLAND", DMG: true},
			"/roms/wario.gb":    {Path: "/roms/wario.gb", Title: "WARIO", DMG: true},
			"/roms/metroid.gb":  {Path: "/roms/metroid.gb", Title: "METROID2", DMG: true},
			"/roms/dkong.gb":    {Path: "/roms/dkong.gb", Title: "DONKEY KONG", DMG: true},
			"/roms/drmario.gb":  {Path: "/roms/drmario.gb", Title: "DR.MARIO", DMG: true},
			"/roms/yoshi.gb":    {Path: "/roms/yoshi.gb", Title: "YOSHI", DMG: true},
			"/roms/oracle.gbc":  {Path: "/roms/oracle.gbc", Title: "ORACLE", DMG: false},
			"/roms/noheader.gb": {Path: "/roms/noheader.gb", Title: "", DMG: true},
		},
	}
}

var errNoSuchFile = errors.New("no such file")

func (s *fakeSource) Load(path string) (ROMInfo, error) {
	info, ok := s.roms[path]
	if !ok {
		return ROMInfo{}, errNoSuchFile
	}
	s.loaded = path
	return info, nil
}

func (s *fakeSource) Close() {
	s.loaded = ""
	s.closed++
}

func (s *fakeSource) Reset(done func()) { s.pendingRst = append(s.pendingRst, done) }

// finishReset completes the oldest pending reset.
func (s *fakeSource) finishReset() {
	done := s.pendingRst[0]
	s.pendingRst = s.pendingRst[1:]
	done()
}

func (s *fakeSource) ApplyPalette(p Palette) { s.palettes = append(s.palettes, p) }

func (s *fakeSource) SetPlatform(p Platform) error {
	s.platform = p
	return nil
}

func (s *fakeSource) SetRTCMode(m RTCMode) { s.rtc = m }
func (s *fakeSource) SetCheats(c CheatConfig) { s.cheats = c }

func (s *fakeSource) SaveState(slot int) error {
	if s.stateErr != nil {
		return s.stateErr
	}
	s.saved = append(s.saved, slot)
	return nil
}

func (s *fakeSource) LoadState(slot int) error {
	if s.stateErr != nil {
		return s.stateErr
	}
	s.restored = append(s.restored, slot)
	return nil
}

func (s *fakeSource) SaveStateTo(path string) error {
	if s.stateErr != nil {
		return s.stateErr
	}
	s.savedTo = append(s.savedTo, path)
	return nil
}

func (s *fakeSource) LoadStateFrom(path string) error {
	if s.stateErr != nil {
		return s.stateErr
	}
	s.loadedFrom = append(s.loadedFrom, path)
	return nil
}

func (s *fakeSource) LookupBios(c BiosCriteria) (BiosInfo, error) {
	if s.biosErr != nil {
		return BiosInfo{}, s.biosErr
	}
	return BiosInfo{Platform: c.Platform, Path: c.Path, Size: 256, CRC32: 0x59c8598e}, nil
}

type fakeWindow struct {
	title      string
	size       Size
	sizes      []Size
	fullScreen bool
	sync       bool
	audio      SoundConfig
	paused     bool
	pauses     int
	unpauses   int
	steps      int
	frameTimes []frametime.Rational
	messages   []string
	errors     []error
}

func (w *fakeWindow) SetFrameTime(ft frametime.Rational) { w.frameTimes = append(w.frameTimes, ft) }
func (w *fakeWindow) SetWindowTitle(title string) { w.title = title }

func (w *fakeWindow) SetWindowSize(s Size) {
	w.size = s
	w.sizes = append(w.sizes, s)
}

func (w *fakeWindow) WindowSize() Size { return w.size }
func (w *fakeWindow) ToggleFullScreen() { w.fullScreen = !w.fullScreen }
func (w *fakeWindow) IsFullScreen() bool { return w.fullScreen }
func (w *fakeWindow) SetSyncToRefreshRate(on bool) { w.sync = on }
func (w *fakeWindow) SetAudioOut(c SoundConfig) { w.audio = c }
func (w *fakeWindow) ShowMessage(msg string) { w.messages = append(w.messages, msg) }
func (w *fakeWindow) ShowError(err error) { w.errors = append(w.errors, err) }
func (w *fakeWindow) lastFrameTime() frametime.Rational { return w.frameTimes[len(w.frameTimes)-1] }

func (w *fakeWindow) Pause() {
	w.paused = true
	w.pauses++
}

func (w *fakeWindow) Unpause() {
	w.paused = false
	w.unpauses++
}

func (w *fakeWindow) FrameStep() { w.steps++ }

type fakeChooser struct {
	path    string
	err     error
	titles  []string
	filters []FileFilter
}

func (c *fakeChooser) OpenFile(title string, filters ...FileFilter) (string, error) {
	c.titles = append(c.titles, title)
	c.filters = append(c.filters, filters...)
	return c.path, c.err
}

func (c *fakeChooser) SaveFile(title string, filters ...FileFilter) (string, error) {
	return c.OpenFile(title, filters...)
}
