package menu

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-jeebie-shell/jeebie/frametime"
	"github.com/valerio/go-jeebie-shell/jeebie/input"
	"github.com/valerio/go-jeebie-shell/jeebie/input/action"
	"github.com/valerio/go-jeebie-shell/jeebie/input/event"
)

type handlerFixture struct {
	h       *Handler
	source  *fakeSource
	window  *fakeWindow
	chooser *fakeChooser

	romLoaded []bool
	dmgLoaded []bool
	quits     int
}

func newHandlerFixture(t *testing.T, mutate ...func(*Config)) *handlerFixture {
	t.Helper()
	f := &handlerFixture{
		source:  newFakeSource(),
		window:  &fakeWindow{},
		chooser: &fakeChooser{},
	}
	cfg := Config{
		AppName:       "Jeebie",
		Version:       "test",
		MaxWindowSize: Size{1000, 1000},
		Video:         VideoConfig{SourceSize: Size{160, 144}},
		Misc:          MiscConfig{BaseFrameTime: gbFrameTime},
	}
	for _, m := range mutate {
		m(&cfg)
	}
	h, err := NewHandler(f.window, f.source, f.chooser, cfg, Callbacks{
		OnROMLoaded:    func(loaded bool) { f.romLoaded = append(f.romLoaded, loaded) },
		OnDMGROMLoaded: func(dmg bool) { f.dmgLoaded = append(f.dmgLoaded, dmg) },
		OnQuit:         func() { f.quits++ },
	})
	require.NoError(t, err)
	f.h = h
	return f
}

func (f *handlerFixture) open(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, f.h.OpenFile(path))
}

func TestHandler_New(t *testing.T) {
	f := newHandlerFixture(t)

	assert.Equal(t, "Jeebie", f.window.title)
	assert.Equal(t, []frametime.Rational{gbFrameTime}, f.window.frameTimes)
	assert.Equal(t, 0, f.h.Slots().CheckedID())
	assert.Equal(t, int(PlatformDMG), f.h.Platforms().CheckedID())
	assert.False(t, f.h.Session().ROMLoaded())
}

func TestHandler_NewRejectsZeroDenominator(t *testing.T) {
	_, err := NewHandler(&fakeWindow{}, newFakeSource(), nil, Config{
		Misc: MiscConfig{BaseFrameTime: frametime.Rational{Num: 1}},
	}, Callbacks{})
	assert.ErrorIs(t, err, frametime.ErrZeroDenominator)
}

func TestHandler_OpenFile(t *testing.T) {
	f := newHandlerFixture(t)
	f.open(t, "/roms/tetris.gb")

	s := f.h.Session()
	assert.Equal(t, "/roms/tetris.gb", s.CurrentFile)
	assert.Equal(t, "TETRIS", s.ROMTitle)
	assert.True(t, s.DMG)
	assert.Equal(t, "TETRIS - Jeebie", f.window.title)
	assert.Equal(t, []string{"/roms/tetris.gb"}, f.h.Recent().Slice())
	assert.Equal(t, []bool{true}, f.romLoaded)
	assert.Equal(t, []bool{true}, f.dmgLoaded)
	assert.Equal(t, []Palette{DefaultPalette}, f.source.palettes)
}

func TestHandler_OpenColourROMSkipsPalette(t *testing.T) {
	f := newHandlerFixture(t)
	f.open(t, "/roms/zelda.gbc")

	assert.Empty(t, f.source.palettes)
	assert.Equal(t, []bool{false}, f.dmgLoaded)
}

func TestHandler_OpenMissingFile(t *testing.T) {
	f := newHandlerFixture(t)
	f.open(t, "/roms/tetris.gb")

	err := f.h.OpenFile("/roms/missing.gb")
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoSuchFile)

	assert.Equal(t, "/roms/tetris.gb", f.h.Session().CurrentFile)
	assert.Equal(t, []string{"/roms/tetris.gb"}, f.h.Recent().Slice())
	require.Len(t, f.window.errors, 1)
	assert.ErrorIs(t, f.window.errors[0], errNoSuchFile)
	assert.Equal(t, []bool{true}, f.romLoaded)
}

func TestHandler_OpenViaChooser(t *testing.T) {
	f := newHandlerFixture(t)

	f.chooser.path = "/roms/kirby.gb"
	require.NoError(t, f.h.Open())
	assert.Equal(t, "/roms/kirby.gb", f.h.Session().CurrentFile)
	assert.Equal(t, []FileFilter{romFilter}, f.chooser.filters)

	f.chooser.err = ErrCancelled
	f.chooser.path = ""
	require.NoError(t, f.h.Open(), "cancel is silent")
	assert.Empty(t, f.window.errors)
	assert.Equal(t, "/roms/kirby.gb", f.h.Session().CurrentFile)
}

func TestHandler_OpenWithoutChooser(t *testing.T) {
	w := &fakeWindow{}
	h, err := NewHandler(w, newFakeSource(), nil, Config{Misc: MiscConfig{BaseFrameTime: gbFrameTime}}, Callbacks{})
	require.NoError(t, err)

	assert.Error(t, h.Open())
	assert.Len(t, w.errors, 1)
}

func TestHandler_OpenRecent(t *testing.T) {
	f := newHandlerFixture(t)
	f.open(t, "/roms/tetris.gb")
	f.open(t, "/roms/kirby.gb")

	require.NoError(t, f.h.OpenRecent(1))
	assert.Equal(t, "/roms/tetris.gb", f.h.Session().CurrentFile)
	assert.Equal(t, []string{"/roms/tetris.gb", "/roms/kirby.gb"}, f.h.Recent().Slice())

	require.NoError(t, f.h.OpenRecent(5), "empty slot is ignored")
	assert.Equal(t, "/roms/tetris.gb", f.h.Session().CurrentFile)
}

func TestHandler_Close(t *testing.T) {
	f := newHandlerFixture(t)
	require.NoError(t, f.h.Close(), "closing with nothing open is a no-op")
	assert.Equal(t, 0, f.source.closed)

	f.open(t, "/roms/tetris.gb")
	require.NoError(t, f.h.Close())

	assert.False(t, f.h.Session().ROMLoaded())
	assert.Equal(t, "Jeebie", f.window.title)
	assert.Equal(t, 1, f.source.closed)
	assert.Equal(t, []bool{true, false}, f.romLoaded)
	assert.Equal(t, []string{"/roms/tetris.gb"}, f.h.Recent().Slice(), "recent list survives close")
}

func TestHandler_ResetGating(t *testing.T) {
	f := newHandlerFixture(t)
	assert.ErrorIs(t, f.h.Reset(), ErrNoROM)

	f.open(t, "/roms/tetris.gb")
	f.h.SelectStateSlot(3)

	require.NoError(t, f.h.Reset())
	assert.True(t, f.h.IsResetting())

	assert.ErrorIs(t, f.h.LoadState(), ErrResetInProgress)
	assert.ErrorIs(t, f.h.SaveState(), ErrResetInProgress)
	assert.ErrorIs(t, f.h.SaveStateAs(), ErrResetInProgress)
	assert.ErrorIs(t, f.h.LoadStateFrom(), ErrResetInProgress)
	assert.ErrorIs(t, f.h.OpenFile("/roms/kirby.gb"), ErrResetInProgress)
	assert.ErrorIs(t, f.h.Close(), ErrResetInProgress)
	assert.ErrorIs(t, f.h.Reset(), ErrResetInProgress)
	assert.Empty(t, f.source.restored)
	assert.Empty(t, f.source.saved)
	assert.Equal(t, 3, f.h.Session().Slot)
	assert.Equal(t, "/roms/tetris.gb", f.h.Session().CurrentFile)
	assert.Len(t, f.source.pendingRst, 1)

	f.source.finishReset()
	assert.False(t, f.h.IsResetting())

	require.NoError(t, f.h.LoadState())
	assert.Equal(t, []int{3}, f.source.restored)
}

func TestHandler_SlotSelectionDuringReset(t *testing.T) {
	f := newHandlerFixture(t)
	f.open(t, "/roms/tetris.gb")
	require.NoError(t, f.h.Reset())

	f.h.NextStateSlot()
	assert.Equal(t, 1, f.h.Session().Slot)
}

func TestHandler_StateSlots(t *testing.T) {
	f := newHandlerFixture(t)

	f.h.PrevStateSlot()
	assert.Equal(t, DefaultStateSlots-1, f.h.Session().Slot, "wraps below zero")
	f.h.NextStateSlot()
	assert.Equal(t, 0, f.h.Session().Slot, "wraps past the last slot")

	f.h.SelectStateSlot(7)
	assert.Equal(t, 7, f.h.Session().Slot)
	assert.Equal(t, 7, f.h.Slots().CheckedID())

	f.h.SelectStateSlot(42)
	assert.Equal(t, 7, f.h.Session().Slot, "out of range slots are ignored")
	assert.Equal(t, 7, f.h.Slots().CheckedID())
}

func TestHandler_StateActions(t *testing.T) {
	f := newHandlerFixture(t)
	assert.ErrorIs(t, f.h.SaveState(), ErrNoROM)

	f.open(t, "/roms/tetris.gb")
	f.h.SelectStateSlot(2)

	require.NoError(t, f.h.SaveState())
	require.NoError(t, f.h.LoadState())
	assert.Equal(t, []int{2}, f.source.saved)
	assert.Equal(t, []int{2}, f.source.restored)

	f.chooser.path = "/states/tetris.gqs"
	require.NoError(t, f.h.SaveStateAs())
	require.NoError(t, f.h.LoadStateFrom())
	assert.Equal(t, []string{"/states/tetris.gqs"}, f.source.savedTo)
	assert.Equal(t, []string{"/states/tetris.gqs"}, f.source.loadedFrom)

	errDisk := errors.New("disk full")
	f.source.stateErr = errDisk
	err := f.h.SaveState()
	assert.ErrorIs(t, err, errDisk)
	require.NotEmpty(t, f.window.errors)
	assert.ErrorIs(t, f.window.errors[len(f.window.errors)-1], errDisk)
}

func TestHandler_PauseAndFrameStep(t *testing.T) {
	f := newHandlerFixture(t)

	assert.ErrorIs(t, f.h.FrameStep(), ErrNoROM)
	assert.Equal(t, 0, f.window.steps)
	assert.False(t, f.window.paused)

	f.open(t, "/roms/tetris.gb")
	require.NoError(t, f.h.FrameStep())
	assert.True(t, f.h.Session().Paused)
	assert.True(t, f.window.paused)
	assert.Equal(t, 1, f.window.steps)

	require.NoError(t, f.h.FrameStep())
	assert.Equal(t, 2, f.window.steps)
	assert.Equal(t, 1, f.window.pauses, "already paused")

	f.h.TogglePause()
	assert.False(t, f.h.Session().Paused)
	assert.False(t, f.window.paused)

	f.h.SetPaused(false)
	assert.Equal(t, 1, f.window.unpauses)
}

func TestHandler_FrameRate(t *testing.T) {
	f := newHandlerFixture(t)

	f.h.IncFrameRate()
	assert.True(t, f.window.lastFrameTime().Less(gbFrameTime))

	f.h.SetSyncFrameRate(true)
	assert.True(t, f.window.sync)
	assert.Equal(t, gbFrameTime, f.window.lastFrameTime())

	n := len(f.window.frameTimes)
	f.h.DecFrameRate()
	assert.Len(t, f.window.frameTimes, n)

	f.h.ReconsiderSyncFrameRate(false)
	assert.False(t, f.window.sync)
	assert.True(t, f.window.lastFrameTime().Less(gbFrameTime), "stepping comes back when sync is unavailable")

	f.h.ResetFrameRate()
	assert.Equal(t, gbFrameTime, f.window.lastFrameTime())
}

func TestHandler_MiscDialogChange(t *testing.T) {
	f := newHandlerFixture(t)

	ntsc := frametime.Rational{Num: 1001, Denom: 60000}
	require.NoError(t, f.h.MiscDialogChange(MiscConfig{BaseFrameTime: ntsc, PauseOnDialogs: true}))
	assert.Equal(t, ntsc, f.window.lastFrameTime())

	err := f.h.MiscDialogChange(MiscConfig{BaseFrameTime: frametime.Rational{Num: 1}})
	assert.ErrorIs(t, err, frametime.ErrZeroDenominator)
	assert.Equal(t, ntsc, f.h.FrameRate().Current())
	assert.Len(t, f.window.errors, 1)

	n := len(f.window.frameTimes)
	err = f.h.MiscDialogChange(MiscConfig{BaseFrameTime: frametime.Rational{Num: 0, Denom: 60}})
	assert.ErrorIs(t, err, frametime.ErrZeroFrameTime)
	assert.Equal(t, ntsc, f.h.FrameRate().Current(), "ladder survives a zero base")
	assert.Len(t, f.window.frameTimes, n)
	assert.Len(t, f.window.errors, 2)
}

func TestHandler_PlatformRejectedWhileLoaded(t *testing.T) {
	f := newHandlerFixture(t)

	require.NoError(t, f.h.SelectPlatform(int(PlatformCGB)))
	assert.Equal(t, PlatformCGB, f.h.Session().Platform)
	assert.Equal(t, PlatformCGB, f.source.platform)

	f.open(t, "/roms/tetris.gb")
	err := f.h.SelectPlatform(int(PlatformSGB))
	assert.ErrorIs(t, err, ErrROMLoaded)
	assert.Equal(t, PlatformCGB, f.h.Session().Platform)
	assert.Equal(t, PlatformCGB, f.source.platform)
	assert.Equal(t, int(PlatformCGB), f.h.Platforms().CheckedID(), "menu snaps back")

	require.NoError(t, f.h.Close())
	require.NoError(t, f.h.CyclePlatform())
	assert.Equal(t, PlatformGBA, f.h.Session().Platform)
}

func TestHandler_WindowSize(t *testing.T) {
	f := newHandlerFixture(t)

	require.NoError(t, f.h.SelectWindowSize(1))
	assert.Equal(t, Size{320, 288}, f.window.size)

	f.h.CycleWindowSize()
	assert.Equal(t, Size{480, 432}, f.window.size)

	f.h.VideoDialogChange(VideoConfig{SourceSize: Size{320, 288}, Scaling: ScalingInteger})
	assert.Equal(t, VariableSize, f.window.size)

	assert.ErrorIs(t, f.h.SelectWindowSize(99), ErrUnknownOption)
}

func TestHandler_Palettes(t *testing.T) {
	f := newHandlerFixture(t)
	pocket, _ := PaletteByName("Pocket")
	dmg, _ := PaletteByName("DMG")

	require.NoError(t, f.h.SelectPalette(2))
	assert.Empty(t, f.source.palettes, "no ROM, nothing applied")

	f.open(t, "/roms/tetris.gb")
	assert.Equal(t, pocket, f.source.palettes[len(f.source.palettes)-1])

	assert.ErrorIs(t, f.h.SelectROMPalette(99), ErrUnknownOption)
	require.NoError(t, f.h.SelectROMPalette(1))
	assert.Equal(t, dmg, f.source.palettes[len(f.source.palettes)-1])
	assert.Equal(t, 1, f.h.ROMPalettes().CheckedID())

	// override sticks when switching ROMs and back
	f.open(t, "/roms/kirby.gb")
	assert.Equal(t, pocket, f.source.palettes[len(f.source.palettes)-1])
	assert.Equal(t, NoOption, f.h.ROMPalettes().CheckedID())
	f.open(t, "/roms/tetris.gb")
	assert.Equal(t, dmg, f.source.palettes[len(f.source.palettes)-1])

	f.h.ClearROMPalette()
	assert.Equal(t, pocket, f.source.palettes[len(f.source.palettes)-1])

	custom := uniform([4]uint32{1, 2, 3, 4})
	f.h.GlobalPaletteChange(custom)
	assert.Equal(t, custom, f.source.palettes[len(f.source.palettes)-1])
	assert.Equal(t, NoOption, f.h.Palettes().CheckedID())
}

func TestHandler_CycleROMPalette(t *testing.T) {
	f := newHandlerFixture(t)
	assert.ErrorIs(t, f.h.CycleROMPalette(), ErrNoROM)

	f.open(t, "/roms/tetris.gb")
	global := f.source.palettes[len(f.source.palettes)-1]

	for i, np := range BuiltinPalettes {
		require.NoError(t, f.h.CycleROMPalette())
		assert.Equal(t, i, f.h.ROMPalettes().CheckedID())
		assert.Equal(t, np.Colors, f.source.palettes[len(f.source.palettes)-1])
	}

	// past the last palette the ROM falls back to the global one
	require.NoError(t, f.h.CycleROMPalette())
	assert.Equal(t, NoOption, f.h.ROMPalettes().CheckedID())
	assert.Equal(t, global, f.source.palettes[len(f.source.palettes)-1])

	require.NoError(t, f.h.CycleROMPalette())
	assert.Equal(t, 0, f.h.ROMPalettes().CheckedID())

	f.open(t, "/roms/zelda.gbc")
	assert.ErrorIs(t, f.h.CycleROMPalette(), ErrNotDMG)
	assert.Equal(t, NoOption, f.h.ROMPalettes().CheckedID())
}

func TestHandler_ROMPaletteRejections(t *testing.T) {
	f := newHandlerFixture(t)
	assert.ErrorIs(t, f.h.ROMPaletteChange(DefaultPalette), ErrNoROM)

	f.open(t, "/roms/zelda.gbc")
	assert.ErrorIs(t, f.h.SelectROMPalette(0), ErrNotDMG)
	assert.Equal(t, NoOption, f.h.ROMPalettes().CheckedID())
	assert.Empty(t, f.source.palettes)
}

func TestHandler_FullScreen(t *testing.T) {
	f := newHandlerFixture(t)

	f.h.EscPressed()
	assert.False(t, f.window.fullScreen, "escape does nothing when windowed")

	f.h.ToggleFullScreen()
	f.window.size = Size{1920, 1080}
	f.h.SaveWindowSizeIfNotFullScreen()
	assert.Equal(t, VariableSize, f.h.Snapshot().WindowSize, "full screen size is not saved")

	f.h.EscPressed()
	assert.False(t, f.window.fullScreen)

	f.window.size = Size{640, 576}
	f.h.SaveWindowSizeIfNotFullScreen()
	assert.Equal(t, Size{640, 576}, f.h.Snapshot().WindowSize)
}

func TestHandler_ExecDialogPauses(t *testing.T) {
	f := newHandlerFixture(t, func(c *Config) { c.Misc.PauseOnDialogs = true })

	var pausedInside bool
	f.h.ExecDialog(func() { pausedInside = f.window.paused })
	assert.True(t, pausedInside)
	assert.False(t, f.window.paused)

	f.h.SetPaused(true)
	pauses := f.window.pauses
	f.h.ExecDialog(func() {})
	assert.Equal(t, pauses, f.window.pauses)
	assert.True(t, f.window.paused, "user pause is kept")
}

func TestHandler_RTCMode(t *testing.T) {
	f := newHandlerFixture(t)

	f.h.ToggleRTCMode()
	assert.Equal(t, RTCRealTime, f.source.rtc)
	f.h.ToggleRTCMode()
	assert.Equal(t, RTCCycleBased, f.h.Session().RTCMode)
}

func TestHandler_Bios(t *testing.T) {
	f := newHandlerFixture(t)

	f.chooser.path = "/bios/dmg_boot.bin"
	require.NoError(t, f.h.OpenBios(PlatformDMG))
	p, ok := f.h.BiosPath(PlatformDMG)
	require.True(t, ok)
	assert.Equal(t, "/bios/dmg_boot.bin", p)

	f.source.biosErr = errors.New("bad checksum")
	assert.Error(t, f.h.OpenBios(PlatformCGB))
	_, ok = f.h.BiosPath(PlatformCGB)
	assert.False(t, ok)
}

func TestHandler_SnapshotRestore(t *testing.T) {
	f := newHandlerFixture(t)
	pocket, _ := PaletteByName("Pocket")

	f.h.Restore(Snapshot{
		RecentFiles:    []string{"/roms/kirby.gb", "/roms/tetris.gb"},
		FrameRateIndex: frametime.StepCount + 3,
		Platform:       PlatformSGB,
		GlobalPalette:  pocket,
		ROMPalettes:    map[string]Palette{"TETRIS": DefaultPalette},
		WindowSize:     Size{320, 288},
		RTCMode:        RTCRealTime,
		BiosPaths:      map[Platform]string{PlatformDMG: "/bios/dmg.bin"},
	})

	assert.Equal(t, PlatformSGB, f.source.platform)
	assert.Equal(t, RTCRealTime, f.source.rtc)
	assert.Equal(t, Size{320, 288}, f.window.size)
	assert.Equal(t, frametime.StepCount+3, f.h.FrameRate().Index())
	assert.Equal(t, 2, f.h.Palettes().CheckedID())

	require.NoError(t, f.h.OpenRecent(1))
	assert.Equal(t, DefaultPalette, f.source.palettes[len(f.source.palettes)-1])

	s := f.h.Snapshot()
	assert.Equal(t, []string{"/roms/tetris.gb", "/roms/kirby.gb"}, s.RecentFiles)
	assert.Equal(t, frametime.StepCount+3, s.FrameRateIndex)
	assert.Equal(t, PlatformSGB, s.Platform)
	assert.Equal(t, pocket, s.GlobalPalette)
	assert.Equal(t, Size{320, 288}, s.WindowSize)
	assert.Equal(t, "/bios/dmg.bin", s.BiosPaths[PlatformDMG])
}

func TestHandler_Bind(t *testing.T) {
	f := newHandlerFixture(t)
	m := input.NewManager(input.WithDebounce(time.Duration(0)))
	f.h.Bind(m)

	for _, act := range action.All() {
		if act == action.ViewMenuToggle {
			// owned by the window shell
			continue
		}
		assert.True(t, m.Registered(act, event.Press), "%s is bound", act)
	}

	f.open(t, "/roms/tetris.gb")
	assert.True(t, m.Trigger(action.SelectSlot(4), event.Press))
	assert.Equal(t, 4, f.h.Session().Slot)

	assert.True(t, m.Trigger(action.PlayPauseToggle, event.Press))
	assert.True(t, f.h.Session().Paused)

	assert.True(t, m.Trigger(action.ViewCycleROMPalette, event.Press))
	assert.Equal(t, 0, f.h.ROMPalettes().CheckedID())

	assert.True(t, m.Trigger(action.FileQuit, event.Press))
	assert.Equal(t, 1, f.quits)
}
