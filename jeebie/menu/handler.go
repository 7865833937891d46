package menu

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/valerio/go-jeebie-shell/jeebie/frametime"
	"github.com/valerio/go-jeebie-shell/jeebie/input"
	"github.com/valerio/go-jeebie-shell/jeebie/input/action"
	"github.com/valerio/go-jeebie-shell/jeebie/input/event"
)

// Config holds the static configuration of a Handler
type Config struct {
	AppName       string
	Version       string
	MaxWindowSize Size
	Video         VideoConfig
	Misc          MiscConfig
	StateSlots    int
	RebasePolicy  frametime.RebasePolicy
}

// Callbacks lets the owner observe handler events
type Callbacks struct {
	OnROMLoaded    func(loaded bool)
	OnDMGROMLoaded func(dmg bool)
	OnQuit         func()
}

// Handler turns menu commands into calls on the emulation source and the
// main window, and keeps the menus in sync with the resulting state.
type Handler struct {
	mw        MainWindow
	source    Source
	chooser   FileChooser
	cfg       Config
	callbacks Callbacks

	session Session

	recent      *RecentFiles
	frameRate   *FrameRateAdjuster
	windowSizes *WindowSizeMenu
	platforms   *Choice[Platform]
	palettes    *Choice[Palette]
	romPalettes *Choice[Palette]
	slots       *Choice[int]

	globalPalette Palette
	romOverrides  map[string]Palette
	biosPaths     map[Platform]string

	misc            MiscConfig
	syncAvailable   bool
	dialogPauses    int
	savedWindowSize Size
}

// NewHandler wires the menus to the given collaborators. chooser may be nil,
// in which case commands that need a file dialog are unavailable.
func NewHandler(mw MainWindow, source Source, chooser FileChooser, cfg Config, callbacks Callbacks) (*Handler, error) {
	if cfg.AppName == "" {
		cfg.AppName = "Jeebie"
	}
	if cfg.StateSlots <= 0 {
		cfg.StateSlots = DefaultStateSlots
	}

	h := &Handler{
		mw:            mw,
		source:        source,
		chooser:       chooser,
		cfg:           cfg,
		callbacks:     callbacks,
		recent:        NewRecentFiles(),
		windowSizes:   NewWindowSizeMenu(cfg.MaxWindowSize, cfg.Video),
		platforms:     NewPlatformMenu(),
		palettes:      NewPaletteMenu("Palette"),
		romPalettes:   NewPaletteMenu("ROM palette"),
		slots:         NewSlotMenu(cfg.StateSlots),
		globalPalette: DefaultPalette,
		romOverrides:  make(map[string]Palette),
		biosPaths:     make(map[Platform]string),
		misc:          cfg.Misc,
		syncAvailable: true,
	}

	frameRate, err := NewFrameRateAdjuster(cfg.Misc.BaseFrameTime, mw, frametime.WithRebasePolicy(cfg.RebasePolicy))
	if err != nil {
		return nil, fmt.Errorf("invalid base frame time: %w", err)
	}
	h.frameRate = frameRate

	h.windowSizes.OnSelect = h.setWindowSize
	h.platforms.OnSelect = h.setPlatform
	h.palettes.OnSelect = h.setGlobalPalette
	h.romPalettes.OnSelect = h.setROMPalette
	h.slots.OnSelect = h.setSlot

	if err := source.SetPlatform(h.session.Platform); err != nil {
		return nil, fmt.Errorf("failed to select platform: %w", err)
	}

	h.windowSizes.Synchronize(VariableSize)
	h.platforms.Synchronize(h.session.Platform)
	h.palettes.Synchronize(h.globalPalette)
	h.slots.Synchronize(h.session.Slot)

	h.mw.SetWindowTitle(h.cfg.AppName)
	return h, nil
}

// Session returns a copy of the current session state.
func (h *Handler) Session() Session { return h.session }

// IsResetting reports whether a reset is waiting for the source to finish.
func (h *Handler) IsResetting() bool { return h.session.Resetting }

// Recent returns the recent files list.
func (h *Handler) Recent() *RecentFiles { return h.recent }

// FrameRate returns the frame rate adjuster.
func (h *Handler) FrameRate() *FrameRateAdjuster { return h.frameRate }

// WindowSizes returns the window size menu.
func (h *Handler) WindowSizes() *WindowSizeMenu { return h.windowSizes }

// Platforms returns the platform menu.
func (h *Handler) Platforms() *Choice[Platform] { return h.platforms }

// Palettes returns the global palette menu.
func (h *Handler) Palettes() *Choice[Palette] { return h.palettes }

// ROMPalettes returns the per-ROM palette menu.
func (h *Handler) ROMPalettes() *Choice[Palette] { return h.romPalettes }

// Slots returns the save state slot menu.
func (h *Handler) Slots() *Choice[int] { return h.slots }

// Restore applies persisted state. It is meant to run once at start-up,
// before a ROM is opened.
func (h *Handler) Restore(s Snapshot) {
	h.recent.Load(s.RecentFiles)

	if s.GlobalPalette != (Palette{}) {
		h.globalPalette = s.GlobalPalette
	}
	h.palettes.Synchronize(h.globalPalette)
	h.romOverrides = make(map[string]Palette, len(s.ROMPalettes))
	maps.Copy(h.romOverrides, s.ROMPalettes)
	h.biosPaths = make(map[Platform]string, len(s.BiosPaths))
	maps.Copy(h.biosPaths, s.BiosPaths)

	if err := h.source.SetPlatform(s.Platform); err != nil {
		slog.Warn("Ignoring persisted platform", "platform", s.Platform, "error", err)
	} else {
		h.session.Platform = s.Platform
	}
	h.platforms.Synchronize(h.session.Platform)

	h.session.RTCMode = s.RTCMode
	h.source.SetRTCMode(s.RTCMode)

	h.windowSizes.Synchronize(s.WindowSize)
	if _, ok := h.windowSizes.Checked(); !ok {
		h.windowSizes.Synchronize(VariableSize)
	}
	h.savedWindowSize = s.WindowSize
	if o, ok := h.windowSizes.Checked(); ok {
		h.mw.SetWindowSize(o.Value)
	}

	h.frameRate.RestoreIndex(s.FrameRateIndex)
	h.SetSyncFrameRate(s.SyncFrameRate)
}

// Snapshot exports the state worth persisting.
func (h *Handler) Snapshot() Snapshot {
	windowSize := h.savedWindowSize
	if o, ok := h.windowSizes.Checked(); ok && o.Value != VariableSize {
		windowSize = o.Value
	}
	return Snapshot{
		RecentFiles:    h.recent.Slice(),
		FrameRateIndex: h.frameRate.Index(),
		Platform:       h.session.Platform,
		GlobalPalette:  h.globalPalette,
		ROMPalettes:    maps.Clone(h.romOverrides),
		WindowSize:     windowSize,
		SyncFrameRate:  h.session.SyncFrameRate,
		RTCMode:        h.session.RTCMode,
		BiosPaths:      maps.Clone(h.biosPaths),
	}
}

// Open asks for a ROM and loads it.
func (h *Handler) Open() error {
	path, err := h.chooseOpen("Open ROM", romFilter)
	if err != nil || path == "" {
		return err
	}
	return h.OpenFile(path)
}

// OpenRecent loads the i-th most recent file (0 based). Empty slots are ignored.
func (h *Handler) OpenRecent(i int) error {
	path, ok := h.recent.At(i)
	if !ok {
		return nil
	}
	return h.OpenFile(path)
}

// OpenFile loads the ROM at path. On failure nothing changes and the error is
// shown to the user.
func (h *Handler) OpenFile(path string) error {
	if err := h.rejectWhileResetting("open"); err != nil {
		return err
	}

	info, err := h.source.Load(path)
	if err != nil {
		err = fmt.Errorf("failed to load %s: %w", path, err)
		slog.Error("ROM load failed", "path", path, "error", err)
		h.mw.ShowError(err)
		return err
	}
	if info.Path == "" {
		info.Path = path
	}

	h.session.CurrentFile = info.Path
	h.session.ROMTitle = info.Title
	h.session.DMG = info.DMG
	h.recent.Touch(info.Path)
	h.setWindowPrefix(info.Title)
	h.syncROMPaletteMenu()
	h.applyDMGPalette()

	slog.Info("ROM loaded", "path", info.Path, "title", info.Title, "dmg", info.DMG)
	if h.callbacks.OnROMLoaded != nil {
		h.callbacks.OnROMLoaded(true)
	}
	if h.callbacks.OnDMGROMLoaded != nil {
		h.callbacks.OnDMGROMLoaded(info.DMG)
	}
	return nil
}

// Close unloads the current ROM.
func (h *Handler) Close() error {
	if !h.session.ROMLoaded() {
		return nil
	}
	if err := h.rejectWhileResetting("close"); err != nil {
		return err
	}

	h.source.Close()
	slog.Info("ROM closed", "path", h.session.CurrentFile)
	h.session.CurrentFile = ""
	h.session.ROMTitle = ""
	h.session.DMG = false
	h.romPalettes.Clear()
	h.mw.SetWindowTitle(h.cfg.AppName)

	if h.callbacks.OnROMLoaded != nil {
		h.callbacks.OnROMLoaded(false)
	}
	if h.callbacks.OnDMGROMLoaded != nil {
		h.callbacks.OnDMGROMLoaded(false)
	}
	return nil
}

// Reset asks the source to reset. State actions are refused until the source
// reports completion.
func (h *Handler) Reset() error {
	if !h.session.ROMLoaded() {
		return ErrNoROM
	}
	if err := h.rejectWhileResetting("reset"); err != nil {
		return err
	}

	h.setResetting(true)
	h.source.Reset(func() {
		h.setResetting(false)
	})
	return nil
}

func (h *Handler) setResetting(resetting bool) {
	if h.session.Resetting == resetting {
		return
	}
	h.session.Resetting = resetting
	slog.Debug("Reset state changed", "resetting", resetting)
	if !resetting {
		h.mw.ShowMessage("Reset")
	}
}

// TogglePause flips the paused state.
func (h *Handler) TogglePause() {
	h.SetPaused(!h.session.Paused)
}

// SetPaused pauses or resumes the emulation.
func (h *Handler) SetPaused(paused bool) {
	if h.session.Paused == paused {
		return
	}
	h.session.Paused = paused
	if paused {
		h.mw.Pause()
		h.mw.ShowMessage("Paused")
	} else {
		h.mw.Unpause()
		h.mw.ShowMessage("Unpaused")
	}
}

// FrameStep advances one frame and leaves the emulation paused.
func (h *Handler) FrameStep() error {
	if !h.session.ROMLoaded() {
		return ErrNoROM
	}
	if !h.session.Paused {
		h.session.Paused = true
		h.mw.Pause()
	}
	h.mw.FrameStep()
	return nil
}

// PrevStateSlot selects the previous slot, wrapping around.
func (h *Handler) PrevStateSlot() {
	h.SelectStateSlot((h.session.Slot + h.cfg.StateSlots - 1) % h.cfg.StateSlots)
}

// NextStateSlot selects the next slot, wrapping around.
func (h *Handler) NextStateSlot() {
	h.SelectStateSlot((h.session.Slot + 1) % h.cfg.StateSlots)
}

// SelectStateSlot selects slot n. Out of range slots are ignored.
func (h *Handler) SelectStateSlot(n int) {
	if err := h.slots.Select(n); err != nil {
		h.slots.Synchronize(h.session.Slot)
	}
}

func (h *Handler) setSlot(n int) error {
	h.session.Slot = n
	h.slots.Synchronize(n)
	h.mw.ShowMessage(fmt.Sprintf("State slot %d", n))
	return nil
}

// SaveState saves to the current slot.
func (h *Handler) SaveState() error {
	if err := h.checkStateAction("save state"); err != nil {
		return err
	}
	slot := h.session.Slot
	if err := h.source.SaveState(slot); err != nil {
		return h.fail(fmt.Errorf("failed to save state %d: %w", slot, err))
	}
	h.mw.ShowMessage(fmt.Sprintf("State %d saved", slot))
	return nil
}

// LoadState loads from the current slot.
func (h *Handler) LoadState() error {
	if err := h.checkStateAction("load state"); err != nil {
		return err
	}
	slot := h.session.Slot
	if err := h.source.LoadState(slot); err != nil {
		return h.fail(fmt.Errorf("failed to load state %d: %w", slot, err))
	}
	h.mw.ShowMessage(fmt.Sprintf("State %d loaded", slot))
	return nil
}

// SaveStateAs asks for a file and saves the state to it.
func (h *Handler) SaveStateAs() error {
	if err := h.checkStateAction("save state"); err != nil {
		return err
	}
	path, err := h.chooseSave("Save state as", stateFilter)
	if err != nil || path == "" {
		return err
	}
	if err := h.source.SaveStateTo(path); err != nil {
		return h.fail(fmt.Errorf("failed to save state to %s: %w", path, err))
	}
	h.mw.ShowMessage("State saved to " + path)
	return nil
}

// LoadStateFrom asks for a file and loads the state from it.
func (h *Handler) LoadStateFrom() error {
	if err := h.checkStateAction("load state"); err != nil {
		return err
	}
	path, err := h.chooseOpen("Load state from", stateFilter)
	if err != nil || path == "" {
		return err
	}
	if err := h.source.LoadStateFrom(path); err != nil {
		return h.fail(fmt.Errorf("failed to load state from %s: %w", path, err))
	}
	h.mw.ShowMessage("State loaded from " + path)
	return nil
}

// DecFrameRate slows the emulation down one step.
func (h *Handler) DecFrameRate() { h.frameRate.DecFrameRate() }

// IncFrameRate speeds the emulation up one step.
func (h *Handler) IncFrameRate() { h.frameRate.IncFrameRate() }

// ResetFrameRate returns to the base frame rate.
func (h *Handler) ResetFrameRate() { h.frameRate.ResetFrameRate() }

// SetSyncFrameRate locks the frame rate to the display refresh rate. Frame
// rate stepping is disabled while the lock is active.
func (h *Handler) SetSyncFrameRate(on bool) {
	h.session.SyncFrameRate = on
	h.applySyncFrameRate()
}

// ReconsiderSyncFrameRate is called when the video output changes and may no
// longer be able to sync to the refresh rate.
func (h *Handler) ReconsiderSyncFrameRate(available bool) {
	h.syncAvailable = available
	h.applySyncFrameRate()
}

func (h *Handler) applySyncFrameRate() {
	active := h.session.SyncFrameRate && h.syncAvailable
	h.mw.SetSyncToRefreshRate(active)
	h.frameRate.SetDisabled(active)
}

// SelectWindowSize picks a window size option by id.
func (h *Handler) SelectWindowSize(id int) error {
	return h.windowSizes.Select(id)
}

// CycleWindowSize picks the next window size.
func (h *Handler) CycleWindowSize() {
	if id, ok := h.windowSizes.Next(); ok {
		h.SelectWindowSize(id)
	}
}

func (h *Handler) setWindowSize(s Size) error {
	h.mw.SetWindowSize(s)
	h.windowSizes.Synchronize(s)
	slog.Debug("Window size selected", "size", s)
	return nil
}

// SelectPlatform picks a platform option by id. Platform changes are refused
// while a ROM is loaded or a reset is pending; the menu then snaps back.
func (h *Handler) SelectPlatform(id int) error {
	err := h.platforms.Select(id)
	h.platforms.Synchronize(h.session.Platform)
	return err
}

// CyclePlatform picks the next platform.
func (h *Handler) CyclePlatform() error {
	id, ok := h.platforms.Next()
	if !ok {
		return nil
	}
	return h.SelectPlatform(id)
}

func (h *Handler) setPlatform(p Platform) error {
	if err := h.rejectWhileResetting("change platform"); err != nil {
		return err
	}
	if h.session.ROMLoaded() {
		h.mw.ShowMessage(ErrROMLoaded.Error())
		return ErrROMLoaded
	}
	if err := h.source.SetPlatform(p); err != nil {
		return h.fail(fmt.Errorf("failed to select platform %s: %w", p, err))
	}
	h.session.Platform = p
	slog.Info("Platform selected", "platform", p)
	return nil
}

// SelectPalette picks a built-in global palette by id.
func (h *Handler) SelectPalette(id int) error {
	return h.palettes.Select(id)
}

// CyclePalette picks the next built-in global palette.
func (h *Handler) CyclePalette() {
	if id, ok := h.palettes.Next(); ok {
		h.SelectPalette(id)
	}
}

// GlobalPaletteChange applies colours from the global palette dialog.
func (h *Handler) GlobalPaletteChange(p Palette) {
	h.setGlobalPalette(p)
}

func (h *Handler) setGlobalPalette(p Palette) error {
	h.globalPalette = p
	h.palettes.Synchronize(p)
	h.applyDMGPalette()
	return nil
}

// SelectROMPalette picks a built-in palette for the current ROM only.
func (h *Handler) SelectROMPalette(id int) error {
	err := h.romPalettes.Select(id)
	h.syncROMPaletteMenu()
	return err
}

// ROMPaletteChange applies colours from the ROM palette dialog.
func (h *Handler) ROMPaletteChange(p Palette) error {
	err := h.setROMPalette(p)
	h.syncROMPaletteMenu()
	return err
}

// CycleROMPalette picks the next built-in palette for the current ROM. Past
// the last palette the override is dropped and the global palette applies.
func (h *Handler) CycleROMPalette() error {
	opts := h.romPalettes.Options()
	if cur, ok := h.romPalettes.Checked(); ok && len(opts) > 0 && cur.ID == opts[len(opts)-1].ID {
		h.ClearROMPalette()
		return nil
	}
	id, ok := h.romPalettes.Next()
	if !ok {
		return nil
	}
	return h.SelectROMPalette(id)
}

// ClearROMPalette drops the palette override of the current ROM.
func (h *Handler) ClearROMPalette() {
	if !h.session.ROMLoaded() {
		return
	}
	delete(h.romOverrides, h.session.ROMTitle)
	h.syncROMPaletteMenu()
	h.applyDMGPalette()
}

func (h *Handler) setROMPalette(p Palette) error {
	if !h.session.ROMLoaded() {
		return ErrNoROM
	}
	if !h.session.DMG {
		h.mw.ShowMessage(ErrNotDMG.Error())
		return ErrNotDMG
	}
	h.romOverrides[h.session.ROMTitle] = p
	h.applyDMGPalette()
	return nil
}

func (h *Handler) syncROMPaletteMenu() {
	if p, ok := h.romOverrides[h.session.ROMTitle]; ok && h.session.ROMLoaded() {
		h.romPalettes.Synchronize(p)
		return
	}
	h.romPalettes.Clear()
}

// activePalette returns the ROM override if there is one, else the global palette.
func (h *Handler) activePalette() Palette {
	if p, ok := h.romOverrides[h.session.ROMTitle]; ok && h.session.ROMLoaded() {
		return p
	}
	return h.globalPalette
}

func (h *Handler) applyDMGPalette() {
	if !h.session.ROMLoaded() || !h.session.DMG {
		return
	}
	h.source.ApplyPalette(h.activePalette())
}

// SetRTCMode selects how the cartridge clock advances.
func (h *Handler) SetRTCMode(m RTCMode) {
	h.session.RTCMode = m
	h.source.SetRTCMode(m)
	h.mw.ShowMessage("RTC mode: " + m.String())
}

// ToggleRTCMode switches between cycle based and real time clocks.
func (h *Handler) ToggleRTCMode() {
	if h.session.RTCMode == RTCRealTime {
		h.SetRTCMode(RTCCycleBased)
	} else {
		h.SetRTCMode(RTCRealTime)
	}
}

// ToggleFullScreen flips full screen mode.
func (h *Handler) ToggleFullScreen() {
	h.mw.ToggleFullScreen()
}

// EscPressed leaves full screen mode.
func (h *Handler) EscPressed() {
	if h.mw.IsFullScreen() {
		h.mw.ToggleFullScreen()
	}
}

// SaveWindowSizeIfNotFullScreen remembers the window size for the next
// session unless the window is full screen.
func (h *Handler) SaveWindowSizeIfNotFullScreen() {
	if h.mw.IsFullScreen() {
		return
	}
	h.savedWindowSize = h.mw.WindowSize()
}

// VideoDialogChange rebuilds the window size menu from new video settings.
func (h *Handler) VideoDialogChange(vc VideoConfig) {
	h.cfg.Video = vc
	size := h.windowSizes.VideoChange(vc)
	h.mw.SetWindowSize(size)
}

// MiscDialogChange applies new misc settings.
func (h *Handler) MiscDialogChange(mc MiscConfig) error {
	if err := h.frameRate.BaseFrameTimeChanged(mc); err != nil {
		return h.fail(fmt.Errorf("invalid base frame time %v: %w", mc.BaseFrameTime, err))
	}
	h.misc = mc
	return nil
}

// SoundDialogChange applies new sound settings.
func (h *Handler) SoundDialogChange(sc SoundConfig) {
	h.mw.SetAudioOut(sc)
}

// CheatDialogChange applies new cheat codes.
func (h *Handler) CheatDialogChange(cc CheatConfig) {
	h.source.SetCheats(cc)
}

// ExecDialog runs a modal dialog, pausing the emulation around it when the
// misc settings ask for it.
func (h *Handler) ExecDialog(run func()) {
	pause := h.misc.PauseOnDialogs && !h.session.Paused
	if pause {
		h.dialogPauses++
		if h.dialogPauses == 1 {
			h.mw.Pause()
		}
	}
	run()
	if pause {
		h.dialogPauses--
		if h.dialogPauses == 0 && !h.session.Paused {
			h.mw.Unpause()
		}
	}
}

// OpenBios asks for a boot ROM for platform p and verifies it.
func (h *Handler) OpenBios(p Platform) error {
	path, err := h.chooseOpen(fmt.Sprintf("Select %s boot ROM", p), biosFilter)
	if err != nil || path == "" {
		return err
	}
	info, err := h.source.LookupBios(BiosCriteria{Platform: p, Path: path})
	if err != nil {
		return h.fail(fmt.Errorf("invalid %s boot ROM %s: %w", p, path, err))
	}
	h.biosPaths[p] = info.Path
	slog.Info("Boot ROM selected", "platform", p, "path", info.Path, "crc32", fmt.Sprintf("%08x", info.CRC32))
	h.mw.ShowMessage(fmt.Sprintf("%s boot ROM set", p))
	return nil
}

// BiosPath returns the boot ROM chosen for platform p.
func (h *Handler) BiosPath(p Platform) (string, bool) {
	path, ok := h.biosPaths[p]
	return path, ok
}

// VideoBlitterFailure reports a broken video output.
func (h *Handler) VideoBlitterFailure(err error) {
	h.fail(fmt.Errorf("video output failure: %w", err))
}

// AudioEngineFailure reports a broken audio output.
func (h *Handler) AudioEngineFailure(err error) {
	h.fail(fmt.Errorf("audio engine failure: %w", err))
}

// About shows the version banner.
func (h *Handler) About() {
	h.mw.ShowMessage(fmt.Sprintf("%s %s, a Game Boy emulator front-end", h.cfg.AppName, h.cfg.Version))
}

// Quit asks the owner to shut down.
func (h *Handler) Quit() {
	h.SaveWindowSizeIfNotFullScreen()
	if h.callbacks.OnQuit != nil {
		h.callbacks.OnQuit()
	}
}

// Bind registers every menu command with the input manager.
func (h *Handler) Bind(m *input.Manager) {
	press := func(act action.Action, fn func()) {
		m.On(act, event.Press, fn)
	}

	press(action.FileOpen, func() { h.Open() })
	press(action.FileClose, func() { h.Close() })
	press(action.FileOpenBios, func() { h.OpenBios(h.session.Platform) })
	press(action.FileQuit, h.Quit)
	for i := 0; i < action.RecentSlots; i++ {
		press(action.RecentFile(i), func() { h.OpenRecent(i) })
	}

	press(action.PlayPauseToggle, h.TogglePause)
	press(action.PlayFrameStep, func() { h.FrameStep() })
	press(action.PlayReset, func() { h.Reset() })
	press(action.PlayDecFrameRate, h.DecFrameRate)
	press(action.PlayIncFrameRate, h.IncFrameRate)
	press(action.PlayResetFrameRate, h.ResetFrameRate)
	press(action.PlaySyncFrameRateToggle, func() { h.SetSyncFrameRate(!h.session.SyncFrameRate) })
	press(action.PlayRTCModeToggle, h.ToggleRTCMode)

	press(action.StateSave, func() { h.SaveState() })
	press(action.StateLoad, func() { h.LoadState() })
	press(action.StateSaveAs, func() { h.SaveStateAs() })
	press(action.StateLoadFrom, func() { h.LoadStateFrom() })
	press(action.StatePrevSlot, h.PrevStateSlot)
	press(action.StateNextSlot, h.NextStateSlot)
	for n := 0; n < action.StateSlots && n < h.cfg.StateSlots; n++ {
		press(action.SelectSlot(n), func() { h.SelectStateSlot(n) })
	}

	press(action.ViewToggleFullScreen, h.ToggleFullScreen)
	press(action.ViewEscape, h.EscPressed)
	press(action.ViewCycleWindowSize, h.CycleWindowSize)
	press(action.ViewCyclePlatform, func() { h.CyclePlatform() })
	press(action.ViewCyclePalette, h.CyclePalette)
	press(action.ViewCycleROMPalette, func() { h.CycleROMPalette() })
	press(action.HelpAbout, h.About)
}

func (h *Handler) setWindowPrefix(title string) {
	if title == "" {
		h.mw.SetWindowTitle(h.cfg.AppName)
		return
	}
	h.mw.SetWindowTitle(title + " - " + h.cfg.AppName)
}

func (h *Handler) rejectWhileResetting(what string) error {
	if !h.session.Resetting {
		return nil
	}
	slog.Debug("Action rejected during reset", "action", what)
	h.mw.ShowMessage("Cannot " + what + " while resetting")
	return ErrResetInProgress
}

func (h *Handler) checkStateAction(what string) error {
	if err := h.rejectWhileResetting(what); err != nil {
		return err
	}
	if !h.session.ROMLoaded() {
		return ErrNoROM
	}
	return nil
}

func (h *Handler) chooseOpen(title string, filter FileFilter) (string, error) {
	return h.choose(title, filter, false)
}

func (h *Handler) chooseSave(title string, filter FileFilter) (string, error) {
	return h.choose(title, filter, true)
}

// choose runs a file dialog. A cancelled dialog yields an empty path and no
// error.
func (h *Handler) choose(title string, filter FileFilter, save bool) (path string, err error) {
	if h.chooser == nil {
		return "", h.fail(errors.New("file dialogs are not available"))
	}
	h.ExecDialog(func() {
		if save {
			path, err = h.chooser.SaveFile(title, filter)
		} else {
			path, err = h.chooser.OpenFile(title, filter)
		}
	})
	if errors.Is(err, ErrCancelled) {
		return "", nil
	}
	if err != nil {
		return "", h.fail(fmt.Errorf("%s: %w", title, err))
	}
	return path, nil
}

// fail logs err, shows it to the user and returns it.
func (h *Handler) fail(err error) error {
	slog.Error("Menu action failed", "error", err)
	h.mw.ShowError(err)
	return err
}
