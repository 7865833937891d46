package frontend

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/valerio/go-jeebie-shell/jeebie/backend"
	"github.com/valerio/go-jeebie-shell/jeebie/input"
	"github.com/valerio/go-jeebie-shell/jeebie/input/action"
	"github.com/valerio/go-jeebie-shell/jeebie/menu"
)

// shortcuts maps each action to the key shown next to its menu item.
var shortcuts = buildShortcuts()

func buildShortcuts() map[action.Action]string {
	keys := make([]string, 0, len(input.DefaultKeyMap))
	for k := range input.DefaultKeyMap {
		keys = append(keys, k)
	}
	// shortest name wins, ties broken alphabetically
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})

	out := make(map[action.Action]string)
	for _, k := range keys {
		act := input.DefaultKeyMap[k]
		if _, ok := out[act]; !ok {
			out[act] = k
		}
	}
	return out
}

func item(act action.Action, enabled bool) backend.MenuItem {
	return backend.MenuItem{Label: act.String(), Key: shortcuts[act], Enabled: enabled}
}

func check(act action.Action, enabled, checked bool) backend.MenuItem {
	i := item(act, enabled)
	i.Checked = checked
	return i
}

// choiceItems lists the options of a choice menu.
func choiceItems[T comparable](c *menu.Choice[T], enabled bool) []backend.MenuItem {
	checked := c.CheckedID()
	var items []backend.MenuItem
	for _, o := range c.Options() {
		items = append(items, backend.MenuItem{Label: o.Label, Checked: o.ID == checked, Enabled: enabled})
	}
	return items
}

// menuCollector is a menu.Presenter turning one choice menu into a
// backend.Menu.
type menuCollector[T comparable] struct {
	enabled bool
	menu    backend.Menu
}

func (m *menuCollector[T]) Present(title string, options []menu.Option[T], checkedID int) {
	m.menu = backend.Menu{Title: title}
	for _, o := range options {
		m.menu.Items = append(m.menu.Items, backend.MenuItem{Label: o.Label, Checked: o.ID == checkedID, Enabled: m.enabled})
	}
}

func present[T comparable](c *menu.Choice[T], enabled bool) backend.Menu {
	p := &menuCollector[T]{enabled: enabled}
	c.Present(p)
	return p.menu
}

// BuildMenus renders the handler state as the menu bar.
func BuildMenus(h *menu.Handler, paused bool) []backend.Menu {
	s := h.Session()
	loaded := s.ROMLoaded()
	idle := !s.Resetting
	fr := h.FrameRate().Actions()

	file := backend.Menu{Title: "File", Items: []backend.MenuItem{item(action.FileOpen, idle)}}
	i := 0
	for path := range h.Recent().Entries() {
		file.Items = append(file.Items, backend.MenuItem{
			Label:   fmt.Sprintf("%d. %s", i+1, filepath.Base(path)),
			Key:     shortcuts[action.RecentFile(i)],
			Enabled: idle,
		})
		i++
	}
	file.Items = append(file.Items,
		item(action.FileClose, loaded && idle),
		item(action.FileOpenBios, true),
		item(action.FileQuit, true),
	)

	play := backend.Menu{Title: "Play", Items: []backend.MenuItem{
		check(action.PlayPauseToggle, true, paused),
		item(action.PlayFrameStep, loaded),
		item(action.PlayReset, loaded && idle),
		item(action.PlayDecFrameRate, fr.Dec),
		item(action.PlayIncFrameRate, fr.Inc),
		item(action.PlayResetFrameRate, fr.Reset),
		check(action.PlaySyncFrameRateToggle, true, s.SyncFrameRate),
		check(action.PlayRTCModeToggle, true, s.RTCMode == menu.RTCRealTime),
	}}

	stateOK := loaded && idle
	state := backend.Menu{Title: "State", Items: []backend.MenuItem{
		item(action.StateSave, stateOK),
		item(action.StateLoad, stateOK),
		item(action.StateSaveAs, stateOK),
		item(action.StateLoadFrom, stateOK),
		item(action.StatePrevSlot, true),
		item(action.StateNextSlot, true),
	}}
	state.Items = append(state.Items, choiceItems(h.Slots(), true)...)

	return []backend.Menu{
		file,
		play,
		state,
		present(h.WindowSizes().Choice, true),
		present(h.Platforms(), !loaded && idle),
		present(h.Palettes(), true),
		present(h.ROMPalettes(), loaded && s.DMG),
	}
}
