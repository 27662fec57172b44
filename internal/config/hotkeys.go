package config

import (
	"strings"

	"gioui.org/io/event"
	"gioui.org/io/key"
)

// HotkeysConfig holds the shortcut strings from config.json, e.g.
// "Ctrl+Shift+N". An empty string disables the binding.
type HotkeysConfig struct {
	Back          string `json:"back"`
	Forward       string `json:"forward"`
	Up            string `json:"up"`
	Home          string `json:"home"`
	Refresh       string `json:"refresh"`
	FocusAddress  string `json:"focusAddress"`
	TogglePreview string `json:"togglePreview"`
	ToggleHidden  string `json:"toggleHidden"`
	TableView     string `json:"tableView"`
	IconView      string `json:"iconView"`
	TreeView      string `json:"treeView"`
	PlayPause     string `json:"playPause"`
	NextPage      string `json:"nextPage"`
	PrevPage      string `json:"prevPage"`
	Escape        string `json:"escape"`
}

// Hotkey is a parsed shortcut.
type Hotkey struct {
	Key       key.Name
	Modifiers key.Modifiers
}

// ParseHotkey parses "Ctrl+Shift+N" style strings. Unknown modifier words
// are taken as the key name.
func ParseHotkey(s string) Hotkey {
	if s == "" {
		return Hotkey{}
	}
	var mods key.Modifiers
	var name string
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "ctrl", "control":
			mods |= key.ModCtrl
		case "shift":
			mods |= key.ModShift
		case "alt", "option":
			mods |= key.ModAlt
		case "cmd", "command":
			mods |= key.ModCommand
		case "super", "meta", "win":
			mods |= key.ModSuper
		default:
			name = part
		}
	}
	return Hotkey{Key: parseKeyName(name), Modifiers: mods}
}

var namedKeys = map[string]key.Name{
	"f1": key.NameF1, "f2": key.NameF2, "f3": key.NameF3, "f4": key.NameF4,
	"f5": key.NameF5, "f6": key.NameF6, "f7": key.NameF7, "f8": key.NameF8,
	"f9": key.NameF9, "f10": key.NameF10, "f11": key.NameF11, "f12": key.NameF12,

	"up": key.NameUpArrow, "down": key.NameDownArrow,
	"left": key.NameLeftArrow, "right": key.NameRightArrow,
	"home": key.NameHome, "end": key.NameEnd,
	"pageup": key.NamePageUp, "pgup": key.NamePageUp,
	"pagedown": key.NamePageDown, "pgdn": key.NamePageDown,

	"enter": key.NameReturn, "return": key.NameReturn,
	"tab": key.NameTab, "space": key.NameSpace,
	"backspace": key.NameDeleteBackward, "delete": key.NameDeleteForward,
	"escape": key.NameEscape, "esc": key.NameEscape,
}

// parseKeyName maps a key word to Gio's name. Letters are upper-cased the
// way Gio reports them.
func parseKeyName(s string) key.Name {
	if len(s) == 1 {
		return key.Name(strings.ToUpper(s))
	}
	if n, ok := namedKeys[strings.ToLower(s)]; ok {
		return n
	}
	return key.Name(s)
}

// Matches requires the exact modifier set so Ctrl+H and Ctrl+Shift+H
// stay distinct.
func (h Hotkey) Matches(k key.Event) bool {
	return h.Key != "" && k.Name == h.Key && k.Modifiers == h.Modifiers
}

func (h Hotkey) IsEmpty() bool { return h.Key == "" }

func (h Hotkey) String() string {
	if h.Key == "" {
		return ""
	}
	var parts []string
	for _, m := range []struct {
		mod  key.Modifiers
		name string
	}{
		{key.ModCtrl, "Ctrl"}, {key.ModCommand, "Cmd"}, {key.ModShift, "Shift"},
		{key.ModAlt, "Alt"}, {key.ModSuper, "Super"},
	} {
		if h.Modifiers.Contain(m.mod) {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(append(parts, string(h.Key)), "+")
}

// Filter is the key.Filter that delivers this hotkey to focus.
func (h Hotkey) Filter(focus event.Tag) key.Filter {
	return key.Filter{Focus: focus, Name: h.Key, Required: h.Modifiers}
}

// HotkeyMatcher holds the parsed bindings.
type HotkeyMatcher struct {
	Back, Forward, Up, Home, Refresh Hotkey
	FocusAddress, TogglePreview      Hotkey
	ToggleHidden                     Hotkey
	TableView, IconView, TreeView    Hotkey
	PlayPause, NextPage, PrevPage    Hotkey
	Escape                           Hotkey
}

func NewHotkeyMatcher(cfg HotkeysConfig) *HotkeyMatcher {
	return &HotkeyMatcher{
		Back:          ParseHotkey(cfg.Back),
		Forward:       ParseHotkey(cfg.Forward),
		Up:            ParseHotkey(cfg.Up),
		Home:          ParseHotkey(cfg.Home),
		Refresh:       ParseHotkey(cfg.Refresh),
		FocusAddress:  ParseHotkey(cfg.FocusAddress),
		TogglePreview: ParseHotkey(cfg.TogglePreview),
		ToggleHidden:  ParseHotkey(cfg.ToggleHidden),
		TableView:     ParseHotkey(cfg.TableView),
		IconView:      ParseHotkey(cfg.IconView),
		TreeView:      ParseHotkey(cfg.TreeView),
		PlayPause:     ParseHotkey(cfg.PlayPause),
		NextPage:      ParseHotkey(cfg.NextPage),
		PrevPage:      ParseHotkey(cfg.PrevPage),
		Escape:        ParseHotkey(cfg.Escape),
	}
}

// All lists every binding, for building input filters.
func (m *HotkeyMatcher) All() []Hotkey {
	return []Hotkey{
		m.Back, m.Forward, m.Up, m.Home, m.Refresh,
		m.FocusAddress, m.TogglePreview, m.ToggleHidden,
		m.TableView, m.IconView, m.TreeView,
		m.PlayPause, m.NextPage, m.PrevPage, m.Escape,
	}
}
