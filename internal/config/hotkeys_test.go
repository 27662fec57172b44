package config

import (
	"testing"

	"gioui.org/io/key"
)

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		in   string
		want Hotkey
	}{
		{"", Hotkey{}},
		{"F5", Hotkey{Key: key.NameF5}},
		{"Ctrl+L", Hotkey{Key: "L", Modifiers: key.ModCtrl}},
		{"ctrl+shift+n", Hotkey{Key: "N", Modifiers: key.ModCtrl | key.ModShift}},
		{"Alt+Left", Hotkey{Key: key.NameLeftArrow, Modifiers: key.ModAlt}},
		{"Cmd+[", Hotkey{Key: "[", Modifiers: key.ModCommand}},
		{"Space", Hotkey{Key: key.NameSpace}},
		{"PageDown", Hotkey{Key: key.NamePageDown}},
		{"Esc", Hotkey{Key: key.NameEscape}},
	}
	for _, tt := range tests {
		if got := ParseHotkey(tt.in); got != tt.want {
			t.Errorf("ParseHotkey(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestHotkeyMatchesExactModifiers(t *testing.T) {
	h := ParseHotkey("Ctrl+H")
	if !h.Matches(key.Event{Name: "H", Modifiers: key.ModCtrl}) {
		t.Error("Ctrl+H should match")
	}
	if h.Matches(key.Event{Name: "H", Modifiers: key.ModCtrl | key.ModShift}) {
		t.Error("Ctrl+Shift+H should not match Ctrl+H")
	}
	if (Hotkey{}).Matches(key.Event{Name: ""}) {
		t.Error("empty hotkey matched")
	}
}

func TestHotkeyString(t *testing.T) {
	if got := ParseHotkey("shift+ctrl+n").String(); got != "Ctrl+Shift+N" {
		t.Errorf("String() = %q", got)
	}
}

func TestDefaultHotkeysAllParse(t *testing.T) {
	m := NewHotkeyMatcher(DefaultHotkeys())
	for i, h := range m.All() {
		if h.IsEmpty() {
			t.Errorf("default hotkey %d is empty", i)
		}
	}
}
