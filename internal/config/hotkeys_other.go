//go:build !darwin

package config

// DefaultHotkeys uses Alt for navigation, the Windows and Linux convention.
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		Back:          "Alt+Left",
		Forward:       "Alt+Right",
		Up:            "Alt+Up",
		Home:          "Alt+Home",
		Refresh:       "F5",
		FocusAddress:  "Ctrl+L",
		TogglePreview: "Ctrl+P",
		ToggleHidden:  "Ctrl+H",
		TableView:     "Ctrl+1",
		IconView:      "Ctrl+2",
		TreeView:      "Ctrl+3",
		PlayPause:     "Space",
		NextPage:      "PageDown",
		PrevPage:      "PageUp",
		Escape:        "Escape",
	}
}
