//go:build darwin

package config

// DefaultHotkeys uses Cmd, the macOS convention.
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		Back:          "Cmd+[",
		Forward:       "Cmd+]",
		Up:            "Cmd+Up",
		Home:          "Cmd+Shift+H",
		Refresh:       "Cmd+R",
		FocusAddress:  "Cmd+L",
		TogglePreview: "Cmd+P",
		ToggleHidden:  "Cmd+Shift+.",
		TableView:     "Cmd+1",
		IconView:      "Cmd+2",
		TreeView:      "Cmd+3",
		PlayPause:     "Space",
		NextPage:      "PageDown",
		PrevPage:      "PageUp",
		Escape:        "Escape",
	}
}
