//go:build !debug

// Package debug is vista's categorized logger. This is the release build,
// where every call compiles to nothing.
package debug

const Enabled = false

type Category string

const (
	APP      Category = "APP"
	FS       Category = "FS"
	NAV      Category = "NAV"
	PREVIEW  Category = "PREVIEW"
	CONVERT  Category = "CONVERT"
	STORE    Category = "STORE"
	UI       Category = "UI"
	FS_ENTRY Category = "FS_ENTRY"
	UI_EVENT Category = "UI_EVENT"
)

func Log(cat Category, format string, args ...any) {}

func Enable(cat Category) {}

func Disable(cat Category) {}

func IsEnabled(cat Category) bool { return false }

func SetAll(on bool) {}

// Errorf returns err unchanged.
func Errorf(cat Category, context string, err error) error { return err }
