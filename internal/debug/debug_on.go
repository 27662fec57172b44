//go:build debug

// Package debug is vista's categorized logger. It is compiled in only with
// -tags debug; release builds get the no-op version in debug_off.go.
package debug

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	APP     Category = "APP"     // Orchestration, window lifecycle
	FS      Category = "FS"      // Listing, stat, drives, watcher
	NAV     Category = "NAV"     // History, breadcrumb, address bar
	PREVIEW Category = "PREVIEW" // Preview dispatch and viewers
	CONVERT Category = "CONVERT" // Office conversion and cache
	STORE   Category = "STORE"   // Conversion index database
	UI      Category = "UI"      // UI events, layout, rendering

	// Verbose
	FS_ENTRY Category = "FS_ENTRY" // Per-entry listing details
	UI_EVENT Category = "UI_EVENT" // Pointer and key events
)

var (
	// enabledCategories controls which categories are active
	// By default, all main categories are enabled
	enabledCategories = map[Category]bool{
		APP:     true,
		FS:      true,
		NAV:     true,
		PREVIEW: true,
		CONVERT: true,
		STORE:   true,
		UI:      true,
		// Verbose categories disabled by default
		FS_ENTRY: false,
		UI_EVENT: false,
	}
	categoryMu sync.RWMutex

	// Output destination
	logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
)

func init() {
	// VISTA_DEBUG=APP,CONVERT or VISTA_DEBUG=all or VISTA_DEBUG=none
	if env := os.Getenv("VISTA_DEBUG"); env != "" {
		categoryMu.Lock()
		defer categoryMu.Unlock()

		env = strings.ToUpper(env)
		switch env {
		case "ALL":
			for cat := range enabledCategories {
				enabledCategories[cat] = true
			}
		case "NONE":
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
		default:
			// Disable all first, then enable specified
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
			for _, cat := range strings.Split(env, ",") {
				cat = strings.TrimSpace(cat)
				enabledCategories[Category(cat)] = true
			}
		}
	}
}

// Log writes a message if cat is enabled.
func Log(cat Category, format string, args ...any) {
	categoryMu.RLock()
	enabled := enabledCategories[cat]
	categoryMu.RUnlock()

	if !enabled {
		return
	}

	msg := fmt.Sprintf(format, args...)
	logger.Printf("[%s] %s", cat, msg)
}

// Enable enables a debug category
func Enable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = true
	categoryMu.Unlock()
}

// Disable disables a debug category
func Disable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = false
	categoryMu.Unlock()
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}

// SetAll turns every category, verbose ones included, on or off.
func SetAll(on bool) {
	categoryMu.Lock()
	for cat := range enabledCategories {
		enabledCategories[cat] = on
	}
	categoryMu.Unlock()
}

// Errorf logs err under cat with a short context prefix and returns err
// unchanged, so call sites can log and return in one statement.
func Errorf(cat Category, context string, err error) error {
	if err != nil {
		Log(cat, "%s: %v", context, err)
	}
	return err
}
