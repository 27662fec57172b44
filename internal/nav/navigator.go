package nav

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/justyntemme/vista/internal/debug"
)

var (
	ErrNotFound = errors.New("path does not exist")
	ErrNotDir   = errors.New("not a directory")
)

// Reason says what caused a directory change.
type Reason int

const (
	ReasonNavigate Reason = iota
	ReasonBack
	ReasonForward
	ReasonUp
)

func (r Reason) String() string {
	switch r {
	case ReasonBack:
		return "back"
	case ReasonForward:
		return "forward"
	case ReasonUp:
		return "up"
	}
	return "navigate"
}

// Change is delivered to the OnChange hook after the current directory moves.
type Change struct {
	Path   string
	Reason Reason
}

// Navigator validates targets against the filesystem, records them in
// History and tells the view and preview layers about the new root.
type Navigator struct {
	history *History
	home    string

	// OnChange runs after every successful directory change. The orchestrator
	// uses it to re-root the views and reset the preview.
	OnChange func(Change)

	stat func(string) (os.FileInfo, error)
}

// NewNavigator returns a navigator with an empty history.
func NewNavigator(home string, maxHistory int) *Navigator {
	return &Navigator{
		history: NewHistory(maxHistory),
		home:    home,
		stat:    os.Stat,
	}
}

// History exposes the underlying stack for read-only inspection.
func (n *Navigator) History() *History { return n.history }

// Current returns the directory being displayed.
func (n *Navigator) Current() string { return n.history.Current() }

// Home returns the user's home directory.
func (n *Navigator) Home() string { return n.home }

// CheckDir returns nil if path is an existing directory.
func (n *Navigator) CheckDir(path string) error {
	info, err := n.stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotDir)
	}
	return nil
}

// NavigateTo makes path the current directory. The path must exist as a
// directory; navigating to the current directory does nothing. A relative
// path is taken against the working directory.
func (n *Navigator) NavigateTo(path string) error {
	return n.navigate(path, ReasonNavigate)
}

func (n *Navigator) navigate(path string, reason Reason) error {
	// History only holds absolute paths; Abs also cleans.
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	path = abs
	if err := n.CheckDir(path); err != nil {
		debug.Log(debug.NAV, "Navigate rejected: %v", err)
		return err
	}
	if !n.history.Navigate(path) {
		return nil
	}
	debug.Log(debug.NAV, "Navigate (%s) -> %s [%d/%d]", reason, path, n.history.Index(), n.history.Len())
	n.emit(path, reason)
	return nil
}

// GoBack moves to the previous directory without changing the recorded
// entries. It returns false when there is nothing to go back to.
func (n *Navigator) GoBack() bool {
	path, ok := n.history.Back()
	if !ok {
		return false
	}
	debug.Log(debug.NAV, "Back -> %s", path)
	n.emit(path, ReasonBack)
	return true
}

// GoForward is the mirror of GoBack.
func (n *Navigator) GoForward() bool {
	path, ok := n.history.Forward()
	if !ok {
		return false
	}
	debug.Log(debug.NAV, "Forward -> %s", path)
	n.emit(path, ReasonForward)
	return true
}

// GoUp navigates to the parent of the current directory, recording it in
// history like any other navigation.
func (n *Navigator) GoUp() error {
	parent, ok := Parent(n.Current())
	if !ok {
		return nil
	}
	return n.navigate(parent, ReasonUp)
}

func (n *Navigator) CanBack() bool    { return n.history.CanBack() }
func (n *Navigator) CanForward() bool { return n.history.CanForward() }

// CanUp reports whether the current directory has a parent.
func (n *Navigator) CanUp() bool {
	_, ok := Parent(n.Current())
	return ok
}

// Breadcrumb builds the breadcrumb for the current directory.
func (n *Navigator) Breadcrumb(threshold int) Breadcrumb {
	return BuildBreadcrumb(n.Current(), threshold)
}

// SubmitAddress handles text typed into the address field. Input is
// expanded relative to the current directory. On failure the history is
// untouched and the caller should restore the field to Current().
func (n *Navigator) SubmitAddress(input string) error {
	return n.NavigateTo(n.ExpandPath(input))
}

func (n *Navigator) emit(path string, reason Reason) {
	if n.OnChange != nil {
		n.OnChange(Change{Path: path, Reason: reason})
	}
}

// Parent returns the parent directory of path and whether one exists.
// The filesystem root has no parent.
func Parent(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	clean := filepath.Clean(path)
	parent := filepath.Dir(clean)
	if parent == clean {
		return "", false
	}
	return parent, true
}

// ExpandPath expands and normalizes a path string, handling:
// - ~ for home directory
// - Relative paths (../, ./)
// - Absolute paths
// - Windows drive letters (C:, D:, etc.)
func (n *Navigator) ExpandPath(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return n.Current()
	}

	if input == "~" {
		return n.home
	}
	if strings.HasPrefix(input, "~/") || strings.HasPrefix(input, "~\\") {
		return filepath.Clean(filepath.Join(n.home, input[2:]))
	}

	if isAbsolutePath(input) {
		return filepath.Clean(input)
	}

	base := n.Current()
	if base == "" {
		base = n.home
	}
	return filepath.Clean(filepath.Join(base, input))
}

// isAbsolutePath checks if a path is absolute, handling both Unix and Windows paths.
func isAbsolutePath(path string) bool {
	if len(path) == 0 {
		return false
	}

	if path[0] == '/' {
		return true
	}

	if runtime.GOOS == "windows" {
		// Drive letter paths: C:\, D:\, C:/, etc.
		if len(path) >= 2 && isLetter(path[0]) && path[1] == ':' {
			return true
		}
		// UNC paths: \\server\share
		if len(path) >= 2 && path[0] == '\\' && path[1] == '\\' {
			return true
		}
	}

	return false
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
