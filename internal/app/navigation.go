package app

import (
	"errors"

	"github.com/justyntemme/vista/internal/debug"
	"github.com/justyntemme/vista/internal/fs"
	"github.com/justyntemme/vista/internal/nav"
)

// NavigationController turns navigator changes into listing requests and
// keeps the breadcrumb and history buttons current.
type NavigationController struct {
	deps    *SharedDeps
	state   *SharedState
	nav     *nav.Navigator
	preview *PreviewController
	watcher *DirectoryWatcher // nil when the platform has no watcher

	watched string
}

// NewNavigationController hooks itself into n's change notifications.
func NewNavigationController(deps *SharedDeps, state *SharedState, n *nav.Navigator, p *PreviewController, w *DirectoryWatcher) *NavigationController {
	c := &NavigationController{deps: deps, state: state, nav: n, preview: p, watcher: w}
	n.OnChange = c.onChange
	return c
}

// onChange runs synchronously inside the navigator. The preview is reset
// before the new listing is requested so playback never outlives its
// folder.
func (c *NavigationController) onChange(ch nav.Change) {
	debug.Log(debug.NAV, "Change: %s (%v)", ch.Path, ch.Reason)
	c.preview.Clear()

	c.state.Mu.Lock()
	c.state.State.CurrentPath = ch.Path
	c.state.State.Loading = true
	c.state.State.SelectedIndex = -1
	c.syncLocked()
	showHidden := c.state.View.ShowHidden()
	c.state.Mu.Unlock()

	c.deps.UI.ScrollToTop()
	c.deps.UI.ResetPreviewScroll()
	if c.deps.Thumbs != nil {
		c.deps.Thumbs.Clear()
	}
	c.requestDir(ch.Path, showHidden)
	c.watch(ch.Path)
	c.deps.invalidate()
}

func (c *NavigationController) requestDir(path string, showHidden bool) {
	gen := c.deps.FS.NextGen()
	c.deps.FS.RequestChan <- fs.Request{Op: fs.FetchDir, Path: path, ShowHidden: showHidden, Gen: gen}
}

func (c *NavigationController) watch(path string) {
	if c.watcher == nil || path == c.watched {
		return
	}
	if c.watched != "" {
		c.watcher.Unwatch(c.watched)
	}
	if err := c.watcher.Watch(path); err != nil {
		debug.Log(debug.NAV, "watch %s: %v", path, err)
		c.watched = ""
		return
	}
	c.watched = path
}

// syncLocked copies navigator state into the UI state. Mu must be held.
func (c *NavigationController) syncLocked() {
	s := c.state.State
	s.CanBack = c.nav.CanBack()
	s.CanForward = c.nav.CanForward()
	s.CanUp = c.nav.CanUp()
	s.Breadcrumb = c.nav.Breadcrumb(c.deps.Config.Get().Navigation.BreadcrumbThreshold)
}

// handleFSResponse applies a listing from the worker. Listings older than
// the latest request are dropped.
func (c *NavigationController) handleFSResponse(resp fs.Response) {
	if resp.Op != fs.FetchDir {
		return
	}
	if resp.Gen < c.deps.FS.Latest() {
		debug.Log(debug.NAV, "stale listing for %s (gen %d < %d)", resp.Path, resp.Gen, c.deps.FS.Latest())
		return
	}

	c.state.Mu.Lock()
	c.state.State.Loading = false
	if resp.Err != nil {
		c.state.View.SetListing(resp.Path, nil)
		c.state.rebuildEntries()
		c.state.Mu.Unlock()
		c.deps.UI.ShowError(listError(resp.Path, resp.Err))
		c.deps.invalidate()
		return
	}
	c.state.View.SetListing(resp.Path, resp.Entries)
	c.state.rebuildEntries()
	c.state.Mu.Unlock()
	c.deps.invalidate()
}

func listError(path string, err error) string {
	if errors.Is(err, fs.ErrNotFound) {
		return "Folder no longer exists: " + path
	}
	return "Cannot list " + path + ": " + err.Error()
}

// Refresh re-lists the current folder in place, keeping the sort order,
// the selection and the tree's open folders.
func (c *NavigationController) Refresh() {
	c.state.Mu.Lock()
	err := c.state.View.Refresh()
	c.state.rebuildEntries()
	c.state.Mu.Unlock()
	if err != nil {
		c.deps.UI.ShowError(listError(c.nav.Current(), err))
	}
	c.deps.invalidate()
}

// dirChanged handles a watcher notification.
func (c *NavigationController) dirChanged(path string) {
	if path != c.nav.Current() {
		return
	}
	debug.Log(debug.NAV, "refresh after change in %s", path)
	c.Refresh()
}

func (c *NavigationController) NavigateTo(path string) {
	if err := c.nav.NavigateTo(path); err != nil {
		c.deps.UI.ShowError(err.Error())
	}
}

func (c *NavigationController) SubmitAddress(input string) {
	if err := c.nav.SubmitAddress(input); err != nil {
		c.deps.UI.ShowError(err.Error())
	}
}

func (c *NavigationController) Back() {
	c.nav.GoBack()
}

func (c *NavigationController) Forward() {
	c.nav.GoForward()
}

func (c *NavigationController) Up() {
	if err := c.nav.GoUp(); err != nil {
		c.deps.UI.ShowError(err.Error())
	}
}

func (c *NavigationController) Home() {
	c.NavigateTo(c.nav.Home())
}
