package app

import (
	"sync"

	"gioui.org/app"

	"github.com/justyntemme/vista/internal/config"
	"github.com/justyntemme/vista/internal/fs"
	"github.com/justyntemme/vista/internal/ui"
	"github.com/justyntemme/vista/internal/view"
)

// SharedDeps holds the collaborators the controllers share. Controllers
// keep a pointer to it rather than copying fields.
type SharedDeps struct {
	Window *app.Window
	FS     *fs.System
	UI     *ui.Renderer
	Config *config.Manager
	Thumbs *ui.ThumbnailCache
	Home   string
}

// invalidate asks for a frame. Safe from any goroutine.
func (d *SharedDeps) invalidate() {
	if d.Window != nil {
		d.Window.Invalidate()
	}
}

// SharedState is the mutable state the frame loop and the worker
// goroutines both touch. Mu guards every field.
type SharedState struct {
	Mu sync.Mutex

	// State is what the renderer draws.
	State *ui.State

	// View owns the listing behind State.Entries.
	View *view.Controller
}

// rebuildEntries copies the active surface into the UI state, keeping the
// selection on the same path when it is still listed. Mu must be held.
func (s *SharedState) rebuildEntries() {
	var selected string
	if sel := s.State.Selected(); sel != nil {
		selected = sel.Path
	}
	s.State.Entries = ui.NewEntries(s.View.Rows())
	s.State.SelectedIndex = -1
	if selected != "" {
		for i := range s.State.Entries {
			if s.State.Entries[i].Path == selected {
				s.State.SelectedIndex = i
				break
			}
		}
	}
	s.State.Mode = s.View.Mode()
	s.State.Sort = s.View.Sort()
	s.State.Columns = s.View.Columns()
	s.State.Thumbnails = s.View.Thumbnails()
	s.State.ShowHidden = s.View.ShowHidden()
}
