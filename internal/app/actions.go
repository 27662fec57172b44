package app

import (
	"github.com/justyntemme/vista/internal/config"
	"github.com/justyntemme/vista/internal/debug"
	"github.com/justyntemme/vista/internal/ui"
)

// handleUIEvent applies the action the renderer returned for a frame.
func (o *Orchestrator) handleUIEvent(evt ui.UIEvent) {
	switch evt.Action {
	case ui.ActionNavigate:
		o.nav.NavigateTo(evt.Path)
	case ui.ActionBack:
		o.nav.Back()
	case ui.ActionForward:
		o.nav.Forward()
	case ui.ActionUp:
		o.nav.Up()
	case ui.ActionHome:
		o.nav.Home()
	case ui.ActionSubmitAddress:
		o.nav.SubmitAddress(evt.Path)
	case ui.ActionRefresh:
		o.deps.Thumbs.Clear()
		o.nav.Refresh()

	case ui.ActionSelect:
		o.selectEntry(evt.NewIndex)
	case ui.ActionOpen:
		if err := platformOpen(evt.Path); err != nil {
			debug.Log(debug.APP, "open %s: %v", evt.Path, err)
			o.deps.UI.ShowError("Cannot open " + evt.Path + ": " + err.Error())
		}

	case ui.ActionSetMode:
		o.updateView(func() error {
			o.shared.View.SetMode(evt.Mode)
			return nil
		})
		o.cfg.Update(func(c *config.Config) { c.View.Mode = evt.Mode.String() })
	case ui.ActionSort:
		o.updateView(func() error {
			o.shared.View.ToggleSort(evt.Column)
			return nil
		})
		sort := o.shared.View.Sort()
		o.cfg.Update(func(c *config.Config) {
			c.View.DefaultSort = sort.Column.String()
			c.View.SortAscending = sort.Ascending
		})
	case ui.ActionToggleExpand:
		o.updateView(func() error { return o.shared.View.ToggleExpand(evt.Path) })
	case ui.ActionToggleHidden:
		var on bool
		o.updateView(func() error {
			on = !o.shared.View.ShowHidden()
			return o.shared.View.SetShowHidden(on)
		})
		o.cfg.Update(func(c *config.Config) { c.View.ShowDotfiles = on })
	case ui.ActionToggleThumbnails:
		var on bool
		o.updateView(func() error {
			on = !o.shared.View.Thumbnails()
			o.shared.View.SetThumbnails(on)
			return nil
		})
		o.cfg.Update(func(c *config.Config) { c.View.Thumbnails = on })

	case ui.ActionTogglePreview:
		o.togglePreview()
	case ui.ActionClearCache:
		o.clearCache()

	case ui.ActionPreviewScroll, ui.ActionPreviewPan, ui.ActionImageFit,
		ui.ActionPDFPrev, ui.ActionPDFNext, ui.ActionPDFZoomIn, ui.ActionPDFZoomOut,
		ui.ActionPDFFit, ui.ActionPDFA4,
		ui.ActionMediaToggle, ui.ActionMediaStop, ui.ActionMediaSeek, ui.ActionMediaVolume:
		o.preview.handle(evt)
	}
}

// updateView runs fn against the view controller and republishes the rows.
func (o *Orchestrator) updateView(fn func() error) {
	o.shared.Mu.Lock()
	err := fn()
	o.shared.rebuildEntries()
	o.shared.Mu.Unlock()
	if err != nil {
		o.deps.UI.ShowError(err.Error())
	}
	o.window.Invalidate()
}

// selectEntry moves the selection and previews the new entry. A negative
// index clears both.
func (o *Orchestrator) selectEntry(index int) {
	o.shared.Mu.Lock()
	if index >= len(o.state.Entries) {
		index = -1
	}
	o.state.SelectedIndex = index
	var path string
	if sel := o.state.Selected(); sel != nil {
		path = sel.Path
	}
	visible := o.state.PreviewVisible
	o.shared.Mu.Unlock()

	o.deps.UI.ResetPreviewScroll()
	switch {
	case path == "" || !visible:
		o.preview.Clear()
	default:
		o.preview.Select(path)
	}
	o.window.Invalidate()
}

func (o *Orchestrator) togglePreview() {
	o.shared.Mu.Lock()
	o.state.PreviewVisible = !o.state.PreviewVisible
	visible := o.state.PreviewVisible
	var path string
	if sel := o.state.Selected(); sel != nil {
		path = sel.Path
	}
	o.shared.Mu.Unlock()

	if visible && path != "" {
		o.preview.Select(path)
	} else if !visible {
		o.preview.Clear()
	}
	o.cfg.Update(func(c *config.Config) { c.Preview.Enabled = visible })
	o.window.Invalidate()
}

// clearCache empties the conversion cache in the background. The shown
// preview keeps its already-open artifact.
func (o *Orchestrator) clearCache() {
	if o.conv == nil {
		o.deps.UI.ShowError("Office conversion is not available")
		return
	}
	go func() {
		if err := o.conv.ClearCache(); err != nil {
			o.deps.UI.ShowError("Clearing the office cache failed: " + err.Error())
		} else {
			o.deps.UI.ShowSuccess("Office cache cleared")
		}
		o.refreshCacheUsage()
	}()
}
