package ui

import (
	"unicode/utf8"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"

	"github.com/justyntemme/vista/internal/debug"
	"github.com/justyntemme/vista/internal/preview"
	"github.com/justyntemme/vista/internal/view"
)

// listKeys are handled regardless of the configured hotkeys.
var listKeys = []key.Name{
	key.NameUpArrow, key.NameDownArrow, key.NameLeftArrow, key.NameRightArrow,
	key.NameReturn, key.NameEnter, key.NameDeleteBackward,
}

func (r *Renderer) keyFilters(keyTag event.Tag) []event.Filter {
	type fk struct {
		name key.Name
		mods key.Modifiers
	}
	seen := make(map[fk]bool)
	var filters []event.Filter
	if r.hotkeys != nil {
		for _, hk := range r.hotkeys.All() {
			if hk.IsEmpty() || seen[fk{hk.Key, hk.Modifiers}] {
				continue
			}
			seen[fk{hk.Key, hk.Modifiers}] = true
			filters = append(filters, hk.Filter(keyTag))
		}
	}
	for _, k := range listKeys {
		if !seen[fk{k, 0}] {
			filters = append(filters, key.Filter{Focus: keyTag, Name: k})
		}
	}
	return filters
}

// processGlobalInput turns key presses on the list focus into an event.
func (r *Renderer) processGlobalInput(gtx layout.Context, state *State, keyTag event.Tag) UIEvent {
	if r.isEditing {
		return UIEvent{}
	}
	for {
		e, ok := gtx.Event(r.keyFilters(keyTag)...)
		if !ok {
			break
		}
		k, ok := e.(key.Event)
		if !ok || k.State != key.Press {
			continue
		}
		debug.Log(debug.UI, "Key: name=%q mods=%v", k.Name, k.Modifiers)
		if ev, ok := r.hotkeyEvent(gtx, k, state); ok {
			return ev
		}
		if ev, ok := r.listKeyEvent(k, state); ok {
			return ev
		}
	}
	return UIEvent{}
}

func (r *Renderer) hotkeyEvent(gtx layout.Context, k key.Event, state *State) (UIEvent, bool) {
	h := r.hotkeys
	if h == nil {
		return UIEvent{}, false
	}
	pv := state.Preview
	switch {
	case h.Back.Matches(k) && state.CanBack:
		return UIEvent{Action: ActionBack}, true
	case h.Forward.Matches(k) && state.CanForward:
		return UIEvent{Action: ActionForward}, true
	case h.Up.Matches(k) && state.CanUp:
		return UIEvent{Action: ActionUp}, true
	case h.Home.Matches(k):
		return UIEvent{Action: ActionHome}, true
	case h.Refresh.Matches(k):
		return UIEvent{Action: ActionRefresh}, true
	case h.FocusAddress.Matches(k):
		r.startEditing(gtx, state.CurrentPath)
		return UIEvent{}, true
	case h.TogglePreview.Matches(k):
		return UIEvent{Action: ActionTogglePreview}, true
	case h.ToggleHidden.Matches(k):
		return UIEvent{Action: ActionToggleHidden}, true
	case h.TableView.Matches(k):
		return UIEvent{Action: ActionSetMode, Mode: view.ModeTable}, true
	case h.IconView.Matches(k):
		return UIEvent{Action: ActionSetMode, Mode: view.ModeIcon}, true
	case h.TreeView.Matches(k):
		return UIEvent{Action: ActionSetMode, Mode: view.ModeTree}, true
	case h.PlayPause.Matches(k) && pv.State == preview.Media:
		return UIEvent{Action: ActionMediaToggle}, true
	case h.NextPage.Matches(k) && pv.State == preview.Pdf:
		return UIEvent{Action: ActionPDFNext}, true
	case h.PrevPage.Matches(k) && pv.State == preview.Pdf:
		return UIEvent{Action: ActionPDFPrev}, true
	case h.Escape.Matches(k):
		return UIEvent{Action: ActionSelect, NewIndex: -1}, true
	}
	return UIEvent{}, false
}

func (r *Renderer) listKeyEvent(k key.Event, state *State) (UIEvent, bool) {
	if k.Modifiers != 0 {
		return UIEvent{}, false
	}
	n := len(state.Entries)
	sel := state.Selected()
	switch k.Name {
	case key.NameUpArrow, key.NameDownArrow:
		if n == 0 {
			return UIEvent{}, false
		}
		idx := nextIndex(state.SelectedIndex, n, k.Name == key.NameDownArrow)
		r.scrollTo(state.Mode, idx)
		return UIEvent{Action: ActionSelect, NewIndex: idx}, true
	case key.NameRightArrow, key.NameLeftArrow:
		// Tree rows expand right and collapse left.
		if state.Mode != view.ModeTree || sel == nil || !sel.IsDir {
			return UIEvent{}, false
		}
		if sel.Expanded == (k.Name == key.NameRightArrow) {
			return UIEvent{}, false
		}
		return UIEvent{Action: ActionToggleExpand, Path: sel.Path}, true
	case key.NameReturn, key.NameEnter:
		if sel == nil {
			return UIEvent{}, false
		}
		return openEvent(sel), true
	case key.NameDeleteBackward:
		if state.CanBack {
			return UIEvent{Action: ActionBack}, true
		}
	}
	return UIEvent{}, false
}

// nextIndex moves the selection one step, starting from the nearest end
// when nothing is selected.
func nextIndex(cur, n int, down bool) int {
	switch {
	case cur < 0 || cur >= n:
		if down {
			return 0
		}
		return n - 1
	case down:
		return min(cur+1, n-1)
	}
	return max(cur-1, 0)
}

// openEvent enters directories and hands files to the system.
func openEvent(e *UIEntry) UIEvent {
	if e.IsDir {
		return UIEvent{Action: ActionNavigate, Path: e.Path}
	}
	return UIEvent{Action: ActionOpen, Path: e.Path}
}

func (r *Renderer) scrollTo(m view.Mode, idx int) {
	if m == view.ModeIcon {
		// The grid list scrolls by row.
		r.gridState.ScrollTo(idx / max(1, r.gridColumns))
		return
	}
	r.listState.ScrollTo(idx)
}

func (r *Renderer) startEditing(gtx layout.Context, path string) {
	r.isEditing = true
	r.pathEditor.SetText(path)
	n := utf8.RuneCountInString(path)
	r.pathEditor.SetCaret(n, n)
	gtx.Execute(key.FocusCmd{Tag: &r.pathEditor})
}
