// Package nav holds the directory history, breadcrumb model and the
// navigator that ties them to the filesystem.
package nav

// DefaultMaxHistory bounds History when no limit is given.
const DefaultMaxHistory = 100

// History is a linear back/forward stack of visited directories.
type History struct {
	entries []string
	index   int // -1 when empty
	max     int
}

// NewHistory returns an empty history holding at most max entries.
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultMaxHistory
	}
	return &History{index: -1, max: max}
}

// Navigate records path as the current entry. Re-navigating to the current
// entry is a no-op and returns false. When the pointer is not at the tail
// the forward entries are discarded first.
func (h *History) Navigate(path string) bool {
	if h.index >= 0 && h.entries[h.index] == path {
		return false
	}
	if h.index < len(h.entries)-1 {
		h.entries = h.entries[:h.index+1]
	}
	h.entries = append(h.entries, path)
	h.index = len(h.entries) - 1

	if len(h.entries) > h.max {
		excess := len(h.entries) - h.max
		h.entries = append(h.entries[:0:0], h.entries[excess:]...)
		h.index -= excess
	}
	return true
}

// Back moves the pointer one entry back and returns the new current path.
func (h *History) Back() (string, bool) {
	if !h.CanBack() {
		return "", false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward moves the pointer one entry forward and returns the new current path.
func (h *History) Forward() (string, bool) {
	if !h.CanForward() {
		return "", false
	}
	h.index++
	return h.entries[h.index], true
}

func (h *History) CanBack() bool { return h.index > 0 }

func (h *History) CanForward() bool {
	return h.index >= 0 && h.index < len(h.entries)-1
}

// Current returns the current entry, or "" when empty.
func (h *History) Current() string {
	if h.index < 0 || h.index >= len(h.entries) {
		return ""
	}
	return h.entries[h.index]
}

// Index returns the current position, -1 when empty.
func (h *History) Index() int {
	return h.index
}

func (h *History) Len() int { return len(h.entries) }

// Entries returns a copy of the recorded paths, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}
