package nav

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

func TestHistoryNavigate(t *testing.T) {
	h := NewHistory(0)
	if h.Index() != -1 || h.Current() != "" {
		t.Fatalf("empty history: index=%d current=%q", h.Index(), h.Current())
	}
	h.Navigate("/a")
	h.Navigate("/b")
	if changed := h.Navigate("/b"); changed {
		t.Error("re-navigating to the current entry should be a no-op")
	}
	if got := h.Entries(); !reflect.DeepEqual(got, []string{"/a", "/b"}) {
		t.Errorf("entries = %v", got)
	}
	if h.Index() != 1 || h.Current() != "/b" {
		t.Errorf("index=%d current=%q", h.Index(), h.Current())
	}
}

func TestHistoryPrunesRedoBranch(t *testing.T) {
	h := NewHistory(0)
	for _, p := range []string{"A", "B", "C"} {
		h.Navigate(p)
	}
	h.Back()
	h.Back()
	h.Navigate("D")
	if got := h.Entries(); !reflect.DeepEqual(got, []string{"A", "D"}) {
		t.Errorf("entries = %v, want [A D]", got)
	}
	if h.Index() != 1 {
		t.Errorf("index = %d, want 1", h.Index())
	}
	if h.CanForward() {
		t.Error("forward should be disabled after pruning")
	}
}

func TestHistoryBackForwardRoundTrip(t *testing.T) {
	h := NewHistory(0)
	for _, p := range []string{"A", "B", "C", "D"} {
		h.Navigate(p)
	}
	for _, start := range []int{3, 2, 1} {
		for h.Index() > start {
			h.Back()
		}
		idx, cur := h.Index(), h.Current()
		if _, ok := h.Back(); !ok {
			t.Fatalf("Back failed at %d", idx)
		}
		if _, ok := h.Forward(); !ok {
			t.Fatalf("Forward failed at %d", h.Index())
		}
		if h.Index() != idx || h.Current() != cur {
			t.Errorf("round trip from %d: got (%d, %q), want (%d, %q)", start, h.Index(), h.Current(), idx, cur)
		}
	}
}

func TestHistoryBounds(t *testing.T) {
	h := NewHistory(0)
	if _, ok := h.Back(); ok {
		t.Error("Back on empty history succeeded")
	}
	if _, ok := h.Forward(); ok {
		t.Error("Forward on empty history succeeded")
	}
	h.Navigate("A")
	if h.CanBack() || h.CanForward() {
		t.Error("single entry must disable back and forward")
	}
}

func TestHistoryMaxSize(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 10; i++ {
		h.Navigate(fmt.Sprint(i))
	}
	if got := h.Entries(); !reflect.DeepEqual(got, []string{"7", "8", "9"}) {
		t.Errorf("entries = %v", got)
	}
	if h.Index() != 2 || h.Current() != "9" {
		t.Errorf("index=%d current=%q", h.Index(), h.Current())
	}
}

// Random walks over the operations must keep the index inside entries and
// point it at the last navigated path after every Navigate.
func TestHistoryIndexInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	h := NewHistory(20)
	for step := 0; step < 2000; step++ {
		switch rng.Intn(3) {
		case 0:
			p := fmt.Sprint("/d", rng.Intn(6))
			h.Navigate(p)
			if h.Current() != p {
				t.Fatalf("step %d: current %q after Navigate(%q)", step, h.Current(), p)
			}
		case 1:
			h.Back()
		case 2:
			h.Forward()
		}
		if h.Len() > 0 && (h.Index() < 0 || h.Index() >= h.Len()) {
			t.Fatalf("step %d: index %d out of [0,%d)", step, h.Index(), h.Len())
		}
		if h.CanBack() != (h.Index() > 0) || h.CanForward() != (h.Index() < h.Len()-1) {
			t.Fatalf("step %d: availability flags disagree with index", step)
		}
		entries := h.Entries()
		for i := 1; i < len(entries); i++ {
			if entries[i] == entries[i-1] {
				t.Fatalf("step %d: adjacent duplicate %q in %v", step, entries[i], entries)
			}
		}
	}
}
