package ui

import (
	"testing"
	"time"
)

func TestToastExpires(t *testing.T) {
	var r Renderer
	r.ShowError("conversion failed")

	msg, kind, expires := r.activeToast(time.Now())
	if msg != "conversion failed" || kind != ToastError {
		t.Fatalf("activeToast = %q, %v", msg, kind)
	}
	if msg, _, _ := r.activeToast(expires); msg != "" {
		t.Errorf("toast still shown at expiry: %q", msg)
	}
	// Expired toasts stay gone.
	if msg, _, _ := r.activeToast(time.Now()); msg != "" {
		t.Errorf("expired toast came back: %q", msg)
	}
}

func TestToastReplaces(t *testing.T) {
	var r Renderer
	r.ShowToast("first", ToastInfo)
	r.ShowSuccess("second")
	msg, kind, _ := r.activeToast(time.Now())
	if msg != "second" || kind != ToastSuccess {
		t.Errorf("activeToast = %q, %v, want second/success", msg, kind)
	}
}
