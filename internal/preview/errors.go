package preview

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/justyntemme/vista/internal/convert"
	"github.com/justyntemme/vista/internal/fs"
)

var (
	// ErrNotFound means the selected path vanished before it was opened.
	ErrNotFound = fmt.Errorf("file %w", fs.ErrNotFound)
	// ErrUnsupported means no viewer handles the file.
	ErrUnsupported = errors.New("unsupported format")
	// ErrLoadFailed means a viewer could not decode the file.
	ErrLoadFailed = errors.New("cannot load preview")
)

func loadFailed(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrLoadFailed, what, err)
}

func statError(path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return loadFailed(path, err)
}

// Message renders err for the details surface.
func Message(err error) string {
	var ce *convert.ConversionError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "This file no longer exists."
	case errors.Is(err, ErrUnsupported):
		return "No preview is available for this file type."
	case errors.Is(err, convert.ErrNoConverter):
		return "No office converter was found. Install one of:\n  " +
			strings.Join(convert.InstallHints, "\n  ")
	case errors.As(err, &ce):
		head := "Conversion failed"
		if errors.Is(err, convert.ErrTimeout) {
			head = "Conversion timed out"
		}
		msg := fmt.Sprintf("%s (%s).", head, ce.Tool)
		if out := strings.TrimSpace(ce.Output); out != "" {
			msg += "\n" + out
		}
		return msg
	case errors.Is(err, convert.ErrTimeout):
		return "Conversion timed out."
	}
	return err.Error()
}
