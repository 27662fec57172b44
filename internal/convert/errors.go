package convert

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoConverter means no usable office converter was found.
	ErrNoConverter = errors.New("no office converter available")
	// ErrTimeout means the converter did not start or finish in time and
	// was killed.
	ErrTimeout = errors.New("conversion timed out")
	// ErrFailed means the converter ran but no artifact appeared.
	ErrFailed = errors.New("conversion failed")
)

// InstallHints lists the converters users can install.
var InstallHints = []string{
	"unoconv (apt install unoconv)",
	"LibreOffice (apt install libreoffice)",
	"pandoc (apt install pandoc)",
	"WPS Office",
	"OnlyOffice Desktop Editors",
}

func noConverterError(format Format) error {
	return fmt.Errorf("%w for %s; install one of:\n  %s",
		ErrNoConverter, format, strings.Join(InstallHints, "\n  "))
}

// ConversionError carries the tool and its captured output. It matches
// ErrTimeout or ErrFailed through errors.Is.
type ConversionError struct {
	Tool   string
	Source string
	Output string
	Kind   error // ErrTimeout or ErrFailed
	Cause  error // exec error, may be nil
}

func (e *ConversionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %v", e.Tool, e.Kind)
	if e.Cause != nil {
		fmt.Fprintf(&b, " (%v)", e.Cause)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		b.WriteString("\n")
		b.WriteString(out)
	}
	return b.String()
}

func (e *ConversionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
