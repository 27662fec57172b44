//go:build !linux

package preview

import (
	"errors"
	"image"
	"io"
)

// goheif needs cgo with libde265, which is only set up for linux builds.
func decodeHEIC(io.Reader) (image.Image, error) {
	return nil, errors.New("HEIC decoding not supported on this platform")
}

func heicSupported() bool {
	return false
}
