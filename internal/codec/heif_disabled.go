//go:build !heif

package codec

import (
	"image"
	"io"
)

// The HEIF codec is a cgo binding to libheif and is only compiled in when
// building with -tags heif.

func heifAvailable() bool { return false }

func decodeHEIF(io.Reader) (*DecodedImage, error) {
	return nil, ErrHEIFUnavailable
}

func encodeHEIF(string, image.Image, int) error {
	return ErrHEIFUnavailable
}
