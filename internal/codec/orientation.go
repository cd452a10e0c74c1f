package codec

import (
	"image"
	"io"
	"strconv"

	exif "github.com/dsoprea/go-exif/v3"
)

// applyOrientation rewrites img per the EXIF Orientation tag found in rs.
// Files without EXIF, or with the normal orientation, pass through unchanged.
func applyOrientation(rs io.ReadSeeker, img image.Image) image.Image {
	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		return img
	}

	orientation := 1
	for _, tag := range tags {
		if tag.TagName != "Orientation" {
			continue
		}
		switch v := tag.Value.(type) {
		case []uint16:
			if len(v) > 0 {
				orientation = int(v[0])
			}
		default:
			if n, err := strconv.Atoi(tag.FormattedFirst); err == nil {
				orientation = n
			}
		}
		break
	}

	switch orientation {
	case 2:
		return remap(img, flipH)
	case 3:
		return remap(img, rotate180)
	case 4:
		return remap(img, flipV)
	case 5:
		return remap(img, transpose)
	case 6:
		return remap(img, rotate90)
	case 7:
		return remap(img, transverse)
	case 8:
		return remap(img, rotate270)
	default:
		return img
	}
}

// mapping takes source dimensions and a destination coordinate and returns
// the source coordinate to sample, plus whether the axes swap.
type mapping struct {
	swap bool
	at   func(w, h, x, y int) (int, int)
}

var (
	flipH      = mapping{at: func(w, h, x, y int) (int, int) { return w - 1 - x, y }}
	flipV      = mapping{at: func(w, h, x, y int) (int, int) { return x, h - 1 - y }}
	rotate180  = mapping{at: func(w, h, x, y int) (int, int) { return w - 1 - x, h - 1 - y }}
	rotate90   = mapping{swap: true, at: func(w, h, x, y int) (int, int) { return x, h - 1 - y }}
	rotate270  = mapping{swap: true, at: func(w, h, x, y int) (int, int) { return w - 1 - x, y }}
	transpose  = mapping{swap: true, at: func(w, h, x, y int) (int, int) { return x, y }}
	transverse = mapping{swap: true, at: func(w, h, x, y int) (int, int) { return w - 1 - x, h - 1 - y }}
)

func remap(img image.Image, m mapping) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	dw, dh := w, h
	if m.swap {
		dw, dh = h, w
	}
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))

	for dy := 0; dy < dh; dy++ {
		for dx := 0; dx < dw; dx++ {
			var sx, sy int
			if m.swap {
				// Destination coordinates index the rotated plane.
				sx, sy = m.at(w, h, dy, dx)
			} else {
				sx, sy = m.at(w, h, dx, dy)
			}
			dst.Set(dx, dy, img.At(b.Min.X+sx, b.Min.Y+sy))
		}
	}
	return dst
}
