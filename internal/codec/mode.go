package codec

import "image"

// ColorMode classifies how a frame's pixels are represented. It drives the
// conversions needed before encoding to a given target format.
type ColorMode int

const (
	ModeOther ColorMode = iota
	ModeRGB
	ModeRGBA
	ModePalette
	ModeGrayscale
	ModeGrayscaleAlpha
)

func (m ColorMode) String() string {
	switch m {
	case ModeRGB:
		return "RGB"
	case ModeRGBA:
		return "RGBA"
	case ModePalette:
		return "palette"
	case ModeGrayscale:
		return "grayscale"
	case ModeGrayscaleAlpha:
		return "grayscale+alpha"
	default:
		return "other"
	}
}

// HasAlpha reports whether the mode carries per-pixel transparency.
func (m ColorMode) HasAlpha() bool {
	return m == ModeRGBA || m == ModeGrayscaleAlpha
}

// ModeOf classifies a decoded image by its concrete pixel representation.
func ModeOf(img image.Image) ColorMode {
	switch img.(type) {
	case *image.Paletted:
		return ModePalette
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64:
		return ModeRGBA
	case *image.Gray, *image.Gray16:
		return ModeGrayscale
	case *image.YCbCr:
		return ModeRGB
	default:
		return ModeOther
	}
}

// PaletteHasTransparency reports whether any palette entry is not fully
// opaque. Palette transparency lives in the color table, not in the pixels,
// so it needs promotion to true alpha before resizing or flattening.
func PaletteHasTransparency(p *image.Paletted) bool {
	for _, c := range p.Palette {
		_, _, _, a := c.RGBA()
		if a < 0xffff {
			return true
		}
	}
	return false
}
