package transform

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"squish/internal/codec"
)

// Resolution is a target size in pixels. The absence of a Resolution means
// "keep the original size"; width and height are always both set.
type Resolution struct {
	Width  int
	Height int
}

// AspectPolicy selects how a frame is fitted to a target Resolution.
type AspectPolicy int

const (
	// PolicyFit shrinks the image to fit inside the target bounding box,
	// preserving the aspect ratio. It never upscales.
	PolicyFit AspectPolicy = iota
	// PolicyForced resizes to the exact target dimensions, distorting the
	// aspect ratio if needed.
	PolicyForced
)

func (p AspectPolicy) String() string {
	if p == PolicyForced {
		return "exact (aspect ratio forced)"
	}
	return "fit (aspect ratio preserved)"
}

// resizeFrame scales one frame per the policy. Palette frames are promoted
// to RGBA first: palette transparency is an index-table property that the
// scaling filter would not interpret.
func resizeFrame(fr codec.Frame, res Resolution, policy AspectPolicy) codec.Frame {
	if fr.Mode == codec.ModePalette {
		fr = toRGBA(fr)
	}

	b := fr.Image.Bounds()
	var tw, th int
	if policy == PolicyForced {
		tw, th = res.Width, res.Height
	} else {
		tw, th = fitWithin(b.Dx(), b.Dy(), res)
		if tw == b.Dx() && th == b.Dy() {
			return fr
		}
	}

	var dst xdraw.Image
	mode := fr.Mode
	if fr.Mode == codec.ModeGrayscale {
		dst = image.NewGray(image.Rect(0, 0, tw, th))
	} else {
		dst = image.NewNRGBA(image.Rect(0, 0, tw, th))
		if !fr.Mode.HasAlpha() {
			mode = codec.ModeRGB
		} else {
			mode = codec.ModeRGBA
		}
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), fr.Image, b, xdraw.Src, nil)

	return codec.Frame{Image: dst, Mode: mode, DurationMS: fr.DurationMS}
}

// fitWithin computes the largest size at or below (w, h) that fits in res
// with the original ratio. Images already inside the box keep their size.
func fitWithin(w, h int, res Resolution) (int, int) {
	scale := math.Min(float64(res.Width)/float64(w), float64(res.Height)/float64(h))
	if scale >= 1 {
		return w, h
	}
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}
