package transform

import (
	"image"
	"image/color"
	"image/draw"

	"squish/internal/codec"
)

// toRGBA redraws a frame into a true-alpha RGBA plane.
func toRGBA(fr codec.Frame) codec.Frame {
	b := fr.Image.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), fr.Image, b.Min, draw.Src)
	return codec.Frame{Image: dst, Mode: codec.ModeRGBA, DurationMS: fr.DurationMS}
}

// toRGB drops the alpha channel, keeping the stored color values.
func toRGB(fr codec.Frame) codec.Frame {
	b := fr.Image.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(fr.Image.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			c.A = 0xff
			dst.SetNRGBA(x, y, c)
		}
	}
	return codec.Frame{Image: dst, Mode: codec.ModeRGB, DurationMS: fr.DurationMS}
}

// flattenForJPEG makes a frame alpha-free for JPEG encoding. Palette frames
// with a transparency entry go through RGBA first so the flatten sees true
// alpha rather than palette indices.
func flattenForJPEG(fr codec.Frame) codec.Frame {
	switch fr.Mode {
	case codec.ModePalette:
		if p, ok := fr.Image.(*image.Paletted); ok && codec.PaletteHasTransparency(p) {
			fr = toRGBA(fr)
		}
		return toRGB(fr)
	case codec.ModeRGBA, codec.ModeGrayscaleAlpha:
		return toRGB(fr)
	default:
		return fr
	}
}

// promoteForAPNG gives palette-transparent frames true alpha; APNG encodes
// transparency per pixel, not via a palette entry.
func promoteForAPNG(fr codec.Frame) codec.Frame {
	if fr.Mode != codec.ModePalette {
		return fr
	}
	if p, ok := fr.Image.(*image.Paletted); ok && codec.PaletteHasTransparency(p) {
		return toRGBA(fr)
	}
	return fr
}
