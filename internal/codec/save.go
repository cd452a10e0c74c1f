package codec

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"github.com/kettek/apng"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"squish/internal/format"
)

// Save encodes enc to path in the codec family of target. Animated
// sequences are written for GIF, WEBP, and PNG/APNG targets; TIFF encodes
// only the representative frame (multi-page TIFF output is not supported by
// the TIFF encoder), as do all single-frame formats.
func Save(path string, enc Encodable, target format.Format, opts format.EncodeOptions) error {
	if len(enc.Frames) == 0 {
		return fmt.Errorf("nothing to encode for %s", path)
	}

	if target.CodecName() == format.CodecHEIF {
		// libheif writes the file itself.
		if !heifAvailable() {
			return fmt.Errorf("%w: cannot encode %s", ErrHEIFUnavailable, path)
		}
		return encodeHEIF(path, enc.Frames[0].Image, opts.Quality)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := encodeTo(f, enc, target, opts); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func encodeTo(w io.Writer, enc Encodable, target format.Format, opts format.EncodeOptions) error {
	rep := enc.Frames[0].Image
	animated := enc.Animated && len(enc.Frames) > 1

	switch target.CodecName() {
	case format.CodecJPEG:
		return jpeg.Encode(w, rep, &jpeg.Options{Quality: opts.Quality})
	case format.CodecPNG:
		if animated {
			return encodeAPNG(w, enc)
		}
		encoder := png.Encoder{}
		if opts.Optimize {
			encoder.CompressionLevel = png.BestCompression
		}
		return encoder.Encode(w, rep)
	case format.CodecGIF:
		if animated {
			return encodeGIF(w, enc)
		}
		return gif.Encode(w, rep, &gif.Options{NumColors: 256})
	case format.CodecWebP:
		if animated {
			return encodeWebP(w, enc)
		}
		return nativewebp.Encode(w, rep, nil)
	case format.CodecTIFF:
		return tiff.Encode(w, rep, &tiff.Options{Compression: tiff.Deflate})
	case format.CodecBMP:
		return bmp.Encode(w, rep)
	default:
		return fmt.Errorf("no encoder for format %q", target)
	}
}

func encodeAPNG(w io.Writer, enc Encodable) error {
	out := apng.APNG{
		Frames:    make([]apng.Frame, 0, len(enc.Frames)),
		LoopCount: uint(enc.LoopCount),
	}
	for _, fr := range enc.Frames {
		out.Frames = append(out.Frames, apng.Frame{
			Image:            fr.Image,
			DelayNumerator:   uint16(frameDuration(fr, enc)),
			DelayDenominator: 1000,
		})
	}
	return apng.Encode(w, out)
}

func encodeGIF(w io.Writer, enc Encodable) error {
	out := &gif.GIF{LoopCount: enc.LoopCount}
	for _, fr := range enc.Frames {
		out.Image = append(out.Image, palettize(fr.Image))
		out.Delay = append(out.Delay, frameDuration(fr, enc)/10)
	}
	return gif.EncodeAll(w, out)
}

func encodeWebP(w io.Writer, enc Encodable) error {
	ani := nativewebp.Animation{
		Images:    make([]image.Image, 0, len(enc.Frames)),
		Durations: make([]uint, 0, len(enc.Frames)),
		Disposals: make([]uint, len(enc.Frames)),
		LoopCount: uint16(enc.LoopCount),
	}
	for _, fr := range enc.Frames {
		ani.Images = append(ani.Images, fr.Image)
		ani.Durations = append(ani.Durations, uint(frameDuration(fr, enc)))
	}
	return nativewebp.EncodeAll(w, &ani, nil)
}

// frameDuration returns the frame's own duration, falling back to the
// sequence-level value.
func frameDuration(fr Frame, enc Encodable) int {
	if fr.DurationMS > 0 {
		return fr.DurationMS
	}
	if enc.DurationMS > 0 {
		return enc.DurationMS
	}
	return DefaultFrameDurationMS
}

// palettize converts a frame to a paletted image for GIF encoding.
func palettize(img image.Image) *image.Paletted {
	if p, ok := img.(*image.Paletted); ok {
		return p
	}
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}
