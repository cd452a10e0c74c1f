package codec

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"io"
	"os"

	"github.com/kettek/apng"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"squish/pkg/imgutil"
)

// Open decodes the image file at path into a DecodedImage. The container is
// detected from byte signatures, never from the extension. Unknown or
// corrupt data fails with an error wrapping ErrUnidentified; a HEIF file in
// a build without the HEIF codec fails with ErrHEIFUnavailable.
func Open(path string) (*DecodedImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	kind, err := imgutil.SniffReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnidentified, path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	var decoded *DecodedImage
	switch kind {
	case imgutil.KindPNG:
		decoded, err = decodePNG(f)
	case imgutil.KindJPEG:
		decoded, err = decodeOriented(f, jpeg.Decode)
	case imgutil.KindGIF:
		decoded, err = decodeGIF(f)
	case imgutil.KindWEBP:
		decoded, err = decodeStill(f, webp.Decode)
	case imgutil.KindTIFF:
		decoded, err = decodeOriented(f, tiff.Decode)
	case imgutil.KindBMP:
		decoded, err = decodeStill(f, bmp.Decode)
	case imgutil.KindHEIF:
		if !heifAvailable() {
			return nil, fmt.Errorf("%w: cannot decode %s", ErrHEIFUnavailable, path)
		}
		decoded, err = decodeHEIF(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnidentified, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnidentified, path, err)
	}
	return decoded, nil
}

func decodeStill(r io.Reader, decode func(io.Reader) (image.Image, error)) (*DecodedImage, error) {
	img, err := decode(r)
	if err != nil {
		return nil, err
	}
	return single(img), nil
}

// decodeOriented decodes a still image and then normalizes its pixels
// according to the EXIF Orientation tag, so converted output is upright.
func decodeOriented(rs io.ReadSeeker, decode func(io.Reader) (image.Image, error)) (*DecodedImage, error) {
	img, err := decode(rs)
	if err != nil {
		return nil, err
	}
	mode := ModeOf(img)
	if _, err := rs.Seek(0, io.SeekStart); err == nil {
		img = applyOrientation(rs, img)
	}
	return &DecodedImage{
		Frames:    []Frame{{Image: img, Mode: mode}},
		LoopCount: DefaultLoopCount,
	}, nil
}

// decodePNG handles both plain PNG and APNG; a plain PNG comes back as a
// single frame.
func decodePNG(r io.Reader) (*DecodedImage, error) {
	a, err := apng.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	frames := make([]Frame, 0, len(a.Frames))
	for _, fr := range a.Frames {
		frames = append(frames, Frame{
			Image:      fr.Image,
			Mode:       ModeOf(fr.Image),
			DurationMS: apngDelayMS(fr),
		})
	}
	return &DecodedImage{Frames: frames, LoopCount: int(a.LoopCount)}, nil
}

func apngDelayMS(fr apng.Frame) int {
	num := int(fr.DelayNumerator)
	den := int(fr.DelayDenominator)
	if den == 0 {
		den = 100 // per the APNG spec a zero denominator means 1/100 s
	}
	ms := num * 1000 / den
	if ms <= 0 {
		return 0
	}
	return ms
}

func decodeGIF(r io.Reader) (*DecodedImage, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	frames := make([]Frame, 0, len(g.Image))
	for i, img := range g.Image {
		duration := 0
		if i < len(g.Delay) {
			duration = g.Delay[i] * 10 // GIF delays are in 1/100 s
		}
		frames = append(frames, Frame{Image: img, Mode: ModeOf(img), DurationMS: duration})
	}
	loop := g.LoopCount
	if loop < 0 {
		loop = 1 // gif uses -1 for "play once"
	}
	return &DecodedImage{Frames: frames, LoopCount: loop}, nil
}
