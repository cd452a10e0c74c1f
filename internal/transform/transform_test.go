package transform

import (
	"image"
	"image/color"
	"testing"

	"squish/internal/codec"
	"squish/internal/format"
)

func TestFitResizePreservesRatio(t *testing.T) {
	img := stillImage(4000, 2000)
	res := &Resolution{Width: 1920, Height: 1080}

	result := Transform(img, format.PNG, res, PolicyFit, codec.Capabilities{})

	b := result.Frames[0].Image.Bounds()
	if b.Dx() != 1920 || b.Dy() != 960 {
		t.Fatalf("fit resize = %dx%d, want 1920x960", b.Dx(), b.Dy())
	}
}

func TestForcedResizeDistortsRatio(t *testing.T) {
	img := stillImage(4000, 2000)
	res := &Resolution{Width: 1920, Height: 1080}

	result := Transform(img, format.PNG, res, PolicyForced, codec.Capabilities{})

	b := result.Frames[0].Image.Bounds()
	if b.Dx() != 1920 || b.Dy() != 1080 {
		t.Fatalf("forced resize = %dx%d, want 1920x1080", b.Dx(), b.Dy())
	}
}

func TestFitResizeNeverUpscales(t *testing.T) {
	img := stillImage(100, 50)
	res := &Resolution{Width: 1920, Height: 1080}

	result := Transform(img, format.PNG, res, PolicyFit, codec.Capabilities{})

	b := result.Frames[0].Image.Bounds()
	if b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("fit resize upscaled to %dx%d", b.Dx(), b.Dy())
	}
}

func TestTransparentPaletteToJPEG(t *testing.T) {
	img := decoded(paletteFrame(20, 20, true))

	result := Transform(img, format.JPG, nil, PolicyFit, codec.Capabilities{})

	if len(result.Frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(result.Frames))
	}
	if result.Frames[0].Mode != codec.ModeRGB {
		t.Fatalf("mode = %s, want RGB", result.Frames[0].Mode)
	}
}

func TestTransparentPaletteToAPNG(t *testing.T) {
	img := decoded(paletteFrame(20, 20, true))

	result := Transform(img, format.APNG, nil, PolicyFit, codec.Capabilities{})

	if result.Frames[0].Mode != codec.ModeRGBA {
		t.Fatalf("mode = %s, want RGBA", result.Frames[0].Mode)
	}
}

func TestOpaquePaletteToAPNGStaysPalette(t *testing.T) {
	img := decoded(paletteFrame(20, 20, false))

	result := Transform(img, format.APNG, nil, PolicyFit, codec.Capabilities{})

	if result.Frames[0].Mode != codec.ModePalette {
		t.Fatalf("mode = %s, want palette", result.Frames[0].Mode)
	}
}

func TestRGBAToJPEG(t *testing.T) {
	img := stillImage(10, 10)

	result := Transform(img, format.JPEG, nil, PolicyFit, codec.Capabilities{})

	if result.Frames[0].Mode != codec.ModeRGB {
		t.Fatalf("mode = %s, want RGB", result.Frames[0].Mode)
	}
}

func TestSingleFrameNeverAnimated(t *testing.T) {
	img := stillImage(10, 10)

	for _, target := range []format.Format{format.GIF, format.WebP, format.PNG, format.APNG} {
		result := Transform(img, target, nil, PolicyFit, codec.Capabilities{})
		if result.Animated {
			t.Fatalf("single frame reported animated for target %s", target)
		}
	}
}

func TestAnimatedToJPEGKeepsFirstFrameOnly(t *testing.T) {
	img := decoded(
		paletteFrame(20, 20, true),
		paletteFrame(20, 20, true),
		paletteFrame(20, 20, true),
	)

	result := Transform(img, format.JPG, nil, PolicyFit, codec.Capabilities{})

	if result.Animated || len(result.Frames) != 1 {
		t.Fatalf("jpeg target must drop frames, got %d frames", len(result.Frames))
	}
	if result.Frames[0].Mode != codec.ModeRGB {
		t.Fatalf("mode = %s, want RGB", result.Frames[0].Mode)
	}
}

func TestAnimatedToGIFKeepsFrames(t *testing.T) {
	frames := []codec.Frame{
		paletteFrame(20, 20, false),
		paletteFrame(20, 20, false),
		paletteFrame(20, 20, false),
	}
	frames[0].DurationMS = 250
	img := &codec.DecodedImage{Frames: frames, LoopCount: 3}

	result := Transform(img, format.GIF, nil, PolicyFit, codec.Capabilities{})

	if !result.Animated || len(result.Frames) != 3 {
		t.Fatalf("expected 3 animated frames, got %d (animated=%v)", len(result.Frames), result.Animated)
	}
	if result.DurationMS != 250 {
		t.Fatalf("duration = %d, want 250", result.DurationMS)
	}
	if result.LoopCount != 3 {
		t.Fatalf("loop = %d, want 3", result.LoopCount)
	}
}

func TestAnimatedDurationDefaults(t *testing.T) {
	img := decoded(paletteFrame(10, 10, false), paletteFrame(10, 10, false))

	result := Transform(img, format.GIF, nil, PolicyFit, codec.Capabilities{})

	if result.DurationMS != codec.DefaultFrameDurationMS {
		t.Fatalf("duration = %d, want default %d", result.DurationMS, codec.DefaultFrameDurationMS)
	}
	if result.LoopCount != codec.DefaultLoopCount {
		t.Fatalf("loop = %d, want default %d", result.LoopCount, codec.DefaultLoopCount)
	}
}

func TestForcedResizeAppliesToEveryFrame(t *testing.T) {
	img := decoded(
		paletteFrame(40, 40, true),
		paletteFrame(40, 40, true),
		paletteFrame(40, 40, true),
	)
	res := &Resolution{Width: 20, Height: 10}

	result := Transform(img, format.GIF, res, PolicyForced, codec.Capabilities{})

	if !result.Animated || len(result.Frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(result.Frames))
	}
	for i, fr := range result.Frames {
		b := fr.Image.Bounds()
		if b.Dx() != 20 || b.Dy() != 10 {
			t.Fatalf("frame %d = %dx%d, want 20x10", i, b.Dx(), b.Dy())
		}
		// Palette frames are promoted before scaling so transparency survives.
		if fr.Mode == codec.ModePalette {
			t.Fatalf("frame %d still palette after resize", i)
		}
	}
}

func TestAnimatedHEIFWithoutCodecDegrades(t *testing.T) {
	img := decoded(paletteFrame(10, 10, false), paletteFrame(10, 10, false))

	result := Transform(img, format.HEIF, nil, PolicyFit, codec.Capabilities{HEIF: false})

	if result.Animated || len(result.Frames) != 1 {
		t.Fatalf("expected single-frame fallback, got %d frames", len(result.Frames))
	}
	if len(result.Notes) != 1 {
		t.Fatalf("expected a degradation warning, got %v", result.Notes)
	}
}

func TestAnimatedHEIFWithCodec(t *testing.T) {
	img := decoded(paletteFrame(10, 10, false), paletteFrame(10, 10, false))

	result := Transform(img, format.HEIF, nil, PolicyFit, codec.Capabilities{HEIF: true})

	if !result.Animated || len(result.Frames) != 2 {
		t.Fatalf("expected 2 animated frames, got %d", len(result.Frames))
	}
	if len(result.Notes) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Notes)
	}
}

func TestTransformDoesNotMutateSource(t *testing.T) {
	fr := paletteFrame(20, 20, true)
	img := decoded(fr)

	Transform(img, format.JPG, &Resolution{Width: 10, Height: 10}, PolicyFit, codec.Capabilities{})

	if img.Frames[0].Mode != codec.ModePalette {
		t.Fatalf("source frame mode changed to %s", img.Frames[0].Mode)
	}
	if b := img.Frames[0].Image.Bounds(); b.Dx() != 20 {
		t.Fatalf("source frame was resized to %d wide", b.Dx())
	}
}

func stillImage(w, h int) *codec.DecodedImage {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	return &codec.DecodedImage{Frames: []codec.Frame{{Image: img, Mode: codec.ModeRGBA}}}
}

func paletteFrame(w, h int, transparent bool) codec.Frame {
	first := color.RGBA{0, 0, 0, 255}
	if transparent {
		first = color.RGBA{0, 0, 0, 0}
	}
	p := image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{
		first,
		color.RGBA{255, 0, 0, 255},
		color.RGBA{0, 255, 0, 255},
	})
	for i := range p.Pix {
		p.Pix[i] = uint8(i % 3)
	}
	return codec.Frame{Image: p, Mode: codec.ModePalette}
}

func decoded(frames ...codec.Frame) *codec.DecodedImage {
	return &codec.DecodedImage{Frames: frames, LoopCount: codec.DefaultLoopCount}
}
