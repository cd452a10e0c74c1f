// Package codec opens and saves images across the supported format set,
// hiding per-format decode/encode details behind a uniform frame model.
package codec

import (
	"errors"
	"image"
)

// Default animation metadata, used when the source carries none.
const (
	DefaultFrameDurationMS = 100
	DefaultLoopCount       = 0 // infinite
)

var (
	// ErrUnidentified marks a file that could not be recognized or decoded
	// as an image.
	ErrUnidentified = errors.New("cannot identify image file")
	// ErrHEIFUnavailable marks an operation that needs the optional HEIF
	// codec when the binary was built without it.
	ErrHEIFUnavailable = errors.New("HEIF codec not available")
)

// Frame is one decoded frame plus the color mode it was decoded in.
// DurationMS is the display time for animated sources, 0 if unknown.
type Frame struct {
	Image      image.Image
	Mode       ColorMode
	DurationMS int
}

// DecodedImage is the result of opening one file. Frames[0] is the
// representative frame; additional frames exist only for animated sources.
// A DecodedImage is owned by a single transform and never shared.
type DecodedImage struct {
	Frames    []Frame
	LoopCount int
}

func (d *DecodedImage) FrameCount() int { return len(d.Frames) }

func (d *DecodedImage) Animated() bool { return len(d.Frames) > 1 }

// Size returns the pixel dimensions of the representative frame.
func (d *DecodedImage) Size() (width, height int) {
	b := d.Frames[0].Image.Bounds()
	return b.Dx(), b.Dy()
}

// Encodable is a transformed image ready for Save: an ordered frame
// sequence plus animation metadata. Animated is false for single images.
type Encodable struct {
	Frames     []Frame
	Animated   bool
	DurationMS int
	LoopCount  int
}

// Capabilities records which optional codecs this build carries. It is
// constructed once at startup and passed explicitly to every decision point
// so tests can simulate both states.
type Capabilities struct {
	HEIF bool
}

// DetectCapabilities probes the optional codecs compiled into this binary.
func DetectCapabilities() Capabilities {
	return Capabilities{HEIF: heifAvailable()}
}

func single(img image.Image) *DecodedImage {
	return &DecodedImage{
		Frames:    []Frame{{Image: img, Mode: ModeOf(img)}},
		LoopCount: DefaultLoopCount,
	}
}
