// Package transform turns one decoded image into the final encodable form
// for a target format: resize, color-mode normalization, and animated frame
// handling. Every stage is a pure frame-in/frame-out function; the input
// DecodedImage is never mutated.
package transform

import (
	"squish/internal/codec"
	"squish/internal/format"
)

// Result is a transformed image ready for codec.Save. Notes carry warnings
// about deliberate lossy fallbacks, to be surfaced after the batch run.
type Result struct {
	codec.Encodable
	Notes []string
}

// Transform applies the conversion pipeline to img for the given target:
//
//  1. resize each frame per res and policy (nil res keeps the original size);
//  2. normalize color modes the target cannot represent;
//  3. decide whether an animated sequence is being saved;
//  4. collect and normalize the remaining source frames when it is.
//
// Targets without multi-frame support keep only the representative frame.
// An animated sequence aimed at HEIF without the HEIF codec degrades to the
// representative frame with a warning rather than failing.
func Transform(img *codec.DecodedImage, target format.Format, res *Resolution, policy AspectPolicy, caps codec.Capabilities) *Result {
	rep := img.Frames[0]

	var resized []codec.Frame
	if res != nil {
		if img.FrameCount() > 1 {
			resized = make([]codec.Frame, 0, img.FrameCount())
			for _, fr := range img.Frames {
				resized = append(resized, resizeFrame(fr, *res, policy))
			}
			rep = resized[0]
		} else {
			rep = resizeFrame(rep, *res, policy)
		}
	}

	normalize := normalizer(target)
	rep = normalize(rep)
	for i := range resized {
		resized[i] = normalize(resized[i])
	}

	savingAnimated := len(resized) > 1 || (res == nil && img.FrameCount() > 1)
	if !savingAnimated || !target.SupportsAnimation() {
		return &Result{Encodable: stillFrame(rep)}
	}

	if target.CodecName() == format.CodecHEIF && !caps.HEIF {
		return &Result{
			Encodable: stillFrame(rep),
			Notes:     []string{"cannot save animated HEIF without the HEIF codec; saved first frame only"},
		}
	}

	frames := resized
	if frames == nil {
		// Not resized: frame 0 is the already-transformed representative;
		// the rest of the source frames get the same normalization.
		frames = make([]codec.Frame, 0, img.FrameCount())
		frames = append(frames, rep)
		for _, fr := range img.Frames[1:] {
			frames = append(frames, normalize(fr))
		}
	}

	duration := img.Frames[0].DurationMS
	if duration <= 0 {
		duration = codec.DefaultFrameDurationMS
	}

	return &Result{Encodable: codec.Encodable{
		Frames:     frames,
		Animated:   true,
		DurationMS: duration,
		LoopCount:  img.LoopCount,
	}}
}

// normalizer picks the per-frame mode conversion the target format demands.
func normalizer(target format.Format) func(codec.Frame) codec.Frame {
	switch {
	case target.CodecName() == format.CodecJPEG:
		return flattenForJPEG
	case target == format.APNG:
		return promoteForAPNG
	default:
		return func(fr codec.Frame) codec.Frame { return fr }
	}
}

func stillFrame(fr codec.Frame) codec.Encodable {
	return codec.Encodable{Frames: []codec.Frame{fr}}
}
