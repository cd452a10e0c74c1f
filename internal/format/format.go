// Package format defines the closed set of supported image formats and
// resolves user-supplied format strings against it.
package format

import (
	"errors"
	"fmt"
	"strings"
)

// Wildcard is the input-only token matching every supported format.
const Wildcard = "all"

// Format identifies one entry of the format registry.
type Format int

const (
	PNG Format = iota
	JPG
	JPEG
	WebP
	TIFF
	BMP
	GIF
	APNG
	HEIC
	HEIF
)

// Codec family names. Formats sharing a family share an encoder/decoder.
const (
	CodecPNG  = "PNG"
	CodecJPEG = "JPEG"
	CodecWebP = "WEBP"
	CodecTIFF = "TIFF"
	CodecBMP  = "BMP"
	CodecGIF  = "GIF"
	CodecHEIF = "HEIF"
)

// Spec describes one format: its identifier, codec family, and recognized
// file suffixes. Suffixes[0] is the canonical output extension.
type Spec struct {
	ID       string
	Codec    string
	Suffixes []string
}

var registry = [...]Spec{
	PNG:  {ID: "png", Codec: CodecPNG, Suffixes: []string{".png"}},
	JPG:  {ID: "jpg", Codec: CodecJPEG, Suffixes: []string{".jpg", ".jpeg", ".jfif", ".jpe"}},
	JPEG: {ID: "jpeg", Codec: CodecJPEG, Suffixes: []string{".jpg", ".jpeg", ".jfif", ".jpe"}},
	WebP: {ID: "webp", Codec: CodecWebP, Suffixes: []string{".webp"}},
	TIFF: {ID: "tiff", Codec: CodecTIFF, Suffixes: []string{".tiff", ".tif"}},
	BMP:  {ID: "bmp", Codec: CodecBMP, Suffixes: []string{".bmp"}},
	GIF:  {ID: "gif", Codec: CodecGIF, Suffixes: []string{".gif"}},
	APNG: {ID: "apng", Codec: CodecPNG, Suffixes: []string{".apng", ".png"}},
	HEIC: {ID: "heic", Codec: CodecHEIF, Suffixes: []string{".heic"}},
	HEIF: {ID: "heif", Codec: CodecHEIF, Suffixes: []string{".heif", ".avif"}},
}

// All returns every registered format in registry order.
func All() []Format {
	formats := make([]Format, len(registry))
	for i := range registry {
		formats[i] = Format(i)
	}
	return formats
}

// IDs returns the identifiers of every registered format, in registry order.
func IDs() []string {
	ids := make([]string, len(registry))
	for i := range registry {
		ids[i] = registry[i].ID
	}
	return ids
}

func (f Format) Spec() Spec { return registry[f] }

func (f Format) ID() string { return registry[f].ID }

// CodecName returns the codec family the format belongs to.
func (f Format) CodecName() string { return registry[f].Codec }

// OutputSuffix returns the canonical extension for files written in f.
func (f Format) OutputSuffix() string { return registry[f].Suffixes[0] }

// NeedsHEIF reports whether f requires the optional HEIF codec.
func (f Format) NeedsHEIF() bool { return registry[f].Codec == CodecHEIF }

// SupportsAnimation reports whether f can hold a multi-frame sequence.
func (f Format) SupportsAnimation() bool {
	switch registry[f].Codec {
	case CodecGIF, CodecWebP, CodecTIFF, CodecPNG, CodecHEIF:
		return true
	default:
		return false
	}
}

func (f Format) String() string { return registry[f].ID }

// Role says whether a format string names the input filter or the output
// target. The wildcard is only valid for input.
type Role int

const (
	RoleInput Role = iota
	RoleOutput
)

func (r Role) String() string {
	if r == RoleInput {
		return "input"
	}
	return "output"
}

// Selection is the result of resolving a format string: either one concrete
// format, or the wildcard covering all of them.
type Selection struct {
	All    bool
	Format Format
}

// ErrUnsupportedFormat marks a format string outside the registry.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Resolve normalizes s (lowercase, one leading dot stripped) and looks it up.
// For RoleInput the literal Wildcard token selects all formats.
func Resolve(s string, role Role) (Selection, error) {
	normalized := strings.TrimPrefix(strings.ToLower(s), ".")
	if role == RoleInput && normalized == Wildcard {
		return Selection{All: true}, nil
	}
	for i := range registry {
		if registry[i].ID == normalized {
			return Selection{Format: Format(i)}, nil
		}
	}
	return Selection{}, fmt.Errorf("%w: %s format %q (supported: %s; use %q to match all input types)",
		ErrUnsupportedFormat, role, s, strings.Join(IDs(), ", "), Wildcard)
}

// EncodeOptions carries the encoder knobs a quality setting implies.
type EncodeOptions struct {
	// Quality is the 0-100 compression quality for lossy codecs
	// (JPEG, WEBP, HEIF).
	Quality int
	// Optimize requests maximum compression effort for PNG output.
	Optimize bool
}

// Options maps a requested quality onto the encoder options for f.
func Options(f Format, quality int) EncodeOptions {
	opts := EncodeOptions{}
	switch f.CodecName() {
	case CodecJPEG, CodecWebP, CodecHEIF:
		opts.Quality = quality
	case CodecPNG:
		opts.Optimize = true
	}
	return opts
}
