package pipeline

import (
	"squish/internal/codec"
	"squish/internal/format"
	"squish/internal/transform"
)

// Options configures one batch run.
type Options struct {
	OutputDir  string
	Target     format.Format
	Quality    int
	Resolution *transform.Resolution
	Policy     transform.AspectPolicy
	Caps       codec.Capabilities
}

// ErrorKind classifies why a file failed, for reporting.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindDecode
	KindEncode
	KindIO
	KindCodecUnavailable
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	case KindIO:
		return "i/o"
	case KindCodecUnavailable:
		return "codec unavailable"
	case KindUnexpected:
		return "unexpected"
	default:
		return "none"
	}
}

// Outcome records what happened to one input file. It is written once and
// never mutated afterwards.
type Outcome struct {
	Path       string
	OutputPath string
	Succeeded  bool
	Kind       ErrorKind
	Err        error
	Notes      []string
}

// Summary aggregates outcomes across one batch run.
type Summary struct {
	Processed int
	Errors    int
}

// ProgressUpdate is one event for the progress sink. A non-empty File marks
// the start of that file; CompletedDelta marks a finish.
type ProgressUpdate struct {
	File           string
	TotalDelta     int
	CompletedDelta int
	ProcessedDelta int
	ErrorDelta     int
}
