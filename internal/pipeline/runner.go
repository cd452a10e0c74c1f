package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"squish/internal/codec"
	"squish/internal/format"
	"squish/internal/transform"
)

// Run processes paths sequentially, in the given order. A file's failure is
// recorded and the loop continues; nothing aborts the batch except context
// cancellation. When the target format needs the absent HEIF codec the run
// short-circuits: zero processed, every file counted as an error, nothing
// written.
func Run(ctx context.Context, paths []string, opts Options, updates chan<- ProgressUpdate) (Summary, []Outcome) {
	var summary Summary
	outcomes := make([]Outcome, 0, len(paths))

	send := func(u ProgressUpdate) {
		if updates != nil {
			updates <- u
		}
	}

	if opts.Target.NeedsHEIF() && !opts.Caps.HEIF {
		err := fmt.Errorf("%w: %s output requested but this build has no HEIF support",
			codec.ErrHEIFUnavailable, opts.Target)
		for _, path := range paths {
			outcomes = append(outcomes, Outcome{Path: path, Kind: KindCodecUnavailable, Err: err})
		}
		summary.Errors = len(paths)
		return summary, outcomes
	}

	send(ProgressUpdate{TotalDelta: len(paths)})

	encOpts := format.Options(opts.Target, opts.Quality)
	suffix := opts.Target.OutputSuffix()

	for _, path := range paths {
		if ctx != nil && ctx.Err() != nil {
			break
		}
		send(ProgressUpdate{File: filepath.Base(path)})

		outcome := processFile(path, suffix, encOpts, opts)
		outcomes = append(outcomes, outcome)

		if outcome.Succeeded {
			summary.Processed++
			send(ProgressUpdate{CompletedDelta: 1, ProcessedDelta: 1})
		} else {
			summary.Errors++
			send(ProgressUpdate{CompletedDelta: 1, ErrorDelta: 1})
		}
	}

	return summary, outcomes
}

// processFile handles one image: open, transform, save. Every failure mode,
// including a panic out of a codec, is caught and classified here so the
// batch loop never stops.
func processFile(path, suffix string, encOpts format.EncodeOptions, opts Options) (outcome Outcome) {
	outcome = Outcome{Path: path}

	defer func() {
		if r := recover(); r != nil {
			outcome.Succeeded = false
			outcome.Kind = KindUnexpected
			outcome.Err = fmt.Errorf("unexpected failure processing %s: %v", path, r)
		}
	}()

	img, err := codec.Open(path)
	if err != nil {
		outcome.Kind = classify(err, KindDecode)
		outcome.Err = err
		return outcome
	}

	result := transform.Transform(img, opts.Target, opts.Resolution, opts.Policy, opts.Caps)
	outcome.Notes = result.Notes

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outputPath := filepath.Join(opts.OutputDir, stem+suffix)

	if err := codec.Save(outputPath, result.Encodable, opts.Target, encOpts); err != nil {
		outcome.Kind = classify(err, KindEncode)
		outcome.Err = err
		return outcome
	}

	outcome.OutputPath = outputPath
	outcome.Succeeded = true
	return outcome
}

func classify(err error, fallback ErrorKind) ErrorKind {
	switch {
	case errors.Is(err, codec.ErrHEIFUnavailable):
		return KindCodecUnavailable
	case errors.Is(err, codec.ErrUnidentified):
		return KindDecode
	case isPathError(err):
		return KindIO
	default:
		return fallback
	}
}

func isPathError(err error) bool {
	var pathErr *fs.PathError
	return errors.As(err, &pathErr)
}
