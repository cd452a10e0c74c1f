// Package pipeline discovers candidate files and runs the per-file
// convert/compress loop, aggregating outcomes into a batch summary.
package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"

	"squish/internal/codec"
	"squish/internal/format"
)

// Discover collects the files in dir matching the format selection and
// returns them deduplicated and sorted, so batch runs are reproducible.
// Under the wildcard, formats needing the absent HEIF codec are skipped
// silently; a specific HEIF selection without the codec fails with
// codec.ErrHEIFUnavailable so the caller can tell it from "no files".
func Discover(dir string, sel format.Selection, caps codec.Capabilities) ([]string, error) {
	var formats []format.Format
	if sel.All {
		for _, f := range format.All() {
			if f.NeedsHEIF() && !caps.HEIF {
				continue
			}
			formats = append(formats, f)
		}
	} else {
		if sel.Format.NeedsHEIF() && !caps.HEIF {
			return nil, fmt.Errorf("%w: %s input requested but this build has no HEIF support",
				codec.ErrHEIFUnavailable, sel.Format)
		}
		formats = []format.Format{sel.Format}
	}

	seen := make(map[string]struct{})
	var paths []string
	for _, f := range formats {
		for _, suffix := range f.Spec().Suffixes {
			matches, err := filepath.Glob(filepath.Join(dir, "*"+suffix))
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				paths = append(paths, m)
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}
