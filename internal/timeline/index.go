package timeline

import (
	"errors"
	"fmt"

	"chronomap/internal/geojson"
)

// ErrTimeLengthMismatch marks a feature whose timestamp count disagrees
// with its top-level coordinate count.
var ErrTimeLengthMismatch = errors.New("timestamp count does not match coordinate count")

// Properties consulted for a feature's timestamp sequence, first match wins.
var timeProps = []string{"coordTimes", "times", "linestringTimestamps", "time"}

type indexEntry struct {
	times []int64
	err   error
}

// Index resolves and caches each feature's time sequence. The cache is a
// side table keyed by feature identity; input features are never mutated.
// Single writer per map instance, no locking needed.
type Index struct {
	cache map[*geojson.Feature]indexEntry
	parse func(any) (int64, error)
}

// NewIndex returns an index backed by ParseTime.
func NewIndex() *Index { return NewIndexWithParser(ParseTime) }

// NewIndexWithParser lets callers substitute the timestamp parser, e.g. to
// count parses.
func NewIndexWithParser(parse func(any) (int64, error)) *Index {
	return &Index{cache: make(map[*geojson.Feature]indexEntry), parse: parse}
}

// TimesFor returns the feature's epoch-ms sequence, resolving and parsing
// it on first call and answering from the cache afterwards. An empty
// sequence means the feature has no time data and is always shown.
func (ix *Index) TimesFor(f *geojson.Feature) ([]int64, error) {
	if e, ok := ix.cache[f]; ok {
		return e.times, e.err
	}
	times, err := ix.resolve(f)
	ix.cache[f] = indexEntry{times: times, err: err}
	return times, err
}

// Invalidate drops the cached sequence for a feature.
func (ix *Index) Invalidate(f *geojson.Feature) { delete(ix.cache, f) }

func (ix *Index) resolve(f *geojson.Feature) ([]int64, error) {
	raw := rawTimes(f)
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]int64, len(raw))
	for i, v := range raw {
		ms, err := ix.parse(v)
		if err != nil {
			return nil, err
		}
		out[i] = ms
	}
	if f.Geometry != nil && !f.Geometry.Coordinates.IsPosition() {
		if n := f.Geometry.Coordinates.Len(); n != len(out) {
			return nil, fmt.Errorf("%w: %d times, %d coordinates (%s)",
				ErrTimeLengthMismatch, len(out), n, f.Geometry.Type)
		}
	}
	return out, nil
}

func rawTimes(f *geojson.Feature) []any {
	if f == nil || f.Properties == nil {
		return nil
	}
	for _, key := range timeProps {
		v, ok := f.Properties[key]
		if !ok {
			continue
		}
		if key == "time" {
			return []any{v}
		}
		if seq, ok := v.([]any); ok {
			return seq
		}
		return nil
	}
	return nil
}
