package geojson

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrBoundsUnavailable is returned when bounds are requested on a source
// that only references its data instead of embedding it.
var ErrBoundsUnavailable = errors.New("bounds unavailable for non-embedded data")

// Source is a dataset handle. An embedded source holds the fully
// materialized collection; a referenced source only knows where the data
// lives and cannot answer spatial queries locally.
type Source struct {
	doc      *FeatureCollection
	ref      string
	embedded bool
}

// Embed wraps an in-memory collection.
func Embed(fc *FeatureCollection) *Source {
	return &Source{doc: fc, embedded: true}
}

// Reference records a dataset that stays external (e.g. a URL handed
// straight to a downstream consumer).
func Reference(ref string) *Source {
	return &Source{ref: ref}
}

// ReadSource decodes GeoJSON from r into an embedded source.
func ReadSource(r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Embed(fc), nil
}

// Open reads and decodes a GeoJSON file into an embedded source.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := ReadSource(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Embedded reports whether the data is locally materialized.
func (s *Source) Embedded() bool { return s.embedded }

// Ref returns the external reference for a non-embedded source.
func (s *Source) Ref() string { return s.ref }

// Collection returns the materialized features of an embedded source.
func (s *Source) Collection() (*FeatureCollection, error) {
	if !s.embedded {
		return nil, fmt.Errorf("%w: %s", ErrBoundsUnavailable, s.ref)
	}
	return s.doc, nil
}

// Bounds computes the global box of an embedded source for initial
// viewport framing.
func (s *Source) Bounds() (Box, error) {
	if !s.embedded {
		return Box{}, fmt.Errorf("%w: %s", ErrBoundsUnavailable, s.ref)
	}
	return Bounds(s.doc), nil
}
