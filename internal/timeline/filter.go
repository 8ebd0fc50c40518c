package timeline

import (
	"chronomap/internal/geojson"
)

// DistantPast sits far below any realistic epoch value. A window min of 0
// is replaced with it so that epoch-zero is not mistaken for "no lower
// bound", keeping pre-1970 timestamps visible.
const DistantPast int64 = -999_999_999_999

// Window is the [Min, Max] epoch-ms range active during one tick. It is
// written only by the clock and treated as immutable during a query.
type Window struct {
	Min, Max int64
}

// Contains reports whether t falls inside the window under the filter's
// boundary rules (strictly after Min, at or before Max).
func (w Window) Contains(t int64) bool {
	min := w.Min
	if min == 0 {
		min = DistantPast
	}
	return t > min && t <= w.Max
}

// Filter reduces a feature to the coordinates whose times fall inside the
// window. An empty time sequence returns the feature unchanged; a feature
// entirely outside the window returns nil (do not render this tick). The
// input feature is never mutated; the result shares its properties.
func Filter(f *geojson.Feature, times []int64, w Window) *geojson.Feature {
	if len(times) == 0 || f.Geometry == nil {
		return f
	}
	minTime := w.Min
	if minTime == 0 {
		minTime = DistantPast
	}
	l := len(times)
	if times[0] > w.Max || times[l-1] < minTime {
		return nil
	}

	indexMin, indexMax := -1, -1
	if times[l-1] > minTime {
		for i := 0; i < l; i++ {
			if indexMin < 0 && times[i] > minTime {
				indexMin = i
			}
			if times[i] > w.Max {
				indexMax = i
				break
			}
		}
	}
	if indexMin < 0 {
		indexMin = 0
	}
	if indexMax < 0 {
		indexMax = l
	}

	coords := f.Geometry.Coordinates
	if !coords.IsPosition() {
		// an empty slice is legal: no visible coordinates this tick
		coords = coords.Slice(indexMin, indexMax)
	}
	return &geojson.Feature{
		Type:       "Feature",
		Properties: f.Properties,
		Geometry:   &geojson.Geometry{Type: f.Geometry.Type, Coordinates: coords},
	}
}

// FilterStrategy decouples time resolution and window filtering from the
// rendering layer; the renderer holds one of these instead of reaching into
// any host widget.
type FilterStrategy interface {
	ResolveTimes(f *geojson.Feature) ([]int64, error)
	FilterByWindow(f *geojson.Feature, w Window) (*geojson.Feature, error)
}

type indexStrategy struct {
	ix *Index
}

// NewStrategy returns the default strategy backed by the given index.
func NewStrategy(ix *Index) FilterStrategy { return indexStrategy{ix: ix} }

func (s indexStrategy) ResolveTimes(f *geojson.Feature) ([]int64, error) {
	return s.ix.TimesFor(f)
}

func (s indexStrategy) FilterByWindow(f *geojson.Feature, w Window) (*geojson.Feature, error) {
	times, err := s.ix.TimesFor(f)
	if err != nil {
		return nil, err
	}
	return Filter(f, times, w), nil
}
