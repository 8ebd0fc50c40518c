package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronomap/internal/geojson"
)

func lineFeature(coords [][]float64, props map[string]any) *geojson.Feature {
	children := make([]geojson.Coordinates, len(coords))
	for i, c := range coords {
		children[i] = geojson.Coordinates{Position: c}
	}
	return &geojson.Feature{
		Type:       "Feature",
		Properties: props,
		Geometry:   &geojson.Geometry{Type: geojson.TypeLineString, Coordinates: geojson.Coordinates{Children: children}},
	}
}

func pointFeature(lon, lat float64, props map[string]any) *geojson.Feature {
	return &geojson.Feature{
		Type:       "Feature",
		Properties: props,
		Geometry:   &geojson.Geometry{Type: geojson.TypePoint, Coordinates: geojson.Coordinates{Position: []float64{lon, lat}}},
	}
}

var track = [][]float64{{-70, -25}, {-70, 35}, {70, 35}}

func TestTimesForResolutionOrder(t *testing.T) {
	tests := []struct {
		name  string
		props map[string]any
		want  []int64
	}{
		{
			"coordTimes wins over times",
			map[string]any{
				"coordTimes": []any{float64(1), float64(2), float64(3)},
				"times":      []any{float64(7), float64(8), float64(9)},
			},
			[]int64{1, 2, 3},
		},
		{
			"times",
			map[string]any{"times": []any{float64(4), float64(5), float64(6)}},
			[]int64{4, 5, 6},
		},
		{
			"linestringTimestamps",
			map[string]any{"linestringTimestamps": []any{float64(1), float64(2), float64(3)}},
			[]int64{1, 2, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			times, err := NewIndex().TimesFor(lineFeature(track, tt.props))
			require.NoError(t, err)
			assert.Equal(t, tt.want, times)
		})
	}
}

func TestTimesForSingleTimeWrapped(t *testing.T) {
	f := pointFeature(-70, -25, map[string]any{"time": "2015-07-01T00:00:00Z"})
	times, err := NewIndex().TimesFor(f)
	require.NoError(t, err)
	assert.Equal(t, []int64{1435708800000}, times)
}

func TestTimesForNoTimeData(t *testing.T) {
	times, err := NewIndex().TimesFor(lineFeature(track, nil))
	require.NoError(t, err)
	assert.Empty(t, times)

	times, err = NewIndex().TimesFor(lineFeature(track, map[string]any{"name": "x"}))
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestTimesForMemoizes(t *testing.T) {
	parses := 0
	ix := NewIndexWithParser(func(v any) (int64, error) {
		parses++
		return ParseTime(v)
	})
	f := lineFeature(track, map[string]any{"times": []any{float64(1), float64(2), float64(3)}})

	first, err := ix.TimesFor(f)
	require.NoError(t, err)
	second, err := ix.TimesFor(f)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 3, parses, "second call must not reparse")

	ix.Invalidate(f)
	_, err = ix.TimesFor(f)
	require.NoError(t, err)
	assert.Equal(t, 6, parses)
}

func TestTimesForLengthMismatch(t *testing.T) {
	f := lineFeature(track, map[string]any{"times": []any{float64(1), float64(2)}})
	_, err := NewIndex().TimesFor(f)
	assert.ErrorIs(t, err, ErrTimeLengthMismatch)

	// bare Point is exempt: a single wrapped time is fine
	_, err = NewIndex().TimesFor(pointFeature(0, 0, map[string]any{"time": float64(1)}))
	assert.NoError(t, err)
}

func TestTimesForMalformedSurfaced(t *testing.T) {
	f := lineFeature(track, map[string]any{"times": []any{"bogus", "dates", "here"}})
	ix := NewIndex()
	_, err := ix.TimesFor(f)
	assert.ErrorIs(t, err, ErrMalformedTimestamp)

	// the error is memoized like any other result
	_, err2 := ix.TimesFor(f)
	assert.Equal(t, err, err2)
}
