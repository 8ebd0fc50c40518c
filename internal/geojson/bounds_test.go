package geojson

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func decodeT(t *testing.T, data string) *FeatureCollection {
	t.Helper()
	fc, err := Decode([]byte(data))
	require.NoError(t, err)
	return fc
}

func TestBoundsMultiPolygon(t *testing.T) {
	fc := decodeT(t, `{
		"type": "MultiPolygon",
		"coordinates": [[[[-10,-10],[-10,10],[10,10],[10,-10],[-10,-10]]]]
	}`)
	box := Bounds(fc)
	require.False(t, box.Empty())
	assert.Equal(t, -10.0, box.MinLat)
	assert.Equal(t, -10.0, box.MinLon)
	assert.Equal(t, 10.0, box.MaxLat)
	assert.Equal(t, 10.0, box.MaxLon)
}

func TestBoundsMixedNestingDepths(t *testing.T) {
	fc := decodeT(t, `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [100, 5]}},
			{"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[-70,-25],[70,35]]}},
			{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0,-80],[1,-80],[0,-79],[0,-80]]]}}
		]
	}`)
	box := Bounds(fc)
	assert.Equal(t, -80.0, box.MinLat)
	assert.Equal(t, -70.0, box.MinLon)
	assert.Equal(t, 35.0, box.MaxLat)
	assert.Equal(t, 100.0, box.MaxLon)
}

func TestBoundsOrderIndependent(t *testing.T) {
	fc := decodeT(t, `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 2]}},
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [-3, 9]}},
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [7, -4]}},
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 0]}}
		]
	}`)
	want := Bounds(fc)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := &FeatureCollection{Type: fc.Type, Features: append([]*Feature(nil), fc.Features...)}
		rng.Shuffle(len(shuffled.Features), func(a, b int) {
			shuffled.Features[a], shuffled.Features[b] = shuffled.Features[b], shuffled.Features[a]
		})
		assert.Equal(t, want, Bounds(shuffled))
	}
}

func TestBoundsMissingGeometryIgnored(t *testing.T) {
	fc := &FeatureCollection{
		Type: "FeatureCollection",
		Features: []*Feature{
			nil,
			{Type: "Feature"},
			{Type: "Feature", Geometry: &Geometry{Type: TypePoint, Coordinates: Coordinates{Position: []float64{3, 4}}}},
		},
	}
	box := Bounds(fc)
	require.False(t, box.Empty())
	assert.Equal(t, 4.0, box.MinLat)
	assert.Equal(t, 3.0, box.MinLon)
}

func TestBoundsEmptyCollection(t *testing.T) {
	assert.True(t, Bounds(&FeatureCollection{Type: "FeatureCollection"}).Empty())
	assert.True(t, Bounds(nil).Empty())
}

func TestBoxFirstPointSetsAllBounds(t *testing.T) {
	var box Box
	box.Extend(5, -3)
	assert.Equal(t, Box{MinLat: -3, MinLon: 5, MaxLat: -3, MaxLon: 5, set: true}, box)
	box.Extend(-1, 8)
	assert.Equal(t, -3.0, box.MinLat)
	assert.Equal(t, 8.0, box.MaxLat)
	assert.Equal(t, -1.0, box.MinLon)
	assert.Equal(t, 5.0, box.MaxLon)
}

func TestSourceBounds(t *testing.T) {
	src, err := ReadSource(strings.NewReader(`{
		"type": "Feature",
		"geometry": {"type": "LineString", "coordinates": [[-70,-25],[70,35]]}
	}`))
	require.NoError(t, err)
	require.True(t, src.Embedded())

	box, err := src.Bounds()
	require.NoError(t, err)
	assert.Equal(t, -25.0, box.MinLat)
	assert.Equal(t, 35.0, box.MaxLat)
}

func TestReferencedSourceBoundsUnavailable(t *testing.T) {
	src := Reference("https://example.com/data.geojson")
	require.False(t, src.Embedded())

	_, err := src.Bounds()
	assert.ErrorIs(t, err, ErrBoundsUnavailable)
	_, err = src.Collection()
	assert.ErrorIs(t, err, ErrBoundsUnavailable)
}

func TestOpenFile(t *testing.T) {
	path := writeTemp(t, "data.geojson", `{"type": "Point", "coordinates": [4.5, 52.1]}`)
	src, err := Open(path)
	require.NoError(t, err)
	box, err := src.Bounds()
	require.NoError(t, err)
	assert.Equal(t, 52.1, box.MinLat)

	_, err = Open(filepath.Join(t.TempDir(), "missing.geojson"))
	assert.Error(t, err)
}
