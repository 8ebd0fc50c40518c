package geojson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFeatureCollection(t *testing.T) {
	data := []byte(`{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"geometry": {"type": "LineString", "coordinates": [[-70,-25],[-70,35],[70,35]]},
			"properties": {"times": [1435708800000, 1435795200000, 1435881600000]}
		}]
	}`)
	fc, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	f := fc.Features[0]
	assert.Equal(t, TypeLineString, f.Geometry.Type)
	assert.Equal(t, 3, f.Geometry.Coordinates.Len())
	assert.Equal(t, []float64{-70, -25}, f.Geometry.Coordinates.Children[0].Position)
	times, ok := f.Properties["times"].([]any)
	require.True(t, ok)
	assert.Len(t, times, 3)
}

func TestDecodeBareFeatureWrapped(t *testing.T) {
	data := []byte(`{
		"type": "Feature",
		"geometry": {"type": "Point", "coordinates": [4.5, 52.1]}
	}`)
	fc, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.True(t, fc.Features[0].Geometry.Coordinates.IsPosition())
}

func TestDecodeBareGeometryWrapped(t *testing.T) {
	data := []byte(`{"type": "MultiPoint", "coordinates": [[1,2],[3,4]]}`)
	fc, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, TypeMultiPoint, fc.Features[0].Geometry.Type)
	assert.Equal(t, 2, fc.Features[0].Geometry.Coordinates.Len())
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	_, err := Decode([]byte(`{"type": "GeometryCollection"}`))
	assert.Error(t, err)
	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestCoordinatesNestingDepths(t *testing.T) {
	tests := []struct {
		name string
		in   string
		leaf int // expected leaf position count
	}{
		{"point depth 0", `[1, 2]`, 1},
		{"line depth 1", `[[1,2],[3,4]]`, 2},
		{"polygon depth 2", `[[[0,0],[0,1],[1,1],[0,0]]]`, 4},
		{"multipolygon depth 3", `[[[[0,0],[0,1],[1,1],[0,0]]],[[[5,5],[5,6],[6,6],[5,5]]]]`, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Coordinates
			require.NoError(t, json.Unmarshal([]byte(tt.in), &c))
			leaves := 0
			c.EachPosition(func([]float64) { leaves++ })
			assert.Equal(t, tt.leaf, leaves)
		})
	}
}

func TestCoordinatesMarshalRoundTrip(t *testing.T) {
	in := `[[[-10,-10],[-10,10],[10,10],[10,-10],[-10,-10]]]`
	var c Coordinates
	require.NoError(t, json.Unmarshal([]byte(in), &c))
	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestCoordinatesSliceClamps(t *testing.T) {
	var c Coordinates
	require.NoError(t, json.Unmarshal([]byte(`[[1,2],[3,4],[5,6]]`), &c))

	assert.Equal(t, 1, c.Slice(1, 2).Len())
	assert.Equal(t, 0, c.Slice(2, 2).Len())
	assert.Equal(t, 3, c.Slice(-5, 99).Len())
	assert.Equal(t, 0, c.Slice(3, 1).Len())
}

func TestLoadCSVTrack(t *testing.T) {
	path := writeTemp(t, "track.csv",
		"lat,lon,time\n-25,-70,2015-07-01T00:00:00Z\n35,-70,2015-07-02T00:00:00Z\n35,70,2015-07-03T00:00:00Z\n")
	fc, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	f := fc.Features[0]
	assert.Equal(t, TypeLineString, f.Geometry.Type)
	assert.Equal(t, 3, f.Geometry.Coordinates.Len())
	times, ok := f.Properties["times"].([]any)
	require.True(t, ok)
	assert.Len(t, times, 3)
	assert.Equal(t, "2015-07-01T00:00:00Z", times[0])
}

func TestLoadCSVWithoutTimeColumn(t *testing.T) {
	path := writeTemp(t, "points.csv", "lat,lon\n-25,-70\n35,-70\n")
	fc, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, TypeMultiPoint, fc.Features[0].Geometry.Type)
	assert.Nil(t, fc.Features[0].Properties)
}

func TestLoadKMLTimestampedPlacemarks(t *testing.T) {
	kml := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark>
      <name>stop one</name>
      <TimeStamp><when>2015-07-01T00:00:00Z</when></TimeStamp>
      <Point><coordinates>-70,-25,0</coordinates></Point>
    </Placemark>
    <Placemark>
      <Point><coordinates>70,35</coordinates></Point>
    </Placemark>
  </Document>
</kml>`
	path := writeTemp(t, "stops.kml", kml)
	fc, err := LoadKML(path)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	first := fc.Features[0]
	assert.Equal(t, []float64{-70, -25}, first.Geometry.Coordinates.Position)
	assert.Equal(t, "2015-07-01T00:00:00Z", first.Properties["time"])
	assert.Equal(t, "stop one", first.Properties["name"])
	assert.Nil(t, fc.Features[1].Properties)
}
