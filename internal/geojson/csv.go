package geojson

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a track CSV with latitude/longitude columns and, when a
// time column is present, builds a single LineString feature whose "times"
// property parallels the vertices. Without a time column the rows become a
// plain MultiPoint.
// Column detection (case-insensitive): lat|latitude|y, lon|lng|long|longitude|x,
// time|timestamp|datetime|date|when.
func LoadCSV(path string) (*FeatureCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	idxLat, idxLon, idxTime := -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "time", "timestamp", "datetime", "date", "when":
			if idxTime == -1 {
				idxTime = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return nil, errors.New("csv: latitude/longitude columns not found")
	}
	var coords []Coordinates
	var times []any
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		coords = append(coords, Coordinates{Position: []float64{lon, lat}})
		if idxTime != -1 && idxTime < len(row) {
			times = append(times, strings.TrimSpace(row[idxTime]))
		}
	}
	if len(coords) == 0 {
		return nil, errors.New("csv: no valid points parsed")
	}
	feat := &Feature{
		Type:     "Feature",
		Geometry: &Geometry{Type: TypeLineString, Coordinates: Coordinates{Children: coords}},
	}
	if len(coords) == 1 {
		feat.Geometry.Type = TypeMultiPoint
	}
	if idxTime != -1 && len(times) == len(coords) {
		feat.Properties = map[string]any{"times": times}
	} else if idxTime == -1 {
		feat.Geometry.Type = TypeMultiPoint
	}
	return &FeatureCollection{Type: "FeatureCollection", Features: []*Feature{feat}}, nil
}
