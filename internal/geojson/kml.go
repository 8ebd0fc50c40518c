package geojson

import (
	"encoding/xml"
	"errors"
	"os"
	"strconv"
	"strings"
)

// LoadKML extracts Point placemarks from a KML file, carrying each
// placemark's TimeStamp (if any) into the feature's "time" property.
// KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func LoadKML(path string) (*FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	type kmlPoint struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlTimeStamp struct {
		When string `xml:"when"`
	}
	type kmlPlacemark struct {
		Name      string        `xml:"name"`
		Point     *kmlPoint     `xml:"Point"`
		TimeStamp *kmlTimeStamp `xml:"TimeStamp"`
	}
	type kmlFolder struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
		Document   struct {
			Placemarks []kmlPlacemark `xml:"Placemark"`
			Folders    []kmlFolder    `xml:"Folder"`
		} `xml:"Document"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	placemarks := append(doc.Placemarks, doc.Document.Placemarks...)
	for _, folder := range doc.Document.Folders {
		placemarks = append(placemarks, folder.Placemarks...)
	}
	var feats []*Feature
	for _, pm := range placemarks {
		if pm.Point == nil {
			continue
		}
		for _, tuple := range strings.Fields(pm.Point.Coordinates) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			f := &Feature{
				Type:     "Feature",
				Geometry: &Geometry{Type: TypePoint, Coordinates: Coordinates{Position: []float64{lon, lat}}},
			}
			props := map[string]any{}
			if pm.Name != "" {
				props["name"] = pm.Name
			}
			if pm.TimeStamp != nil && strings.TrimSpace(pm.TimeStamp.When) != "" {
				props["time"] = strings.TrimSpace(pm.TimeStamp.When)
			}
			if len(props) > 0 {
				f.Properties = props
			}
			feats = append(feats, f)
		}
	}
	if len(feats) == 0 {
		return nil, errors.New("kml: no points found")
	}
	return &FeatureCollection{Type: "FeatureCollection", Features: feats}, nil
}
