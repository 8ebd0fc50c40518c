package geojson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Geometry types recognized by the decoder.
const (
	TypePoint           = "Point"
	TypeMultiPoint      = "MultiPoint"
	TypeLineString      = "LineString"
	TypeMultiLineString = "MultiLineString"
	TypePolygon         = "Polygon"
	TypeMultiPolygon    = "MultiPolygon"
)

// Coordinates is one node of a geometry's coordinate tree. A node is either
// a leaf position ([lon, lat] with an optional altitude) or a list of child
// nodes; the depth varies with the geometry type (Point 0, MultiPolygon 3).
type Coordinates struct {
	Position []float64
	Children []Coordinates
}

// IsPosition reports whether the node is a bare [lon, lat] leaf.
func (c Coordinates) IsPosition() bool { return c.Position != nil }

// Len is the number of top-level elements; zero for a leaf position.
func (c Coordinates) Len() int { return len(c.Children) }

// Slice returns a node holding children [i:j), clamped to the valid range.
func (c Coordinates) Slice(i, j int) Coordinates {
	n := len(c.Children)
	if i < 0 {
		i = 0
	}
	if j > n {
		j = n
	}
	if i > j {
		i = j
	}
	return Coordinates{Children: c.Children[i:j]}
}

// EachPosition calls fn for every leaf position under the node.
func (c Coordinates) EachPosition(fn func(pos []float64)) {
	if c.Position != nil {
		fn(c.Position)
		return
	}
	for _, child := range c.Children {
		child.EachPosition(fn)
	}
}

func (c *Coordinates) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return errors.New("coordinates: expected array")
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		*c = Coordinates{Children: []Coordinates{}}
		return nil
	}
	if first := bytes.TrimSpace(raw[0]); len(first) > 0 && first[0] != '[' {
		// numeric first element: leaf position
		var pos []float64
		if err := json.Unmarshal(data, &pos); err != nil {
			return fmt.Errorf("coordinates: %w", err)
		}
		*c = Coordinates{Position: pos}
		return nil
	}
	children := make([]Coordinates, len(raw))
	for i, msg := range raw {
		if err := children[i].UnmarshalJSON(msg); err != nil {
			return err
		}
	}
	*c = Coordinates{Children: children}
	return nil
}

func (c Coordinates) MarshalJSON() ([]byte, error) {
	if c.Position != nil {
		return json.Marshal(c.Position)
	}
	if c.Children == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Children)
}

// Geometry is a GeoJSON geometry with its coordinate tree.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates Coordinates `json:"coordinates"`
}

// Feature couples a geometry with its properties. Timestamp sequences, when
// present, live under the properties keys recognized by the timeline package.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
	Geometry   *Geometry      `json:"geometry"`
}

// FeatureCollection is the uniform view every input shape is normalized to.
type FeatureCollection struct {
	Type     string     `json:"type"`
	Features []*Feature `json:"features"`
}

func isGeometryType(t string) bool {
	switch t {
	case TypePoint, TypeMultiPoint, TypeLineString, TypeMultiLineString, TypePolygon, TypeMultiPolygon:
		return true
	}
	return false
}

// Decode parses GeoJSON bytes and normalizes the three accepted shapes: a
// bare geometry is wrapped as a feature, a bare feature as a one-element
// collection, and a collection is used as-is.
func Decode(data []byte) (*FeatureCollection, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	switch {
	case probe.Type == "FeatureCollection":
		var fc FeatureCollection
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, err
		}
		return &fc, nil
	case probe.Type == "Feature":
		var f Feature
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		return &FeatureCollection{Type: "FeatureCollection", Features: []*Feature{&f}}, nil
	case isGeometryType(probe.Type):
		var g Geometry
		if err := json.Unmarshal(data, &g); err != nil {
			return nil, err
		}
		f := &Feature{Type: "Feature", Geometry: &g}
		return &FeatureCollection{Type: "FeatureCollection", Features: []*Feature{f}}, nil
	}
	return nil, fmt.Errorf("geojson: unsupported type %q", probe.Type)
}
