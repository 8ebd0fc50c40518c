package geojson

// Box is a lat/lon bounding box widened monotonically as positions are
// folded in; the zero value is fully unset.
type Box struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
	set            bool
}

// Empty reports whether no position has been folded in yet.
func (b Box) Empty() bool { return !b.set }

// Extend widens the box to include a single [lon, lat] position. The first
// position always sets all four bounds.
func (b *Box) Extend(lon, lat float64) {
	if !b.set {
		b.MinLat, b.MaxLat = lat, lat
		b.MinLon, b.MaxLon = lon, lon
		b.set = true
		return
	}
	if lat < b.MinLat {
		b.MinLat = lat
	}
	if lon < b.MinLon {
		b.MinLon = lon
	}
	if lat > b.MaxLat {
		b.MaxLat = lat
	}
	if lon > b.MaxLon {
		b.MaxLon = lon
	}
}

// Union folds another box in.
func (b *Box) Union(o Box) {
	if o.Empty() {
		return
	}
	b.Extend(o.MinLon, o.MinLat)
	b.Extend(o.MaxLon, o.MaxLat)
}

// Bounds walks every feature's coordinate tree down to the leaf positions
// and reduces to a single box. Features with missing geometry contribute
// nothing; an empty collection yields an empty box.
func Bounds(fc *FeatureCollection) Box {
	var box Box
	if fc == nil {
		return box
	}
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		f.Geometry.Coordinates.EachPosition(func(pos []float64) {
			if len(pos) < 2 {
				return
			}
			box.Extend(pos[0], pos[1])
		})
	}
	return box
}
