package tui

import (
	"sort"
	"strings"
)

// lonLatBounds returns the fixed projection box (lon/lat) for the loaded
// dataset. The viewport is framed once from the global bounds and stays put
// during playback.
func (m Model) lonLatBounds() (minLon, minLat, maxLon, maxLat float64, ok bool) {
	if m.bbox.Empty() {
		return 0, 0, 0, 0, false
	}
	return m.bbox.MinLon, m.bbox.MinLat, m.bbox.MaxLon, m.bbox.MaxLat, true
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	minLon, minLat, maxLon, maxLat, ok := m.lonLatBounds()
	if !ok || !(maxLon > minLon) || !(maxLat > minLat) {
		// degenerate box (single point dataset): center it
		if ok {
			return (w * 2) / 2, (h * 4) / 2, true
		}
		return 0, 0, false
	}
	nx := (lon - minLon) / (maxLon - minLon)
	ny := (lat - minLat) / (maxLat - minLat)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// renderAsciiMap rasterizes the current frame into a braille canvas.
func (m Model) renderAsciiMap(w, h int) string {
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		lines[y] = strings.Repeat(" ", w)
	}
	var data renderData
	if m.player != nil {
		data = buildRenderData(m.frame.Features, m.player.AddLastPoint())
	}

	br := newBrailleBuf(w, h)

	// Polygons: scanline fill on the outer ring, then braille edges
	if m.showPolys {
		for _, poly := range data.polygons {
			var ringsMic [][][2]int
			for _, ring := range poly {
				var sm [][2]int
				for _, p := range ring {
					mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
					if !ok {
						continue
					}
					sm = append(sm, [2]int{mx, my})
				}
				if len(sm) >= 3 {
					ringsMic = append(ringsMic, sm)
				}
			}
			if len(ringsMic) == 0 {
				continue
			}
			outer := ringsMic[0]
			hMic := h * 4
			for yMic := 0; yMic < hMic; yMic++ {
				var xs []int
				for i := 0; i < len(outer); i++ {
					a := outer[i]
					b := outer[(i+1)%len(outer)]
					if a[1] == b[1] {
						continue
					}
					y0, y1 := a[1], b[1]
					x0, x1 := a[0], b[0]
					if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
						t := float64(yMic-y0) / float64(y1-y0)
						xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
					}
				}
				if len(xs) >= 2 {
					sort.Ints(xs)
					for i := 0; i+1 < len(xs); i += 2 {
						xstart, xend := xs[i], xs[i+1]
						if xstart > xend {
							xstart, xend = xend, xstart
						}
						for xMic := max(0, xstart); xMic <= xend; xMic++ {
							br.setPixel(xMic, yMic)
						}
					}
				}
			}
			for _, ring := range ringsMic {
				for i := 0; i < len(ring); i++ {
					a := ring[i]
					b := ring[(i+1)%len(ring)]
					br.drawLineMicro(a[0], a[1], b[0], b[1])
				}
			}
		}
	}

	// Line strings
	if m.showLines {
		for _, ls := range data.lines {
			var prev *[2]int
			for _, p := range ls {
				mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
				if !ok {
					continue
				}
				if prev != nil {
					br.drawLineMicro(prev[0], prev[1], mx, my)
				}
				prev = &[2]int{mx, my}
			}
			// a windowed-down single vertex still shows as a dot
			if prev != nil && len(ls) == 1 {
				br.setPixel(prev[0], prev[1])
			}
		}
	}

	// Points
	if m.showPoints {
		for _, p := range data.points {
			mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
			if !ok {
				continue
			}
			br.setPixel(mx, my)
		}
	}

	// Composite braille overlay onto base lines
	braLines := br.toLines()
	for y := 0; y < h && y < len(braLines); y++ {
		base := []rune(lines[y])
		over := []rune(braLines[y])
		for x := 0; x < len(base) && x < len(over); x++ {
			if over[x] != ' ' {
				base[x] = over[x]
			}
		}
		lines[y] = string(base)
	}

	// Markers (trailing line heads, icon-styled points) drawn as colored glyphs
	if m.showPoints || m.showLines {
		glyph := markerStyle.Render("●")
		for _, p := range data.markers {
			mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
			if !ok {
				continue
			}
			cx, cy := mx/2, my/4
			if cy < 0 || cy >= len(lines) {
				continue
			}
			r := []rune(lines[cy])
			if cx < 0 || cx >= len(r) {
				continue
			}
			lines[cy] = string(r[:cx]) + glyph + string(r[cx+1:])
		}
	}
	return strings.Join(lines, "\n")
}
