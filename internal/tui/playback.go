package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"chronomap/internal/geojson"
	"chronomap/internal/timeline"
)

// renderData flattens one frame's filtered features into the layer shapes
// the canvas draws.
type renderData struct {
	points   [][2]float64
	lines    [][][2]float64
	polygons [][][][2]float64
	markers  [][2]float64 // trailing line markers and icon-styled points
}

func position(c geojson.Coordinates) ([2]float64, bool) {
	if len(c.Position) < 2 {
		return [2]float64{}, false
	}
	return [2]float64{c.Position[0], c.Position[1]}, true
}

func flatPositions(c geojson.Coordinates) [][2]float64 {
	out := make([][2]float64, 0, len(c.Children))
	for _, child := range c.Children {
		if p, ok := position(child); ok {
			out = append(out, p)
		}
	}
	return out
}

func hasIconStyle(f *geojson.Feature) bool {
	if f.Properties == nil {
		return false
	}
	icon, _ := f.Properties["icon"].(string)
	return icon == "marker" || icon == "circle"
}

// buildRenderData walks the frame's visible features. Hidden features
// (nil) are skipped; unexpected nesting just contributes nothing.
func buildRenderData(features []*geojson.Feature, addLastPoint bool) renderData {
	var d renderData
	for _, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}
		coords := f.Geometry.Coordinates
		switch f.Geometry.Type {
		case geojson.TypePoint:
			if p, ok := position(coords); ok {
				if hasIconStyle(f) {
					d.markers = append(d.markers, p)
				} else {
					d.points = append(d.points, p)
				}
			}
		case geojson.TypeMultiPoint:
			pts := flatPositions(coords)
			if hasIconStyle(f) {
				d.markers = append(d.markers, pts...)
			} else {
				d.points = append(d.points, pts...)
			}
		case geojson.TypeLineString:
			ls := flatPositions(coords)
			if len(ls) == 0 {
				continue
			}
			d.lines = append(d.lines, ls)
			if addLastPoint {
				d.markers = append(d.markers, ls[len(ls)-1])
			}
		case geojson.TypeMultiLineString:
			for _, sub := range coords.Children {
				ls := flatPositions(sub)
				if len(ls) > 0 {
					d.lines = append(d.lines, ls)
				}
			}
		case geojson.TypePolygon:
			if poly := polygonRings(coords); len(poly) > 0 {
				d.polygons = append(d.polygons, poly)
			}
		case geojson.TypeMultiPolygon:
			for _, sub := range coords.Children {
				if poly := polygonRings(sub); len(poly) > 0 {
					d.polygons = append(d.polygons, poly)
				}
			}
		}
	}
	return d
}

func polygonRings(c geojson.Coordinates) [][][2]float64 {
	var poly [][][2]float64
	for _, ring := range c.Children {
		if pts := flatPositions(ring); len(pts) > 0 {
			poly = append(poly, pts)
		}
	}
	return poly
}

// renderTimeline draws the playback strip: state glyph, cursor date,
// progress bar, window mode, speed, and a skipped-feature tally.
func (m Model) renderTimeline(width int) string {
	if m.player == nil {
		return dimStyle.Render(" no dataset loaded ")
	}
	clock := m.player.Clock()

	state := "▶"
	if !clock.Playing() {
		state = "⏸"
		if clock.Halted() {
			state = "■"
		}
	}
	date := clock.FormatCursor()

	win := m.frame.Window
	mode := "all history"
	if win.Min > timeline.DistantPast {
		mode = "since " + time.UnixMilli(win.Min).UTC().Format("2006-01-02 15:04")
	}

	left := fmt.Sprintf(" %s %s  %s  %.1fx", state, date, mode, clock.Speed())
	if n := len(m.frame.Errors); n > 0 {
		left += errStyle.Render(fmt.Sprintf("  %d skipped", n))
	}

	barW := width - lipgloss.Width(left) - 4
	if barW < 8 {
		return accentStyle.Render(left)
	}
	filled := int(clock.Progress() * float64(barW))
	if filled > barW {
		filled = barW
	}
	bar := accentStyle.Render(strings.Repeat("━", filled)) + dimStyle.Render(strings.Repeat("─", barW-filled))
	return accentStyle.Render(left) + "  " + bar
}
