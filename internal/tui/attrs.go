package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	table "github.com/charmbracelet/bubbles/table"

	"chronomap/internal/geojson"
)

// refreshAttrsFromCurrent rebuilds the attribute table: one row per
// feature with its geometry, resolved time range, and current visibility.
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols))
	maxColW := 24
	for _, c := range cols {
		w := len(c) + 2
		for _, r := range rows {
			for i, cell := range r {
				if cols[i] == c && len(cell)+2 > w {
					w = len(cell) + 2
				}
			}
		}
		if w > maxColW {
			w = maxColW
		}
		tcols = append(tcols, table.Column{Title: c, Width: w})
	}
	trows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		trows = append(trows, table.Row(r))
	}
	// avoid transient column/row mismatch
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

func formatMs(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04")
}

func (m *Model) buildAttributes() ([]string, [][]string) {
	if m.player == nil {
		return nil, nil
	}
	cols := []string{"#", "geometry", "vertices", "first time", "last time", "visible", "properties"}
	var rows [][]string
	for i, f := range m.player.Features() {
		if f == nil {
			continue
		}
		gtype, verts := "-", 0
		if f.Geometry != nil {
			gtype = f.Geometry.Type
			if f.Geometry.Coordinates.IsPosition() {
				verts = 1
			} else {
				verts = f.Geometry.Coordinates.Len()
			}
		}
		first, last := "-", "-"
		times, err := m.player.Strategy().ResolveTimes(f)
		switch {
		case err != nil:
			first, last = "error", err.Error()
		case len(times) > 0:
			first, last = formatMs(times[0]), formatMs(times[len(times)-1])
		}
		visible := "hidden"
		if i < len(m.frame.Features) && m.frame.Features[i] != nil {
			g := m.frame.Features[i].Geometry
			switch {
			case g == nil || g.Coordinates.IsPosition():
				visible = "yes"
			case g.Coordinates.Len() == 0:
				visible = "empty"
			default:
				visible = fmt.Sprintf("%d/%d", g.Coordinates.Len(), verts)
			}
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1), gtype, fmt.Sprintf("%d", verts),
			first, last, visible, summarizeProps(f),
		})
	}
	return cols, rows
}

func summarizeProps(f *geojson.Feature) string {
	if len(f.Properties) == 0 {
		return ""
	}
	keys := make([]string, 0, len(f.Properties))
	for k := range f.Properties {
		switch k {
		case "times", "coordTimes", "linestringTimestamps", "time":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, f.Properties[k]))
	}
	return strings.Join(parts, " ")
}
