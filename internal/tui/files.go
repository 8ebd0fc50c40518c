package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"chronomap/internal/geojson"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".geojson" || ext == ".json" || ext == ".csv" || ext == ".kml" {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath loads a supported file and restarts playback over it.
func (m *Model) loadPath(p string) {
	var (
		fc  *geojson.FeatureCollection
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".geojson", ".json":
		var src *geojson.Source
		if src, err = geojson.Open(p); err == nil {
			fc, err = src.Collection()
		}
	case ".csv":
		fc, err = geojson.LoadCSV(p)
	case ".kml":
		fc, err = geojson.LoadKML(p)
	default:
		m.status = "unsupported file: " + ext
		return
	}
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	if err := m.setCollection(fc); err != nil {
		m.status = "playback error: " + err.Error()
		return
	}
	m.selPath = p
	m.status = fmt.Sprintf("loaded: %s  features: %d  skipped: %d",
		filepath.Base(p), len(fc.Features), len(m.frame.Errors))
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}
