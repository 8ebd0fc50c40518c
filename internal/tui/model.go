package tui

import (
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"chronomap/internal/geojson"
	"chronomap/internal/timeline"
)

// Model is the playback viewer state. The player owns the time cursor; the
// model only holds the most recent frame it produced.
type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Playback
	opts   timeline.Options
	player *timeline.Player
	frame  timeline.Frame
	bbox   geojson.Box

	// last rendered map size
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// tickMsg drives playback; one arrives per transition interval while the
// clock is running.
type tickMsg time.Time

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// New builds an empty viewer with the given playback options.
func New(opts timeline.Options) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "chronomap ready",
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
		opts:        opts,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste timestamped GeoJSON here. Press Enter to load; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns inferred per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(path string, opts timeline.Options) Model {
	m := New(opts)
	m.loadPath(path)
	return m
}

// Init schedules the first tick when the clock was configured to auto-play.
func (m Model) Init() tea.Cmd {
	if m.player != nil && m.player.Clock().Playing() {
		return tickCmd(m.player.Clock().Interval())
	}
	return nil
}

// setCollection installs a freshly loaded dataset: builds the player,
// frames the viewport from the global bounds, and produces the first frame.
func (m *Model) setCollection(fc *geojson.FeatureCollection) error {
	player, err := timeline.NewPlayer(fc, m.opts)
	if err != nil {
		return err
	}
	m.player = player
	m.frame = player.Frame()
	m.bbox = geojson.Bounds(fc)
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0

	// prefer polys > lines > points for visibility
	var pts, lines, polys int
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		switch f.Geometry.Type {
		case geojson.TypePoint, geojson.TypeMultiPoint:
			pts++
		case geojson.TypeLineString, geojson.TypeMultiLineString:
			lines++
		case geojson.TypePolygon, geojson.TypeMultiPolygon:
			polys++
		}
	}
	m.showPolys = polys > 0
	m.showLines = lines > 0
	m.showPoints = pts > 0 || (lines == 0 && polys == 0)
	return nil
}
