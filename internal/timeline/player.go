package timeline

import (
	"time"

	"chronomap/internal/geojson"
)

// Frame is one tick's output for the renderer: the filtered features (nil
// where a feature is hidden this tick), the window they were filtered
// against, the transition time, and per-feature errors for features that
// were skipped.
type Frame struct {
	Window     Window
	Features   []*geojson.Feature
	Transition time.Duration
	Errors     []error
}

// Player ties the clock, the time index and the window filter together for
// one feature collection. All filtering within a tick observes the same
// frozen window; a single feature's failure never halts the tick.
type Player struct {
	clock    *Clock
	strategy FilterStrategy
	features []*geojson.Feature
	addLast  bool
}

// NewPlayer indexes the collection's timestamps, derives the playback
// domain from the earliest and latest across all features, and builds the
// clock. Features whose time data fails to resolve simply do not contribute
// to the domain; their errors resurface per frame.
func NewPlayer(fc *geojson.FeatureCollection, opts Options) (*Player, error) {
	ix := NewIndex()
	strategy := NewStrategy(ix)

	var features []*geojson.Feature
	if fc != nil {
		features = fc.Features
	}
	var start, end int64
	seen := false
	for _, f := range features {
		times, err := strategy.ResolveTimes(f)
		if err != nil {
			continue
		}
		for _, t := range times {
			if !seen || t < start {
				start = t
			}
			if !seen || t > end {
				end = t
			}
			seen = true
		}
	}
	clock, err := NewClock(opts, start, end)
	if err != nil {
		return nil, err
	}
	return &Player{
		clock:    clock,
		strategy: strategy,
		features: features,
		addLast:  opts.AddLastPoint,
	}, nil
}

// Clock exposes the player's cursor owner.
func (p *Player) Clock() *Clock { return p.clock }

// AddLastPoint reports whether the renderer should keep a trailing marker
// at the last visible vertex of each line.
func (p *Player) AddLastPoint() bool { return p.addLast }

// Strategy exposes the filter strategy, e.g. for inspection views that
// want a feature's resolved time range.
func (p *Player) Strategy() FilterStrategy { return p.strategy }

// Features returns the unfiltered input features.
func (p *Player) Features() []*geojson.Feature { return p.features }

// Frame filters every feature against the current window. The result slice
// parallels the input; hidden features are nil.
func (p *Player) Frame() Frame {
	w := p.clock.Window()
	out := Frame{
		Window:     w,
		Features:   make([]*geojson.Feature, len(p.features)),
		Transition: p.clock.TransitionTime(),
	}
	for i, f := range p.features {
		g, err := p.strategy.FilterByWindow(f, w)
		if err != nil {
			out.Errors = append(out.Errors, err)
			continue
		}
		out.Features[i] = g
	}
	return out
}

// Advance ticks the clock and produces the next frame. The bool mirrors
// Clock.Tick: false once a non-looping clock has run off the end.
func (p *Player) Advance() (Frame, bool) {
	ok := p.clock.Tick()
	return p.Frame(), ok
}
