package timeline

import "time"

// Options is the recognized playback configuration surface. Period and
// Duration are ISO-8601 durations ("P1D", "PT1H", "P1M"); an empty Duration
// means unbounded history (every past coordinate stays visible).
type Options struct {
	TransitionTime time.Duration // animation time between ticks, reported to the renderer
	Loop           bool          // wrap the cursor to the start at the end of the sequence
	AutoPlay       bool          // start advancing immediately
	AddLastPoint   bool          // keep a marker at the last visible vertex of a line
	Period         string        // tick granularity
	Duration       string        // trailing-window length, "" = unbounded
	MinSpeed       float64       // lower bound on the playback rate multiplier
	MaxSpeed       float64       // upper bound on the playback rate multiplier
	DateFormat     string        // cursor readout layout
}

// DefaultOptions mirrors the upstream plugin defaults.
func DefaultOptions() Options {
	return Options{
		TransitionTime: 200 * time.Millisecond,
		Loop:           true,
		AutoPlay:       true,
		AddLastPoint:   true,
		Period:         "P1D",
		MinSpeed:       0.1,
		MaxSpeed:       10,
		DateFormat:     "2006-01-02 15:04:05",
	}
}
