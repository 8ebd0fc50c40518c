package timeline

import (
	"fmt"
	"time"

	"github.com/senseyeio/duration"
)

// Clock owns the playback cursor. It is the sole writer of the cursor and
// of the derived window; everything else reads. One clock per map instance.
type Clock struct {
	period   duration.Duration
	trailing *duration.Duration

	start, end int64 // time domain from the data, epoch-ms
	cursor     int64

	looping bool
	playing bool
	halted  bool

	speed              float64
	minSpeed, maxSpeed float64
	transition         time.Duration
	dateFormat         string
}

// NewClock builds a clock over the [start, end] epoch-ms domain. The cursor
// begins at start; autoPlay decides whether it is initially running.
func NewClock(opts Options, start, end int64) (*Clock, error) {
	p, err := duration.ParseISO8601(opts.Period)
	if err != nil {
		return nil, fmt.Errorf("period %q: %w", opts.Period, err)
	}
	var trailing *duration.Duration
	if opts.Duration != "" {
		d, err := duration.ParseISO8601(opts.Duration)
		if err != nil {
			return nil, fmt.Errorf("duration %q: %w", opts.Duration, err)
		}
		trailing = &d
	}
	if end < start {
		end = start
	}
	minSpeed, maxSpeed := opts.MinSpeed, opts.MaxSpeed
	if minSpeed <= 0 {
		minSpeed = 0.1
	}
	if maxSpeed < minSpeed {
		maxSpeed = minSpeed
	}
	dateFormat := opts.DateFormat
	if dateFormat == "" {
		dateFormat = "2006-01-02 15:04:05"
	}
	return &Clock{
		period:     p,
		trailing:   trailing,
		start:      start,
		end:        end,
		cursor:     start,
		looping:    opts.Loop,
		playing:    opts.AutoPlay,
		speed:      1,
		minSpeed:   minSpeed,
		maxSpeed:   maxSpeed,
		transition: opts.TransitionTime,
		dateFormat: dateFormat,
	}, nil
}

func shiftForward(ms int64, d duration.Duration) int64 {
	return d.Shift(time.UnixMilli(ms).UTC()).UnixMilli()
}

func shiftBack(ms int64, d duration.Duration) int64 {
	neg := duration.Duration{Y: -d.Y, M: -d.M, W: -d.W, D: -d.D, TH: -d.TH, TM: -d.TM, TS: -d.TS}
	return neg.Shift(time.UnixMilli(ms).UTC()).UnixMilli()
}

// Tick advances the cursor by one period. At the end of the domain a
// looping clock resets to the first available timestamp; a non-looping one
// halts and reports false.
func (c *Clock) Tick() bool {
	if c.halted {
		return false
	}
	if c.cursor >= c.end {
		if c.looping {
			c.cursor = c.start
			return true
		}
		c.halted = true
		c.playing = false
		return false
	}
	next := shiftForward(c.cursor, c.period)
	if next > c.end {
		next = c.end
	}
	c.cursor = next
	return true
}

// StepBack moves the cursor one period towards the domain start.
func (c *Clock) StepBack() {
	prev := shiftBack(c.cursor, c.period)
	if prev < c.start {
		prev = c.start
	}
	c.cursor = prev
	c.halted = false
}

// Window derives the current [min, max] range: max is the cursor, min is
// the cursor less the trailing duration, or unbounded without one.
func (c *Clock) Window() Window {
	w := Window{Min: DistantPast, Max: c.cursor}
	if c.trailing != nil {
		w.Min = shiftBack(c.cursor, *c.trailing)
	}
	return w
}

// Rewind moves the cursor back to the domain start and clears a halt.
func (c *Clock) Rewind() {
	c.cursor = c.start
	c.halted = false
}

// Seek moves the cursor to t, clamped to the domain.
func (c *Clock) Seek(t int64) {
	if t < c.start {
		t = c.start
	}
	if t > c.end {
		t = c.end
	}
	c.cursor = t
	c.halted = false
}

// Cursor returns the current position in epoch-ms.
func (c *Clock) Cursor() int64 { return c.cursor }

// Playing reports whether the clock is advancing on its own.
func (c *Clock) Playing() bool { return c.playing }

// Halted reports whether a non-looping clock ran off the end.
func (c *Clock) Halted() bool { return c.halted }

// SetPlaying starts or pauses autonomous advancement. Starting a halted
// clock rewinds it to the domain start.
func (c *Clock) SetPlaying(playing bool) {
	if playing && c.halted {
		c.cursor = c.start
		c.halted = false
	}
	c.playing = playing
}

// Toggle flips play/pause and returns the new state.
func (c *Clock) Toggle() bool {
	c.SetPlaying(!c.playing)
	return c.playing
}

// Speed returns the current rate multiplier.
func (c *Clock) Speed() float64 { return c.speed }

// SetSpeed clamps the multiplier into [minSpeed, maxSpeed].
func (c *Clock) SetSpeed(mult float64) {
	if mult < c.minSpeed {
		mult = c.minSpeed
	}
	if mult > c.maxSpeed {
		mult = c.maxSpeed
	}
	c.speed = mult
}

// TransitionTime is how long the renderer should animate between
// consecutive windows; the clock reports it, never interpolates.
func (c *Clock) TransitionTime() time.Duration { return c.transition }

// Interval is the wall-clock time until the next tick at the current speed.
func (c *Clock) Interval() time.Duration {
	iv := time.Duration(float64(c.transition) / c.speed)
	if iv <= 0 {
		iv = time.Millisecond
	}
	return iv
}

// Progress maps the cursor onto [0, 1] over the domain.
func (c *Clock) Progress() float64 {
	if c.end == c.start {
		return 1
	}
	return float64(c.cursor-c.start) / float64(c.end-c.start)
}

// FormatCursor renders the cursor with the configured date layout.
func (c *Clock) FormatCursor() string {
	return time.UnixMilli(c.cursor).UTC().Format(c.dateFormat)
}
