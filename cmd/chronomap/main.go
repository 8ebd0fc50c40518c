package main

import (
	"flag"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"chronomap/internal/log"
	"chronomap/internal/timeline"
	"chronomap/internal/tui"
)

func main() {
	defaults := timeline.DefaultOptions()

	period := flag.String("period", defaults.Period, "tick granularity, ISO-8601 duration (P1D, PT1H, P1M)")
	trailing := flag.String("duration", "", "trailing window length, ISO-8601 duration; empty = unbounded history")
	transition := flag.Duration("transition", defaults.TransitionTime, "animation time between ticks")
	loop := flag.Bool("loop", defaults.Loop, "wrap the cursor to the start at the end of the sequence")
	autoPlay := flag.Bool("autoplay", defaults.AutoPlay, "start advancing immediately")
	addLastPoint := flag.Bool("add-last-point", defaults.AddLastPoint, "keep a marker at the last visible vertex of a line")
	minSpeed := flag.Float64("min-speed", defaults.MinSpeed, "lower bound on the playback rate multiplier")
	maxSpeed := flag.Float64("max-speed", defaults.MaxSpeed, "upper bound on the playback rate multiplier")
	dateFormat := flag.String("date-format", defaults.DateFormat, "cursor readout layout (Go reference time)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*logLevel)

	opts := timeline.Options{
		TransitionTime: *transition,
		Loop:           *loop,
		AutoPlay:       *autoPlay,
		AddLastPoint:   *addLastPoint,
		Period:         *period,
		Duration:       *trailing,
		MinSpeed:       *minSpeed,
		MaxSpeed:       *maxSpeed,
		DateFormat:     *dateFormat,
	}

	var m tea.Model
	if flag.NArg() > 0 {
		m = tui.NewWithPath(flag.Arg(0), opts)
	} else {
		m = tui.New(opts)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Error("program exited", "err", err)
		os.Exit(1)
	}
}
