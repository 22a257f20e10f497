package timechart

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"go.jacobcolvin.com/timeprofiles/interval"
	"go.jacobcolvin.com/timeprofiles/timeprofile"
)

// ErrNoProfiles indicates a timeline request against a profiler with no
// recorded samples.
var ErrNoProfiles = errors.New("no profiles recorded")

// defaultSpan is the range substituted when the global min and max coincide,
// which happens when the only samples are a single instant.
const defaultSpan = 1.0

// defaultWidth is the bar-area width in terminal cells when none is given.
const defaultWidth = 80

// TimelineRow is one operation's normalized timeline: spans mapped onto
// [0, 1] over the visible window.
type TimelineRow struct {
	Name  string
	Spans []interval.Span
}

// config collects the option values shared by [Timeline] and [Chart].
type config struct {
	width     int
	windowLo  float64
	windowHi  float64
	merged    bool
	reverse   bool
	fullNames bool
}

// Option configures [Timeline] and [Chart].
type Option func(*config)

// WithWidth sets the bar-area width in terminal cells. Values below 1 fall
// back to the default of 80.
func WithWidth(cols int) Option {
	return func(c *config) {
		c.width = cols
	}
}

// WithMerged plots each operation's merged cover instead of its raw samples,
// collapsing overlapping concurrent calls into contiguous bars.
func WithMerged() Option {
	return func(c *config) {
		c.merged = true
	}
}

// WithReverse reverses the row order.
func WithReverse() Option {
	return func(c *config) {
		c.reverse = true
	}
}

// WithFullNames keeps package-qualified operation names as row labels.
func WithFullNames() Option {
	return func(c *config) {
		c.fullNames = true
	}
}

// WithWindow restricts the visible range to the [lo, hi] fraction of the
// global range, for zooming and panning. Both values are clamped to [0, 1];
// an empty window falls back to the full range.
func WithWindow(lo, hi float64) Option {
	return func(c *config) {
		c.windowLo = lo
		c.windowHi = hi
	}
}

func newConfig(opts []Option) config {
	c := config{
		width:    defaultWidth,
		windowLo: 0,
		windowHi: 1,
	}
	for _, opt := range opts {
		opt(&c)
	}

	if c.width < 1 {
		c.width = defaultWidth
	}

	c.windowLo = math.Max(0, math.Min(1, c.windowLo))
	c.windowHi = math.Max(0, math.Min(1, c.windowHi))

	if c.windowLo >= c.windowHi {
		c.windowLo, c.windowHi = 0, 1
	}

	return c
}

// Timeline builds the normalized timeline rows for every operation with at
// least one sample, ordered by first call (earliest start first, reversed by
// [WithReverse]). Span coordinates are fractions of the visible window;
// spans outside the window fall outside [0, 1]. It returns [ErrNoProfiles]
// when nothing has been recorded.
func Timeline(p *timeprofile.Profiler, opts ...Option) ([]TimelineRow, error) {
	rows, _, err := timeline(p, newConfig(opts))

	return rows, err
}

// Window returns the visible time range [low, high] that [Timeline] maps
// onto [0, 1] for the same profiler and options, in profiler seconds.
func Window(p *timeprofile.Profiler, opts ...Option) (low, high float64, err error) {
	_, window, err := timeline(p, newConfig(opts))

	return window.low, window.high, err
}

type window struct {
	low  float64
	high float64
}

type entry struct {
	name  string
	set   *interval.Set
	first float64
}

func timeline(p *timeprofile.Profiler, cfg config) ([]TimelineRow, window, error) {
	var (
		entries []entry
		lo      = math.Inf(1)
		hi      = math.Inf(-1)
	)

	for name, set := range p.All() {
		first, last, err := set.Bounds()
		if err != nil {
			// Zero-call operations have no place on a timeline.
			continue
		}

		lo = math.Min(lo, first)
		hi = math.Max(hi, last)

		entries = append(entries, entry{name: name, set: set, first: first})
	}

	if len(entries) == 0 {
		return nil, window{}, ErrNoProfiles
	}

	// A single instantaneous sample yields a zero-width range; plot it on a
	// fixed span instead of failing.
	if hi == lo {
		hi = lo + defaultSpan
	}

	// Order by first call, name breaking ties so output is deterministic.
	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Or(cmp.Compare(a.first, b.first), cmp.Compare(a.name, b.name))
	})

	if cfg.reverse {
		slices.Reverse(entries)
	}

	win := window{
		low:  lo + cfg.windowLo*(hi-lo),
		high: lo + cfg.windowHi*(hi-lo),
	}

	rows := make([]TimelineRow, len(entries))

	for i, e := range entries {
		var (
			spans []interval.Span
			err   error
		)

		if cfg.merged {
			spans, err = e.set.RescaledMerged(win.low, win.high)
		} else {
			spans, err = e.set.Rescaled(win.low, win.high)
		}

		if err != nil {
			return nil, window{}, fmt.Errorf("timeline for %s: %w", e.name, err)
		}

		name := e.name
		if !cfg.fullNames {
			name = timeprofile.ShortName(name)
		}

		rows[i] = TimelineRow{Name: name, Spans: spans}
	}

	return rows, win, nil
}
