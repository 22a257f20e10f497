package timeprofile

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"go.jacobcolvin.com/timeprofiles/interval"
)

// ErrNotStructPointer indicates a [Profiler.WrapAll] target that is not a
// non-nil pointer to a struct.
var ErrNotStructPointer = errors.New("composite must be a non-nil struct pointer")

// Profiler is a registry of recorded intervals, one [interval.Set] per
// operation name. Sets are created lazily on first record and grow until
// [Profiler.Reset].
//
// Create instances with [New]. Safe for concurrent use.
type Profiler struct {
	profiles map[string]*interval.Set
	wrapped  map[uintptr]struct{}
	epoch    time.Time
	mu       sync.Mutex
}

// Option configures a [Profiler].
type Option func(*Profiler)

// WithEpoch anchors the profiler's clock at t instead of the construction
// time. All recorded timestamps are seconds elapsed since the epoch.
func WithEpoch(t time.Time) Option {
	return func(p *Profiler) {
		p.epoch = t
	}
}

// New creates an empty [Profiler] with the given options.
func New(opts ...Option) *Profiler {
	p := &Profiler{
		profiles: make(map[string]*interval.Set),
		wrapped:  make(map[uintptr]struct{}),
		epoch:    time.Now(),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Now returns the current time in seconds since the profiler's epoch, on the
// monotonic clock.
func (p *Profiler) Now() float64 {
	return time.Since(p.epoch).Seconds()
}

// Record appends one (start, end) sample to the named operation's set,
// creating the set on first use. It returns [interval.ErrInvalidInterval],
// leaving the registry unchanged, when end is before start.
func (p *Profiler) Record(name string, start, end float64) error {
	// Validate before the lazy create so a rejected sample never leaves an
	// empty set behind.
	if end < start {
		return fmt.Errorf("record %s: %w: (%v, %v)", name, interval.ErrInvalidInterval, start, end)
	}

	return p.set(name).Add(start, end)
}

// set returns the named operation's set, creating it if needed. Creation is
// atomic with respect to concurrent first records for the same name.
func (p *Profiler) set(name string) *interval.Set {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.profiles[name]
	if !ok {
		s = interval.New()
		p.profiles[name] = s
	}

	return s
}

// Get returns the named operation's set, or false when the operation has
// never been recorded.
func (p *Profiler) Get(name string) (*interval.Set, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.profiles[name]

	return s, ok
}

// All returns a snapshot copy of the name-to-set mapping. The sets are live
// views: they keep accumulating if recording continues, and each set is
// individually safe for concurrent reads.
func (p *Profiler) All() map[string]*interval.Set {
	p.mu.Lock()
	defer p.mu.Unlock()

	return maps.Clone(p.profiles)
}

// Names returns all recorded operation names, sorted.
func (p *Profiler) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Sorted(maps.Keys(p.profiles))
}

// Len returns the number of operations with at least one lookup or record.
func (p *Profiler) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.profiles)
}

// Reset atomically replaces the mapping with an empty one. Sets obtained
// before the reset remain valid but detached: they are no longer reachable
// from the profiler.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.profiles = make(map[string]*interval.Set)
}

// Track captures a start timestamp and returns a stop function that records
// the completed interval under name. Defer the stop function immediately so
// the interval is recorded even when the tracked code panics:
//
//	defer p.Track("Server.Handle")()
func (p *Profiler) Track(name string) func() {
	start := p.Now()

	return func() {
		// Both timestamps come from one monotonic clock, so Record cannot
		// reject them.
		_ = p.Record(name, start, p.Now())
	}
}
