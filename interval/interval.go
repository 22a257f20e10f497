package interval

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
)

// Sentinel errors returned by [Set] operations.
var (
	// ErrInvalidInterval indicates an end timestamp before its start.
	ErrInvalidInterval = errors.New("end time must not be before start time")
	// ErrEmptySet indicates an aggregate query on a set with no samples.
	ErrEmptySet = errors.New("interval set is empty")
	// ErrDegenerateRange indicates a rescale request over a zero-width range.
	ErrDegenerateRange = errors.New("degenerate rescale range")
	// ErrLengthMismatch indicates bulk construction from slices of unequal
	// length.
	ErrLengthMismatch = errors.New("start and end slices differ in length")
)

// Span is a single (start, end) pair, either one recorded sample or one
// segment of a merged cover.
type Span struct {
	Start float64
	End   float64
}

// Elapsed returns the span's duration.
func (s Span) Elapsed() float64 {
	return s.End - s.Start
}

// Set holds the recorded (start, end) samples for one operation, in insertion
// order, and serves derived views over them. The merged cover is cached and
// recomputed only after a mutation.
//
// Create instances with [New] or [FromSlices]. Safe for concurrent use.
type Set struct {
	starts []float64
	ends   []float64
	merged []Span
	dirty  bool
	mu     sync.Mutex
}

// New creates an empty [Set].
func New() *Set {
	return &Set{}
}

// FromSlices creates a [Set] pre-populated from parallel start and end
// slices. The slices must have equal length and every pair must satisfy
// end >= start; the input slices are copied.
func FromSlices(starts, ends []float64) (*Set, error) {
	if len(starts) != len(ends) {
		return nil, fmt.Errorf("%w: %d starts, %d ends", ErrLengthMismatch, len(starts), len(ends))
	}

	for i := range starts {
		if ends[i] < starts[i] {
			return nil, fmt.Errorf("%w: sample %d: (%v, %v)", ErrInvalidInterval, i, starts[i], ends[i])
		}
	}

	return &Set{
		starts: slices.Clone(starts),
		ends:   slices.Clone(ends),
		dirty:  true,
	}, nil
}

// Add appends one sample and invalidates the cached merged cover.
// It returns [ErrInvalidInterval], leaving the set unchanged, when end is
// before start. Zero-duration samples are valid.
func (s *Set) Add(start, end float64) error {
	if end < start {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidInterval, start, end)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.starts = append(s.starts, start)
	s.ends = append(s.ends, end)
	s.dirty = true

	return nil
}

// Clear drops all samples and cached views. The next [Set.Add] starts fresh.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.starts = nil
	s.ends = nil
	s.merged = nil
	s.dirty = false
}

// Len returns the number of recorded samples.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.starts)
}

// Profile returns copies of the raw start and end slices, in insertion order.
func (s *Set) Profile() (starts, ends []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.starts), slices.Clone(s.ends)
}

// Bounds returns the minimum start and maximum end across all samples.
// It returns [ErrEmptySet] when no samples have been recorded.
func (s *Set) Bounds() (low, high float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.starts) == 0 {
		return 0, 0, ErrEmptySet
	}

	low = math.Inf(1)
	high = math.Inf(-1)

	for i := range s.starts {
		low = math.Min(low, s.starts[i])
		high = math.Max(high, s.ends[i])
	}

	return low, high, nil
}

// Elapsed returns the per-sample end - start durations, in insertion order.
func (s *Set) Elapsed() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := make([]float64, len(s.starts))
	for i := range s.starts {
		elapsed[i] = s.ends[i] - s.starts[i]
	}

	return elapsed
}

// Merged returns the minimal set of non-overlapping spans whose union equals
// the union of all recorded samples, ordered by start. The result is cached
// until the next mutation; the returned slice must not be modified.
func (s *Set) Merged() []Span {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mergedLocked()
}

// mergedLocked recomputes the merged cover if the cache is stale.
//
// Starts and ends are sorted independently: once sorted, the pairing between
// starts[i] and ends[i] is lost, but merging only needs to know when the
// number of concurrently open intervals drops to zero, which the two sorted
// sequences encode. A segment [starts[j], ends[i]] closes exactly when no
// interval opens before ends[i].
func (s *Set) mergedLocked() []Span {
	if !s.dirty {
		return s.merged
	}

	n := len(s.starts)
	starts := slices.Clone(s.starts)
	ends := slices.Clone(s.ends)
	slices.Sort(starts)
	slices.Sort(ends)

	merged := make([]Span, 0, n)

	j := 0

	for i := range n {
		if i == n-1 || starts[i+1] > ends[i] {
			merged = append(merged, Span{Start: starts[j], End: ends[i]})
			j = i + 1
		}
	}

	s.merged = merged
	s.dirty = false

	return s.merged
}

// Bottleneck returns the total duration during which at least one call was
// active, with overlap double-counting removed: the sum of the merged
// cover's span durations. An empty set has a zero bottleneck.
func (s *Set) Bottleneck() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, span := range s.mergedLocked() {
		total += span.Elapsed()
	}

	return total
}

// Rescaled maps every raw sample linearly onto the [0, 1] coordinate space
// defined by (low, high), via (t - low) / (high - low), in insertion order.
// Samples outside the range map outside [0, 1]. It returns
// [ErrDegenerateRange] when high equals low.
func (s *Set) Rescaled(low, high float64) ([]Span, error) {
	if high == low {
		return nil, fmt.Errorf("%w: (%v, %v)", ErrDegenerateRange, low, high)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return rescale(s.starts, s.ends, low, high), nil
}

// RescaledMerged is [Set.Rescaled] over the merged cover instead of the raw
// samples.
func (s *Set) RescaledMerged(low, high float64) ([]Span, error) {
	if high == low {
		return nil, fmt.Errorf("%w: (%v, %v)", ErrDegenerateRange, low, high)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.mergedLocked()

	spans := make([]Span, len(merged))
	for i, span := range merged {
		spans[i] = Span{
			Start: (span.Start - low) / (high - low),
			End:   (span.End - low) / (high - low),
		}
	}

	return spans, nil
}

// Shifted returns the raw samples translated so that low maps to zero,
// keeping absolute durations. Used for absolute-scale timeline rendering,
// where [Set.Rescaled] serves the fractional variant.
func (s *Set) Shifted(low float64) []Span {
	s.mu.Lock()
	defer s.mu.Unlock()

	spans := make([]Span, len(s.starts))
	for i := range s.starts {
		spans[i] = Span{
			Start: s.starts[i] - low,
			End:   s.ends[i] - low,
		}
	}

	return spans
}

func rescale(starts, ends []float64, low, high float64) []Span {
	frame := high - low

	spans := make([]Span, len(starts))
	for i := range starts {
		spans[i] = Span{
			Start: (starts[i] - low) / frame,
			End:   (ends[i] - low) / frame,
		}
	}

	return spans
}
