// Package interval provides [Set], an append-only collection of (start, end)
// timestamp pairs recorded for a single operation, together with the derived
// views reporting code needs: per-sample elapsed times, the merged
// non-overlapping cover of all samples, the total active ("bottleneck")
// duration, and linear rescaling onto a display coordinate range.
//
// Timestamps are unit-agnostic float64 values; callers fix one unit for the
// whole system (seconds in [go.jacobcolvin.com/timeprofiles/timeprofile]).
// The merged cover is computed lazily and cached until the next mutation, so
// repeated aggregate queries between mutations are cheap.
//
// A Set is safe for concurrent use:
//
//	s := interval.New()
//	err := s.Add(0.1, 0.4)
//	total := s.Bottleneck()
package interval
