// Package timechart renders a [timeprofile.Profiler] as a gantt-style
// activity timeline in the terminal: one row per operation, ordered by first
// call, with each call's active span drawn as a colored bar over the global
// time range shared by all operations.
//
// [Timeline] is the query surface: per-operation spans normalized onto
// [0, 1] over the global min/max, optionally using the merged cover instead
// of raw samples. [Chart] renders a timeline as ANSI truecolor half-block
// text; bars are drawn at an oversampled pixel resolution and scaled to the
// target width, so sub-cell span edges render smoothly:
//
//	out, err := timechart.Chart(p,
//	    timechart.WithWidth(100),
//	    timechart.WithMerged(),
//	)
//	fmt.Print(out)
//
// A degenerate global range (a single instantaneous sample) falls back to a
// fixed one-second span rather than failing. [WithWindow] restricts the
// visible fraction of the range, which is how interactive callers implement
// zoom and pan.
package timechart
