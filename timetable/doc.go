// Package timetable turns a [timeprofile.Profiler] into tabular summaries:
// one row per recorded operation with its call count, average, longest, and
// bottleneck durations in milliseconds.
//
// [Rows] builds the rows, [Sort] applies the ordering contract (name
// ascending, numeric columns descending, optionally reversed), and [Render]
// formats an aligned plain-text table. [EncodeYAML] and [EncodeJSON] emit the
// same rows as a machine-readable [Report], and [Schema] describes that
// document for consumers validating exported reports:
//
//	rows := timetable.Rows(p)
//	timetable.Sort(rows, timetable.OrderByBottleneck, false)
//	fmt.Print(timetable.Render(rows))
//
// Operations with zero recorded calls are omitted from the rows; aggregate
// queries on them have no defined value.
package timetable
