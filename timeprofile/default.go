package timeprofile

// Default is the package-level [Profiler] used by the top-level functions,
// for programs that want one registry per process.
var Default = New()

// Record calls [Profiler.Record] on [Default].
func Record(name string, start, end float64) error {
	return Default.Record(name, start, end)
}

// Track calls [Profiler.Track] on [Default].
func Track(name string) func() {
	return Default.Track(name)
}

// WrapFunc calls [Profiler.WrapFunc] on [Default].
func WrapFunc(fn any) any {
	return Default.WrapFunc(fn)
}

// WrapAll calls [Profiler.WrapAll] on [Default].
func WrapAll(composite any) error {
	return Default.WrapAll(composite)
}

// Reset calls [Profiler.Reset] on [Default].
func Reset() {
	Default.Reset()
}
