// Package timeprofile records wall-clock intervals for named operations and
// groups them in a [Profiler] registry for later reporting.
//
// A [Profiler] maps each operation name to an [interval.Set] accumulating
// that operation's (start, end) samples. Operations are instrumented either
// explicitly with [Profiler.Track]:
//
//	func (s *Server) Handle() {
//	    defer p.Track("Server.Handle")()
//	    ...
//	}
//
// or by wrapping function values with [Profiler.WrapFunc], or by wrapping
// every exported func-typed field of a struct (recursively) with
// [Profiler.WrapAll]:
//
//	type Pipeline struct {
//	    Fetch  func(url string) ([]byte, error)
//	    Decode func(b []byte) (Doc, error)
//	    Debug  func() `timeprofile:"ignore"`
//	}
//
//	err := p.WrapAll(&pipe)
//
// Wrapped operations record their interval even when the wrapped call
// panics, and wrapping is idempotent. Embed [Ignore] in a struct to exclude
// it (and everything below it) from [Profiler.WrapAll].
//
// Timestamps are float64 seconds on a monotonic clock anchored at the
// profiler's epoch. All Profiler and Set operations are safe for concurrent
// use; concurrent calls to the same operation accumulate into one Set
// without losing samples.
//
// A package-level [Default] profiler is provided for the common
// one-registry-per-process case, mirroring [log/slog.Default].
package timeprofile
