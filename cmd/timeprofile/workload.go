package main

import (
	"math/rand/v2"
	"sync"
	"time"

	"go.jacobcolvin.com/timeprofiles/timeprofile"
)

// demo is the instrumented composite for the example workload: Run fans out
// concurrent Fetch calls, each of which delegates to Parse, then finishes
// with Cleanup. Audit carries a nested composite, and Internal is opted out
// of instrumentation entirely.
type demo struct {
	Run     func(workers int)
	Fetch   func()
	Parse   func()
	Cleanup func()
	Audit   audit

	Internal internals
}

type audit struct {
	Checksum func()

	Noise func() `timeprofile:"ignore"`
}

// internals is excluded from wrapping via the embedded marker.
type internals struct {
	timeprofile.Ignore

	Tick func()
}

// maxStepDelay bounds the random per-operation sleep.
const maxStepDelay = 100 * time.Millisecond

func jitter() {
	time.Sleep(rand.N(maxStepDelay))
}

// newDemo builds the workload. Operations call each other through the
// struct fields, so instrumented calls route through the wrappers exactly
// like external calls do.
func newDemo() *demo {
	d := &demo{}

	d.Fetch = func() {
		jitter()
		d.Parse()
	}

	d.Parse = func() {
		jitter()
	}

	d.Cleanup = func() {
		jitter()
		d.Audit.Checksum()
		d.Audit.Noise()
		d.Internal.Tick()
	}

	d.Audit = audit{
		Checksum: func() { jitter() },
		Noise:    func() { jitter() },
	}

	d.Internal = internals{
		Tick: func() { jitter() },
	}

	d.Run = func(workers int) {
		var wg sync.WaitGroup
		for range workers {
			wg.Add(1)

			go func() {
				defer wg.Done()

				d.Fetch()
			}()
		}

		wg.Wait()

		d.Cleanup()
	}

	return d
}
