package timeprofile_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/timeprofiles/interval"
	"go.jacobcolvin.com/timeprofiles/timeprofile"
)

func TestRecord(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	require.NoError(t, p.Record("op", 0, 3))
	require.NoError(t, p.Record("op", 2, 4))
	require.NoError(t, p.Record("other", 1, 1))

	s, ok := p.Get("op")
	require.True(t, ok)
	assert.Equal(t, 2, s.Len())

	assert.Equal(t, []string{"op", "other"}, p.Names())
	assert.Equal(t, 2, p.Len())
}

func TestRecord_Invalid(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	err := p.Record("op", 3, 0)
	require.ErrorIs(t, err, interval.ErrInvalidInterval)

	// A rejected sample must not create an empty entry.
	_, ok := p.Get("op")
	assert.False(t, ok)
	assert.Zero(t, p.Len())
}

func TestGet_Unknown(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	_, ok := p.Get("missing")
	assert.False(t, ok)
}

func TestAll_Snapshot(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	require.NoError(t, p.Record("op", 0, 1))

	all := p.All()
	require.Len(t, all, 1)

	// Growing the registry must not grow the snapshot map.
	require.NoError(t, p.Record("new", 0, 1))
	assert.Len(t, all, 1)

	// The sets themselves are live views.
	require.NoError(t, p.Record("op", 2, 3))
	assert.Equal(t, 2, all["op"].Len())
}

func TestReset(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	require.NoError(t, p.Record("op", 0, 1))

	detached, ok := p.Get("op")
	require.True(t, ok)

	p.Reset()

	assert.Zero(t, p.Len())

	_, ok = p.Get("op")
	assert.False(t, ok)

	// Detached sets stay valid but are no longer reachable.
	assert.Equal(t, 1, detached.Len())

	require.NoError(t, p.Record("op", 0, 2))

	fresh, ok := p.Get("op")
	require.True(t, ok)
	assert.Equal(t, 1, fresh.Len())
	assert.NotSame(t, detached, fresh)
}

func TestNow_Monotonic(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	a := p.Now()
	b := p.Now()
	assert.GreaterOrEqual(t, b, a)
	assert.GreaterOrEqual(t, a, 0.0)
}

func TestWithEpoch(t *testing.T) {
	t.Parallel()

	p := timeprofile.New(timeprofile.WithEpoch(time.Now().Add(-time.Second)))

	assert.GreaterOrEqual(t, p.Now(), 1.0)
}

func TestTrack(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	stop := p.Track("op")
	stop()

	s, ok := p.Get("op")
	require.True(t, ok)
	require.Equal(t, 1, s.Len())

	starts, ends := s.Profile()
	assert.GreaterOrEqual(t, ends[0], starts[0])
}

func TestTrack_RecordsOnPanic(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	fail := func() {
		defer p.Track("fail")()
		panic("boom")
	}

	assert.PanicsWithValue(t, "boom", fail)

	s, ok := p.Get("fail")
	require.True(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestTrack_Concurrent(t *testing.T) {
	t.Parallel()

	const (
		callers = 32
		calls   = 50
	)

	p := timeprofile.New()

	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range calls {
				func() {
					defer p.Track("op")()
				}()
			}
		}()
	}

	wg.Wait()

	s, ok := p.Get("op")
	require.True(t, ok)
	assert.Equal(t, callers*calls, s.Len())

	starts, ends := s.Profile()
	require.Len(t, starts, callers*calls)
	require.Len(t, ends, callers*calls)

	for i := range starts {
		assert.GreaterOrEqual(t, ends[i], starts[i])
	}
}

func TestWrapFunc(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	add := func(a, b int) int { return a + b }
	wrapped := p.WrapFunc(add).(func(a, b int) int)

	assert.Equal(t, 3, wrapped(1, 2))
	assert.Equal(t, 5, wrapped(2, 3))
	assert.Equal(t, 7, wrapped(3, 4))

	require.Equal(t, 1, p.Len())

	s, ok := p.Get(p.Names()[0])
	require.True(t, ok)
	assert.Equal(t, 3, s.Len())
}

func TestWrapFunc_Variadic(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	sum := func(nums ...int) int {
		total := 0
		for _, n := range nums {
			total += n
		}

		return total
	}

	wrapped := p.WrapFunc(sum).(func(...int) int)

	assert.Equal(t, 6, wrapped(1, 2, 3))
	assert.Equal(t, 0, wrapped())

	s, ok := p.Get(p.Names()[0])
	require.True(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestWrapFunc_Error(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	failing := func() error { return assert.AnError }
	wrapped := p.WrapFunc(failing).(func() error)

	// The wrapped call's own outcome passes through unchanged, and the
	// invocation is still recorded.
	require.ErrorIs(t, wrapped(), assert.AnError)

	s, ok := p.Get(p.Names()[0])
	require.True(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestWrapFunc_RecordsOnPanic(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	wrapped := p.WrapFunc(func() { panic("boom") }).(func())

	assert.PanicsWithValue(t, "boom", func() { wrapped() })

	require.Equal(t, 1, p.Len())

	s, ok := p.Get(p.Names()[0])
	require.True(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestWrapFunc_Idempotent(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	fn := func() {}
	once := p.WrapFunc(fn).(func())
	twice := p.WrapFunc(once).(func())

	twice()
	twice()

	require.Equal(t, 1, p.Len())

	// Double wrapping must not multiply the call count.
	s, ok := p.Get(p.Names()[0])
	require.True(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestWrapFunc_NotFunc(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	assert.Panics(t, func() { p.WrapFunc(42) })
	assert.Panics(t, func() { p.WrapFunc((func())(nil)) })
}

type worker struct {
	id int
}

func (w worker) Work() int { return w.id }

func TestWrapFunc_MethodIdentity(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	a := worker{id: 1}
	b := worker{id: 2}

	wrappedA := p.WrapFunc(a.Work).(func() int)
	wrappedB := p.WrapFunc(b.Work).(func() int)

	assert.Equal(t, 1, wrappedA())
	assert.Equal(t, 2, wrappedB())

	// The same method on different receivers shares one profile.
	require.Equal(t, 1, p.Len())
	assert.True(t, strings.HasSuffix(p.Names()[0], "worker.Work"), "got %q", p.Names()[0])

	s, ok := p.Get(p.Names()[0])
	require.True(t, ok)
	assert.Equal(t, 2, s.Len())
}
