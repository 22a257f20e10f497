package timetable_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/timeprofiles/timeprofile"
	"go.jacobcolvin.com/timeprofiles/timetable"
)

func TestRows(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	require.NoError(t, p.Record("example.com/pkg.Server.Handle", 0, 3))
	require.NoError(t, p.Record("example.com/pkg.Server.Handle", 2, 4))

	rows := timetable.Rows(p)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Server.Handle", row.Name)
	assert.Equal(t, 2, row.Calls)
	assert.InDelta(t, 2500, row.AverageMS, 1e-6)
	assert.InDelta(t, 3000, row.LongestMS, 1e-6)
	assert.InDelta(t, 4000, row.BottleneckMS, 1e-6)
}

func TestRows_FullNames(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	require.NoError(t, p.Record("example.com/pkg.Server.Handle", 0, 1))

	rows := timetable.Rows(p, timetable.WithFullNames())
	require.Len(t, rows, 1)
	assert.Equal(t, "example.com/pkg.Server.Handle", rows[0].Name)
}

func TestRows_SkipsZeroCall(t *testing.T) {
	t.Parallel()

	p := timeprofile.New()

	require.NoError(t, p.Record("busy", 0, 1))

	// Get-created entries with no samples must not appear in the report.
	idle, ok := p.Get("busy")
	require.True(t, ok)
	idle.Clear()

	assert.Empty(t, timetable.Rows(p))
}

func TestRows_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, timetable.Rows(timeprofile.New()))
}

func testRows() []timetable.Row {
	return []timetable.Row{
		{Name: "alpha", Calls: 3, AverageMS: 10, LongestMS: 40, BottleneckMS: 25},
		{Name: "beta", Calls: 1, AverageMS: 30, LongestMS: 30, BottleneckMS: 30},
		{Name: "gamma", Calls: 2, AverageMS: 20, LongestMS: 35, BottleneckMS: 40},
	}
}

func rowNames(rows []timetable.Row) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
	}

	return names
}

func TestSort(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		order   timetable.Order
		reverse bool
		want    []string
	}{
		"name ascending": {
			order: timetable.OrderByName,
			want:  []string{"alpha", "beta", "gamma"},
		},
		"name reversed": {
			order:   timetable.OrderByName,
			reverse: true,
			want:    []string{"gamma", "beta", "alpha"},
		},
		"calls descending": {
			order: timetable.OrderByCalls,
			want:  []string{"alpha", "gamma", "beta"},
		},
		"average descending": {
			order: timetable.OrderByAverage,
			want:  []string{"beta", "gamma", "alpha"},
		},
		"longest descending": {
			order: timetable.OrderByLongest,
			want:  []string{"alpha", "gamma", "beta"},
		},
		"bottleneck descending": {
			order: timetable.OrderByBottleneck,
			want:  []string{"gamma", "beta", "alpha"},
		},
		"bottleneck reversed": {
			order:   timetable.OrderByBottleneck,
			reverse: true,
			want:    []string{"alpha", "beta", "gamma"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rows := testRows()
			timetable.Sort(rows, tc.order, tc.reverse)
			assert.Equal(t, tc.want, rowNames(rows))
		})
	}
}

func TestParseOrder(t *testing.T) {
	t.Parallel()

	for _, name := range timetable.OrderStrings() {
		order, err := timetable.ParseOrder(name)
		require.NoError(t, err)
		assert.Equal(t, name, order.String())
	}

	order, err := timetable.ParseOrder("Bottleneck")
	require.NoError(t, err)
	assert.Equal(t, timetable.OrderByBottleneck, order)

	_, err = timetable.ParseOrder("nope")
	require.ErrorIs(t, err, timetable.ErrUnknownOrder)
}

func TestRender(t *testing.T) {
	t.Parallel()

	rows := []timetable.Row{
		{Name: "my_method", Calls: 2, AverageMS: 2500, LongestMS: 3000, BottleneckMS: 4000},
	}

	got := timetable.Render(rows)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Name       Calls  Average (ms)  Longest (ms)  Bottleneck (ms)", lines[0])
	assert.Equal(t, "---------  -----  ------------  ------------  ---------------", lines[1])
	assert.Equal(t, "my_method      2       2500.00       3000.00          4000.00", lines[2])
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()

	got := timetable.Render(nil)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Bottleneck (ms)")
}
