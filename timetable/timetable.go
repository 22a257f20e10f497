package timetable

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.jacobcolvin.com/timeprofiles/timeprofile"
)

// Sentinel errors returned when parsing report options.
var (
	// ErrUnknownOrder indicates an unrecognized ordering name.
	ErrUnknownOrder = errors.New("unknown order")
	// ErrUnknownFormat indicates an unrecognized output format name.
	ErrUnknownFormat = errors.New("unknown format")
)

// Row is one operation's summary. Durations are milliseconds, converted from
// the profiler's stored seconds.
type Row struct {
	Name         string  `json:"name"          yaml:"name"`
	Calls        int     `json:"calls"         yaml:"calls"`
	AverageMS    float64 `json:"average_ms"    yaml:"average_ms"`
	LongestMS    float64 `json:"longest_ms"    yaml:"longest_ms"`
	BottleneckMS float64 `json:"bottleneck_ms" yaml:"bottleneck_ms"`
}

// Order selects the column rows are sorted by.
type Order int

// Sort orders. Name sorts ascending; the numeric orders sort descending so
// the most expensive operations lead.
const (
	OrderByName Order = iota
	OrderByCalls
	OrderByAverage
	OrderByLongest
	OrderByBottleneck
)

// String returns the order's flag-value name.
func (o Order) String() string {
	switch o {
	case OrderByName:
		return "name"
	case OrderByCalls:
		return "calls"
	case OrderByAverage:
		return "average"
	case OrderByLongest:
		return "longest"
	case OrderByBottleneck:
		return "bottleneck"
	}

	return fmt.Sprintf("order(%d)", int(o))
}

// ParseOrder parses an order name as accepted on the command line.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "name":
		return OrderByName, nil
	case "calls":
		return OrderByCalls, nil
	case "average":
		return OrderByAverage, nil
	case "longest":
		return OrderByLongest, nil
	case "bottleneck":
		return OrderByBottleneck, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

// OrderStrings returns all order names, for flag help and completions.
func OrderStrings() []string {
	return []string{"name", "calls", "average", "longest", "bottleneck"}
}

// Option configures [Rows].
type Option func(*builder)

type builder struct {
	fullNames bool
}

// WithFullNames keeps the package-qualified operation names instead of
// trimming them to Type.Operation.
func WithFullNames() Option {
	return func(b *builder) {
		b.fullNames = true
	}
}

// Rows builds one summary [Row] per operation with at least one recorded
// call, sorted by name. Zero-call operations are skipped: their aggregates
// have no defined value.
func Rows(p *timeprofile.Profiler, opts ...Option) []Row {
	var b builder
	for _, opt := range opts {
		opt(&b)
	}

	all := p.All()

	rows := make([]Row, 0, len(all))

	for name, set := range all {
		n := set.Len()
		if n == 0 {
			continue
		}

		var total, longest float64

		for _, e := range set.Elapsed() {
			total += e
			longest = max(longest, e)
		}

		displayName := name
		if !b.fullNames {
			displayName = timeprofile.ShortName(name)
		}

		rows = append(rows, Row{
			Name:         displayName,
			Calls:        n,
			AverageMS:    total / float64(n) * 1000,
			LongestMS:    longest * 1000,
			BottleneckMS: set.Bottleneck() * 1000,
		})
	}

	Sort(rows, OrderByName, false)

	return rows
}

// Sort orders rows in place: [OrderByName] ascending, numeric orders
// descending, flipped when reverse is set. The sort is stable, so rows equal
// in the chosen column keep their name order.
func Sort(rows []Row, order Order, reverse bool) {
	cmpRows := func(a, b Row) int {
		switch order {
		case OrderByName:
			return cmp.Compare(a.Name, b.Name)
		case OrderByCalls:
			return cmp.Compare(b.Calls, a.Calls)
		case OrderByAverage:
			return cmp.Compare(b.AverageMS, a.AverageMS)
		case OrderByLongest:
			return cmp.Compare(b.LongestMS, a.LongestMS)
		case OrderByBottleneck:
			return cmp.Compare(b.BottleneckMS, a.BottleneckMS)
		}

		return 0
	}

	slices.SortStableFunc(rows, func(a, b Row) int {
		c := cmpRows(a, b)
		if reverse {
			return -c
		}

		return c
	})
}

// Render formats rows as an aligned plain-text table with a trailing
// newline. Durations render with two decimals.
func Render(rows []Row) string {
	headers := []string{"Name", "Calls", "Average (ms)", "Longest (ms)", "Bottleneck (ms)"}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = []string{
			row.Name,
			fmt.Sprintf("%d", row.Calls),
			fmt.Sprintf("%.2f", row.AverageMS),
			fmt.Sprintf("%.2f", row.LongestMS),
			fmt.Sprintf("%.2f", row.BottleneckMS),
		}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	for _, row := range cells {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var sb strings.Builder

	writeRow := func(row []string) {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}

			if i == 0 {
				// Name column is left-aligned, numeric columns right-aligned.
				fmt.Fprintf(&sb, "%-*s", widths[i], cell)
			} else {
				fmt.Fprintf(&sb, "%*s", widths[i], cell)
			}
		}

		sb.WriteByte('\n')
	}

	writeRow(headers)

	rule := make([]string, len(headers))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}

	writeRow(rule)

	for _, row := range cells {
		writeRow(row)
	}

	return sb.String()
}
