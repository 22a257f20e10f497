package main

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/timeprofiles/timechart"
	"go.jacobcolvin.com/timeprofiles/timeprofile"
)

// labelReserve approximates the columns taken by row labels and padding when
// sizing the bar area from the terminal width.
const labelReserve = 30

// minBarWidth keeps the chart legible on narrow terminals.
const minBarWidth = 20

// minWindowSpan caps zooming in at 1% of the global range.
const minWindowSpan = 0.01

// chartModel is the bubbletea model for the interactive timeline view:
// +/- zooms, arrow keys pan, m toggles the merged cover, r resets.
type chartModel struct {
	profiler *timeprofile.Profiler
	cols     int
	lo       float64
	hi       float64
	merged   bool
}

func newChartModel(p *timeprofile.Profiler, cols int, merged bool) *chartModel {
	return &chartModel{
		profiler: p,
		cols:     cols,
		lo:       0,
		hi:       1,
		merged:   merged,
	}
}

func (m *chartModel) Init() tea.Cmd {
	return nil
}

func (m *chartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "+", "=":
			m.zoom(0.5)

		case "-", "_":
			m.zoom(2)

		case "left", "h":
			m.pan(-0.2)

		case "right", "l":
			m.pan(0.2)

		case "m":
			m.merged = !m.merged

		case "r":
			m.lo, m.hi = 0, 1
		}

	case tea.WindowSizeMsg:
		m.cols = max(minBarWidth, msg.Width-labelReserve)
	}

	return m, nil
}

// zoom scales the visible window around its center.
func (m *chartModel) zoom(factor float64) {
	center := (m.lo + m.hi) / 2

	span := (m.hi - m.lo) * factor
	span = max(span, minWindowSpan)
	span = min(span, 1)

	m.lo = center - span/2
	m.hi = center + span/2
	m.clamp()
}

// pan shifts the visible window by a fraction of its span.
func (m *chartModel) pan(frac float64) {
	shift := (m.hi - m.lo) * frac

	m.lo += shift
	m.hi += shift
	m.clamp()
}

// clamp keeps the window inside [0, 1] without shrinking it.
func (m *chartModel) clamp() {
	span := m.hi - m.lo

	if m.lo < 0 {
		m.lo = 0
		m.hi = span
	}

	if m.hi > 1 {
		m.hi = 1
		m.lo = 1 - span
	}
}

func (m *chartModel) View() tea.View {
	opts := []timechart.Option{
		timechart.WithWidth(m.cols),
		timechart.WithWindow(m.lo, m.hi),
	}
	if m.merged {
		opts = append(opts, timechart.WithMerged())
	}

	out, err := timechart.Chart(m.profiler, opts...)
	if err != nil {
		out = fmt.Sprintf("chart: %v\n", err)
	}

	mode := "raw"
	if m.merged {
		mode = "merged"
	}

	help := fmt.Sprintf("[%s] +/- zoom  ←/→ pan  m merged  r reset  q quit", mode)

	v := tea.NewView(out + "\n" + help)
	v.AltScreen = true

	return v
}
