package timetable_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/timeprofiles/timetable"
)

func TestReport_EncodeYAML(t *testing.T) {
	t.Parallel()

	report := timetable.NewReport([]timetable.Row{
		{Name: "my_method", Calls: 2, AverageMS: 2500, LongestMS: 3000, BottleneckMS: 4000},
	})

	var buf bytes.Buffer
	require.NoError(t, report.EncodeYAML(&buf))

	got := buf.String()
	assert.Contains(t, got, "unit: ms")
	assert.Contains(t, got, "name: my_method")
	assert.Contains(t, got, "calls: 2")
	assert.Contains(t, got, "bottleneck_ms: 4000")
}

func TestReport_EncodeJSON(t *testing.T) {
	t.Parallel()

	report := timetable.NewReport([]timetable.Row{
		{Name: "my_method", Calls: 2, AverageMS: 2500, LongestMS: 3000, BottleneckMS: 4000},
	})

	var buf bytes.Buffer
	require.NoError(t, report.EncodeJSON(&buf))

	var decoded timetable.Report

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, report, decoded)
}

func TestSchema(t *testing.T) {
	t.Parallel()

	schema := timetable.Schema()

	assert.Equal(t, "http://json-schema.org/draft-07/schema#", schema.Schema)
	assert.Equal(t, "object", schema.Type)
	assert.ElementsMatch(t, []string{"unit", "rows"}, schema.Required)

	rows, ok := schema.Properties["rows"]
	require.True(t, ok)
	require.NotNil(t, rows.Items)
	assert.ElementsMatch(t,
		[]string{"name", "calls", "average_ms", "longest_ms", "bottleneck_ms"},
		rows.Items.Required)
}
