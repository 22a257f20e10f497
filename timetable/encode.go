package timetable

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"
)

// Report is the serialized form of a set of rows, as produced by
// [EncodeYAML] and [EncodeJSON] and described by [Schema].
type Report struct {
	Unit string `json:"unit" yaml:"unit"`
	Rows []Row  `json:"rows" yaml:"rows"`
}

// reportUnit is the duration unit of every serialized report.
const reportUnit = "ms"

// NewReport wraps rows in a [Report] document.
func NewReport(rows []Row) Report {
	return Report{
		Unit: reportUnit,
		Rows: rows,
	}
}

// EncodeYAML writes rows to w as a YAML [Report].
func (r Report) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)

	err := enc.Encode(r)
	if err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}

	return nil
}

// EncodeJSON writes rows to w as an indented JSON [Report].
func (r Report) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(r)
	if err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}

	return nil
}

// Schema returns the JSON Schema (Draft 7) describing a serialized [Report],
// for consumers that validate exported reports.
func Schema() *jsonschema.Schema {
	msColumn := func(desc string) *jsonschema.Schema {
		return &jsonschema.Schema{
			Type:        "number",
			Description: desc,
		}
	}

	rowSchema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name": {
				Type:        "string",
				Description: "Operation display name.",
			},
			"calls": {
				Type:        "integer",
				Description: "Number of recorded calls.",
			},
			"average_ms":    msColumn("Mean elapsed time per call."),
			"longest_ms":    msColumn("Longest single call."),
			"bottleneck_ms": msColumn("Total time at least one call was active, overlaps merged."),
		},
		Required: []string{"name", "calls", "average_ms", "longest_ms", "bottleneck_ms"},
	}

	return &jsonschema.Schema{
		Schema: "http://json-schema.org/draft-07/schema#",
		Type:   "object",
		Properties: map[string]*jsonschema.Schema{
			"unit": {
				Type:        "string",
				Description: "Duration unit of all row columns.",
			},
			"rows": {
				Type:  "array",
				Items: rowSchema,
			},
		},
		Required: []string{"unit", "rows"},
	}
}
