package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// document is the serialized shape of a report.
type document struct {
	Entries map[string][]string `json:"entries" yaml:"entries"`
}

func newDocument(r Report) document {
	return document{Entries: r.Entries.Entries()}
}

// WriteJSON encodes r as a single-line JSON document followed by a newline.
// Map keys are emitted in sorted order; values are sorted by construction.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(newDocument(r)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteYAML encodes r as YAML with the same structure as [WriteJSON].
func WriteYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(r)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
