// Package render presents an author/crate mapping in one of several formats.
//
// # Overview
//
// A [Report] pairs an [authors.Mapping] with the grouping it was built
// with. [Write] renders it as:
//
//   - text: a banner followed by one aligned "key: v1, v2" line per key
//   - json: {"entries": {"key": ["v1", "v2"]}}
//   - yaml: the same document as YAML
//   - dot: a Graphviz digraph from keys to values
//   - svg: the dot document laid out with Graphviz
//
// Keys and values are always emitted in ascending byte order, so output is
// stable across runs.
//
// # Usage
//
//	format, err := render.ParseFormat("json")
//	if err != nil {
//	    return err
//	}
//	err = render.Write(os.Stdout, format, render.Report{Entries: m}, render.Options{})
//
// # Styling
//
// [Options].Styled colors text output with lipgloss. Padding is computed on
// the unstyled key so alignment survives the escape sequences.
//
// [authors.Mapping]: github.com/matzehuels/cargoauthors/pkg/authors.Mapping
package render
