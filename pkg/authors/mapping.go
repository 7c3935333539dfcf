package authors

import (
	"maps"
	"slices"
)

// Set is an unordered collection of unique strings.
type Set map[string]struct{}

// Sorted returns the members of s in lexicographic order.
func (s Set) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Mapping relates each key (an author or a package) to the set of entities
// on the other side of the author/package relation.
//
// Mappings built by this package never hold a key with an empty set.
type Mapping map[string]Set

// Edge is one author/package relation as stored in a [Mapping]: From is the
// key side, To the value side.
type Edge struct {
	From string
	To   string
}

// Add records the edge key -> value. Repeated edges are stored once.
func (m Mapping) Add(key, value string) {
	set, ok := m[key]
	if !ok {
		set = make(Set)
		m[key] = set
	}
	set[value] = struct{}{}
}

// Keys returns all keys in lexicographic order.
func (m Mapping) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// Values returns the values for key in lexicographic order, or nil if the
// key is absent.
func (m Mapping) Values(key string) []string {
	set, ok := m[key]
	if !ok {
		return nil
	}
	return set.Sorted()
}

// Edges returns every edge ordered by key, then value.
func (m Mapping) Edges() []Edge {
	edges := make([]Edge, 0, m.EdgeCount())
	for _, k := range m.Keys() {
		for _, v := range m[k].Sorted() {
			edges = append(edges, Edge{From: k, To: v})
		}
	}
	return edges
}

// EdgeCount returns the total number of edges.
func (m Mapping) EdgeCount() int {
	n := 0
	for _, set := range m {
		n += len(set)
	}
	return n
}

// Invert swaps the direction of every edge. Inverting twice yields a
// mapping equal to m, provided m holds no empty sets.
func (m Mapping) Invert() Mapping {
	out := make(Mapping, len(m))
	for k, set := range m {
		for v := range set {
			out.Add(v, k)
		}
	}
	return out
}

// Entries returns the mapping as key -> sorted values, the shape used for
// serialization. The result is never nil.
func (m Mapping) Entries() map[string][]string {
	out := make(map[string][]string, len(m))
	for k, set := range m {
		out[k] = set.Sorted()
	}
	return out
}
