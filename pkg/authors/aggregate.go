package authors

// Aggregate builds the author -> packages mapping from records.
//
// Records are visited in order. When ignoreSelf is set, records whose raw
// name equals root are skipped before any normalization. Every remaining
// author string is normalized through n and linked to the normalized
// package name. Packages without authors add nothing, so they never appear
// in the result, and duplicate records collapse into the same edges.
func Aggregate(records []PackageRecord, root string, n *Normalizer, ignoreSelf bool) Mapping {
	m := make(Mapping)
	for _, rec := range records {
		if ignoreSelf && rec.Name == root {
			continue
		}
		if len(rec.Authors) == 0 {
			continue
		}
		name := n.Crate(rec.Name)
		for _, raw := range rec.Authors {
			m.Add(n.Author(raw), name)
		}
	}
	return m
}
