package authors

// Normalizer maps raw author strings and package names to their output form
// according to a fixed [Options] value.
//
// A Normalizer holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	opts   Options
	hash   func(string) string
	parser authorParser
}

// NormalizerOption customizes a [Normalizer].
type NormalizerOption func(*Normalizer)

// WithHasher replaces [Digest] as the anonymization function.
func WithHasher(h func(string) string) NormalizerOption {
	return func(n *Normalizer) { n.hash = h }
}

// NewNormalizer creates a Normalizer for opts.
func NewNormalizer(opts Options, options ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		opts:   opts,
		hash:   Digest,
		parser: newAuthorParser(),
	}
	for _, o := range options {
		o(n)
	}
	return n
}

// Author returns the output form of one author string.
//
// HideAuthors hashes the whole string. Otherwise HideEmails hashes only the
// email and keeps the display name; strings without an email pass through
// unchanged. With neither option the string is returned as is.
func (n *Normalizer) Author(raw string) string {
	switch {
	case n.opts.HideAuthors:
		return n.hash(raw)
	case n.opts.HideEmails:
		a := n.parser.parse(raw)
		if !a.HasEmail() {
			return raw
		}
		return Author{Name: a.Name, Email: n.hash(a.Email)}.String()
	default:
		return raw
	}
}

// Crate returns the output form of a package name.
func (n *Normalizer) Crate(name string) string {
	if n.opts.HideCrates {
		return n.hash(name)
	}
	return name
}
