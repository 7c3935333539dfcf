package authors

import (
	"context"
	"time"

	"github.com/matzehuels/cargoauthors/pkg/observability"
)

// Options selects anonymization, self-exclusion and grouping.
// A zero Options passes every author and package name through unchanged
// and groups by author.
type Options struct {
	HideAuthors bool // Replace each author string with its digest
	HideEmails  bool // Replace only the email part; ignored when HideAuthors is set
	HideCrates  bool // Replace package names with their digest
	IgnoreSelf  bool // Skip the root package's own record
	ByCrate     bool // Group as package -> authors instead of author -> packages
}

// PackageRecord is one resolved package and the authors it declares.
type PackageRecord struct {
	Name    string   // Package name as declared in its manifest
	Authors []string // Free-text author strings, in declaration order
}

// Resolution is the output of a [Source]: every package of the dependency
// set, including the root package itself.
type Resolution struct {
	Root     string          // Name of the package being analyzed
	Packages []PackageRecord // All resolved packages, in source order
}

// Source resolves a project directory into its package records.
type Source interface {
	// Resolve loads the project at path and returns its full dependency set.
	Resolve(ctx context.Context, path string) (*Resolution, error)
}

// Build normalizes, aggregates and optionally inverts the records of res.
// A nil res yields an empty mapping.
func Build(res *Resolution, opts Options) Mapping {
	if res == nil {
		return Mapping{}
	}
	m := Aggregate(res.Packages, res.Root, NewNormalizer(opts), opts.IgnoreSelf)
	if opts.ByCrate {
		return m.Invert()
	}
	return m
}

// Run resolves path through src and builds the mapping.
// Resolution errors are returned unchanged; there is no partial result.
func Run(ctx context.Context, src Source, path string, opts Options) (Mapping, error) {
	res, err := Resolve(ctx, src, path)
	if err != nil {
		return nil, err
	}
	m := Build(res, opts)
	observability.Run().OnBuildComplete(ctx, len(m), m.EdgeCount())
	return m, nil
}

// Resolve calls src.Resolve and reports the run to the registered
// [observability.RunHooks].
func Resolve(ctx context.Context, src Source, path string) (*Resolution, error) {
	hooks := observability.Run()
	hooks.OnResolveStart(ctx, path)
	start := time.Now()

	res, err := src.Resolve(ctx, path)
	packages := 0
	if err == nil && res != nil {
		packages = len(res.Packages)
	}
	hooks.OnResolveComplete(ctx, path, packages, time.Since(start), err)
	return res, err
}
