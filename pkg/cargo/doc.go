// Package cargo resolves the authors of every package in a Cargo project.
//
// # Overview
//
// [Resolver] implements [authors.Source] using only files already on disk:
//
//   - the project's Cargo.toml names the root package
//   - the workspace's Cargo.lock lists the full transitive package set
//   - each package's own Cargo.toml supplies its `package.authors`
//
// Package manifests are found by source kind. Path packages (workspace
// members and path dependencies) are indexed by walking the workspace.
// Registry packages are read from the unpacked sources under
// $CARGO_HOME/registry/src, git packages from $CARGO_HOME/git/checkouts.
// Nothing is downloaded: a package whose sources are missing fails the
// run with a hint to run `cargo fetch`.
//
// `authors.workspace = true` and `version.workspace = true` are resolved
// against the owning workspace's [workspace.package] table.
//
// # Usage
//
//	r := cargo.NewResolver(cargo.Options{})
//	res, err := r.Resolve(ctx, ".")
//	if err != nil {
//	    return err
//	}
//	m := authors.Build(res, authors.Options{IgnoreSelf: true})
//
// [authors.Source]: github.com/matzehuels/cargoauthors/pkg/authors.Source
package cargo
