// Package pkg provides the libraries behind cargo-authors.
//
// # Overview
//
// cargo-authors lists the authors of every crate in a Cargo project's
// dependency graph, optionally anonymized and grouped by crate. The pkg
// directory is organized as:
//
//  1. [authors] - Normalization, aggregation and grouping of author lists
//  2. [cargo] - Local resolution of Cargo.toml and Cargo.lock into package records
//  3. [render] - Text, JSON, YAML, DOT and SVG reports
//  4. [cache] - Resolution cache for long-running consumers
//  5. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
//	Cargo.toml + Cargo.lock
//	         ↓
//	    [cargo] Resolver (authors.Source)
//	         ↓
//	    [authors] Build: Normalizer → Aggregate → Invert
//	         ↓
//	    [render] Write
//
// # Quick Start
//
//	src := cargo.NewResolver(cargo.Options{})
//	m, err := authors.Run(ctx, src, ".", authors.Options{IgnoreSelf: true})
//	if err != nil {
//	    return err
//	}
//	return render.Write(os.Stdout, render.FormatText, render.Report{Entries: m}, render.Options{})
//
// [authors]: github.com/matzehuels/cargoauthors/pkg/authors
// [cargo]: github.com/matzehuels/cargoauthors/pkg/cargo
// [render]: github.com/matzehuels/cargoauthors/pkg/render
// [cache]: github.com/matzehuels/cargoauthors/pkg/cache
// [errors]: github.com/matzehuels/cargoauthors/pkg/errors
// [observability]: github.com/matzehuels/cargoauthors/pkg/observability
// [buildinfo]: github.com/matzehuels/cargoauthors/pkg/buildinfo
package pkg
