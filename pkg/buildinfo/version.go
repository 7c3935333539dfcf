// Package buildinfo holds the version stamped into cargo-authors at build time.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/cargoauthors/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/cargoauthors/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/cargoauthors/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	// Set via ldflags: -X github.com/matzehuels/cargoauthors/pkg/buildinfo.Version=...
	Version = "dev"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/matzehuels/cargoauthors/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/matzehuels/cargoauthors/pkg/buildinfo.Date=...
	Date = "unknown"
)

// Template returns the cobra version template, e.g.
//
//	cargo-authors version v0.3.0
//	commit: 1a2b3c4
//	built: 2026-10-18T09:12:44Z
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
