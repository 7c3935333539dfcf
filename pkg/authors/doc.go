// Package authors aggregates authorship metadata across a resolved
// dependency set.
//
// # Overview
//
// A [Source] resolves a project path into a [Resolution]: the root package
// name plus one [PackageRecord] per package in the dependency graph, each
// carrying zero or more free-text author strings. [Build] turns that flat
// list into a [Mapping]:
//
//	Resolution -> Normalizer -> Aggregate -> (optional) Invert -> Mapping
//
// The default grouping maps each author to the set of packages that list it.
// With [Options.ByCrate] the mapping is inverted to package -> authors.
//
// # Anonymization
//
// [Normalizer] applies the hide options. Author strings are hashed whole
// ([Options.HideAuthors]) or only in their email part ([Options.HideEmails]);
// package names are hashed with [Options.HideCrates]. Digests are lowercase
// hex RIPEMD-160 (see [Digest]) so the same input always yields the same
// pseudonym, across runs and machines.
//
// # Self-exclusion
//
// With [Options.IgnoreSelf] the root package's own record is skipped. The
// comparison uses the raw package name, before any anonymization, so hiding
// crate names never changes which record counts as the root.
//
// # Example
//
//	res := &authors.Resolution{
//	    Root: "app",
//	    Packages: []authors.PackageRecord{
//	        {Name: "app", Authors: []string{"Alice"}},
//	        {Name: "serde", Authors: []string{"Alice", "Bob <bob@example.com>"}},
//	    },
//	}
//	m := authors.Build(res, authors.Options{IgnoreSelf: true})
//	for _, author := range m.Keys() {
//	    fmt.Println(author, m.Values(author))
//	}
package authors
