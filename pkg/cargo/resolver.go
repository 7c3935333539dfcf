package cargo

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/matzehuels/cargoauthors/pkg/authors"
	errs "github.com/matzehuels/cargoauthors/pkg/errors"
)

// Options configures package resolution.
type Options struct {
	CargoHome string               // Cargo home holding registry and git sources (default: $CARGO_HOME or ~/.cargo)
	Logger    func(string, ...any) // Progress callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.CargoHome == "" {
		opts.CargoHome = defaultCargoHome()
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Resolver implements [authors.Source] for Cargo projects on the local
// filesystem. It reads Cargo.lock for the package set and each package's
// Cargo.toml for its authors, without contacting any registry.
type Resolver struct {
	opts Options
}

// NewResolver creates a Resolver with opts.
func NewResolver(opts Options) *Resolver {
	return &Resolver{opts: opts.WithDefaults()}
}

var _ authors.Source = (*Resolver)(nil)

// Resolve loads the package at path (a directory, or its Cargo.toml) and
// returns every package recorded in its workspace's Cargo.lock.
//
// Errors carry one of the codes INVALID_PATH, MANIFEST_NOT_FOUND,
// WORKSPACE_LOAD or DEPENDENCY_RESOLUTION.
func (r *Resolver) Resolve(ctx context.Context, path string) (*authors.Resolution, error) {
	dir, err := canonicalDir(path)
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(manifestPath); err != nil {
		return nil, errs.Wrap(errs.ErrCodeManifestNotFound, err, "could not find `%s` in `%s`", ManifestName, dir)
	}

	l := newLoader()
	root, err := l.load(manifestPath)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeWorkspaceLoad, err, "failed to load manifest at `%s`", manifestPath)
	}
	if root.Package == nil {
		return nil, errs.New(errs.ErrCodeWorkspaceLoad,
			"manifest path `%s` is a virtual manifest, but this command requires running against an actual package", manifestPath)
	}

	wsRoot, ws, err := l.workspaceOf(dir, root, "")
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeWorkspaceLoad, err, "failed to load workspace for `%s`", root.name())
	}
	if ws == nil {
		wsRoot = dir
	}
	r.opts.Logger("workspace root: %s", wsRoot)

	lockPath := filepath.Join(wsRoot, LockName)
	lock, err := readLock(lockPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeDependencyResolve, err,
				"no `%s` in `%s`; run `cargo generate-lockfile` first", LockName, wsRoot)
		}
		return nil, errs.Wrap(errs.ErrCodeDependencyResolve, err, "failed to read `%s`", lockPath)
	}

	local, err := l.indexLocal(wsRoot, ws, dir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeDependencyResolve, err, "failed to load path dependencies")
	}

	records := make([]authors.PackageRecord, 0, len(lock.Packages))
	for _, p := range lock.Packages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		loc, err := r.locate(l, local, p)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeDependencyResolve, err, "failed to locate package `%s`", p)
		}
		list, err := loc.m.authors(loc.ws)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeDependencyResolve, err, "failed to read authors of `%s` from `%s`", p, loc.path)
		}
		r.opts.Logger("%s: %d author(s) from %s", p, len(list), loc.path)
		records = append(records, authors.PackageRecord{Name: p.Name, Authors: list})
	}

	return &authors.Resolution{Root: root.name(), Packages: records}, nil
}

func (r *Resolver) locate(l *loader, local *localIndex, p lockPackage) (located, error) {
	switch p.kind() {
	case sourceLocal:
		if loc, ok := local.lookup(p); ok {
			return loc, nil
		}
		return located{}, errors.New("path package is not reachable from the workspace")
	case sourceRegistry:
		path, err := registryManifest(r.opts.CargoHome, p)
		if err != nil {
			return located{}, err
		}
		m, err := l.load(path)
		if err != nil {
			return located{}, err
		}
		return located{path: path, m: m}, nil
	case sourceGit:
		path, err := gitManifest(r.opts.CargoHome, p)
		if err != nil {
			return located{}, err
		}
		m, err := l.load(path)
		if err != nil {
			return located{}, err
		}
		checkout := filepath.Join(r.opts.CargoHome, "git", "checkouts")
		_, ws, err := l.workspaceOf(filepath.Dir(path), m, checkout)
		if err != nil {
			return located{}, err
		}
		return located{path: path, m: m, ws: ws}, nil
	default:
		return located{}, errs.New(errs.ErrCodeInvalidPackage, "unsupported source %q", p.Source)
	}
}

// canonicalDir turns path into an absolute, symlink-free directory. A path
// naming a Cargo.toml resolves to its directory.
func canonicalDir(path string) (string, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidPath, err, "invalid path `%s`", path)
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidPath, err, "could not canonicalize `%s`", path)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidPath, err, "could not stat `%s`", abs)
	}
	if !info.IsDir() {
		if filepath.Base(abs) == ManifestName {
			return filepath.Dir(abs), nil
		}
		return "", errs.New(errs.ErrCodeInvalidPath, "`%s` is not a directory", abs)
	}
	return abs, nil
}
