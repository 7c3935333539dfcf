package cargo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// located is a package manifest together with the workspace it inherits
// fields from. ws is nil for standalone and published packages.
type located struct {
	path string
	m    *manifest
	ws   *manifest
}

// loader parses manifests at most once per run.
type loader struct {
	cache map[string]*manifest
}

func newLoader() *loader {
	return &loader{cache: make(map[string]*manifest)}
}

func (l *loader) load(path string) (*manifest, error) {
	if m, ok := l.cache[path]; ok {
		return m, nil
	}
	m, err := readManifest(path)
	if err != nil {
		return nil, err
	}
	l.cache[path] = m
	return m, nil
}

// workspaceOf finds the workspace that owns the package in dir. It honors
// an explicit `package.workspace`, then searches ancestors for a manifest
// with a [workspace] table that does not exclude dir. The search stops at
// boundary when it is non-empty. A standalone package yields ("", nil).
func (l *loader) workspaceOf(dir string, m *manifest, boundary string) (string, *manifest, error) {
	if m.Workspace != nil {
		return dir, m, nil
	}
	if m.Package != nil && m.Package.Workspace != "" {
		root := joinPath(dir, m.Package.Workspace)
		ws, err := l.load(filepath.Join(root, ManifestName))
		if err != nil {
			return "", nil, fmt.Errorf("load workspace of %s: %w", dir, err)
		}
		if ws.Workspace == nil {
			return "", nil, fmt.Errorf("package.workspace of %s points to %s, which has no [workspace] table", dir, root)
		}
		return root, ws, nil
	}

	for d := filepath.Dir(dir); ; d = filepath.Dir(d) {
		if boundary != "" && !within(d, boundary) {
			break
		}
		path := filepath.Join(d, ManifestName)
		if _, err := os.Stat(path); err == nil {
			ws, err := l.load(path)
			if err != nil {
				return "", nil, fmt.Errorf("load workspace candidate %s: %w", path, err)
			}
			if ws.Workspace != nil && !ws.excludes(d, dir) {
				return d, ws, nil
			}
		}
		if parent := filepath.Dir(d); parent == d {
			break
		}
	}
	return "", nil, nil
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}

// localIndex maps path packages (workspace members and path dependencies)
// to their manifests. Cargo.lock records these without a source.
type localIndex struct {
	byID   map[string]located // name@version
	byName map[string]located
}

func (ix *localIndex) add(loc located) {
	name := loc.m.name()
	id := name + "@" + loc.m.version(loc.ws)
	if _, ok := ix.byID[id]; !ok {
		ix.byID[id] = loc
	}
	if _, ok := ix.byName[name]; !ok {
		ix.byName[name] = loc
	}
}

func (ix *localIndex) lookup(p lockPackage) (located, bool) {
	if loc, ok := ix.byID[p.Name+"@"+p.Version]; ok {
		return loc, true
	}
	loc, ok := ix.byName[p.Name]
	return loc, ok
}

// indexLocal collects every path package reachable from the workspace
// members, the package in pkgDir and the root manifest's [patch] and
// [replace] entries by following path dependencies.
func (l *loader) indexLocal(wsRoot string, ws *manifest, pkgDir string) (*localIndex, error) {
	ix := &localIndex{byID: make(map[string]located), byName: make(map[string]located)}

	rootDir := pkgDir
	queue := []string{pkgDir}
	if ws != nil {
		rootDir = wsRoot
		queue = append(queue, wsRoot)
		queue = append(queue, ws.memberDirs(wsRoot)...)
	}

	visited := make(map[string]bool)
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]
		if visited[dir] {
			continue
		}
		visited[dir] = true

		path := filepath.Join(dir, ManifestName)
		m, err := l.load(path)
		if err != nil {
			return nil, fmt.Errorf("load path package %s: %w", dir, err)
		}

		ownerDir, owner := wsRoot, ws
		if ws == nil || !within(dir, wsRoot) {
			ownerDir, owner, err = l.workspaceOf(dir, m, "")
			if err != nil {
				return nil, err
			}
		}

		if m.Package != nil {
			ix.add(located{path: path, m: m, ws: owner})
		}
		if dir == rootDir {
			queue = append(queue, m.overridePaths(dir)...)
		}
		queue = append(queue, m.pathDeps(dir, owner, ownerDir)...)
	}
	return ix, nil
}
