package cargo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file name of a Cargo package manifest.
const ManifestName = "Cargo.toml"

// manifest is the subset of Cargo.toml needed to locate packages and read
// their authors. Fields that may be inherited from the workspace
// (`field.workspace = true`) are decoded as any.
type manifest struct {
	Package           *manifestPackage      `toml:"package"`
	Workspace         *manifestWorkspace    `toml:"workspace"`
	Dependencies      map[string]any        `toml:"dependencies"`
	DevDependencies   map[string]any        `toml:"dev-dependencies"`
	BuildDependencies map[string]any        `toml:"build-dependencies"`
	Target            map[string]targetDeps `toml:"target"`

	// Overrides; cargo only honors these in the workspace root manifest.
	Patch   map[string]map[string]any `toml:"patch"`
	Replace map[string]any            `toml:"replace"`
}

type manifestPackage struct {
	Name      string `toml:"name"`
	Version   any    `toml:"version"`
	Authors   any    `toml:"authors"`
	Workspace string `toml:"workspace"`
}

type manifestWorkspace struct {
	Members      []string       `toml:"members"`
	Exclude      []string       `toml:"exclude"`
	Dependencies map[string]any `toml:"dependencies"`
	Package      struct {
		Version string   `toml:"version"`
		Authors []string `toml:"authors"`
	} `toml:"package"`
}

type targetDeps struct {
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &m, nil
}

// inherits reports whether a manifest value is `{ workspace = true }`.
func inherits(v any) bool {
	t, ok := v.(map[string]any)
	if !ok {
		return false
	}
	w, _ := t["workspace"].(bool)
	return w
}

// name returns the package name, or "" for a virtual manifest.
func (m *manifest) name() string {
	if m.Package == nil {
		return ""
	}
	return m.Package.Name
}

// version returns the package version, resolving workspace inheritance
// against ws. ws may be nil.
func (m *manifest) version(ws *manifest) string {
	if m.Package == nil {
		return ""
	}
	switch v := m.Package.Version.(type) {
	case string:
		return v
	default:
		if inherits(v) && ws != nil && ws.Workspace != nil {
			return ws.Workspace.Package.Version
		}
	}
	return ""
}

// authors returns the declared author strings, resolving workspace
// inheritance against ws. ws may be nil.
func (m *manifest) authors(ws *manifest) ([]string, error) {
	if m.Package == nil {
		return nil, nil
	}
	switch v := m.Package.Authors.(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, a := range v {
			s, ok := a.(string)
			if !ok {
				return nil, fmt.Errorf("package.authors: expected string, found %T", a)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		if !inherits(v) {
			return nil, fmt.Errorf("package.authors: expected array, found %T", v)
		}
		if ws == nil || ws.Workspace == nil {
			return nil, fmt.Errorf("package.authors: inherits from workspace but no workspace root was found")
		}
		return ws.Workspace.Package.Authors, nil
	}
}

// pathDeps returns the directories of all path dependencies declared by m,
// relative paths resolved against dir. Dependencies that inherit from the
// workspace use the workspace's declaration, resolved against wsDir.
func (m *manifest) pathDeps(dir string, ws *manifest, wsDir string) []string {
	tables := []map[string]any{m.Dependencies, m.DevDependencies, m.BuildDependencies}
	targets := make([]string, 0, len(m.Target))
	for k := range m.Target {
		targets = append(targets, k)
	}
	sort.Strings(targets)
	for _, k := range targets {
		t := m.Target[k]
		tables = append(tables, t.Dependencies, t.DevDependencies, t.BuildDependencies)
	}

	var wsDeps map[string]any
	if ws != nil && ws.Workspace != nil {
		wsDeps = ws.Workspace.Dependencies
	}

	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, deps := range tables {
		names := make([]string, 0, len(deps))
		for name := range deps {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			spec := deps[name]
			if inherits(spec) {
				if p, ok := depPath(wsDeps[name]); ok {
					add(joinPath(wsDir, p))
				}
				continue
			}
			if p, ok := depPath(spec); ok {
				add(joinPath(dir, p))
			}
		}
	}
	return out
}

// overridePaths returns the directories of path entries in m's [patch.*]
// and [replace] tables, resolved against dir. Cargo.lock records the
// packages they provide without a source.
func (m *manifest) overridePaths(dir string) []string {
	var tables []map[string]any
	registries := make([]string, 0, len(m.Patch))
	for k := range m.Patch {
		registries = append(registries, k)
	}
	sort.Strings(registries)
	for _, k := range registries {
		tables = append(tables, m.Patch[k])
	}
	tables = append(tables, m.Replace)

	seen := make(map[string]bool)
	var out []string
	for _, t := range tables {
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			p, ok := depPath(t[k])
			if !ok {
				continue
			}
			if full := joinPath(dir, p); !seen[full] {
				seen[full] = true
				out = append(out, full)
			}
		}
	}
	return out
}

func depPath(spec any) (string, bool) {
	t, ok := spec.(map[string]any)
	if !ok {
		return "", false
	}
	p, ok := t["path"].(string)
	return p, ok && p != ""
}

func joinPath(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, filepath.FromSlash(p))
}

// memberDirs expands the workspace member globs of m relative to root,
// skipping excluded paths and directories without a manifest.
func (m *manifest) memberDirs(root string) []string {
	if m.Workspace == nil {
		return nil
	}
	excluded := make(map[string]bool, len(m.Workspace.Exclude))
	for _, e := range m.Workspace.Exclude {
		excluded[joinPath(root, e)] = true
	}

	var out []string
	for _, pattern := range m.Workspace.Members {
		matches, err := filepath.Glob(joinPath(root, pattern))
		if err != nil {
			continue
		}
		for _, dir := range matches {
			if excluded[dir] {
				continue
			}
			if _, err := os.Stat(filepath.Join(dir, ManifestName)); err == nil {
				out = append(out, dir)
			}
		}
	}
	return out
}

// excludes reports whether dir is listed in the workspace's exclude list.
func (m *manifest) excludes(root, dir string) bool {
	if m.Workspace == nil {
		return false
	}
	for _, e := range m.Workspace.Exclude {
		ex := joinPath(root, e)
		if dir == ex || strings.HasPrefix(dir, ex+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
