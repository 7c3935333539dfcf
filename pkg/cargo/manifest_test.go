package cargo

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/BurntSushi/toml"
)

func decode(t *testing.T, src string) *manifest {
	t.Helper()
	var m manifest
	if _, err := toml.Decode(src, &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	return &m
}

func TestManifestAuthors(t *testing.T) {
	ws := decode(t, `[workspace]
[workspace.package]
version = "2.0.0"
authors = ["Team"]
`)

	tests := []struct {
		name    string
		src     string
		ws      *manifest
		want    []string
		wantErr bool
	}{
		{"list", "[package]\nname = \"a\"\nauthors = [\"A <a@x>\", \"B\"]\n", nil, []string{"A <a@x>", "B"}, false},
		{"absent", "[package]\nname = \"a\"\n", nil, nil, false},
		{"virtual", "[workspace]\n", nil, nil, false},
		{"inherited", "[package]\nname = \"a\"\nauthors.workspace = true\n", ws, []string{"Team"}, false},
		{"inherited without workspace", "[package]\nname = \"a\"\nauthors.workspace = true\n", nil, nil, true},
		{"string instead of list", "[package]\nname = \"a\"\nauthors = \"A\"\n", nil, nil, true},
		{"non-string entry", "[package]\nname = \"a\"\nauthors = [1]\n", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decode(t, tt.src).authors(tt.ws)
			if (err != nil) != tt.wantErr {
				t.Fatalf("authors() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("authors() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestManifestVersion(t *testing.T) {
	ws := decode(t, "[workspace]\n[workspace.package]\nversion = \"2.0.0\"\n")

	if got := decode(t, "[package]\nversion = \"1.2.3\"\n").version(nil); got != "1.2.3" {
		t.Errorf("version() = %q, want 1.2.3", got)
	}
	if got := decode(t, "[package]\nversion.workspace = true\n").version(ws); got != "2.0.0" {
		t.Errorf("inherited version() = %q, want 2.0.0", got)
	}
	if got := decode(t, "[package]\nversion.workspace = true\n").version(nil); got != "" {
		t.Errorf("orphan inherited version() = %q, want empty", got)
	}
}

func TestManifestPathDeps(t *testing.T) {
	dir := filepath.FromSlash("/ws/crates/app")
	wsDir := filepath.FromSlash("/ws")
	ws := decode(t, "[workspace]\n[workspace.dependencies]\nshared = { path = \"libs/shared\" }\nremote = \"1\"\n")

	m := decode(t, `[package]
name = "app"

[dependencies]
serde = "1"
local = { path = "../local" }
shared = { workspace = true }
remote = { workspace = true }

[dev-dependencies]
local = { path = "../local" }
helper = { path = "/abs/helper" }

[target.'cfg(windows)'.dependencies]
winlib = { path = "../winlib" }
`)

	want := []string{
		filepath.FromSlash("/ws/crates/local"),
		filepath.FromSlash("/ws/libs/shared"),
		filepath.FromSlash("/abs/helper"),
		filepath.FromSlash("/ws/crates/winlib"),
	}
	if got := m.pathDeps(dir, ws, wsDir); !reflect.DeepEqual(got, want) {
		t.Errorf("pathDeps() = %v, want %v", got, want)
	}
}

func TestManifestOverridePaths(t *testing.T) {
	dir := filepath.FromSlash("/ws")
	m := decode(t, `[patch.crates-io]
serde = { path = "forks/serde" }
log = { git = "https://github.com/rust-lang/log" }

[patch."https://github.com/example/repo"]
gitdep = { path = "/abs/gitdep" }

[replace]
"rand:0.8.5" = { path = "forks/rand" }
"other:1.0.0" = { path = "forks/serde" }
`)

	want := []string{
		filepath.FromSlash("/ws/forks/serde"),
		filepath.FromSlash("/abs/gitdep"),
		filepath.FromSlash("/ws/forks/rand"),
	}
	if got := m.overridePaths(dir); !reflect.DeepEqual(got, want) {
		t.Errorf("overridePaths() = %v, want %v", got, want)
	}
	if got := decode(t, "[package]\nname = \"a\"\n").overridePaths(dir); got != nil {
		t.Errorf("overridePaths() without overrides = %v, want nil", got)
	}
}

func TestManifestMemberDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"crates/a/Cargo.toml":       "[package]\nname = \"a\"\n",
		"crates/b/Cargo.toml":       "[package]\nname = \"b\"\n",
		"crates/skip/Cargo.toml":    "[package]\nname = \"skip\"\n",
		"crates/no-manifest/README": "",
		"tools/gen/Cargo.toml":      "[package]\nname = \"gen\"\n",
	})
	m := decode(t, "[workspace]\nmembers = [\"crates/*\", \"tools/gen\"]\nexclude = [\"crates/skip\"]\n")

	want := []string{
		filepath.Join(root, "crates", "a"),
		filepath.Join(root, "crates", "b"),
		filepath.Join(root, "tools", "gen"),
	}
	if got := m.memberDirs(root); !reflect.DeepEqual(got, want) {
		t.Errorf("memberDirs() = %v, want %v", got, want)
	}

	if !m.excludes(root, filepath.Join(root, "crates", "skip", "inner")) {
		t.Error("excludes() should cover subdirectories of an excluded path")
	}
	if m.excludes(root, filepath.Join(root, "crates", "skipper")) {
		t.Error("excludes() should not match on a name prefix")
	}
}

func TestLockPackageKind(t *testing.T) {
	tests := []struct {
		source string
		want   sourceKind
	}{
		{"", sourceLocal},
		{registrySource, sourceRegistry},
		{"sparse+https://index.crates.io/", sourceRegistry},
		{gitSource, sourceGit},
		{"path+file:///tmp/x", sourceUnknown},
	}
	for _, tt := range tests {
		if got := (lockPackage{Source: tt.source}).kind(); got != tt.want {
			t.Errorf("kind(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}

func TestLockPackageGitRev(t *testing.T) {
	p := lockPackage{Name: "gitdep", Version: "0.3.0", Source: gitSource}
	if got := p.gitRev(); got != "1234567890abcdef1234567890abcdef12345678" {
		t.Errorf("gitRev() = %q", got)
	}
	if got := (lockPackage{Source: registrySource}).gitRev(); got != "" {
		t.Errorf("gitRev() without fragment = %q, want empty", got)
	}
	if got := p.String(); got != "gitdep v0.3.0" {
		t.Errorf("String() = %q", got)
	}
}

func TestGitManifest(t *testing.T) {
	home := t.TempDir()
	writeTree(t, home, map[string]string{
		"git/checkouts/repo-aaa/1234567/Cargo.toml":           "[workspace]\nmembers = [\"*\"]\n",
		"git/checkouts/repo-aaa/1234567/other/Cargo.toml":     "[package]\nname = \"other\"\n",
		"git/checkouts/repo-aaa/1234567/gitdep/Cargo.toml":    "[package]\nname = \"gitdep\"\n",
		"git/checkouts/repo-aaa/1234567/target/x/Cargo.toml":  "[package]\nname = \"gitdep\"\n",
		"git/checkouts/repo-aaa/1234567/.hidden/y/Cargo.toml": "[package]\nname = \"gitdep\"\n",
		"git/checkouts/repo-aaa/7654321/gitdep/Cargo.toml":    "[package]\nname = \"gitdep\"\n",
	})

	got, err := gitManifest(home, lockPackage{Name: "gitdep", Source: gitSource})
	if err != nil {
		t.Fatalf("gitManifest failed: %v", err)
	}
	want := filepath.Join(home, "git", "checkouts", "repo-aaa", "1234567", "gitdep", "Cargo.toml")
	if got != want {
		t.Errorf("gitManifest() = %q, want %q", got, want)
	}

	if _, err := gitManifest(home, lockPackage{Name: "gitdep", Source: "git+https://x#zzzzzzz"}); err == nil {
		t.Error("expected error for non-hex revision")
	}
	if _, err := gitManifest(home, lockPackage{Name: "gitdep", Source: "git+https://x"}); err == nil {
		t.Error("expected error for missing revision")
	}
	if _, err := gitManifest(home, lockPackage{Name: "absent", Source: gitSource}); err != errSourceMissing {
		t.Errorf("err = %v, want errSourceMissing", err)
	}
}

func TestRegistryManifest(t *testing.T) {
	home := t.TempDir()
	writeTree(t, home, map[string]string{
		"registry/src/b-index/serde-1.0.0/Cargo.toml": "",
		"registry/src/a-index/serde-1.0.0/Cargo.toml": "",
	})

	got, err := registryManifest(home, lockPackage{Name: "serde", Version: "1.0.0"})
	if err != nil {
		t.Fatalf("registryManifest failed: %v", err)
	}
	if want := filepath.Join(home, "registry", "src", "a-index", "serde-1.0.0", "Cargo.toml"); got != want {
		t.Errorf("registryManifest() = %q, want %q", got, want)
	}

	if _, err := registryManifest(home, lockPackage{Name: "serde", Version: "2.0.0"}); err != errSourceMissing {
		t.Errorf("err = %v, want errSourceMissing", err)
	}
	if _, err := registryManifest(home, lockPackage{Name: "serde", Version: "../../x"}); err == nil {
		t.Error("expected error for unsafe version")
	}
}
