package cargo

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	errs "github.com/matzehuels/cargoauthors/pkg/errors"
)

// errSourceMissing is returned when a package's unpacked sources are not
// present under CARGO_HOME.
var errSourceMissing = errors.New("package sources not found locally; run `cargo fetch` first")

// gitShortRevLen is the length of the revision directory cargo uses for git
// checkouts.
const gitShortRevLen = 7

// registryManifest locates the unpacked manifest of a registry package:
// $CARGO_HOME/registry/src/<index>/<name>-<version>/Cargo.toml. When several
// registries hold the same package, the lexically first index wins.
func registryManifest(cargoHome string, p lockPackage) (string, error) {
	if err := errs.ValidateCrateName(p.Name); err != nil {
		return "", err
	}
	if err := errs.ValidateCrateVersion(p.Version); err != nil {
		return "", err
	}
	pattern := filepath.Join(cargoHome, "registry", "src", "*", p.Name+"-"+p.Version, ManifestName)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", errSourceMissing
	}
	slices.Sort(matches)
	return matches[0], nil
}

// gitManifest locates the manifest of a git package inside
// $CARGO_HOME/git/checkouts/<repo>/<short-rev>/, searching the checkout for a
// Cargo.toml whose package name matches.
func gitManifest(cargoHome string, p lockPackage) (string, error) {
	if err := errs.ValidateCrateName(p.Name); err != nil {
		return "", err
	}
	rev := p.gitRev()
	if len(rev) < gitShortRevLen {
		return "", errs.New(errs.ErrCodeInvalidPackage, "git source without revision: %q", p.Source)
	}
	short := rev[:gitShortRevLen]
	if !isHex(short) {
		return "", errs.New(errs.ErrCodeInvalidPackage, "invalid git revision: %q", rev)
	}

	checkouts, err := filepath.Glob(filepath.Join(cargoHome, "git", "checkouts", "*", short))
	if err != nil {
		return "", err
	}
	slices.Sort(checkouts)
	for _, dir := range checkouts {
		if path, ok := findPackageManifest(dir, p.Name); ok {
			return path, nil
		}
	}
	return "", errSourceMissing
}

// findPackageManifest walks root for a Cargo.toml declaring package name.
// target/ and hidden directories are skipped.
func findPackageManifest(root, name string) (string, bool) {
	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			base := d.Name()
			if path != root && (base == "target" || base[0] == '.') {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != ManifestName {
			return nil
		}
		m, err := readManifest(path)
		if err != nil {
			return nil
		}
		if m.name() == name {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found, found != ""
}

func isHex(s string) bool {
	for _, c := range s {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

// defaultCargoHome returns $CARGO_HOME, falling back to ~/.cargo.
func defaultCargoHome() string {
	if home := os.Getenv("CARGO_HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cargo"
	}
	return filepath.Join(home, ".cargo")
}
