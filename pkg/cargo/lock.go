package cargo

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// LockName is the file name of a Cargo lock file.
const LockName = "Cargo.lock"

// lockFile holds the resolved package set of a workspace. It is the full
// transitive closure across all targets, features and dependency kinds.
type lockFile struct {
	Version  int           `toml:"version"`
	Packages []lockPackage `toml:"package"`
}

type lockPackage struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	Source       string   `toml:"source"`
	Dependencies []string `toml:"dependencies"`
}

func readLock(path string) (*lockFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lock lockFile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &lock, nil
}

// sourceKind classifies a lock entry's source field.
type sourceKind int

const (
	sourceLocal sourceKind = iota
	sourceRegistry
	sourceGit
	sourceUnknown
)

func (p lockPackage) kind() sourceKind {
	switch {
	case p.Source == "":
		return sourceLocal
	case strings.HasPrefix(p.Source, "registry+"), strings.HasPrefix(p.Source, "sparse+"):
		return sourceRegistry
	case strings.HasPrefix(p.Source, "git+"):
		return sourceGit
	default:
		return sourceUnknown
	}
}

// gitRev returns the commit recorded after '#' in a git source.
func (p lockPackage) gitRev() string {
	_, rev, ok := strings.Cut(p.Source, "#")
	if !ok {
		return ""
	}
	return rev
}

func (p lockPackage) String() string {
	return p.Name + " v" + p.Version
}
