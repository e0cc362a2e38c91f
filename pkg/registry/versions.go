package registry

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ajxudir/heldback/pkg/compat"
	"github.com/ajxudir/heldback/pkg/errors"
	"github.com/ajxudir/heldback/pkg/verbose"
)

// versionsFile is the per-package version record file name.
const versionsFile = "Versions.toml"

// versionRecord is the on-disk shape of one Versions.toml entry.
type versionRecord struct {
	GitTreeSHA1 string `toml:"git-tree-sha1"`
	Yanked      bool   `toml:"yanked"`
}

// LoadVersions reads a package's per-version record file and returns its
// live version entries.
//
// It performs the following operations:
//   - Reads and decodes <dir>/Versions.toml
//   - Validates every version string and content hash
//   - Excludes entries marked yanked from the live set
//
// Parameters:
//   - dir: The package storage directory
//
// Returns:
//   - []VersionEntry: The live (non-yanked) version entries
//   - error: StructuralError when the file is missing, undecodable, or
//     contains an unparsable version string or empty content hash
func LoadVersions(dir string) ([]VersionEntry, error) {
	path := filepath.Join(dir, versionsFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewStructuralError(path, "missing version record file", err)
		}
		return nil, errors.NewStructuralError(path, "unreadable version record file", err)
	}

	var raw map[string]versionRecord
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewStructuralError(path, "malformed version record file", err)
	}

	entries := make([]VersionEntry, 0, len(raw))
	yanked := 0

	for version, record := range raw {
		if compat.Canonical(version) == "" {
			return nil, errors.NewStructuralError(path, "unparsable version string "+version, nil)
		}
		if record.GitTreeSHA1 == "" {
			return nil, errors.NewStructuralError(path, "missing content hash for version "+version, nil)
		}

		if record.Yanked {
			yanked++
			continue
		}

		entries = append(entries, VersionEntry{Version: version, TreeHash: record.GitTreeSHA1})
	}

	if yanked > 0 {
		verbose.Tracef("Excluded %d yanked versions in %s", yanked, dir)
	}

	return entries, nil
}

// MaxLiveVersion returns the maximum version among the entries under
// semantic-version precedence, including prerelease ordering below the
// release with the same major.minor.patch.
//
// Parameters:
//   - entries: Live version entries, possibly including an injected
//     prospective entry
//
// Returns:
//   - string: The maximum version as stored
//   - bool: false when the entry set is empty
func MaxLiveVersion(entries []VersionEntry) (string, bool) {
	if len(entries) == 0 {
		return "", false
	}

	max := entries[0].Version
	for _, entry := range entries[1:] {
		if compat.Compare(entry.Version, max) > 0 {
			max = entry.Version
		}
	}

	return max, true
}
