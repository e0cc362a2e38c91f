package registry

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ajxudir/heldback/pkg/compat"
	"github.com/ajxudir/heldback/pkg/errors"
	"github.com/ajxudir/heldback/pkg/verbose"
)

// manifestFile is the top-level registry manifest file name.
const manifestFile = "Registry.toml"

// manifest is the on-disk shape of Registry.toml.
type manifest struct {
	Name     string                   `toml:"name"`
	UUID     string                   `toml:"uuid"`
	Repo     string                   `toml:"repo"`
	Packages map[string]manifestEntry `toml:"packages"`
}

// manifestEntry is one package listing in the manifest.
type manifestEntry struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Build enumerates every registry source and assembles the global index.
//
// It performs the following operations:
//   - Parses each source's Registry.toml into (identity, name, path) triples
//   - Loads the live version entries for every package
//   - Injects any matching prospective override (identity first, then
//     name) as an additional live entry with the all-zero hash sentinel
//   - Records the maximum live version per package
//
// Sources are processed in input order; when two sources declare the same
// identity, the later source supersedes the earlier one. Every invocation
// re-reads storage; the returned index is never cached.
//
// Parameters:
//   - sources: Registry source directories, in precedence order
//   - overrides: Prospective versions keyed by identity or name; may be nil
//
// Returns:
//   - Index: Identity -> PackageRecord for every package with at least
//     one live version
//   - error: StructuralError when a manifest or version file is malformed
//     or an override version is unparsable
func Build(sources []string, overrides Overrides) (Index, error) {
	index := Index{}

	for _, source := range sources {
		if err := buildSource(index, source, overrides); err != nil {
			return nil, err
		}
	}

	verbose.Debugf("Built index: %d packages from %d sources", len(index), len(sources))
	return index, nil
}

// buildSource loads one registry source into the index, overwriting any
// identity already present from an earlier source.
func buildSource(index Index, source string, overrides Overrides) error {
	path := filepath.Join(source, manifestFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewStructuralError(path, "missing registry manifest", err)
		}
		return errors.NewStructuralError(path, "unreadable registry manifest", err)
	}

	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return errors.NewStructuralError(path, "malformed registry manifest", err)
	}

	verbose.Debugf("Reading registry %q: %d packages", m.Name, len(m.Packages))

	for uuid, entry := range m.Packages {
		if entry.Name == "" || entry.Path == "" {
			return errors.NewStructuralError(path, "package "+uuid+" is missing name or path", nil)
		}

		dir := filepath.Join(source, filepath.FromSlash(entry.Path))
		entries, err := LoadVersions(dir)
		if err != nil {
			return err
		}

		if version, ok := overrides.Resolve(uuid, entry.Name); ok {
			if compat.Canonical(version) == "" {
				return errors.NewStructuralError(entry.Name, "unparsable prospective version "+version, nil)
			}
			verbose.Debugf("Injecting prospective version %s for %s", version, entry.Name)
			entries = append(entries, VersionEntry{Version: version, TreeHash: ZeroTreeHash})
		}

		max, ok := MaxLiveVersion(entries)
		if !ok {
			verbose.Debugf("Skipping %s: no live versions", entry.Name)
			continue
		}

		index[uuid] = PackageRecord{
			UUID:       uuid,
			Name:       entry.Name,
			Path:       entry.Path,
			Dir:        dir,
			MaxVersion: max,
		}
	}

	return nil
}
