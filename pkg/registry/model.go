// Package registry reads package-registry storage and builds the global
// package index used by the held-back computation.
//
// A registry source is a directory with a top-level Registry.toml manifest
// listing packages by identity, name, and relative storage path. Each
// package directory carries a Versions.toml file mapping version strings
// to content hashes and an optional yanked flag.
package registry

// ZeroTreeHash is the sentinel content hash assigned to injected
// prospective versions. Injected entries participate in maximum-version
// selection and in nothing else.
const ZeroTreeHash = "0000000000000000000000000000000000000000"

// PackageRecord describes one package in the global index.
//
// Records are created once per package per index build and are immutable
// for the duration of one computation pass.
//
// Fields:
//   - UUID: Globally unique package identity
//   - Name: Package name; not guaranteed unique across registries
//   - Path: Storage path relative to the registry source root
//   - Dir: Absolute storage directory (source root joined with Path)
//   - MaxVersion: Maximum live version under semantic-version precedence
type PackageRecord struct {
	UUID       string
	Name       string
	Path       string
	Dir        string
	MaxVersion string
}

// VersionEntry is one live version of a package.
//
// Fields:
//   - Version: The version string as stored in the registry
//   - TreeHash: The content hash for the version; ZeroTreeHash for
//     injected prospective versions
type VersionEntry struct {
	Version  string
	TreeHash string
}

// Index is the global package index, keyed by package identity.
// It is owned exclusively by the computation it was built for and is
// never cached between invocations.
type Index map[string]PackageRecord

// Overrides maps a package identity or name to a prospective version.
// During index construction the override is matched by identity first,
// then by name, and injected as an additional live version entry.
type Overrides map[string]string

// Resolve looks up the override for a package, trying identity first
// and falling back to name.
//
// Parameters:
//   - uuid: The package identity
//   - name: The package name
//
// Returns:
//   - string: The prospective version
//   - bool: true if an override matched
func (o Overrides) Resolve(uuid, name string) (string, bool) {
	if version, ok := o[uuid]; ok {
		return version, true
	}
	version, ok := o[name]
	return version, ok
}
