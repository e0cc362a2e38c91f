// Package heldback implements the held-back computation engine.
//
// It cross-references, for every package in a registry index, the
// compatibility bounds the package declares at its maximum version
// against each dependency's own maximum version, and reports the bounds
// that exclude a dependency's latest release.
package heldback

import (
	"path/filepath"

	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/heldback/pkg/rangetable"
	"github.com/ajxudir/heldback/pkg/registry"
	"github.com/ajxudir/heldback/pkg/verbose"
)

const (
	depsFile   = "Deps.toml"
	compatFile = "Compat.toml"
)

// Resolve looks up a package's declared dependencies and compat bounds
// at its maximum version.
//
// It performs the following operations:
//   - Loads the package's Deps table; a package with no Deps file has
//     never declared dependencies and yields nil for both results
//   - Decompresses the Deps table at the record's maximum version; a
//     table without an entry for that exact version yields nil deps
//   - Independently loads and decompresses the Compat table with the
//     same absence semantics
//
// Absence is expected data, not an error: callers cross-reference a
// package only when both mappings are present.
//
// Parameters:
//   - rec: The package record, carrying its storage directory and
//     resolved maximum version
//
// Returns:
//   - *orderedmap.OrderedMap: Dependency name -> identity, or nil
//   - *orderedmap.OrderedMap: Dependency name -> compat string, or nil
//   - error: StructuralError from malformed tables or range keys
func Resolve(rec registry.PackageRecord) (*orderedmap.OrderedMap, *orderedmap.OrderedMap, error) {
	depsTable, exists, err := rangetable.LoadTOML(filepath.Join(rec.Dir, depsFile))
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		verbose.Tracef("%s declares no dependencies, skipping", rec.Name)
		return nil, nil, nil
	}

	deps, ok, err := rangetable.Lookup(depsTable, rec.MaxVersion)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		verbose.Tracef("%s has no dependency data at %s", rec.Name, rec.MaxVersion)
		deps = nil
	}

	compatTable, exists, err := rangetable.LoadTOML(filepath.Join(rec.Dir, compatFile))
	if err != nil {
		return nil, nil, err
	}

	var bounds *orderedmap.OrderedMap
	if exists {
		resolved, ok, err := rangetable.Lookup(compatTable, rec.MaxVersion)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			bounds = resolved
		}
	}

	return deps, bounds, nil
}
