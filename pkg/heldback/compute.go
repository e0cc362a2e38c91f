package heldback

import (
	"sort"

	"github.com/ajxudir/heldback/pkg/compat"
	"github.com/ajxudir/heldback/pkg/errors"
	"github.com/ajxudir/heldback/pkg/registry"
	"github.com/ajxudir/heldback/pkg/verbose"
)

// HeldBack records one violated compatibility bound: the holder's
// declared bound for a dependency does not admit the dependency's
// actual latest version.
//
// Fields:
//   - Name: The dependency name as declared by the holder
//   - MaxVersion: The dependency's own maximum live version
//   - Compat: The violated compat bound, as declared
type HeldBack struct {
	Name       string
	MaxVersion string
	Compat     string
}

// HoldMap maps a holder package name to its violated bounds.
//
// A holder with zero violations never appears as a key. Each violation
// list follows the resolution order of the holder's dependency mapping;
// callers needing a different order must sort explicitly, as the
// inversion step does.
type HoldMap map[string][]HeldBack

// Compute cross-references every package in the index against its
// dependencies' maximum versions.
//
// Algorithm, for every package record in the index:
//   - Resolve its deps and compat mappings; skip the package when either
//     is absent
//   - For each declared dependency: skip standard-library modules and
//     dependencies without a declared bound
//   - Parse the bound, look up the dependency's record in the index, and
//     record a violation when its maximum version fails the bound
//
// A dependency identity missing from the index is a registry
// inconsistency and aborts the whole computation.
//
// Parameters:
//   - index: The global package index for this computation pass
//   - stdlib: Names of standard-library modules, which are never
//     registry packages and cannot be held back
//
// Returns:
//   - HoldMap: Holder name -> violated bounds, holders with violations only
//   - error: StructuralError or InconsistencyError; no partial result is
//     returned on failure
func Compute(index registry.Index, stdlib map[string]struct{}) (HoldMap, error) {
	uuids := make([]string, 0, len(index))
	for uuid := range index {
		uuids = append(uuids, uuid)
	}
	sort.Strings(uuids)

	result := HoldMap{}

	for _, uuid := range uuids {
		holder := index[uuid]

		deps, bounds, err := Resolve(holder)
		if err != nil {
			return nil, err
		}
		if deps == nil || bounds == nil {
			continue
		}

		var held []HeldBack

		for _, depName := range deps.Keys() {
			if _, ok := stdlib[depName]; ok {
				continue
			}

			rawBound, ok := bounds.Get(depName)
			if !ok {
				// No bound declared: an unconstrained dependency
				// cannot be held back.
				continue
			}
			bound := rawBound.(string)

			spec, err := compat.Parse(bound)
			if err != nil {
				return nil, err
			}

			rawUUID, _ := deps.Get(depName)
			depUUID := rawUUID.(string)

			dep, ok := index[depUUID]
			if !ok {
				return nil, &errors.InconsistencyError{
					Holder:     holder.Name,
					Dependency: depName,
					Identity:   depUUID,
				}
			}

			if !spec.Satisfies(dep.MaxVersion) {
				verbose.Debugf("%s holds back %s: %s excludes %s",
					holder.Name, depName, bound, dep.MaxVersion)
				held = append(held, HeldBack{
					Name:       depName,
					MaxVersion: dep.MaxVersion,
					Compat:     bound,
				})
			}
		}

		if len(held) > 0 {
			result[holder.Name] = held
		}
	}

	return result, nil
}
