package heldback

import (
	"github.com/ajxudir/heldback/pkg/registry"
)

// Engine binds registry sources and a standard-library module set into
// the query surface of the held-back computation.
//
// The engine holds no mutable state: every query re-reads registry
// storage, builds a fresh index, and returns an independently-owned
// result. Callers embedding it in a concurrent host should run each
// query as an atomic, non-interruptible step.
//
// Fields:
//   - Sources: Registry source directories, in precedence order
//   - Stdlib: Names of standard-library modules excluded from analysis
type Engine struct {
	Sources []string
	Stdlib  map[string]struct{}
}

// New creates an engine over the given registry sources.
//
// Parameters:
//   - sources: Registry source directories, in precedence order
//   - stdlib: Standard-library module names; may be nil
//
// Returns:
//   - *Engine: The configured engine
func New(sources []string, stdlib map[string]struct{}) *Engine {
	return &Engine{Sources: sources, Stdlib: stdlib}
}

// HeldBackPackages computes the full held-back relation.
//
// It performs the following operations:
//   - Builds a fresh index from storage, injecting any prospective
//     overrides
//   - Runs the cross-reference computation over the index
//
// Parameters:
//   - overrides: Prospective versions keyed by identity or name; may be nil
//
// Returns:
//   - HoldMap: Holder name -> violated bounds
//   - error: Any structural or inconsistency fault; no partial result
func (e *Engine) HeldBackPackages(overrides registry.Overrides) (HoldMap, error) {
	index, err := registry.Build(e.Sources, overrides)
	if err != nil {
		return nil, err
	}

	return Compute(index, e.Stdlib)
}

// WhoHolds answers "which packages hold back this package".
//
// With an empty version it inverts a fresh computation over current
// registry state. With a version it injects {name: version} as a
// prospective override first, answering "who would hold back this
// not-yet-released version"; the injection is a full recomputation, not
// an approximation.
//
// Parameters:
//   - name: The package to find holders for
//   - version: Optional prospective version; empty means none
//
// Returns:
//   - []string: Distinct holder names in ascending order
//   - error: Any computation fault
func (e *Engine) WhoHolds(name, version string) ([]string, error) {
	var overrides registry.Overrides
	if version != "" {
		overrides = registry.Overrides{name: version}
	}

	m, err := e.HeldBackPackages(overrides)
	if err != nil {
		return nil, err
	}

	return HeldBackBy(m, name), nil
}
