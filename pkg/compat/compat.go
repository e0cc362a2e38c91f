// Package compat implements compatibility-bound parsing and evaluation.
// A compat bound is a compact range expression declared by a package for
// one of its dependencies, e.g. "1.2", "^0.5", "~1.4.2", ">= 1.2",
// "0.4 - 0.6", or "1.*". A Spec is a comma-separated union of such
// terms: a version satisfies the Spec when it satisfies any term.
package compat

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/ajxudir/heldback/pkg/errors"
)

// Spec is a parsed compatibility bound.
//
// It exposes a single predicate, Satisfies, and echoes its source text
// via String. Specs are immutable after Parse.
type Spec struct {
	raw   string
	terms []term
}

// term is one range in the union. Bounds are canonical semver strings
// ("v1.2.3"); an empty bound means unbounded on that side.
type term struct {
	lower    string
	lowerInc bool
	upper    string
	upperInc bool
}

// Parse parses a compat range-expression string into a Spec.
//
// It performs the following operations:
//   - Splits the expression on commas into union terms
//   - Parses each term: bare version (caret semantics), caret, tilde,
//     equality, inequality, hyphen range, or wildcard
//   - Rejects empty expressions and unparsable terms as structural faults
//
// Parameters:
//   - spec: The compat range-expression string to parse
//
// Returns:
//   - Spec: The parsed specification
//   - error: StructuralError when the expression is empty or malformed
func Parse(spec string) (Spec, error) {
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return Spec{}, errors.NewStructuralError(spec, "empty compat expression", nil)
	}

	parts := strings.Split(trimmed, ",")
	terms := make([]term, 0, len(parts))

	for _, part := range parts {
		t, err := parseTerm(part)
		if err != nil {
			return Spec{}, err
		}
		terms = append(terms, t)
	}

	return Spec{raw: trimmed, terms: terms}, nil
}

// Satisfies reports whether a version is admitted by the specification.
//
// Comparison follows standard semantic-version precedence, including
// prerelease versions ordering below the release with the same
// major.minor.patch.
//
// Parameters:
//   - version: The version string to test (with or without "v" prefix)
//
// Returns:
//   - bool: true if any union term admits the version; false for
//     unparsable versions
func (s Spec) Satisfies(version string) bool {
	canonical := Canonical(version)
	if canonical == "" {
		return false
	}

	for _, t := range s.terms {
		if t.matches(canonical) {
			return true
		}
	}

	return false
}

// String returns the original expression text the Spec was parsed from.
func (s Spec) String() string {
	return s.raw
}

// matches checks a canonical version against the term's bounds.
func (t term) matches(canonical string) bool {
	if t.lower != "" {
		cmp := semver.Compare(canonical, t.lower)
		if cmp < 0 || (cmp == 0 && !t.lowerInc) {
			return false
		}
	}

	if t.upper != "" {
		cmp := semver.Compare(canonical, t.upper)
		if cmp > 0 || (cmp == 0 && !t.upperInc) {
			return false
		}
	}

	return true
}

// parseTerm parses a single union term into bounds.
//
// Supported forms:
//   - "*": unbounded
//   - "1.2.3", "1.2", "1": caret semantics (compatible within the
//     leading non-zero component)
//   - "^1.2.3", "~1.2.3": caret and tilde ranges
//   - "=1.2.3": exact match at the padded version
//   - ">=1.2", ">1.2", "<=1.2", "<2" (and the ≥/≤ aliases): half-open bounds
//   - "0.4 - 0.6": inclusive hyphen range; an upper bound with fewer than
//     three segments covers every version sharing its prefix
//   - "1.*", "1.2.*": wildcard prefix ranges
//
// Parameters:
//   - raw: The term text, possibly padded with whitespace
//
// Returns:
//   - term: The parsed bounds
//   - error: StructuralError when the term is malformed
func parseTerm(raw string) (term, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "≥", ">=")
	s = strings.ReplaceAll(s, "≤", "<=")

	if s == "" {
		return term{}, errors.NewStructuralError(raw, "empty compat term", nil)
	}

	if s == "*" {
		return term{}, nil
	}

	if lo, hi, ok := strings.Cut(s, " - "); ok {
		return parseHyphenRange(raw, lo, hi)
	}

	for _, op := range []string{">=", "<=", ">", "<", "=", "^", "~"} {
		if strings.HasPrefix(s, op) {
			return parseOperatorTerm(raw, op, strings.TrimSpace(strings.TrimPrefix(s, op)))
		}
	}

	if base, ok := strings.CutSuffix(s, ".*"); ok {
		return parseWildcard(raw, base)
	}

	// Bare version: caret semantics, the registry default.
	return parseOperatorTerm(raw, "^", s)
}

// parseHyphenRange parses an inclusive "lo - hi" range term.
func parseHyphenRange(raw, lo, hi string) (term, error) {
	lower, _, err := refVersion(raw, lo)
	if err != nil {
		return term{}, err
	}

	hiRef, hiSegs, err := refVersion(raw, hi)
	if err != nil {
		return term{}, err
	}

	if hiSegs >= 3 {
		return term{lower: lower, lowerInc: true, upper: hiRef, upperInc: true}, nil
	}

	upper, err := bumpSegment(raw, hi, hiSegs)
	if err != nil {
		return term{}, err
	}

	return term{lower: lower, lowerInc: true, upper: upper}, nil
}

// parseOperatorTerm parses a term with an explicit or implied operator.
func parseOperatorTerm(raw, op, rest string) (term, error) {
	ref, segs, err := refVersion(raw, rest)
	if err != nil {
		return term{}, err
	}

	switch op {
	case ">=":
		return term{lower: ref, lowerInc: true}, nil
	case ">":
		return term{lower: ref}, nil
	case "<=":
		return term{upper: ref, upperInc: true}, nil
	case "<":
		return term{upper: ref}, nil
	case "=":
		return term{lower: ref, lowerInc: true, upper: ref, upperInc: true}, nil
	case "^":
		upper, err := caretUpper(raw, rest, segs)
		if err != nil {
			return term{}, err
		}
		return term{lower: ref, lowerInc: true, upper: upper}, nil
	case "~":
		segments := segs
		if segments > 2 {
			segments = 2
		}
		upper, err := bumpSegment(raw, rest, segments)
		if err != nil {
			return term{}, err
		}
		return term{lower: ref, lowerInc: true, upper: upper}, nil
	}

	return term{}, errors.NewStructuralError(raw, "unknown compat operator "+op, nil)
}

// parseWildcard parses "1.*" and "1.2.*" prefix terms.
func parseWildcard(raw, base string) (term, error) {
	lower, segs, err := refVersion(raw, base)
	if err != nil {
		return term{}, err
	}

	upper, err := bumpSegment(raw, base, segs)
	if err != nil {
		return term{}, err
	}

	return term{lower: lower, lowerInc: true, upper: upper}, nil
}

// caretUpper computes the exclusive upper bound for caret semantics.
//
// The bound bumps the leftmost non-zero component among the specified
// segments: ^1.2.3 -> <2.0.0, ^0.2.3 -> <0.3.0, ^0.0.3 -> <0.0.4.
// With fewer segments the last specified one is bumped when all are
// zero: ^0 -> <1.0.0, ^0.0 -> <0.1.0.
func caretUpper(raw, ref string, segs int) (string, error) {
	major, minor, _, ok := Parts(ref)
	if !ok {
		return "", errors.NewStructuralError(raw, "unparsable compat version "+ref, nil)
	}

	switch {
	case major > 0 || segs <= 1:
		return bumpSegment(raw, ref, 1)
	case minor > 0 || segs == 2:
		return bumpSegment(raw, ref, 2)
	default:
		return bumpSegment(raw, ref, 3)
	}
}

// bumpSegment returns the canonical version one above ref at the given
// segment (1=major, 2=minor, 3=patch), zeroing everything below it.
func bumpSegment(raw, ref string, segment int) (string, error) {
	major, minor, patch, ok := Parts(ref)
	if !ok {
		return "", errors.NewStructuralError(raw, "unparsable compat version "+ref, nil)
	}

	switch segment {
	case 1:
		return "v" + strconv.Itoa(major+1) + ".0.0", nil
	case 2:
		return "v" + strconv.Itoa(major) + "." + strconv.Itoa(minor+1) + ".0", nil
	default:
		return "v" + strconv.Itoa(major) + "." + strconv.Itoa(minor) + "." + strconv.Itoa(patch+1), nil
	}
}

// refVersion canonicalizes a reference version inside a compat term and
// reports how many numeric segments were specified.
func refVersion(raw, version string) (string, int, error) {
	canonical := Canonical(version)
	if canonical == "" {
		return "", 0, errors.NewStructuralError(raw, "unparsable compat version "+strings.TrimSpace(version), nil)
	}

	return canonical, countSegments(version), nil
}

// countSegments counts the numeric segments specified in a version
// string, ignoring any prerelease or build qualifier.
func countSegments(version string) int {
	cleaned := strings.TrimPrefix(strings.TrimSpace(version), "v")
	if i := strings.IndexAny(cleaned, "-+"); i >= 0 {
		cleaned = cleaned[:i]
	}
	if cleaned == "" {
		return 0
	}

	count := 0
	for _, part := range strings.Split(cleaned, ".") {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}

	if count > 3 {
		return 3
	}
	return count
}
