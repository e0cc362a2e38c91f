package compat

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Canonical converts a version string to canonical semver format.
//
// It performs the following operations:
//   - Cleans and validates the input
//   - Adds a "v" prefix if missing
//   - Pads missing minor/patch segments with zeros until valid semver is found
//   - Returns the canonical form, preserving any prerelease qualifier
//
// Parameters:
//   - version: The version string to canonicalize (e.g., "1.2", "v1.2.3-rc1")
//
// Returns:
//   - string: Canonical semver string (e.g., "v1.2.0"); empty string if
//     the input is not valid semver
func Canonical(version string) string {
	cleaned := strings.TrimSpace(version)
	if cleaned == "" {
		return ""
	}

	if !strings.HasPrefix(cleaned, "v") {
		cleaned = "v" + cleaned
	}

	trimmed := strings.TrimPrefix(cleaned, "v")
	parts := strings.Split(trimmed, ".")
	for len(parts) > 0 && len(parts) < 3 {
		candidate := "v" + strings.Join(parts, ".")
		if semver.IsValid(candidate) {
			return semver.Canonical(candidate)
		}
		parts = append(parts, "0")
	}

	if semver.IsValid(cleaned) {
		return semver.Canonical(cleaned)
	}

	return ""
}

// Compare compares two version strings under semantic-version precedence.
//
// Both inputs are canonicalized first; an invalid version compares below
// any valid one.
//
// Parameters:
//   - a: The first version to compare
//   - b: The second version to compare
//
// Returns:
//   - int: Negative if a < b, zero if a == b, positive if a > b
func Compare(a, b string) int {
	ca := Canonical(a)
	cb := Canonical(b)

	switch {
	case ca == "" && cb == "":
		return strings.Compare(a, b)
	case ca == "":
		return -1
	case cb == "":
		return 1
	}

	return semver.Compare(ca, cb)
}

// Parts extracts the numeric major, minor, and patch components of a
// version string, ignoring any prerelease or build qualifier.
//
// Parameters:
//   - version: The version string to split (e.g., "1.2", "v1.2.3-rc1")
//
// Returns:
//   - int: Major version number
//   - int: Minor version number (0 if unspecified)
//   - int: Patch version number (0 if unspecified)
//   - bool: true if the version has a parsable numeric major component
func Parts(version string) (int, int, int, bool) {
	cleaned := strings.TrimPrefix(strings.TrimSpace(version), "v")
	if i := strings.IndexAny(cleaned, "-+"); i >= 0 {
		cleaned = cleaned[:i]
	}
	if cleaned == "" {
		return 0, 0, 0, false
	}

	parts := strings.SplitN(cleaned, ".", 3)

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, false
	}

	minor := numericPart(parts, 1)
	patch := numericPart(parts, 2)

	return major, minor, patch, true
}

// numericPart parses a single version segment, defaulting to 0 when the
// segment is absent or not numeric.
func numericPart(parts []string, index int) int {
	if index >= len(parts) {
		return 0
	}

	value, err := strconv.Atoi(parts[index])
	if err != nil {
		return 0
	}

	return value
}
