package heldback

import "sort"

// HeldBackBy inverts a HoldMap to answer "what holds back this package".
//
// It performs the following operations:
//   - Scans every (holder, violations) pair in the map
//   - Collects the holder wherever a violation names the target package
//   - Deduplicates and sorts the holder names lexicographically ascending
//
// This is a pure inversion over caller-supplied data; it never recomputes
// the map, which makes it suitable for repeated queries against one
// snapshot.
//
// Parameters:
//   - m: A HoldMap from a previous computation
//   - name: The package to find holders for
//
// Returns:
//   - []string: Distinct holder names in ascending order; empty when
//     nothing holds the package back
func HeldBackBy(m HoldMap, name string) []string {
	seen := make(map[string]struct{})

	for holder, violations := range m {
		for _, violation := range violations {
			if violation.Name == name {
				seen[holder] = struct{}{}
				break
			}
		}
	}

	holders := make([]string, 0, len(seen))
	for holder := range seen {
		holders = append(holders, holder)
	}
	sort.Strings(holders)

	return holders
}
