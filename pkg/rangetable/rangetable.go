// Package rangetable reads version-range-compressed TOML tables.
//
// Registry Deps and Compat files group per-version data under range keys
// such as "1.2.3", "1.2", or "0.3-0.7" instead of repeating it for every
// version. Lookup decompresses a table for one version by merging every
// section whose range contains it. The compression scheme stays behind
// this package's narrow interface; callers only ever see the merged
// per-version mapping.
package rangetable

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/heldback/pkg/compat"
	"github.com/ajxudir/heldback/pkg/errors"
	"github.com/ajxudir/heldback/pkg/verbose"
)

// LoadTOML reads a range-compressed table from a TOML file.
//
// It performs the following operations:
//   - Reads the file; a missing file is an expected absence, not an error
//   - Decodes every section into name -> string entries
//   - Preserves section and entry declaration order
//
// Parameters:
//   - path: The table file path (e.g., <package dir>/Deps.toml)
//
// Returns:
//   - *orderedmap.OrderedMap: Range key -> *orderedmap.OrderedMap of entries
//   - bool: false when the file does not exist
//   - error: StructuralError when the file exists but is malformed
func LoadTOML(path string) (*orderedmap.OrderedMap, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.NewStructuralError(path, "unreadable table file", err)
	}

	var raw map[string]map[string]string
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, false, errors.NewStructuralError(path, "malformed range table", err)
	}

	// MetaData.Keys yields section headers (length 1) and entries
	// (length 2) in file order, which the merged lookup must preserve.
	table := orderedmap.New()
	for _, key := range md.Keys() {
		switch len(key) {
		case 1:
			if _, exists := table.Get(key[0]); !exists {
				table.Set(key[0], orderedmap.New())
			}
		case 2:
			value, exists := table.Get(key[0])
			if !exists {
				value = orderedmap.New()
				table.Set(key[0], value)
			}
			section := value.(*orderedmap.OrderedMap)
			section.Set(key[1], raw[key[0]][key[1]])
		}
	}

	verbose.Tracef("Loaded range table %s: %d sections", path, len(table.Keys()))
	return table, true, nil
}

// Lookup decompresses a table for a single version.
//
// It performs the following operations:
//   - Parses each range key and tests whether it contains the version
//   - Merges the entries of every containing section in declaration order
//   - Reports absence when no section's range contains the version
//
// Range containment compares the numeric major.minor.patch triple only;
// prerelease qualifiers do not participate.
//
// Parameters:
//   - table: A table produced by LoadTOML
//   - version: The version to decompress for
//
// Returns:
//   - *orderedmap.OrderedMap: Merged name -> string mapping for the version
//   - bool: false when no range contains the version
//   - error: StructuralError when a range key or the version is unparsable
func Lookup(table *orderedmap.OrderedMap, version string) (*orderedmap.OrderedMap, bool, error) {
	major, minor, patch, ok := compat.Parts(version)
	if !ok {
		return nil, false, errors.NewStructuralError(version, "unparsable version for range lookup", nil)
	}

	merged := orderedmap.New()
	found := false

	for _, key := range table.Keys() {
		r, err := parseRange(key)
		if err != nil {
			return nil, false, err
		}

		if !r.contains(major, minor, patch) {
			continue
		}

		found = true
		value, _ := table.Get(key)
		section := value.(*orderedmap.OrderedMap)
		for _, name := range section.Keys() {
			entry, _ := section.Get(name)
			merged.Set(name, entry)
		}
	}

	if !found {
		return nil, false, nil
	}

	return merged, true, nil
}

// versionRange is a closed range of version triples. Endpoints with
// fewer than three segments cover every version sharing their prefix:
// "1-2" contains 1.0.0 through 2.x.y.
type versionRange struct {
	lo endpoint
	hi endpoint
}

// endpoint is one side of a range: up to three specified segments.
type endpoint struct {
	segs []int
}

// parseRange parses a range key like "1.2.3", "1.2", or "0.3-0.7".
func parseRange(key string) (versionRange, error) {
	lo := key
	hi := key
	if before, after, ok := strings.Cut(key, "-"); ok {
		lo = before
		hi = after
	}

	loEnd, err := parseEndpoint(key, lo)
	if err != nil {
		return versionRange{}, err
	}

	hiEnd, err := parseEndpoint(key, hi)
	if err != nil {
		return versionRange{}, err
	}

	return versionRange{lo: loEnd, hi: hiEnd}, nil
}

// parseEndpoint parses one endpoint into its numeric segments.
func parseEndpoint(key, value string) (endpoint, error) {
	parts := strings.Split(strings.TrimSpace(value), ".")
	if len(parts) == 0 || len(parts) > 3 {
		return endpoint{}, errors.NewStructuralError(key, "malformed range key", nil)
	}

	segs := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return endpoint{}, errors.NewStructuralError(key, "malformed range key", nil)
		}
		segs = append(segs, n)
	}

	return endpoint{segs: segs}, nil
}

// contains reports whether the range admits the version triple.
func (r versionRange) contains(major, minor, patch int) bool {
	v := [3]int{major, minor, patch}

	// Lower endpoint: unspecified segments default to zero.
	for i := 0; i < 3; i++ {
		seg := 0
		if i < len(r.lo.segs) {
			seg = r.lo.segs[i]
		}
		if v[i] != seg {
			if v[i] < seg {
				return false
			}
			break
		}
	}

	// Upper endpoint: only specified segments constrain, so "2" admits
	// every 2.x.y.
	for i, seg := range r.hi.segs {
		if v[i] != seg {
			return v[i] < seg
		}
	}

	return true
}
