package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/heldback/pkg/errors"
)

const (
	uuidA = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	uuidB = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)

// writeFile writes a registry fixture file, creating parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// writeSource lays out a minimal registry source with packages A and B.
func writeSource(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "Registry.toml"), `
name = "General"

[packages]
"`+uuidA+`" = { name = "A", path = "A/A" }
"`+uuidB+`" = { name = "B", path = "B/B" }
`)

	writeFile(t, filepath.Join(root, "A", "A", "Versions.toml"), `
["1.0.0"]
git-tree-sha1 = "1111111111111111111111111111111111111111"

["2.0.0"]
git-tree-sha1 = "2222222222222222222222222222222222222222"
`)

	writeFile(t, filepath.Join(root, "B", "B", "Versions.toml"), `
["1.5.0"]
git-tree-sha1 = "3333333333333333333333333333333333333333"

["2.0.0"]
git-tree-sha1 = "4444444444444444444444444444444444444444"
yanked = true
`)

	return root
}

// TestLoadVersions tests the behavior of LoadVersions.
//
// It verifies:
//   - Yanked entries are excluded from the live set
//   - Live entries carry their content hash
func TestLoadVersions(t *testing.T) {
	root := writeSource(t)

	entries, err := LoadVersions(filepath.Join(root, "B", "B"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1.5.0", entries[0].Version)
	assert.Equal(t, "3333333333333333333333333333333333333333", entries[0].TreeHash)
}

// TestLoadVersionsFaults tests the behavior of LoadVersions with
// malformed input.
//
// It verifies:
//   - A missing version record file is a structural fault
//   - Unparsable version strings are structural faults
//   - A missing content hash is a structural fault
func TestLoadVersionsFaults(t *testing.T) {
	_, err := LoadVersions(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.IsStructural(err))

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Versions.toml"), `
["not-a-version"]
git-tree-sha1 = "1111111111111111111111111111111111111111"
`)
	_, err = LoadVersions(dir)
	require.Error(t, err)
	assert.True(t, errors.IsStructural(err))

	dir = t.TempDir()
	writeFile(t, filepath.Join(dir, "Versions.toml"), `
["1.0.0"]
yanked = false
`)
	_, err = LoadVersions(dir)
	require.Error(t, err)
	assert.True(t, errors.IsStructural(err))
}

// TestMaxLiveVersion tests the behavior of MaxLiveVersion.
//
// It verifies:
//   - Semantic-version ordering, not lexical ordering
//   - Prerelease versions order below the same release
//   - The empty entry set is reported
func TestMaxLiveVersion(t *testing.T) {
	entries := []VersionEntry{{Version: "1.9.0"}, {Version: "1.10.0"}, {Version: "1.2.0"}}
	max, ok := MaxLiveVersion(entries)
	assert.True(t, ok)
	assert.Equal(t, "1.10.0", max)

	entries = []VersionEntry{{Version: "2.0.0-rc1"}, {Version: "2.0.0"}}
	max, ok = MaxLiveVersion(entries)
	assert.True(t, ok)
	assert.Equal(t, "2.0.0", max)

	_, ok = MaxLiveVersion(nil)
	assert.False(t, ok)
}

// TestBuild tests the behavior of Build.
//
// It verifies:
//   - Every package gets a record keyed by identity
//   - The maximum live version excludes yanked entries
//   - Package directories are resolved against the source root
func TestBuild(t *testing.T) {
	root := writeSource(t)

	index, err := Build([]string{root}, nil)
	require.NoError(t, err)
	require.Len(t, index, 2)

	a := index[uuidA]
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, "2.0.0", a.MaxVersion)
	assert.Equal(t, filepath.Join(root, "A", "A"), a.Dir)

	b := index[uuidB]
	assert.Equal(t, "B", b.Name)
	assert.Equal(t, "1.5.0", b.MaxVersion)
}

// TestBuildOverrides tests the behavior of prospective override injection.
//
// It verifies:
//   - Overrides match by identity first, then by name
//   - Injected entries participate in maximum-version selection
//   - Unparsable override versions are structural faults
func TestBuildOverrides(t *testing.T) {
	root := writeSource(t)

	index, err := Build([]string{root}, Overrides{"B": "3.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", index[uuidB].MaxVersion)

	index, err = Build([]string{root}, Overrides{uuidB: "4.0.0", "B": "3.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "4.0.0", index[uuidB].MaxVersion)

	// An override below the current maximum does not lower it.
	index, err = Build([]string{root}, Overrides{"A": "0.1.0"})
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", index[uuidA].MaxVersion)

	_, err = Build([]string{root}, Overrides{"A": "bogus"})
	require.Error(t, err)
	assert.True(t, errors.IsStructural(err))
}

// TestBuildSourcePrecedence tests the behavior of duplicate identities
// across sources.
//
// It verifies:
//   - Sources are processed in input order and later sources supersede
//     earlier ones
func TestBuildSourcePrecedence(t *testing.T) {
	first := writeSource(t)

	second := t.TempDir()
	writeFile(t, filepath.Join(second, "Registry.toml"), `
name = "Overlay"

[packages]
"`+uuidA+`" = { name = "A", path = "A/A" }
`)
	writeFile(t, filepath.Join(second, "A", "A", "Versions.toml"), `
["9.0.0"]
git-tree-sha1 = "9999999999999999999999999999999999999999"
`)

	index, err := Build([]string{first, second}, nil)
	require.NoError(t, err)
	assert.Equal(t, "9.0.0", index[uuidA].MaxVersion)
	assert.Equal(t, filepath.Join(second, "A", "A"), index[uuidA].Dir)

	index, err = Build([]string{second, first}, nil)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", index[uuidA].MaxVersion)
}

// TestBuildFaults tests the behavior of Build with malformed sources.
//
// It verifies:
//   - A missing or malformed manifest is a structural fault
//   - A package entry missing name or path is a structural fault
func TestBuildFaults(t *testing.T) {
	_, err := Build([]string{t.TempDir()}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsStructural(err))

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Registry.toml"), "not [ toml")
	_, err = Build([]string{root}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsStructural(err))

	root = t.TempDir()
	writeFile(t, filepath.Join(root, "Registry.toml"), `
name = "Broken"

[packages]
"`+uuidA+`" = { name = "A" }
`)
	_, err = Build([]string{root}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsStructural(err))
}
